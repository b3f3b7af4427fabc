package interaction

// Point is a pointer position in screen pixels
type Point struct {
	X, Y float64
}

// Panel is a draggable tool panel. Its position is independent of the camera.
type Panel struct {
	Position Point

	dragging   bool
	dragStart  Point
	panelStart Point
}

// BeginDrag starts dragging from the pointer position
func (p *Panel) BeginDrag(pointer Point) {
	p.dragging = true
	p.dragStart = pointer
	p.panelStart = p.Position
}

// DragTo moves the panel by the pointer offset since BeginDrag
func (p *Panel) DragTo(pointer Point) {
	if !p.dragging {
		return
	}
	p.Position = Point{
		X: p.panelStart.X + pointer.X - p.dragStart.X,
		Y: p.panelStart.Y + pointer.Y - p.dragStart.Y,
	}
}

// EndDrag stops dragging and keeps the current position
func (p *Panel) EndDrag() {
	p.dragging = false
}

// Dragging reports whether a drag is in progress
func (p *Panel) Dragging() bool {
	return p.dragging
}
