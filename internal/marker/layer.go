package marker

import (
	"math"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/session"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// Cursor is the pointer shape requested by an event
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// Event is the outcome of a pointer event on a marker. Consumed events must
// not reach the scene below.
type Event struct {
	Landmark string
	Consumed bool
	Cursor   Cursor
}

// Marker is the render description of one landmark for a frame
type Marker struct {
	Landmark catalog.Landmark
	Color    scene.Color

	Anchor       geometry.Vector3 // landmark position, world space
	ConnectorEnd geometry.Vector3
	InnerRadius  float64 // already multiplied by the pulse
	OuterRadius  float64
	Style        Style

	Selected bool
	Hovered  bool

	ShowVisited bool
	VisitedPos  geometry.Vector3

	ShowLabel bool
	LabelPos  geometry.Vector3
	Icon      string
}

// Layer renders the landmarks of the active level for one session
type Layer struct {
	catalog *catalog.Catalog
	session *session.Session

	// Transform maps organ space to world space
	Transform geometry.Matrix4
}

// NewLayer creates a marker layer over a catalog and session
func NewLayer(c *catalog.Catalog, s *session.Session) *Layer {
	return &Layer{catalog: c, session: s, Transform: geometry.Identity()}
}

// SetCatalog swaps the catalog after a model switch
func (l *Layer) SetCatalog(c *catalog.Catalog) {
	l.catalog = c
}

// Catalog returns the catalog the layer draws from
func (l *Layer) Catalog() *catalog.Catalog {
	return l.catalog
}

// Visible returns the landmarks of the session's active level
func (l *Layer) Visible() []catalog.Landmark {
	if l.catalog == nil {
		return nil
	}
	return l.catalog.LandmarksForLevel(l.session.Level())
}

// Build describes every visible marker at elapsed seconds
func (l *Layer) Build(elapsed float64) []Marker {
	visible := l.Visible()
	markers := make([]Marker, 0, len(visible))

	for _, lm := range visible {
		selected := l.session.IsSelected(lm.ID)
		hovered := l.session.IsHovered(lm.ID)

		color, err := scene.ParseHexColor(lm.Color)
		if err != nil {
			color = scene.White
		}

		local := lm.Position
		markers = append(markers, Marker{
			Landmark:     lm,
			Color:        color,
			Anchor:       l.Transform.TransformPoint(local),
			ConnectorEnd: l.Transform.TransformPoint(local.Add(local.Scale(ConnectorFactor))),
			InnerRadius:  InnerRadius * PulseScale(elapsed, selected),
			OuterRadius:  OuterRadius,
			Style:        StyleFor(selected, hovered),
			Selected:     selected,
			Hovered:      hovered,
			ShowVisited:  ShowVisited(l.session.IsVisited(lm.ID), selected),
			VisitedPos:   l.Transform.TransformPoint(local.Add(geometry.FromArray(VisitedOffset))),
			ShowLabel:    ShowLabel(l.session.ShowAllLabels(), hovered),
			LabelPos:     l.Transform.TransformPoint(local.Add(geometry.NewVector3(0, LabelOffsetY, 0))),
			Icon:         lm.Type.Icon(),
		})
	}
	return markers
}

// Pick returns the visible landmark whose hit sphere the ray enters first.
// dir must be normalized.
func (l *Layer) Pick(origin, dir geometry.Vector3) (string, bool) {
	best := math.Inf(1)
	id := ""
	for _, lm := range l.Visible() {
		center := l.Transform.TransformPoint(lm.Position)
		if d, ok := raySphere(origin, dir, center, InnerRadius); ok && d < best {
			best = d
			id = lm.ID
		}
	}
	return id, id != ""
}

// raySphere returns the distance along the ray to the first intersection
func raySphere(origin, dir, center geometry.Vector3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	// origin inside the sphere
	if t := -b + sq; t >= 0 {
		return 0, true
	}
	return 0, false
}

// Click selects the landmark and consumes the event
func (l *Layer) Click(id string) Event {
	l.session.Select(id)
	return Event{Landmark: id, Consumed: true, Cursor: CursorPointer}
}

// Enter starts hovering a landmark
func (l *Layer) Enter(id string) Event {
	l.session.Hover(id)
	return Event{Landmark: id, Consumed: true, Cursor: CursorPointer}
}

// Leave stops hovering a landmark. Hover is cleared only if id still owns it,
// so a leave arriving after the next enter does not wipe the new hover.
func (l *Layer) Leave(id string) Event {
	l.session.UnhoverIf(id)
	return Event{Landmark: id, Consumed: true, Cursor: CursorDefault}
}

// PointerMove picks under the pointer ray and emits leave/enter as the
// hovered landmark changes
func (l *Layer) PointerMove(origin, dir geometry.Vector3) Event {
	current, hovering := l.session.Hovered()
	id, hit := l.Pick(origin, dir)

	switch {
	case hit && id == current:
		return Event{Landmark: id, Consumed: true, Cursor: CursorPointer}
	case hit:
		if hovering {
			l.Leave(current)
		}
		return l.Enter(id)
	case hovering:
		ev := l.Leave(current)
		ev.Consumed = false
		return ev
	default:
		return Event{Cursor: CursorDefault}
	}
}

// PointerDown selects the landmark under the ray, if any. An unconsumed
// event should fall through to the scene.
func (l *Layer) PointerDown(origin, dir geometry.Vector3) Event {
	if id, ok := l.Pick(origin, dir); ok {
		return l.Click(id)
	}
	return Event{}
}
