package interaction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/medar/arviewer/internal/session"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/viewer"
)

func newController() *Controller {
	return New(session.New("heart"), viewer.NewCamera(geometry.Vector3{}, 5))
}

func TestMoveAndResetCamera(t *testing.T) {
	c := newController()

	assert.True(t, c.MoveCamera(viewer.Up))
	assert.InDelta(t, viewer.PanStep, c.Camera.Target.Y, 1e-9)
	assert.False(t, c.MoveCamera(viewer.Direction("back")))

	c.ResetCamera()
	assert.Equal(t, geometry.Vector3{}, c.Camera.Target)
}

func TestSessionSwitchResetsCamera(t *testing.T) {
	c := newController()
	c.Rotate(0.4, 0.4)
	c.Zoom(1)

	c.Session.SwitchModel("lungs")

	assert.Equal(t, 5.0, c.Camera.Distance)
	assert.Equal(t, 0.0, c.Camera.RotationY)
}

func TestSliderClamping(t *testing.T) {
	c := newController()

	c.SetSlice(150)
	assert.Equal(t, 100.0, c.Session.Slice())
	c.SetOpacity(-10)
	assert.Equal(t, 0.0, c.Session.Opacity())
}

func TestPartTreatment(t *testing.T) {
	c := newController()

	assert.Equal(t, Treatment{Opacity: 1}, c.PartTreatment("ventricle"))
	assert.False(t, c.PartTreatment("ventricle").Transparent())

	c.ToggleIsolation("valve")
	dimmed := c.PartTreatment("ventricle")
	assert.True(t, dimmed.Dimmed)
	assert.InDelta(t, dimmedOpacity, dimmed.Opacity, 1e-9)
	assert.False(t, c.PartTreatment("valve").Dimmed)

	c.ToggleTransparency("valve")
	c.SetOpacity(50)
	assert.InDelta(t, 0.5*transparentOpacity, c.PartTreatment("valve").Opacity, 1e-9)
	assert.True(t, c.PartTreatment("valve").Transparent())

	c.ToggleIsolation("valve")
	c.ToggleTransparency("valve")
	assert.Equal(t, Treatment{Opacity: 0.5}, c.PartTreatment("valve"))
}

func TestSlicing(t *testing.T) {
	c := newController()
	sceneBounds := geometry.NewBoundingBoxFromPoints(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1))
	top := geometry.NewBoundingBoxFromPoints(geometry.NewVector3(-1, 0.5, -1), geometry.NewVector3(1, 1, 1))
	bottom := geometry.NewBoundingBoxFromPoints(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, -0.5, 1))

	assert.False(t, c.Sliced(sceneBounds, top))

	c.SetSlice(50)
	assert.Equal(t, 0.0, c.SlicePlane(sceneBounds))
	assert.True(t, c.Sliced(sceneBounds, top))
	assert.False(t, c.Sliced(sceneBounds, bottom))

	c.SetSlice(100)
	assert.Equal(t, -1.0, c.SlicePlane(sceneBounds))
}

func TestAutoRotation(t *testing.T) {
	c := newController()
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	c.SetClock(func() time.Time { return now })

	now = start.Add(5 * time.Second)
	assert.Equal(t, 5.0, c.Elapsed())
	assert.Equal(t, 0.0, c.ModelRotation(c.Elapsed()))

	c.AutoRotate = true
	assert.InDelta(t, 1.0, c.ModelRotation(c.Elapsed()), 1e-9)
}

func TestPanelDrag(t *testing.T) {
	p := &Panel{Position: Point{X: 10, Y: 20}}

	p.DragTo(Point{X: 100, Y: 100})
	assert.Equal(t, Point{X: 10, Y: 20}, p.Position)

	p.BeginDrag(Point{X: 50, Y: 50})
	assert.True(t, p.Dragging())
	p.DragTo(Point{X: 70, Y: 40})
	assert.Equal(t, Point{X: 30, Y: 10}, p.Position)

	p.EndDrag()
	p.DragTo(Point{X: 0, Y: 0})
	assert.Equal(t, Point{X: 30, Y: 10}, p.Position)
	assert.False(t, p.Dragging())
}

func TestPanelDragIgnoresCamera(t *testing.T) {
	c := newController()
	c.Panel.BeginDrag(Point{})
	c.Panel.DragTo(Point{X: 5, Y: 5})
	c.ResetCamera()
	c.MoveCamera(viewer.Left)

	assert.Equal(t, Point{X: 5, Y: 5}, c.Panel.Position)
}

func TestIsClick(t *testing.T) {
	assert.True(t, IsClick(Point{X: 100, Y: 100}, Point{X: 100, Y: 100}))
	assert.True(t, IsClick(Point{X: 100, Y: 100}, Point{X: 103, Y: 102}))
	assert.False(t, IsClick(Point{X: 100, Y: 100}, Point{X: 110, Y: 100}))
}

func TestBackgroundClick(t *testing.T) {
	press := Point{X: 200, Y: 150}

	tests := []struct {
		name     string
		release  Point
		consumed bool
		overUI   bool
		want     bool
	}{
		{name: "click on empty space", release: Point{X: 201, Y: 151}, want: true},
		{name: "marker click", release: press, consumed: true},
		{name: "over panel", release: press, overUI: true},
		{name: "orbit drag", release: Point{X: 260, Y: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()
			c.Session.Select("aorta")

			assert.Equal(t, tt.want, c.BackgroundClick(press, tt.release, tt.consumed, tt.overUI))
			_, selected := c.Session.Selected()
			assert.Equal(t, !tt.want, selected)
		})
	}
}

func TestBackgroundClickWithoutSelection(t *testing.T) {
	c := newController()
	assert.False(t, c.BackgroundClick(Point{}, Point{}, false, false))
}
