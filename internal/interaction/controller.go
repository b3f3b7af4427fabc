// Package interaction applies user commands to the camera and to the part
// treatment of the loaded scene.
package interaction

import (
	"time"

	"github.com/medar/arviewer/internal/session"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/viewer"
)

// AutoRotateSpeed is the model turn rate in radians per second
const AutoRotateSpeed = 0.2

// Render treatment factors
const (
	dimmedOpacity      = 0.15
	transparentOpacity = 0.3
)

// Controller owns the camera and the tool panel and edits the session's
// part and slider state
type Controller struct {
	Session *session.Session
	Camera  *viewer.Camera
	Panel   *Panel

	AutoRotate bool

	nowFunc func() time.Time
	start   time.Time
}

// New creates a controller. The camera is reset whenever the session is.
func New(s *session.Session, cam *viewer.Camera) *Controller {
	c := &Controller{
		Session: s,
		Camera:  cam,
		Panel:   &Panel{},
		nowFunc: time.Now,
	}
	c.start = c.nowFunc()
	s.OnReset(c.ResetCamera)
	return c
}

// SetClock replaces the time source and restarts the animation clock
func (c *Controller) SetClock(now func() time.Time) {
	c.nowFunc = now
	c.start = now()
}

// Elapsed returns seconds since the controller started
func (c *Controller) Elapsed() float64 {
	return c.nowFunc().Sub(c.start).Seconds()
}

// ModelRotation is the auto-rotation angle around Y at elapsed seconds
func (c *Controller) ModelRotation(elapsed float64) float64 {
	if !c.AutoRotate {
		return 0
	}
	return elapsed * AutoRotateSpeed
}

// ResetCamera returns the camera to its home pose
func (c *Controller) ResetCamera() {
	c.Camera.Reset()
}

// MoveCamera pans the camera one step. Unknown directions are ignored.
func (c *Controller) MoveCamera(dir viewer.Direction) bool {
	return c.Camera.Pan(dir, viewer.PanStep)
}

// Rotate orbits the camera
func (c *Controller) Rotate(deltaX, deltaY float64) {
	c.Camera.Rotate(deltaX, deltaY)
}

// Zoom changes the camera distance by a relative amount
func (c *Controller) Zoom(delta float64) {
	c.Camera.Zoom(delta)
}

// ToggleIsolation adds or removes part from the isolated set
func (c *Controller) ToggleIsolation(part string) bool {
	return c.Session.ToggleIsolation(part)
}

// ToggleTransparency adds or removes part from the transparent set
func (c *Controller) ToggleTransparency(part string) bool {
	return c.Session.ToggleTransparency(part)
}

// SetSlice sets the slice slider, clamped to [0, 100]
func (c *Controller) SetSlice(v float64) {
	c.Session.SetSlice(v)
}

// SetOpacity sets the opacity slider, clamped to [0, 100]
func (c *Controller) SetOpacity(v float64) {
	c.Session.SetOpacity(v)
}

// Treatment is how one part is drawn
type Treatment struct {
	Opacity float64 // 0..1, multiplies the material opacity
	Dimmed  bool    // another part is isolated
}

// Transparent reports whether the part needs alpha blending
func (t Treatment) Transparent() bool {
	return t.Opacity < 1
}

// PartTreatment combines the opacity slider, isolation and transparency
// toggles for a part
func (c *Controller) PartTreatment(part string) Treatment {
	t := Treatment{Opacity: c.Session.Opacity() / 100}

	if len(c.Session.Isolated()) > 0 && !c.Session.IsIsolated(part) {
		t.Dimmed = true
		t.Opacity *= dimmedOpacity
	}
	if c.Session.IsTransparent(part) {
		t.Opacity *= transparentOpacity
	}
	return t
}

// SlicePlane returns the height of the horizontal cut for the current slice
// value. Slice 0 keeps everything; 100 cuts down to the bottom of bounds.
func (c *Controller) SlicePlane(bounds geometry.BoundingBox) float64 {
	if bounds.IsEmpty() {
		return 0
	}
	return bounds.Max.Y - bounds.Size().Y*c.Session.Slice()/100
}

// Sliced reports whether a mesh with world bounds lies entirely above the cut
func (c *Controller) Sliced(scene, mesh geometry.BoundingBox) bool {
	if c.Session.Slice() <= 0 || mesh.IsEmpty() {
		return false
	}
	return mesh.Min.Y > c.SlicePlane(scene)
}
