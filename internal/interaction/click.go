package interaction

import "math"

// ClickSlop is how far in pixels the pointer may travel between press and
// release for the gesture to still count as a click
const ClickSlop = 4.0

// IsClick reports whether a press and release are close enough to be a click
// rather than a drag
func IsClick(press, release Point) bool {
	return math.Hypot(release.X-press.X, release.Y-press.Y) <= ClickSlop
}

// BackgroundClick clears the selection when a press no marker consumed is
// released over the scene without dragging. It reports whether it deselected.
func (c *Controller) BackgroundClick(press, release Point, consumed, overUI bool) bool {
	if consumed || overUI || !IsClick(press, release) {
		return false
	}
	if _, selected := c.Session.Selected(); !selected {
		return false
	}
	c.Session.Deselect()
	return true
}
