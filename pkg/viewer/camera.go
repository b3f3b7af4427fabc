package viewer

import (
	"math"

	"github.com/medar/arviewer/pkg/geometry"
)

// Direction is a camera pan direction
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// PanStep is the distance one MoveCamera command pans the target
const PanStep = 0.5

// Camera is an orbit camera around a target point
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)

	home cameraPose
}

type cameraPose struct {
	target    geometry.Vector3
	distance  float64
	rotationX float64
	rotationY float64
}

// NewCamera creates a camera looking at target from distance along +Z. The
// pose is remembered as the home pose for Reset.
func NewCamera(target geometry.Vector3, distance float64) *Camera {
	c := &Camera{
		Target:   target,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4, // 45 degrees
		Distance: distance,
	}
	c.home = c.pose()
	c.UpdatePosition()
	return c
}

// NewCameraForBounds creates a camera framing a bounding box
func NewCameraForBounds(bbox geometry.BoundingBox) *Camera {
	distance := bbox.MaxDimension() * 2.0
	if distance <= 0 {
		distance = 5
	}
	return NewCamera(bbox.Center(), distance)
}

func (c *Camera) pose() cameraPose {
	return cameraPose{target: c.Target, distance: c.Distance, rotationX: c.RotationX, rotationY: c.RotationY}
}

// SetHome makes the current pose the one Reset returns to
func (c *Camera) SetHome() {
	c.home = c.pose()
}

// Reset returns the camera to its home pose
func (c *Camera) Reset() {
	c.Target = c.home.target
	c.Distance = c.home.distance
	c.RotationX = c.home.rotationX
	c.RotationY = c.home.rotationY
	c.UpdatePosition()
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	// Calculate position based on spherical coordinates
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// Pan moves the target and the camera together in the view plane
func (c *Camera) Pan(dir Direction, step float64) bool {
	right, up := c.axes()

	var delta geometry.Vector3
	switch dir {
	case Up:
		delta = up.Scale(step)
	case Down:
		delta = up.Scale(-step)
	case Left:
		delta = right.Scale(-step)
	case Right:
		delta = right.Scale(step)
	default:
		return false
	}

	c.Target = c.Target.Add(delta)
	c.UpdatePosition()
	return true
}

func (c *Camera) axes() (right, up geometry.Vector3) {
	forward := c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up
}

// Project projects a 3D point to 2D screen coordinates
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right, up := c.axes()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Perspective projection
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// Unproject converts 2D screen coordinates back to a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	forward := c.Target.Sub(c.Position).Normalize()
	right, up := c.axes()

	rayDir := forward.Add(right.Scale(ndcX * fovScale * aspect)).Add(up.Scale(ndcY * fovScale))
	return c.Position, rayDir.Normalize()
}
