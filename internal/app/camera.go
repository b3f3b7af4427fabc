package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/viewer"
)

// frameCamera points the home pose at the mounted model and resets to it
func (app *App) frameCamera(bounds geometry.BoundingBox) {
	framed := viewer.NewCameraForBounds(bounds)
	view := app.Camera.view
	view.Target = framed.Target
	view.Distance = framed.Distance
	view.RotationX = 0.3
	view.RotationY = 0.3
	view.UpdatePosition()
	view.SetHome()
}

// updateCamera copies the orbit camera into the raylib camera
func (app *App) updateCamera() {
	view := app.Camera.view
	app.Camera.camera = rl.Camera3D{
		Position:   toRL(view.Position),
		Target:     toRL(view.Target),
		Up:         toRL(view.Up),
		Fovy:       float32(view.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

// mouseRay returns the world-space ray under the mouse cursor
func (app *App) mouseRay() (origin, dir geometry.Vector3) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), app.Camera.camera)
	return fromRL(ray.Position), fromRL(ray.Direction).Normalize()
}

// viewTransform maps organ space to world space at elapsed seconds. Organ
// space is the fitted viewing space landmarks are authored in, so only the
// auto-rotation around Y applies.
func (app *App) viewTransform(elapsed float64) geometry.Matrix4 {
	return rotationY(app.controller.ModelRotation(elapsed))
}

// modelTransform maps raw asset coordinates to world space: the fit
// followed by the view transform
func (app *App) modelTransform(elapsed float64) geometry.Matrix4 {
	return app.viewTransform(elapsed).Mul(app.Scene.fit)
}

func rotationY(angle float64) geometry.Matrix4 {
	s, c := math.Sincos(angle / 2)
	return geometry.Compose(geometry.Vector3{}, [4]float64{0, s, 0, c}, geometry.NewVector3(1, 1, 1))
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRL(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}

// toRLMatrix converts a column-major transform to raylib's matrix layout
func toRLMatrix(m geometry.Matrix4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M4: float32(m[4]), M8: float32(m[8]), M12: float32(m[12]),
		M1: float32(m[1]), M5: float32(m[5]), M9: float32(m[9]), M13: float32(m[13]),
		M2: float32(m[2]), M6: float32(m[6]), M10: float32(m[10]), M14: float32(m[14]),
		M3: float32(m[3]), M7: float32(m[7]), M11: float32(m[11]), M15: float32(m[15]),
	}
}
