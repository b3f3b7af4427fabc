package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var wireframeColor = rl.NewColor(100, 100, 100, 200) // Semi-transparent dark gray

// drawWireframe overlays the triangle edges of the GPU model. The model's
// Transform must already hold the current model transform.
func (app *App) drawWireframe() {
	if !app.Scene.hasGPU {
		rl.DrawBoundingBox(toRLBox(app.Scene.bounds), wireframeColor)
		return
	}
	rl.DrawModelWiresEx(app.Scene.gpu, rl.Vector3{}, rl.Vector3{Y: 1}, 0, rl.Vector3{X: 1, Y: 1, Z: 1}, wireframeColor)
}
