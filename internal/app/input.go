package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/interaction"
	"github.com/medar/arviewer/internal/marker"
	"github.com/medar/arviewer/pkg/viewer"
)

// handleInput processes user input
func (app *App) handleInput() {
	mouse := rl.GetMousePosition()
	app.Interaction.overUI = app.pointerOverUI(mouse)

	app.handleKeys()

	// Tool panel drag takes precedence over everything else
	panel := app.controller.Panel
	pointer := toPoint(mouse)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, app.Interaction.panelTitleBar) {
		panel.BeginDrag(pointer)
	}
	if panel.Dragging() {
		panel.DragTo(pointer)
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			panel.EndDrag()
		}
		return
	}

	if app.handleSliderInput(mouse) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for _, b := range app.Interaction.buttons {
			if rl.CheckCollisionPointRec(mouse, b.bounds) {
				b.action()
				return
			}
		}
	}

	app.handleScenePointer(mouse)
}

// handleKeys processes keyboard shortcuts
func (app *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeyHome) || rl.IsKeyPressed(rl.KeyR) {
		app.session.Reset()
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		app.session.Deselect()
	}

	// Arrow keys pan the camera target
	moves := map[int32]viewer.Direction{
		rl.KeyUp:    viewer.Up,
		rl.KeyDown:  viewer.Down,
		rl.KeyLeft:  viewer.Left,
		rl.KeyRight: viewer.Right,
	}
	for key, dir := range moves {
		if rl.IsKeyPressed(key) {
			app.controller.MoveCamera(dir)
		}
	}

	// 1, 2, 3 select the annotation level
	for i, level := range catalog.Levels {
		if rl.IsKeyPressed(int32(rl.KeyOne + i)) {
			app.setLevel(level)
		}
	}

	if rl.IsKeyPressed(rl.KeyL) {
		app.session.SetShowAllLabels(!app.session.ShowAllLabels())
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyA) {
		app.controller.AutoRotate = !app.controller.AutoRotate
	}
	if rl.IsKeyPressed(rl.KeyH) || rl.IsKeyPressed(rl.KeyF1) {
		app.View.showHelp = !app.View.showHelp
	}

	// Part toggles act on the active part; Tab cycles through parts
	parts := app.parts()
	if len(parts) > 0 {
		if rl.IsKeyPressed(rl.KeyTab) {
			app.View.activePart = (app.View.activePart + 1) % len(parts)
		}
		part := parts[app.View.activePart%len(parts)]
		if rl.IsKeyPressed(rl.KeyI) {
			app.controller.ToggleIsolation(part)
		}
		if rl.IsKeyPressed(rl.KeyT) {
			app.controller.ToggleTransparency(part)
		}
	}

	// Page Up/Down cycle through registry models
	if rl.IsKeyPressed(rl.KeyPageDown) {
		app.cycleModel(1)
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		app.cycleModel(-1)
	}
}

// handleScenePointer routes the pointer to the markers first and to the
// orbit camera when no marker consumes it
func (app *App) handleScenePointer(mouse rl.Vector2) {
	if app.Interaction.isRotating {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			delta := rl.GetMouseDelta()
			if delta.X != 0 || delta.Y != 0 {
				app.controller.Rotate(-float64(delta.Y)*0.01, float64(delta.X)*0.01)
			}
		} else {
			app.Interaction.isRotating = false
			// a press that barely moved is a click on empty space
			app.controller.BackgroundClick(
				toPoint(app.Interaction.mouseDownPos),
				toPoint(mouse),
				app.Interaction.pressConsumed,
				app.pointerOverUI(mouse),
			)
		}
		return
	}

	if app.Interaction.overUI {
		// the pointer left the scene, so no landmark can stay hovered
		if id, ok := app.session.Hovered(); ok {
			app.markers.Leave(id)
		}
		app.setCursor(marker.CursorDefault)
		return
	}

	origin, dir := app.mouseRay()
	ev := app.markers.PointerMove(origin, dir)
	app.setCursor(ev.Cursor)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = mouse
		down := app.markers.PointerDown(origin, dir)
		app.Interaction.pressConsumed = down.Consumed
		if !down.Consumed {
			app.Interaction.isRotating = true
		}
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.controller.Zoom(-float64(wheel) * 0.03)
	}
}

func toPoint(v rl.Vector2) interaction.Point {
	return interaction.Point{X: float64(v.X), Y: float64(v.Y)}
}

// setCursor updates the OS cursor when the requested shape changes
func (app *App) setCursor(c marker.Cursor) {
	if c == app.Interaction.cursor {
		return
	}
	app.Interaction.cursor = c
	if c == marker.CursorPointer {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// pointerOverUI reports whether a screen point is on a panel
func (app *App) pointerOverUI(p rl.Vector2) bool {
	for _, r := range []rl.Rectangle{
		app.Interaction.panelBounds,
		app.Interaction.infoBounds,
		app.Interaction.headerBounds,
	} {
		if r.Width > 0 && rl.CheckCollisionPointRec(p, r) {
			return true
		}
	}
	return false
}

// setLevel changes the annotation level if the model offers it
func (app *App) setLevel(level catalog.Level) {
	if m, ok := app.registry.Model(app.Scene.modelID); ok && !m.Supports(level) {
		return
	}
	app.session.SetLevel(level)
}

// cycleModel switches to the next or previous registry model
func (app *App) cycleModel(step int) {
	models := app.registry.Models()
	if len(models) == 0 {
		return
	}
	current := -1
	for i, m := range models {
		if m.ID == app.Scene.modelID {
			current = i
		}
	}
	if current < 0 {
		app.switchModel(models[0].ID)
		return
	}
	next := (current + step + len(models)) % len(models)
	app.switchModel(models[next].ID)
}

// parts returns the part ids of the mounted model
func (app *App) parts() []string {
	if app.Scene.model == nil {
		return nil
	}
	return app.Scene.model.Parts()
}
