package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	sliderWidth        = 180.0
	sliderHeight       = 8.0
	sliderHandleRadius = 6.0
	sliderSpacing      = 35.0
	panelPadding       = 15.0
	panelTitleHeight   = 30.0
	panelWidth         = 320.0
	partRowHeight      = 22.0
	maxPartRows        = 8
)

// Slider indices
const (
	sliderSlice = iota
	sliderOpacity
)

var (
	sliceColor   = rl.NewColor(80, 160, 255, 255)
	opacityColor = rl.NewColor(255, 180, 80, 255)
	panelBg      = rl.NewColor(20, 25, 35, 230)
	panelBorder  = rl.NewColor(80, 160, 255, 255)
	buttonBg     = rl.NewColor(40, 45, 55, 255)
	buttonHover  = rl.NewColor(50, 55, 65, 255)
	toggleOn     = rl.NewColor(100, 255, 100, 255)
	toggleOff    = rl.NewColor(200, 100, 100, 255)
)

// drawToolPanel renders the draggable panel with the slice and opacity
// sliders and the per-part toggles
func (app *App) drawToolPanel() {
	parts := app.parts()
	rows := min(len(parts), maxPartRows)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	panelHeight := float32(panelTitleHeight + 2*sliderSpacing + 30 + float32(rows)*partRowHeight + 30)

	offset := app.controller.Panel.Position
	panelX := screenWidth - panelWidth - 20 + float32(offset.X)
	panelY := screenHeight - panelHeight - 50 + float32(offset.Y) // Above version/FPS

	app.Interaction.panelBounds = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight}
	app.Interaction.panelTitleBar = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelTitleHeight}

	rl.DrawRectangleRounded(app.Interaction.panelBounds, 0.1, 8, panelBg)
	rl.DrawRectangleRoundedLines(app.Interaction.panelBounds, 0.1, 8, panelBorder)

	titleColor := rl.NewColor(100, 200, 255, 255)
	if app.controller.Panel.Dragging() {
		titleColor = rl.White
	}
	rl.DrawTextEx(app.UI.font, "TOOLS", rl.Vector2{X: panelX + panelPadding, Y: panelY + 8}, 16, 1, titleColor)

	separatorY := panelY + panelTitleHeight
	rl.DrawLineEx(
		rl.Vector2{X: panelX + panelPadding, Y: separatorY},
		rl.Vector2{X: panelX + panelWidth - panelPadding, Y: separatorY},
		1,
		rl.NewColor(60, 80, 120, 150),
	)

	currentY := separatorY + 15
	app.drawSlider(rl.Vector2{X: panelX + panelPadding, Y: currentY}, "Slice", app.session.Slice(), sliderSlice, sliceColor)
	currentY += sliderSpacing
	app.drawSlider(rl.Vector2{X: panelX + panelPadding, Y: currentY}, "Opacity", app.session.Opacity(), sliderOpacity, opacityColor)
	currentY += sliderSpacing

	rl.DrawTextEx(app.UI.font, "Parts:", rl.Vector2{X: panelX + panelPadding, Y: currentY}, 14, 1, rl.Yellow)
	currentY += 20

	for i := 0; i < rows; i++ {
		app.drawPartRow(parts[i], i, rl.Vector2{X: panelX + panelPadding, Y: currentY})
		currentY += partRowHeight
	}

	helpText := "Tab: Part | I: Isolate | T: Transparent"
	rl.DrawTextEx(app.UI.font, helpText, rl.Vector2{X: panelX + panelPadding, Y: panelY + panelHeight - 20}, 10, 1, rl.Gray)
}

// drawPartRow draws one part name with its isolation and transparency toggles
func (app *App) drawPartRow(part string, index int, pos rl.Vector2) {
	nameColor := rl.LightGray
	if index == app.View.activePart%max(len(app.parts()), 1) {
		nameColor = rl.White
	}
	treatment := app.controller.PartTreatment(part)
	if treatment.Dimmed {
		nameColor = rl.Gray
	}
	rl.DrawTextEx(app.UI.font, truncate(part, 22), rl.Vector2{X: pos.X, Y: pos.Y + 3}, 12, 1, nameColor)

	isolateX := pos.X + panelWidth - panelPadding*2 - 100
	app.drawToggle(rl.Rectangle{X: isolateX, Y: pos.Y, Width: 45, Height: 18}, "Iso", app.session.IsIsolated(part), func() {
		app.View.activePart = index
		app.controller.ToggleIsolation(part)
	})
	app.drawToggle(rl.Rectangle{X: isolateX + 50, Y: pos.Y, Width: 45, Height: 18}, "Xray", app.session.IsTransparent(part), func() {
		app.View.activePart = index
		app.controller.ToggleTransparency(part)
	})
}

// drawToggle draws a small on/off button and registers its click action
func (app *App) drawToggle(bounds rl.Rectangle, label string, on bool, action func()) {
	color := toggleOff
	if on {
		color = toggleOn
	}
	app.drawButton(bounds, label, color, action)
}

// drawButton draws a rounded button and registers its click action
func (app *App) drawButton(bounds rl.Rectangle, label string, color rl.Color, action func()) {
	bg := buttonBg
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds) {
		bg = buttonHover
	}
	rl.DrawRectangleRounded(bounds, 0.3, 8, bg)
	rl.DrawRectangleRoundedLines(bounds, 0.3, 8, color)

	textSize := rl.MeasureTextEx(app.UI.font, label, 12, 1)
	textX := bounds.X + (bounds.Width-textSize.X)/2
	textY := bounds.Y + (bounds.Height-textSize.Y)/2
	rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: textX, Y: textY}, 12, 1, color)

	app.Interaction.buttons = append(app.Interaction.buttons, button{bounds: bounds, action: action})
}

// drawSlider draws a 0..100 slider
func (app *App) drawSlider(pos rl.Vector2, label string, value float64, sliderIndex int, color rl.Color) {
	rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: pos.X, Y: pos.Y - 2}, 11, 1, rl.LightGray)

	trackX := pos.X + 60
	trackY := pos.Y + 2
	trackBounds := rl.Rectangle{X: trackX, Y: trackY, Width: sliderWidth, Height: sliderHeight}

	// Store slider bounds for interaction
	app.Interaction.sliderBounds[sliderIndex] = rl.Rectangle{
		X:      trackX - sliderHandleRadius,
		Y:      trackY - sliderHandleRadius,
		Width:  sliderWidth + sliderHandleRadius*2,
		Height: sliderHeight + sliderHandleRadius*2,
	}

	trackBg := buttonBg
	if app.Interaction.hoveredSlider == sliderIndex {
		trackBg = buttonHover
	}
	rl.DrawRectangleRounded(trackBounds, 0.5, 8, trackBg)

	handleX := trackX + float32(value/100)*sliderWidth

	fillColor := color
	fillColor.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: trackX, Y: trackY, Width: handleX - trackX, Height: sliderHeight}, 0.5, 8, fillColor)

	handleColor := color
	if app.Interaction.activeSlider == sliderIndex {
		handleColor = rl.White
	} else if app.Interaction.hoveredSlider == sliderIndex {
		// Brighten on hover
		handleColor.R = uint8(math.Min(float64(handleColor.R)+30, 255))
		handleColor.G = uint8(math.Min(float64(handleColor.G)+30, 255))
		handleColor.B = uint8(math.Min(float64(handleColor.B)+30, 255))
	}

	handleY := trackY + sliderHeight/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))

	rl.DrawTextEx(app.UI.font, fmt.Sprintf("%.0f%%", value), rl.Vector2{X: trackX + sliderWidth + 10, Y: pos.Y - 2}, 11, 1, rl.LightGray)
}

// handleSliderInput drags the slice and opacity sliders. It reports whether
// the pointer was used.
func (app *App) handleSliderInput(mouse rl.Vector2) bool {
	app.Interaction.hoveredSlider = -1
	for i, bounds := range app.Interaction.sliderBounds {
		if rl.CheckCollisionPointRec(mouse, bounds) {
			app.Interaction.hoveredSlider = i
			break
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.Interaction.hoveredSlider != -1 {
		app.Interaction.activeSlider = app.Interaction.hoveredSlider
	}
	if app.Interaction.activeSlider == -1 {
		return false
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.activeSlider = -1
		return true
	}

	bounds := app.Interaction.sliderBounds[app.Interaction.activeSlider]
	trackX := bounds.X + sliderHandleRadius
	trackWidth := bounds.Width - sliderHandleRadius*2
	value := float64((mouse.X-trackX)/trackWidth) * 100

	// the session clamps to [0, 100]
	switch app.Interaction.activeSlider {
	case sliderSlice:
		app.controller.SetSlice(value)
	case sliderOpacity:
		app.controller.SetOpacity(value)
	}
	return true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
