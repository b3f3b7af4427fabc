package app

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/session"
	"github.com/medar/arviewer/pkg/analysis"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/version"
)

const (
	headerHeight   = 44.0
	infoPanelWidth = 340.0
	lineHeight     = 20.0
)

// drawUI draws the user interface
func (app *App) drawUI() {
	app.Interaction.buttons = app.Interaction.buttons[:0]

	app.drawHeader()
	app.drawInfoPanel()
	app.drawStats()
	app.drawToolPanel()
	app.drawStatus()

	if app.View.showHelp {
		app.drawHelp()
	}

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, 12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, 12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, 12, 1, rl.Lime)
}

// drawHeader draws the model tabs, level tabs, progress and global toggles
func (app *App) drawHeader() {
	screenWidth := float32(rl.GetScreenWidth())
	app.Interaction.headerBounds = rl.Rectangle{X: 0, Y: 0, Width: screenWidth, Height: headerHeight}
	rl.DrawRectangleRec(app.Interaction.headerBounds, rl.NewColor(20, 25, 35, 230))

	x := float32(10)
	y := float32(10)

	for _, m := range app.registry.Models() {
		color := rl.LightGray
		if m.ID == app.Scene.modelID {
			color = rl.NewColor(100, 200, 255, 255)
		}
		width := rl.MeasureTextEx(app.UI.font, m.Label, 12, 1).X + 20
		app.drawButton(rl.Rectangle{X: x, Y: y, Width: width, Height: 24}, m.Label, color, func() {
			app.switchModel(m.ID)
		})
		x += width + 5
	}
	x += 20

	model, registered := app.registry.Model(app.Scene.modelID)
	for _, level := range catalog.Levels {
		if registered && !model.Supports(level) {
			continue
		}
		color := rl.LightGray
		if level == app.session.Level() {
			color = rl.Yellow
		}
		label := strings.ToUpper(string(level[:1])) + string(level[1:])
		width := rl.MeasureTextEx(app.UI.font, label, 12, 1).X + 20
		app.drawButton(rl.Rectangle{X: x, Y: y, Width: width, Height: 24}, label, color, func() {
			app.setLevel(level)
		})
		x += width + 5
	}
	x += 20

	app.drawToggle(rl.Rectangle{X: x, Y: y, Width: 60, Height: 24}, "Labels", app.session.ShowAllLabels(), func() {
		app.session.SetShowAllLabels(!app.session.ShowAllLabels())
	})
	x += 65
	app.drawToggle(rl.Rectangle{X: x, Y: y, Width: 60, Height: 24}, "Rotate", app.controller.AutoRotate, func() {
		app.controller.AutoRotate = !app.controller.AutoRotate
	})
	x += 65
	app.drawButton(rl.Rectangle{X: x, Y: y, Width: 60, Height: 24}, "Reset", rl.Orange, app.session.Reset)

	// Progress bar on the right
	progress := app.session.Progress(session.DefaultProgressTotal)
	barWidth := float32(160)
	barX := screenWidth - barWidth - 20
	progressText := fmt.Sprintf("Progress: %d%%", progress)
	textWidth := rl.MeasureTextEx(app.UI.font, progressText, 12, 1).X
	rl.DrawTextEx(app.UI.font, progressText, rl.Vector2{X: barX - textWidth - 10, Y: y + 6}, 12, 1, rl.LightGray)
	if app.opts.User != "" {
		userText := app.opts.User
		userWidth := rl.MeasureTextEx(app.UI.font, userText, 12, 1).X
		rl.DrawTextEx(app.UI.font, userText, rl.Vector2{X: barX - textWidth - userWidth - 30, Y: y + 6}, 12, 1, rl.Gray)
	}
	track := rl.Rectangle{X: barX, Y: y + 8, Width: barWidth, Height: 8}
	rl.DrawRectangleRounded(track, 0.5, 8, buttonBg)
	fill := track
	fill.Width = barWidth * float32(progress) / 100
	rl.DrawRectangleRounded(fill, 0.5, 8, visitedColor)
}

// drawInfoPanel shows the selected landmark
func (app *App) drawInfoPanel() {
	app.Interaction.infoBounds = rl.Rectangle{}

	id, ok := app.session.Selected()
	if !ok {
		return
	}
	lm, ok := app.markers.Catalog().LandmarkByID(id)
	if !ok {
		return
	}

	x := float32(10)
	y := float32(headerHeight + 10)
	textX := x + panelPadding
	textWidth := float32(infoPanelWidth - panelPadding*2)

	var lines []infoLine
	add := func(text string, size float32, color rl.Color) {
		for _, l := range wrapText(app.UI.font, text, size, textWidth) {
			lines = append(lines, infoLine{text: l, size: size, color: color})
		}
	}
	gap := func() { lines = append(lines, infoLine{}) }

	add(lm.Title, 18, rl.White)
	add(fmt.Sprintf("[%s]", lm.Type), 12, rl.Gray)
	gap()
	add(lm.Description, 13, rl.LightGray)
	if lm.DetailedInfo != "" {
		gap()
		add(lm.DetailedInfo, 12, rl.LightGray)
	}
	if len(lm.Functions) > 0 {
		gap()
		add("Functions:", 14, rl.Yellow)
		for _, f := range lm.Functions[:min(2, len(lm.Functions))] {
			add("- "+f, 12, rl.LightGray)
		}
	}
	if len(lm.MedicalTerms) > 0 {
		gap()
		add("Medical terms:", 14, rl.Yellow)
		add(strings.Join(lm.MedicalTerms[:min(3, len(lm.MedicalTerms))], ", "), 12, rl.NewColor(100, 200, 255, 255))
	}
	if lm.ClinicalSignificance != "" {
		gap()
		add("Clinical significance:", 14, rl.Yellow)
		add(lm.ClinicalSignificance, 12, rl.LightGray)
	}
	if related := app.markers.Catalog().Related(lm); len(related) > 0 {
		titles := make([]string, len(related))
		for i, r := range related {
			titles[i] = r.Title
		}
		gap()
		add("Related: "+strings.Join(titles, ", "), 12, rl.Gray)
	}

	height := float32(panelPadding * 2)
	for _, l := range lines {
		height += lineAdvance(l)
	}

	bounds := rl.Rectangle{X: x, Y: y, Width: infoPanelWidth, Height: height}
	app.Interaction.infoBounds = bounds
	rl.DrawRectangleRounded(bounds, 0.05, 8, panelBg)
	border := panelBorder
	if c, err := scene.ParseHexColor(lm.Color); err == nil {
		border = toRLColor(c, 1)
	}
	rl.DrawRectangleRoundedLines(bounds, 0.05, 8, border)

	ty := y + panelPadding
	for _, l := range lines {
		if l.text != "" {
			rl.DrawTextEx(app.UI.font, l.text, rl.Vector2{X: textX, Y: ty}, l.size, 1, l.color)
		}
		ty += lineAdvance(l)
	}

	app.drawButton(rl.Rectangle{X: x + infoPanelWidth - 30, Y: y + 8, Width: 22, Height: 20}, "x", rl.LightGray, app.session.Deselect)
}

type infoLine struct {
	text  string
	size  float32
	color rl.Color
}

func lineAdvance(l infoLine) float32 {
	if l.size == 0 {
		return 8
	}
	return l.size + 5
}

// drawStats shows the statistics of the loaded model
func (app *App) drawStats() {
	info := app.Scene.info
	if info == nil {
		return
	}

	y := float32(rl.GetScreenHeight()) - 30 - lineHeight*7
	x := float32(10)
	if app.Interaction.infoBounds.Width > 0 && app.Interaction.infoBounds.Y+app.Interaction.infoBounds.Height > y {
		return
	}

	rl.DrawTextEx(app.UI.font, app.Scene.title, rl.Vector2{X: x, Y: y}, 16, 1, rl.Yellow)
	y += lineHeight
	stats := []string{
		fmt.Sprintf("  Meshes: %d | Materials: %d", info.MeshCount, info.MaterialCount),
		fmt.Sprintf("  Vertices: %s | Triangles: %s", analysis.FormatCount(info.VertexCount), analysis.FormatCount(info.TriangleCount)),
		fmt.Sprintf("  Size: %.2f x %.2f x %.2f", info.Dimensions.X, info.Dimensions.Y, info.Dimensions.Z),
		fmt.Sprintf("  File: %s", analysis.FormatBytes(info.FileSize)),
	}
	if info.HasAnimations {
		stats = append(stats, fmt.Sprintf("  Animations: %s", strings.Join(info.AnimationNames, ", ")))
	}
	if info.Compressed {
		stats = append(stats, "  Draco compressed")
	}
	for _, s := range stats {
		rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, 12, 1, rl.LightGray)
		y += lineHeight - 4
	}
}

// drawStatus draws the loading indicator and load errors
func (app *App) drawStatus() {
	screenWidth := float32(rl.GetScreenWidth())

	if app.Loading.isLoading {
		elapsed := time.Since(app.Loading.loadingStartTime).Seconds()
		spinnerChars := []string{"|", "/", "-", "\\"}
		spinnerIdx := int(elapsed*10) % len(spinnerChars)
		loadingText := fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[spinnerIdx], elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := (screenWidth - boxWidth) / 2
		boxY := float32(headerHeight + 20)

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

		textSize := rl.MeasureTextEx(app.UI.font, loadingText, 18, 1)
		textX := boxX + (boxWidth-textSize.X)/2
		textY := boxY + (boxHeight-textSize.Y)/2
		rl.DrawTextEx(app.UI.font, loadingText, rl.Vector2{X: textX, Y: textY}, 18, 1, rl.Yellow)
		return
	}

	if app.Scene.loadErr != "" {
		text := "Failed to load model: " + app.Scene.loadErr
		size := rl.MeasureTextEx(app.UI.font, text, 14, 1)
		x := (screenWidth - size.X) / 2
		y := float32(headerHeight + 20)
		rl.DrawRectangle(int32(x-10), int32(y-6), int32(size.X+20), int32(size.Y+12), rl.NewColor(60, 0, 0, 200))
		rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: x, Y: y}, 14, 1, rl.NewColor(255, 120, 120, 255))
	}
}

// drawHelp lists the keyboard shortcuts
func (app *App) drawHelp() {
	help := []string{
		"Left Drag: Rotate | Mouse Wheel: Zoom | Arrows: Move camera",
		"Click marker: Select | Esc: Deselect | Home/R: Reset",
		"1/2/3: Basic/Intermediate/Advanced | L: All labels",
		"Tab: Next part | I: Isolate | T: Transparent",
		"W: Wireframe | A: Auto-rotate | PgUp/PgDn: Switch model",
		"Drag TOOLS title bar to move the panel | H: Hide help",
	}

	width := float32(0)
	for _, h := range help {
		width = max(width, rl.MeasureTextEx(app.UI.font, h, 14, 1).X)
	}
	x := (float32(rl.GetScreenWidth()) - width) / 2
	y := float32(rl.GetScreenHeight()) - 60 - lineHeight*float32(len(help))

	bounds := rl.Rectangle{X: x - panelPadding, Y: y - 10, Width: width + panelPadding*2, Height: lineHeight*float32(len(help)) + 20}
	rl.DrawRectangleRounded(bounds, 0.1, 8, panelBg)
	for _, h := range help {
		rl.DrawTextEx(app.UI.font, h, rl.Vector2{X: x, Y: y}, 14, 1, rl.LightGray)
		y += lineHeight
	}
}

// wrapText splits text into lines no wider than maxWidth
func wrapText(font rl.Font, text string, size, maxWidth float32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if rl.MeasureTextEx(font, candidate, size, 1).X > maxWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
