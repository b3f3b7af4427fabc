package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/medar/arviewer/internal/marker"
	"github.com/medar/arviewer/pkg/scene"
)

// connectorRadius is the cylinder radius of a width-1 connector line
const connectorRadius = 0.004

var visitedColor = mustRLColor(marker.VisitedColor)

func mustRLColor(hex string) rl.Color {
	c, err := scene.ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return toRLColor(c, 1)
}

// drawMarkers draws connectors, spheres and visited dots in 3D
func (app *App) drawMarkers(markers []marker.Marker) {
	for _, m := range markers {
		col := toRLColor(m.Color, 1)
		anchor := toRL(m.Anchor)

		// Thin cylinders stand in for wide lines, which OpenGL core profiles lack
		radius := float32(m.Style.ConnectorWidth * connectorRadius)
		rl.DrawCylinderEx(anchor, toRL(m.ConnectorEnd), radius, radius, 6, rl.Fade(col, float32(m.Style.ConnectorOpacity)))

		rl.DrawSphere(anchor, float32(m.OuterRadius), rl.Fade(col, float32(m.Style.OuterOpacity)))
		rl.DrawSphere(anchor, float32(m.InnerRadius), rl.Fade(col, float32(m.Style.InnerOpacity)))

		if m.ShowVisited {
			rl.DrawSphere(toRL(m.VisitedPos), marker.VisitedRadius, visitedColor)
		}
	}
}

// drawLabels draws the floating title labels in screen space
func (app *App) drawLabels(markers []marker.Marker) {
	forward := app.Camera.view.Target.Sub(app.Camera.view.Position)
	fontSize := float32(14)

	for _, m := range markers {
		if !m.ShowLabel {
			continue
		}
		// skip labels behind the camera
		if m.LabelPos.Sub(app.Camera.view.Position).Dot(forward) <= 0 {
			continue
		}

		pos := rl.GetWorldToScreen(toRL(m.LabelPos), app.Camera.camera)
		size := rl.MeasureTextEx(app.UI.font, m.Landmark.Title, fontSize, 1)
		padding := float32(6)

		box := rl.Rectangle{
			X:      pos.X - size.X/2 - padding,
			Y:      pos.Y - size.Y/2 - padding,
			Width:  size.X + padding*2,
			Height: size.Y + padding*2,
		}
		rl.DrawRectangleRounded(box, 0.4, 8, rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleRoundedLines(box, 0.4, 8, toRLColor(m.Color, 1))
		rl.DrawTextEx(app.UI.font, m.Landmark.Title, rl.Vector2{X: box.X + padding, Y: box.Y + padding}, fontSize, 1, rl.White)
	}
}
