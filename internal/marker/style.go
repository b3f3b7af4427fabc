// Package marker turns visible landmarks into render descriptions and
// resolves pointer interaction with them.
package marker

import "math"

// Marker geometry, in organ units
const (
	InnerRadius     = 0.06
	OuterRadius     = 0.1
	VisitedRadius   = 0.04
	LabelOffsetY    = 0.15
	ConnectorFactor = -0.3
	VisitedColor    = "#22C55E"
)

// VisitedOffset places the visited dot beside the inner sphere
var VisitedOffset = [3]float64{0.08, 0.08, 0}

// Style is the visual treatment of one marker
type Style struct {
	InnerOpacity     float64
	OuterOpacity     float64
	ConnectorWidth   float64
	ConnectorOpacity float64
}

// StyleFor returns the style for a marker. Selection wins over hover.
func StyleFor(selected, hovered bool) Style {
	switch {
	case selected:
		return Style{InnerOpacity: 0.9, OuterOpacity: 0.4, ConnectorWidth: 3, ConnectorOpacity: 0.3}
	case hovered:
		return Style{InnerOpacity: 0.8, OuterOpacity: 0.3, ConnectorWidth: 2, ConnectorOpacity: 0.3}
	default:
		return Style{InnerOpacity: 0.7, OuterOpacity: 0.15, ConnectorWidth: 1, ConnectorOpacity: 0.3}
	}
}

// PulseScale is the inner sphere scale at elapsed seconds. Selected markers
// hold still at 1.
func PulseScale(elapsed float64, selected bool) float64 {
	if selected {
		return 1
	}
	return 1 + math.Sin(elapsed*3)*0.1
}

// ShowVisited reports whether the visited dot is drawn
func ShowVisited(visited, selected bool) bool {
	return visited && !selected
}

// ShowLabel reports whether the floating label is drawn
func ShowLabel(showAll, hovered bool) bool {
	return showAll || hovered
}
