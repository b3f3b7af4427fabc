package loader

import (
	"github.com/medar/arviewer/pkg/scene"
)

// ViewBound is the size of the standard viewing volume and FitMargin the
// padding kept around a fitted model
const (
	ViewBound = 2.0
	FitMargin = 1.2
)

// MaterialOverride replaces material properties on every mesh of a loaded
// model. Unset fields are left alone, and properties a material does not
// have are skipped.
type MaterialOverride struct {
	Color     string // hex, e.g. "#e74c3c"
	Metalness *float64
	Roughness *float64
}

// Options controls how a model is mounted
type Options struct {
	EnableAutoCenter bool
	EnableAutoScale  bool
	ShowWireframe    bool
	MaterialOverride *MaterialOverride

	// DisableDraco rejects assets with Draco-compressed primitives
	DisableDraco bool
}

// DefaultOptions centers and scales the model
func DefaultOptions() Options {
	return Options{EnableAutoCenter: true, EnableAutoScale: true}
}

// Float returns a pointer to v, for MaterialOverride fields
func Float(v float64) *float64 {
	return &v
}

func (o *MaterialOverride) color() (scene.Color, bool) {
	if o == nil || o.Color == "" {
		return scene.Color{}, false
	}
	c, err := scene.ParseHexColor(o.Color)
	if err != nil {
		return scene.Color{}, false
	}
	return c, true
}
