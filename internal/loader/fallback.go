package loader

import (
	"math"

	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// ShapeKind is a primitive used by the placeholder model
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeCone
	ShapeBox
)

// Shape is one primitive of the placeholder model
type Shape struct {
	Kind     ShapeKind
	Center   geometry.Vector3
	Radius   float64          // sphere and cone base
	Height   float64          // cone
	Size     geometry.Vector3 // box
	RotateZ  float64          // radians
	Color    scene.Color
	Opacity  float64
	Emissive bool
}

// Bounds returns the axis-aligned box enclosing the shape
func (s Shape) Bounds() geometry.BoundingBox {
	var half geometry.Vector3
	switch s.Kind {
	case ShapeSphere:
		half = geometry.NewVector3(s.Radius, s.Radius, s.Radius)
	case ShapeCone:
		half = geometry.NewVector3(s.Radius, s.Height/2, s.Radius)
	case ShapeBox:
		half = s.Size.Scale(0.5)
	}
	return geometry.NewBoundingBoxFromPoints(s.Center.Sub(half), s.Center.Add(half))
}

// Fallback is the placeholder heart shown when an asset cannot be loaded
type Fallback struct {
	Message string
	Shapes  []Shape
}

// Bounds returns the box enclosing every shape
func (f *Fallback) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, s := range f.Shapes {
		bbox.Union(s.Bounds())
	}
	return bbox
}

func mustColor(hex string) scene.Color {
	c, err := scene.ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// NewFallback builds the placeholder: two atria spheres, an inverted cone
// for the ventricles and an error indicator above. debug adds a slab where
// the message is shown.
func NewFallback(message string, debug bool) *Fallback {
	atrium := mustColor("#e74c3c")
	ventricle := mustColor("#c0392b")

	f := &Fallback{
		Message: message,
		Shapes: []Shape{
			{Kind: ShapeSphere, Center: geometry.NewVector3(-0.6, 0.8, 0), Radius: 0.5, Color: atrium, Opacity: 1},
			{Kind: ShapeSphere, Center: geometry.NewVector3(0.6, 0.8, 0), Radius: 0.5, Color: atrium, Opacity: 1},
			{Kind: ShapeCone, Center: geometry.NewVector3(0, -0.2, 0), Radius: 0.8, Height: 1.5, RotateZ: math.Pi, Color: ventricle, Opacity: 1},
			{Kind: ShapeSphere, Center: geometry.NewVector3(0, 2.5, 0), Radius: 0.1, Color: mustColor("#f39c12"), Opacity: 1, Emissive: true},
		},
	}
	if debug {
		f.Shapes = append(f.Shapes, Shape{
			Kind:    ShapeBox,
			Center:  geometry.NewVector3(0, -2, 0),
			Size:    geometry.NewVector3(4, 0.5, 0.1),
			Color:   mustColor("#34495e"),
			Opacity: 0.8,
		})
	}
	return f
}
