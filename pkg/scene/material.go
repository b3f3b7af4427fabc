package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaterialKind distinguishes shading models. Only standard (PBR) materials
// carry metalness and roughness.
type MaterialKind int

const (
	MaterialStandard MaterialKind = iota
	MaterialUnlit
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialStandard:
		return "standard"
	case MaterialUnlit:
		return "unlit"
	default:
		return "unknown"
	}
}

// Color is a linear RGBA color with components in [0, 1]
type Color struct {
	R, G, B, A float64
}

// White is the default base color for materials that do not declare one
var White = Color{R: 1, G: 1, B: 1, A: 1}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA"
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// RGBA8 converts the color to 8-bit channels
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Material describes surface shading for one or more meshes.
// ID is the material's identity: clones keep it so that a copied scene
// reports the same distinct material count as its source.
type Material struct {
	ID          uuid.UUID
	Name        string
	Kind        MaterialKind
	Color       Color
	Metalness   float64
	Roughness   float64
	Opacity     float64
	Transparent bool
	Wireframe   bool
}

// NewMaterial creates a standard material with a fresh identity
func NewMaterial(name string) *Material {
	return &Material{
		ID:        uuid.New(),
		Name:      name,
		Kind:      MaterialStandard,
		Color:     White,
		Metalness: 1,
		Roughness: 1,
		Opacity:   1,
	}
}

// HasColor reports whether the material exposes a base color
func (m *Material) HasColor() bool {
	return true
}

// HasMetalness reports whether the material exposes a metalness factor
func (m *Material) HasMetalness() bool {
	return m.Kind == MaterialStandard
}

// HasRoughness reports whether the material exposes a roughness factor
func (m *Material) HasRoughness() bool {
	return m.Kind == MaterialStandard
}

// Clone returns a copy that shares the original identity
func (m *Material) Clone() *Material {
	c := *m
	return &c
}
