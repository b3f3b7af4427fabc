package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medar/arviewer/pkg/geometry"
)

func cube(part string, mat *Material) *Mesh {
	return &Mesh{
		Name:        part,
		PartID:      part,
		VertexCount: 24,
		Bounds:      geometry.NewBoundingBoxFromPoints(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 1, 1)),
		Materials:   []*Material{mat},
	}
}

func sampleModel() *Model {
	shared := NewMaterial("muscle")
	root := NewNode("root")
	left := root.AddChild(NewNode("left"))
	left.Transform = geometry.Translation(geometry.NewVector3(-2, 0, 0))
	left.Meshes = append(left.Meshes, cube("left-ventricle", shared))
	right := root.AddChild(NewNode("right"))
	right.Transform = geometry.Translation(geometry.NewVector3(2, 0, 0))
	right.Meshes = append(right.Meshes, cube("right-ventricle", shared), cube("right-ventricle", NewMaterial("valve")))
	return &Model{Name: "heart", Root: root, Animations: []string{"beat"}}
}

func TestWorldBounds(t *testing.T) {
	bbox := sampleModel().Root.WorldBounds()

	assert.Equal(t, geometry.NewVector3(-3, -1, -1), bbox.Min)
	assert.Equal(t, geometry.NewVector3(3, 1, 1), bbox.Max)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := sampleModel()
	copied := orig.Clone()

	copied.Root.Transform = geometry.UniformScaling(3)
	copied.Root.Children[0].Meshes[0].Materials[0].Metalness = 0.1
	copied.Animations[0] = "changed"

	assert.True(t, orig.Root.Transform.IsIdentity())
	assert.Equal(t, 1.0, orig.Root.Children[0].Meshes[0].Materials[0].Metalness)
	assert.Equal(t, "beat", orig.Animations[0])
}

func TestCloneKeepsMaterialSharingAndIdentity(t *testing.T) {
	orig := sampleModel()
	copied := orig.Clone()

	left := copied.Root.Children[0].Meshes[0].Materials[0]
	right := copied.Root.Children[1].Meshes[0].Materials[0]
	assert.Same(t, left, right, "shared material should stay shared in the clone")
	assert.Equal(t, orig.Root.Children[0].Meshes[0].Materials[0].ID, left.ID)
	assert.Len(t, copied.Materials(), 2)
}

func TestParts(t *testing.T) {
	assert.Equal(t, []string{"left-ventricle", "right-ventricle"}, sampleModel().Parts())
	assert.Nil(t, (&Model{}).Parts())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#3B82F6")
	require.NoError(t, err)

	r, g, b, a := c.RGBA8()
	assert.Equal(t, [4]uint8{0x3b, 0x82, 0xf6, 0xff}, [4]uint8{r, g, b, a})

	_, err = ParseHexColor("blue")
	assert.Error(t, err)
}

func TestMaterialCapabilities(t *testing.T) {
	std := NewMaterial("std")
	assert.True(t, std.HasMetalness())
	assert.True(t, std.HasRoughness())

	unlit := NewMaterial("unlit")
	unlit.Kind = MaterialUnlit
	assert.True(t, unlit.HasColor())
	assert.False(t, unlit.HasMetalness())
	assert.False(t, unlit.HasRoughness())
	assert.Equal(t, "unlit", unlit.Kind.String())
}
