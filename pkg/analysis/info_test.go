package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

func TestAnalyzeScene(t *testing.T) {
	shared := scene.NewMaterial("tissue")
	root := scene.NewNode("root")
	root.Meshes = []*scene.Mesh{
		{VertexCount: 10, Bounds: geometry.NewBoundingBoxFromPoints(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 2, 3)), Materials: []*scene.Material{shared}},
		{VertexCount: 5, Bounds: geometry.NewBoundingBoxFromPoints(geometry.NewVector3(-1, 0, 0), geometry.NewVector3(0, 1, 1)), Materials: []*scene.Material{shared, scene.NewMaterial("valve")}, Compressed: true},
	}
	model := &scene.Model{Root: root, Animations: []string{"systole", "diastole"}, FileSize: 2048}

	info := AnalyzeScene(model)

	assert.Equal(t, 2, info.MeshCount)
	assert.Equal(t, 15, info.VertexCount)
	assert.Equal(t, 5, info.TriangleCount)
	assert.Equal(t, 2, info.MaterialCount)
	assert.True(t, info.HasAnimations)
	assert.Equal(t, []string{"systole", "diastole"}, info.AnimationNames)
	assert.True(t, info.Compressed)
	assert.Equal(t, int64(2048), info.FileSize)
	assert.Equal(t, geometry.NewVector3(-1, 0, 0), info.BoundingBox.Min)
	assert.Equal(t, geometry.NewVector3(2, 2, 3), info.Dimensions)
}

func TestAnalyzeSceneTriangleApproximationFloors(t *testing.T) {
	root := scene.NewNode("root")
	root.Meshes = []*scene.Mesh{{VertexCount: 4}, {VertexCount: 4}}

	info := AnalyzeScene(&scene.Model{Root: root})

	assert.Equal(t, 8, info.VertexCount)
	assert.Equal(t, 2, info.TriangleCount)
	assert.False(t, info.HasAnimations)
	assert.Empty(t, info.AnimationNames)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "12,345,678", FormatCount(12345678))
	assert.Equal(t, "-4,200", FormatCount(-4200))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.0 KiB", FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", FormatBytes(3*512*1024))
}
