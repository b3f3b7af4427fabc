package analysis

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// SceneInfo contains the statistics reported for a loaded model
type SceneInfo struct {
	BoundingBox    geometry.BoundingBox
	Dimensions     geometry.Vector3
	MeshCount      int
	VertexCount    int
	TriangleCount  int
	MaterialCount  int
	HasAnimations  bool
	AnimationNames []string
	FileSize       int64
	Compressed     bool // at least one primitive uses Draco compression
}

// AnalyzeScene walks a decoded model and collects its statistics.
//
// TriangleCount is vertexCount/3, which is exact only for non-indexed
// triangle lists. Indexed geometry is counted the same way; the value is
// informational.
func AnalyzeScene(model *scene.Model) *SceneInfo {
	info := &SceneInfo{
		BoundingBox:    geometry.NewBoundingBox(),
		AnimationNames: make([]string, 0, len(model.Animations)),
		FileSize:       model.FileSize,
	}

	if model.Root != nil {
		materials := make(map[uuid.UUID]bool)
		model.Root.EachMesh(func(mesh *scene.Mesh, world geometry.Matrix4) {
			info.MeshCount++
			info.VertexCount += mesh.VertexCount
			info.BoundingBox.Union(mesh.Bounds.Transform(world))
			if mesh.Compressed {
				info.Compressed = true
			}
			for _, mat := range mesh.Materials {
				materials[mat.ID] = true
			}
		})
		info.MaterialCount = len(materials)
	}

	info.TriangleCount = info.VertexCount / 3
	info.Dimensions = info.BoundingBox.Size()
	info.AnimationNames = append(info.AnimationNames, model.Animations...)
	info.HasAnimations = len(info.AnimationNames) > 0

	return info
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatCount formats large counts with thousands separators
func FormatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// FormatBytes formats a byte count with a binary unit
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
