package scene

import "github.com/medar/arviewer/pkg/geometry"

// Model is a decoded asset: the scene graph plus file-level metadata
type Model struct {
	Name           string
	Format         string // "gltf", "glb" or "stl"
	Root           *Node
	Animations     []string
	ExtensionsUsed []string
	FileSize       int64
	// LocalPath is the on-disk file the asset was decoded from, so a renderer
	// can load the same geometry.
	LocalPath string
	// PrimitiveParts lists the part id of every primitive in the order
	// renderers that flatten glTF node meshes upload them in.
	PrimitiveParts []string
}

// Clone returns a copy whose scene graph can be transformed and restyled
// without touching the original
func (m *Model) Clone() *Model {
	c := *m
	c.Animations = append([]string(nil), m.Animations...)
	c.ExtensionsUsed = append([]string(nil), m.ExtensionsUsed...)
	c.PrimitiveParts = append([]string(nil), m.PrimitiveParts...)
	if m.Root != nil {
		c.Root = m.Root.Clone()
	}
	return &c
}

// Parts returns the distinct part ids of the model in traversal order
func (m *Model) Parts() []string {
	if m.Root == nil {
		return nil
	}
	seen := make(map[string]bool)
	var parts []string
	m.Root.EachMesh(func(mesh *Mesh, _ geometry.Matrix4) {
		if mesh.PartID == "" || seen[mesh.PartID] {
			return
		}
		seen[mesh.PartID] = true
		parts = append(parts, mesh.PartID)
	})
	return parts
}

// Materials returns each distinct material once, in traversal order
func (m *Model) Materials() []*Material {
	if m.Root == nil {
		return nil
	}
	seen := make(map[*Material]bool)
	var out []*Material
	m.Root.EachMesh(func(mesh *Mesh, _ geometry.Matrix4) {
		for _, mat := range mesh.Materials {
			if !seen[mat] {
				seen[mat] = true
				out = append(out, mat)
			}
		}
	})
	return out
}
