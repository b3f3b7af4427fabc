package scene

import (
	"github.com/medar/arviewer/pkg/geometry"
)

// Mesh is one drawable primitive: geometry statistics plus its materials.
// Vertex data stays with the asset file; the viewer only needs counts,
// bounds and material state.
type Mesh struct {
	Name          string
	PartID        string // anatomical part this primitive belongs to
	VertexCount   int
	IndexCount    int
	Bounds        geometry.BoundingBox // local space
	Materials     []*Material
	Compressed    bool // geometry is stored with KHR_draco_mesh_compression
	CastShadow    bool
	ReceiveShadow bool
}

// Node is a scene graph node with a local transform
type Node struct {
	Name      string
	Transform geometry.Matrix4
	Meshes    []*Mesh
	Children  []*Node
}

// NewNode creates a node with an identity transform
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: geometry.Identity()}
}

// AddChild appends a child node and returns it
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// Traverse visits n and its descendants depth first with their world transforms
func (n *Node) Traverse(parent geometry.Matrix4, fn func(node *Node, world geometry.Matrix4)) {
	world := parent.Mul(n.Transform)
	fn(n, world)
	for _, child := range n.Children {
		child.Traverse(world, fn)
	}
}

// EachMesh visits every mesh below n with its world transform
func (n *Node) EachMesh(fn func(mesh *Mesh, world geometry.Matrix4)) {
	n.Traverse(geometry.Identity(), func(node *Node, world geometry.Matrix4) {
		for _, mesh := range node.Meshes {
			fn(mesh, world)
		}
	})
}

// WorldBounds returns the box enclosing all meshes below n
func (n *Node) WorldBounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	n.EachMesh(func(mesh *Mesh, world geometry.Matrix4) {
		bbox.Union(mesh.Bounds.Transform(world))
	})
	return bbox
}

// Clone deep-copies the subtree. Materials shared between meshes stay shared
// in the copy, and keep their identity.
func (n *Node) Clone() *Node {
	return n.clone(make(map[*Material]*Material))
}

func (n *Node) clone(materials map[*Material]*Material) *Node {
	c := &Node{
		Name:      n.Name,
		Transform: n.Transform,
		Meshes:    make([]*Mesh, 0, len(n.Meshes)),
		Children:  make([]*Node, 0, len(n.Children)),
	}
	for _, mesh := range n.Meshes {
		mc := *mesh
		mc.Materials = make([]*Material, len(mesh.Materials))
		for i, mat := range mesh.Materials {
			copied, ok := materials[mat]
			if !ok {
				copied = mat.Clone()
				materials[mat] = copied
			}
			mc.Materials[i] = copied
		}
		c.Meshes = append(c.Meshes, &mc)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.clone(materials))
	}
	return c
}
