// Package gltfio converts glTF 2.0 assets into the viewer's scene graph.
package gltfio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// Extension names the decoder looks for
const (
	ExtDraco = "KHR_draco_mesh_compression"
	ExtUnlit = "KHR_materials_unlit"
)

// ErrNoScene is returned when a document has no nodes to show
var ErrNoScene = errors.New("gltf: document has no scene")

// Open decodes a .gltf or .glb file
func Open(path string) (*scene.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	model, err := FromDocument(doc, name)
	if err != nil {
		return nil, err
	}

	model.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	model.LocalPath = path
	if stat, err := os.Stat(path); err == nil {
		model.FileSize = stat.Size()
	}
	return model, nil
}

// FromDocument builds a scene graph from a decoded document. Only the
// default scene is converted; when none is declared the first scene is used,
// and a document without scenes converts its root nodes.
func FromDocument(doc *gltf.Document, name string) (*scene.Model, error) {
	roots, err := rootNodes(doc)
	if err != nil {
		return nil, err
	}

	c := &converter{
		doc:       doc,
		materials: make(map[int]*scene.Material),
		nodeParts: make(map[int][]string),
	}

	root := scene.NewNode(name)
	for _, idx := range roots {
		child, err := c.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}

	model := &scene.Model{
		Name:           name,
		Format:         "gltf",
		Root:           root,
		ExtensionsUsed: append([]string(nil), doc.ExtensionsUsed...),
		PrimitiveParts: c.primitiveParts(),
	}
	for i, anim := range doc.Animations {
		animName := anim.Name
		if animName == "" {
			animName = fmt.Sprintf("animation-%d", i)
		}
		model.Animations = append(model.Animations, animName)
	}
	return model, nil
}

func rootNodes(doc *gltf.Document) ([]int, error) {
	if len(doc.Nodes) == 0 {
		return nil, ErrNoScene
	}

	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = int(*doc.Scene)
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range: %w", idx, ErrNoScene)
		}
		nodes := make([]int, 0, len(doc.Scenes[idx].Nodes))
		for _, n := range doc.Scenes[idx].Nodes {
			nodes = append(nodes, int(n))
		}
		return nodes, nil
	}

	// no scenes: every node that is nobody's child is a root
	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, child := range n.Children {
			isChild[int(child)] = true
		}
	}
	var nodes []int
	for i := range doc.Nodes {
		if !isChild[i] {
			nodes = append(nodes, i)
		}
	}
	return nodes, nil
}

type converter struct {
	doc       *gltf.Document
	materials map[int]*scene.Material
	nodeParts map[int][]string
}

// maxDepth bounds node recursion so cyclic documents fail instead of overflowing
const maxDepth = 64

func (c *converter) node(idx, depth int) (*scene.Node, error) {
	if idx < 0 || idx >= len(c.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d", maxDepth)
	}

	src := c.doc.Nodes[idx]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node-%d", idx)
	}

	n := scene.NewNode(name)
	n.Transform = nodeTransform(src)

	if src.Mesh != nil {
		meshes, err := c.mesh(int(*src.Mesh), name)
		if err != nil {
			return nil, err
		}
		n.Meshes = meshes
		for _, m := range meshes {
			c.nodeParts[idx] = append(c.nodeParts[idx], m.PartID)
		}
	}

	for _, childIdx := range src.Children {
		child, err := c.node(int(childIdx), depth+1)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (c *converter) mesh(idx int, nodeName string) ([]*scene.Mesh, error) {
	if idx < 0 || idx >= len(c.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}

	src := c.doc.Meshes[idx]
	part := src.Name
	if part == "" {
		part = nodeName
	}

	out := make([]*scene.Mesh, 0, len(src.Primitives))
	for i, prim := range src.Primitives {
		mesh := &scene.Mesh{
			Name:   fmt.Sprintf("%s/%d", part, i),
			PartID: part,
			Bounds: geometry.NewBoundingBox(),
		}
		if _, ok := prim.Extensions[ExtDraco]; ok {
			mesh.Compressed = true
		}

		if posIdx, ok := prim.Attributes["POSITION"]; ok {
			acc, err := c.accessor(int(posIdx))
			if err != nil {
				return nil, err
			}
			mesh.VertexCount = int(acc.Count)
			if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
				mesh.Bounds = geometry.NewBoundingBoxFromPoints(vec3(acc.Min), vec3(acc.Max))
			}
		}
		if prim.Indices != nil {
			acc, err := c.accessor(int(*prim.Indices))
			if err != nil {
				return nil, err
			}
			mesh.IndexCount = int(acc.Count)
		}

		mesh.Materials = []*scene.Material{c.material(prim.Material)}
		out = append(out, mesh)
	}
	return out, nil
}

// primitiveParts lists the part id of every primitive in document node
// order, one entry per primitive of each node's mesh. Nodes outside the
// displayed scene still count.
func (c *converter) primitiveParts() []string {
	var parts []string
	for i, n := range c.doc.Nodes {
		if n.Mesh == nil {
			continue
		}
		if recorded, ok := c.nodeParts[i]; ok {
			parts = append(parts, recorded...)
			continue
		}
		meshIdx := int(*n.Mesh)
		if meshIdx < 0 || meshIdx >= len(c.doc.Meshes) {
			continue
		}
		part := c.doc.Meshes[meshIdx].Name
		if part == "" {
			part = n.Name
		}
		if part == "" {
			part = fmt.Sprintf("node-%d", i)
		}
		for range c.doc.Meshes[meshIdx].Primitives {
			parts = append(parts, part)
		}
	}
	return parts
}

func (c *converter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(c.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return c.doc.Accessors[idx], nil
}

// material converts a glTF material once so primitives sharing it share the
// scene material. Primitives without a material get a fresh default.
func (c *converter) material(ref *uint32) *scene.Material {
	if ref == nil || int(*ref) >= len(c.doc.Materials) {
		return scene.NewMaterial("default")
	}
	idx := int(*ref)
	if mat, ok := c.materials[idx]; ok {
		return mat
	}

	src := c.doc.Materials[idx]
	mat := scene.NewMaterial(src.Name)
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		rgba := pbr.BaseColorFactorOrDefault()
		mat.Color = scene.Color{R: float64(rgba[0]), G: float64(rgba[1]), B: float64(rgba[2]), A: float64(rgba[3])}
		mat.Metalness = float64(pbr.MetallicFactorOrDefault())
		mat.Roughness = float64(pbr.RoughnessFactorOrDefault())
	}
	if _, ok := src.Extensions[ExtUnlit]; ok {
		mat.Kind = scene.MaterialUnlit
		mat.Metalness = 0
		mat.Roughness = 0
	}
	if src.AlphaMode == gltf.AlphaBlend {
		mat.Opacity = mat.Color.A
		mat.Transparent = mat.Opacity < 1
	}

	c.materials[idx] = mat
	return mat
}

func nodeTransform(n *gltf.Node) geometry.Matrix4 {
	var m geometry.Matrix4
	zero := true
	for i, v := range n.Matrix {
		m[i] = float64(v)
		if v != 0 {
			zero = false
		}
	}
	if !zero && !m.IsIdentity() {
		return m
	}

	rotation := [4]float64{0, 0, 0, 1}
	if n.Rotation != [4]float64{} {
		for i, v := range n.Rotation {
			rotation[i] = float64(v)
		}
	}
	scale := geometry.NewVector3(1, 1, 1)
	if n.Scale != [3]float64{} {
		scale = vec3(n.Scale[:])
	}
	translation := vec3(n.Translation[:])

	return geometry.Compose(translation, rotation, scale)
}

func vec3[T float32 | float64](v []T) geometry.Vector3 {
	if len(v) < 3 {
		return geometry.Vector3{}
	}
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
