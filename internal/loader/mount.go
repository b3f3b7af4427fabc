package loader

import (
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

// Mount returns a copy of a decoded model prepared for display. The source
// model is not modified.
func Mount(src *scene.Model, opts Options) *scene.Model {
	model := src.Clone()
	if model.Root == nil {
		return model
	}

	fit(model.Root, opts)
	applyMaterials(model, opts)
	return model
}

// fit centers the model at the origin and, with auto scale, scales it so its
// largest dimension fills the viewing bound less the margin. Scaling without
// centering is not applied.
func fit(root *scene.Node, opts Options) {
	if !opts.EnableAutoCenter {
		return
	}

	bbox := root.WorldBounds()
	if bbox.IsEmpty() {
		return
	}

	adjust := geometry.Translation(bbox.Center().Negate())
	if opts.EnableAutoScale {
		if maxDim := bbox.MaxDimension(); maxDim > 0 {
			adjust = geometry.UniformScaling(ViewBound / FitMargin / maxDim).Mul(adjust)
		}
	}
	root.Transform = adjust.Mul(root.Transform)
}

// applyMaterials enables shadows on every mesh and applies the override,
// wireframe and transparency to each distinct material once
func applyMaterials(model *scene.Model, opts Options) {
	override := opts.MaterialOverride
	color, hasColor := override.color()

	model.Root.EachMesh(func(mesh *scene.Mesh, _ geometry.Matrix4) {
		mesh.CastShadow = true
		mesh.ReceiveShadow = true
	})

	for _, mat := range model.Materials() {
		if override != nil {
			if hasColor && mat.HasColor() {
				mat.Color = color
			}
			if override.Metalness != nil && mat.HasMetalness() {
				mat.Metalness = *override.Metalness
			}
			if override.Roughness != nil && mat.HasRoughness() {
				mat.Roughness = *override.Roughness
			}
		}

		mat.Wireframe = opts.ShowWireframe
		if mat.Opacity < 1 {
			mat.Transparent = true
		}
	}
}
