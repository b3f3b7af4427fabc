package app

import (
	"math"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/pkg/stl"
)

// facetsToMesh converts STL facets to a Raylib mesh with baked lighting
func facetsToMesh(facets []stl.Facet) rl.Mesh {
	triangleCount := len(facets)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, facet := range facets {
		normal := facet.Normal
		if normal.Length() == 0 {
			normal = facet.V2.Sub(facet.V1).Cross(facet.V3.Sub(facet.V1))
		}
		normal = normal.Normalize()

		// Min 30% ambient, max 100% diffuse
		light := math.Max(0.3, -normal.Dot(lightDir))
		shade := uint8(math.Min(255, 230*light))

		for _, v := range facet.Vertices() {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = shade
			colors[idx*4+1] = shade
			colors[idx*4+2] = shade
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// drawScene draws the loaded model, the placeholder or bare bounds
func (app *App) drawScene(elapsed float64) {
	switch {
	case app.Scene.fallback != nil:
		app.drawFallback(app.Scene.fallback, elapsed)
	case app.Scene.hasGPU:
		app.drawModel(app.modelTransform(elapsed))
	case app.Scene.model != nil:
		rl.DrawBoundingBox(toRLBox(app.Scene.bounds), rl.Gray)
		if app.View.showWireframe {
			app.drawWireframe()
		}
	}

	if app.session.Slice() > 0 && !app.Scene.bounds.IsEmpty() {
		app.drawSlicePlane()
	}
}

// drawModel draws every mesh with its part treatment. Opaque meshes go
// first so blended ones composite over them.
func (app *App) drawModel(transform geometry.Matrix4) {
	gpu := &app.Scene.gpu
	matrix := toRLMatrix(transform)
	gpu.Transform = matrix

	meshes := gpu.GetMeshes()
	materials := gpu.GetMaterials()
	meshMaterials := unsafe.Slice(gpu.MeshMaterial, gpu.MeshCount)
	parts := app.Scene.model.PrimitiveParts
	override, hasOverride := app.overrideColor()

	for _, blended := range []bool{false, true} {
		for i, mesh := range meshes {
			part := ""
			if i < len(parts) {
				part = parts[i]
			}
			treatment := app.controller.PartTreatment(part)
			if treatment.Transparent() != blended {
				continue
			}
			if i < len(app.Scene.meshBounds) && app.controller.Sliced(app.Scene.bounds, app.Scene.meshBounds[i]) {
				continue
			}

			material := materials[meshMaterials[i]]
			albedo := material.GetMap(rl.MapAlbedo)
			saved := albedo.Color
			base := saved
			if hasOverride {
				base = override
			}
			albedo.Color = rl.ColorAlpha(base, float32(float64(base.A)/255*treatment.Opacity))
			rl.DrawMesh(mesh, material, matrix)
			albedo.Color = saved
		}
	}

	if app.View.showWireframe {
		app.drawWireframe()
	}
}

// overrideColor returns the material override color, if one is configured
func (app *App) overrideColor() (rl.Color, bool) {
	override := app.opts.Load.MaterialOverride
	if override == nil || override.Color == "" {
		return rl.Color{}, false
	}
	c, err := scene.ParseHexColor(override.Color)
	if err != nil {
		return rl.Color{}, false
	}
	return toRLColor(c, 1), true
}

// computeMeshBounds caches the fitted bounds of every GPU mesh for slicing
func (app *App) computeMeshBounds() {
	app.Scene.meshBounds = app.Scene.meshBounds[:0]
	for _, mesh := range app.Scene.gpu.GetMeshes() {
		box := rl.GetMeshBoundingBox(mesh)
		bounds := geometry.NewBoundingBoxFromPoints(fromRL(box.Min), fromRL(box.Max))
		app.Scene.meshBounds = append(app.Scene.meshBounds, bounds.Transform(app.Scene.fit))
	}
}

// drawFallback draws the placeholder heart, turning with the view
func (app *App) drawFallback(f *loader.Fallback, elapsed float64) {
	angle := app.controller.ModelRotation(elapsed) * 180 / math.Pi

	rl.PushMatrix()
	rl.Rotatef(float32(angle), 0, 1, 0)
	for _, shape := range f.Shapes {
		col := toRLColor(shape.Color, shape.Opacity)
		center := toRL(shape.Center)

		switch shape.Kind {
		case loader.ShapeSphere:
			rl.DrawSphere(center, float32(shape.Radius), col)
		case loader.ShapeCone:
			// local +Y axis rotated around Z; the base sits at -Y
			axis := geometry.NewVector3(-math.Sin(shape.RotateZ), math.Cos(shape.RotateZ), 0)
			base := shape.Center.Sub(axis.Scale(shape.Height / 2))
			tip := shape.Center.Add(axis.Scale(shape.Height / 2))
			rl.DrawCylinderEx(toRL(base), toRL(tip), float32(shape.Radius), 0, 24, col)
		case loader.ShapeBox:
			rl.PushMatrix()
			rl.Translatef(center.X, center.Y, center.Z)
			rl.Rotatef(float32(shape.RotateZ*180/math.Pi), 0, 0, 1)
			rl.DrawCubeV(rl.Vector3{}, toRL(shape.Size), col)
			rl.PopMatrix()
		}
	}
	rl.PopMatrix()
}

// drawSlicePlane shows the horizontal cut as a translucent quad
func (app *App) drawSlicePlane() {
	bounds := app.Scene.bounds
	y := app.controller.SlicePlane(bounds)
	size := bounds.Size()
	center := bounds.Center()
	margin := 1.2

	rl.DrawPlane(
		rl.Vector3{X: float32(center.X), Y: float32(y), Z: float32(center.Z)},
		rl.Vector2{X: float32(size.X * margin), Y: float32(size.Z * margin)},
		rl.NewColor(80, 160, 255, 60),
	)
}

func toRLColor(c scene.Color, opacity float64) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.ColorAlpha(rl.NewColor(r, g, b, a), float32(c.A*opacity))
}

func toRLBox(b geometry.BoundingBox) rl.BoundingBox {
	return rl.BoundingBox{Min: toRL(b.Min), Max: toRL(b.Max)}
}
