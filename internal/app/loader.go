package app

import (
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"

	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/pkg/analysis"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/pkg/stl"
)

// errNotRenderable is reported when an asset decodes but raylib cannot
// upload its geometry, e.g. Draco-compressed primitives
var errNotRenderable = errors.New("geometry cannot be rendered")

// startLoad loads the current source in the background
func (app *App) startLoad() {
	app.Loading.isLoading = true
	app.Loading.loadingStartTime = time.Now()
	app.Loading.generation = app.loader.LoadAsync(app.ctx, app.Scene.source, app.opts.Load)
	log.Info().Str("source", app.Scene.source).Uint64("generation", app.Loading.generation).Msg("loading model")
}

// switchModel replaces the displayed model with another registry model and
// resets the session
func (app *App) switchModel(id string) {
	if id == app.Scene.modelID {
		return
	}
	m, ok := app.registry.Model(id)
	if !ok {
		return
	}

	app.Scene.modelID = m.ID
	app.Scene.source = app.registry.AssetURL(m)
	app.Scene.title = m.Label
	app.session.SwitchModel(m.ID)
	app.markers.SetCatalog(app.registry.CatalogFor(m.ID))
	app.View.activePart = 0
	app.startLoad()

	if app.opts.Watch {
		if err := app.setupFileWatcher(); err != nil {
			log.Warn().Err(err).Msg("auto-reload will not be available")
		}
	}
}

// setupFileWatcher reloads the current source when it changes on disk
func (app *App) setupFileWatcher() error {
	source := app.Scene.source
	err := app.loader.Watch(source, func(path string) {
		log.Info().Str("path", path).Msg("file changed")
		app.Loading.needsReload.Store(true)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", source, err)
	}
	app.Loading.watching = source
	return nil
}

// applyLoadResult applies a finished background load (must be called on
// main thread)
func (app *App) applyLoadResult() {
	res, ok := app.loader.Poll(loader.Callbacks{
		OnLoaded: func(ok bool, info *analysis.SceneInfo) {
			if ok {
				log.Info().Int("meshes", info.MeshCount).Int("vertices", info.VertexCount).Msg("model loaded")
			}
		},
		OnError: func(message string) {
			log.Error().Str("source", app.Scene.source).Msg(message)
		},
	})
	if !ok {
		return
	}

	// A reload of the same model keeps the camera where the user left it
	reload := res.OK() && app.Scene.model != nil && res.Path == app.Scene.loaded
	app.Loading.isLoading = false
	app.unloadModel()

	if !res.OK() {
		if res.Fallback == nil {
			res.Fallback = loader.NewFallback(res.Err.Error(), app.opts.Debug)
		}
		app.Scene.model = nil
		app.Scene.info = nil
		app.Scene.fallback = res.Fallback
		app.Scene.loadErr = res.Fallback.Message
		app.Scene.fit = geometry.Identity()
		app.Scene.bounds = res.Fallback.Bounds()
		app.Scene.loaded = ""
		app.frameCamera(app.Scene.bounds)
		return
	}

	app.Scene.model = res.Model
	app.Scene.info = res.Info
	app.Scene.fallback = nil
	app.Scene.loadErr = ""
	// Decoded roots carry an identity transform, so the root of the mounted
	// copy holds exactly the fit
	app.Scene.fit = res.Model.Root.Transform
	app.Scene.bounds = res.Model.Root.WorldBounds()

	gpu, err := uploadModel(res.Model)
	if err != nil {
		app.Scene.loadErr = err.Error()
		log.Warn().Err(err).Str("source", app.Scene.source).Msg("showing bounds only")
	} else {
		app.Scene.gpu = gpu
		app.Scene.hasGPU = true
		app.computeMeshBounds()
	}

	if !reload {
		app.frameCamera(app.Scene.bounds)
	}
	app.Scene.loaded = res.Path

	elapsed := time.Since(app.Loading.loadingStartTime)
	log.Debug().Dur("elapsed", elapsed).Bool("reload", reload).Msg("model applied")
}

// uploadModel creates the GPU model for a decoded asset
func uploadModel(model *scene.Model) (rl.Model, error) {
	if model.LocalPath == "" {
		return rl.Model{}, fmt.Errorf("%w: no local file", errNotRenderable)
	}

	if model.Format == "stl" {
		facets, err := stl.ReadFacets(model.LocalPath)
		if err != nil {
			return rl.Model{}, fmt.Errorf("failed to read STL facets: %w", err)
		}
		mesh := facetsToMesh(facets)
		return rl.LoadModelFromMesh(mesh), nil
	}

	gpu := rl.LoadModel(model.LocalPath)
	if !rl.IsModelValid(gpu) || gpu.MeshCount == 0 {
		if rl.IsModelValid(gpu) {
			rl.UnloadModel(gpu)
		}
		return rl.Model{}, fmt.Errorf("%w: %s", errNotRenderable, model.Name)
	}
	if len(model.PrimitiveParts) != int(gpu.MeshCount) {
		log.Warn().
			Int("parts", len(model.PrimitiveParts)).
			Int32("meshes", gpu.MeshCount).
			Msg("primitive count mismatch, part treatments may be misassigned")
	}
	return gpu, nil
}

// unloadModel releases GPU resources of the displayed model
func (app *App) unloadModel() {
	if !app.Scene.hasGPU {
		return
	}
	rl.UnloadModel(app.Scene.gpu)
	app.Scene.gpu = rl.Model{}
	app.Scene.hasGPU = false
}
