// Package app is the raylib front-end: it owns the window, the main loop
// and the per-frame wiring between loader, markers and interaction.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog/log"

	"github.com/medar/arviewer/internal/catalog"
	"github.com/medar/arviewer/internal/interaction"
	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/internal/marker"
	"github.com/medar/arviewer/internal/session"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/viewer"
)

// Options configures the viewer window
type Options struct {
	// Source is a registry model id or an asset path/URL
	Source        string
	User          string // display name of the signed-in user, if any
	Width         int
	Height        int
	FPS           int
	Debug         bool
	AutoRotate    bool
	ShowAllLabels bool
	Watch         bool
	Load          loader.Options
}

// App is the viewer application
type App struct {
	Camera      CameraState
	Scene       SceneData
	View        ViewSettings
	Interaction InteractionState
	Loading     LoadState
	UI          UIState

	registry   *catalog.Registry
	loader     *loader.Loader
	session    *session.Session
	controller *interaction.Controller
	markers    *marker.Layer
	opts       Options

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the application for a registry and a loader. No window is
// opened until Run.
func New(reg *catalog.Registry, ld *loader.Loader, opts Options) *App {
	app := &App{
		registry:    reg,
		loader:      ld,
		opts:        opts,
		View:        ViewSettings{showWireframe: opts.Load.ShowWireframe},
		Interaction: InteractionState{activeSlider: -1, hoveredSlider: -1},
	}

	app.Scene.modelID, app.Scene.source, app.Scene.title = resolveSource(reg, opts.Source)
	app.Scene.fit = geometry.Identity()
	app.session = session.New(app.sessionKey())
	app.session.SetShowAllLabels(opts.ShowAllLabels)

	app.Camera.view = viewer.NewCamera(geometry.Vector3{}, 5)
	app.Camera.view.RotationX = 0.3
	app.Camera.view.RotationY = 0.3
	app.Camera.view.UpdatePosition()
	app.Camera.view.SetHome()

	app.controller = interaction.New(app.session, app.Camera.view)
	app.controller.AutoRotate = opts.AutoRotate
	app.markers = marker.NewLayer(reg.CatalogFor(app.Scene.modelID), app.session)
	return app
}

// resolveSource maps a command line argument to a registry model, falling
// back to treating it as an asset path
func resolveSource(reg *catalog.Registry, source string) (modelID, path, title string) {
	if source == "" {
		models := reg.Models()
		if len(models) == 0 {
			return "", "", ""
		}
		source = models[0].ID
	}
	if m, ok := reg.Model(source); ok {
		return m.ID, reg.AssetURL(m), m.Label
	}
	base := filepath.Base(source)
	return "", source, strings.TrimSuffix(base, filepath.Ext(base))
}

func (app *App) sessionKey() string {
	if app.Scene.modelID != "" {
		return app.Scene.modelID
	}
	return app.Scene.source
}

// Run opens the window and blocks until it is closed
func (app *App) Run() error {
	if app.Scene.source == "" {
		return fmt.Errorf("no model to display")
	}

	app.ctx, app.cancel = context.WithCancel(context.Background())
	defer app.cancel()

	if !app.opts.Debug {
		rl.SetTraceLogLevel(rl.LogWarning)
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(app.opts.Width), int32(app.opts.Height), "MedAR Viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(app.opts.FPS))

	app.UI.font = rl.GetFontDefault()

	app.startLoad()
	if app.opts.Watch {
		if err := app.setupFileWatcher(); err != nil {
			log.Warn().Err(err).Msg("auto-reload will not be available")
		}
	}
	defer app.loader.Close()

	// Main loop
	for {
		// Check for window close (but ESC is handled separately for clearing selection)
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		// Check for Ctrl+C to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		// Check if model needs reloading (file changed)
		if !app.Loading.isLoading && app.Loading.needsReload.CompareAndSwap(true, false) {
			app.startLoad()
		}

		// Apply loaded model if ready (must be on main thread)
		app.applyLoadResult()

		elapsed := app.controller.Elapsed()
		app.markers.Transform = app.viewTransform(elapsed)

		// Update
		app.handleInput()
		app.updateCamera()

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawScene(elapsed)
		markers := app.markers.Build(elapsed)
		app.drawMarkers(markers)
		rl.EndMode3D()

		app.drawLabels(markers)
		app.drawUI()

		rl.EndDrawing()
	}

	app.unloadModel()
	return nil
}
