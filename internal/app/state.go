package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/medar/arviewer/internal/loader"
	"github.com/medar/arviewer/internal/marker"
	"github.com/medar/arviewer/pkg/analysis"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/pkg/viewer"
)

// CameraState holds all camera-related state
type CameraState struct {
	view   *viewer.Camera // orbit camera edited by the interaction controller
	camera rl.Camera3D    // raylib camera rebuilt from view every frame
}

// SceneData holds the mounted model and its GPU resources
type SceneData struct {
	source   string // asset path or URL being displayed
	loaded   string // source of the model currently mounted
	modelID  string // registry id, empty for ad hoc files
	title    string
	model    *scene.Model // mounted copy
	info     *analysis.SceneInfo
	gpu      rl.Model
	hasGPU   bool
	fit      geometry.Matrix4 // asset space to organ space
	bounds   geometry.BoundingBox

	// fitted bounds of every GPU mesh, in mesh order
	meshBounds []geometry.BoundingBox

	fallback *loader.Fallback
	loadErr  string
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showHelp      bool
	activePart    int // index into the model's parts for isolation/transparency keys
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	mouseDownPos  rl.Vector2
	pressConsumed bool // the last press hit a marker
	isRotating    bool
	cursor        marker.Cursor
	activeSlider  int // -1=none, 0=slice, 1=opacity
	hoveredSlider int
	sliderBounds  [2]rl.Rectangle
	panelBounds   rl.Rectangle
	panelTitleBar rl.Rectangle
	infoBounds    rl.Rectangle
	headerBounds  rl.Rectangle
	buttons       []button // clickable regions registered by the last frame
	overUI        bool
}

// button is a clickable screen region drawn by the UI
type button struct {
	bounds rl.Rectangle
	action func()
}

// LoadState holds background loading and reload state
type LoadState struct {
	isLoading        bool
	loadingStartTime time.Time
	generation       uint64
	needsReload      atomic.Bool // set from the file watcher goroutine
	watching         string
}

// UIState holds UI-related state
type UIState struct {
	font rl.Font
}
