// Package session holds the per-model viewer state: annotation level,
// selection and hover, visited landmarks and the part/slider settings.
package session

import (
	"math"
	"sort"

	"github.com/medar/arviewer/internal/catalog"
)

// DefaultProgressTotal is the number of landmarks a learner is expected to visit
const DefaultProgressTotal = 20

// Session is the state of one viewer. It is owned by the UI thread.
type Session struct {
	model         string
	level         catalog.Level
	selected      string
	hovered       string
	visited       map[string]bool
	visitOrder    []string
	isolated      map[string]bool
	transparent   map[string]bool
	slice         float64
	opacity       float64
	showAllLabels bool

	onReset []func()
}

// New creates a session for a model with everything at its defaults
func New(modelID string) *Session {
	s := &Session{model: modelID}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.level = catalog.LevelBasic
	s.selected = ""
	s.hovered = ""
	s.visited = make(map[string]bool)
	s.visitOrder = nil
	s.isolated = make(map[string]bool)
	s.transparent = make(map[string]bool)
	s.slice = 0
	s.opacity = 100
	s.showAllLabels = false
}

// OnReset registers a hook run after Reset and SwitchModel, used to reset
// the camera together with the state
func (s *Session) OnReset(fn func()) {
	s.onReset = append(s.onReset, fn)
}

func (s *Session) notifyReset() {
	for _, fn := range s.onReset {
		fn()
	}
}

// Model returns the active model id
func (s *Session) Model() string {
	return s.model
}

// SwitchModel activates another model and resets all state. Switching to
// the active model is a no-op.
func (s *Session) SwitchModel(modelID string) bool {
	if modelID == s.model {
		return false
	}
	s.model = modelID
	s.clear()
	s.notifyReset()
	return true
}

// Reset clears visited landmarks, labels, part toggles and sliders. The
// model, level and selection are kept.
func (s *Session) Reset() {
	s.visited = make(map[string]bool)
	s.visitOrder = nil
	s.showAllLabels = false
	s.isolated = make(map[string]bool)
	s.transparent = make(map[string]bool)
	s.slice = 0
	s.opacity = 100
	s.notifyReset()
}

// Level returns the active annotation level
func (s *Session) Level() catalog.Level {
	return s.level
}

// SetLevel changes the annotation level
func (s *Session) SetLevel(level catalog.Level) {
	s.level = level
}

// Select makes id the selected landmark and marks it visited
func (s *Session) Select(id string) {
	if id == "" {
		return
	}
	s.selected = id
	if !s.visited[id] {
		s.visited[id] = true
		s.visitOrder = append(s.visitOrder, id)
	}
}

// Deselect clears the selection
func (s *Session) Deselect() {
	s.selected = ""
}

// Selected returns the selected landmark id
func (s *Session) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// IsSelected reports whether id is the selected landmark
func (s *Session) IsSelected(id string) bool {
	return id != "" && s.selected == id
}

// Hover makes id the hovered landmark. Hovering does not mark it visited.
func (s *Session) Hover(id string) {
	s.hovered = id
}

// Unhover clears the hover slot
func (s *Session) Unhover() {
	s.hovered = ""
}

// UnhoverIf clears the hover slot only when id still owns it
func (s *Session) UnhoverIf(id string) {
	if s.hovered == id {
		s.hovered = ""
	}
}

// Hovered returns the hovered landmark id
func (s *Session) Hovered() (string, bool) {
	return s.hovered, s.hovered != ""
}

// IsHovered reports whether id is the hovered landmark
func (s *Session) IsHovered(id string) bool {
	return id != "" && s.hovered == id
}

// IsVisited reports whether id has ever been selected in this session
func (s *Session) IsVisited(id string) bool {
	return s.visited[id]
}

// Visited returns visited ids in the order they were first selected
func (s *Session) Visited() []string {
	return append([]string(nil), s.visitOrder...)
}

// Progress returns the visited share of total as a rounded percentage
// capped at 100
func (s *Session) Progress(total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(len(s.visited)) / float64(total) * 100))
	if p > 100 {
		return 100
	}
	return p
}

// ShowAllLabels reports whether every marker shows its label
func (s *Session) ShowAllLabels() bool {
	return s.showAllLabels
}

// SetShowAllLabels toggles permanent labels
func (s *Session) SetShowAllLabels(show bool) {
	s.showAllLabels = show
}

// ToggleIsolation adds part to the isolated set, or removes it if present.
// It returns whether the part is isolated afterwards.
func (s *Session) ToggleIsolation(part string) bool {
	return toggle(s.isolated, part)
}

// ToggleTransparency adds part to the transparent set, or removes it if present
func (s *Session) ToggleTransparency(part string) bool {
	return toggle(s.transparent, part)
}

func toggle(set map[string]bool, key string) bool {
	if set[key] {
		delete(set, key)
		return false
	}
	set[key] = true
	return true
}

// IsIsolated reports whether part is in the isolated set
func (s *Session) IsIsolated(part string) bool {
	return s.isolated[part]
}

// IsTransparent reports whether part is in the transparent set
func (s *Session) IsTransparent(part string) bool {
	return s.transparent[part]
}

// Isolated returns the isolated parts, sorted
func (s *Session) Isolated() []string {
	return sortedKeys(s.isolated)
}

// Transparent returns the transparent parts, sorted
func (s *Session) Transparent() []string {
	return sortedKeys(s.transparent)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Slice returns the slice slider value in [0, 100]
func (s *Session) Slice() float64 {
	return s.slice
}

// SetSlice sets the slice slider, clamped to [0, 100]
func (s *Session) SetSlice(v float64) {
	s.slice = Clamp(v)
}

// Opacity returns the opacity slider value in [0, 100]
func (s *Session) Opacity() float64 {
	return s.opacity
}

// SetOpacity sets the opacity slider, clamped to [0, 100]
func (s *Session) SetOpacity(v float64) {
	s.opacity = Clamp(v)
}

// Clamp limits a slider value to [0, 100]. NaN becomes 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
