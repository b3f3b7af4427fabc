package catalog

import (
	"net/url"
	"strings"
)

// Model is a viewable organ model
type Model struct {
	ID              string
	Label           string
	AssetPath       string
	Catalog         string // landmark catalog name, empty when the model has none
	SupportedLevels []Level
}

// Supports reports whether the model offers the annotation level
func (m Model) Supports(level Level) bool {
	for _, l := range m.SupportedLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Registry is the static list of models together with their catalogs
type Registry struct {
	baseURL  string
	models   []Model
	catalogs map[string]*Catalog
}

// Models returns the models in registry order
func (r *Registry) Models() []Model {
	return r.models
}

// Model looks up a model by id
func (r *Registry) Model(id string) (Model, bool) {
	for _, m := range r.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Catalogs returns every loaded catalog
func (r *Registry) Catalogs() map[string]*Catalog {
	return r.catalogs
}

// CatalogFor returns the landmark catalog of a model, or an empty catalog
// when the model has none
func (r *Registry) CatalogFor(modelID string) *Catalog {
	m, ok := r.Model(modelID)
	if ok && m.Catalog != "" {
		if c, ok := r.catalogs[m.Catalog]; ok {
			return c
		}
	}
	return NewCatalog(modelID, nil, nil)
}

// BaseURL is the location relative asset paths are resolved against
func (r *Registry) BaseURL() string {
	return r.baseURL
}

// SetBaseURL overrides the asset base location
func (r *Registry) SetBaseURL(base string) {
	r.baseURL = base
}

// AssetURL resolves a model's asset path. Absolute URLs and absolute file
// paths are returned unchanged.
func (r *Registry) AssetURL(m Model) string {
	if r.baseURL == "" || strings.HasPrefix(m.AssetPath, "/") {
		return m.AssetPath
	}
	if u, err := url.Parse(m.AssetPath); err == nil && u.Scheme != "" {
		return m.AssetPath
	}
	return strings.TrimSuffix(r.baseURL, "/") + "/" + strings.TrimPrefix(m.AssetPath, "/")
}
