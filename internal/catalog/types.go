// Package catalog holds the anatomical landmark catalogs and the registry
// of viewable models.
package catalog

import (
	"github.com/medar/arviewer/pkg/geometry"
)

// LandmarkType classifies a landmark for display
type LandmarkType string

const (
	TypeChamber LandmarkType = "chamber"
	TypeValve   LandmarkType = "valve"
	TypeVessel  LandmarkType = "vessel"
	TypeOther   LandmarkType = "other"
)

// Icon returns the glyph shown next to a landmark in the info panel
func (t LandmarkType) Icon() string {
	switch t {
	case TypeChamber:
		return "🫀"
	case TypeValve:
		return "🚪"
	case TypeVessel:
		return "🩸"
	default:
		return "📍"
	}
}

// Level is the annotation detail level
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the annotation levels from least to most detailed
var Levels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced}

// ParseLevel converts a level name, reporting false for unknown names
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Landmark is a labeled point of interest on an organ. Position is in the
// organ's local space.
type Landmark struct {
	ID                   string
	Position             geometry.Vector3
	Title                string
	Description          string
	DetailedInfo         string
	Type                 LandmarkType
	Color                string
	MedicalTerms         []string
	Functions            []string
	RelatedStructures    []string
	ClinicalSignificance string
}

// Catalog is an ordered set of landmarks plus the level memberships
type Catalog struct {
	Name      string
	landmarks []Landmark
	index     map[string]int
	levels    map[Level][]string
}

// NewCatalog builds a catalog from landmarks in display order
func NewCatalog(name string, landmarks []Landmark, levels map[Level][]string) *Catalog {
	c := &Catalog{
		Name:      name,
		landmarks: landmarks,
		index:     make(map[string]int, len(landmarks)),
		levels:    levels,
	}
	for i, lm := range landmarks {
		if _, dup := c.index[lm.ID]; !dup {
			c.index[lm.ID] = i
		}
	}
	return c
}

// Landmarks returns every landmark in catalog order
func (c *Catalog) Landmarks() []Landmark {
	return c.landmarks
}

// LevelIDs returns the membership list of a level
func (c *Catalog) LevelIDs(level Level) []string {
	return c.levels[level]
}

// LandmarksForLevel returns the landmarks whose id is listed for level, in
// catalog order, each id at most once. Unknown levels and dangling ids
// yield nothing.
func (c *Catalog) LandmarksForLevel(level Level) []Landmark {
	members := make(map[string]bool, len(c.levels[level]))
	for _, id := range c.levels[level] {
		members[id] = true
	}

	out := make([]Landmark, 0, len(members))
	for _, lm := range c.landmarks {
		// a duplicated id resolves to its first entry, as in LandmarkByID
		if members[lm.ID] {
			out = append(out, lm)
			delete(members, lm.ID)
		}
	}
	return out
}

// LandmarkByID looks up a landmark
func (c *Catalog) LandmarkByID(id string) (Landmark, bool) {
	i, ok := c.index[id]
	if !ok {
		return Landmark{}, false
	}
	return c.landmarks[i], true
}

// Related returns the related structures of a landmark that resolve
func (c *Catalog) Related(lm Landmark) []Landmark {
	var out []Landmark
	for _, id := range lm.RelatedStructures {
		if other, ok := c.LandmarkByID(id); ok {
			out = append(out, other)
		}
	}
	return out
}
