package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medar/arviewer/pkg/geometry"
)

func ids(landmarks []Landmark) []string {
	out := make([]string, 0, len(landmarks))
	for _, lm := range landmarks {
		out = append(out, lm.ID)
	}
	return out
}

func heart(t *testing.T) *Catalog {
	t.Helper()
	reg, err := Default()
	require.NoError(t, err)
	return reg.CatalogFor("heart")
}

func TestLandmarksForLevel(t *testing.T) {
	c := heart(t)

	assert.Equal(t,
		[]string{"right-atrium", "left-atrium", "right-ventricle", "left-ventricle"},
		ids(c.LandmarksForLevel(LevelBasic)))
	assert.Len(t, c.LandmarksForLevel(LevelIntermediate), 6)
	assert.Len(t, c.LandmarksForLevel(LevelAdvanced), 6)
	assert.Empty(t, c.LandmarksForLevel(Level("expert")))
}

func TestLandmarksForLevelKeepsCatalogOrder(t *testing.T) {
	c := NewCatalog("test", []Landmark{{ID: "a"}, {ID: "b"}, {ID: "c"}}, map[Level][]string{
		LevelBasic: {"c", "a", "missing"},
	})

	assert.Equal(t, []string{"a", "c"}, ids(c.LandmarksForLevel(LevelBasic)))
}

func TestLandmarksForLevelDuplicateIDs(t *testing.T) {
	c := NewCatalog("test", []Landmark{{ID: "a", Title: "first"}, {ID: "b"}, {ID: "a", Title: "second"}}, map[Level][]string{
		LevelBasic: {"a", "b", "a"},
	})

	got := c.LandmarksForLevel(LevelBasic)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "b", got[1].ID)

	first, ok := c.LandmarkByID("a")
	require.True(t, ok)
	assert.Equal(t, first, got[0])
}

func TestLandmarkByID(t *testing.T) {
	c := heart(t)

	lm, ok := c.LandmarkByID("aortic-valve")
	require.True(t, ok)
	assert.Equal(t, "Aortic Valve", lm.Title)
	assert.Equal(t, TypeValve, lm.Type)
	assert.Equal(t, geometry.NewVector3(-0.8, 0.1, 1.0), lm.Position)
	assert.Equal(t, "#F59E0B", lm.Color)

	_, ok = c.LandmarkByID("tricuspid-valve")
	assert.False(t, ok)
}

func TestRelatedSkipsDangling(t *testing.T) {
	c := heart(t)

	ra, _ := c.LandmarkByID("right-atrium")
	assert.Empty(t, c.Related(ra))

	av, _ := c.LandmarkByID("aortic-valve")
	assert.Equal(t, []string{"left-ventricle"}, ids(c.Related(av)))
}

func TestValidateReportsDanglingIDs(t *testing.T) {
	issues := heart(t).Validate()

	require.Len(t, issues, 2)
	assert.Equal(t, "right-atrium", issues[0].Landmark)
	assert.Contains(t, issues[0].Message, "tricuspid-valve")
	assert.Equal(t, "left-atrium", issues[1].Landmark)
	assert.Contains(t, issues[1].String(), "mitral-valve")
}

func TestValidateLevelsAndDuplicates(t *testing.T) {
	c := NewCatalog("test", []Landmark{{ID: "a"}, {ID: "a"}}, map[Level][]string{
		LevelAdvanced: {"a", "b"},
	})

	issues := c.Validate()
	require.Len(t, issues, 2)
	assert.Equal(t, "duplicate landmark id", issues[0].Message)
	assert.Equal(t, `test: level advanced lists unknown landmark "b"`, issues[1].String())
}

func TestLandmarkTypeIcon(t *testing.T) {
	assert.Equal(t, "🫀", TypeChamber.Icon())
	assert.Equal(t, "🚪", TypeValve.Icon())
	assert.Equal(t, "🩸", TypeVessel.Icon())
	assert.Equal(t, "📍", TypeOther.Icon())
	assert.Equal(t, "📍", LandmarkType("nerve").Icon())
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("intermediate")
	assert.True(t, ok)
	assert.Equal(t, LevelIntermediate, l)

	_, ok = ParseLevel("expert")
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	require.Len(t, reg.Models(), 5)
	brain, ok := reg.Model("brain")
	require.True(t, ok)
	assert.True(t, brain.Supports(LevelIntermediate))
	assert.False(t, brain.Supports(LevelAdvanced))
	assert.Empty(t, reg.CatalogFor("brain").Landmarks())

	heart, _ := reg.Model("heart")
	assert.Equal(t, "https://sniqhfp9xi52lvz6.public.blob.vercel-storage.com/heart.glb", reg.AssetURL(heart))
}

func TestAssetURL(t *testing.T) {
	reg := &Registry{baseURL: "https://assets.example.org/models/"}

	assert.Equal(t, "https://assets.example.org/models/kidney.glb", reg.AssetURL(Model{AssetPath: "kidney.glb"}))
	assert.Equal(t, "https://cdn.example.org/x.glb", reg.AssetURL(Model{AssetPath: "https://cdn.example.org/x.glb"}))
	assert.Equal(t, "/data/x.glb", reg.AssetURL(Model{AssetPath: "/data/x.glb"}))

	reg.SetBaseURL("")
	assert.Equal(t, "kidney.glb", reg.AssetURL(Model{AssetPath: "kidney.glb"}))
}

func TestLoadRejectsInvalidLandmark(t *testing.T) {
	fsys := fstest.MapFS{
		"models.yaml": {Data: []byte("models:\n  - id: x\n    label: X\n    asset: x.glb\n    catalog: x\n    levels: [basic]\n")},
		"catalogs/x.yaml": {Data: []byte(`name: x
landmarks:
  - id: a
    title: A
    type: organ
    color: red
`)},
	}

	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type (oneof)")
	assert.Contains(t, err.Error(), "color (hexcolor)")
}

func TestLoadRejectsUnknownCatalog(t *testing.T) {
	fsys := fstest.MapFS{
		"models.yaml": {Data: []byte("models:\n  - id: x\n    label: X\n    asset: x.glb\n    catalog: missing\n    levels: [basic]\n")},
	}

	_, err := Load(fsys)
	assert.ErrorContains(t, err, `catalog "missing" not found`)
}

func TestLoadRejectsUnknownLevel(t *testing.T) {
	fsys := fstest.MapFS{
		"models.yaml": {Data: []byte("models:\n  - id: x\n    label: X\n    asset: x.glb\n    levels: [expert]\n")},
	}

	_, err := Load(fsys)
	assert.Error(t, err)
}
