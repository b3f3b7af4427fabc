package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medar/arviewer/pkg/analysis"
	"github.com/medar/arviewer/pkg/geometry"
	"github.com/medar/arviewer/pkg/scene"
)

var fixture = filepath.Join("testdata", "heart.gltf")

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l := New(Config{CacheDir: t.TempDir(), Timeout: 5 * time.Second})
	t.Cleanup(func() { l.Close() })
	return l
}

type recorder struct {
	loaded  []bool
	infos   []*analysis.SceneInfo
	errored []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnLoaded: func(ok bool, info *analysis.SceneInfo) {
			r.loaded = append(r.loaded, ok)
			r.infos = append(r.infos, info)
		},
		OnError: func(msg string) { r.errored = append(r.errored, msg) },
	}
}

func TestLoadSuccess(t *testing.T) {
	l := newLoader(t)
	rec := &recorder{}

	res := l.Load(context.Background(), fixture, DefaultOptions(), rec.callbacks())

	require.True(t, res.OK())
	assert.Equal(t, []bool{true}, rec.loaded)
	assert.Empty(t, rec.errored)

	info := rec.infos[0]
	assert.Greater(t, info.MeshCount, 0)
	assert.Equal(t, 3, info.MeshCount)
	assert.Equal(t, 45, info.VertexCount)
	assert.Equal(t, 15, info.TriangleCount)
	assert.Equal(t, 2, info.MaterialCount)
	assert.True(t, info.HasAnimations)
	assert.Equal(t, []string{"beat"}, info.AnimationNames)
	assert.Nil(t, res.Fallback)
}

func TestLoadInvalidPathFallsBack(t *testing.T) {
	l := newLoader(t)
	rec := &recorder{}

	res := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.glb"), DefaultOptions(), rec.callbacks())

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, ErrFetch)
	assert.Equal(t, []bool{false}, rec.loaded)
	assert.Nil(t, rec.infos[0])
	require.Len(t, rec.errored, 1)
	require.NotNil(t, res.Fallback)
	assert.Len(t, res.Fallback.Shapes, 4)
	assert.Nil(t, res.Model)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	l := newLoader(t)
	path := filepath.Join(t.TempDir(), "heart.obj")
	require.NoError(t, os.WriteFile(path, []byte("o heart"), 0644))

	res := l.Load(context.Background(), path, DefaultOptions(), Callbacks{})
	assert.ErrorIs(t, res.Err, ErrUnsupportedFormat)
}

func TestLoadIsIdempotent(t *testing.T) {
	l := newLoader(t)
	opts := DefaultOptions()

	first := l.Load(context.Background(), fixture, opts, Callbacks{})
	second := l.Load(context.Background(), fixture, opts, Callbacks{})

	assert.Equal(t, first.Info, second.Info)
	assert.Equal(t, 1, l.Cache().Len())
	assert.NotSame(t, first.Model, second.Model)
}

func TestLoadDoesNotMutateCache(t *testing.T) {
	l := newLoader(t)
	opts := DefaultOptions()
	opts.MaterialOverride = &MaterialOverride{Color: "#00ff00", Metalness: Float(0.5)}

	l.Load(context.Background(), fixture, opts, Callbacks{})

	cached, ok := l.Cache().Get(fixture, opts)
	require.True(t, ok)
	assert.True(t, cached.Root.Transform.IsIdentity())
	assert.InDelta(t, 0.1, cached.Materials()[0].Metalness, 1e-6)
}

func TestCacheClearAndInvalidate(t *testing.T) {
	l := newLoader(t)
	l.Load(context.Background(), fixture, DefaultOptions(), Callbacks{})
	l.Load(context.Background(), fixture, Options{DisableDraco: true}, Callbacks{})
	assert.Equal(t, 2, l.Cache().Len())

	l.Cache().Invalidate(fixture)
	assert.Equal(t, 0, l.Cache().Len())

	l.Load(context.Background(), fixture, DefaultOptions(), Callbacks{})
	l.Cache().Clear()
	assert.Equal(t, 0, l.Cache().Len())
}

func TestMountFitsToViewBound(t *testing.T) {
	src := &scene.Model{Root: scene.NewNode("root")}
	src.Root.Meshes = []*scene.Mesh{{
		Bounds:    geometry.NewBoundingBoxFromPoints(geometry.NewVector3(10, 0, 0), geometry.NewVector3(14, 2, 1)),
		Materials: []*scene.Material{scene.NewMaterial("m")},
	}}

	fitted := Mount(src, DefaultOptions()).Root.WorldBounds()
	assert.InDelta(t, ViewBound/FitMargin, fitted.MaxDimension(), 1e-9)
	assert.InDelta(t, 0, fitted.Center().Length(), 1e-9)

	centered := Mount(src, Options{EnableAutoCenter: true}).Root.WorldBounds()
	assert.InDelta(t, 4, centered.MaxDimension(), 1e-9)
	assert.InDelta(t, 0, centered.Center().Length(), 1e-9)

	untouched := Mount(src, Options{EnableAutoScale: true})
	assert.True(t, untouched.Root.Transform.IsIdentity())
	assert.True(t, src.Root.Transform.IsIdentity())
}

func TestMountAppliesOverrideWhereSupported(t *testing.T) {
	standard := scene.NewMaterial("muscle")
	unlit := scene.NewMaterial("label")
	unlit.Kind = scene.MaterialUnlit
	unlit.Metalness, unlit.Roughness = 0, 0
	glass := scene.NewMaterial("glass")
	glass.Opacity = 0.5

	src := &scene.Model{Root: scene.NewNode("root")}
	src.Root.Meshes = []*scene.Mesh{
		{Materials: []*scene.Material{standard}},
		{Materials: []*scene.Material{unlit, glass}},
	}

	opts := Options{
		ShowWireframe:    true,
		MaterialOverride: &MaterialOverride{Color: "#ff0000", Metalness: Float(0.2), Roughness: Float(0.9)},
	}
	mounted := Mount(src, opts)
	mats := mounted.Materials()
	require.Len(t, mats, 3)

	assert.Equal(t, 1.0, mats[0].Color.R)
	assert.Equal(t, 0.0, mats[0].Color.G)
	assert.Equal(t, 0.2, mats[0].Metalness)
	assert.Equal(t, 0.9, mats[0].Roughness)

	assert.Equal(t, 1.0, mats[1].Color.R)
	assert.Equal(t, 0.0, mats[1].Metalness)
	assert.Equal(t, 0.0, mats[1].Roughness)

	assert.True(t, mats[2].Transparent)
	assert.False(t, mats[0].Transparent)
	for _, m := range mats {
		assert.True(t, m.Wireframe)
	}

	for _, mesh := range mounted.Root.Meshes {
		assert.True(t, mesh.CastShadow)
		assert.True(t, mesh.ReceiveShadow)
	}
	assert.Equal(t, 1.0, standard.Metalness)
	assert.False(t, src.Root.Meshes[0].CastShadow)
}

func TestFallback(t *testing.T) {
	f := NewFallback("boom", false)
	assert.Equal(t, "boom", f.Message)
	assert.Len(t, f.Shapes, 4)
	assert.Equal(t, ShapeCone, f.Shapes[2].Kind)
	assert.InDelta(t, 2.6, f.Bounds().Max.Y, 1e-9)

	debug := NewFallback("boom", true)
	require.Len(t, debug.Shapes, 5)
	assert.Equal(t, ShapeBox, debug.Shapes[4].Kind)
	assert.Equal(t, 0.8, debug.Shapes[4].Opacity)
	assert.Equal(t, NewFallback("boom", true), debug)
}

func TestFetchDownloadsOnce(t *testing.T) {
	body, err := os.ReadFile(fixture)
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/models/heart.gltf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := New(Config{BaseURL: srv.URL + "/models/", CacheDir: t.TempDir(), Timeout: 5 * time.Second})

	res := l.Load(context.Background(), "heart.gltf", DefaultOptions(), Callbacks{})
	require.True(t, res.OK(), "%v", res.Err)
	assert.Equal(t, 3, res.Info.MeshCount)

	l.Cache().Clear()
	res = l.Load(context.Background(), "heart.gltf", DefaultOptions(), Callbacks{})
	require.True(t, res.OK())
	assert.Equal(t, int32(1), hits.Load())

	res = l.Load(context.Background(), "missing.glb", DefaultOptions(), Callbacks{})
	assert.ErrorIs(t, res.Err, ErrFetch)
}

func TestFetchRespectsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := NewFetcher("", t.TempDir(), 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL+"/heart.glb")
	assert.ErrorIs(t, err, ErrFetch)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolve(t *testing.T) {
	f := NewFetcher("https://assets.example.org/", "", time.Second)

	assert.Equal(t, "https://assets.example.org/kidney.glb", f.Resolve("kidney.glb"))
	assert.Equal(t, "/abs/kidney.glb", f.Resolve("/abs/kidney.glb"))
	assert.Equal(t, fixture, f.Resolve(fixture))
	assert.Equal(t, "http://other/x.glb", f.Resolve("http://other/x.glb"))
}

func TestLoadAsyncDiscardsStale(t *testing.T) {
	l := newLoader(t)
	ctx := context.Background()

	stale := l.LoadAsync(ctx, filepath.Join(t.TempDir(), "missing.glb"), DefaultOptions())
	current := l.LoadAsync(ctx, fixture, DefaultOptions())
	assert.Greater(t, current, stale)

	rec := &recorder{}
	var got Result
	assert.Eventually(t, func() bool {
		res, ok := l.Poll(rec.callbacks())
		if ok {
			got = res
		}
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, current, got.Generation)
	assert.True(t, got.OK())
	assert.Equal(t, []bool{true}, rec.loaded)
	assert.Empty(t, rec.errored)
	assert.False(t, l.IsStale(got))

	time.Sleep(50 * time.Millisecond)
	_, ok := l.Poll(rec.callbacks())
	assert.False(t, ok)
}

func TestWatchInvalidatesCache(t *testing.T) {
	l := newLoader(t)
	path := filepath.Join(t.TempDir(), "heart.gltf")
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	l.Load(context.Background(), path, DefaultOptions(), Callbacks{})
	require.Equal(t, 1, l.Cache().Len())

	changed := make(chan string, 1)
	require.NoError(t, l.Watch(path, func(p string) { changed <- p }))
	require.NoError(t, os.WriteFile(path, data, 0644))

	select {
	case p := <-changed:
		assert.Equal(t, path, p)
		assert.Equal(t, 0, l.Cache().Len())
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchRemoteDropsPreviousWatch(t *testing.T) {
	l := newLoader(t)
	path := filepath.Join(t.TempDir(), "heart.gltf")
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	changed := make(chan string, 1)
	require.NoError(t, l.Watch(path, func(p string) { changed <- p }))
	require.Len(t, l.watcher.Watched(), 1)

	require.NoError(t, l.Watch("https://assets.example.com/heart.glb", func(p string) { changed <- p }))
	assert.Empty(t, l.watcher.Watched())

	require.NoError(t, os.WriteFile(path, data, 0644))
	select {
	case p := <-changed:
		t.Fatalf("unexpected change reported for %s", p)
	case <-time.After(800 * time.Millisecond):
	}
}
