// Package loader fetches, decodes, caches and mounts anatomy models.
package loader

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medar/arviewer/pkg/analysis"
	"github.com/medar/arviewer/pkg/scene"
	"github.com/medar/arviewer/pkg/watcher"
)

// Config configures a Loader
type Config struct {
	BaseURL  string
	CacheDir string
	Timeout  time.Duration
	Debug    bool
}

// Callbacks receive the outcome of each load attempt. OnLoaded is called
// exactly once per attempt; OnError precedes it on failure.
type Callbacks struct {
	OnLoaded func(ok bool, info *analysis.SceneInfo)
	OnError  func(message string)
}

// Result is the outcome of one load attempt
type Result struct {
	Path       string
	Generation uint64
	Options    Options

	// Model is the mounted copy; nil on failure
	Model *scene.Model
	Info  *analysis.SceneInfo

	// Err and Fallback are set on failure
	Err      error
	Fallback *Fallback
}

// OK reports whether the load succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Loader turns asset paths into mounted models
type Loader struct {
	fetcher *Fetcher
	cache   *Cache
	debug   bool

	tracker Tracker
	results chan Result

	watchMu sync.Mutex
	watcher *watcher.FileWatcher
}

// New creates a loader with its own cache
func New(cfg Config) *Loader {
	return &Loader{
		fetcher: NewFetcher(cfg.BaseURL, cfg.CacheDir, cfg.Timeout),
		cache:   NewCache(),
		debug:   cfg.Debug,
		results: make(chan Result, 4),
	}
}

// Cache returns the decoded model cache
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Fetcher returns the asset fetcher
func (l *Loader) Fetcher() *Fetcher {
	return l.fetcher
}

// Tracker returns the generation tracker used by LoadAsync
func (l *Loader) Tracker() *Tracker {
	return &l.tracker
}

// Load fetches, decodes and mounts path, reporting through cb. The result
// always carries either a model or a fallback.
func (l *Loader) Load(ctx context.Context, path string, opts Options, cb Callbacks) Result {
	res := l.load(ctx, path, opts)
	deliver(res, cb)
	return res
}

func deliver(res Result, cb Callbacks) {
	if res.OK() {
		if cb.OnLoaded != nil {
			cb.OnLoaded(true, res.Info)
		}
		return
	}
	if cb.OnError != nil {
		cb.OnError(res.Err.Error())
	}
	if cb.OnLoaded != nil {
		cb.OnLoaded(false, nil)
	}
}

func (l *Loader) load(ctx context.Context, path string, opts Options) Result {
	start := time.Now()
	res := Result{Path: path, Options: opts}

	decoded, err := l.decoded(ctx, path, opts)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("model load failed")
		res.Err = err
		res.Fallback = NewFallback(err.Error(), l.debug)
		return res
	}

	res.Info = analysis.AnalyzeScene(decoded)
	res.Model = Mount(decoded, opts)

	log.Info().
		Str("path", path).
		Int("meshes", res.Info.MeshCount).
		Int("vertices", res.Info.VertexCount).
		Int("materials", res.Info.MaterialCount).
		Bool("animations", res.Info.HasAnimations).
		Dur("took", time.Since(start)).
		Msg("model loaded")
	return res
}

// decoded returns the cached model for path or fetches and decodes it
func (l *Loader) decoded(ctx context.Context, path string, opts Options) (*scene.Model, error) {
	if m, ok := l.cache.Get(path, opts); ok {
		return m, nil
	}

	local, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := Decode(local, opts)
	if err != nil {
		return nil, err
	}
	l.cache.Put(path, opts, m)
	return m, nil
}

// Tracker hands out load generations. Starting a new load makes every
// earlier generation stale.
type Tracker struct {
	gen atomic.Uint64
}

// Next starts a new generation and returns it
func (t *Tracker) Next() uint64 {
	return t.gen.Add(1)
}

// Current returns the latest generation
func (t *Tracker) Current() uint64 {
	return t.gen.Load()
}

// IsCurrent reports whether gen is the latest generation
func (t *Tracker) IsCurrent(gen uint64) bool {
	return gen == t.gen.Load()
}

// LoadAsync starts loading path in the background and returns its
// generation. The result is delivered through Results or Poll.
func (l *Loader) LoadAsync(ctx context.Context, path string, opts Options) uint64 {
	gen := l.tracker.Next()
	log.Debug().Str("path", path).Uint64("generation", gen).Msg("loading model")

	go func() {
		res := l.load(ctx, path, opts)
		res.Generation = gen
		select {
		case l.results <- res:
		case <-ctx.Done():
		}
	}()
	return gen
}

// Results is the channel background loads are delivered on. Receivers should
// drop results for which IsStale reports true.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// IsStale reports whether a newer load has started since res
func (l *Loader) IsStale(res Result) bool {
	return !l.tracker.IsCurrent(res.Generation)
}

// Poll returns the latest finished load without blocking. Stale results are
// discarded, and cb is invoked for the returned result only.
func (l *Loader) Poll(cb Callbacks) (Result, bool) {
	for {
		select {
		case res := <-l.results:
			if l.IsStale(res) {
				log.Debug().Str("path", res.Path).Uint64("generation", res.Generation).Msg("discarding stale load")
				continue
			}
			deliver(res, cb)
			return res, true
		default:
			return Result{}, false
		}
	}
}

// Watch reloads a local asset when it changes on disk: the cache entry is
// dropped and onChange is called with the asset path. Remote assets are
// not watched.
func (l *Loader) Watch(path string, onChange func(path string)) error {
	l.watchMu.Lock()
	defer l.watchMu.Unlock()

	// only the current asset is watched
	if l.watcher != nil {
		if err := l.watcher.RemoveAll(); err != nil {
			return err
		}
	}

	resolved := l.fetcher.Resolve(path)
	if IsRemote(resolved) {
		return nil
	}

	if l.watcher == nil {
		fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
		if err != nil {
			return err
		}
		fw.Start()
		l.watcher = fw
	}

	return l.watcher.Watch([]string{resolved}, func(string) {
		l.cache.Invalidate(path)
		onChange(path)
	})
}

// Close stops file watching
func (l *Loader) Close() error {
	l.watchMu.Lock()
	defer l.watchMu.Unlock()
	if l.watcher == nil {
		return nil
	}
	err := l.watcher.Close()
	l.watcher = nil
	return err
}
