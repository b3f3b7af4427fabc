package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrFetch wraps failures to obtain an asset
var ErrFetch = errors.New("fetch failed")

// Fetcher resolves asset paths and downloads remote assets into a local
// cache directory so decoders and the renderer can read the same file
type Fetcher struct {
	BaseURL  string
	CacheDir string
	Client   *http.Client
}

// NewFetcher creates a fetcher with an HTTP client using timeout
func NewFetcher(baseURL, cacheDir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		BaseURL:  baseURL,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: timeout},
	}
}

// IsRemote reports whether p is an http(s) URL
func IsRemote(p string) bool {
	u, err := url.Parse(p)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Resolve turns a relative asset path into a URL when a base URL is set.
// Existing local files are kept as they are.
func (f *Fetcher) Resolve(p string) string {
	if IsRemote(p) || filepath.IsAbs(p) || f.BaseURL == "" {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return strings.TrimSuffix(f.BaseURL, "/") + "/" + strings.TrimPrefix(p, "/")
}

// Fetch returns a local file for the asset, downloading it if needed
func (f *Fetcher) Fetch(ctx context.Context, p string) (string, error) {
	resolved := f.Resolve(p)
	if !IsRemote(resolved) {
		if _, err := os.Stat(resolved); err != nil {
			return "", fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return resolved, nil
	}

	local := f.cachePath(resolved)
	if _, err := os.Stat(local); err == nil {
		log.Debug().Str("url", resolved).Str("file", local).Msg("using downloaded asset")
		return local, nil
	}

	if err := f.download(ctx, resolved, local); err != nil {
		return "", err
	}
	return local, nil
}

// cachePath names the download after the URL so repeated fetches hit the
// same file while keeping the asset's extension
func (f *Fetcher) cachePath(rawURL string) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL))
	base := path.Base(rawURL)
	if u, err := url.Parse(rawURL); err == nil {
		base = path.Base(u.Path)
	}
	return filepath.Join(f.CacheDir, id.String(), base)
}

// Forget removes the downloaded copy of a remote asset
func (f *Fetcher) Forget(p string) {
	resolved := f.Resolve(p)
	if IsRemote(resolved) {
		_ = os.RemoveAll(filepath.Dir(f.cachePath(resolved)))
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", ErrFetch, rawURL, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	n, err := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}

	log.Info().
		Str("url", rawURL).
		Int64("bytes", n).
		Dur("took", time.Since(start)).
		Msg("asset downloaded")
	return nil
}
