// Package filecache downloads remote files once and keeps them on disk keyed
// by a hash of their URL.
package filecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	httputil "github.com/jmylchreest/blox/internal/util/http"
)

// Options configures a download.
type Options struct {
	// Dir is the cache directory. Empty uses DefaultDir.
	Dir string

	// Refresh downloads the file even when a cached copy exists.
	Refresh bool

	Timeout time.Duration
}

// DefaultDir returns the default cache directory.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "blox", "downloads"), nil
	}
	return filepath.Join(cacheDir, "blox", "downloads"), nil
}

// Filename returns the cache file name for rawURL: a truncated SHA-256 of the
// URL followed by the URL's extension. Compound archive extensions such as
// ".tar.gz" are kept whole.
func Filename(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	name := hex.EncodeToString(sum[:16])

	base := rawURL
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(path.Base(base))

	for _, ext := range []string{".tar.gz", ".tar.xz", ".tar.bz2"} {
		if strings.HasSuffix(base, ext) {
			return name + ext
		}
	}
	if ext := path.Ext(base); ext != "" && len(ext) <= 5 {
		return name + ext
	}
	return name
}

// Result describes a cached file.
type Result struct {
	Path string
	// Hit is true when the file was already cached.
	Hit bool
}

// Fetch returns the local path of rawURL, downloading it on a cache miss.
// The file is only visible in the cache once fully written.
func Fetch(ctx context.Context, rawURL string, opts Options) (Result, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Result{}, fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := opts.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return Result{}, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return Result{}, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cached := filepath.Join(dir, Filename(rawURL))
	if !opts.Refresh {
		if info, err := os.Stat(cached); err == nil && info.Size() > 0 {
			return Result{Path: cached, Hit: true}, nil
		}
	}

	data, err := httputil.Fetch(ctx, rawURL, httputil.FetchOptions{Timeout: opts.Timeout})
	if err != nil {
		return Result{}, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create cache file: %w", err)
	}
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("failed to write cache file: %w", errors.Join(writeErr, closeErr))
	}
	if err := os.Rename(tmp.Name(), cached); err != nil {
		_ = os.Remove(tmp.Name())
		return Result{}, fmt.Errorf("failed to store cache file: %w", err)
	}
	return Result{Path: cached}, nil
}
