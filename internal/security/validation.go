// Package security provides validation helpers for downloads and archive
// extraction.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// ValidateDownloadURL checks that an archive URL is HTTPS and does not point
// at a local or private host.
func ValidateDownloadURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}
	return nil
}

// ValidateFilePath checks that an archive member name stays inside baseDir
// once joined to it.
func ValidateFilePath(name, baseDir string) error {
	if name == "" {
		return fmt.Errorf("empty file path")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute paths in archives are not allowed")
	}
	if !filepath.IsLocal(name) {
		return fmt.Errorf("file path would escape base directory")
	}

	base := filepath.Clean(baseDir)
	final := filepath.Join(base, name)
	if final != base && !strings.HasPrefix(final, base+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape base directory")
	}
	return nil
}

// ClampUint8 converts val to uint8, clamping it to [0,255].
func ClampUint8(val int) uint8 {
	return uint8(max(0, min(255, val)))
}

// LimitedReader wraps an io.Reader and fails once more than Remaining bytes
// have been requested.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a LimitedReader allowing maxBytes.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{R: r, Remaining: maxBytes}
}

func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	addr, err := netip.ParseAddr(strings.Trim(host, "[]"))
	if err != nil {
		return false
	}
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}
