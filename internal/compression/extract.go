// Package compression extracts texture files from downloaded asset archives.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/blox/internal/security"
)

// Format identifies an archive container.
type Format string

const (
	FormatZip    Format = "zip"
	FormatTarGz  Format = "tar.gz"
	FormatTarXz  Format = "tar.xz"
	FormatTarBz2 Format = "tar.bz2"
)

// Default extraction limits.
const (
	DefaultMaxFileSize  = 16 * 1024 * 1024
	DefaultMaxTotalSize = 512 * 1024 * 1024
)

var magic = []struct {
	prefix []byte
	format Format
}{
	{[]byte("PK\x03\x04"), FormatZip},
	{[]byte{0x1f, 0x8b}, FormatTarGz},
	{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, FormatTarXz},
	{[]byte("BZh"), FormatTarBz2},
}

// DetectFormat determines the archive format from the file name, falling back
// to the leading bytes of data.
func DetectFormat(name string, data []byte) (Format, error) {
	lower := strings.ToLower(name)
	if i := strings.IndexByte(lower, '?'); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz"), strings.HasSuffix(lower, ".tbz2"):
		return FormatTarBz2, nil
	}

	for _, m := range magic {
		if bytes.HasPrefix(data, m.prefix) {
			return m.format, nil
		}
	}
	return "", fmt.Errorf("unrecognised archive format: %s", name)
}

// Options selects which archive members are extracted.
type Options struct {
	// Prefix is the directory inside the archive whose files are wanted, for
	// example "assets/minecraft/textures/block/". It may appear below a
	// top-level directory such as "minecraft-assets-1.21.11/".
	Prefix string

	// Ext restricts extraction to files with this extension. Empty keeps all.
	Ext string

	// MaxFileSize and MaxTotalSize cap decompressed bytes. Zero uses the
	// defaults.
	MaxFileSize  int64
	MaxTotalSize int64
}

// ExtractResult reports what was written.
type ExtractResult struct {
	// Files holds the extracted file names relative to the destination.
	Files []string
	Bytes int64
}

// Extract writes the archive members selected by opts directly into destDir.
// Only files immediately inside the prefix directory are extracted.
func Extract(data []byte, format Format, destDir string, opts Options) (*ExtractResult, error) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.MaxTotalSize <= 0 {
		opts.MaxTotalSize = DefaultMaxTotalSize
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	x := &extractor{destDir: destDir, opts: opts, result: &ExtractResult{}}
	var err error
	switch format {
	case FormatZip:
		err = x.zip(data)
	case FormatTarGz, FormatTarXz, FormatTarBz2:
		err = x.tar(data, format)
	default:
		err = fmt.Errorf("unsupported archive format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return x.result, nil
}

type extractor struct {
	destDir string
	opts    Options
	result  *ExtractResult
}

// target returns the destination-relative name for an archive member, or
// false when the member is not wanted.
func (x *extractor) target(name string) (string, bool) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	prefix := strings.Trim(x.opts.Prefix, "/")

	rel := name
	if prefix != "" {
		i := strings.Index("/"+name, "/"+prefix+"/")
		if i < 0 {
			return "", false
		}
		rel = name[i+len(prefix)+1:]
	}
	if rel == "" || strings.Contains(rel, "/") {
		return "", false
	}
	if x.opts.Ext != "" && !strings.EqualFold(path.Ext(rel), x.opts.Ext) {
		return "", false
	}
	return rel, true
}

// write copies one member to disk within the size limits.
func (x *extractor) write(rel string, r io.Reader) error {
	if err := security.ValidateFilePath(rel, x.destDir); err != nil {
		return fmt.Errorf("refusing archive member %s: %w", rel, err)
	}

	remaining := x.opts.MaxTotalSize - x.result.Bytes
	limit := min(x.opts.MaxFileSize, remaining)

	destPath := filepath.Join(x.destDir, rel)
	out, err := os.Create(destPath) // #nosec G304 - Path validated against the destination directory
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", rel, err)
	}

	n, copyErr := io.Copy(out, security.NewLimitedReader(r, limit))
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("failed to extract %s: %w", rel, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", rel, closeErr)
	}

	x.result.Files = append(x.result.Files, rel)
	x.result.Bytes += n
	return nil
}
