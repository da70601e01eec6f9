// Package manifest loads the three manifests the catalog is built from: the
// texture file list, the block model map and the block state list.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blox/internal/identity"
	"github.com/jmylchreest/blox/internal/image"
	httputil "github.com/jmylchreest/blox/internal/util/http"
)

// ErrUnavailable is returned when a required manifest cannot be fetched or
// parsed. The catalog build must abort when it occurs.
var ErrUnavailable = errors.New("manifest unavailable")

// Sources locates each manifest. A source is an HTTP(S) URL or a local path;
// the texture list may also be a local directory of texture files.
type Sources struct {
	Textures    string `yaml:"textures"`
	Models      string `yaml:"models"`
	BlockStates string `yaml:"block_states"`
}

// Set is the loaded, normalised content of all three manifests.
type Set struct {
	// Textures holds texture names without extension, sorted.
	Textures []string
	// Graph maps block model ids to the block textures they declare.
	Graph identity.Graph
	// BlockStates holds block state ids, sorted.
	BlockStates []string
}

// Loader reads manifests.
type Loader struct {
	timeout time.Duration
	logger  hclog.Logger
}

// NewLoader creates a Loader. Remote fetches use timeout and are never retried.
func NewLoader(timeout time.Duration, logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{timeout: timeout, logger: logger}
}

// Load reads all three manifests. Any failure is wrapped in ErrUnavailable.
func (l *Loader) Load(ctx context.Context, src Sources) (*Set, error) {
	textures, err := l.loadTextures(ctx, src.Textures)
	if err != nil {
		return nil, fmt.Errorf("%w: texture list %s: %w", ErrUnavailable, src.Textures, err)
	}

	var models map[string]model
	if err := l.read(ctx, src.Models, &models); err != nil {
		return nil, fmt.Errorf("%w: model map %s: %w", ErrUnavailable, src.Models, err)
	}

	states, err := l.readList(ctx, src.BlockStates, ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: block state list %s: %w", ErrUnavailable, src.BlockStates, err)
	}

	set := &Set{
		Textures:    textures,
		Graph:       buildGraph(models),
		BlockStates: states,
	}
	l.logger.Debug("manifests loaded",
		"textures", len(set.Textures), "models", len(set.Graph), "block_states", len(set.BlockStates))
	return set, nil
}

func (l *Loader) loadTextures(ctx context.Context, src string) ([]string, error) {
	if !image.IsURL(src) {
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			files, err := image.ScanDirectoryForImages(src)
			if err != nil {
				return nil, err
			}
			return namesWithExt(files, ".png"), nil
		}
	}
	return l.readList(ctx, src, ".png")
}

// readList reads a file list manifest and returns the names carrying ext,
// with ext removed.
func (l *Loader) readList(ctx context.Context, src, ext string) ([]string, error) {
	var raw json.RawMessage
	if err := l.read(ctx, src, &raw); err != nil {
		return nil, err
	}
	files, err := parseList(raw)
	if err != nil {
		return nil, err
	}
	return namesWithExt(files, ext), nil
}

// read decodes the JSON document at src into v.
func (l *Loader) read(ctx context.Context, src string, v any) error {
	if src == "" {
		return fmt.Errorf("no source configured")
	}
	if image.IsURL(src) {
		l.logger.Debug("fetching manifest", "url", src)
		return httputil.FetchJSON(ctx, src, httputil.FetchOptions{Timeout: l.timeout}, v)
	}

	data, err := os.ReadFile(src) // #nosec G304 - Manifest path is user configuration
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}
	return nil
}

// listObject is the directory listing shape: {"directories": [...], "files": [...]}.
type listObject struct {
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
}

// parseList accepts either a bare JSON array of file names or a listObject.
func parseList(raw json.RawMessage) ([]string, error) {
	var files []string
	if err := json.Unmarshal(raw, &files); err == nil {
		return files, nil
	}

	var obj listObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("expected a file list array or object: %w", err)
	}
	if obj.Files == nil {
		return nil, fmt.Errorf("file list object has no files")
	}
	return obj.Files, nil
}

// namesWithExt keeps base names ending in ext, strips ext, and returns them
// sorted and de-duplicated.
func namesWithExt(files []string, ext string) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		f = path.Base(f)
		if !strings.HasSuffix(f, ext) {
			continue
		}
		if name := strings.TrimSuffix(f, ext); name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// model is the subset of a block model document the catalog needs.
type model struct {
	Parent   string            `json:"parent"`
	Textures map[string]string `json:"textures"`
}

func buildGraph(models map[string]model) identity.Graph {
	g := make(identity.Graph, len(models))
	for key, m := range models {
		id, ok := blockRef(key, true)
		if !ok {
			continue
		}
		var textures []string
		for _, ref := range m.Textures {
			if tex, ok := blockRef(ref, false); ok {
				textures = append(textures, tex)
			}
		}
		slices.Sort(textures)
		g[id] = slices.Compact(textures)
	}
	return g
}

// blockRef normalises "minecraft:block/x" and "block/x" to "x". Variable
// references ("#side") and non-block resources are rejected. Model ids may
// also be bare names.
func blockRef(ref string, allowBare bool) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}
	ref = strings.TrimPrefix(ref, "minecraft:")
	if rest, ok := strings.CutPrefix(ref, "block/"); ok {
		return rest, rest != ""
	}
	if allowBare && !strings.Contains(ref, "/") {
		return ref, true
	}
	return "", false
}
