package catalog

import (
	"context"
	"errors"
	"image"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blox/internal/colour"
	"github.com/jmylchreest/blox/internal/identity"
	blimage "github.com/jmylchreest/blox/internal/image"
	"github.com/jmylchreest/blox/internal/manifest"
	"github.com/jmylchreest/blox/internal/taxonomy"
	"github.com/jmylchreest/blox/internal/version"
)

// ImageFinder looks up an illustration URL for an entry.
type ImageFinder interface {
	Find(ctx context.Context, id, name string) (string, error)
}

// Options configures a Builder.
type Options struct {
	// Version is recorded in the catalog metadata.
	Version string

	// TextureSource is the directory or base URL textures are read from.
	TextureSource string

	// RawTextureURL is the base URL of fallback illustrations. Empty disables
	// the fallback.
	RawTextureURL string

	// Images enables illustration lookup.
	Images bool

	PaletteSize   int
	PaletteMethod colour.PaletteMethod

	// Taxonomy tags entries. Entries carrying its default tag are blocks,
	// all others are decorations.
	Taxonomy taxonomy.Taxonomy
}

// Builder assembles a catalog. It processes entries one at a time and is not
// safe for concurrent use.
type Builder struct {
	opts       Options
	loader     blimage.Loader
	aggregator *colour.Aggregator
	finder     ImageFinder
	textures   blimage.TextureSource
	logger     hclog.Logger
}

// NewBuilder creates a Builder. loader reads textures; finder may be nil when
// illustrations are not wanted.
func NewBuilder(opts Options, loader blimage.Loader, finder ImageFinder, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{
		opts:       opts,
		loader:     loader,
		aggregator: colour.NewAggregator(loader, logger.Named("colour")),
		finder:     finder,
		textures:   blimage.TextureSource{Base: opts.TextureSource},
		logger:     logger,
	}
}

// group is a canonical id together with the textures that make it up.
type group struct {
	id       string
	name     string
	textures []string
}

// Build produces the catalog for set. Entry-level failures leave the affected
// field empty; only a cancelled context aborts the build.
func (b *Builder) Build(ctx context.Context, set *manifest.Set) (*Catalog, error) {
	groups := b.groups(set)
	b.logger.Info("building catalog", "version", b.opts.Version, "entries", len(groups))

	cat := &Catalog{
		Metadata: Metadata{Version: b.opts.Version, Generator: version.Generator()},
		// Empty collections serialise as [] rather than null.
		Blocks:      []Entry{},
		Decorations: []Entry{},
	}

	var noColour, noImage int
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e := b.entry(ctx, g)
		if !e.HasColour() {
			noColour++
		}
		if b.opts.Images && e.Image == "" {
			noImage++
		}
		cat.add(e, b.opts.Taxonomy.DefaultTag)

		if (i+1)%100 == 0 {
			b.logger.Debug("progress", "done", i+1, "total", len(groups))
		}
	}
	cat.sort()

	b.logger.Info("catalog built",
		"blocks", len(cat.Blocks), "decorations", len(cat.Decorations),
		"without_colour", noColour, "without_image", noImage)
	return cat, nil
}

// groups resolves textures to canonical ids and adds entries for block
// states that have no texture of their own. The result is sorted by id.
func (b *Builder) groups(set *manifest.Set) []group {
	tax := b.opts.Taxonomy

	kept := make([]string, 0, len(set.Textures))
	for _, t := range set.Textures {
		if tax.Excluded(t) {
			b.logger.Trace("texture excluded", "texture", t)
			continue
		}
		kept = append(kept, t)
	}

	resolved := identity.NewResolver(set.Graph).ResolveAll(kept)
	out := make([]group, 0, len(resolved)+len(set.BlockStates))
	for id, textures := range resolved {
		name := textures[0]
		if slices.Contains(textures, id) {
			name = id
		}
		if b.logger.IsTrace() {
			b.logger.Trace("resolved", "id", id, "textures", textures, "models", set.Graph.Users(name))
		}
		out = append(out, group{id: id, name: name, textures: textures})
	}

	for _, state := range set.BlockStates {
		if _, ok := resolved[state]; ok || tax.Excluded(state) {
			continue
		}
		textures := stateTextures(set.Graph, state)
		if len(textures) == 0 {
			b.logger.Trace("block state without textures", "state", state)
			continue
		}
		resolved[state] = textures
		out = append(out, group{id: state, name: state, textures: textures})
	}

	slices.SortFunc(out, func(x, y group) int { return strings.Compare(x.id, y.id) })
	return out
}

// stateTextures returns the textures declared by models named state or
// state_*, sorted and without duplicates.
func stateTextures(graph identity.Graph, state string) []string {
	var out []string
	for model, textures := range graph {
		if model != state && !strings.HasPrefix(model, state+"_") {
			continue
		}
		for _, t := range textures {
			if !slices.Contains(out, t) {
				out = append(out, t)
			}
		}
	}
	slices.Sort(out)
	return out
}

func (b *Builder) entry(ctx context.Context, g group) Entry {
	e := Entry{
		Name: g.name,
		ID:   g.id,
		Tags: b.opts.Taxonomy.Classify(g.id),
	}

	sources := make([]string, len(g.textures))
	for i, t := range g.textures {
		sources[i] = b.textures.Locate(t)
	}
	sample, err := b.aggregator.Combine(sources)
	switch {
	case err == nil:
		e.setColour(sample.Lab)
	case errors.Is(err, colour.ErrNoSample):
		b.logger.Debug("no colour", "id", g.id, "textures", len(g.textures))
	default:
		b.logger.Warn("colour failed", "id", g.id, "error", err)
	}

	if b.opts.Images {
		e.Image = b.illustration(ctx, g)
	}
	if b.opts.PaletteSize > 0 {
		e.Palette = b.palette(g)
	}
	return e
}

// illustration returns the wiki illustration for g, falling back to the raw texture
// when it can be fetched and decoded.
func (b *Builder) illustration(ctx context.Context, g group) string {
	if b.finder != nil {
		u, err := b.finder.Find(ctx, g.id, g.name)
		if err == nil {
			return u
		}
	}
	if b.opts.RawTextureURL == "" {
		return ""
	}
	raw := blimage.TextureSource{Base: b.opts.RawTextureURL}.Locate(g.name)
	if _, err := b.loader.Load(raw); err != nil {
		b.logger.Debug("no fallback image", "id", g.id, "url", raw, "error", err)
		return ""
	}
	return raw
}

func (b *Builder) palette(g group) []string {
	src := b.textures.Locate(g.name)
	if !slices.Contains(g.textures, g.name) {
		src = b.textures.Locate(g.textures[0])
	}
	img, err := b.loader.Load(src)
	if err != nil {
		b.logger.Debug("palette source unreadable", "id", g.id, "error", err)
		return nil
	}
	return paletteHex(img, b.opts.PaletteSize, b.opts.PaletteMethod, b.logger.With("id", g.id))
}

func paletteHex(img image.Image, k int, method colour.PaletteMethod, logger hclog.Logger) []string {
	colours, err := colour.Palette(img, k, method)
	if err != nil {
		logger.Debug("palette failed", "error", err)
		return nil
	}
	out := make([]string, len(colours))
	for i, c := range colours {
		out[i] = c.Hex()
	}
	return out
}
