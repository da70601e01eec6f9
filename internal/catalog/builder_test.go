package catalog

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"slices"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blox/internal/colour"
	"github.com/jmylchreest/blox/internal/identity"
	"github.com/jmylchreest/blox/internal/manifest"
	"github.com/jmylchreest/blox/internal/taxonomy"
	"github.com/jmylchreest/blox/internal/wiki"
)

func solidImage(c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

type mapLoader map[string]image.Image

func (m mapLoader) Load(path string) (image.Image, error) {
	img, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("image file not found: %s", path)
	}
	return img, nil
}

type mapFinder map[string]string

func (m mapFinder) Find(_ context.Context, id, _ string) (string, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return "", wiki.ErrNotFound
}

func fixtureSet() *manifest.Set {
	return &manifest.Set{
		Textures: []string{"acacia_log", "acacia_log_top", "glass_pane_top", "oak_door_top", "stone", "torch"},
		Graph:    identity.Graph{
			"acacia_log":   {"acacia_log", "acacia_log_top"},
			"glass_pane":   {"glass_pane_top"},
			"oak_door":     {"oak_door_top"},
			"stone":        {"stone"},
			"torch":        {"torch"},
			"wheat_stage0": {"wheat_stage0"},
		},
		BlockStates: []string{"acacia_log", "glass_pane", "lectern", "stone", "torch", "wheat"},
	}
}

func fixtureLoader() mapLoader {
	red := solidImage(color.NRGBA{R: 200, A: 255})
	return mapLoader{
		"/tex/acacia_log.png":                 red,
		"/tex/acacia_log_top.png":             red,
		"/tex/glass_pane_top.png":             solidImage(color.NRGBA{B: 220, A: 255}),
		"/tex/stone.png":                      solidImage(color.NRGBA{R: 128, G: 128, B: 128, A: 255}),
		"/tex/torch.png":                      solidImage(color.NRGBA{}),
		"/tex/wheat_stage0.png":               solidImage(color.NRGBA{R: 220, G: 200, B: 40, A: 255}),
		"https://raw.example/block/stone.png": solidImage(color.NRGBA{R: 128, G: 128, B: 128, A: 255}),
	}
}

func fixtureOptions() Options {
	return Options{
		Version:       "1.21.11",
		TextureSource: "/tex",
		RawTextureURL: "https://raw.example/block",
		Images:        true,
		Taxonomy:      taxonomy.Default(),
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func TestBuild(t *testing.T) {
	finder := mapFinder{"acacia_log": "https://wiki.example/Acacia_Log_(S).png"}
	b := NewBuilder(fixtureOptions(), fixtureLoader(), finder, nil)

	cat, err := b.Build(context.Background(), fixtureSet())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if cat.Metadata.Version != "1.21.11" || cat.Metadata.Generator == "" {
		t.Errorf("Metadata = %+v", cat.Metadata)
	}
	if got, want := ids(cat.Blocks), []string{"acacia_log", "stone"}; !slices.Equal(got, want) {
		t.Errorf("blocks = %v, want %v", got, want)
	}
	if got, want := ids(cat.Decorations), []string{"glass_pane", "torch", "wheat"}; !slices.Equal(got, want) {
		t.Errorf("decorations = %v, want %v", got, want)
	}

	t.Run("grouped textures", func(t *testing.T) {
		e, _ := find(cat.Blocks, "acacia_log")
		if e.Name != "acacia_log" {
			t.Errorf("Name = %s, want acacia_log", e.Name)
		}
		if !slices.Equal(e.RGB, []int{200, 0, 0}) {
			t.Errorf("RGB = %v, want [200 0 0]", e.RGB)
		}
		if e.Hex != "#c80000" {
			t.Errorf("Hex = %s", e.Hex)
		}
		if e.Image != "https://wiki.example/Acacia_Log_(S).png" {
			t.Errorf("Image = %s", e.Image)
		}
		if !slices.Equal(e.Tags, []string{taxonomy.TagBlock}) {
			t.Errorf("Tags = %v", e.Tags)
		}
	})

	t.Run("name falls back to first texture", func(t *testing.T) {
		e, _ := find(cat.Decorations, "glass_pane")
		if e.Name != "glass_pane_top" {
			t.Errorf("Name = %s, want glass_pane_top", e.Name)
		}
		if !slices.Equal(e.Tags, []string{taxonomy.TagVertical, taxonomy.TagTranslucent}) {
			t.Errorf("Tags = %v", e.Tags)
		}
	})

	t.Run("raw texture fallback image", func(t *testing.T) {
		e, _ := find(cat.Blocks, "stone")
		if e.Image != "https://raw.example/block/stone.png" {
			t.Errorf("Image = %s", e.Image)
		}
	})

	t.Run("transparent texture has no colour", func(t *testing.T) {
		e, _ := find(cat.Decorations, "torch")
		if e.HasColour() || e.RGB != nil || e.Lab != nil || e.Hex != "" {
			t.Errorf("expected no colour, got %+v", e)
		}
		if e.Image != "" {
			t.Errorf("Image = %s, want empty", e.Image)
		}
	})

	t.Run("block state from models", func(t *testing.T) {
		e, ok := find(cat.Decorations, "wheat")
		if !ok {
			t.Fatal("wheat missing")
		}
		if e.Name != "wheat" || !slices.Equal(e.RGB, []int{220, 200, 40}) {
			t.Errorf("wheat = %+v", e)
		}
	})

	t.Run("excluded and unresolvable", func(t *testing.T) {
		for _, id := range []string{"oak_door", "lectern"} {
			if _, ok := find(append(cat.Blocks, cat.Decorations...), id); ok {
				t.Errorf("%s should not be in the catalog", id)
			}
		}
	})
}

func TestBuildWithoutImages(t *testing.T) {
	opts := fixtureOptions()
	opts.Images = false
	finder := mapFinder{"acacia_log": "https://wiki.example/a.png"}

	cat, err := NewBuilder(opts, fixtureLoader(), finder, nil).Build(context.Background(), fixtureSet())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, e := range append(cat.Blocks, cat.Decorations...) {
		if e.Image != "" {
			t.Errorf("%s has image %s", e.ID, e.Image)
		}
	}
}

func TestBuildPalette(t *testing.T) {
	opts := fixtureOptions()
	opts.Images = false
	opts.PaletteSize = 1
	opts.PaletteMethod = colour.PaletteKMeans

	cat, err := NewBuilder(opts, fixtureLoader(), nil, nil).Build(context.Background(), fixtureSet())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	e, _ := find(cat.Blocks, "stone")
	if !slices.Equal(e.Palette, []string{"#808080"}) {
		t.Errorf("Palette = %v, want [#808080]", e.Palette)
	}
	// A fully transparent texture yields no palette.
	if e, _ := find(cat.Decorations, "torch"); e.Palette != nil {
		t.Errorf("torch Palette = %v, want none", e.Palette)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBuilder(fixtureOptions(), fixtureLoader(), nil, nil).Build(ctx, fixtureSet()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestBuildTracesModelUsers(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Level: hclog.Trace, Output: &buf})

	opts := fixtureOptions()
	opts.Images = false
	if _, err := NewBuilder(opts, fixtureLoader(), nil, logger).Build(context.Background(), fixtureSet()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var line string
	for l := range strings.Lines(buf.String()) {
		if strings.Contains(l, "resolved") && strings.Contains(l, "id=acacia_log ") {
			line = l
		}
	}
	_, models, ok := strings.Cut(line, "models=")
	if !ok || !strings.HasPrefix(models, "[") || !strings.Contains(models, "acacia_log") {
		t.Errorf("trace for acacia_log = %q, want the acacia_log model listed", line)
	}
}

func TestStateTextures(t *testing.T) {
	graph := identity.Graph{
		"wheat_stage0": {"wheat_stage0"},
		"wheat_stage1": {"wheat_stage1", "wheat_stage0"},
		"wheatgrass":   {"wheatgrass"},
		"wheat":        {"wheat"},
	}
	got := stateTextures(graph, "wheat")
	want := []string{"wheat", "wheat_stage0", "wheat_stage1"}
	if !slices.Equal(got, want) {
		t.Errorf("stateTextures() = %v, want %v", got, want)
	}
}
