package catalog

import (
	"slices"
	"testing"

	"github.com/jmylchreest/blox/internal/colour"
)

func solidLab(r, g, b uint8) colour.Lab {
	return colour.RGB{R: r, G: g, B: b}.Lab()
}

func coloured(id string, rgb colour.RGB, tags ...string) Entry {
	e := Entry{Name: id, ID: id, Tags: tags}
	e.setColour(rgb.Lab())
	return e
}

func matchCatalog() *Catalog {
	return &Catalog{
		Blocks: []Entry{
			coloured("red_wool", colour.RGB{R: 160, G: 40, B: 35}, "block"),
			coloured("red_concrete", colour.RGB{R: 142, G: 33, B: 33}, "block"),
			coloured("stone", colour.RGB{R: 125, G: 125, B: 125}, "block"),
			coloured("blue_wool", colour.RGB{R: 53, G: 57, B: 157}, "block"),
			{Name: "air", ID: "air", Tags: []string{"block"}},
		},
		Decorations: []Entry{
			coloured("red_carpet", colour.RGB{R: 160, G: 40, B: 35}, "horizontal"),
			coloured("red_stained_glass_pane", colour.RGB{R: 150, G: 50, B: 50}, "vertical", "translucent"),
			coloured("poppy", colour.RGB{R: 170, G: 30, B: 30}, "decoration"),
		},
	}
}

func matchIDs(m []Match) []string {
	out := make([]string, len(m))
	for i, x := range m {
		out[i] = x.Entry.ID
	}
	return out
}

func TestClosest(t *testing.T) {
	target := colour.RGB{R: 160, G: 40, B: 35}

	got := matchCatalog().Closest(target, 2, Filter{})
	if ids := matchIDs(got.Blocks); !slices.Equal(ids, []string{"red_wool", "red_concrete"}) {
		t.Errorf("blocks = %v", ids)
	}
	// Stored Lab values are rounded to two decimals.
	if got.Blocks[0].Distance > 1e-3 {
		t.Errorf("exact match distance = %f", got.Blocks[0].Distance)
	}
	if got.Blocks[0].Distance > got.Blocks[1].Distance {
		t.Error("matches not sorted by distance")
	}
	if len(got.Decorations) != 2 || got.Decorations[0].Entry.ID != "red_carpet" {
		t.Errorf("decorations = %v", matchIDs(got.Decorations))
	}
}

func TestClosestDefaultCountSkipsUncoloured(t *testing.T) {
	got := matchCatalog().Closest(colour.RGB{}, 0, Filter{})
	if len(got.Blocks) != 4 {
		t.Errorf("blocks = %v, want the 4 coloured entries", matchIDs(got.Blocks))
	}
}

func TestClosestTieBreaksByID(t *testing.T) {
	c := colour.RGB{R: 10, G: 200, B: 10}
	cat := &Catalog{Blocks: []Entry{coloured("b", c, "block"), coloured("a", c, "block")}}
	got := cat.Closest(c, 2, Filter{})
	if ids := matchIDs(got.Blocks); !slices.Equal(ids, []string{"a", "b"}) {
		t.Errorf("blocks = %v, want [a b]", ids)
	}
}

func TestFilter(t *testing.T) {
	target := colour.RGB{R: 160, G: 40, B: 35}
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "include",
			filter: Filter{Include: []string{"translucent"}},
			want:   []string{"red_stained_glass_pane"},
		},
		{
			name:   "exclude",
			filter: Filter{Exclude: []string{"horizontal", "vertical"}},
			want:   []string{"poppy"},
		},
		{
			name:   "include and exclude",
			filter: Filter{Include: []string{"vertical"}, Exclude: []string{"translucent"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchCatalog().Closest(target, 6, tt.filter)
			if ids := matchIDs(got.Decorations); !slices.Equal(ids, tt.want) {
				t.Errorf("decorations = %v, want %v", ids, tt.want)
			}
			// Blocks ignore the filter.
			if len(got.Blocks) != 4 {
				t.Errorf("blocks = %v", matchIDs(got.Blocks))
			}
		})
	}
}
