package wiki

import (
	"slices"
	"testing"
)

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func candidates(files ...string) []Candidate {
	out := make([]Candidate, len(files))
	for i, f := range files {
		out[i] = Candidate{Name: f, URL: "https://wiki.example/images/" + f}
	}
	return out
}

func TestRankSouthFirst(t *testing.T) {
	r := DefaultRanker()
	got := r.Rank("foo", candidates("Foo_(S).png", "Foo_(N).png", "Foo_(E).png"))
	if len(got) != 3 || got[0].Name != "Foo_(S).png" {
		t.Errorf("Rank() = %v, want Foo_(S).png first", names(got))
	}
}

func TestRankForcedDirection(t *testing.T) {
	r := DefaultRanker()
	got := r.Rank("oak_fence", candidates("Oak_Fence_(S).png", "Oak_Fence_(EW).png", "Oak_Fence_(N).png"))
	if got[0].Name != "Oak_Fence_(EW).png" {
		t.Errorf("Rank() = %v, want Oak_Fence_(EW).png first", names(got))
	}
	// Images without the forced marker are ranked, not dropped.
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if got[1].Name != "Oak_Fence_(S).png" {
		t.Errorf("south should break the tie among the rest: %v", names(got))
	}
}

func TestRankForcedDirectionLetterOrder(t *testing.T) {
	r := DefaultRanker()
	got := r.Rank("oak_fence", candidates("Oak_Fence_(S).png", "Oak_Fence_(N).png", "Oak_Fence_(WE).png"))
	if got[0].Name != "Oak_Fence_(WE).png" {
		t.Errorf("Rank() = %v, want Oak_Fence_(WE).png first", names(got))
	}
}

func TestRankShorterWins(t *testing.T) {
	r := DefaultRanker()
	got := r.Rank("foo", candidates("Foo_JE1_old.png", "Foo_JE1.png"))
	if got[0].Name != "Foo_JE1.png" {
		t.Errorf("Rank() = %v, want Foo_JE1.png first", names(got))
	}
}

func TestRankNewestVersion(t *testing.T) {
	r := DefaultRanker()
	got := r.Rank("foo", candidates("Foo.png", "Foo_JE2.png", "Foo_JE10.png"))
	want := []string{"Foo_JE10.png", "Foo_JE2.png", "Foo.png"}
	if !slices.Equal(names(got), want) {
		t.Errorf("Rank() = %v, want %v", names(got), want)
	}
}

func TestRankIsTotal(t *testing.T) {
	r := DefaultRanker()
	a := r.Rank("foo", candidates("Foo_B.png", "Foo_A.png"))
	b := r.Rank("foo", candidates("Foo_A.png", "Foo_B.png"))
	if !slices.Equal(names(a), names(b)) {
		t.Errorf("ranking depends on input order: %v vs %v", names(a), names(b))
	}
	if a[0].Name != "Foo_A.png" {
		t.Errorf("Rank() = %v, want Foo_A.png first", names(a))
	}
}

func TestRankFilters(t *testing.T) {
	r := DefaultRanker()

	tests := []struct {
		name  string
		entry string
		files []string
		want  []string
	}{
		{
			name:  "non image extensions",
			entry: "stone",
			files: []string{"Stone.ogg", "Stone.png", "Stone.txt"},
			want:  []string{"Stone.png"},
		},
		{
			name:  "pane variant rejected for non pane entry",
			entry: "glass",
			files: []string{"Glass_Pane_JE1.png", "Glass_JE1.png"},
			want:  []string{"Glass_JE1.png"},
		},
		{
			name:  "pane entry requires pane image",
			entry: "glass_pane",
			files: []string{"Glass_JE1.png", "Glass_Pane_(EW).png"},
			want:  []string{"Glass_Pane_(EW).png"},
		},
		{
			name:  "coral plant rejects block and fan",
			entry: "tube_coral",
			files: []string{"Tube_Coral_Block.png", "Tube_Coral_Fan.png", "Tube_Coral.png"},
			want:  []string{"Tube_Coral.png"},
		},
		{
			name:  "coral block requires block",
			entry: "tube_coral_block",
			files: []string{"Tube_Coral_Block.png", "Tube_Coral.png"},
			want:  []string{"Tube_Coral_Block.png"},
		},
		{
			name:  "bee nest rejects honey forms",
			entry: "bee_nest",
			files: []string{"Bee_Nest_Honey_(S).png", "Bee_Nest_(S).png"},
			want:  []string{"Bee_Nest_(S).png"},
		},
		{
			name:  "conduit rejects power states",
			entry: "conduit",
			files: []string{"Conduit_Active.png", "Conduit_Inactive.png", "Conduit.png"},
			want:  []string{"Conduit.png"},
		},
		{
			name:  "mushroom plant rejects block forms",
			entry: "red_mushroom",
			files: []string{"Red_Mushroom_Block.png", "Red_Mushroom.png"},
			want:  []string{"Red_Mushroom.png"},
		},
		{
			name:  "vines plant sub variant",
			entry: "weeping_vines_plant",
			files: []string{"Weeping_Vines.png", "Weeping_Vines_Plant.png"},
			want:  []string{"Weeping_Vines_Plant.png"},
		},
		{
			name:  "untrusted qualifier",
			entry: "furnace",
			files: []string{"Furnace_(lit).png", "Furnace_().png", "Furnace_(S).png"},
			want:  []string{"Furnace_(S).png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(r.Rank(tt.entry, candidates(tt.files...)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Rank(%q) = %v, want %v", tt.entry, got, tt.want)
			}
		})
	}
}

func TestBestNoSurvivors(t *testing.T) {
	r := DefaultRanker()
	if _, ok := r.Best("stone", candidates("Stone_(x).png")); ok {
		t.Error("expected no survivor")
	}
}
