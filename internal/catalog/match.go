package catalog

import (
	"cmp"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/blox/internal/colour"
)

// DefaultMatchCount is the number of matches returned per collection.
const DefaultMatchCount = 6

// Filter is a tri-state tag filter: tags in Include are required, tags in
// Exclude are forbidden, any other tag is ignored.
type Filter struct {
	Include []string
	Exclude []string
}

// Allows reports whether e passes the filter.
func (f Filter) Allows(e Entry) bool {
	for _, t := range f.Include {
		if !e.HasTag(t) {
			return false
		}
	}
	for _, t := range f.Exclude {
		if e.HasTag(t) {
			return false
		}
	}
	return true
}

// Match is an entry with its distance from the target colour.
type Match struct {
	Entry    Entry
	Distance float64
}

// Matches holds the closest entries of each collection.
type Matches struct {
	Blocks      []Match
	Decorations []Match
}

// Closest ranks entries by CIEDE2000 distance to target. Blocks are never
// filtered; decorations must pass filter. Entries without a colour are
// skipped. count <= 0 uses DefaultMatchCount.
func (c *Catalog) Closest(target colour.RGB, count int, filter Filter) Matches {
	if count <= 0 {
		count = DefaultMatchCount
	}
	ref := target.Lab().Colorful()
	return Matches{
		Blocks:      closest(c.Blocks, ref, count, Filter{}),
		Decorations: closest(c.Decorations, ref, count, filter),
	}
}

func closest(entries []Entry, ref colorful.Color, count int, filter Filter) []Match {
	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		if !e.HasColour() || !filter.Allows(e) {
			continue
		}
		matches = append(matches, Match{
			Entry:    e,
			Distance: ref.DistanceCIEDE2000(e.LabValue().Colorful()),
		})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Entry.ID, b.Entry.ID)
	})

	if len(matches) > count {
		matches = matches[:count]
	}
	return matches
}
