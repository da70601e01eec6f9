package wiki

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jmylchreest/blox/internal/image"
)

// south is the canonical orientation preferred when nothing else decides.
const south = "S"

// Candidate is one image returned by the wiki image index.
type Candidate struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// VariantRule keeps entry and image variants consistent: when the entry name
// contains Key, the image name must contain Marker, and when it does not, the
// image name must not. A rule only applies to entries containing one of the
// Family keywords; an empty Family applies to every entry.
type VariantRule struct {
	Family []string
	Key    string
	Marker string
}

func (r VariantRule) applies(entry string) bool {
	if len(r.Family) == 0 {
		return true
	}
	for _, f := range r.Family {
		if strings.Contains(entry, f) {
			return true
		}
	}
	return false
}

// accepts reports whether the lower-cased image name satisfies the rule.
func (r VariantRule) accepts(entry, name string) bool {
	return strings.Contains(entry, r.Key) == strings.Contains(name, r.Marker)
}

// ForcedDirection requires images for entries containing Keyword to carry
// the Direction orientation. Images without it are ranked last, not dropped.
type ForcedDirection struct {
	Keyword   string
	Direction string
}

// Ranker filters and orders wiki image candidates for an entry.
type Ranker struct {
	Variants []VariantRule
	Forced   []ForcedDirection
}

// DefaultRanker returns the ranker used for block entries.
func DefaultRanker() *Ranker {
	return &Ranker{
		Variants: []VariantRule{
			{Key: "pane", Marker: "pane"},
			{Family: []string{"coral"}, Key: "block", Marker: "block"},
			{Family: []string{"coral"}, Key: "fan", Marker: "fan"},
			{Family: []string{"bee_nest", "beehive"}, Key: "honey", Marker: "honey"},
			{Family: []string{"conduit"}, Key: "active", Marker: "active"},
			{Family: []string{"mushroom"}, Key: "block", Marker: "block"},
			{Family: []string{"mushroom"}, Key: "stem", Marker: "stem"},
			{Family: []string{"vines"}, Key: "plant", Marker: "plant"},
		},
		Forced: []ForcedDirection{
			{Keyword: "fence", Direction: "EW"},
			{Keyword: "bars", Direction: "EW"},
			{Keyword: "pane", Direction: "EW"},
		},
	}
}

// forcedDirection returns the direction mandated for entry, if any.
func (r *Ranker) forcedDirection(entry string) (string, bool) {
	for _, f := range r.Forced {
		if strings.Contains(entry, f.Keyword) {
			return f.Direction, true
		}
	}
	return "", false
}

type ranked struct {
	Candidate
	marker Marker
}

// filter drops candidates that are not images, contradict the entry's
// variant, or carry an untrustworthy qualifier.
func (r *Ranker) filter(entry string, candidates []Candidate) []ranked {
	entry = strings.ToLower(entry)
	out := make([]ranked, 0, len(candidates))

candidates:
	for _, c := range candidates {
		if !image.IsImageFile(c.Name) {
			continue
		}
		lower := strings.ToLower(c.Name)
		for _, rule := range r.Variants {
			if rule.applies(entry) && !rule.accepts(entry, lower) {
				continue candidates
			}
		}
		m, ok := ParseMarker(c.Name)
		if !ok {
			continue
		}
		out = append(out, ranked{Candidate: c, marker: m})
	}
	return out
}

// Rank returns the surviving candidates, best first. The order is total:
// forced direction match, then south-facing, then newest version, then
// shortest filename, then filename.
func (r *Ranker) Rank(entry string, candidates []Candidate) []Candidate {
	survivors := r.filter(entry, candidates)
	forced, hasForced := r.forcedDirection(strings.ToLower(entry))

	key := func(c ranked) [4]int {
		var k [4]int
		if hasForced && !c.marker.Faces(forced) {
			k[0] = 1
		}
		if !c.marker.Faces(south) {
			k[1] = 1
		}
		k[2] = -c.marker.Version
		k[3] = len(c.Name)
		return k
	}

	slices.SortStableFunc(survivors, func(a, b ranked) int {
		ka, kb := key(a), key(b)
		for i := range ka {
			if c := cmp.Compare(ka[i], kb[i]); c != 0 {
				return c
			}
		}
		return strings.Compare(a.Name, b.Name)
	})

	out := make([]Candidate, len(survivors))
	for i, s := range survivors {
		out[i] = s.Candidate
	}
	return out
}

// Best returns the highest ranked candidate.
func (r *Ranker) Best(entry string, candidates []Candidate) (Candidate, bool) {
	list := r.Rank(entry, candidates)
	if len(list) == 0 {
		return Candidate{}, false
	}
	return list[0], true
}
