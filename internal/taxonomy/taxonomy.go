// Package taxonomy assigns descriptive tags to catalog entries from ordered
// keyword tables, and decides which raw names are excluded from the catalog.
package taxonomy

import (
	"fmt"
	"slices"
	"strings"
)

// Tags used by the default taxonomy.
const (
	TagBlock       = "block"
	TagVertical    = "vertical"
	TagHorizontal  = "horizontal"
	TagTranslucent = "translucent"
	TagDecoration  = "decoration"
)

// Category pairs a tag with the substrings that select it.
type Category struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

// Matches reports whether any keyword is a substring of name.
func (c Category) Matches(name string) bool {
	for _, k := range c.Keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// MatchMode controls how an Override pattern is compared to a name.
type MatchMode string

const (
	// MatchExact requires the name to equal the pattern.
	MatchExact MatchMode = "exact"
	// MatchSubstring requires the pattern to occur anywhere in the name.
	MatchSubstring MatchMode = "substring"
)

// Override forces a single tag for names matching Pattern.
type Override struct {
	Pattern string    `yaml:"pattern"`
	Mode    MatchMode `yaml:"mode"`
	Tag     string    `yaml:"tag"`
}

// Matches reports whether name matches the override.
func (o Override) Matches(name string) bool {
	if o.Mode == MatchExact {
		return name == o.Pattern
	}
	return strings.Contains(name, o.Pattern)
}

// Exclusions drops names containing any keyword, except names listed
// verbatim in Exceptions.
type Exclusions struct {
	Keywords   []string `yaml:"keywords"`
	Exceptions []string `yaml:"exceptions"`
}

// Taxonomy is the complete rule set used to tag and filter entries.
// Category order is significant: it is the order tags are reported in.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
	Overrides  []Override `yaml:"overrides"`
	Exclusions Exclusions `yaml:"exclusions"`
	DefaultTag string     `yaml:"default_tag"`
}

// Classify returns the tags for name. Overrides are checked first, in order,
// and the first match returns its tag alone. Otherwise every matching
// category contributes its tag in table order. A name matching nothing gets
// the default tag, so the result is never empty.
func (t Taxonomy) Classify(name string) []string {
	for _, o := range t.Overrides {
		if o.Matches(name) {
			return []string{o.Tag}
		}
	}

	var tags []string
	for _, c := range t.Categories {
		if c.Matches(name) && !slices.Contains(tags, c.Tag) {
			tags = append(tags, c.Tag)
		}
	}

	if len(tags) == 0 {
		return []string{t.DefaultTag}
	}
	return tags
}

// Excluded reports whether name should be left out of the catalog.
func (t Taxonomy) Excluded(name string) bool {
	if slices.Contains(t.Exclusions.Exceptions, name) {
		return false
	}
	for _, k := range t.Exclusions.Keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// Validate checks the taxonomy for structural problems.
func (t Taxonomy) Validate() error {
	if t.DefaultTag == "" {
		return fmt.Errorf("default tag cannot be empty")
	}

	seen := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		if c.Tag == "" {
			return fmt.Errorf("category %d has no tag", i)
		}
		if seen[c.Tag] {
			return fmt.Errorf("duplicate category tag: %s", c.Tag)
		}
		seen[c.Tag] = true
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", c.Tag)
		}
		if slices.Contains(c.Keywords, "") {
			return fmt.Errorf("category %q has an empty keyword", c.Tag)
		}
	}

	for i, o := range t.Overrides {
		if o.Pattern == "" || o.Tag == "" {
			return fmt.Errorf("override %d needs both pattern and tag", i)
		}
		if o.Mode != MatchExact && o.Mode != MatchSubstring {
			return fmt.Errorf("override %q has invalid mode %q (valid: exact, substring)", o.Pattern, o.Mode)
		}
	}

	if slices.Contains(t.Exclusions.Keywords, "") {
		return fmt.Errorf("exclusion keywords cannot be empty")
	}
	return nil
}
