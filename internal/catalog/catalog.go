// Package catalog assembles block colour entries from the loaded manifests
// and writes the resulting catalog.
package catalog

import (
	"math"
	"slices"
	"strings"

	"github.com/jmylchreest/blox/internal/colour"
	"github.com/jmylchreest/blox/internal/security"
)

// Collection names.
const (
	CollectionBlocks      = "blocks"
	CollectionDecorations = "decorations"
)

// Entry is one row of the catalog.
type Entry struct {
	Name    string    `json:"name"`
	ID      string    `json:"id"`
	RGB     []int     `json:"rgb,omitempty"`
	Hex     string    `json:"hex,omitempty"`
	Lab     []float64 `json:"lab,omitempty"`
	Tags    []string  `json:"tags"`
	Image   string    `json:"image,omitempty"`
	Palette []string  `json:"palette,omitempty"`
}

// HasColour reports whether a colour could be computed for the entry.
func (e Entry) HasColour() bool {
	return len(e.Lab) == 3 && len(e.RGB) == 3
}

// LabValue returns the entry colour in Lab. The result is only meaningful
// when HasColour is true.
func (e Entry) LabValue() colour.Lab {
	if len(e.Lab) != 3 {
		return colour.Lab{}
	}
	return colour.Lab{L: e.Lab[0], A: e.Lab[1], B: e.Lab[2]}
}

// RGBValue returns the entry colour as sRGB.
func (e Entry) RGBValue() colour.RGB {
	if len(e.RGB) != 3 {
		return colour.RGB{}
	}
	return colour.RGB{
		R: security.ClampUint8(e.RGB[0]),
		G: security.ClampUint8(e.RGB[1]),
		B: security.ClampUint8(e.RGB[2]),
	}
}

// HasTag reports whether the entry carries tag.
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// setColour fills the colour fields from a Lab value. Lab components are
// rounded to two decimals so output stays stable across platforms.
func (e *Entry) setColour(lab colour.Lab) {
	rgb := lab.RGB()
	e.RGB = rgb.Slice()
	e.Hex = rgb.Hex()
	e.Lab = []float64{round2(lab.L), round2(lab.A), round2(lab.B)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Metadata describes how the catalog was produced.
type Metadata struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

// Catalog is the complete build output.
type Catalog struct {
	Metadata    Metadata `json:"metadata"`
	Blocks      []Entry  `json:"blocks"`
	Decorations []Entry  `json:"decorations"`
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.Blocks) + len(c.Decorations)
}

// add places e in the collection chosen by its tags.
func (c *Catalog) add(e Entry, blockTag string) {
	if e.HasTag(blockTag) {
		c.Blocks = append(c.Blocks, e)
	} else {
		c.Decorations = append(c.Decorations, e)
	}
}

func (c *Catalog) sort() {
	byID := func(a, b Entry) int { return strings.Compare(a.ID, b.ID) }
	slices.SortFunc(c.Blocks, byID)
	slices.SortFunc(c.Decorations, byID)
}
