package colour

import (
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects how a texture's secondary palette is extracted.
type PaletteMethod string

const (
	// PaletteDominant uses dominant colour detection. Output is reproducible.
	PaletteDominant PaletteMethod = "dominant"

	// PaletteKMeans uses k-means clustering over opaque pixels. Initial
	// centroids are random, so output may vary between runs.
	PaletteKMeans PaletteMethod = "kmeans"
)

// ValidPaletteMethods returns the supported palette methods.
func ValidPaletteMethods() []PaletteMethod {
	return []PaletteMethod{PaletteDominant, PaletteKMeans}
}

// ParsePaletteMethod validates a palette method name.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	m := PaletteMethod(s)
	if !slices.Contains(ValidPaletteMethods(), m) {
		return "", fmt.Errorf("unknown palette method: %s (valid methods: %v)", s, ValidPaletteMethods())
	}
	return m, nil
}

// Palette extracts up to k colours from img, most significant first.
func Palette(img image.Image, k int, method PaletteMethod) ([]RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("palette size must be at least 1, got %d", k)
	}

	switch method {
	case PaletteDominant, "":
		return dominantPalette(img, k), nil
	case PaletteKMeans:
		return kmeansPalette(img, k)
	default:
		return nil, fmt.Errorf("unknown palette method: %s", method)
	}
}

func dominantPalette(img image.Image, k int) []RGB {
	found := dominantcolor.FindWeight(img, k)
	out := make([]RGB, 0, len(found))
	for _, c := range found {
		out = append(out, RGB{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}
	return out
}

func kmeansPalette(img image.Image, k int) ([]RGB, error) {
	b := img.Bounds()
	dataset := make(clusters.Observations, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, ErrNoSample
	}

	// Oversample, then recentre every cluster on its members and keep the
	// most populated ones.
	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil {
		return nil, fmt.Errorf("failed to partition pixels: %w", err)
	}
	for i := range cc {
		cc[i].Recenter()
	}

	// Most populated clusters first.
	slices.SortStableFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	out := make([]RGB, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, RGB{
			R: channel(c.Center[0]),
			G: channel(c.Center[1]),
			B: channel(c.Center[2]),
		})
		if len(out) == k {
			break
		}
	}
	return out, nil
}
