// Package colour provides the colour space conversions and pixel aggregation
// used to derive a single representative colour from one or more textures.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// labScale converts between go-colorful's unit Lab range and the conventional
// L in [0,100] range used throughout the catalog.
const labScale = 100.0

// RGB represents an 8-bit sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Slice returns the channels as [r, g, b].
func (rgb RGB) Slice() []int {
	return []int{int(rgb.R), int(rgb.G), int(rgb.B)}
}

// Lab converts the colour to CIE Lab (D65), L in [0,100].
func (rgb RGB) Lab() Lab {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	l, a, b := c.Lab()
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// Lab is a colour in CIE Lab space.
type Lab struct {
	L float64
	A float64
	B float64
}

// Slice returns the components as [L, a, b].
func (lab Lab) Slice() []float64 {
	return []float64{lab.L, lab.A, lab.B}
}

// LCH converts Lab to its cylindrical form. Hue is in degrees, [0,360).
func (lab Lab) LCH() LCH {
	return LCH{
		L: lab.L,
		C: math.Hypot(lab.A, lab.B),
		H: NormalizeHue(math.Atan2(lab.B, lab.A) * 180 / math.Pi),
	}
}

// RGB converts Lab back to 8-bit sRGB. Out of gamut channels are clamped to
// [0,255] and every channel is rounded to the nearest integer.
func (lab Lab) RGB() RGB {
	c := colorful.Lab(lab.L/labScale, lab.A/labScale, lab.B/labScale)
	return RGB{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
	}
}

// Colorful returns the go-colorful representation of the Lab value.
func (lab Lab) Colorful() colorful.Color {
	return colorful.Lab(lab.L/labScale, lab.A/labScale, lab.B/labScale)
}

// LCH is a colour in cylindrical Lab space (lightness, chroma, hue in degrees).
type LCH struct {
	L float64
	C float64
	H float64
}

// Lab converts the LCH value back to Lab.
func (lch LCH) Lab() Lab {
	l, a, b := colorful.HclToLab(lch.H, lch.C/labScale, lch.L/labScale)
	return Lab{L: l * labScale, A: a * labScale, B: b * labScale}
}

// NormalizeHue wraps an angle in degrees into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod of a tiny negative value can round up to exactly 360.
	if h >= 360 {
		h -= 360
	}
	return h
}

// channel converts a unit channel value to a rounded, clamped 8-bit value.
func channel(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
