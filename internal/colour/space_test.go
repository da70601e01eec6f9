package colour

import (
	"math"
	"testing"
)

// hueDistance is the shortest angular distance between two hues, in [0,180].
func hueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormalizeHue(h1) - NormalizeHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestRGBLabRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
	}{
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}},
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}},
		{name: "grass green", rgb: RGB{R: 94, G: 157, B: 52}},
		{name: "deep blue", rgb: RGB{R: 12, G: 24, B: 200}},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lab := tt.rgb.Lab()
			got := lab.LCH().Lab().RGB()
			if absDiff(got.R, tt.rgb.R) > 1 || absDiff(got.G, tt.rgb.G) > 1 || absDiff(got.B, tt.rgb.B) > 1 {
				t.Errorf("round trip %v -> %v", tt.rgb, got)
			}
		})
	}
}

func TestLabRange(t *testing.T) {
	white := RGB{R: 255, G: 255, B: 255}.Lab()
	if math.Abs(white.L-100) > 0.01 {
		t.Errorf("white L = %f, want 100", white.L)
	}
	black := RGB{}.Lab()
	if math.Abs(black.L) > 0.01 {
		t.Errorf("black L = %f, want 0", black.L)
	}
}

func TestLabRGBClampsOutOfGamut(t *testing.T) {
	if got := (Lab{L: 150}).RGB(); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("L=150 -> %v, want clamped white", got)
	}
	if got := (Lab{L: -10}).RGB(); got != (RGB{}) {
		t.Errorf("L=-10 -> %v, want clamped black", got)
	}
}

func TestNormalizeHue(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 360, want: 0},
		{in: -1, want: 359},
		{in: 725, want: 5},
		{in: 180, want: 180},
	}

	for _, tt := range tests {
		if got := NormalizeHue(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeHue(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}


func TestRGBHex(t *testing.T) {
	if got := (RGB{R: 26, G: 43, B: 60}).Hex(); got != "#1a2b3c" {
		t.Errorf("Hex() = %s, want #1a2b3c", got)
	}
}
