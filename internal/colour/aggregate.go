package colour

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/stat"
)

// ErrNoSample is returned when there are no opaque pixels to average.
// Callers must treat it as "colour unavailable", never as black.
var ErrNoSample = errors.New("no opaque pixels to sample")

// Sample is the averaged colour of one or more images together with the
// number of opaque pixels that contributed to it.
type Sample struct {
	Lab    Lab
	Pixels int
}

// RGB returns the sample colour as 8-bit sRGB.
func (s Sample) RGB() RGB {
	return s.Lab.RGB()
}

// Accumulator keeps running sums of LCH samples and produces their mean.
// Lightness and chroma are averaged arithmetically; hue is averaged as an
// angle so that 359° and 1° average to 0°.
type Accumulator struct {
	n         int
	lightness float64
	chroma    float64
	sin, cos  float64
}

// AddPixel adds a straight (non-premultiplied) RGBA pixel.
// Fully transparent pixels are ignored.
func (a *Accumulator) AddPixel(c color.NRGBA) {
	if c.A == 0 {
		return
	}
	a.AddLCH(RGB{R: c.R, G: c.G, B: c.B}.Lab().LCH())
}

// AddLCH adds a single LCH sample.
func (a *Accumulator) AddLCH(c LCH) {
	h := c.H * math.Pi / 180
	a.n++
	a.lightness += c.L
	a.chroma += c.C
	a.sin += math.Sin(h)
	a.cos += math.Cos(h)
}

// Count returns the number of samples added so far.
func (a *Accumulator) Count() int {
	return a.n
}

// Mean returns the average of all samples, or ErrNoSample if none were added.
func (a *Accumulator) Mean() (LCH, error) {
	if a.n == 0 {
		return LCH{}, ErrNoSample
	}
	n := float64(a.n)
	return LCH{
		L: a.lightness / n,
		C: a.chroma / n,
		H: NormalizeHue(math.Atan2(a.sin, a.cos) * 180 / math.Pi),
	}, nil
}

// Average computes the representative colour of a single image from its
// opaque pixels.
func Average(img image.Image) (Sample, error) {
	if img == nil {
		return Sample{}, fmt.Errorf("image cannot be nil")
	}

	var acc Accumulator
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			acc.AddPixel(color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}

	mean, err := acc.Mean()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Lab: mean.Lab(), Pixels: acc.Count()}, nil
}

// WeightedMean combines per-image samples into one colour, weighting each by
// its opaque pixel count. Hue circularity is already resolved inside each
// sample, so this is a plain weighted mean in Lab.
func WeightedMean(samples []Sample) (Sample, error) {
	ls := make([]float64, 0, len(samples))
	as := make([]float64, 0, len(samples))
	bs := make([]float64, 0, len(samples))
	weights := make([]float64, 0, len(samples))
	total := 0
	for _, s := range samples {
		if s.Pixels <= 0 {
			continue
		}
		ls = append(ls, s.Lab.L)
		as = append(as, s.Lab.A)
		bs = append(bs, s.Lab.B)
		weights = append(weights, float64(s.Pixels))
		total += s.Pixels
	}
	if total == 0 {
		return Sample{}, ErrNoSample
	}
	return Sample{
		Lab: Lab{
			L: stat.Mean(ls, weights),
			A: stat.Mean(as, weights),
			B: stat.Mean(bs, weights),
		},
		Pixels: total,
	}, nil
}

// ImageLoader loads an image from a path or URL.
type ImageLoader interface {
	Load(path string) (image.Image, error)
}

// Aggregator averages colours across several image sources.
type Aggregator struct {
	loader ImageLoader
	logger hclog.Logger
}

// NewAggregator creates an Aggregator reading images through loader.
func NewAggregator(loader ImageLoader, logger hclog.Logger) *Aggregator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Aggregator{loader: loader, logger: logger}
}

// Combine averages the given sources. Duplicate sources are counted once.
// Sources that cannot be loaded or have no opaque pixels are skipped.
func (a *Aggregator) Combine(sources []string) (Sample, error) {
	seen := make(map[string]bool, len(sources))
	samples := make([]Sample, 0, len(sources))
	for _, src := range sources {
		if seen[src] {
			continue
		}
		seen[src] = true

		img, err := a.loader.Load(src)
		if err != nil {
			a.logger.Debug("skipping unreadable source", "source", src, "error", err)
			continue
		}
		s, err := Average(img)
		if err != nil {
			a.logger.Debug("skipping source", "source", src, "error", err)
			continue
		}
		samples = append(samples, s)
	}
	return WeightedMean(samples)
}
