// Package extract clusters and quantises image pixels into ranked palettes.
package extract

import (
	"fmt"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// DefaultMaxSamples caps how many pixels an extraction looks at.
const DefaultMaxSamples = 6000

// alphaThreshold is the minimum alpha for a pixel to count as a colour.
const alphaThreshold = 128

// Pixels is a decoded RGBA buffer: 4 bytes per pixel, row-major,
// straight (non-premultiplied) alpha.
type Pixels struct {
	Data   []byte
	Width  int
	Height int
}

// Validate checks the buffer size against the dimensions.
func (p Pixels) Validate() error {
	if p.Width < 0 || p.Height < 0 {
		return colour.NewValidationError("pixels", fmt.Sprintf("%dx%d", p.Width, p.Height), colour.ErrOutOfRange)
	}
	if want := p.Width * p.Height * 4; len(p.Data) != want {
		return &colour.ValidationError{
			Field: "pixels",
			Value: fmt.Sprintf("%d bytes", len(p.Data)),
			Kind:  colour.ErrBadFormat,
			Err:   fmt.Errorf("expected %d bytes for %dx%d RGBA", want, p.Width, p.Height),
		}
	}
	return nil
}

// sample is one opaque pixel kept for clustering.
type sample struct {
	rgb colour.RGB
	lab colour.Lab
}

// samplePixels strides through the buffer so at most maxSamples pixels
// are visited, dropping those with alpha below alphaThreshold.
func samplePixels(p Pixels, maxSamples int) []sample {
	total := p.Width * p.Height
	if total == 0 || len(p.Data) < total*4 {
		return nil
	}
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	step := max((total+maxSamples-1)/maxSamples, 1)

	samples := make([]sample, 0, min(total, maxSamples))
	for i := 0; i < total; i += step {
		off := i * 4
		if p.Data[off+3] < alphaThreshold {
			continue
		}
		rgb := colour.RGB{R: p.Data[off], G: p.Data[off+1], B: p.Data[off+2]}
		samples = append(samples, sample{rgb: rgb, lab: colour.ToOklab(rgb.SRGB())})
	}
	return samples
}

func labsOf(samples []sample) []colour.Lab {
	out := make([]colour.Lab, len(samples))
	for i, s := range samples {
		out[i] = s.lab
	}
	return out
}

// meanRGB averages 8-bit colours into OKLab.
func meanRGB(px []colour.RGB) colour.Lab {
	if len(px) == 0 {
		return colour.Lab{}
	}
	var r, g, b float64
	for _, c := range px {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	n := float64(len(px)) * 255
	return colour.ToOklab(colour.SRGB{R: r / n, G: g / n, B: b / n})
}
