package generate

import (
	"fmt"
	"math"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// Fixed-offset harmony families, in output order.
var harmonyFamilies = []struct {
	name    string
	offsets []float64
}{
	{"complementary", []float64{0, 180}},
	{"triadic", []float64{0, 120, 240}},
	{"square", []float64{0, 90, 180, 270}},
	{"analogous", []float64{0, 30, 330}},
	{"split", []float64{0, 150, 210}},
	{"tetradic", []float64{0, 60, 180, 240}},
	{"doubleSplit", []float64{0, 30, 150, 210, 330}},
	{"ambiguous", []float64{0, 45, 90}},
}

// Ramp harmonies scale with the requested count.
const (
	HarmonyMonochromatic = "monochromatic"
	HarmonyTintShade     = "tintShade"
)

// Lightness span of the scalable ramps.
const (
	rampMinL = 0.15
	rampMaxL = 0.90
)

// HarmonyNames lists every harmony family.
func HarmonyNames() []string {
	names := make([]string, 0, len(harmonyFamilies)+2)
	for _, f := range harmonyFamilies {
		names = append(names, f.name)
	}
	return append(names, HarmonyMonochromatic, HarmonyTintShade)
}

func harmonyOffsets(name string) ([]float64, bool) {
	for _, f := range harmonyFamilies {
		if f.name == name {
			return f.offsets, true
		}
	}
	return nil, false
}

// Harmony rotates the first input colour through every harmony family in
// HSL. Fixed families have their own length; the two ramps have
// opts.Count colours.
func Harmony(p *colour.PaletteMap, opts Options) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	base, err := baseColour(p)
	if err != nil {
		return nil, err
	}
	opts.logger("harmony").Debug("generating harmonies", "base", base, "count", opts.Count)

	out := &colour.PaletteMap{}
	for _, name := range HarmonyNames() {
		colours, err := HarmonyColours(base, name, opts.Count)
		if err != nil {
			return nil, err
		}
		out.Set(name, colours)
	}
	return out, nil
}

// HarmonyColours returns one harmony family for base.
func HarmonyColours(base, name string, count int) ([]string, error) {
	c, err := colour.ParseHex(base)
	if err != nil {
		return nil, err
	}
	h, s, l := colour.RGBToHSL(c)

	if offsets, ok := harmonyOffsets(name); ok {
		out := make([]string, len(offsets))
		for i, off := range offsets {
			out[i] = colour.HSLHex(colour.WrapHue(h+off), s, l)
		}
		out[0] = c.Hex()
		return out, nil
	}

	switch name {
	case HarmonyMonochromatic:
		return monochromatic(h, s, l, count), nil
	case HarmonyTintShade:
		return tintShade(h, s, count), nil
	}
	return nil, &colour.ValidationError{
		Field: "harmony",
		Value: name,
		Kind:  colour.ErrBadFormat,
		Err:   fmt.Errorf("valid harmonies: %v", HarmonyNames()),
	}
}

// monochromatic keeps hue and saturation and ramps lightness from light to
// dark. A single colour keeps the base lightness.
func monochromatic(h, s, l float64, count int) []string {
	if count == 1 {
		return []string{colour.HSLHex(h, s, l)}
	}
	out := make([]string, count)
	for i, t := range ramp(count) {
		out[i] = colour.HSLHex(h, s, colour.Lerp(rampMaxL, rampMinL, t))
	}
	return out
}

// tintShade runs from a pale tint to a deep shade, fading saturation
// towards both ends.
func tintShade(h, s float64, count int) []string {
	out := make([]string, count)
	for i, t := range ramp(count) {
		if count == 1 {
			t = 0.5
		}
		l := colour.Lerp(0.95, 0.10, t)
		fade := 1 - 0.5*math.Abs(2*t-1)
		out[i] = colour.HSLHex(h, s*fade, l)
	}
	return out
}
