package generate

import (
	"github.com/jmylchreest/hueforge/internal/colour"
)

// white is the partner of a lone input colour.
const white = "#ffffff"

// Interpolate builds one ramp per interpolation space through every input
// colour in order. A single colour is paired with white.
func Interpolate(p *colour.PaletteMap, opts Options) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	hexes, err := inputColours(p)
	if err != nil {
		return nil, err
	}
	if len(hexes) == 1 {
		hexes = append(hexes, white)
	}
	anchors := make([]colour.SRGB, len(hexes))
	for i, h := range hexes {
		anchors[i] = colour.MustHex(h)
	}
	opts.logger("interpolate").Debug("interpolating", "anchors", len(anchors), "count", opts.Count)

	out := &colour.PaletteMap{}
	for _, space := range colour.Spaces() {
		out.Set(space.Name, interpolateRamp(space, anchors, opts.Count))
	}
	return out, nil
}

// interpolateRamp spreads count stops across the anchor segments.
func interpolateRamp(space colour.Space, anchors []colour.SRGB, count int) []string {
	segments := len(anchors) - 1
	out := make([]string, count)
	for i, t := range ramp(count) {
		pos := t * float64(segments)
		seg := min(int(pos), segments-1)
		out[i] = colour.InterpolateIn(space, anchors[seg], anchors[seg+1], pos-float64(seg))
	}
	return out
}
