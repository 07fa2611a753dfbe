package generate

import (
	"math"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// spectralAnchors run warm to cool; each is (L, C, H).
var spectralAnchors = []colour.LCH{
	{L: 0.55, C: 0.19, H: 25},
	{L: 0.70, C: 0.17, H: 55},
	{L: 0.86, C: 0.16, H: 100},
	{L: 0.78, C: 0.15, H: 145},
	{L: 0.68, C: 0.12, H: 195},
	{L: 0.56, C: 0.15, H: 250},
	{L: 0.45, C: 0.17, H: 295},
}

// spectralShift is how much of the input hue's distance from the first
// anchor rotates the spectral scale.
const spectralShift = 0.25

// DataViz builds data-visualisation scales around the first input colour.
// A second input colour, when present, is the opposite pole of the
// diverging scale.
func DataViz(p *colour.PaletteMap, opts Options) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	colours, err := inputColours(p)
	if err != nil {
		return nil, err
	}
	b := lchOf(colours[0])
	other := colour.LCH{L: b.L, C: b.C, H: colour.WrapHue(b.H + 180)}
	if len(colours) > 1 {
		other = lchOf(colours[1])
	}
	n := opts.Count
	opts.logger("dataviz").Debug("generating scales", "base", colours[0], "count", n)

	chroma := math.Max(b.C, 0.08)

	out := &colour.PaletteMap{}
	out.Set("sequential", sequential(b.H, chroma, n))
	out.Set("diverging", diverging(b.H, other.H, chroma, math.Max(other.C, 0.08), n))
	out.Set("qualitative", qualitative(b.H, n))
	out.Set("bivariate", bivariate(b.H, n))
	out.Set("cyclical", cyclical(b.H, n))
	out.Set("spectral", spectral(b.H, n))
	out.Set("stepped", stepped(b.H, chroma, n))
	return out, nil
}

// sequential runs light to dark in one hue, chroma rising with depth.
func sequential(h, c float64, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		out[i] = oklch(colour.Lerp(0.95, 0.25, t), colour.Lerp(0.02, c, t), h)
	}
	return out
}

// diverging passes from one hue through a near-white neutral to another.
func diverging(h1, h2, c1, c2 float64, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		if n == 1 {
			t = 0.5
		}
		d := 2*t - 1
		l := colour.Lerp(0.97, 0.45, math.Abs(d))
		switch {
		case d < 0:
			out[i] = oklch(l, c1*-d, h1)
		case d > 0:
			out[i] = oklch(l, c2*d, h2)
		default:
			out[i] = oklch(l, 0.005, h1)
		}
	}
	return out
}

// qualitative spaces hues evenly at fixed lightness and chroma.
func qualitative(h float64, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = oklch(0.70, 0.13, h+360*float64(i)/float64(n))
	}
	return out
}

// bivariate fills a square grid bilinearly from four corners: neither
// variable, the first variable, the second variable, both. The first n
// cells are returned row by row.
func bivariate(h float64, n int) []string {
	corners := [4]colour.Lab{
		colour.LCH{L: 0.93, C: 0.01, H: h}.Lab(),
		colour.LCH{L: 0.65, C: 0.14, H: h}.Lab(),
		colour.LCH{L: 0.65, C: 0.14, H: h + 120}.Lab(),
		colour.LCH{L: 0.35, C: 0.10, H: h + 60}.Lab(),
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	out := make([]string, 0, n)
	for row := 0; row < side && len(out) < n; row++ {
		for col := 0; col < side && len(out) < n; col++ {
			u, v := 0.0, 0.0
			if side > 1 {
				u = float64(col) / float64(side-1)
				v = float64(row) / float64(side-1)
			}
			out = append(out, colour.OklabToHexSafe(bilinear(corners, u, v)))
		}
	}
	return out
}

func bilinear(c [4]colour.Lab, u, v float64) colour.Lab {
	mix := func(a, b, t float64) float64 { return a + (b-a)*t }
	top := colour.Lab{L: mix(c[0].L, c[1].L, u), A: mix(c[0].A, c[1].A, u), B: mix(c[0].B, c[1].B, u)}
	bottom := colour.Lab{L: mix(c[2].L, c[3].L, u), A: mix(c[2].A, c[3].A, u), B: mix(c[2].B, c[3].B, u)}
	return colour.Lab{L: mix(top.L, bottom.L, v), A: mix(top.A, bottom.A, v), B: mix(top.B, bottom.B, v)}
}

// cyclical walks the hue wheel without returning to the start, so the
// last step sits one step short of the first.
func cyclical(h float64, n int) []string {
	out := make([]string, n)
	for i := range out {
		t := float64(i) / float64(n)
		l := 0.68 + 0.08*math.Cos(2*math.Pi*t)
		out[i] = oklch(l, 0.12, h+360*t)
	}
	return out
}

// spectral interpolates the warm to cool anchors, rotated towards the
// input hue.
func spectral(h float64, n int) []string {
	first := spectralAnchors[0].H
	shift := (colour.WrapHue(h-first+180) - 180) * spectralShift
	segments := len(spectralAnchors) - 1

	out := make([]string, n)
	for i, t := range ramp(n) {
		pos := t * float64(segments)
		seg := min(int(pos), segments-1)
		f := pos - float64(seg)
		a, b := spectralAnchors[seg], spectralAnchors[seg+1]
		out[i] = oklch(colour.Lerp(a.L, b.L, f), colour.Lerp(a.C, b.C, f), colour.Lerp(a.H, b.H, f)+shift)
	}
	return out
}

// stepped takes the centre of each of n equal lightness bands.
func stepped(h, c float64, n int) []string {
	out := make([]string, n)
	for i := range out {
		t := (float64(i) + 0.5) / float64(n)
		out[i] = oklch(colour.Lerp(0.95, 0.25, t), c*(0.4+0.6*t), h)
	}
	return out
}
