package generate

import (
	"math"
	"math/rand/v2"

	"github.com/jmylchreest/hueforge/internal/colour"
)

const (
	goldenAngle = 137.508

	blackbodyMinK = 1667.0
	blackbodyMaxK = 12000.0

	noiseFrequency = 0.35
)

// Per-series salts so each seeded series draws an independent stream.
const (
	saltRandom uint32 = iota + 1
	saltNoise
	saltSine
)

// Generative builds procedural series from the first input colour. Seeded
// series draw from a generator keyed by the normalised base hex, so the
// same base always yields the same output.
func Generative(p *colour.PaletteMap, opts Options) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	colours, err := inputColours(p)
	if err != nil {
		return nil, err
	}
	base := colours[0]
	b := lchOf(base)
	seed := colour.HashSeed(base)
	n := opts.Count
	opts.logger("generative").Debug("generating series", "base", base, "seed", seed, "count", n)

	rng := func(salt uint32) *rand.Rand {
		return colour.NewRand(seed ^ (salt * 0x9e3779b9))
	}

	out := &colour.PaletteMap{}
	out.Set("golden", goldenSeries(b, n))
	out.Set("random", randomSeries(rng(saltRandom), n))
	out.Set("noise", noiseSeries(b, rng(saltNoise), n))
	out.Set("temperature", temperatureSeries(b, n))
	out.Set("bezier", bezierSeries(colours, n))
	out.Set("easing", easingSeries(b, n))
	out.Set("blackbody", blackbodySeries(n))
	out.Set("fibonacci", fibonacciSeries(b, n))
	out.Set("harmonic", harmonicSeries(b, n))
	out.Set("sine", sineSeries(b, rng(saltSine), n))
	out.Set("cubehelix", cubehelixSeries(b, n))
	return out, nil
}

func vivid(c float64) float64 {
	return math.Max(c, 0.1)
}

func goldenSeries(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = oklch(b.L, vivid(b.C), b.H+goldenAngle*float64(i))
	}
	return out
}

func randomSeries(rng *rand.Rand, n int) []string {
	out := make([]string, n)
	for i := range out {
		h := rng.Float64() * 360
		l := 0.35 + rng.Float64()*0.5
		c := 0.05 + rng.Float64()*0.15
		out[i] = oklch(l, c, h)
	}
	return out
}

// valueNoise is smooth 1-D noise over a fixed random lattice.
type valueNoise []float64

func newValueNoise(rng *rand.Rand, size int) valueNoise {
	v := make(valueNoise, size)
	for i := range v {
		v[i] = rng.Float64()
	}
	return v
}

func (v valueNoise) at(x float64) float64 {
	i := int(x)
	f := x - float64(i)
	f = f * f * (3 - 2*f)
	a := v[i%len(v)]
	b := v[(i+1)%len(v)]
	return a + (b-a)*f
}

func noiseSeries(b colour.LCH, rng *rand.Rand, n int) []string {
	size := int(float64(n)*noiseFrequency) + 2
	nl, nc, nh := newValueNoise(rng, size), newValueNoise(rng, size), newValueNoise(rng, size)
	out := make([]string, n)
	for i := range out {
		x := float64(i) * noiseFrequency
		l := 0.40 + 0.45*nl.at(x)
		c := 0.04 + 0.16*nc.at(x)
		h := b.H + (nh.at(x)-0.5)*180
		out[i] = oklch(l, c, h)
	}
	return out
}

// temperatureSeries sweeps from warm orange to cool blue through yellow
// and green, bowing lightness upward mid-sweep.
func temperatureSeries(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		h := colour.Lerp(40, 250, t)
		l := colour.Clamp(b.L, 0.45, 0.7) + 0.15*math.Sin(math.Pi*t)
		out[i] = oklch(l, vivid(b.C), h)
	}
	return out
}

// bezierSeries follows the Bezier curve through up to four OKLab control
// points. Missing points are derived from the first colour.
func bezierSeries(colours []string, n int) []string {
	var ctrl []colour.Lab
	for _, c := range colours[:min(len(colours), 4)] {
		ctrl = append(ctrl, colour.ToOklab(colour.MustHex(c)))
	}
	if len(ctrl) == 1 {
		b := ctrl[0].LCH()
		ctrl = append(ctrl,
			colour.LCH{L: math.Min(b.L+0.25, 0.95), C: vivid(b.C), H: b.H + 90}.Lab(),
			colour.LCH{L: b.L, C: vivid(b.C), H: b.H + 180}.Lab(),
			colour.LCH{L: math.Max(b.L-0.3, 0.15), C: b.C, H: b.H + 270}.Lab(),
		)
	}
	out := make([]string, n)
	for i, t := range ramp(n) {
		out[i] = colour.OklabToHexSafe(deCasteljau(ctrl, t))
	}
	return out
}

func deCasteljau(points []colour.Lab, t float64) colour.Lab {
	pts := make([]colour.Lab, len(points))
	copy(pts, points)
	for k := len(pts) - 1; k > 0; k-- {
		for i := range k {
			pts[i] = colour.Lab{
				L: colour.Lerp(pts[i].L, pts[i+1].L, t),
				A: colour.Lerp(pts[i].A, pts[i+1].A, t),
				B: colour.Lerp(pts[i].B, pts[i+1].B, t),
			}
		}
	}
	return pts[0]
}

// easingSeries applies cubic ease-in-out to a light to dark sweep.
func easingSeries(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		var e float64
		if t < 0.5 {
			e = 4 * t * t * t
		} else {
			e = 1 - math.Pow(-2*t+2, 3)/2
		}
		out[i] = oklch(colour.Lerp(0.95, 0.2, e), b.C, b.H)
	}
	return out
}

// blackbodySeries samples the Planckian locus from 1667K to 12000K.
func blackbodySeries(n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		out[i] = blackbody(colour.Lerp(blackbodyMinK, blackbodyMaxK, t))
	}
	return out
}

// blackbody converts a colour temperature to sRGB with the Kim et al.
// cubic spline approximation of the Planckian locus, normalised so the
// brightest channel is 1.
func blackbody(k float64) string {
	k2, k3 := k*k, k*k*k
	var x float64
	if k <= 4000 {
		x = -0.2661239e9/k3 - 0.2343589e6/k2 + 0.8776956e3/k + 0.179910
	} else {
		x = -3.0258469e9/k3 + 2.1070379e6/k2 + 0.2226347e3/k + 0.240390
	}
	x2, x3 := x*x, x*x*x
	var y float64
	switch {
	case k <= 2222:
		y = -1.1063814*x3 - 1.34811020*x2 + 2.18555832*x - 0.20219683
	case k <= 4000:
		y = -0.9549476*x3 - 1.37418593*x2 + 2.09137015*x - 0.16748867
	default:
		y = 3.0817580*x3 - 5.87338670*x2 + 3.75112997*x - 0.37001483
	}

	X := x / y
	Z := (1 - x - y) / y
	r := 3.2404542*X - 1.5371385 - 0.4985314*Z
	g := -0.9692660*X + 1.8760108 + 0.0415560*Z
	bl := 0.0556434*X - 0.2040259 + 1.0572252*Z
	r, g, bl = math.Max(r, 0), math.Max(g, 0), math.Max(bl, 0)
	peak := math.Max(r, math.Max(g, bl))
	return colour.SRGB{
		R: colour.Delinearize(r / peak),
		G: colour.Delinearize(g / peak),
		B: colour.Delinearize(bl / peak),
	}.Hex()
}

// fibonacciSeries steps hue by growing Fibonacci fractions of the wheel.
func fibonacciSeries(b colour.LCH, n int) []string {
	fib := make([]float64, n+3)
	fib[0], fib[1] = 0, 1
	for i := 2; i < len(fib); i++ {
		fib[i] = fib[i-1] + fib[i-2]
	}
	total := fib[n+2]
	out := make([]string, n)
	for i := range out {
		h := b.H + 360*(fib[i+2]-1)/total
		l := colour.Clamp(b.L, 0.4, 0.8) + 0.06*float64(i%2)
		out[i] = oklch(l, vivid(b.C), h)
	}
	return out
}

// harmonicSeries follows 1/n in lightness with chroma rising as lightness
// falls.
func harmonicSeries(b colour.LCH, n int) []string {
	cmax := vivid(b.C)
	out := make([]string, n)
	for i := range out {
		k := float64(i + 1)
		l := 0.2 + 0.75/k
		c := 0.02 + cmax*(1-1/k)
		out[i] = oklch(l, c, b.H)
	}
	return out
}

// sineSeries drives L, C and H with sinusoids at seeded phases.
func sineSeries(b colour.LCH, rng *rand.Rand, n int) []string {
	pl, pc, ph := rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi
	out := make([]string, n)
	for i, t := range ramp(n) {
		a := 2 * math.Pi * t
		l := 0.6 + 0.25*math.Sin(a+pl)
		c := 0.12 + 0.06*math.Sin(2*a+pc)
		h := b.H + 60*math.Sin(a+ph)
		out[i] = oklch(l, c, h)
	}
	return out
}

// cubehelixSeries is Green's cubehelix with the start angle taken from
// the base hue and amplitude from its chroma. Luminance rises
// monotonically.
func cubehelixSeries(b colour.LCH, n int) []string {
	start := b.H / 120
	const rotations = -1.5
	amp := math.Min(1, 0.5+b.C*4)
	out := make([]string, n)
	for i, t := range ramp(n) {
		f := colour.Lerp(0.1, 0.9, t)
		angle := 2 * math.Pi * (start/3 + 1 + rotations*f)
		a := amp * f * (1 - f) / 2
		cosA, sinA := math.Cos(angle), math.Sin(angle)
		out[i] = colour.SRGB{
			R: f + a*(-0.14861*cosA+1.78277*sinA),
			G: f + a*(-0.29227*cosA-0.90649*sinA),
			B: f + a*(1.97294*cosA),
		}.Hex()
	}
	return out
}
