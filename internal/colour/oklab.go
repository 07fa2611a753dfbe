// Package colour provides colour-space conversion, gamut mapping and contrast maths.
package colour

import "math"

// SRGB is a colour with gamma-encoded sRGB channels in [0, 1].
type SRGB struct {
	R, G, B float64
}

// Lab is a colour in the OKLab space.
type Lab struct {
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// LCH is the polar form of OKLab. H is in degrees, [0, 360).
type LCH struct {
	L float64 `json:"l" yaml:"l"`
	C float64 `json:"c" yaml:"c"`
	H float64 `json:"h" yaml:"h"`
}

// gamutEpsilon is how far outside [0, 1] a linear channel may stray and
// still count as in gamut.
const gamutEpsilon = 0.001

// gamutIterations bounds the chroma bisection. Error is C/2^24.
const gamutIterations = 24

// Linearize converts a gamma-encoded sRGB channel to linear light.
func Linearize(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Delinearize converts a linear-light channel back to gamma-encoded sRGB.
func Delinearize(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1.0/2.4) - 0.055
}

// linearToOklab converts linear RGB to OKLab.
func linearToOklab(r, g, b float64) Lab {
	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	lp := math.Cbrt(l)
	mp := math.Cbrt(m)
	sp := math.Cbrt(s)

	return Lab{
		L: 0.2104542553*lp + 0.7936177850*mp - 0.0040720468*sp,
		A: 1.9779984951*lp - 2.4285922050*mp + 0.4505937099*sp,
		B: 0.0259040371*lp + 0.7827717662*mp - 0.8086757660*sp,
	}
}

// LinearFromOklab converts OKLab to linear RGB without clamping. Channels
// outside [0, 1] mean the colour is outside the sRGB gamut.
func LinearFromOklab(c Lab) (r, g, b float64) {
	lp := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	mp := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	sp := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l := lp * lp * lp
	m := mp * mp * mp
	s := sp * sp * sp

	r = +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g = -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b = -0.0041960863*l - 0.7034186147*m + 1.7076147010*s
	return r, g, b
}

// ToOklab converts a gamma-encoded sRGB colour to OKLab.
func ToOklab(c SRGB) Lab {
	return linearToOklab(Linearize(c.R), Linearize(c.G), Linearize(c.B))
}

// ToSRGB converts OKLab to gamma-encoded sRGB, clamping each channel.
// Out-of-gamut colours shift hue under clamping; use OklchToHexSafe when
// the result is going to be shown.
func ToSRGB(c Lab) SRGB {
	r, g, b := LinearFromOklab(c)
	return SRGB{
		R: Delinearize(clamp01(r)),
		G: Delinearize(clamp01(g)),
		B: Delinearize(clamp01(b)),
	}
}

// LCH returns the polar form of c.
func (c Lab) LCH() LCH {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	return LCH{L: c.L, C: math.Hypot(c.A, c.B), H: WrapHue(h)}
}

// Lab returns the rectangular form of c.
func (c LCH) Lab() Lab {
	rad := c.H * math.Pi / 180
	return Lab{L: c.L, A: c.C * math.Cos(rad), B: c.C * math.Sin(rad)}
}

// Distance is the Euclidean distance between two OKLab colours.
func (c Lab) Distance(o Lab) float64 {
	dl := c.L - o.L
	da := c.A - o.A
	db := c.B - o.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// ToOklch converts sRGB to OKLCH.
func ToOklch(c SRGB) LCH {
	return ToOklab(c).LCH()
}

// FromOklch converts OKLCH to sRGB with per-channel clamping.
func FromOklch(c LCH) SRGB {
	return ToSRGB(c.Lab())
}

// HexToOklch parses a hex colour and returns its OKLCH coordinates.
func HexToOklch(hex string) (LCH, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return LCH{}, err
	}
	return ToOklch(c), nil
}

// InGamut reports whether c converts to sRGB without clamping.
func InGamut(c LCH) bool {
	r, g, b := LinearFromOklab(c.Lab())
	return inRange(r) && inRange(g) && inRange(b)
}

func inRange(v float64) bool {
	return v >= -gamutEpsilon && v <= 1+gamutEpsilon
}

// MapToGamut returns c with chroma reduced to the largest value that fits
// the sRGB gamut. Lightness and hue are never altered.
func MapToGamut(c LCH) LCH {
	c.L = clamp01(c.L)
	if c.C < 0 {
		c.C = 0
	}
	if InGamut(c) {
		return c
	}
	lo, hi := 0.0, c.C
	for range gamutIterations {
		mid := (lo + hi) / 2
		if InGamut(LCH{L: c.L, C: mid, H: c.H}) {
			lo = mid
		} else {
			hi = mid
		}
	}
	c.C = lo
	return c
}

// Limits for keeping hue through 8-bit rounding.
const (
	maxHueDrift      = 1.0
	hueRescueSteps   = 48
	achromaticChroma = 1e-6
)

// OklchToHexSafe encodes c as hex without shifting its hue. When c lies
// outside sRGB its chroma is bisected down to the gamut boundary.
// Rounding to 8 bits prefers the neighbour with the smallest hue error.
// Dark colours sit on a coarse 8-bit grid; when no neighbour keeps the hue
// within a degree, chroma steps down until one does, and a grey of the
// same lightness is the last resort.
func OklchToHexSafe(c LCH) string {
	return encodeSafe(c).Hex()
}

func encodeSafe(c LCH) RGB {
	m := MapToGamut(c)
	if m.C < achromaticChroma {
		return grey(m.L)
	}
	if rgb := quantize(m); keepsHue(rgb, m.H) {
		return rgb
	}
	for i := hueRescueSteps - 1; i > 0; i-- {
		lower := LCH{L: m.L, C: m.C * float64(i) / hueRescueSteps, H: m.H}
		if rgb := quantize(lower); keepsHue(rgb, m.H) {
			return rgb
		}
	}
	return grey(m.L)
}

func keepsHue(rgb RGB, h float64) bool {
	return HueDistance(ToOklch(rgb.SRGB()).H, h) <= maxHueDrift
}

// grey is the neutral with OKLab lightness l.
func grey(l float64) RGB {
	r, _, _ := LinearFromOklab(Lab{L: l})
	v := to8(Delinearize(clamp01(r)))
	return RGB{R: v, G: v, B: v}
}

// quantize picks the 8-bit neighbour of c that stays closest to it,
// weighting hue error so rounding does not undo the gamut mapping.
func quantize(c LCH) RGB {
	r, g, b := LinearFromOklab(c.Lab())
	ch := [3]float64{
		Delinearize(clamp01(r)) * 255,
		Delinearize(clamp01(g)) * 255,
		Delinearize(clamp01(b)) * 255,
	}
	target := c.Lab()

	var best RGB
	bestCost := math.Inf(1)
	for mask := range 8 {
		var cand [3]uint8
		for i, v := range ch {
			if mask&(1<<i) != 0 {
				cand[i] = uint8(math.Ceil(v))
			} else {
				cand[i] = uint8(math.Floor(v))
			}
		}
		rgb := RGB{R: cand[0], G: cand[1], B: cand[2]}
		got := ToOklab(rgb.SRGB())
		cost := got.Distance(target)
		if c.C > 1e-9 {
			lch := got.LCH()
			cost += 3 * lch.C * HueDistance(lch.H, c.H) * math.Pi / 180
		}
		if cost < bestCost {
			bestCost = cost
			best = rgb
		}
	}
	return best
}

// OklabToHexSafe is OklchToHexSafe for rectangular input.
func OklabToHexSafe(c Lab) string {
	return OklchToHexSafe(c.LCH())
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return clamp(v, lo, hi)
}
