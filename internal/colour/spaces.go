package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Coords holds the three channels of a colour in some space.
type Coords [3]float64

// Space is a colour space used for interpolation. Hue, when present, is
// the channel at HueIndex and is interpolated along the shorter arc.
type Space struct {
	Name     string
	HueIndex int
	Encode   func(SRGB) Coords
	Decode   func(Coords) string
}

// HasHue reports whether the space has a circular hue channel.
func (s Space) HasHue() bool {
	return s.HueIndex >= 0
}

// Interpolation space names.
const (
	SpaceLab    = "lab"
	SpaceLCH    = "lch"
	SpaceOklab  = "oklab"
	SpaceOklch  = "oklch"
	SpaceHCT    = "hct"
	SpaceCAM16  = "cam16"
	SpaceJzazbz = "jzazbz"
	SpaceIPT    = "ipt"
	SpaceHSL    = "hsl"
	SpaceHSV    = "hsv"
)

// Spaces returns the interpolation spaces in their canonical order.
func Spaces() []Space {
	return []Space{
		{Name: SpaceLab, HueIndex: -1, Encode: encodeLab, Decode: decodeLab},
		{Name: SpaceLCH, HueIndex: 2, Encode: encodeLCh, Decode: decodeLCh},
		{Name: SpaceOklab, HueIndex: -1, Encode: encodeOklab, Decode: decodeOklab},
		{Name: SpaceOklch, HueIndex: 2, Encode: encodeOklch, Decode: decodeOklch},
		{Name: SpaceHCT, HueIndex: 0, Encode: encodeHCT, Decode: decodeHCT},
		{Name: SpaceCAM16, HueIndex: -1, Encode: encodeCAM16, Decode: decodeCAM16},
		{Name: SpaceJzazbz, HueIndex: -1, Encode: encodeJzazbz, Decode: decodeJzazbz},
		{Name: SpaceIPT, HueIndex: -1, Encode: encodeIPT, Decode: decodeIPT},
		{Name: SpaceHSL, HueIndex: 0, Encode: encodeHSL, Decode: decodeHSL},
		{Name: SpaceHSV, HueIndex: 0, Encode: encodeHSV, Decode: decodeHSV},
	}
}

// SpaceByName looks up an interpolation space.
func SpaceByName(name string) (Space, bool) {
	for _, s := range Spaces() {
		if s.Name == name {
			return s, true
		}
	}
	return Space{}, false
}

func toColorful(c SRGB) colorful.Color {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

func fromColorful(c colorful.Color) string {
	return SRGB{R: c.R, G: c.G, B: c.B}.Hex()
}

// fitChroma bisects chroma down until build yields a displayable colour.
// Hue and lightness stay fixed.
func fitChroma(chroma float64, build func(c float64) colorful.Color) colorful.Color {
	if col := build(chroma); col.IsValid() {
		return col
	}
	lo, hi := 0.0, chroma
	for range gamutIterations {
		mid := (lo + hi) / 2
		if build(mid).IsValid() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return build(lo).Clamped()
}

func encodeLab(c SRGB) Coords {
	l, a, b := toColorful(c).Lab()
	return Coords{l, a, b}
}

func decodeLab(v Coords) string {
	return fromColorful(colorful.Lab(v[0], v[1], v[2]).Clamped())
}

func encodeLCh(c SRGB) Coords {
	h, ch, l := toColorful(c).Hcl()
	return Coords{l, ch, h}
}

func decodeLCh(v Coords) string {
	l, h := clamp01(v[0]), v[2]
	return fromColorful(fitChroma(math.Max(v[1], 0), func(ch float64) colorful.Color {
		return colorful.Hcl(h, ch, l)
	}))
}

func encodeOklab(c SRGB) Coords {
	lab := ToOklab(c)
	return Coords{lab.L, lab.A, lab.B}
}

func decodeOklab(v Coords) string {
	return OklabToHexSafe(Lab{L: v[0], A: v[1], B: v[2]})
}

func encodeOklch(c SRGB) Coords {
	lch := ToOklch(c)
	return Coords{lch.L, lch.C, lch.H}
}

func decodeOklch(v Coords) string {
	return OklchToHexSafe(LCH{L: v[0], C: v[1], H: v[2]})
}

func encodeHSL(c SRGB) Coords {
	h, s, l := RGBToHSL(c)
	return Coords{h, s, l}
}

func decodeHSL(v Coords) string {
	return fromColorful(colorful.Hsl(WrapHue(v[0]), clamp01(v[1]), clamp01(v[2])))
}

func encodeHSV(c SRGB) Coords {
	h, s, v := toColorful(c).Hsv()
	return Coords{h, s, v}
}

func decodeHSV(v Coords) string {
	return fromColorful(colorful.Hsv(WrapHue(v[0]), clamp01(v[1]), clamp01(v[2])))
}

// HCT is approximated with OKLCH hue and chroma and CIE L* as tone.
func encodeHCT(c SRGB) Coords {
	lch := ToOklch(c)
	return Coords{lch.H, lch.C, lstarFromY(RelativeLuminance(c))}
}

func decodeHCT(v Coords) string {
	h, chroma := v[0], math.Max(v[1], 0)
	targetY := yFromLstar(clamp(v[2], 0, 100))
	lo, hi := 0.0, 1.0
	for range gamutIterations {
		mid := (lo + hi) / 2
		y := RelativeLuminance(FromOklch(MapToGamut(LCH{L: mid, C: chroma, H: h})))
		if y < targetY {
			lo = mid
		} else {
			hi = mid
		}
	}
	return OklchToHexSafe(LCH{L: (lo + hi) / 2, C: chroma, H: h})
}

func lstarFromY(y float64) float64 {
	if y > 216.0/24389.0 {
		return 116*math.Cbrt(y) - 16
	}
	return y * 24389.0 / 27.0
}

func yFromLstar(l float64) float64 {
	if l > 8 {
		f := (l + 16) / 116
		return f * f * f
	}
	return l * 27.0 / 24389.0
}

// CAM16-UCS is approximated by applying its lightness and colourfulness
// compression to CIE LCh.
func encodeCAM16(c SRGB) Coords {
	h, ch, l := toColorful(c).Hcl()
	j := l * 100
	m := ch * 100
	jp := 1.7 * j / (1 + 0.007*j)
	mp := math.Log(1+0.0228*m) / 0.0228
	rad := h * math.Pi / 180
	return Coords{jp, mp * math.Cos(rad), mp * math.Sin(rad)}
}

func decodeCAM16(v Coords) string {
	jp := v[0]
	mp := math.Hypot(v[1], v[2])
	h := WrapHue(math.Atan2(v[2], v[1]) * 180 / math.Pi)
	j := jp / (1.7 - 0.007*jp)
	m := (math.Exp(0.0228*mp) - 1) / 0.0228
	l := clamp01(j / 100)
	return fromColorful(fitChroma(m/100, func(ch float64) colorful.Color {
		return colorful.Hcl(h, ch, l)
	}))
}

// sdrWhite scales relative XYZ to absolute luminance for JzAzBz.
const sdrWhite = 203.0

func linearToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return x, y, z
}

func xyzToLinear(x, y, z float64) (r, g, b float64) {
	r = 3.2404542*x - 1.5371385*y - 0.4985314*z
	g = -0.9692660*x + 1.8760108*y + 0.0415560*z
	b = 0.0556434*x - 0.2040259*y + 1.0572252*z
	return r, g, b
}

func pq(x float64) float64 {
	xp := math.Pow(math.Max(x, 0)*1e-4, 0.1593017578125)
	return math.Pow((0.8359375+18.8515625*xp)/(1+18.6875*xp), 134.034375)
}

func pqInv(x float64) float64 {
	xp := math.Pow(math.Max(x, 0), 7.460772656268214e-03)
	v := 1e4 * math.Pow((0.8359375-xp)/(18.6875*xp-18.8515625), 6.277394636015326)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

const jzD0 = 1.6295499532821566e-11

func encodeJzazbz(c SRGB) Coords {
	x, y, z := linearToXYZ(Linearize(clamp01(c.R)), Linearize(clamp01(c.G)), Linearize(clamp01(c.B)))
	x, y, z = x*sdrWhite, y*sdrWhite, z*sdrWhite

	lp := pq(0.674207838*x + 0.382799340*y - 0.047570458*z)
	mp := pq(0.149284160*x + 0.739628340*y + 0.083327300*z)
	sp := pq(0.070941080*x + 0.174768000*y + 0.670970020*z)
	iz := 0.5 * (lp + mp)

	return Coords{
		(0.44*iz)/(1-0.56*iz) - jzD0,
		3.524000*lp - 4.066708*mp + 0.542708*sp,
		0.199076*lp + 1.096799*mp - 1.295875*sp,
	}
}

func decodeJzazbz(v Coords) string {
	jz := v[0] + jzD0
	iz := jz / (0.44 + 0.56*jz)
	l := pqInv(iz + 1.386050432715393e-1*v[1] + 5.804731615611869e-2*v[2])
	m := pqInv(iz - 1.386050432715393e-1*v[1] - 5.804731615611891e-2*v[2])
	s := pqInv(iz - 9.601924202631895e-2*v[1] - 8.118918960560390e-1*v[2])

	x := 1.661373055774069e+00*l - 9.145230923250668e-01*m + 2.313620767186147e-01*s
	y := -3.250758740427037e-01*l + 1.571847038366936e+00*m - 2.182538318672940e-01*s
	z := -9.098281098284756e-02*l - 3.127282905230740e-01*m + 1.522766561305260e+00*s

	r, g, b := xyzToLinear(x/sdrWhite, y/sdrWhite, z/sdrWhite)
	return SRGB{R: Delinearize(clamp01(r)), G: Delinearize(clamp01(g)), B: Delinearize(clamp01(b))}.Hex()
}

// mat3 is a row-major 3x3 matrix.
type mat3 [3][3]float64

func (m mat3) apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

func (m mat3) inverse() mat3 {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	inv := 1 / det
	return mat3{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}
}

// Ebner and Fairchild IPT matrices.
var (
	iptXYZToLMS = mat3{
		{0.4002, 0.7075, -0.0807},
		{-0.2280, 1.1500, 0.0612},
		{0.0, 0.0, 0.9184},
	}
	iptLMSToIPT = mat3{
		{0.4000, 0.4000, 0.2000},
		{4.4550, -4.8510, 0.3960},
		{0.8056, 0.3572, -1.1628},
	}
	iptLMSToXYZ = iptXYZToLMS.inverse()
	iptIPTToLMS = iptLMSToIPT.inverse()
)

func signedPow(v, p float64) float64 {
	if v < 0 {
		return -math.Pow(-v, p)
	}
	return math.Pow(v, p)
}

func encodeIPT(c SRGB) Coords {
	x, y, z := linearToXYZ(Linearize(clamp01(c.R)), Linearize(clamp01(c.G)), Linearize(clamp01(c.B)))
	l, m, s := iptXYZToLMS.apply(x, y, z)
	i, p, t := iptLMSToIPT.apply(signedPow(l, 0.43), signedPow(m, 0.43), signedPow(s, 0.43))
	return Coords{i, p, t}
}

func decodeIPT(v Coords) string {
	lp, mp, sp := iptIPTToLMS.apply(v[0], v[1], v[2])
	x, y, z := iptLMSToXYZ.apply(signedPow(lp, 1/0.43), signedPow(mp, 1/0.43), signedPow(sp, 1/0.43))
	r, g, b := xyzToLinear(x, y, z)
	return SRGB{R: Delinearize(clamp01(r)), G: Delinearize(clamp01(g)), B: Delinearize(clamp01(b))}.Hex()
}

// InterpolateIn blends a towards b in space s at t in [0, 1].
func InterpolateIn(s Space, a, b SRGB, t float64) string {
	ca, cb := s.Encode(a), s.Encode(b)
	var out Coords
	for i := range out {
		out[i] = Lerp(ca[i], cb[i], t)
	}
	if s.HasHue() {
		ha, hb := ca[s.HueIndex], cb[s.HueIndex]
		// Achromatic endpoints have no meaningful hue; borrow the other's.
		if isAchromatic(s, ca) {
			ha = hb
		} else if isAchromatic(s, cb) {
			hb = ha
		}
		out[s.HueIndex] = LerpHue(ha, hb, t)
	}
	return s.Decode(out)
}

func isAchromatic(s Space, c Coords) bool {
	switch s.Name {
	case SpaceLCH:
		return c[1] < 1e-3
	case SpaceOklch:
		return c[1] < 1e-4
	case SpaceHCT:
		return c[1] < 1e-4
	case SpaceHSL, SpaceHSV:
		return c[1] < 1e-4
	}
	return false
}
