package colour

import "math"

// Text colours offered by BestTextOn.
const (
	TextLight = "#ffffff"
	TextDark  = "#111111"
)

// WCAG thresholds.
const (
	WCAGLarge = 3.0
	WCAGAA    = 4.5
	WCAGAAA   = 7.0
)

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.x.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance
func RelativeLuminance(c SRGB) float64 {
	return 0.2126*Linearize(clamp01(c.R)) + 0.7152*Linearize(clamp01(c.G)) + 0.0722*Linearize(clamp01(c.B))
}

// WCAGRatio calculates the contrast ratio between two colours.
// Returns a value between 1 and 21, where 21 is black against white.
func WCAGRatio(a, b SRGB) float64 {
	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastHex is WCAGRatio for hex input.
func ContrastHex(a, b string) (float64, error) {
	ca, err := ParseHex(a)
	if err != nil {
		return 0, err
	}
	cb, err := ParseHex(b)
	if err != nil {
		return 0, err
	}
	return WCAGRatio(ca, cb), nil
}

// APCA-W3 0.0.98G-4g constants.
const (
	apcaMainTRC  = 2.4
	apcaNormBG   = 0.56
	apcaNormTXT  = 0.57
	apcaRevTXT   = 0.62
	apcaRevBG    = 0.65
	apcaBlkThrs  = 0.022
	apcaBlkClmp  = 1.414
	apcaScale    = 1.14
	apcaLoOffset = 0.027
	apcaLoClip   = 0.1
	apcaDeltaMin = 0.0005
)

// apcaY is the APCA screen luminance estimate. It deliberately uses a
// simple 2.4 exponent instead of the piecewise sRGB curve.
func apcaY(c SRGB) float64 {
	return 0.2126729*math.Pow(clamp01(c.R), apcaMainTRC) +
		0.7151522*math.Pow(clamp01(c.G), apcaMainTRC) +
		0.0721750*math.Pow(clamp01(c.B), apcaMainTRC)
}

// apcaSoftClip raises near-black luminance with a power-law floor.
func apcaSoftClip(y float64) float64 {
	if y < apcaBlkThrs {
		return y + math.Pow(apcaBlkThrs-y, apcaBlkClmp)
	}
	return y
}

// APCA returns the lightness contrast Lc of text on bg. Positive values are
// dark text on a light background, negative values light text on a dark
// background; magnitudes below the low-contrast deadband are zero.
func APCA(text, bg SRGB) float64 {
	yt := apcaSoftClip(apcaY(text))
	yb := apcaSoftClip(apcaY(bg))

	if math.Abs(yb-yt) < apcaDeltaMin {
		return 0
	}

	var out float64
	if yb > yt {
		sapc := (math.Pow(yb, apcaNormBG) - math.Pow(yt, apcaNormTXT)) * apcaScale
		if sapc < apcaLoClip {
			return 0
		}
		out = sapc - apcaLoOffset
	} else {
		sapc := (math.Pow(yb, apcaRevBG) - math.Pow(yt, apcaRevTXT)) * apcaScale
		if sapc > -apcaLoClip {
			return 0
		}
		out = sapc + apcaLoOffset
	}
	return out * 100
}

var (
	textLight = SRGB{R: 1, G: 1, B: 1}
	textDark  = SRGB{R: 17.0 / 255, G: 17.0 / 255, B: 17.0 / 255}
)

// BestTextOn returns whichever of #ffffff and #111111 has the higher WCAG
// contrast against bg.
func BestTextOn(bg SRGB) string {
	if WCAGRatio(textLight, bg) >= WCAGRatio(textDark, bg) {
		return TextLight
	}
	return TextDark
}
