// Package colour provides utility functions for colour manipulation and analysis.
package colour

import "math"

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(WrapHue(h1) - WrapHue(h2))
	if diff > 180 {
		diff = 360 - diff // Handle wraparound
	}
	return diff
}

// WrapHue maps any angle into [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// LerpHue interpolates between two hues along the shorter arc.
func LerpHue(h1, h2, t float64) float64 {
	d := math.Mod(h2-h1, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return WrapHue(h1 + d*t)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RGBToHSL converts sRGB to HSL.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func RGBToHSL(c SRGB) (h, s, l float64) {
	r, g, b := clamp01(c.R), clamp01(c.G), clamp01(c.B)

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return h * 60, s, l
}

// HSLToSRGB converts HSL to sRGB.
// h is hue (0-360), s is saturation (0-1), l is lightness (0-1).
func HSLToSRGB(h, s, l float64) SRGB {
	s = clamp01(s)
	l = clamp01(l)
	if s == 0 {
		// Achromatic (grey).
		return SRGB{R: l, G: l, B: l}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return SRGB{
		R: hueToRGB(p, q, h+120),
		G: hueToRGB(p, q, h),
		B: hueToRGB(p, q, h-120),
	}
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t = WrapHue(t)
	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// HSLHex is a convenience for encoding HSL straight to hex.
func HSLHex(h, s, l float64) string {
	return HSLToSRGB(h, s, l).Hex()
}
