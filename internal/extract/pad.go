package extract

import "github.com/jmylchreest/hueforge/internal/colour"

// Lightness span used when synthesising padding colours.
const (
	padMinL = 0.1
	padMaxL = 0.95
)

// black is the output for buffers with no usable pixels.
const black = "#000000"

// pad returns exactly k colours. Missing entries are evenly spaced
// lightness variants of the last real colour; with no colours at all the
// result is k blacks.
func pad(colours []colour.Lab, k int) []colour.Lab {
	if len(colours) >= k {
		return colours[:k]
	}
	out := make([]colour.Lab, 0, k)
	out = append(out, colours...)
	if len(colours) == 0 {
		for len(out) < k {
			out = append(out, colour.Lab{})
		}
		return out
	}

	last := colours[len(colours)-1].LCH()
	missing := k - len(colours)
	for j := range missing {
		l := padMinL + (padMaxL-padMinL)*float64(j+1)/float64(missing+1)
		out = append(out, colour.LCH{L: l, C: last.C, H: last.H}.Lab())
	}
	return out
}

// toHex pads and gamut-safely encodes a ranked colour list.
func toHex(colours []colour.Lab, k int) []string {
	padded := pad(colours, k)
	out := make([]string, len(padded))
	for i, c := range padded {
		out[i] = colour.OklabToHexSafe(c)
	}
	return out
}

func blacks(k int) []string {
	out := make([]string, k)
	for i := range out {
		out[i] = black
	}
	return out
}
