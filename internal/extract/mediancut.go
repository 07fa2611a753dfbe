package extract

import (
	"cmp"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// colourBox is a set of pixels bounded in RGB.
type colourBox struct {
	pixels []colour.RGB
}

func channel(c colour.RGB, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// widestAxis returns the RGB axis with the largest range and that range.
func (b colourBox) widestAxis() (axis int, extent int) {
	lo := [3]uint8{255, 255, 255}
	hi := [3]uint8{}
	for _, p := range b.pixels {
		for a := range 3 {
			v := channel(p, a)
			lo[a] = min(lo[a], v)
			hi[a] = max(hi[a], v)
		}
	}
	extent = -1
	for a := range 3 {
		if r := int(hi[a]) - int(lo[a]); r > extent {
			axis, extent = a, r
		}
	}
	return axis, extent
}

// medianCut recursively bisects the box with the largest extent at the
// median along its widest axis until k boxes exist or none can split.
func medianCut(samples []sample, k int) []colour.Lab {
	if len(samples) == 0 {
		return nil
	}
	initial := make([]colour.RGB, len(samples))
	for i, s := range samples {
		initial[i] = s.rgb
	}
	boxes := []colourBox{{pixels: initial}}

	for len(boxes) < k {
		best, bestExtent, bestAxis := -1, -1, 0
		for i, b := range boxes {
			if len(b.pixels) < 2 {
				continue
			}
			axis, extent := b.widestAxis()
			if extent > bestExtent {
				best, bestExtent, bestAxis = i, extent, axis
			}
		}
		if best < 0 {
			break
		}

		sorted := slices.Clone(boxes[best].pixels)
		slices.SortStableFunc(sorted, func(a, b colour.RGB) int {
			return cmp.Compare(channel(a, bestAxis), channel(b, bestAxis))
		})
		mid := len(sorted) / 2
		boxes[best] = colourBox{pixels: sorted[:mid]}
		boxes = append(boxes, colourBox{pixels: sorted[mid:]})
	}

	slices.SortStableFunc(boxes, func(a, b colourBox) int {
		return cmp.Compare(len(b.pixels), len(a.pixels))
	})
	out := make([]colour.Lab, len(boxes))
	for i, b := range boxes {
		out[i] = meanRGB(b.pixels)
	}
	return out
}
