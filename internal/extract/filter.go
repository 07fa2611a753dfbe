package extract

import "github.com/jmylchreest/hueforge/internal/colour"

// Band limits for the vibrant and muted pre-filters.
const (
	vibrantMinChroma = 0.10
	vibrantMinL      = 0.25
	vibrantMaxL      = 0.85

	mutedMinChroma = 0.02
	mutedMaxChroma = 0.09
)

func isVibrant(c colour.LCH) bool {
	return c.C > vibrantMinChroma && c.L > vibrantMinL && c.L < vibrantMaxL
}

func isMuted(c colour.LCH) bool {
	return c.C >= mutedMinChroma && c.C <= mutedMaxChroma
}

// filterSamples keeps the points matching keep. When fewer than k
// survive the full set is returned and starved reports true.
func filterSamples(points []colour.Lab, k int, keep func(colour.LCH) bool) (out []colour.Lab, starved bool) {
	out = make([]colour.Lab, 0, len(points))
	for _, p := range points {
		if keep(p.LCH()) {
			out = append(out, p)
		}
	}
	if len(out) < k {
		return points, true
	}
	return out, false
}
