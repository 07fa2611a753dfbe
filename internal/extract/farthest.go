package extract

import (
	"math"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// farthestPoint picks a maximally spread set: it seeds with the most
// chromatic candidate and greedily adds whichever candidate is farthest
// from everything chosen so far. Candidates are samples deduplicated at
// 5 bits per channel.
func farthestPoint(samples []sample, k int) []colour.Lab {
	if len(samples) == 0 {
		return nil
	}

	index := make(map[int]int)
	var groups [][]colour.RGB
	for _, s := range samples {
		key := int(s.rgb.R>>3)<<10 | int(s.rgb.G>>3)<<5 | int(s.rgb.B>>3)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], s.rgb)
	}
	candidates := make([]colour.Lab, len(groups))
	for i, g := range groups {
		candidates[i] = meanRGB(g)
	}

	seed, seedChroma := 0, -1.0
	for i, c := range candidates {
		if ch := c.LCH().C; ch > seedChroma {
			seed, seedChroma = i, ch
		}
	}

	selected := []colour.Lab{candidates[seed]}
	minDist := make([]float64, len(candidates))
	for i, c := range candidates {
		minDist[i] = c.Distance(candidates[seed])
	}

	for len(selected) < k {
		best, bestDist := -1, 0.0
		for i, d := range minDist {
			if d > bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			break
		}
		next := candidates[best]
		selected = append(selected, next)
		for i, c := range candidates {
			minDist[i] = math.Min(minDist[i], c.Distance(next))
		}
	}
	return selected
}
