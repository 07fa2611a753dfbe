package extract

import (
	"cmp"
	"math"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// dominantLevels is the number of quantisation levels per channel.
const dominantLevels = 7

type bucket struct {
	key    int
	pixels []colour.RGB
}

func quantiseLevel(v uint8) int {
	return int(math.Round(float64(v) * (dominantLevels - 1) / 255))
}

// dominant quantises to 7 levels per channel, counts exact matches and
// returns the k most populated buckets, each as the mean of its pixels.
func dominant(samples []sample, k int) []colour.Lab {
	index := make(map[int]int)
	var buckets []bucket
	for _, s := range samples {
		key := (quantiseLevel(s.rgb.R)*dominantLevels+quantiseLevel(s.rgb.G))*dominantLevels + quantiseLevel(s.rgb.B)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{key: key})
		}
		buckets[i].pixels = append(buckets[i].pixels, s.rgb)
	}

	slices.SortStableFunc(buckets, func(a, b bucket) int {
		if c := cmp.Compare(len(b.pixels), len(a.pixels)); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})

	n := min(k, len(buckets))
	out := make([]colour.Lab, n)
	for i := range n {
		out[i] = meanRGB(buckets[i].pixels)
	}
	return out
}
