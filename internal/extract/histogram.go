package extract

import (
	"cmp"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

const (
	histogramBins      = 72
	histogramBinWidth  = 360.0 / histogramBins
	histogramMinChroma = 0.02
)

type hueBin struct {
	index    int
	count    int
	smoothed int
	sum      colour.Lab
}

func (b hueBin) mean() colour.Lab {
	n := float64(b.count)
	return colour.Lab{L: b.sum.L / n, A: b.sum.A / n, B: b.sum.B / n}
}

// hueHistogram bins samples into 5 degree hue buckets, smooths with a
// three-bin circular window and returns local maxima first, then the
// next-fullest bins, then synthetic evenly spaced hues when short.
func hueHistogram(samples []sample, k int) []colour.Lab {
	if len(samples) == 0 {
		return nil
	}

	points := make([]colour.LCH, 0, len(samples))
	for _, s := range samples {
		if c := s.lab.LCH(); c.C >= histogramMinChroma {
			points = append(points, c)
		}
	}
	if len(points) == 0 {
		for _, s := range samples {
			points = append(points, s.lab.LCH())
		}
	}

	bins := make([]hueBin, histogramBins)
	var meanL, meanC float64
	for _, p := range points {
		i := int(colour.WrapHue(p.H)/histogramBinWidth) % histogramBins
		lab := p.Lab()
		bins[i].index = i
		bins[i].count++
		bins[i].sum.L += lab.L
		bins[i].sum.A += lab.A
		bins[i].sum.B += lab.B
		meanL += p.L
		meanC += p.C
	}
	meanL /= float64(len(points))
	meanC /= float64(len(points))

	for i := range bins {
		bins[i].index = i
		prev := bins[(i+histogramBins-1)%histogramBins].count
		next := bins[(i+1)%histogramBins].count
		bins[i].smoothed = prev + bins[i].count + next
	}

	var peaks, rest []hueBin
	for i, b := range bins {
		if b.count == 0 {
			continue
		}
		prev := bins[(i+histogramBins-1)%histogramBins].smoothed
		next := bins[(i+1)%histogramBins].smoothed
		if b.smoothed > prev && b.smoothed >= next {
			peaks = append(peaks, b)
		} else {
			rest = append(rest, b)
		}
	}
	byStrength := func(a, b hueBin) int {
		if c := cmp.Compare(b.smoothed, a.smoothed); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	}
	slices.SortStableFunc(peaks, byStrength)
	slices.SortStableFunc(rest, byStrength)

	out := make([]colour.Lab, 0, k)
	for _, b := range append(peaks, rest...) {
		if len(out) == k {
			return out
		}
		out = append(out, b.mean())
	}

	// Synthetic hues spread from the strongest bin.
	start := 0.0
	if len(out) > 0 {
		start = out[0].LCH().H
	}
	missing := k - len(out)
	for j := range missing {
		h := colour.WrapHue(start + 360*float64(j+1)/float64(missing+1))
		out = append(out, colour.LCH{L: meanL, C: meanC, H: h}.Lab())
	}
	return out
}
