package extract

import (
	"math"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// channelMoments holds the first three moments of one OKLab channel.
type channelMoments struct {
	mean, stddev, skew float64
}

func momentsOf(values []float64) channelMoments {
	n := float64(len(values))
	if n == 0 {
		return channelMoments{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var m2, m3 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	sd := math.Sqrt(m2)
	skew := 0.0
	if sd > 1e-9 {
		skew = m3 / (sd * sd * sd)
	}
	return channelMoments{mean: mean, stddev: sd, skew: skew}
}

// at returns the Cornish-Fisher quantile approximation for a standard
// score t, bending the spread towards the skewed tail.
func (m channelMoments) at(t float64) float64 {
	return m.mean + m.stddev*(t+m.skew/6*(t*t-1))
}

// colourMoments computes mean, deviation and skew per OKLab channel in one
// pass and synthesises k colours evenly along t in [-1,1]. Lightness runs
// with t; the opponent axes run with it too so the synthetic colours
// follow the image's dominant diagonal.
func colourMoments(samples []sample, k int) []colour.Lab {
	if len(samples) == 0 {
		return nil
	}
	ls := make([]float64, len(samples))
	as := make([]float64, len(samples))
	bs := make([]float64, len(samples))
	for i, s := range samples {
		ls[i], as[i], bs[i] = s.lab.L, s.lab.A, s.lab.B
	}
	ml, ma, mb := momentsOf(ls), momentsOf(as), momentsOf(bs)

	out := make([]colour.Lab, k)
	for i := range k {
		t := 0.0
		if k > 1 {
			t = -1 + 2*float64(i)/float64(k-1)
		}
		out[i] = colour.Lab{
			L: colour.Clamp(ml.at(t), 0, 1),
			A: ma.at(t),
			B: mb.at(t),
		}
	}
	return out
}
