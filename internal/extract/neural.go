package extract

import (
	"cmp"
	"math"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// Competitive learning schedule.
const (
	neuralMaxSteps    = 20000
	neuralStartRate   = 0.3
	neuralEndRate     = 0.02
	neuralDedupeDelta = 0.02
)

// neuralPrimes are the sampling strides; the first one that does not
// divide the sample count visits every sample before repeating.
var neuralPrimes = []int{499, 491, 487, 503}

type neuron struct {
	lab  colour.Lab
	wins int
}

func samplingStride(n int) int {
	for _, p := range neuralPrimes {
		if n%p != 0 {
			return p
		}
	}
	return 1
}

// neuralQuantize trains a one-dimensional chain of k neurons. Neurons start
// spread across the samples ordered by lightness; each step moves the best
// matching neuron and its chain neighbours towards a sample with a rate
// that decays from 0.3 to 0.02 and a radius that shrinks to zero. Neurons
// closer than 0.02 are merged and the survivors are ranked by wins.
func neuralQuantize(samples []sample, k int) []colour.Lab {
	n := len(samples)
	if n == 0 || k < 1 {
		return nil
	}

	sorted := labsOf(samples)
	slices.SortStableFunc(sorted, func(a, b colour.Lab) int {
		return cmp.Compare(a.L, b.L)
	})

	neurons := make([]neuron, k)
	for i := range neurons {
		neurons[i].lab = sorted[(2*i+1)*n/(2*k)]
	}

	steps := min(n*4, neuralMaxSteps)
	stride := samplingStride(n)
	startRadius := float64(k) / 4
	idx := 0
	for s := range steps {
		progress := float64(s) / float64(steps)
		rate := neuralStartRate * math.Pow(neuralEndRate/neuralStartRate, progress)
		radius := int(startRadius * (1 - progress))

		p := sorted[idx]
		idx = (idx + stride) % n

		best := nearestNeuron(p, neurons)
		for j := max(best-radius, 0); j <= min(best+radius, k-1); j++ {
			falloff := 1.0
			if radius > 0 {
				d := float64(j - best)
				falloff = 1 - math.Abs(d)/float64(radius+1)
			}
			a := rate * falloff
			neurons[j].lab = colour.Lab{
				L: neurons[j].lab.L + a*(p.L-neurons[j].lab.L),
				A: neurons[j].lab.A + a*(p.A-neurons[j].lab.A),
				B: neurons[j].lab.B + a*(p.B-neurons[j].lab.B),
			}
		}
	}

	for _, p := range sorted {
		neurons[nearestNeuron(p, neurons)].wins++
	}

	slices.SortStableFunc(neurons, func(a, b neuron) int {
		return cmp.Compare(b.wins, a.wins)
	})

	out := make([]colour.Lab, 0, k)
	for _, nr := range neurons {
		if nr.wins == 0 {
			continue
		}
		dup := false
		for _, kept := range out {
			if kept.Distance(nr.lab) < neuralDedupeDelta {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, nr.lab)
		}
	}
	return out
}

func nearestNeuron(p colour.Lab, neurons []neuron) int {
	best, bestDist := 0, math.MaxFloat64
	for i, nr := range neurons {
		if d := p.Distance(nr.lab); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
