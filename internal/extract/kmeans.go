package extract

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// maxKMeansIterations bounds Lloyd iterations.
const maxKMeansIterations = 25

// cluster is a centroid in OKLab and the number of points assigned to it.
type cluster struct {
	centroid colour.Lab
	count    int
}

// score ranks clusters so vivid minority colours beat large muted ones.
func (c cluster) score() float64 {
	return float64(c.count) * (1 + 3*c.centroid.LCH().C)
}

// KMeansCore clusters OKLab points with k-means++ seeding and returns
// exactly k hex colours ranked by count*(1+3*chroma). Short results are
// padded.
func KMeansCore(points []colour.Lab, k int, rng *rand.Rand) []string {
	if k < 1 {
		return nil
	}
	if len(points) == 0 {
		return blacks(k)
	}
	clusters := kmeans(points, k, rng)
	centroids := make([]colour.Lab, len(clusters))
	for i, c := range clusters {
		centroids[i] = c.centroid
	}
	return toHex(centroids, k)
}

// kmeans performs k-means clustering and returns non-empty clusters,
// best first.
func kmeans(points []colour.Lab, k int, rng *rand.Rand) []cluster {
	centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)
	if len(centroids) == 0 {
		return nil
	}

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range maxKMeansIterations {
		// Assign each point to nearest centroid.
		changed := 0
		for i, p := range points {
			nearest := findNearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}
		centroids = recalculateCentroids(points, assignments, centroids)
	}

	counts := make([]int, len(centroids))
	for _, a := range assignments {
		counts[a]++
	}

	clusters := make([]cluster, 0, len(centroids))
	for i, c := range centroids {
		if counts[i] > 0 {
			clusters = append(clusters, cluster{centroid: c, count: counts[i]})
		}
	}
	slices.SortStableFunc(clusters, func(a, b cluster) int {
		return cmp.Compare(b.score(), a.score())
	})
	return clusters
}

// initializeCentroidsKMeansPlusPlus picks centroids with probability
// proportional to squared distance from those already chosen. It stops
// early when every remaining point coincides with a centroid.
func initializeCentroidsKMeansPlusPlus(points []colour.Lab, k int, rng *rand.Rand) []colour.Lab {
	if len(points) == 0 || k == 0 {
		return nil
	}

	centroids := make([]colour.Lab, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for i, p := range points {
		d := p.Distance(centroids[0])
		distances[i] = d * d
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range distances {
			total += d
		}
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target && d > 0 {
				chosen = i
				break
			}
		}
		next := points[chosen]
		centroids = append(centroids, next)

		for i, p := range points {
			d := p.Distance(next)
			distances[i] = math.Min(distances[i], d*d)
		}
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(p colour.Lab, centroids []colour.Lab) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.Distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points.
// Empty clusters keep their previous position.
func recalculateCentroids(points []colour.Lab, assignments []int, prev []colour.Lab) []colour.Lab {
	sums := make([]colour.Lab, len(prev))
	counts := make([]int, len(prev))
	for i, p := range points {
		c := assignments[i]
		sums[c].L += p.L
		sums[c].A += p.A
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]colour.Lab, len(prev))
	for i := range prev {
		if counts[i] == 0 {
			centroids[i] = prev[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = colour.Lab{L: sums[i].L / n, A: sums[i].A / n, B: sums[i].B / n}
	}
	return centroids
}

// Chroma-weighted pre-sample keep rates.
const (
	lowChroma      = 0.05
	midChroma      = 0.15
	lowChromaRate  = 0.2
	midChromaRate  = 0.6
	highChromaRate = 1.0
)

// chromaWeightedSample thins out muted points so they do not swamp vivid
// ones. Falls back to all points when fewer than k survive.
func chromaWeightedSample(points []colour.Lab, k int, rng *rand.Rand) []colour.Lab {
	kept := make([]colour.Lab, 0, len(points))
	for _, p := range points {
		c := p.LCH().C
		rate := highChromaRate
		switch {
		case c < lowChroma:
			rate = lowChromaRate
		case c < midChroma:
			rate = midChromaRate
		}
		if rng.Float64() < rate {
			kept = append(kept, p)
		}
	}
	if len(kept) < k {
		return points
	}
	return kept
}
