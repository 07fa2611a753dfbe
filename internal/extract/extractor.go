package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// Algorithm names a pixel clustering/quantisation method.
type Algorithm string

const (
	// AlgorithmKMeans uses chroma-weighted k-means++ in OKLab.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMedianCut splits RGB boxes at the median of the widest axis.
	AlgorithmMedianCut Algorithm = "mediancut"

	// AlgorithmDominant returns the most frequent 7-level colours.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmVibrant clusters only saturated mid-lightness pixels.
	AlgorithmVibrant Algorithm = "vibrant"

	// AlgorithmMuted clusters only low-chroma pixels.
	AlgorithmMuted Algorithm = "muted"

	// AlgorithmOctree reduces an 8-level RGB octree.
	AlgorithmOctree Algorithm = "octree"

	// AlgorithmMoments synthesises colours from per-channel statistics.
	AlgorithmMoments Algorithm = "moments"

	// AlgorithmNeural uses a self-organising chain of neurons.
	AlgorithmNeural Algorithm = "neural"

	// AlgorithmHistogram picks peaks of a smoothed hue histogram.
	AlgorithmHistogram Algorithm = "histogram"

	// AlgorithmFarthest greedily maximises the minimum OKLab distance.
	AlgorithmFarthest Algorithm = "farthest"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMedianCut,
		AlgorithmDominant,
		AlgorithmVibrant,
		AlgorithmMuted,
		AlgorithmOctree,
		AlgorithmMoments,
		AlgorithmNeural,
		AlgorithmHistogram,
		AlgorithmFarthest,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ParseAlgorithm accepts an algorithm name in any case.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidAlgorithm(alg) {
		return "", &colour.ValidationError{
			Field: "algorithm",
			Value: s,
			Kind:  colour.ErrBadFormat,
			Err:   fmt.Errorf("valid algorithms: %v", ValidAlgorithms()),
		}
	}
	return alg, nil
}

// Options configures an extraction.
type Options struct {
	Algorithm  Algorithm
	Count      int `validate:"min=1,max=256"`
	MaxSamples int `validate:"min=0"`

	// Seed overrides the content-derived k-means seed.
	Seed *uint64

	Logger hclog.Logger
}

// DefaultOptions returns the default extractor configuration.
func DefaultOptions() Options {
	return Options{
		Algorithm:  AlgorithmKMeans,
		Count:      8,
		MaxSamples: DefaultMaxSamples,
	}
}

// Validate validates the extractor configuration.
func (o Options) Validate() error {
	if !IsValidAlgorithm(o.Algorithm) {
		_, err := ParseAlgorithm(string(o.Algorithm))
		return err
	}
	return colour.ValidateStruct(o)
}

// Extract turns a pixel buffer into exactly opts.Count hex colours.
// Buffers with no opaque pixels yield all-black output rather than an
// error.
func Extract(ctx context.Context, px Pixels, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := px.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.With("algorithm", string(opts.Algorithm))
	k := opts.Count

	samples := samplePixels(px, opts.MaxSamples)
	if len(samples) == 0 {
		logger.Debug("no opaque pixels, returning black palette", "count", k)
		return blacks(k), nil
	}
	logger.Debug("sampled pixels", "samples", len(samples), "width", px.Width, "height", px.Height)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var labs []colour.Lab
	switch opts.Algorithm {
	case AlgorithmKMeans:
		rng := newRand(seedFor(opts, samples))
		points := chromaWeightedSample(labsOf(samples), k, rng)
		logger.Debug("chroma-weighted sample", "kept", len(points))
		return finish(ctx, KMeansCore(points, k, rng))
	case AlgorithmVibrant, AlgorithmMuted:
		keep := isVibrant
		if opts.Algorithm == AlgorithmMuted {
			keep = isMuted
		}
		points, starved := filterSamples(labsOf(samples), k, keep)
		if starved {
			logger.Debug("filter kept too few pixels, using all samples", "samples", len(samples))
		}
		rng := newRand(seedFor(opts, samples))
		return finish(ctx, KMeansCore(points, k, rng))
	case AlgorithmMedianCut:
		labs = medianCut(samples, k)
	case AlgorithmDominant:
		labs = dominant(samples, k)
	case AlgorithmOctree:
		labs = octreeQuantize(samples, k)
	case AlgorithmMoments:
		labs = colourMoments(samples, k)
	case AlgorithmNeural:
		labs = neuralQuantize(samples, k)
	case AlgorithmHistogram:
		labs = hueHistogram(samples, k)
	case AlgorithmFarthest:
		labs = farthestPoint(samples, k)
	}

	if len(labs) < k {
		logger.Debug("padding short palette", "found", len(labs), "count", k)
	}
	return finish(ctx, toHex(labs, k))
}

func seedFor(opts Options, samples []sample) uint64 {
	if opts.Seed != nil {
		return *opts.Seed
	}
	return contentSeed(samples)
}

func finish(ctx context.Context, out []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
