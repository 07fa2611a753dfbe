package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// stripe is a run of identical pixels.
type stripe struct {
	hex   string
	count int
	alpha uint8
}

func makePixels(t *testing.T, stripes ...stripe) Pixels {
	t.Helper()
	var data []byte
	for _, s := range stripes {
		rgb, err := colour.ParseHexRGB(s.hex)
		if err != nil {
			t.Fatalf("ParseHexRGB(%q): %v", s.hex, err)
		}
		a := s.alpha
		if a == 0 {
			a = 255
		}
		for range s.count {
			data = append(data, rgb.R, rgb.G, rgb.B, a)
		}
	}
	return Pixels{Data: data, Width: len(data) / 4, Height: 1}
}

func gradientPixels(w, h int) Pixels {
	data := make([]byte, 0, w*h*4)
	for y := range h {
		for x := range w {
			data = append(data, uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), uint8((x+y)*127/max(w+h-2, 1)), 255)
		}
	}
	return Pixels{Data: data, Width: w, Height: h}
}

func TestExtractAlwaysReturnsCount(t *testing.T) {
	inputs := map[string]Pixels{
		"gradient": gradientPixels(64, 48),
		"single":   makePixels(t, stripe{hex: "#3498db", count: 200}),
		"two":      makePixels(t, stripe{hex: "#f72f68", count: 50}, stripe{hex: "#fefefe", count: 50}),
		"grey":     makePixels(t, stripe{hex: "#777777", count: 100}, stripe{hex: "#222222", count: 100}),
	}

	for _, alg := range ValidAlgorithms() {
		for name, px := range inputs {
			for _, k := range []int{1, 5, 12} {
				t.Run(string(alg)+"/"+name, func(t *testing.T) {
					opts := DefaultOptions()
					opts.Algorithm = alg
					opts.Count = k
					got, err := Extract(context.Background(), px, opts)
					if err != nil {
						t.Fatalf("Extract() error = %v", err)
					}
					if len(got) != k {
						t.Fatalf("Extract() returned %d colours, want %d", len(got), k)
					}
					for _, hex := range got {
						if !colour.IsHex(hex) {
							t.Errorf("Extract() returned invalid hex %q", hex)
						}
					}
				})
			}
		}
	}
}

func TestExtractDegenerateInput(t *testing.T) {
	transparent := makePixels(t, stripe{hex: "#ff0000", count: 100, alpha: 10})
	empty := Pixels{}

	for _, alg := range ValidAlgorithms() {
		for name, px := range map[string]Pixels{"transparent": transparent, "empty": empty} {
			t.Run(string(alg)+"/"+name, func(t *testing.T) {
				opts := DefaultOptions()
				opts.Algorithm = alg
				opts.Count = 4
				got, err := Extract(context.Background(), px, opts)
				if err != nil {
					t.Fatalf("Extract() error = %v", err)
				}
				want := []string{"#000000", "#000000", "#000000", "#000000"}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	px := gradientPixels(80, 60)
	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Algorithm = alg
			opts.Count = 6
			first, err := Extract(context.Background(), px, opts)
			if err != nil {
				t.Fatal(err)
			}
			second, err := Extract(context.Background(), px, opts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("repeated Extract() differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestExtractValidation(t *testing.T) {
	good := makePixels(t, stripe{hex: "#3498db", count: 4})

	tests := []struct {
		name    string
		px      Pixels
		mutate  func(*Options)
		wantErr error
	}{
		{name: "zero count", px: good, mutate: func(o *Options) { o.Count = 0 }, wantErr: colour.ErrOutOfRange},
		{name: "count too large", px: good, mutate: func(o *Options) { o.Count = 257 }, wantErr: colour.ErrOutOfRange},
		{name: "unknown algorithm", px: good, mutate: func(o *Options) { o.Algorithm = "bogus" }, wantErr: colour.ErrBadFormat},
		{name: "short buffer", px: Pixels{Data: []byte{1, 2, 3}, Width: 1, Height: 1}, mutate: func(*Options) {}, wantErr: colour.ErrBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := Extract(context.Background(), tt.px, opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Extract() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Extract(ctx, gradientPixels(10, 10), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestParseAlgorithm(t *testing.T) {
	got, err := ParseAlgorithm("  MedianCut ")
	if err != nil {
		t.Fatalf("ParseAlgorithm() error = %v", err)
	}
	if got != AlgorithmMedianCut {
		t.Errorf("ParseAlgorithm() = %q, want %q", got, AlgorithmMedianCut)
	}
	if _, err := ParseAlgorithm("spectral"); !errors.Is(err, colour.ErrBadFormat) {
		t.Errorf("ParseAlgorithm(spectral) error = %v, want ErrBadFormat", err)
	}
}

func TestKMeansRanksVividFirst(t *testing.T) {
	px := makePixels(t, stripe{hex: "#808080", count: 800}, stripe{hex: "#ff0000", count: 200})
	opts := DefaultOptions()
	opts.Count = 2
	got, err := Extract(context.Background(), px, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"#ff0000", "#808080"}, got); diff != "" {
		t.Errorf("kmeans ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestKMeansCore(t *testing.T) {
	rng := newRand(1)
	if got := KMeansCore(nil, 3, rng); len(got) != 3 || got[0] != "#000000" {
		t.Errorf("KMeansCore(nil) = %v, want three blacks", got)
	}

	one := []colour.Lab{colour.ToOklab(colour.MustHex("#3498db"))}
	got := KMeansCore(one, 5, rng)
	if len(got) != 5 {
		t.Fatalf("KMeansCore() returned %d colours, want 5", len(got))
	}
	if got[0] != "#3498db" {
		t.Errorf("KMeansCore()[0] = %q, want #3498db", got[0])
	}
}

func TestCountRankedAlgorithms(t *testing.T) {
	px := makePixels(t,
		stripe{hex: "#97cd5c", count: 20},
		stripe{hex: "#3498db", count: 50},
		stripe{hex: "#f72f68", count: 30},
	)
	want := []string{"#3498db", "#f72f68", "#97cd5c"}

	for _, alg := range []Algorithm{AlgorithmDominant, AlgorithmOctree} {
		t.Run(string(alg), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Algorithm = alg
			opts.Count = 3
			got, err := Extract(context.Background(), px, opts)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", alg, diff)
			}
		})
	}
}

func TestMedianCutSeparatesClusters(t *testing.T) {
	px := makePixels(t, stripe{hex: "#f72f68", count: 50}, stripe{hex: "#3498db", count: 50})
	opts := DefaultOptions()
	opts.Algorithm = AlgorithmMedianCut
	opts.Count = 2
	got, err := Extract(context.Background(), px, opts)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{got[0]: true, got[1]: true}
	for _, want := range []string{"#f72f68", "#3498db"} {
		if !seen[want] {
			t.Errorf("median cut output %v missing %s", got, want)
		}
	}
}

func TestPaddingUsesLightnessVariants(t *testing.T) {
	px := makePixels(t, stripe{hex: "#3498db", count: 40})
	opts := DefaultOptions()
	opts.Algorithm = AlgorithmDominant
	opts.Count = 4
	got, err := Extract(context.Background(), px, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "#3498db" {
		t.Errorf("first colour = %q, want #3498db", got[0])
	}
	seen := map[string]bool{}
	prevL := -1.0
	for _, hex := range got[1:] {
		if seen[hex] {
			t.Errorf("padding repeated %q", hex)
		}
		seen[hex] = true
		l, err := colour.HexToOklch(hex)
		if err != nil {
			t.Fatal(err)
		}
		if l.L <= prevL {
			t.Errorf("padding lightness not increasing: %v after %v", l.L, prevL)
		}
		prevL = l.L
	}
}

func TestFarthestSeedsWithMostChromatic(t *testing.T) {
	px := makePixels(t,
		stripe{hex: "#777777", count: 100},
		stripe{hex: "#ff00ff", count: 5},
		stripe{hex: "#202020", count: 100},
	)
	opts := DefaultOptions()
	opts.Algorithm = AlgorithmFarthest
	opts.Count = 3
	got, err := Extract(context.Background(), px, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "#ff00ff" {
		t.Errorf("first colour = %q, want #ff00ff", got[0])
	}
}

func TestSamplePixelsStride(t *testing.T) {
	px := gradientPixels(100, 100)
	if got := len(samplePixels(px, 1000)); got != 1000 {
		t.Errorf("samplePixels() kept %d, want 1000", got)
	}
	if got := len(samplePixels(px, 20000)); got != 10000 {
		t.Errorf("samplePixels() kept %d, want 10000", got)
	}
}

func TestMomentsSingleColour(t *testing.T) {
	px := makePixels(t, stripe{hex: "#f72f68", count: 30})
	got := colourMoments(samplePixels(px, 0), 3)
	want := colour.ToOklab(colour.MustHex("#f72f68"))
	for i, c := range got {
		if c.Distance(want) > 1e-9 {
			t.Errorf("moment %d = %+v, want %+v", i, c, want)
		}
	}
}
