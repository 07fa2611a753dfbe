package generate

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/hueforge/internal/colour"
)

func single(hex string) *colour.PaletteMap {
	return colour.FromColours("primary", hex)
}

func withCount(n int) Options {
	opts := DefaultOptions()
	opts.Count = n
	return opts
}

func assertShape(t *testing.T, got *colour.PaletteMap, keys []string, lengths map[string]int, count int) {
	t.Helper()
	if diff := cmp.Diff(keys, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	for key, colours := range got.All() {
		want := count
		if n, ok := lengths[key]; ok {
			want = n
		}
		if len(colours) != want {
			t.Errorf("%s has %d colours, want %d", key, len(colours), want)
		}
		for _, hex := range colours {
			if !colour.IsHex(hex) {
				t.Errorf("%s contains invalid hex %q", key, hex)
			}
		}
	}
}

func TestHarmonyFixedLengths(t *testing.T) {
	fixed := map[string]int{
		"complementary": 2,
		"triadic":       3,
		"square":        4,
		"analogous":     3,
		"split":         3,
		"tetradic":      4,
		"doubleSplit":   5,
		"ambiguous":     3,
	}
	for _, count := range []int{1, 3, 7} {
		got, err := Harmony(single("#3498db"), withCount(count))
		if err != nil {
			t.Fatalf("Harmony() error = %v", err)
		}
		assertShape(t, got, HarmonyNames(), fixed, count)
	}
}

func TestHarmonyRotatesHue(t *testing.T) {
	got, err := HarmonyColours("#3498db", "complementary", 5)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "#3498db" {
		t.Errorf("first colour = %q, want base", got[0])
	}
	h0, _, _ := colour.RGBToHSL(colour.MustHex(got[0]))
	h1, _, _ := colour.RGBToHSL(colour.MustHex(got[1]))
	if d := colour.HueDistance(h0, h1); math.Abs(d-180) > 2 {
		t.Errorf("complement hue distance = %.2f, want 180", d)
	}

	if _, err := HarmonyColours("#3498db", "pentadic", 5); !errors.Is(err, colour.ErrBadFormat) {
		t.Errorf("unknown harmony error = %v, want ErrBadFormat", err)
	}
}

func TestInterpolate(t *testing.T) {
	keys := make([]string, 0, 10)
	for _, s := range colour.Spaces() {
		keys = append(keys, s.Name)
	}

	got, err := Interpolate(single("#3498db"), withCount(6))
	if err != nil {
		t.Fatal(err)
	}
	assertShape(t, got, keys, nil, 6)

	oklab, _ := got.Get("oklab")
	if oklab[0] != "#3498db" || oklab[5] != "#ffffff" {
		t.Errorf("oklab ramp endpoints = %s..%s, want #3498db..#ffffff", oklab[0], oklab[5])
	}

	multi := colour.NewPaletteMap(
		colour.Entry{Key: "a", Colours: []string{"#ff0000", "#00ff00"}},
		colour.Entry{Key: "b", Colours: []string{"#0000ff"}},
	)
	got, err = Interpolate(multi, withCount(5))
	if err != nil {
		t.Fatal(err)
	}
	oklab, _ = got.Get("oklab")
	if oklab[2] != "#00ff00" {
		t.Errorf("middle stop = %s, want the middle anchor #00ff00", oklab[2])
	}
}

func TestDataViz(t *testing.T) {
	keys := []string{"sequential", "diverging", "qualitative", "bivariate", "cyclical", "spectral", "stepped"}
	for _, count := range []int{1, 4, 9} {
		got, err := DataViz(single("#f72f68"), withCount(count))
		if err != nil {
			t.Fatal(err)
		}
		assertShape(t, got, keys, nil, count)
	}

	got, _ := DataViz(single("#f72f68"), withCount(4))
	corners, _ := got.Get("bivariate")
	seen := map[string]bool{}
	for _, c := range corners {
		seen[c] = true
	}
	if len(seen) != 4 {
		t.Errorf("bivariate corners not distinct: %v", corners)
	}

	seq, _ := got.Get("sequential")
	for i := 1; i < len(seq); i++ {
		if lchOf(seq[i]).L >= lchOf(seq[i-1]).L {
			t.Errorf("sequential not darkening at %d: %v", i, seq)
		}
	}
}

func TestGenerative(t *testing.T) {
	keys := []string{"golden", "random", "noise", "temperature", "bezier", "easing", "blackbody", "fibonacci", "harmonic", "sine", "cubehelix"}
	got, err := Generative(single("#AABBCC"), withCount(8))
	if err != nil {
		t.Fatal(err)
	}
	assertShape(t, got, keys, nil, 8)

	again, err := Generative(single("#abc"), withCount(8))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got.Entries(), again.Entries()); diff != "" {
		t.Errorf("same base gave different series (-first +second):\n%s", diff)
	}

	other, err := Generative(single("#3498db"), withCount(8))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := got.Get("random")
	b, _ := other.Get("random")
	if cmp.Equal(a, b) {
		t.Errorf("different bases gave identical random series %v", a)
	}
}

func TestBlackbodyWarmToCool(t *testing.T) {
	series := blackbodySeries(5)
	first, last := colour.MustHex(series[0]), colour.MustHex(series[4])
	if first.R < first.B {
		t.Errorf("low temperature %s is not warm", series[0])
	}
	if last.B < last.R {
		t.Errorf("high temperature %s is not cool", series[4])
	}
}

func TestGeneratorInputErrors(t *testing.T) {
	tests := []struct {
		name    string
		palette *colour.PaletteMap
		opts    Options
		wantErr error
	}{
		{name: "nil palette", palette: nil, opts: DefaultOptions(), wantErr: colour.ErrEmpty},
		{name: "no colours", palette: colour.FromColours("primary"), opts: DefaultOptions(), wantErr: colour.ErrEmpty},
		{name: "bad hex", palette: colour.FromColours("primary", "#12345g"), opts: DefaultOptions(), wantErr: colour.ErrBadFormat},
		{name: "zero count", palette: single("#3498db"), opts: withCount(0), wantErr: colour.ErrOutOfRange},
	}

	generators := map[string]func(*colour.PaletteMap, Options) (*colour.PaletteMap, error){
		"harmony":     Harmony,
		"interpolate": Interpolate,
		"dataviz":     DataViz,
		"generative":  Generative,
	}

	for _, tt := range tests {
		for name, gen := range generators {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				_, err := gen(tt.palette, tt.opts)
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	}
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			got, err := Run(name, single("#3498db"), cfg)
			if err != nil {
				t.Fatalf("Run(%s) error = %v", name, err)
			}
			if got.Len() == 0 {
				t.Errorf("Run(%s) returned an empty palette", name)
			}
		})
	}

	if _, err := Run("sparkle", single("#3498db"), cfg); !errors.Is(err, colour.ErrBadFormat) {
		t.Errorf("Run(sparkle) error = %v, want ErrBadFormat", err)
	}
}

func TestGeneratorsDoNotMutateInput(t *testing.T) {
	input := colour.NewPaletteMap(
		colour.Entry{Key: "primary", Colours: []string{"#3498DB", "#f72f68"}},
		colour.Entry{Key: "background", Colours: []string{"#fefefe"}},
	)
	before := input.Entries()
	for _, name := range Names() {
		if _, err := Run(name, input, DefaultConfig()); err != nil {
			t.Fatalf("Run(%s) error = %v", name, err)
		}
	}
	if diff := cmp.Diff(before, input.Entries()); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}
