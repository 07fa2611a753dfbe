package generate

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/hueforge/internal/colour"
)

func tokenPalette() *colour.PaletteMap {
	return colour.NewPaletteMap(
		colour.Entry{Key: "background", Colours: []string{"#3498db"}},
		colour.Entry{Key: "neutral-light", Colours: []string{"#3498db"}},
		colour.Entry{Key: "Neutral", Colours: []string{"#3498db"}},
		colour.Entry{Key: "primary", Colours: []string{"#3498db", "#000000", "#ffffff"}},
		colour.Entry{Key: "accent_2", Colours: []string{"#f72f68", "#f72f68"}},
		colour.Entry{Key: "unused", Colours: []string{}},
		colour.Entry{Key: "brand", Colours: []string{"#97CD5C"}},
		colour.Entry{Key: "error", Colours: []string{"#f72f68"}},
	)
}

func TestRadiumPreservesStructure(t *testing.T) {
	input := tokenPalette()
	for _, strategy := range []string{StrategyHarmony, StrategyTintShade, StrategyMonochromatic, StrategyEvenHues} {
		t.Run(strategy, func(t *testing.T) {
			opts := DefaultRadiumOptions()
			opts.Strategy = strategy
			got, err := Radium(input, opts)
			if err != nil {
				t.Fatalf("Radium() error = %v", err)
			}
			if diff := cmp.Diff(input.Keys(), got.Keys()); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
			for key, want := range input.All() {
				colours, _ := got.Get(key)
				if len(colours) != len(want) {
					t.Errorf("%s has %d colours, want %d", key, len(colours), len(want))
				}
			}
		})
	}
}

func TestRadiumPatternSpecificity(t *testing.T) {
	got, err := Radium(tokenPalette(), DefaultRadiumOptions())
	if err != nil {
		t.Fatal(err)
	}
	lightness := func(key string) float64 {
		colours, _ := got.Get(key)
		return lchOf(colours[0]).L
	}
	tests := []struct {
		key   string
		wantL float64
	}{
		{"neutral-light", 0.96},
		{"Neutral", 0.60},
		{"background", 0.98},
	}
	for _, tt := range tests {
		if l := lightness(tt.key); math.Abs(l-tt.wantL) > 0.01 {
			t.Errorf("%s lightness = %.3f, want %.2f", tt.key, l, tt.wantL)
		}
	}

	brand, _ := got.Get("brand")
	if brand[0] != "#97cd5c" {
		t.Errorf("unmatched key brand = %s, want its colour unchanged", brand[0])
	}
}

func TestRadiumUsesPerKeyBase(t *testing.T) {
	opts := DefaultRadiumOptions()
	opts.Strategy = StrategyEvenHues
	got, err := Radium(tokenPalette(), opts)
	if err != nil {
		t.Fatal(err)
	}
	primary, _ := got.Get("primary")
	accent, _ := got.Get("accent_2")
	errColour, _ := got.Get("error")

	for _, tt := range []struct {
		key  string
		hex  string
		base string
	}{
		{"primary", primary[0], "#3498db"},
		{"accent_2", accent[0], "#f72f68"},
		{"error", errColour[0], "#f72f68"},
	} {
		want := lchOf(tt.base).H
		if d := colour.HueDistance(lchOf(tt.hex).H, want); d > 3 {
			t.Errorf("%s hue drifted %.1f degrees from its own base", tt.key, d)
		}
	}
}

func TestRadiumKeyStrategies(t *testing.T) {
	opts := DefaultRadiumOptions()
	opts.KeyStrategies = map[string]string{"primary": StrategyEvenHues}
	got, err := Radium(tokenPalette(), opts)
	if err != nil {
		t.Fatal(err)
	}
	primary, _ := got.Get("primary")
	h0, h1 := lchOf(primary[0]).H, lchOf(primary[1]).H
	if d := colour.HueDistance(h0, h1); math.Abs(d-120) > 3 {
		t.Errorf("evenHues spacing = %.1f, want 120", d)
	}

	opts.KeyStrategies = map[string]string{"primary": "zigzag"}
	if _, err := Radium(tokenPalette(), opts); !errors.Is(err, colour.ErrOutOfRange) {
		t.Errorf("bad key strategy error = %v, want ErrOutOfRange", err)
	}
}

func TestRadiumRejectsRampHarmony(t *testing.T) {
	opts := DefaultRadiumOptions()
	opts.Harmony = HarmonyMonochromatic
	if _, err := Radium(tokenPalette(), opts); !errors.Is(err, colour.ErrBadFormat) {
		t.Errorf("Radium() error = %v, want ErrBadFormat", err)
	}
}

func TestNormalizeTokenKey(t *testing.T) {
	tests := map[string]string{
		"neutral-light": "neutrallight",
		"Accent_2":      "accent",
		"  Surface 10 ": "surface",
		"":              "",
	}
	for in, want := range tests {
		if got := normalizeTokenKey(in); got != want {
			t.Errorf("normalizeTokenKey(%q) = %q, want %q", in, got, want)
		}
	}
}
