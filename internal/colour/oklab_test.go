package colour

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lowercase", input: "#3498db", want: "#3498db"},
		{name: "uppercase", input: "#3498DB", want: "#3498db"},
		{name: "short form", input: "#AbC", want: "#aabbcc"},
		{name: "no hash", input: "ff0000", want: "#ff0000"},
		{name: "whitespace", input: "  #000000 ", want: "#000000"},
		{name: "too long", input: "#1234567", wantErr: true},
		{name: "bad digit", input: "#12345g", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "css name", input: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeHex(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrBadFormat) {
					t.Errorf("NormalizeHex(%q) error = %v, want ErrBadFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeHex(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255}, want: "#ff0000"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
		{name: "black", rgb: RGB{}, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
			back, err := ParseHexRGB(tt.want)
			if err != nil {
				t.Fatalf("ParseHexRGB(%s) error: %v", tt.want, err)
			}
			if back != tt.rgb {
				t.Errorf("ParseHexRGB(%s) = %+v, want %+v", tt.want, back, tt.rgb)
			}
		})
	}
}

func TestOklabKnownValues(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Lab
	}{
		{name: "white", hex: "#ffffff", want: Lab{L: 1, A: 0, B: 0}},
		{name: "black", hex: "#000000", want: Lab{}},
		{name: "red", hex: "#ff0000", want: Lab{L: 0.6280, A: 0.2249, B: 0.1258}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToOklab(MustHex(tt.hex))
			if math.Abs(got.L-tt.want.L) > 1e-3 || math.Abs(got.A-tt.want.A) > 1e-3 || math.Abs(got.B-tt.want.B) > 1e-3 {
				t.Errorf("ToOklab(%s) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestOklchRoundTrip(t *testing.T) {
	inputs := []LCH{
		{L: 0.5, C: 0.1, H: 30},
		{L: 0.7, C: 0.12, H: 140},
		{L: 0.6, C: 0.08, H: 250},
		{L: 0.85, C: 0.05, H: 320},
		{L: 0.3, C: 0.05, H: 200},
	}

	for _, in := range inputs {
		if !InGamut(in) {
			t.Fatalf("test input %+v is not in gamut", in)
		}
		r, g, b := LinearFromOklab(in.Lab())
		srgb := SRGB{R: Delinearize(r), G: Delinearize(g), B: Delinearize(b)}
		got := ToOklch(srgb)
		if math.Abs(got.L-in.L) > 1e-4 || math.Abs(got.C-in.C) > 1e-4 || HueDistance(got.H, in.H) > 1e-2 {
			t.Errorf("round trip of %+v = %+v", in, got)
		}
	}
}

func TestLabLCHConversionIsExact(t *testing.T) {
	lab := Lab{L: 0.4, A: -0.07, B: 0.11}
	back := lab.LCH().Lab()
	if lab.Distance(back) > 1e-12 {
		t.Errorf("Lab -> LCH -> Lab drifted: %+v -> %+v", lab, back)
	}
	if h := (Lab{L: 0.5, A: 0, B: -0.1}).LCH().H; math.Abs(h-270) > 1e-9 {
		t.Errorf("hue of negative b axis = %v, want 270", h)
	}
}

func TestOklchToHexSafeInGamutIsDirect(t *testing.T) {
	for _, hex := range []string{"#3498db", "#f72f68", "#97cd5c", "#fefefe", "#000000"} {
		lch, err := HexToOklch(hex)
		if err != nil {
			t.Fatalf("HexToOklch(%s) error: %v", hex, err)
		}
		if got := OklchToHexSafe(lch); got != hex {
			t.Errorf("OklchToHexSafe(HexToOklch(%s)) = %s", hex, got)
		}
	}
}

func TestOklchToHexSafeKeepsHue(t *testing.T) {
	// Out-of-gamut orange at low lightness must not drift towards red.
	in := LCH{L: 0.30, C: 0.23, H: 49}
	if InGamut(in) {
		t.Fatalf("test input %+v should be out of gamut", in)
	}
	hex := OklchToHexSafe(in)
	got, err := HexToOklch(hex)
	if err != nil {
		t.Fatalf("HexToOklch(%s) error: %v", hex, err)
	}
	if d := HueDistance(got.H, in.H); d >= 2 {
		t.Errorf("OklchToHexSafe(%+v) = %s with hue %.2f, drift %.2f", in, hex, got.H, d)
	}
	if math.Abs(got.L-in.L) > 0.01 {
		t.Errorf("lightness drifted: got %.4f, want %.4f", got.L, in.L)
	}
}

func TestOklchToHexSafeHueGrid(t *testing.T) {
	for l := 10; l <= 95; l += 5 {
		for h := 0; h < 360; h += 5 {
			for _, c := range []float64{0.05, 0.15, 0.25, 0.4} {
				in := LCH{L: float64(l) / 100, C: c, H: float64(h)}
				hex := OklchToHexSafe(in)
				rgb, _ := ParseHexRGB(hex)
				if rgb.R == rgb.G && rgb.G == rgb.B {
					// Neutral fallback has no hue to keep.
					if l >= 40 && c >= 0.15 {
						t.Errorf("OklchToHexSafe(%+v) = %s, fell back to grey", in, hex)
					}
					continue
				}
				got, _ := HexToOklch(hex)
				if d := HueDistance(got.H, in.H); d > 1.0 {
					t.Errorf("OklchToHexSafe(%+v) = %s, hue drift %.3f", in, hex, d)
				}
			}
		}
	}
}

func TestOklchToHexSafeDarkColours(t *testing.T) {
	tests := []LCH{
		{L: 0.20, C: 0.15, H: 40},
		{L: 0.15, C: 0.15, H: 55},
		{L: 0.10, C: 0.15, H: 95},
		{L: 0.22, C: 0.02, H: 260},
		{L: 0.25, C: 0.12, H: 145},
	}
	for _, in := range tests {
		hex := OklchToHexSafe(in)
		rgb, _ := ParseHexRGB(hex)
		if rgb.R == rgb.G && rgb.G == rgb.B {
			continue
		}
		got, _ := HexToOklch(hex)
		if d := HueDistance(got.H, in.H); d > 1.0 {
			t.Errorf("OklchToHexSafe(%+v) = %s, hue drift %.3f", in, hex, d)
		}
	}
}

func TestOklchToHexSafeGreys(t *testing.T) {
	for _, hex := range []string{"#000000", "#111111", "#808080", "#ffffff"} {
		lch, _ := HexToOklch(hex)
		lch.C = 0
		if got := OklchToHexSafe(lch); got != hex {
			t.Errorf("OklchToHexSafe(grey %s) = %s", hex, got)
		}
	}
}

func TestMapToGamut(t *testing.T) {
	in := LCH{L: 0.7, C: 0.4, H: 145}
	got := MapToGamut(in)
	if got.L != in.L || got.H != in.H {
		t.Errorf("MapToGamut changed L or H: %+v -> %+v", in, got)
	}
	if got.C >= in.C {
		t.Errorf("MapToGamut did not reduce chroma: %v", got.C)
	}
	if !InGamut(got) {
		t.Errorf("MapToGamut result %+v is not in gamut", got)
	}
	if InGamut(LCH{L: got.L, C: got.C + 0.001, H: got.H}) {
		t.Errorf("MapToGamut chroma %v is not maximal", got.C)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, hex := range []string{"#3498db", "#e74c3c", "#2ecc71", "#808080"} {
		c := MustHex(hex)
		h, s, l := RGBToHSL(c)
		if got := HSLHex(h, s, l); got != hex {
			t.Errorf("HSL round trip of %s = %s", hex, got)
		}
	}
}

func TestLerpHueShorterArc(t *testing.T) {
	tests := []struct {
		h1, h2, t, want float64
	}{
		{h1: 350, h2: 10, t: 0.5, want: 0},
		{h1: 10, h2: 350, t: 0.5, want: 0},
		{h1: 0, h2: 90, t: 0.5, want: 45},
		{h1: 300, h2: 60, t: 0.25, want: 330},
	}
	for _, tt := range tests {
		if got := LerpHue(tt.h1, tt.h2, tt.t); HueDistance(got, tt.want) > 1e-9 {
			t.Errorf("LerpHue(%v, %v, %v) = %v, want %v", tt.h1, tt.h2, tt.t, got, tt.want)
		}
	}
}

func TestHashSeedNormalises(t *testing.T) {
	if HashSeed("#ABC") != HashSeed("#aabbcc") {
		t.Error("HashSeed should normalise hex input")
	}
	if HashSeed("#aabbcc") == HashSeed("#aabbcd") {
		t.Error("HashSeed collided on adjacent colours")
	}
	a, b := NewRand(42), NewRand(42)
	for range 10 {
		if a.Float64() != b.Float64() {
			t.Fatal("NewRand is not deterministic")
		}
	}
}
