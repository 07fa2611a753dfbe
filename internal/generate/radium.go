package generate

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// chromaRule says how a token target treats the base colour's chroma.
type chromaRule int

const (
	chromaKeep chromaRule = iota
	chromaFixed
	chromaFloor
	chromaCeil
)

func (r chromaRule) apply(base, target float64) float64 {
	switch r {
	case chromaFixed:
		return target
	case chromaFloor:
		return math.Max(base, target)
	case chromaCeil:
		return math.Min(base, target)
	default:
		return base
	}
}

// tokenPattern maps keys containing fragment to an absolute lightness and
// a chroma rule. Hue always comes from the key's base colour.
type tokenPattern struct {
	fragment string
	l        float64
	rule     chromaRule
	c        float64
}

// radiumPatterns is evaluated top to bottom; the most specific fragments
// come first.
var radiumPatterns = []tokenPattern{
	{"neutrallight", 0.96, chromaCeil, 0.02},
	{"neutraldark", 0.22, chromaCeil, 0.02},
	{"backgroundalt", 0.94, chromaCeil, 0.015},
	{"background", 0.98, chromaCeil, 0.015},
	{"foreground", 0.20, chromaCeil, 0.03},
	{"surface", 0.95, chromaCeil, 0.02},
	{"overlay", 0.30, chromaCeil, 0.03},
	{"border", 0.85, chromaCeil, 0.04},
	{"divider", 0.88, chromaCeil, 0.03},
	{"subtle", 0.90, chromaCeil, 0.04},
	{"muted", 0.65, chromaCeil, 0.05},
	{"disabled", 0.75, chromaCeil, 0.02},
	{"text", 0.22, chromaCeil, 0.04},
	{"primarylight", 0.80, chromaFloor, 0.10},
	{"primarydark", 0.40, chromaFloor, 0.12},
	{"primary", 0.60, chromaFloor, 0.12},
	{"secondary", 0.65, chromaFloor, 0.08},
	{"accent", 0.68, chromaFloor, 0.15},
	{"highlight", 0.85, chromaFloor, 0.10},
	{"link", 0.55, chromaFloor, 0.14},
	{"focus", 0.62, chromaFloor, 0.15},
	{"success", 0.62, chromaFixed, 0.15},
	{"warning", 0.78, chromaFixed, 0.15},
	{"error", 0.58, chromaFixed, 0.19},
	{"danger", 0.58, chromaFixed, 0.19},
	{"info", 0.62, chromaFixed, 0.12},
	{"neutral", 0.60, chromaCeil, 0.02},
	{"light", 0.90, chromaKeep, 0},
	{"dark", 0.25, chromaKeep, 0},
}

// Multi-swatch strategies.
const (
	StrategyHarmony       = "harmony"
	StrategyTintShade     = "tintShade"
	StrategyMonochromatic = "monochromatic"
	StrategyEvenHues      = "evenHues"
)

// RadiumOptions configures the semantic token remap.
type RadiumOptions struct {
	// Strategy shapes keys with more than one swatch.
	Strategy string `validate:"oneof=harmony tintShade monochromatic evenHues"`

	// Harmony names the offsets used by the harmony strategy.
	Harmony string `validate:"required"`

	// KeyStrategies overrides Strategy for individual keys.
	KeyStrategies map[string]string `validate:"dive,oneof=harmony tintShade monochromatic evenHues"`

	Logger hclog.Logger
}

// DefaultRadiumOptions returns the defaults.
func DefaultRadiumOptions() RadiumOptions {
	return RadiumOptions{Strategy: StrategyTintShade, Harmony: "analogous"}
}

// normalizeTokenKey strips everything but letters and lowercases.
func normalizeTokenKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

func matchPattern(key string) (tokenPattern, bool) {
	norm := normalizeTokenKey(key)
	for _, p := range radiumPatterns {
		if strings.Contains(norm, p.fragment) {
			return p, true
		}
	}
	return tokenPattern{}, false
}

// Radium remaps each key to its semantic target. Output has the same keys
// in the same order with the same number of colours per key. Each key is
// shaped from its own first colour.
func Radium(p *colour.PaletteMap, opts RadiumOptions) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	if _, ok := harmonyOffsets(opts.Harmony); !ok {
		return nil, &colour.ValidationError{
			Field: "harmony",
			Value: opts.Harmony,
			Kind:  colour.ErrBadFormat,
			Err:   fmt.Errorf("radium harmony must be a fixed family"),
		}
	}
	if _, err := inputColours(p); err != nil {
		return nil, err
	}
	logger := Options{Logger: opts.Logger}.logger("radium")

	out := &colour.PaletteMap{}
	for key, colours := range p.All() {
		if len(colours) == 0 {
			out.Set(key, colours)
			continue
		}
		base, _ := colour.FirstValidHex(colours)
		b := lchOf(base)

		if len(colours) == 1 {
			pat, ok := matchPattern(key)
			if !ok {
				logger.Debug("no token pattern, keeping colour", "key", key)
				out.Set(key, []string{colour.OklchToHexSafe(b)})
				continue
			}
			logger.Debug("matched token pattern", "key", key, "fragment", pat.fragment)
			out.Set(key, []string{oklch(pat.l, pat.rule.apply(b.C, pat.c), b.H)})
			continue
		}

		strategy := opts.Strategy
		if s, ok := opts.KeyStrategies[key]; ok {
			strategy = s
		}
		out.Set(key, multiSwatch(b, len(colours), strategy, opts.Harmony))
	}
	return out, nil
}

// multiSwatch shapes a key with n colours.
func multiSwatch(b colour.LCH, n int, strategy, harmony string) []string {
	out := make([]string, n)
	switch strategy {
	case StrategyHarmony:
		offsets, _ := harmonyOffsets(harmony)
		for i := range out {
			// Later rounds alternate lighter and darker.
			round := i / len(offsets)
			shift := 0.12 * float64(round)
			if round%2 == 0 {
				shift = -shift
			}
			l := colour.Clamp(b.L+shift, 0.1, 0.95)
			out[i] = oklch(l, b.C, b.H+offsets[i%len(offsets)])
		}
	case StrategyMonochromatic:
		for i, t := range ramp(n) {
			out[i] = oklch(colour.Lerp(0.92, 0.25, t), b.C, b.H)
		}
	case StrategyEvenHues:
		for i := range out {
			out[i] = oklch(b.L, b.C, b.H+360*float64(i)/float64(n))
		}
	default:
		// Power curve keeps more steps in the light tints.
		for i, t := range ramp(n) {
			l := 0.95 - 0.80*math.Pow(t, 1.4)
			c := b.C * (0.3 + 0.7*math.Sin(math.Pi*math.Min(t+0.15, 1)))
			out[i] = oklch(l, c, b.H)
		}
	}
	return out
}
