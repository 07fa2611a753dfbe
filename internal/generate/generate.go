// Package generate derives palettes from input colours. Every generator is
// a pure function from a palette map to a new palette map; none mutate
// their input.
package generate

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// Options are shared by every generator.
type Options struct {
	// Count is the number of colours in each scalable output.
	Count int `validate:"min=1,max=256"`

	Logger hclog.Logger
}

// DefaultOptions returns the shared generator defaults.
func DefaultOptions() Options {
	return Options{Count: 5}
}

func (o Options) logger(name string) hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger.Named(name)
}

// inputColours validates p and returns its colours normalised, in key
// order.
func inputColours(p *colour.PaletteMap) ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	colours := p.Flatten()
	if len(colours) == 0 {
		return nil, colour.NewValidationError("palette", "", colour.ErrEmpty)
	}
	return colours, nil
}

// baseColour is the first colour of p.
func baseColour(p *colour.PaletteMap) (string, error) {
	colours, err := inputColours(p)
	if err != nil {
		return "", err
	}
	return colours[0], nil
}

// Names lists the generators Run accepts.
func Names() []string {
	return slices.Clone(generatorNames)
}

var generatorNames = []string{
	"harmony",
	"interpolate",
	"accessibility",
	"dataviz",
	"generative",
	"radium",
	"roles",
}

// Config bundles the options of every generator so callers can pick one by
// name.
type Config struct {
	Options       Options
	Accessibility AccessibilityOptions
	Radium        RadiumOptions
	Roles         RoleOptions
}

// DefaultConfig returns defaults for every generator.
func DefaultConfig() Config {
	return Config{
		Options:       DefaultOptions(),
		Accessibility: DefaultAccessibilityOptions(),
		Radium:        DefaultRadiumOptions(),
		Roles:         DefaultRoleOptions(),
	}
}

// Run dispatches to the generator called name.
func Run(name string, p *colour.PaletteMap, cfg Config) (*colour.PaletteMap, error) {
	switch name {
	case "harmony":
		return Harmony(p, cfg.Options)
	case "interpolate":
		return Interpolate(p, cfg.Options)
	case "accessibility":
		opts := cfg.Accessibility
		opts.Options = cfg.Options
		return Accessibility(p, opts)
	case "dataviz":
		return DataViz(p, cfg.Options)
	case "generative":
		return Generative(p, cfg.Options)
	case "radium":
		opts := cfg.Radium
		opts.Logger = cfg.Options.Logger
		return Radium(p, opts)
	case "roles":
		opts := cfg.Roles
		opts.Logger = cfg.Options.Logger
		return RolesPalette(p, opts)
	default:
		return nil, &colour.ValidationError{
			Field: "generator",
			Value: name,
			Kind:  colour.ErrBadFormat,
			Err:   fmt.Errorf("valid generators: %v", generatorNames),
		}
	}
}

// ramp returns count evenly spaced positions in [0, 1]. A single position
// sits at 0.
func ramp(count int) []float64 {
	out := make([]float64, count)
	if count == 1 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(count-1)
	}
	return out
}

// lchOf decodes a hex colour already known to be valid.
func lchOf(hex string) colour.LCH {
	return colour.ToOklch(colour.MustHex(hex))
}

// oklch encodes L, C, H gamut-safely.
func oklch(l, c, h float64) string {
	return colour.OklchToHexSafe(colour.LCH{L: l, C: c, H: colour.WrapHue(h)})
}
