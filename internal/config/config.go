// Package config loads hueforge's YAML configuration file.
//
// A configuration file only needs the keys it changes; everything else keeps
// the value from Default. Flags given on the command line override both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hueforge/internal/colour"
	"github.com/jmylchreest/hueforge/internal/extract"
	"github.com/jmylchreest/hueforge/internal/generate"
)

// Output formats.
const (
	FormatHex  = "hex"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Preview modes.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

// Config is the root of the configuration file.
type Config struct {
	Extract       Extract       `yaml:"extract"`
	Generate      Generate      `yaml:"generate"`
	Harmony       Harmony       `yaml:"harmony"`
	Accessibility Accessibility `yaml:"accessibility"`
	Radium        Radium        `yaml:"radium"`
	Roles         Roles         `yaml:"roles"`
	Output        Output        `yaml:"output"`
}

// Extract configures image extraction.
type Extract struct {
	Algorithm  string  `yaml:"algorithm" validate:"required"`
	Count      int     `yaml:"count" validate:"min=1,max=256"`
	MaxSamples int     `yaml:"maxSamples" validate:"min=0"`
	Seed       *uint64 `yaml:"seed"`

	// Resize is the longest edge images are downscaled to before
	// sampling. Zero keeps the original size.
	Resize int `yaml:"resize" validate:"min=0,max=8192"`
}

// Generate holds options shared by every generator.
type Generate struct {
	Count int `yaml:"count" validate:"min=1,max=256"`
}

// Harmony selects a single family for `generate harmony --family`.
// Empty prints every family.
type Harmony struct {
	Family string `yaml:"family"`
}

// Accessibility configures the accessibility generator.
type Accessibility struct {
	Strategy string `yaml:"strategy" validate:"oneof=early forced"`
}

// Radium configures the token remapper.
type Radium struct {
	Strategy      string            `yaml:"strategy" validate:"oneof=harmony tintShade monochromatic evenHues"`
	Harmony       string            `yaml:"harmony" validate:"required"`
	KeyStrategies map[string]string `yaml:"keyStrategies" validate:"dive,oneof=harmony tintShade monochromatic evenHues"`
}

// Roles holds the 60/30/10 thresholds.
type Roles struct {
	NeutralChroma     float64 `yaml:"neutralChroma" validate:"gte=0,lte=0.4"`
	MainMinL          float64 `yaml:"mainMinL" validate:"gte=0,lte=1"`
	MainMaxL          float64 `yaml:"mainMaxL" validate:"gte=0,lte=1,gtefield=MainMinL"`
	NeutralDarkMaxL   float64 `yaml:"neutralDarkMaxL" validate:"gte=0,lte=1"`
	ShadeHueTolerance float64 `yaml:"shadeHueTolerance" validate:"gte=0,lte=180"`
	ShadeHueRelaxed   float64 `yaml:"shadeHueRelaxed" validate:"gte=0,lte=180,gtefield=ShadeHueTolerance"`
	AccentHueDistance float64 `yaml:"accentHueDistance" validate:"gte=0,lte=180"`
	AccentHueRelaxed  float64 `yaml:"accentHueRelaxed" validate:"gte=0,lte=180,ltefield=AccentHueDistance"`
}

// Output controls how results are printed.
type Output struct {
	Format  string `yaml:"format" validate:"oneof=hex json yaml"`
	Preview string `yaml:"preview" validate:"oneof=auto always never"`
}

// Default returns the built-in configuration.
func Default() *Config {
	ex := extract.DefaultOptions()
	acc := generate.DefaultAccessibilityOptions()
	rad := generate.DefaultRadiumOptions()
	roles := generate.DefaultRoleOptions()

	return &Config{
		Extract: Extract{
			Algorithm:  string(ex.Algorithm),
			Count:      ex.Count,
			MaxSamples: ex.MaxSamples,
			Resize:     512,
		},
		Generate:      Generate{Count: generate.DefaultOptions().Count},
		Accessibility: Accessibility{Strategy: string(acc.Strategy)},
		Radium:        Radium{Strategy: rad.Strategy, Harmony: rad.Harmony},
		Roles: Roles{
			NeutralChroma:     roles.NeutralChroma,
			MainMinL:          roles.MainMinL,
			MainMaxL:          roles.MainMaxL,
			NeutralDarkMaxL:   roles.NeutralDarkMaxL,
			ShadeHueTolerance: roles.ShadeHueTolerance,
			ShadeHueRelaxed:   roles.ShadeHueRelaxed,
			AccentHueDistance: roles.AccentHueDistance,
			AccentHueRelaxed:  roles.AccentHueRelaxed,
		},
		Output: Output{Format: FormatHex, Preview: PreviewAuto},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := colour.ValidateStruct(c); err != nil {
		return err
	}
	if _, err := extract.ParseAlgorithm(c.Extract.Algorithm); err != nil {
		return err
	}
	if c.Harmony.Family != "" {
		if _, err := generate.HarmonyColours("#808080", c.Harmony.Family, 1); err != nil {
			return err
		}
	}
	return nil
}

// ExtractOptions converts the extract section.
func (c *Config) ExtractOptions() extract.Options {
	alg, _ := extract.ParseAlgorithm(c.Extract.Algorithm)
	return extract.Options{
		Algorithm:  alg,
		Count:      c.Extract.Count,
		MaxSamples: c.Extract.MaxSamples,
		Seed:       c.Extract.Seed,
	}
}

// GenerateConfig converts the generator sections.
func (c *Config) GenerateConfig() generate.Config {
	cfg := generate.DefaultConfig()
	cfg.Options.Count = c.Generate.Count
	cfg.Accessibility.Strategy = generate.SearchStrategy(c.Accessibility.Strategy)
	cfg.Radium.Strategy = c.Radium.Strategy
	cfg.Radium.Harmony = c.Radium.Harmony
	cfg.Radium.KeyStrategies = c.Radium.KeyStrategies
	cfg.Roles = generate.RoleOptions{
		NeutralChroma:     c.Roles.NeutralChroma,
		MainMinL:          c.Roles.MainMinL,
		MainMaxL:          c.Roles.MainMaxL,
		NeutralDarkMaxL:   c.Roles.NeutralDarkMaxL,
		ShadeHueTolerance: c.Roles.ShadeHueTolerance,
		ShadeHueRelaxed:   c.Roles.ShadeHueRelaxed,
		AccentHueDistance: c.Roles.AccentHueDistance,
		AccentHueRelaxed:  c.Roles.AccentHueRelaxed,
	}
	return cfg
}
