package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hueforge/internal/colour"
	"github.com/jmylchreest/hueforge/internal/generate"
)

type generateFlags struct {
	colours        []string
	count          int
	strategy       string
	radiumStrategy string
	radiumHarmony  string
	keyStrategies  map[string]string
	family         string
}

func newGenerateCmd(a *app) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <generator> [palette-file]",
		Short: "Derive a palette from existing colours",
		Long: `Derive a palette from existing colours.

The input palette maps keys to one or more hex colours. It is read from a
YAML or JSON file, built from --colour flags, or both; the first --colour
for a key replaces that key's colours from the file and later ones append.
Quote colours in YAML files ("#3498db"); an unquoted # starts a comment.

Generators:
  harmony        hue rotations plus monochromatic and tint/shade ramps
  interpolate    ramps through the input colours in ten colour spaces
  accessibility  contrast-checked scales, pairs and design tokens
  dataviz        sequential, diverging, qualitative and other chart scales
  generative     seeded procedural series
  radium         remap semantic token keys, keeping the palette's shape
  roles          pick 60/30/10 roles

Examples:
  # Harmonies around a single colour
  hueforge generate harmony --colour primary=#3498db

  # Accessibility ramps with forced search, as JSON
  hueforge generate accessibility --colour primary=#f72f68 --strategy forced -f json

  # Remap a token file
  hueforge generate radium tokens.yaml --radium-strategy evenHues

  # Only the triadic family, six colours
  hueforge generate harmony --colour base=#97cd5c --family triadic -n 6`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: generate.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return a.runGenerate(cmd, args[0], path, flags)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&flags.colours, "colour", nil, "input colour (key=hex, repeatable)")
	f.IntVarP(&flags.count, "count", "n", 0, "colours per scalable output (1-256)")
	f.StringVar(&flags.strategy, "strategy", "", "accessibility search strategy (early, forced)")
	f.StringVar(&flags.radiumStrategy, "radium-strategy", "", "radium multi-swatch strategy (harmony, tintShade, monochromatic, evenHues)")
	f.StringVar(&flags.radiumHarmony, "radium-harmony", "", "harmony family for the radium harmony strategy")
	f.StringToStringVar(&flags.keyStrategies, "key-strategy", nil, "radium strategy for one key (key=strategy, repeatable)")
	f.StringVar(&flags.family, "family", "", "harmony family to print on its own")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, name, path string, flags *generateFlags) error {
	fs := cmd.Flags()
	if fs.Changed("count") {
		a.cfg.Generate.Count = flags.count
	}
	if fs.Changed("strategy") {
		a.cfg.Accessibility.Strategy = flags.strategy
	}
	if fs.Changed("radium-strategy") {
		a.cfg.Radium.Strategy = flags.radiumStrategy
	}
	if fs.Changed("radium-harmony") {
		a.cfg.Radium.Harmony = flags.radiumHarmony
	}
	if fs.Changed("key-strategy") {
		a.cfg.Radium.KeyStrategies = flags.keyStrategies
	}
	if fs.Changed("family") {
		a.cfg.Harmony.Family = flags.family
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	input, err := buildInputPalette(path, flags.colours)
	if err != nil {
		return err
	}
	a.logger.Debug("input palette", "keys", input.Len(), "colours", len(input.Flatten()))

	cfg := a.cfg.GenerateConfig()
	cfg.Options.Logger = a.logger
	out := a.printer(cmd.OutOrStdout())

	switch {
	case name == "roles":
		colours, err := input.Normalize()
		if err != nil {
			return err
		}
		cfg.Roles.Logger = a.logger
		rs, err := generate.Select603010(colours.Flatten(), cfg.Roles)
		if err != nil {
			return fmt.Errorf("failed to select roles: %w", err)
		}
		return out.roles(rs)

	case name == "harmony" && a.cfg.Harmony.Family != "":
		if err := input.Validate(); err != nil {
			return err
		}
		base, ok := input.FirstValid()
		if !ok {
			return colour.NewValidationError("palette", "", colour.ErrEmpty)
		}
		colours, err := generate.HarmonyColours(base, a.cfg.Harmony.Family, cfg.Options.Count)
		if err != nil {
			return err
		}
		return out.palette(colour.FromColours(a.cfg.Harmony.Family, colours...))
	}

	result, err := generate.Run(name, input, cfg)
	if err != nil {
		return fmt.Errorf("failed to generate %s palette: %w", name, err)
	}
	return out.palette(result)
}

// buildInputPalette reads path, if given, and applies the --colour specs.
func buildInputPalette(path string, specs []string) (*colour.PaletteMap, error) {
	p := &colour.PaletteMap{}
	if path != "" {
		loaded, err := loadPaletteFile(path)
		if err != nil {
			return nil, err
		}
		p = loaded
	}
	if path == "" && len(specs) == 0 {
		return nil, fmt.Errorf("no input colours: give a palette file or at least one --colour key=hex")
	}

	replaced := make(map[string]bool)
	for _, spec := range specs {
		key, hex, err := parseColourSpec(spec)
		if err != nil {
			return nil, err
		}
		existing, _ := p.Get(key)
		if !replaced[key] {
			existing = nil
			replaced[key] = true
		}
		p.Set(key, append(existing, hex))
	}
	return p, nil
}

// parseColourSpec splits "key=hex".
func parseColourSpec(spec string) (key, hex string, err error) {
	key, hex, ok := strings.Cut(spec, "=")
	key = strings.TrimSpace(key)
	hex = strings.TrimSpace(hex)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid colour format '%s': expected 'key=hex'", spec)
	}
	if _, err := colour.NormalizeHex(hex); err != nil {
		return "", "", fmt.Errorf("invalid colour for %s: %w", key, err)
	}
	return key, hex, nil
}

// loadPaletteFile reads a palette map from JSON (by extension) or YAML.
func loadPaletteFile(path string) (*colour.PaletteMap, error) {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified palette file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	p := &colour.PaletteMap{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, p)
	} else {
		err = yaml.Unmarshal(data, p)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette file %s: %w", path, err)
	}
	return p, nil
}
