package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// conversion is one row of convert output.
type conversion struct {
	Input  string        `json:"input" yaml:"input"`
	Hex    string        `json:"hex" yaml:"hex"`
	RGB    colour.RGB    `json:"rgb" yaml:"rgb"`
	HSL    [3]float64    `json:"hsl" yaml:"hsl,flow"`
	Space  string        `json:"space" yaml:"space"`
	Coords colour.Coords `json:"coords" yaml:"coords,flow"`
	Text   string        `json:"text" yaml:"text"`
}

func newConvertCmd(a *app) *cobra.Command {
	var space string

	cmd := &cobra.Command{
		Use:   "convert <colour>...",
		Short: "Show colours in other representations",
		Long: `Show colours as hex, RGB, HSL and coordinates in one colour space.

Colours are hex (#rgb or #rrggbb, with or without #) or oklch(L C H).
OKLCH input outside the sRGB gamut is brought in by reducing chroma only.

Examples:
  hueforge convert "#3498db" f72f68
  hueforge convert "oklch(0.7 0.3 150)" --space jzazbz`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := colour.SpaceByName(space)
			if !ok {
				return colour.NewValidationError("space", space, colour.ErrBadFormat)
			}

			rows := make([]conversion, 0, len(args))
			for _, arg := range args {
				hex, err := parseColourArg(arg)
				if err != nil {
					return err
				}
				c := colour.MustHex(hex)
				h, sat, l := colour.RGBToHSL(c)
				rows = append(rows, conversion{
					Input:  arg,
					Hex:    hex,
					RGB:    c.RGB(),
					HSL:    [3]float64{h, sat, l},
					Space:  s.Name,
					Coords: s.Encode(c),
					Text:   colour.BestTextOn(c),
				})
			}

			out := a.printer(cmd.OutOrStdout())
			return out.value(rows, func() string {
				table := NewTable([]string{"INPUT", "HEX", "RGB", "HSL", strings.ToUpper(s.Name)})
				for _, r := range rows {
					hex := r.Hex
					if out.preview {
						hex = out.swatch(hex)
					}
					table.AddRow([]string{
						r.Input,
						hex,
						r.RGB.String(),
						fmt.Sprintf("%.1f %.3f %.3f", r.HSL[0], r.HSL[1], r.HSL[2]),
						fmt.Sprintf("%.4f %.4f %.4f", r.Coords[0], r.Coords[1], r.Coords[2]),
					})
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().StringVar(&space, "space", colour.SpaceOklch, "colour space for the coordinates column")
	return cmd
}

// parseColourArg accepts a hex colour or oklch(L C H) and returns a
// normalised hex.
func parseColourArg(arg string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(arg))
	inner, ok := strings.CutPrefix(s, "oklch(")
	if !ok {
		return colour.NormalizeHex(arg)
	}
	inner, ok = strings.CutSuffix(inner, ")")
	fields := strings.Fields(strings.ReplaceAll(inner, ",", " "))
	if !ok || len(fields) != 3 {
		return "", colour.NewValidationError("colour", arg, colour.ErrBadFormat)
	}
	var v [3]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return "", colour.NewValidationError("colour", arg, colour.ErrBadFormat)
		}
		v[i] = n
	}
	return colour.OklchToHexSafe(colour.LCH{
		L: colour.Clamp(v[0], 0, 1),
		C: max(v[1], 0),
		H: colour.WrapHue(v[2]),
	}), nil
}
