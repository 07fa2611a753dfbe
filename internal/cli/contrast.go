package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// contrastResult is the output of the contrast command.
type contrastResult struct {
	Foreground string  `json:"foreground" yaml:"foreground"`
	Background string  `json:"background" yaml:"background"`
	Ratio      float64 `json:"ratio" yaml:"ratio"`
	APCA       float64 `json:"apca" yaml:"apca"`
	AA         bool    `json:"aa" yaml:"aa"`
	AAA        bool    `json:"aaa" yaml:"aaa"`
	AALarge    bool    `json:"aaLarge" yaml:"aaLarge"`
}

func newContrastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Measure WCAG and APCA contrast between two colours",
		Long: `Measure the WCAG 2 contrast ratio and the APCA lightness contrast (Lc) of
foreground text on a background.

Examples:
  hueforge contrast "#ffffff" "#3498db"
  hueforge contrast 111 f1c40f -f json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fgHex, err := parseColourArg(args[0])
			if err != nil {
				return err
			}
			bgHex, err := parseColourArg(args[1])
			if err != nil {
				return err
			}
			fg, bg := colour.MustHex(fgHex), colour.MustHex(bgHex)
			ratio := colour.WCAGRatio(fg, bg)
			res := contrastResult{
				Foreground: fgHex,
				Background: bgHex,
				Ratio:      ratio,
				APCA:       colour.APCA(fg, bg),
				AA:         ratio >= colour.WCAGAA,
				AAA:        ratio >= colour.WCAGAAA,
				AALarge:    ratio >= colour.WCAGLarge,
			}
			a.logger.Debug("contrast", "fg", fgHex, "bg", bgHex, "ratio", ratio)

			out := a.printer(cmd.OutOrStdout())
			return out.value(res, func() string {
				table := NewTable([]string{"FOREGROUND", "BACKGROUND", "RATIO", "APCA", "AA", "AAA", "AA LARGE"})
				table.AlignRight(2)
				table.AlignRight(3)
				fgCell, bgCell := res.Foreground, res.Background
				if out.preview {
					fgCell, bgCell = out.swatch(fgCell), out.swatch(bgCell)
				}
				table.AddRow([]string{
					fgCell,
					bgCell,
					fmt.Sprintf("%.2f", res.Ratio),
					fmt.Sprintf("%.1f", res.APCA),
					passFail(res.AA),
					passFail(res.AAA),
					passFail(res.AALarge),
				})
				return table.Render()
			})
		},
	}
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
