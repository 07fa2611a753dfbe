// Package cli provides the command-line interface for hueforge.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/hueforge/internal/config"
	"github.com/jmylchreest/hueforge/internal/version"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	verbose    bool
	quiet      bool
	configPath string
	format     string
	preview    string
}

// app is the state a command runs with once flags and config are resolved.
type app struct {
	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{cfg: config.Default(), logger: hclog.NewNullLogger()}

	cmd := &cobra.Command{
		Use:   "hueforge",
		Short: "A perceptual colour palette toolkit",
		Long: `hueforge extracts colour palettes from images and derives new palettes from
existing colours: harmonies, perceptual ramps, accessible contrast scales,
data-visualisation scales, generative series, semantic design tokens and
60/30/10 role selections.

All colour maths runs in OKLab/OKLCH and every output is a valid sRGB hex.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&flags.configPath, "config", "", "configuration file (YAML)")
	pf.StringVarP(&flags.format, "format", "f", config.FormatHex, "output format (hex, json, yaml)")
	pf.StringVar(&flags.preview, "preview", config.PreviewAuto, "colour swatches (auto, always, never)")
	pf.Lookup("preview").NoOptDefVal = config.PreviewAlways

	cmd.SetVersionTemplate(version.String() + "\n")

	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newConvertCmd(a))
	cmd.AddCommand(newContrastCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves the logger and the configuration. Flags override values
// from the configuration file.
func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	a.logger = newLogger(cmd.ErrOrStderr(), flags.verbose, flags.quiet)

	if flags.configPath != "" {
		cfg, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger.Debug("loaded config", "path", flags.configPath)
	}

	pf := cmd.Flags()
	if changed(pf, "format") {
		a.cfg.Output.Format = flags.format
	}
	if changed(pf, "preview") {
		a.cfg.Output.Preview = flags.preview
	}
	return a.cfg.Validate()
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "hueforge",
		Level:  level,
		Output: w,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
