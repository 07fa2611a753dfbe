package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hueforge/internal/colour"
	"github.com/jmylchreest/hueforge/internal/extract"
	"github.com/jmylchreest/hueforge/internal/generate"
	"github.com/jmylchreest/hueforge/internal/image"
)

type extractFlags struct {
	count      int
	algorithm  string
	maxSamples int
	seed       uint64
	resize     int
	roles      bool
}

func newExtractCmd(a *app) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a colour palette from an image.

The image is decoded, optionally downscaled, sampled and clustered in OKLab.
The result always has exactly --count colours; images without opaque pixels
give black.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Algorithms: ` + strings.Join(algorithmNames(), ", ") + `

Examples:
  # Extract 8 colours (default) with k-means
  hueforge extract wallpaper.jpg

  # Extract 12 colours with the octree quantiser as JSON
  hueforge extract -n 12 -a octree -f json wallpaper.png

  # Pick the 60/30/10 roles from the extracted colours
  hueforge extract --roles wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.count, "count", "n", 0, "number of colours to extract (1-256)")
	f.StringVarP(&flags.algorithm, "algorithm", "a", "", "extraction algorithm")
	f.IntVar(&flags.maxSamples, "max-samples", 0, "maximum pixels sampled")
	f.Uint64Var(&flags.seed, "seed", 0, "fixed k-means seed instead of one derived from the image")
	f.IntVar(&flags.resize, "resize", 0, "downscale so the longest edge is at most this many pixels (0 keeps the size)")
	f.BoolVar(&flags.roles, "roles", false, "print 60/30/10 roles instead of the raw palette")

	return cmd
}

func algorithmNames() []string {
	var names []string
	for _, alg := range extract.ValidAlgorithms() {
		names = append(names, string(alg))
	}
	return names
}

func (a *app) runExtract(cmd *cobra.Command, path string, flags *extractFlags) error {
	fs := cmd.Flags()
	if fs.Changed("count") {
		a.cfg.Extract.Count = flags.count
	}
	if fs.Changed("algorithm") {
		a.cfg.Extract.Algorithm = flags.algorithm
	}
	if fs.Changed("max-samples") {
		a.cfg.Extract.MaxSamples = flags.maxSamples
	}
	if fs.Changed("seed") {
		a.cfg.Extract.Seed = &flags.seed
	}
	if fs.Changed("resize") {
		a.cfg.Extract.Resize = flags.resize
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.logger.Debug("loading image", "path", path)
	px, err := image.NewFileLoader(a.cfg.Extract.Resize).LoadPixels(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	a.logger.Debug("image loaded", "width", px.Width, "height", px.Height)

	opts := a.cfg.ExtractOptions()
	opts.Logger = a.logger
	hexes, err := extract.Extract(cmd.Context(), px, opts)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	a.logger.Debug("extracted colours", "algorithm", opts.Algorithm, "count", len(hexes))

	out := a.printer(cmd.OutOrStdout())
	if !flags.roles {
		return out.palette(colour.FromColours("colours", hexes...))
	}

	roleOpts := a.cfg.GenerateConfig().Roles
	roleOpts.Logger = a.logger
	rs, err := generate.Select603010(hexes, roleOpts)
	if err != nil {
		return fmt.Errorf("failed to select roles: %w", err)
	}
	return out.roles(rs)
}
