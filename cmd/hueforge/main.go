// hueforge extracts colour palettes from images and derives harmonies,
// perceptual ramps, accessible scales and design tokens from them.
package main

import "github.com/jmylchreest/hueforge/internal/cli"

func main() {
	cli.Execute()
}
