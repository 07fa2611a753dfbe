package generate

import (
	"math"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// SearchStrategy selects how contrast searches treat a starting colour
// that already passes.
type SearchStrategy string

const (
	// SearchEarlyReturn accepts a passing starting colour as is.
	SearchEarlyReturn SearchStrategy = "early"

	// SearchForced always bisects between the starting lightness and the
	// extreme, so slots with distinct starts stay distinct.
	SearchForced SearchStrategy = "forced"
)

// AccessibilityOptions configures the accessibility generator.
type AccessibilityOptions struct {
	Options

	// Strategy applies to the pairs and wcag outputs. The high-contrast
	// ramp is always forced.
	Strategy SearchStrategy `validate:"oneof=early forced"`
}

// DefaultAccessibilityOptions returns the defaults.
func DefaultAccessibilityOptions() AccessibilityOptions {
	return AccessibilityOptions{Options: DefaultOptions(), Strategy: SearchEarlyReturn}
}

const (
	searchIterations = 24

	apcaMinTarget = 30.0
	apcaMaxTarget = 90.0

	colourblindMinSeparation = 0.05
	colourblindMaxNudges     = 8
	colourblindNudge         = 0.08
)

var (
	pureBlack = colour.SRGB{}
	pureWhite = colour.SRGB{R: 1, G: 1, B: 1}
)

// TokenRoles is the order of the tokens output.
var TokenRoles = []string{
	"background", "surface", "border", "muted", "default",
	"emphasis", "strong", "onColor", "error", "success",
}

// contrastGoal is a WCAG ratio to reach against ref by moving lightness
// towards toward (0 or 1).
type contrastGoal struct {
	ref    colour.SRGB
	ratio  float64
	toward float64
}

func (g contrastGoal) passes(hex string) bool {
	return colour.WCAGRatio(colour.MustHex(hex), g.ref) >= g.ratio
}

// fallback is whichever of pure black and pure white contrasts more with
// the reference.
func (g contrastGoal) fallback() string {
	if colour.WCAGRatio(pureBlack, g.ref) >= colour.WCAGRatio(pureWhite, g.ref) {
		return "#000000"
	}
	return "#ffffff"
}

// goalAgainst picks the search direction with the most headroom.
func goalAgainst(ref colour.SRGB, ratio float64) contrastGoal {
	g := contrastGoal{ref: ref, ratio: ratio}
	if colour.WCAGRatio(pureWhite, ref) > colour.WCAGRatio(pureBlack, ref) {
		g.toward = 1
	}
	return g
}

// searchContrast bisects lightness between start and the goal's extreme
// for the colour nearest start that reaches the goal. Results are checked
// on the encoded hex.
func searchContrast(start, c, h float64, g contrastGoal, strategy SearchStrategy) string {
	if strategy != SearchForced {
		if cand := oklch(start, c, h); g.passes(cand) {
			return cand
		}
	}
	lo, hi := start, g.toward
	best := ""
	for range searchIterations {
		mid := (lo + hi) / 2
		if hex := oklch(mid, c, h); g.passes(hex) {
			best = hex
			hi = mid
		} else {
			lo = mid
		}
	}
	if best == "" {
		if extreme := oklch(g.toward, c, h); g.passes(extreme) {
			return extreme
		}
		return g.fallback()
	}
	return best
}

// Accessibility builds contrast-checked ramps around the first input
// colour.
func Accessibility(p *colour.PaletteMap, opts AccessibilityOptions) (*colour.PaletteMap, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return nil, err
	}
	base, err := baseColour(p)
	if err != nil {
		return nil, err
	}
	b := lchOf(base)
	n := opts.Count
	opts.logger("accessibility").Debug("generating accessibility palette", "base", base, "count", n, "strategy", string(opts.Strategy))

	out := &colour.PaletteMap{}
	out.Set("scale", contrastScale(b, n))
	out.Set("pairs", contrastPairs(b, n, opts.Strategy))
	out.Set("wcag", wcagTiers(b, n, opts.Strategy))
	out.Set("apca", apcaRamp(b, n))
	out.Set("colorblind", colourblindSafe(b, n))
	out.Set("tokens", semanticTokens(b))
	out.Set("highContrast", highContrast(b, n))
	return out, nil
}

// contrastScale is a strictly darkening lightness ramp with chroma peaking
// mid-scale.
func contrastScale(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		l := colour.Lerp(0.97, 0.15, t)
		c := b.C * (0.35 + 0.65*math.Sin(math.Pi*t))
		out[i] = oklch(l, c, b.H)
	}
	return out
}

// contrastPairs alternates a background with a foreground that reaches
// AA against it.
func contrastPairs(b colour.LCH, n int, strategy SearchStrategy) []string {
	pairs := (n + 1) / 2
	out := make([]string, 0, n)
	for _, t := range ramp(pairs) {
		bgHex := oklch(colour.Lerp(0.97, 0.20, t), b.C*0.5, b.H)
		out = append(out, bgHex)
		if len(out) == n {
			break
		}
		bg := colour.MustHex(bgHex)
		g := goalAgainst(bg, colour.WCAGAA)
		start := colour.ToOklch(bg).L + 0.4
		if g.toward == 0 {
			start -= 0.8
		}
		out = append(out, searchContrast(colour.Clamp(start, 0, 1), b.C, b.H, g, strategy))
	}
	return out
}

// Per-cycle tightening of the wcag tiers.
const (
	wcagCycleStep = 1.5
	wcagMaxRatio  = 19.0
)

// wcagTiers cycles AA and AAA against white then black. Each full cycle
// raises the target ratio and drifts chroma, hue and starting lightness so
// repeats differ.
func wcagTiers(b colour.LCH, n int, strategy SearchStrategy) []string {
	tiers := []contrastGoal{
		{ref: pureWhite, ratio: colour.WCAGAA, toward: 0},
		{ref: pureWhite, ratio: colour.WCAGAAA, toward: 0},
		{ref: pureBlack, ratio: colour.WCAGAA, toward: 1},
		{ref: pureBlack, ratio: colour.WCAGAAA, toward: 1},
	}
	out := make([]string, n)
	for i := range out {
		g := tiers[i%len(tiers)]
		cycle := float64(i / len(tiers))
		g.ratio = math.Min(g.ratio+wcagCycleStep*cycle, wcagMaxRatio)
		c := b.C * math.Pow(0.85, cycle)
		h := b.H + 7*cycle
		start := b.L - 0.04*cycle
		if g.toward == 1 {
			start = b.L + 0.04*cycle
		}
		out[i] = searchContrast(colour.Clamp(start, 0, 1), c, h, g, strategy)
	}
	return out
}

// apcaRamp targets |Lc| from 30 to 90 for text on white, keeping the
// lightest colour that reaches each target.
func apcaRamp(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i, t := range ramp(n) {
		target := colour.Lerp(apcaMinTarget, apcaMaxTarget, t)
		passes := func(hex string) bool {
			return math.Abs(colour.APCA(colour.MustHex(hex), pureWhite)) >= target
		}
		lo, hi := 0.0, 1.0
		best := ""
		for range searchIterations {
			mid := (lo + hi) / 2
			if hex := oklch(mid, b.C, b.H); passes(hex) {
				best = hex
				lo = mid
			} else {
				hi = mid
			}
		}
		if best == "" {
			best = "#000000"
		}
		out[i] = best
	}
	return out
}

// safeSwatch is an entry of the colour-blind safe reference set.
type safeSwatch struct {
	l, c, h float64
}

// Okabe-Ito hues in OKLCH.
var safeSwatches = []safeSwatch{
	{0.76, 0.16, 73},
	{0.73, 0.12, 237},
	{0.62, 0.13, 166},
	{0.90, 0.17, 106},
	{0.53, 0.14, 245},
	{0.63, 0.18, 46},
	{0.67, 0.12, 344},
}

// Machado et al. full-severity simulation matrices on linear RGB.
var (
	protanopia = [3][3]float64{
		{0.152286, 1.052583, -0.204868},
		{0.114503, 0.786281, 0.099216},
		{-0.003882, -0.048116, 1.051998},
	}
	deuteranopia = [3][3]float64{
		{0.367322, 0.860646, -0.227968},
		{0.280085, 0.672501, 0.047413},
		{-0.011820, 0.042940, 0.968881},
	}
)

func simulate(c colour.SRGB, m [3][3]float64) colour.Lab {
	r, g, b := colour.Linearize(c.R), colour.Linearize(c.G), colour.Linearize(c.B)
	var out [3]float64
	for i, row := range m {
		out[i] = colour.Clamp(row[0]*r+row[1]*g+row[2]*b, 0, 1)
	}
	return colour.ToOklab(colour.SRGB{
		R: colour.Delinearize(out[0]),
		G: colour.Delinearize(out[1]),
		B: colour.Delinearize(out[2]),
	})
}

// cvdSeparation is the smallest OKLab distance between a and b as seen
// with protanopia or deuteranopia.
func cvdSeparation(a, b string) float64 {
	ca, cb := colour.MustHex(a), colour.MustHex(b)
	d := math.Inf(1)
	for _, m := range [][3][3]float64{protanopia, deuteranopia} {
		d = math.Min(d, simulate(ca, m).Distance(simulate(cb, m)))
	}
	return d
}

// colourblindSafe blends the base hue into the safe reference set and
// nudges lightness until neighbours stay apart under simulation.
func colourblindSafe(b colour.LCH, n int) []string {
	out := make([]string, n)
	for i := range out {
		ref := safeSwatches[i%len(safeSwatches)]
		round := float64(i / len(safeSwatches))
		l := colour.Clamp(ref.l-0.12*round, 0.2, 0.95)
		h := colour.LerpHue(ref.h, b.H, 0.2)
		hex := oklch(l, ref.c, h)

		if i > 0 {
			dir := 1.0
			if lchOf(out[i-1]).L > l {
				dir = -1
			}
			for range colourblindMaxNudges {
				if cvdSeparation(out[i-1], hex) >= colourblindMinSeparation {
					break
				}
				l = colour.Clamp(l+dir*colourblindNudge, 0.05, 0.97)
				hex = oklch(l, ref.c, h)
			}
		}
		out[i] = hex
	}
	return out
}

// semanticTokens fills the fixed token roles from the base colour.
func semanticTokens(b colour.LCH) []string {
	def := oklch(colour.Clamp(b.L, 0.45, 0.65), b.C, b.H)
	return []string{
		oklch(0.98, math.Min(b.C, 0.01), b.H),
		oklch(0.95, math.Min(b.C, 0.02), b.H),
		oklch(0.86, math.Min(b.C, 0.04), b.H),
		oklch(0.62, math.Min(b.C, 0.05), b.H),
		def,
		oklch(0.45, b.C, b.H),
		oklch(0.30, b.C*0.9, b.H),
		colour.BestTextOn(colour.MustHex(def)),
		oklch(0.58, 0.19, 27),
		oklch(0.62, 0.16, 145),
	}
}

// highContrast reaches AAA on every slot. The dark half searches against
// white from spread starting points while fading chroma; the light half
// searches upward against black.
func highContrast(b colour.LCH, n int) []string {
	dark := (n + 1) / 2
	light := n - dark
	out := make([]string, 0, n)

	for j, t := range ramp(dark) {
		c := b.C * (1 - float64(j)/float64(dark))
		g := contrastGoal{ref: pureWhite, ratio: colour.WCAGAAA, toward: 0}
		out = append(out, searchContrast(colour.Lerp(0.45, 0.08, t), c, b.H, g, SearchForced))
	}
	if light == 0 {
		return out
	}
	for _, t := range ramp(light) {
		g := contrastGoal{ref: pureBlack, ratio: colour.WCAGAAA, toward: 1}
		out = append(out, searchContrast(colour.Lerp(0.80, 0.98, t), b.C*0.6, b.H, g, SearchForced))
	}
	return out
}
