package generate

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hueforge/internal/colour"
)

// RoleName is one of the five 60/30/10 roles.
type RoleName string

const (
	RoleNeutralLight   RoleName = "neutralLight"
	RoleMainColor      RoleName = "mainColor"
	RoleNeutralDark    RoleName = "neutralDark"
	RoleMainColorShade RoleName = "mainColorShade"
	RoleAccentColor    RoleName = "accentColor"
)

// RoleNames lists the roles in output order.
func RoleNames() []RoleName {
	return []RoleName{RoleNeutralLight, RoleMainColor, RoleNeutralDark, RoleMainColorShade, RoleAccentColor}
}

// Role is a colour assigned to a role. Derived colours were synthesised
// rather than picked from the input.
type Role struct {
	Hex     string   `json:"hex" yaml:"hex"`
	Role    RoleName `json:"role" yaml:"role"`
	L       float64  `json:"l" yaml:"l"`
	C       float64  `json:"c" yaml:"c"`
	H       float64  `json:"h" yaml:"h"`
	Derived bool     `json:"derived" yaml:"derived"`
	Text    string   `json:"text" yaml:"text"`
}

// RoleSet is the fixed-shape result of Select603010.
type RoleSet struct {
	NeutralLight   Role `json:"neutralLight" yaml:"neutralLight"`
	MainColor      Role `json:"mainColor" yaml:"mainColor"`
	NeutralDark    Role `json:"neutralDark" yaml:"neutralDark"`
	MainColorShade Role `json:"mainColorShade" yaml:"mainColorShade"`
	AccentColor    Role `json:"accentColor" yaml:"accentColor"`
}

// Roles returns the roles in output order.
func (rs RoleSet) Roles() []Role {
	return []Role{rs.NeutralLight, rs.MainColor, rs.NeutralDark, rs.MainColorShade, rs.AccentColor}
}

// PaletteMap returns the role-fixed map, one colour per role.
func (rs RoleSet) PaletteMap() *colour.PaletteMap {
	out := &colour.PaletteMap{}
	for _, r := range rs.Roles() {
		out.Set(string(r.Role), []string{r.Hex})
	}
	return out
}

// ToJSON converts the role set to indented JSON.
func (rs RoleSet) ToJSON() ([]byte, error) {
	return json.MarshalIndent(rs, "", "  ")
}

// RoleOptions holds the selection thresholds.
type RoleOptions struct {
	// NeutralChroma is the chroma below which a colour counts as neutral.
	NeutralChroma float64 `validate:"gte=0,lte=0.4"`

	// MainMinL and MainMaxL bound the band searched for the main colour.
	MainMinL float64 `validate:"gte=0,lte=1"`
	MainMaxL float64 `validate:"gte=0,lte=1,gtefield=MainMinL"`

	// NeutralDarkMaxL is the lightest a neutral dark may be.
	NeutralDarkMaxL float64 `validate:"gte=0,lte=1"`

	// ShadeHueTolerance and ShadeHueRelaxed bound the hue distance between
	// the main colour and its shade.
	ShadeHueTolerance float64 `validate:"gte=0,lte=180"`
	ShadeHueRelaxed   float64 `validate:"gte=0,lte=180,gtefield=ShadeHueTolerance"`

	// AccentHueDistance and AccentHueRelaxed are the minimum hue distances
	// between the main colour and the accent.
	AccentHueDistance float64 `validate:"gte=0,lte=180"`
	AccentHueRelaxed  float64 `validate:"gte=0,lte=180,ltefield=AccentHueDistance"`

	Logger hclog.Logger
}

// DefaultRoleOptions returns the default thresholds.
func DefaultRoleOptions() RoleOptions {
	return RoleOptions{
		NeutralChroma:     0.06,
		MainMinL:          0.40,
		MainMaxL:          0.72,
		NeutralDarkMaxL:   0.40,
		ShadeHueTolerance: 30,
		ShadeHueRelaxed:   60,
		AccentHueDistance: 60,
		AccentHueRelaxed:  30,
	}
}

// Synthesised role parameters.
const (
	derivedNeutralDarkL = 0.22
	derivedNeutralDarkC = 0.02
	derivedShadeFactor  = 0.7
	derivedAccentMinC   = 0.1
	derivedMinShadeL    = 0.2
	derivedAccentMinL   = 0.35
	derivedAccentMaxL   = 0.75
)

// candidate is an input colour with its position, used for stable
// tie-breaking.
type candidate struct {
	index int
	hex   string
	lch   colour.LCH
}

func newRole(name RoleName, hex string, derived bool) Role {
	c := colour.MustHex(hex)
	lch := colour.ToOklch(c)
	return Role{
		Hex:     hex,
		Role:    name,
		L:       lch.L,
		C:       lch.C,
		H:       lch.H,
		Derived: derived,
		Text:    colour.BestTextOn(c),
	}
}

func synthesise(name RoleName, lch colour.LCH) Role {
	return newRole(name, colour.OklchToHexSafe(lch), true)
}

// best returns the highest-ranked candidate that passes keep. Candidates
// are sorted on a copy; ties keep input order.
func best(cands []candidate, keep func(candidate) bool, better func(a, b candidate) int) (candidate, bool) {
	pool := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if keep(c) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return candidate{}, false
	}
	slices.SortStableFunc(pool, func(a, b candidate) int {
		if c := better(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	return pool[0], true
}

func byLightnessDesc(a, b candidate) int { return cmp.Compare(b.lch.L, a.lch.L) }
func byLightnessAsc(a, b candidate) int  { return cmp.Compare(a.lch.L, b.lch.L) }
func byChromaDesc(a, b candidate) int    { return cmp.Compare(b.lch.C, a.lch.C) }

func anyCandidate(candidate) bool { return true }

// Select603010 assigns the five 60/30/10 roles from colours. Each role
// falls back through looser criteria and finally synthesis, so any
// non-empty input gives all five.
func Select603010(colours []string, opts RoleOptions) (RoleSet, error) {
	if err := colour.ValidateStruct(opts); err != nil {
		return RoleSet{}, err
	}
	p := colour.FromColours("colours", colours...)
	hexes, err := inputColours(p)
	if err != nil {
		return RoleSet{}, err
	}
	logger := Options{Logger: opts.Logger}.logger("roles")

	cands := make([]candidate, len(hexes))
	for i, h := range hexes {
		cands[i] = candidate{index: i, hex: h, lch: lchOf(h)}
	}
	used := make(map[int]bool)
	unused := func(c candidate) bool { return !used[c.index] }

	var rs RoleSet

	// Neutral light: lightest near-neutral, else lightest overall.
	nl, ok := best(cands, func(c candidate) bool { return c.lch.C < opts.NeutralChroma }, byLightnessDesc)
	if !ok {
		logger.Debug("no neutral candidate for neutral light, using lightest")
		nl, _ = best(cands, anyCandidate, byLightnessDesc)
	}
	used[nl.index] = true
	rs.NeutralLight = newRole(RoleNeutralLight, nl.hex, false)

	// Main: most chromatic inside the lightness band, else most chromatic
	// remaining, else most chromatic overall.
	mc, ok := best(cands, func(c candidate) bool {
		return unused(c) && c.lch.L >= opts.MainMinL && c.lch.L <= opts.MainMaxL
	}, byChromaDesc)
	if !ok {
		if mc, ok = best(cands, unused, byChromaDesc); !ok {
			logger.Debug("no remaining colour for main, reusing input")
			mc, _ = best(cands, anyCandidate, byChromaDesc)
		}
	}
	used[mc.index] = true
	rs.MainColor = newRole(RoleMainColor, mc.hex, false)
	mainLCH := mc.lch

	// Neutral dark: darkest remaining near-neutral, else synthesised from
	// the main hue.
	if nd, ok := best(cands, func(c candidate) bool {
		return unused(c) && c.lch.C < opts.NeutralChroma && c.lch.L <= opts.NeutralDarkMaxL
	}, byLightnessAsc); ok {
		used[nd.index] = true
		rs.NeutralDark = newRole(RoleNeutralDark, nd.hex, false)
	} else {
		logger.Debug("synthesising neutral dark")
		rs.NeutralDark = synthesise(RoleNeutralDark, colour.LCH{L: derivedNeutralDarkL, C: derivedNeutralDarkC, H: mainLCH.H})
	}

	// Main shade: most chromatic remaining colour near the main hue.
	shade, ok := best(cands, func(c candidate) bool {
		return unused(c) && colour.HueDistance(c.lch.H, mainLCH.H) <= opts.ShadeHueTolerance
	}, byChromaDesc)
	if !ok {
		shade, ok = best(cands, func(c candidate) bool {
			return unused(c) && colour.HueDistance(c.lch.H, mainLCH.H) <= opts.ShadeHueRelaxed
		}, byChromaDesc)
	}
	if ok {
		used[shade.index] = true
		rs.MainColorShade = newRole(RoleMainColorShade, shade.hex, false)
	} else {
		logger.Debug("synthesising main colour shade")
		shadeL := mainLCH.L * derivedShadeFactor
		if shadeL < derivedMinShadeL {
			// Near-black main has no darker shade.
			shadeL = mainLCH.L + derivedMinShadeL
		}
		rs.MainColorShade = synthesise(RoleMainColorShade, colour.LCH{L: shadeL, C: mainLCH.C * 0.9, H: mainLCH.H})
	}

	// Accent: most chromatic remaining colour far enough from main.
	accent, ok := best(cands, func(c candidate) bool {
		return unused(c) && colour.HueDistance(c.lch.H, mainLCH.H) >= opts.AccentHueDistance
	}, byChromaDesc)
	if !ok {
		accent, ok = best(cands, func(c candidate) bool {
			return unused(c) && colour.HueDistance(c.lch.H, mainLCH.H) >= opts.AccentHueRelaxed
		}, byChromaDesc)
	}
	if ok {
		rs.AccentColor = newRole(RoleAccentColor, accent.hex, false)
	} else {
		logger.Debug("synthesising accent as rotated complement")
		rs.AccentColor = synthesise(RoleAccentColor, colour.LCH{
			L: colour.Clamp(mainLCH.L, derivedAccentMinL, derivedAccentMaxL),
			C: max(mainLCH.C, derivedAccentMinC),
			H: colour.WrapHue(mainLCH.H + 180),
		})
	}
	return rs, nil
}

// RolesPalette runs Select603010 over every colour of p and returns the
// role-fixed map.
func RolesPalette(p *colour.PaletteMap, opts RoleOptions) (*colour.PaletteMap, error) {
	colours, err := inputColours(p)
	if err != nil {
		return nil, err
	}
	rs, err := Select603010(colours, opts)
	if err != nil {
		return nil, err
	}
	return rs.PaletteMap(), nil
}
