package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// SRGB returns the colour with channels scaled to [0, 1].
func (rgb RGB) SRGB() SRGB {
	return SRGB{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
}

// RGB quantises c to 8 bits per channel, clamping out-of-range values.
func (c SRGB) RGB() RGB {
	return RGB{R: to8(c.R), G: to8(c.G), B: to8(c.B)}
}

// Hex encodes c as "#rrggbb" after clamping.
func (c SRGB) Hex() string {
	return c.RGB().Hex()
}

func to8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(clamp01(v) * 255))
}

// NormalizeHex validates a hex colour and returns it as lowercase
// "#rrggbb". Three-digit forms are expanded and the leading '#' is
// optional.
func NormalizeHex(s string) (string, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 3:
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
	default:
		return "", NewValidationError("", s, ErrBadFormat)
	}
	raw = strings.ToLower(raw)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", NewValidationError("", s, ErrBadFormat)
		}
	}
	return "#" + raw, nil
}

// IsHex reports whether s is an acceptable hex colour.
func IsHex(s string) bool {
	_, err := NormalizeHex(s)
	return err == nil
}

// ParseHex decodes a hex colour into gamma-encoded sRGB.
func ParseHex(s string) (SRGB, error) {
	rgb, err := ParseHexRGB(s)
	if err != nil {
		return SRGB{}, err
	}
	return rgb.SRGB(), nil
}

// ParseHexRGB decodes a hex colour into 8-bit channels.
func ParseHexRGB(s string) (RGB, error) {
	norm, err := NormalizeHex(s)
	if err != nil {
		return RGB{}, err
	}
	v, err := strconv.ParseUint(norm[1:], 16, 32)
	if err != nil {
		return RGB{}, &ValidationError{Value: s, Kind: ErrBadFormat, Err: err}
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for compile-time constants. It panics on bad input.
func MustHex(s string) SRGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
