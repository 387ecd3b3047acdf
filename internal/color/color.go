package color

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color. The channel fields are the source of truth
// for all derived formats. The authored hex literal is retained so the hex
// directives reproduce it exactly as written in the theme file.
type Color struct {
	R, G, B, A uint8

	hex string // as authored, with leading #; empty for derived colors
}

// New constructs a fully opaque color from RGB channels.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Parse parses a hex color literal into a Color. Accepted forms are
// "#rrggbb" and "#rrggbbaa", with or without the leading #. Every character
// must be a hex digit; partial matches are rejected.
func Parse(s string) (Color, error) {
	bare := strings.TrimPrefix(s, "#")
	if len(bare) != 6 && len(bare) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 or 8 hex digits", s)
	}

	raw, err := hex.DecodeString(bare)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	c := Color{R: raw[0], G: raw[1], B: raw[2], A: 0xff, hex: "#" + bare}
	if len(raw) == 4 {
		c.A = raw[3]
	}
	return c, nil
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
// The authored literal is preserved when one exists.
func (c Color) Hex() string {
	if len(c.hex) >= 7 {
		return c.hex[:7]
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return c.Hex()[1:]
}

// HexAlpha returns the color in hex format with alpha channel (#rrggbbaa).
func (c Color) HexAlpha() string {
	if len(c.hex) == 9 {
		return c.hex
	}
	return c.Hex() + fmt.Sprintf("%02x", c.A)
}

// HexBareAlpha returns the color in hex format without # prefix and with
// alpha channel (rrggbbaa).
func (c Color) HexBareAlpha() string {
	return c.HexAlpha()[1:]
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBA returns the color in rgba() function format.
func (c Color) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, c.alphaString())
}

// HSL returns the color as an hsl() string with integer components,
// e.g. "hsl(210, 40%, 60%)".
func (c Color) HSL() string {
	h, s, l := c.hsl()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", uint32(h)%360, capPercent(s), capPercent(l))
}

// HSLA returns the color as an hsla() string with integer components.
func (c Color) HSLA() string {
	h, s, l := c.hsl()
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", uint32(h)%360, capPercent(s), capPercent(l), c.alphaString())
}

// Hue returns the HSL hue in degrees.
func (c Color) Hue() float64 {
	h, _, _ := c.hsl()
	return h
}

// Saturation returns the HSL saturation as a percentage.
func (c Color) Saturation() float64 {
	_, s, _ := c.hsl()
	return s
}

// Lightness returns the HSL lightness as a percentage.
func (c Color) Lightness() float64 {
	_, _, l := c.hsl()
	return l
}

// Luminance returns the perceived brightness in [0, 1] using Rec. 601
// channel weighting.
func (c Color) Luminance() float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

func (c Color) alphaString() string {
	if c.A == 0xff {
		return "1.0"
	}
	return fmt.Sprintf("%.2f", float64(c.A)/255.0)
}

func capPercent(v float64) uint32 {
	n := uint32(v)
	if n > 100 {
		return 100
	}
	return n
}

// hsl returns hue in degrees, saturation and lightness as percentages.
func (c Color) hsl() (h, s, l float64) {
	h, s, l = c.colorful().Hsl()
	return h, s * 100, l * 100
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(col colorful.Color, alpha uint8) Color {
	clamped := col.Clamped()
	return Color{
		R: uint8(clamped.R*255.0 + 0.5),
		G: uint8(clamped.G*255.0 + 0.5),
		B: uint8(clamped.B*255.0 + 0.5),
		A: alpha,
	}
}
