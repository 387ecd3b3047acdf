package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Brighten returns a brighter version of the given color. The percentage is
// added to the HSL lightness and clamped to the valid range.
func Brighten(c Color, percentage float64) Color {
	h, s, l := c.colorful().Hsl()
	l = math.Min(1.0, math.Max(0.0, l+percentage))
	return fromColorful(colorful.Hsl(h, s, l), c.A)
}

// Darken returns a darker version of the given color.
func Darken(c Color, percentage float64) Color {
	return Brighten(c, -percentage)
}
