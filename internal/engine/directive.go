package engine

import (
	"fmt"
	"strconv"

	"github.com/jsvensson/tinct/internal/color"
)

// Directive selects the output format applied to a resolved color. The set
// is closed; unknown directive names are a hard resolution error, never
// silently ignored.
type Directive int

const (
	DirectiveHex Directive = iota // default when a placeholder names only a role
	DirectiveHexStripped
	DirectiveRGB
	DirectiveRGBA
	DirectiveHSL
	DirectiveHSLA
	DirectiveRed
	DirectiveGreen
	DirectiveBlue
	DirectiveAlpha
	DirectiveHue
	DirectiveSaturation
	DirectiveLightness
)

var directiveNames = map[string]Directive{
	"hex":          DirectiveHex,
	"hex_stripped": DirectiveHexStripped,
	"rgb":          DirectiveRGB,
	"rgba":         DirectiveRGBA,
	"hsl":          DirectiveHSL,
	"hsla":         DirectiveHSLA,
	"red":          DirectiveRed,
	"green":        DirectiveGreen,
	"blue":         DirectiveBlue,
	"alpha":        DirectiveAlpha,
	"hue":          DirectiveHue,
	"saturation":   DirectiveSaturation,
	"lightness":    DirectiveLightness,
}

// UnknownDirectiveError reports a format directive name outside the closed set.
type UnknownDirectiveError struct {
	Name string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("unknown format directive %q", e.Name)
}

// ParseDirective maps a directive name to its Directive.
func ParseDirective(name string) (Directive, error) {
	d, ok := directiveNames[name]
	if !ok {
		return 0, &UnknownDirectiveError{Name: name}
	}
	return d, nil
}

func (d Directive) String() string {
	for name, dir := range directiveNames {
		if dir == d {
			return name
		}
	}
	return fmt.Sprintf("Directive(%d)", int(d))
}

// Apply renders the color in the directive's format. Each transform is pure
// and deterministic; the switch is exhaustive over the closed set.
func (d Directive) Apply(c color.Color) string {
	switch d {
	case DirectiveHex:
		return c.Hex()
	case DirectiveHexStripped:
		return c.HexBare()
	case DirectiveRGB:
		return c.RGB()
	case DirectiveRGBA:
		return c.RGBA()
	case DirectiveHSL:
		return c.HSL()
	case DirectiveHSLA:
		return c.HSLA()
	case DirectiveRed:
		return strconv.Itoa(int(c.R))
	case DirectiveGreen:
		return strconv.Itoa(int(c.G))
	case DirectiveBlue:
		return strconv.Itoa(int(c.B))
	case DirectiveAlpha:
		return strconv.Itoa(int(c.A))
	case DirectiveHue:
		return fmt.Sprintf("%.0f", c.Hue())
	case DirectiveSaturation:
		return fmt.Sprintf("%.0f", c.Saturation())
	case DirectiveLightness:
		return fmt.Sprintf("%.0f", c.Lightness())
	}
	panic(fmt.Sprintf("unhandled directive %d", int(d)))
}
