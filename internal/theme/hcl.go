package theme

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/jsvensson/tinct/internal/color"
)

// LoadHCL parses the hand-authoring HCL theme format:
//
//	palette {
//	  mauve = "#6750a4"
//	}
//
//	light {
//	  primary = palette.mauve
//	}
//
//	dark {
//	  primary = brighten(palette.mauve, 0.2)
//	}
//
// The light and dark blocks assign roles from hex literals, palette
// references, or the brighten/darken functions. The result is the same
// validated Theme the JSON loader produces.
func LoadHCL(src []byte, filename string) (Theme, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	body := file.Body.(*hclsyntax.Body)

	// Palette must be evaluated first since the mode blocks reference it.
	palette, err := parsePaletteBlock(body)
	if err != nil {
		return nil, err
	}
	ctx := buildEvalContext(palette)

	theme := make(Theme)
	for _, mode := range []Mode{Light, Dark} {
		if err := parseModeBlock(body, ctx, mode, theme); err != nil {
			return nil, err
		}
	}
	if len(theme) == 0 {
		return nil, fmt.Errorf("theme defines no roles (expected light and/or dark blocks)")
	}

	return theme, nil
}

func parsePaletteBlock(body *hclsyntax.Body) (map[string]color.Color, error) {
	palette := make(map[string]color.Color)
	for _, block := range body.Blocks {
		if block.Type != "palette" {
			continue
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing palette: %s", diags.Error())
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("evaluating palette.%s: %s", name, diags.Error())
			}
			lit, err := stringValue(val)
			if err != nil {
				return nil, fmt.Errorf("palette.%s: %w", name, err)
			}
			c, err := color.Parse(lit)
			if err != nil {
				return nil, fmt.Errorf("palette.%s: %w", name, err)
			}
			palette[name] = c
		}
		return palette, nil
	}
	return palette, nil
}

func parseModeBlock(body *hclsyntax.Body, ctx *hcl.EvalContext, mode Mode, theme Theme) error {
	for _, block := range body.Blocks {
		if block.Type != mode.String() {
			continue
		}
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return fmt.Errorf("parsing %s: %s", mode, diags.Error())
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return fmt.Errorf("evaluating %s.%s: %s", mode, name, diags.Error())
			}
			lit, err := stringValue(val)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", mode, name, err)
			}
			c, err := color.Parse(lit)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", mode, name, err)
			}
			role := theme[name]
			if mode == Light {
				role.Light = &c
			} else {
				role.Dark = &c
			}
			theme[name] = role
		}
		return nil
	}
	return nil
}

// stringValue extracts a string from an evaluated cty value. AsString panics
// on any other type, so the check must come first.
func stringValue(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("expected a color string, got no value")
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("expected a color string, got %s", val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

func buildEvalContext(palette map[string]color.Color) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(palette))

	// Sort keys for deterministic diagnostics.
	keys := make([]string, 0, len(palette))
	for k := range palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = cty.StringVal(palette[k].Hex())
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": cty.ObjectVal(vals),
		},
		Functions: map[string]function.Function{
			"brighten": makeLightnessFunc(1),
			"darken":   makeLightnessFunc(-1),
		},
	}
}

// makeLightnessFunc creates an HCL function that shifts a color's lightness.
// Usage: brighten(palette.mauve, 0.1) or darken("#6750a4", 0.1).
func makeLightnessFunc(sign float64) function.Function {
	return function.New(&function.Spec{
		Description: "Shifts a color's HSL lightness by the given fraction",
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "amount", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.Parse(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			amount, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(color.Brighten(c, sign*amount).Hex()), nil
		},
	})
}
