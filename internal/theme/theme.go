// Package theme holds the typed Material Design 3 palette: named color
// roles with light and dark variants, loaded from a theme file and resolved
// once per render pass.
package theme

import (
	"fmt"
	"sort"

	"github.com/jsvensson/tinct/internal/color"
)

// Mode selects which variant of each color role a render pass uses. It is
// chosen once per invocation and immutable for the duration of the run.
type Mode int

const (
	Light Mode = iota
	Dark
)

// ParseMode parses a mode name as given on the command line.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (valid: light, dark)", s)
	}
}

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Role holds the per-mode values of one named color slot. A nil variant
// means the theme does not define the role for that mode.
type Role struct {
	Light *color.Color
	Dark  *color.Color
}

// Theme maps role names to their light/dark values. Role names are unique
// by construction; a loaded Theme is immutable for the rest of the run.
type Theme map[string]Role

// MissingRoleError reports a reference to a role the theme does not define.
type MissingRoleError struct {
	Role string
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("role %q does not exist in the theme", e.Role)
}

// MissingVariantError reports a role that exists but has no value for the
// requested mode.
type MissingVariantError struct {
	Role string
	Mode Mode
}

func (e *MissingVariantError) Error() string {
	return fmt.Sprintf("role %q has no %s value", e.Role, e.Mode)
}

// Resolve returns the color for a role under the given mode. A role with no
// value for the requested mode is an error, never a silent default.
func (t Theme) Resolve(role string, mode Mode) (color.Color, error) {
	r, ok := t[role]
	if !ok {
		return color.Color{}, &MissingRoleError{Role: role}
	}

	v := r.Dark
	if mode == Light {
		v = r.Light
	}
	if v == nil {
		return color.Color{}, &MissingVariantError{Role: role, Mode: mode}
	}
	return *v, nil
}

// ResolveAll resolves every role to its canonical hex string under the given
// mode, for read-only display. Roles are checked in sorted order so the
// first missing variant reported is deterministic.
func (t Theme) ResolveAll(mode Mode) (map[string]string, error) {
	names := t.Names()
	resolved := make(map[string]string, len(names))
	for _, name := range names {
		c, err := t.Resolve(name, mode)
		if err != nil {
			return nil, err
		}
		resolved[name] = c.Hex()
	}
	return resolved, nil
}

// Names returns all role names in sorted order.
func (t Theme) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
