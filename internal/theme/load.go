package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsvensson/tinct/internal/color"
)

// Load reads and parses a theme file, dispatching on the file extension.
// JSON is the canonical interchange format; HCL is the hand-authoring
// format (see LoadHCL).
func Load(path string) (Theme, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".json":
		return LoadJSON(src)
	case ".hcl":
		return LoadHCL(src, path)
	default:
		return nil, fmt.Errorf("unsupported theme format %q (valid: .json, .hcl)", ext)
	}
}

// LoadJSON parses a theme JSON document. Two layouts are accepted: the
// canonical role-major form
//
//	{"primary": {"light": "#6750A4", "dark": "#D0BCFF"}}
//
// and the legacy mode-major form
//
//	{"dark": {"primary": "#D0BCFF"}, "light": {"primary": "#6750A4"}}
//
// detected by the top-level keys being mode names only. Any invalid color
// literal or role without a single variant rejects the whole theme.
func LoadJSON(src []byte) (Theme, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("parsing theme JSON: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("theme defines no roles")
	}

	if isModeMajor(raw) {
		return loadModeMajor(raw)
	}
	return loadRoleMajor(raw)
}

func isModeMajor(raw map[string]map[string]string) bool {
	for key := range raw {
		if key != "light" && key != "dark" {
			return false
		}
	}
	return true
}

func loadRoleMajor(raw map[string]map[string]string) (Theme, error) {
	theme := make(Theme, len(raw))
	for name, variants := range raw {
		var role Role
		for mode, literal := range variants {
			c, err := color.Parse(literal)
			if err != nil {
				return nil, fmt.Errorf("role %q, %s: %w", name, mode, err)
			}
			switch mode {
			case "light":
				role.Light = &c
			case "dark":
				role.Dark = &c
			default:
				return nil, fmt.Errorf("role %q: unknown variant %q (valid: light, dark)", name, mode)
			}
		}
		if role.Light == nil && role.Dark == nil {
			return nil, fmt.Errorf("role %q has neither a light nor a dark value", name)
		}
		theme[name] = role
	}
	return theme, nil
}

func loadModeMajor(raw map[string]map[string]string) (Theme, error) {
	theme := make(Theme)
	for mode, roles := range raw {
		for name, literal := range roles {
			c, err := color.Parse(literal)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", mode, name, err)
			}
			role := theme[name]
			if mode == "light" {
				role.Light = &c
			} else {
				role.Dark = &c
			}
			theme[name] = role
		}
	}
	if len(theme) == 0 {
		return nil, fmt.Errorf("theme defines no roles")
	}
	return theme, nil
}
