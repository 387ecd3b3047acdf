// Package config loads the TOML run configuration: the template mappings to
// render and the hooks to execute around them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/jsvensson/tinct/internal/hook"
	"github.com/jsvensson/tinct/internal/writer"
)

// Mapping pairs a source template path with its destination output path,
// plus an optional post hook for that output. Read-only to the core.
type Mapping struct {
	Name     string
	Input    string
	Output   string
	PostHook string
}

// Config is the parsed and validated run configuration.
type Config struct {
	// Mappings are sorted by section name so a run processes templates in a
	// stable order regardless of TOML table iteration.
	Mappings []Mapping

	// Hooks are the global hooks in declared order, stages parsed.
	Hooks []hook.Hook
}

type file struct {
	Templates map[string]section `toml:"templates"`
	Hooks     []hookEntry        `toml:"hooks"`
}

type section struct {
	InputPath  string `toml:"input_path"`
	OutputPath string `toml:"output_path"`
	PostHook   string `toml:"post_hook"`
}

type hookEntry struct {
	Name    string `toml:"name"`
	Command string `toml:"command"`
	When    string `toml:"when"`
}

// Load reads and validates a config file. Relative template and output
// paths are resolved against the config file's directory; a leading ~ is
// expanded. Two sections targeting the same output path reject the config.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var raw file
	if err := toml.Unmarshal(src, &raw); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	baseDir := filepath.Dir(path)

	names := make([]string, 0, len(raw.Templates))
	for name := range raw.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg := &Config{Mappings: make([]Mapping, 0, len(names))}
	tracker := writer.NewTracker()

	for _, name := range names {
		sec := raw.Templates[name]
		if sec.InputPath == "" {
			return nil, fmt.Errorf("[templates.%s] missing required key: input_path", name)
		}
		if sec.OutputPath == "" {
			return nil, fmt.Errorf("[templates.%s] missing required key: output_path", name)
		}

		output := resolvePath(sec.OutputPath, baseDir)
		if err := tracker.Claim(output); err != nil {
			return nil, fmt.Errorf("[templates.%s] %w", name, err)
		}

		cfg.Mappings = append(cfg.Mappings, Mapping{
			Name:     name,
			Input:    resolvePath(sec.InputPath, baseDir),
			Output:   output,
			PostHook: sec.PostHook,
		})
	}

	for i, entry := range raw.Hooks {
		if entry.Command == "" {
			return nil, fmt.Errorf("[[hooks]] entry %d missing required key: command", i+1)
		}
		stage, err := hook.ParseStage(entry.When)
		if err != nil {
			return nil, fmt.Errorf("[[hooks]] entry %d: %w", i+1, err)
		}
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("hook-%d", i+1)
		}
		cfg.Hooks = append(cfg.Hooks, hook.Hook{
			Name:    name,
			Command: entry.Command,
			Stage:   stage,
		})
	}

	return cfg, nil
}

// DefaultPath returns the default config file location under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tinct", "config.toml")
}

// ResolveTheme resolves a --theme argument. A bare name with no path
// separator and no extension looks up <name>.json in the XDG themes folder;
// anything else is treated as a path.
func ResolveTheme(arg string) string {
	if !strings.ContainsRune(arg, filepath.Separator) && filepath.Ext(arg) == "" {
		candidate := filepath.Join(xdg.ConfigHome, "tinct", "themes", arg+".json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ExpandTilde(arg)
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func resolvePath(path, baseDir string) string {
	expanded := ExpandTilde(path)
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded)
	}
	return filepath.Join(baseDir, expanded)
}
