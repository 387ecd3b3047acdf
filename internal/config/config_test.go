package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/jsvensson/tinct/internal/hook"
	"github.com/jsvensson/tinct/internal/writer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[templates.waybar]
input_path = "templates/waybar.css"
output_path = "out/waybar.css"
post_hook = "pkill -SIGUSR2 waybar"

[templates.alacritty]
input_path = "/etc/tinct/alacritty.toml"
output_path = "/tmp/alacritty.toml"

[[hooks]]
name = "reload"
command = "swaymsg reload"

[[hooks]]
command = "notify-send done"
when = "post"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Mappings) != 2 {
		t.Fatalf("got %d mappings, want 2", len(cfg.Mappings))
	}

	// Sections come back sorted by name.
	if cfg.Mappings[0].Name != "alacritty" || cfg.Mappings[1].Name != "waybar" {
		t.Errorf("mapping order: %s, %s", cfg.Mappings[0].Name, cfg.Mappings[1].Name)
	}

	base := filepath.Dir(path)
	waybar := cfg.Mappings[1]
	if waybar.Input != filepath.Join(base, "templates/waybar.css") {
		t.Errorf("relative input not resolved against config dir: %q", waybar.Input)
	}
	if waybar.Output != filepath.Join(base, "out/waybar.css") {
		t.Errorf("relative output not resolved against config dir: %q", waybar.Output)
	}
	if waybar.PostHook != "pkill -SIGUSR2 waybar" {
		t.Errorf("post_hook = %q", waybar.PostHook)
	}

	alacritty := cfg.Mappings[0]
	if alacritty.Input != "/etc/tinct/alacritty.toml" {
		t.Errorf("absolute input changed: %q", alacritty.Input)
	}

	if len(cfg.Hooks) != 2 {
		t.Fatalf("got %d hooks, want 2", len(cfg.Hooks))
	}
	if cfg.Hooks[0].Name != "reload" || cfg.Hooks[0].Stage != hook.PostWrite {
		t.Errorf("hook 1 = %+v", cfg.Hooks[0])
	}
	if cfg.Hooks[1].Name != "hook-2" {
		t.Errorf("unnamed hook should default to hook-2, got %q", cfg.Hooks[1].Name)
	}
}

func TestLoadPreHook(t *testing.T) {
	path := writeConfig(t, `
[templates.a]
input_path = "a.in"
output_path = "a.out"

[[hooks]]
command = "mkdir -p /tmp/theme"
when = "pre"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hooks[0].Stage != hook.PreWrite {
		t.Errorf("stage = %v, want pre-write", cfg.Hooks[0].Stage)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"not toml",
			`[templates.a`,
			"parsing config",
		},
		{
			"missing input_path",
			"[templates.a]\noutput_path = \"a.out\"\n",
			"input_path",
		},
		{
			"missing output_path",
			"[templates.a]\ninput_path = \"a.in\"\n",
			"output_path",
		},
		{
			"hook without command",
			"[[hooks]]\nname = \"empty\"\n",
			"command",
		},
		{
			"bad hook stage",
			"[[hooks]]\ncommand = \"true\"\nwhen = \"during\"\n",
			"unknown hook stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDuplicateOutput(t *testing.T) {
	path := writeConfig(t, `
[templates.a]
input_path = "a.in"
output_path = "shared.conf"

[templates.b]
input_path = "b.in"
output_path = "./shared.conf"
`)

	_, err := Load(path)
	var conflict *writer.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath()
	if !strings.HasSuffix(got, filepath.Join("tinct", "config.toml")) {
		t.Errorf("default path = %q", got)
	}
}

func TestResolveTheme(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	themeDir := filepath.Join(home, "tinct", "themes")
	if err := os.MkdirAll(themeDir, 0o755); err != nil {
		t.Fatal(err)
	}
	stored := filepath.Join(themeDir, "catppuccin.json")
	if err := os.WriteFile(stored, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := ResolveTheme("catppuccin"); got != stored {
		t.Errorf("bare name: got %q, want %q", got, stored)
	}
	if got := ResolveTheme("unknown-theme"); got != "unknown-theme" {
		t.Errorf("unresolvable bare name should pass through, got %q", got)
	}
	if got := ResolveTheme("./catppuccin.json"); got != "./catppuccin.json" {
		t.Errorf("path argument should pass through, got %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandTilde("~/colors.json"); got != filepath.Join(home, "colors.json") {
		t.Errorf("got %q", got)
	}
	if got := ExpandTilde("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandTilde("~user/x"); got != "~user/x" {
		t.Errorf("~user form should pass through: %q", got)
	}
}
