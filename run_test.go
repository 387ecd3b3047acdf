package tinct

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/tinct/internal/config"
	"github.com/jsvensson/tinct/internal/hook"
	"github.com/jsvensson/tinct/internal/theme"
	"github.com/jsvensson/tinct/internal/writer"
)

const testThemeJSON = `{
	"primary": {"light": "#6750A4", "dark": "#D0BCFF"},
	"surface": {"light": "#FFFBFE", "dark": "#1C1B1F"}
}`

func loadTestTheme(t *testing.T) theme.Theme {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(testThemeJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	th, err := LoadTheme(path)
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeTemplate(t, dir, "colors.tmpl", "accent = {{primary}}\nbg = {{surface.rgb}}\n")
	output := filepath.Join(dir, "out", "colors.conf")
	marker := filepath.Join(dir, "hook.ran")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Dark,
		Mappings: []config.Mapping{
			{Name: "colors", Input: input, Output: output},
		},
		Hooks: []hook.Hook{
			{Name: "touch", Command: "touch " + marker, Stage: hook.PostWrite},
		},
	})

	if report.Failed() {
		t.Fatalf("run failed: %v", report.Errors())
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := "accent = #D0BCFF\nbg = rgb(28, 27, 31)\n"
	if string(got) != want {
		t.Errorf("output:\n%q\nwant:\n%q", got, want)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("post hook did not run: %v", err)
	}
}

func TestRunFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	good := writeTemplate(t, dir, "good.tmpl", "color = {{primary}}\n")
	bad := writeTemplate(t, dir, "bad.tmpl", "color = {{missing_role}}\n")
	goodOut := filepath.Join(dir, "good.conf")
	badOut := filepath.Join(dir, "bad.conf")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Dark,
		Mappings: []config.Mapping{
			{Name: "bad", Input: bad, Output: badOut},
			{Name: "good", Input: good, Output: goodOut},
		},
	})

	if !report.Failed() {
		t.Fatal("run should have failed")
	}

	// The failing template must not block its sibling.
	got, err := os.ReadFile(goodOut)
	if err != nil {
		t.Fatalf("good output missing: %v", err)
	}
	if string(got) != "color = #D0BCFF\n" {
		t.Errorf("good output = %q", got)
	}

	// The failing template's output must not exist at all.
	if _, err := os.Stat(badOut); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("bad output should not exist, stat err = %v", err)
	}

	lines := report.Errors()
	if len(lines) != 1 {
		t.Fatalf("got %d error lines, want 1: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "[bad]") {
		t.Errorf("error line = %q", lines[0])
	}
}

func TestRunDestinationConflict(t *testing.T) {
	dir := t.TempDir()
	a := writeTemplate(t, dir, "a.tmpl", "a = {{primary}}\n")
	b := writeTemplate(t, dir, "b.tmpl", "b = {{surface}}\n")
	shared := filepath.Join(dir, "shared.conf")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Dark,
		Mappings: []config.Mapping{
			{Name: "a", Input: a, Output: shared},
			{Name: "b", Input: b, Output: shared},
		},
	})

	if !report.Failed() {
		t.Fatal("run should have failed")
	}
	if report.Templates[0].Failed() {
		t.Errorf("first claimant failed: %v", report.Templates[0].Err)
	}

	var conflict *writer.ConflictError
	if !errors.As(report.Templates[1].Err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", report.Templates[1].Err)
	}

	// The first claimant's render survives.
	got, err := os.ReadFile(shared)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a = #D0BCFF\n" {
		t.Errorf("shared output = %q", got)
	}
}

func TestRunSectionHooks(t *testing.T) {
	dir := t.TempDir()
	input := writeTemplate(t, dir, "in.tmpl", "{{primary}}")
	output := filepath.Join(dir, "out.conf")
	copied := filepath.Join(dir, "copy.conf")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Light,
		Mappings: []config.Mapping{
			{Name: "in", Input: input, Output: output, PostHook: "cp {{output_file}} " + copied},
		},
	})

	if report.Failed() {
		t.Fatalf("run failed: %v", report.Errors())
	}

	// The section hook ran after the write and saw the finished file.
	got, err := os.ReadFile(copied)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "#6750A4" {
		t.Errorf("copied output = %q", got)
	}
}

func TestRunSectionHookSkippedOnFailure(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "should-not-exist")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Dark,
		Mappings: []config.Mapping{
			{
				Name:     "broken",
				Input:    filepath.Join(dir, "absent.tmpl"),
				Output:   filepath.Join(dir, "out.conf"),
				PostHook: "touch " + marker,
			},
		},
	})

	if !report.Failed() {
		t.Fatal("run should have failed")
	}
	if _, err := os.Stat(marker); !errors.Is(err, os.ErrNotExist) {
		t.Error("section hook ran for a failed template")
	}
}

func TestRunPreHookFailureDoesNotBlockTemplates(t *testing.T) {
	dir := t.TempDir()
	input := writeTemplate(t, dir, "in.tmpl", "{{mode}}\n")
	output := filepath.Join(dir, "out.conf")

	report := Run(context.Background(), RunConfig{
		Theme: loadTestTheme(t),
		Mode:  theme.Dark,
		Mappings: []config.Mapping{
			{Name: "in", Input: input, Output: output},
		},
		Hooks: []hook.Hook{
			{Name: "broken-pre", Command: "exit 1", Stage: hook.PreWrite},
		},
	})

	if !report.Failed() {
		t.Fatal("run should report the pre hook failure")
	}
	if report.Templates[0].Failed() {
		t.Errorf("template should have rendered: %v", report.Templates[0].Err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "dark\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	if _, err := LoadTheme(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing theme file")
	}
}
