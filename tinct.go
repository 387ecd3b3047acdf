// Package tinct renders themed configuration files by injecting a Material
// Design 3 palette into text templates, then runs the configured hooks.
package tinct

import (
	"context"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/tinct/internal/config"
	"github.com/jsvensson/tinct/internal/engine"
	"github.com/jsvensson/tinct/internal/hook"
	"github.com/jsvensson/tinct/internal/theme"
	"github.com/jsvensson/tinct/internal/writer"
)

var log = commonlog.GetLogger("tinct")

// LoadTheme reads and validates a theme file. A load failure is fatal to
// the whole run: nothing can render without a valid theme.
func LoadTheme(path string) (theme.Theme, error) {
	t, err := theme.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	return t, nil
}

// RunConfig carries the immutable inputs of one theme-apply run.
type RunConfig struct {
	Theme    theme.Theme
	Mode     theme.Mode
	Mappings []config.Mapping
	Hooks    []hook.Hook
}

// TemplateResult records the outcome of one template mapping.
type TemplateResult struct {
	Mapping config.Mapping
	Err     error
}

func (r TemplateResult) Failed() bool { return r.Err != nil }

// Report aggregates every outcome of a run. The run counts as failed if any
// template or hook failed, but every item was still attempted.
type Report struct {
	Templates []TemplateResult
	PreHooks  hook.Report
	PostHooks hook.Report
}

func (r *Report) Failed() bool {
	for _, t := range r.Templates {
		if t.Failed() {
			return true
		}
	}
	return r.PreHooks.Failed() || r.PostHooks.Failed()
}

// Errors returns one line per failed item, for display.
func (r *Report) Errors() []string {
	var lines []string
	for _, t := range r.Templates {
		if t.Failed() {
			lines = append(lines, fmt.Sprintf("[%s] %v", t.Mapping.Name, t.Err))
		}
	}
	for _, hooks := range []hook.Report{r.PreHooks, r.PostHooks} {
		for _, res := range hooks.Results {
			if res.Failed() {
				lines = append(lines, fmt.Sprintf("[hook %s] %v", res.Hook.Name, res.Err))
			}
		}
	}
	return lines
}

// Run executes one theme-apply run: pre-write hooks, then every template
// mapping in order, then post-write hooks. A failing template aborts only
// its own pipeline; siblings still render and successful outputs stay
// written (no global rollback). Post-write hooks start only after every
// render has completed, since hooks may assume all outputs exist.
func Run(ctx context.Context, cfg RunConfig) *Report {
	report := &Report{Templates: make([]TemplateResult, 0, len(cfg.Mappings))}

	var pre, post []hook.Hook
	for _, h := range cfg.Hooks {
		if h.Stage == hook.PreWrite {
			pre = append(pre, h)
		} else {
			post = append(post, h)
		}
	}

	report.PreHooks = hook.Run(ctx, pre)

	tracker := writer.NewTracker()
	var sectionHooks []hook.Hook
	for _, m := range cfg.Mappings {
		err := renderMapping(m, cfg.Theme, cfg.Mode, tracker)
		if err != nil {
			log.Errorf("template %s failed: %s", m.Name, err)
		} else {
			log.Infof("wrote %s", m.Output)
			if m.PostHook != "" {
				sectionHooks = append(sectionHooks, hook.Hook{
					Name:       m.Name,
					Command:    m.PostHook,
					Stage:      hook.PostWrite,
					OutputFile: m.Output,
				})
			}
		}
		report.Templates = append(report.Templates, TemplateResult{Mapping: m, Err: err})
	}

	// Per-template hooks run before the global post hooks, in template order.
	report.PostHooks = hook.Run(ctx, append(sectionHooks, post...))

	return report
}

func renderMapping(m config.Mapping, th theme.Theme, mode theme.Mode, tracker *writer.Tracker) error {
	if err := tracker.Claim(m.Output); err != nil {
		return err
	}

	text, err := os.ReadFile(m.Input)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	rendered, err := engine.Render(string(text), th, mode)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if err := writer.Write(m.Output, []byte(rendered)); err != nil {
		return err
	}
	return nil
}
