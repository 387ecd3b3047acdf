// Package hook executes post-processing commands around a theme-apply run.
// Hooks run strictly in declared order, one at a time; a failing hook is
// recorded in the report and never blocks the hooks after it.
package hook

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tinct.hook")

// Stage declares when a hook runs relative to output writing.
type Stage int

const (
	PreWrite Stage = iota
	PostWrite
)

func (s Stage) String() string {
	if s == PreWrite {
		return "pre-write"
	}
	return "post-write"
}

// ParseStage parses the configuration spelling of a stage. The empty string
// defaults to post-write, matching the common reload-after-generate case.
func ParseStage(s string) (Stage, error) {
	switch s {
	case "pre":
		return PreWrite, nil
	case "post", "":
		return PostWrite, nil
	default:
		return 0, fmt.Errorf("unknown hook stage %q (valid: pre, post)", s)
	}
}

// Hook is a configured command with its position in the run. The core only
// reads and executes it.
type Hook struct {
	Name    string
	Command string
	Stage   Stage

	// OutputFile replaces the {{output_file}} token in Command for hooks
	// attached to a single template mapping.
	OutputFile string
}

// Result records one attempted hook.
type Result struct {
	Hook   Hook
	Output string
	Err    error
}

func (r Result) Failed() bool { return r.Err != nil }

// Report aggregates the results of every hook attempted, in execution order.
type Report struct {
	Results []Result
}

// Failed reports whether any hook failed. Execution is never short-circuited,
// so a true value still means every hook was attempted.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

// Run executes hooks sequentially in the given order. Hook N+1 only starts
// after hook N has terminated, since hooks may depend on their predecessors'
// side effects.
func Run(ctx context.Context, hooks []Hook) Report {
	report := Report{Results: make([]Result, 0, len(hooks))}
	for _, h := range hooks {
		output, err := runOne(ctx, h)
		if err != nil {
			log.Errorf("hook %s failed: %s", h.Name, err)
		} else {
			log.Infof("hook %s completed", h.Name)
		}
		report.Results = append(report.Results, Result{Hook: h, Output: output, Err: err})
	}
	return report
}

func runOne(ctx context.Context, h Hook) (string, error) {
	cmdline := strings.ReplaceAll(h.Command, "{{output_file}}", h.OutputFile)

	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	raw, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(raw))
	if err != nil {
		if output != "" {
			return output, fmt.Errorf("%w: %s", err, output)
		}
		return output, err
	}
	return output, nil
}
