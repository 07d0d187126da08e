package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/registry"
	"github.com/provis-labs/provis/internal/runner"
)

// Phase names the three execution passes.
type Phase string

const (
	PhaseCustomNodes Phase = registry.GroupCustomNodes
	PhaseCommands    Phase = registry.GroupCommands
	PhaseModels      Phase = "models"
)

// Outcome is the result of one registry entry.
type Outcome struct {
	Phase  Phase
	Group  string
	Name   string
	Status asset.Status
	Err    error
}

// Report summarizes a run. Failures never abort the run, so a Report is
// always complete.
type Report struct {
	Outcomes []Outcome
	Done     int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Failures returns the failed outcomes in execution order.
func (r *Report) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status == asset.StatusFailed {
			out = append(out, o)
		}
	}
	return out
}

func (r *Report) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case asset.StatusDone:
		r.Done++
	case asset.StatusSkipped:
		r.Skipped++
	case asset.StatusFailed:
		r.Failed++
	}
}

// Executor performs the actions held in a registry.
type Executor struct {
	env *asset.Env
	out io.Writer
}

// New creates an executor that materializes entries with env and writes one
// progress line per entry to out.
func New(env *asset.Env, out io.Writer) *Executor {
	if out == nil {
		out = io.Discard
	}
	return &Executor{env: env, out: out}
}

// Run executes every entry of reg: repositories, then commands, then each
// model group in first-seen order. The set of seen URLs holds nothing
// actionable and is not visited.
func (e *Executor) Run(ctx context.Context, reg *registry.Registry) *Report {
	start := time.Now()
	report := &Report{}

	if repos := reg.Repos(); len(repos) > 0 {
		fmt.Fprintln(e.out, registry.GroupCustomNodes)
		for _, repo := range repos {
			e.materialize(ctx, report, PhaseCustomNodes, repo)
		}
	}

	if commands := reg.Commands(); len(commands) > 0 {
		fmt.Fprintln(e.out, registry.GroupCommands)
		for _, c := range commands {
			e.runCommand(ctx, report, c)
		}
	}

	for _, group := range reg.ModelGroups() {
		fmt.Fprintln(e.out, group)
		for _, m := range reg.Models(group) {
			e.materialize(ctx, report, PhaseModels, m)
		}
	}

	report.Duration = time.Since(start)
	slog.Debug("provisioning finished",
		"done", report.Done,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration)
	return report
}

func (e *Executor) materialize(ctx context.Context, report *Report, phase Phase, entry asset.Entry) {
	slog.Debug("materializing entry",
		"phase", phase,
		"group", entry.Group(),
		"url", entry.SourceURL(),
		"workflow", entry.WorkflowTag())

	status, err := entry.Materialize(ctx, e.env)
	o := Outcome{Phase: phase, Group: entry.Group(), Name: entry.Name(), Status: status, Err: err}
	if err != nil {
		o.Status = asset.StatusFailed
	}
	report.record(o)
	e.printOutcome(o)
}

func (e *Executor) runCommand(ctx context.Context, report *Report, c asset.Command) {
	o := Outcome{Phase: PhaseCommands, Group: registry.GroupCommands, Name: c.String(), Status: asset.StatusDone}
	if c.IsZero() {
		o.Status = asset.StatusSkipped
	} else if err := e.env.Runner.Run(ctx, runner.Cmd{Argv: c.Argv()}); err != nil {
		o.Status = asset.StatusFailed
		o.Err = err
	}
	report.record(o)
	e.printOutcome(o)
}

func (e *Executor) printOutcome(o Outcome) {
	switch o.Status {
	case asset.StatusDone:
		fmt.Fprintf(e.out, "  ✓ %s: %s\n", o.Group, o.Name)
	case asset.StatusSkipped:
		fmt.Fprintf(e.out, "  - %s: %s (nothing to do)\n", o.Group, o.Name)
	default:
		fmt.Fprintf(e.out, "  ✗ %s: %s (%v)\n", o.Group, o.Name, o.Err)
	}
}

// PrintSummary writes a one-line summary of report followed by the failed
// entries, if any.
func PrintSummary(w io.Writer, report *Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d done, %d skipped, %d failed in %s.\n",
		report.Done, report.Skipped, report.Failed, report.Duration.Round(time.Millisecond))
	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(w, "  Failed entries (re-run to retry; completed downloads are kept):")
	for _, f := range failures {
		fmt.Fprintf(w, "    %s: %s\n", f.Group, f.Name)
	}
}
