package executor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/registry"
	"github.com/provis-labs/provis/internal/runner"
	"github.com/provis-labs/provis/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, rec *runner.Recorder) *asset.Env {
	t.Helper()
	return &asset.Env{
		ModelsRoot:      t.TempDir(),
		CustomNodesRoot: t.TempDir(),
		Runner:          rec,
	}
}

func TestRun_OrderIndependentOfMergeOrder(t *testing.T) {
	w1, err := workflow.New("w1")
	require.NoError(t, err)
	w1.AddModel(asset.NewModel("checkpoints", "https://example.com/m1", ""))
	w1.AddModel(asset.NewModel("vae", "https://example.com/m2", ""))
	w1.AddRepo(asset.NewRepo("https://github.com/org/node"))

	w2, err := workflow.New("w2")
	require.NoError(t, err)
	w2.AddModel(asset.NewModel("checkpoints", "https://example.com/m3", ""))
	w2.AddCommand(asset.NewCommand("echo", "setup"))

	for _, order := range [][]*workflow.Workflow{{w1, w2}, {w2, w1}} {
		reg := registry.New()
		for _, w := range order {
			w.MergeInto(reg, nil)
		}

		rec := &runner.Recorder{}
		report := New(newEnv(t, rec), nil).Run(context.Background(), reg)

		// git clone + pip install, then the command, then three downloads.
		assert.Equal(t, []string{"git", "pip", "echo", "wget", "wget", "wget"}, rec.Programs())

		var phases []Phase
		for _, o := range report.Outcomes {
			phases = append(phases, o.Phase)
		}
		assert.Equal(t, []Phase{PhaseCustomNodes, PhaseCommands, PhaseModels, PhaseModels, PhaseModels}, phases)
		assert.Equal(t, 5, report.Done)
	}
}

func TestRun_ContinuesAfterFailures(t *testing.T) {
	w, err := workflow.New("w")
	require.NoError(t, err)
	w.AddRepo(asset.NewRepo("https://github.com/org/broken"))
	w.AddRepo(asset.NewRepo("https://github.com/org/fine"))
	w.AddCommand(asset.NewCommand("false"))
	w.AddCommand(asset.NewCommand("true"))
	w.AddModel(asset.NewModel("vae", "https://example.com/bad", ""))
	w.AddModel(asset.NewModel("vae", "https://example.com/good", ""))

	reg := registry.New()
	w.MergeInto(reg, nil)

	rec := &runner.Recorder{Fail: func(c runner.Cmd) error {
		joined := strings.Join(c.Argv, " ")
		if strings.Contains(joined, "broken") || c.Argv[0] == "false" || strings.HasSuffix(joined, "/bad") {
			return errors.New("exit status 1")
		}
		return nil
	}}

	var out bytes.Buffer
	report := New(newEnv(t, rec), &out).Run(context.Background(), reg)

	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 3, report.Done)
	// Every step of every entry was attempted.
	assert.Len(t, rec.Commands(), 2+2+1+1+1+1)

	failures := report.Failures()
	require.Len(t, failures, 3)
	assert.Equal(t, "broken", failures[0].Name)
	assert.Equal(t, "false", failures[1].Name)
	assert.Equal(t, "bad", failures[2].Name)

	assert.Equal(t, 3, strings.Count(out.String(), "✗"))
	assert.Equal(t, 3, strings.Count(out.String(), "✓"))
}

func TestRun_EmptyURLsAreSkipped(t *testing.T) {
	w, err := workflow.New("w")
	require.NoError(t, err)
	w.AddRepo(asset.NewRepo(""))
	w.AddModel(asset.NewModel("vae", "", ""))

	reg := registry.New()
	w.MergeInto(reg, nil)

	rec := &runner.Recorder{}
	var out bytes.Buffer
	report := New(newEnv(t, rec), &out).Run(context.Background(), reg)

	assert.Equal(t, 2, report.Skipped)
	assert.Zero(t, report.Failed)
	assert.Empty(t, rec.Commands())
	assert.Contains(t, out.String(), "(nothing to do)")
}

func TestRun_EmptyRegistry(t *testing.T) {
	rec := &runner.Recorder{}
	report := New(newEnv(t, rec), nil).Run(context.Background(), registry.New())
	assert.Empty(t, report.Outcomes)
	assert.Empty(t, rec.Commands())
}

func TestPrintSummary(t *testing.T) {
	report := &Report{}
	report.record(Outcome{Group: "vae", Name: "a", Status: asset.StatusDone})
	report.record(Outcome{Group: "vae", Name: "b", Status: asset.StatusFailed, Err: errors.New("x")})

	var out bytes.Buffer
	PrintSummary(&out, report)
	assert.Contains(t, out.String(), "1 done, 0 skipped, 1 failed")
	assert.Contains(t, out.String(), "vae: b")
}
