//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provis-labs/provis/internal/catalog"
	"github.com/provis-labs/provis/internal/executor"
	"github.com/provis-labs/provis/internal/registry"
	"github.com/provis-labs/provis/internal/runner"
	"github.com/provis-labs/provis/internal/userdata"
)

const localCatalog = `format_version: "1.0.0"
workflows:
  - name: local
    nodes:
      - url: https://github.com/example/ComfyUI-Thing.git
        commands:
          - [touch, MARKER]
    models:
      - folder: checkpoints
        url: https://example.com/files/a.safetensors
      - folder: vae
        url: https://example.com/files/download?id=7
        name: renamed.safetensors
`

// loadUserCatalog mirrors what the run command does: built-in workflows
// overridden by every file in the user catalogs directory.
func loadUserCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	dir, err := userdata.GetCatalogsDir()
	if err != nil {
		t.Fatalf("GetCatalogsDir: %v", err)
	}
	files, err := userdata.ListCatalogFiles(dir)
	if err != nil {
		t.Fatalf("ListCatalogFiles: %v", err)
	}
	cat, err := catalog.Load(files...)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return cat
}

func provision(t *testing.T, env *testEnv, tags ...string) (*executor.Report, string) {
	t.Helper()
	cat := loadUserCatalog(t)
	selected, _ := cat.Select(tags)

	var out bytes.Buffer
	reg := registry.New()
	for _, w := range selected {
		w.MergeInto(reg, &out)
	}
	report := executor.New(env.assetEnv(), &out).Run(context.Background(), reg)
	return report, out.String()
}

// TestProvisionFromUserCatalog runs a catalog file from ~/.provis/catalogs
// together with the built-in default workflow against real processes.
func TestProvisionFromUserCatalog(t *testing.T) {
	env := setupTestEnv(t)
	marker := filepath.Join(env.BaseDir, "marker")
	writeFile(t, filepath.Join(env.HomeDir, "catalogs", "local.yaml"),
		strings.Replace(localCatalog, "MARKER", marker, 1))

	report, out := provision(t, env, "local", "default")
	if report.Failed != 0 {
		t.Fatalf("expected no failures, got %d:\n%s", report.Failed, out)
	}
	// 4 repositories and 2 models; touch runs as part of its repository.
	if report.Done != 6 {
		t.Errorf("Done = %d, want 6", report.Done)
	}

	calls := env.invocations(t)
	if len(calls) != 10 {
		t.Fatalf("expected 10 tool invocations, got %d:\n%s", len(calls), strings.Join(calls, "\n"))
	}
	checkout := filepath.Join(env.BaseDir, "custom_nodes", "ComfyUI-Thing")
	if want := "git clone https://github.com/example/ComfyUI-Thing.git " + checkout; calls[0] != want {
		t.Errorf("calls[0] = %q, want %q", calls[0], want)
	}
	if want := "pip install -r " + filepath.Join(checkout, "requirements.txt"); calls[1] != want {
		t.Errorf("calls[1] = %q, want %q", calls[1], want)
	}
	for _, c := range calls[8:] {
		if !strings.HasPrefix(c, "wget ") {
			t.Errorf("expected downloads last, got %q", c)
		}
	}

	assertDirExists(t, filepath.Join(env.BaseDir, "custom_nodes", "ComfyUI-Manager"))
	assertFileExists(t, marker)
	assertFileContains(t, filepath.Join(env.BaseDir, "models", "checkpoints", "a.safetensors"), "https://example.com/files/a.safetensors")
	assertFileContains(t, filepath.Join(env.BaseDir, "models", "vae", "renamed.safetensors"), "download?id=7")
}

// TestProvisionContinuesAfterCloneFailure checks that a failing clone marks
// only its repository as failed and the downloads still run.
func TestProvisionContinuesAfterCloneFailure(t *testing.T) {
	env := setupTestEnv(t)
	writeTool(t, env.BinDir, "git", "exit 128\n")
	writeFile(t, filepath.Join(env.HomeDir, "catalogs", "local.yaml"),
		strings.Replace(localCatalog, "MARKER", filepath.Join(env.BaseDir, "marker"), 1))

	report, out := provision(t, env, "local")
	if report.Failed != 1 {
		t.Fatalf("Failed = %d, want 1:\n%s", report.Failed, out)
	}
	if report.Done != 2 {
		t.Errorf("Done = %d, want 2", report.Done)
	}

	var pe *runner.ProcessError
	if !errors.As(report.Failures()[0].Err, &pe) {
		t.Fatalf("failure is not a ProcessError: %v", report.Failures()[0].Err)
	}
	if pe.ExitCode != 128 {
		t.Errorf("ExitCode = %d, want 128", pe.ExitCode)
	}

	calls := env.invocations(t)
	// git and pip are attempted and fail; touch is not logged; then two downloads.
	if len(calls) != 4 {
		t.Fatalf("expected 4 tool invocations, got %d:\n%s", len(calls), strings.Join(calls, "\n"))
	}
	if !strings.Contains(out, "✗ custom_nodes: ComfyUI-Thing") {
		t.Errorf("expected failure line in output:\n%s", out)
	}
	assertFileExists(t, filepath.Join(env.BaseDir, "models", "checkpoints", "a.safetensors"))
}
