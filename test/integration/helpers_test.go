//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/runner"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // PROVIS_HOME
	BaseDir string // contains models/ and custom_nodes/
	BinDir  string // fake wget, git and pip
	LogFile string // every fake tool appends its argv here
}

// setupTestEnv creates isolated temp directories, installs fake tools that
// record their invocations, and sets environment variables so nothing
// touches the real home directory or network.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	env := &testEnv{
		HomeDir: t.TempDir(),
		BaseDir: t.TempDir(),
		BinDir:  t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "invocations.log")

	t.Setenv("PROVIS_HOME", env.HomeDir)
	t.Setenv("PROVIS_TEST_LOG", env.LogFile)
	t.Setenv("HF_TOKEN", "")
	t.Setenv("CIVITAI_TOKEN", "")

	writeTool(t, env.BinDir, "wget", `
out=""; dir=""; prev=""; url=""
for a in "$@"; do
  case "$a" in --output-document=*) out="${a#--output-document=}";; esac
  if [ "$prev" = "-P" ]; then dir="$a"; fi
  prev="$a"; url="$a"
done
[ -n "$out" ] || out="$dir/$(basename "$url")"
echo "$url" > "$out"
`)
	writeTool(t, env.BinDir, "git", `
mkdir -p "$3" && : > "$3/requirements.txt"
`)
	writeTool(t, env.BinDir, "pip", `
[ "$1" = "install" ] && [ "$2" = "-r" ] && [ ! -f "$3" ] && exit 1
exit 0
`)
	return env
}

// writeTool writes an executable script that logs its name and arguments
// before running body.
func writeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"" + name + " $*\" >> \"$PROVIS_TEST_LOG\"\n" + body
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// assetEnv returns an asset.Env that runs the fake tools for real.
func (e *testEnv) assetEnv() *asset.Env {
	return &asset.Env{
		ModelsRoot:      filepath.Join(e.BaseDir, "models"),
		CustomNodesRoot: filepath.Join(e.BaseDir, "custom_nodes"),
		Tools: asset.Tools{
			Wget: filepath.Join(e.BinDir, "wget"),
			Git:  filepath.Join(e.BinDir, "git"),
			Pip:  filepath.Join(e.BinDir, "pip"),
		},
		Runner: &runner.ExecRunner{},
	}
}

// invocations returns the recorded tool invocations, one per line.
func (e *testEnv) invocations(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", e.LogFile, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
