package asset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/provis-labs/provis/internal/runner"
)

// ModelAsset is a single file downloaded into <models root>/<group>.
type ModelAsset struct {
	group    string
	url      string
	renameTo string
	workflow string
}

// NewModel declares a model file. renameTo may be empty, in which case the
// server's content-disposition header names the file.
func NewModel(group, sourceURL, renameTo string) *ModelAsset {
	return &ModelAsset{group: group, url: sourceURL, renameTo: renameTo}
}

func (m *ModelAsset) Kind() Kind                { return KindModel }
func (m *ModelAsset) Group() string             { return m.group }
func (m *ModelAsset) SourceURL() string         { return m.url }
func (m *ModelAsset) WorkflowTag() string       { return m.workflow }
func (m *ModelAsset) SetWorkflowTag(tag string) { m.workflow = tag }
func (m *ModelAsset) RenameTo() string          { return m.renameTo }

// Name returns the explicit output name, or the last URL path segment.
func (m *ModelAsset) Name() string {
	if m.renameTo != "" {
		return m.renameTo
	}
	if m.url == "" {
		return "(none)"
	}
	return path.Base(urlPath(m.url))
}

// Dir returns the destination directory under env's models root.
func (m *ModelAsset) Dir(env *Env) string {
	return filepath.Join(env.ModelsRoot, m.group)
}

// DownloadCommand builds the transfer tool invocation: quiet, no-clobber,
// content-disposition naming and a progress bar.
func (m *ModelAsset) DownloadCommand(env *Env) runner.Cmd {
	dir := m.Dir(env)
	argv := []string{env.wget()}
	if m.renameTo != "" {
		argv = append(argv, "--output-document="+filepath.Join(dir, m.renameTo))
	}
	if token := env.Credentials.TokenFor(m.url); token != "" {
		argv = append(argv, "--header=Authorization: Bearer "+token)
	}
	argv = append(argv, "-qnc", "--content-disposition", "--show-progress", "-P", dir, m.url)
	return runner.Cmd{Argv: argv}
}

// Materialize downloads the file. An empty URL is skipped without touching
// the filesystem.
func (m *ModelAsset) Materialize(ctx context.Context, env *Env) (Status, error) {
	if m.url == "" {
		return StatusSkipped, nil
	}

	dir := m.Dir(env)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return StatusFailed, fmt.Errorf("creating model directory %s: %w", dir, err)
	}

	if err := env.Runner.Run(ctx, m.DownloadCommand(env)); err != nil {
		return StatusFailed, fmt.Errorf("downloading %s: %w", m.url, err)
	}
	return StatusDone, nil
}

// MarshalJSON renders the entry for workflow dumps.
func (m *ModelAsset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Folder   string `json:"folder"`
		URL      string `json:"url"`
		Workflow string `json:"workflow"`
		AltName  string `json:"alt_name,omitempty"`
	}{m.group, m.url, m.workflow, m.renameTo})
}
