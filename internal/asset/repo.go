package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/provis-labs/provis/internal/runner"
)

// RequirementsFile is the dependency manifest installed after every clone.
const RequirementsFile = "requirements.txt"

// RepoAsset is a custom-node repository cloned into the custom nodes root.
type RepoAsset struct {
	url      string
	folder   string
	extra    []Command
	workflow string
}

// NewRepo declares a repository. The extra commands run after the clone and
// the implicit requirements install, in the given order.
func NewRepo(sourceURL string, extra ...Command) *RepoAsset {
	return &RepoAsset{
		url:    sourceURL,
		folder: FolderName(sourceURL),
		extra:  extra,
	}
}

func (r *RepoAsset) Kind() Kind                { return KindRepo }
func (r *RepoAsset) Group() string             { return CustomNodesGroup }
func (r *RepoAsset) SourceURL() string         { return r.url }
func (r *RepoAsset) WorkflowTag() string       { return r.workflow }
func (r *RepoAsset) SetWorkflowTag(tag string) { r.workflow = tag }
func (r *RepoAsset) Name() string              { return r.folder }

// LocalFolderName is the checkout directory name derived from the URL.
func (r *RepoAsset) LocalFolderName() string { return r.folder }

// CheckoutPath joins root with the local folder name.
func (r *RepoAsset) CheckoutPath(root string) string {
	return filepath.Join(root, r.folder)
}

// Steps returns every command Materialize runs, in order: the clone, the
// requirements install, then the extra commands.
func (r *RepoAsset) Steps(env *Env) []runner.Cmd {
	checkout := r.CheckoutPath(env.CustomNodesRoot)
	steps := []runner.Cmd{
		{Argv: []string{env.git(), "clone", r.url, checkout}},
		{Argv: []string{env.pip(), "install", "-r", filepath.Join(checkout, RequirementsFile)}},
	}
	for _, c := range r.extra {
		steps = append(steps, runner.Cmd{Argv: c.Argv()})
	}
	return steps
}

// Materialize clones the repository and runs its setup commands. Every step
// is attempted even if an earlier one failed; the failures are joined.
func (r *RepoAsset) Materialize(ctx context.Context, env *Env) (Status, error) {
	if r.url == "" {
		return StatusSkipped, nil
	}

	if err := os.MkdirAll(env.CustomNodesRoot, 0755); err != nil {
		return StatusFailed, fmt.Errorf("creating custom nodes directory %s: %w", env.CustomNodesRoot, err)
	}

	var errs []error
	for _, step := range r.Steps(env) {
		if err := env.Runner.Run(ctx, step); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return StatusFailed, fmt.Errorf("provisioning %s: %w", r.folder, errors.Join(errs...))
	}
	return StatusDone, nil
}

// MarshalJSON renders the entry for workflow dumps.
func (r *RepoAsset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Folder   string    `json:"folder"`
		URL      string    `json:"url"`
		Workflow string    `json:"workflow"`
		Commands []Command `json:"commands,omitempty"`
	}{r.folder, r.url, r.workflow, r.extra})
}

// FolderName derives a checkout directory name from a repository URL: the
// last path segment with trailing slashes ignored and a ".git" suffix
// stripped. "https://github.com/org/Foo-Bar.git" -> "Foo-Bar".
func FolderName(sourceURL string) string {
	base := path.Base(strings.TrimRight(urlPath(sourceURL), "/"))
	base = strings.TrimSuffix(base, ".git")
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// urlPath returns the path component of raw, or raw itself when it does not
// parse as a URL (e.g. scp-style "git@host:org/repo.git").
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	return u.Path
}
