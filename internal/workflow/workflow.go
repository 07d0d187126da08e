package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/registry"
)

// ErrConfiguration is returned when a workflow is missing a required
// identifying field. It aborts the run before any registry is built.
var ErrConfiguration = errors.New("configuration error")

// Workflow is a named bundle of models, repositories and commands.
type Workflow struct {
	tag      string
	models   []*asset.ModelAsset
	repos    []*asset.RepoAsset
	commands []asset.Command
}

// New creates an empty workflow. The tag must be non-empty.
func New(tag string) (*Workflow, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, fmt.Errorf("%w: workflow tag is required", ErrConfiguration)
	}
	return &Workflow{tag: tag}, nil
}

// Tag returns the workflow's identifier.
func (w *Workflow) Tag() string { return w.tag }

// AddCommand appends a setup command.
func (w *Workflow) AddCommand(c asset.Command) {
	w.commands = append(w.commands, c)
}

// AddModel appends a model and stamps it with this workflow's tag.
func (w *Workflow) AddModel(m *asset.ModelAsset) {
	m.SetWorkflowTag(w.tag)
	w.models = append(w.models, m)
}

// AddRepo appends a repository and stamps it with this workflow's tag.
func (w *Workflow) AddRepo(r *asset.RepoAsset) {
	r.SetWorkflowTag(w.tag)
	w.repos = append(w.repos, r)
}

func (w *Workflow) Models() []*asset.ModelAsset { return append([]*asset.ModelAsset(nil), w.models...) }
func (w *Workflow) Repos() []*asset.RepoAsset   { return append([]*asset.RepoAsset(nil), w.repos...) }
func (w *Workflow) Commands() []asset.Command   { return append([]asset.Command(nil), w.commands...) }

// MergeInto adds the workflow's models, then repositories, then commands to
// reg. Entries whose URL (or, for commands, whose argv) is already present
// are skipped and reported to out as duplicate notices. The skipped
// declarations are returned in the order they were encountered.
func (w *Workflow) MergeInto(reg *registry.Registry, out io.Writer) []registry.Duplicate {
	var dups []registry.Duplicate
	notice := func(d registry.Duplicate) {
		dups = append(dups, d)
		if out != nil {
			fmt.Fprintln(out, d.String())
		}
	}

	for _, m := range w.models {
		if !reg.AddModel(m) {
			notice(registry.Duplicate{Kind: registry.DuplicateURL, Value: m.SourceURL(), Workflow: w.tag})
		}
	}
	for _, r := range w.repos {
		if !reg.AddRepo(r) {
			notice(registry.Duplicate{Kind: registry.DuplicateURL, Value: r.SourceURL(), Workflow: w.tag})
		}
	}
	for _, c := range w.commands {
		if !reg.AddCommand(c) {
			notice(registry.Duplicate{Kind: registry.DuplicateCommand, Value: c.String(), Workflow: w.tag})
		}
	}
	return dups
}

// Print writes the workflow's nodes, models and commands as indented JSON
// dumps.
func (w *Workflow) Print(out io.Writer) error {
	fmt.Fprintf(out, "Workflow: %s\n", w.tag)

	fmt.Fprintln(out, "Nodes:")
	for _, r := range w.repos {
		if err := writeJSON(out, r); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Models:")
	for _, m := range w.models {
		if err := writeJSON(out, m); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "Commands:")
	for _, c := range w.commands {
		if err := writeJSON(out, c); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
