package manifest

import (
	"fmt"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/workflow"
)

// Build creates one workflow per WorkflowSpec, in file order. Any
// malformed entry is a configuration error and no workflows are returned.
func (cf *CatalogFile) Build() ([]*workflow.Workflow, error) {
	seen := make(map[string]bool, len(cf.Workflows))
	out := make([]*workflow.Workflow, 0, len(cf.Workflows))

	for i, spec := range cf.Workflows {
		w, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("workflow #%d: %w", i+1, err)
		}
		if seen[w.Tag()] {
			return nil, fmt.Errorf("%w: workflow %q is declared more than once", workflow.ErrConfiguration, w.Tag())
		}
		seen[w.Tag()] = true
		out = append(out, w)
	}
	return out, nil
}

func (spec WorkflowSpec) build() (*workflow.Workflow, error) {
	w, err := workflow.New(spec.Name)
	if err != nil {
		return nil, err
	}

	for j, m := range spec.Models {
		if m.Folder == "" {
			return nil, fmt.Errorf("%w: workflow %q model #%d has no folder", workflow.ErrConfiguration, w.Tag(), j+1)
		}
		w.AddModel(asset.NewModel(m.Folder, m.URL, m.Name))
	}

	for _, n := range spec.Nodes {
		extra, err := commands(n.Commands)
		if err != nil {
			return nil, fmt.Errorf("workflow %q node %s: %w", w.Tag(), n.URL, err)
		}
		w.AddRepo(asset.NewRepo(n.URL, extra...))
	}

	cmds, err := commands(spec.Commands)
	if err != nil {
		return nil, fmt.Errorf("workflow %q: %w", w.Tag(), err)
	}
	for _, c := range cmds {
		w.AddCommand(c)
	}
	return w, nil
}

func commands(specs []CommandSpec) ([]asset.Command, error) {
	out := make([]asset.Command, 0, len(specs))
	for _, s := range specs {
		c, err := s.Command()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Command converts c to an argv, splitting Line with shell word rules.
func (c CommandSpec) Command() (asset.Command, error) {
	if c.Argv != nil {
		if len(c.Argv) == 0 {
			return asset.Command{}, fmt.Errorf("%w: empty command", workflow.ErrConfiguration)
		}
		return asset.NewCommand(c.Argv...), nil
	}
	cmd, err := asset.ParseCommand(c.Line)
	if err != nil {
		return asset.Command{}, fmt.Errorf("%w: %v", workflow.ErrConfiguration, err)
	}
	return cmd, nil
}
