package registry

import (
	"fmt"
	"io"
	"strings"
)

// PrintPlan prints the registry in execution order with box-drawing
// connectors, followed by a one-line summary.
func PrintPlan(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Provisioning plan:")
	fmt.Fprintln(w)

	if r.Len() == 0 && len(r.commands) == 0 {
		fmt.Fprintln(w, "  Nothing to provision.")
		fmt.Fprintln(w)
		return
	}

	if len(r.repos) > 0 {
		labels := make([]string, len(r.repos))
		for i, repo := range r.repos {
			labels[i] = fmt.Sprintf("%s  (%s)", displayName(repo.Name()), repo.SourceURL())
		}
		printGroup(w, GroupCustomNodes, labels)
	}

	if len(r.commands) > 0 {
		labels := make([]string, len(r.commands))
		for i, c := range r.commands {
			labels[i] = c.String()
		}
		printGroup(w, GroupCommands, labels)
	}

	for _, g := range r.groupOrder {
		models := r.models[g]
		labels := make([]string, len(models))
		for i, m := range models {
			labels[i] = displayName(m.Name())
		}
		printGroup(w, g, labels)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Provision: %s\n", summary(r))
	if n := len(r.URLs()); n > 0 {
		fmt.Fprintf(w, "  Sources:   %d unique %s\n", n, pluralize("URL", n))
	}
	fmt.Fprintln(w)
}

func printGroup(w io.Writer, name string, labels []string) {
	fmt.Fprintf(w, "  %s (%d)\n", name, len(labels))
	for i, label := range labels {
		connector := "├── "
		if i == len(labels)-1 {
			connector = "└── "
		}
		fmt.Fprintf(w, "  %s%s\n", connector, label)
	}
}

func summary(r *Registry) string {
	counts := r.Counts()
	models := 0
	for g, n := range counts {
		if g != GroupCustomNodes && g != GroupCommands {
			models += n
		}
	}

	var parts []string
	if n := counts[GroupCustomNodes]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize("custom node", n)))
	}
	if n := counts[GroupCommands]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", n, pluralize("command", n)))
	}
	if models > 0 {
		parts = append(parts, fmt.Sprintf("%d %s in %d %s", models, pluralize("model", models),
			len(r.groupOrder), pluralize("folder", len(r.groupOrder))))
	}
	return strings.Join(parts, ", ")
}

func displayName(name string) string {
	if name == "" {
		return "(none)"
	}
	return name
}

// pluralize returns noun with an "s" appended unless n is 1.
func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
