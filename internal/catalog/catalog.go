package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/provis-labs/provis/internal/manifest"
	"github.com/provis-labs/provis/internal/workflow"
)

//go:embed builtin.yaml
var builtinData []byte

// BuiltinSource is the Source of workflows that ship with the binary.
const BuiltinSource = "builtin"

// DefaultWorkflow is selected when a run names no workflows.
const DefaultWorkflow = "default"

// Catalog is an ordered set of workflows keyed by tag.
type Catalog struct {
	order   []string
	entries map[string]*Entry
}

// Entry is a workflow together with where it was declared.
type Entry struct {
	Workflow    *workflow.Workflow
	Description string
	Source      string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// Builtin returns a fresh copy of the built-in catalog. Workflows are
// mutable, so every call decodes its own instances.
func Builtin() (*Catalog, error) {
	c := New()
	if err := c.load(builtinData, manifest.FormatYAML, BuiltinSource); err != nil {
		return nil, fmt.Errorf("loading builtin catalog: %w", err)
	}
	return c, nil
}

// Load returns the built-in catalog with each file applied in order.
func Load(files ...string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := c.LoadFile(f); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile adds every workflow declared in a catalog file. A workflow whose
// tag is already present replaces the earlier one in place.
func (c *Catalog) LoadFile(path string) error {
	format, err := manifest.FormatForPath(path)
	if err != nil {
		return err
	}
	cf, err := manifest.ParseFile(path)
	if err != nil {
		return err
	}
	slog.Debug("loaded catalog file", "path", path, "format", format, "workflows", len(cf.Workflows))
	return c.addFile(cf, path)
}

func (c *Catalog) load(data []byte, format manifest.Format, source string) error {
	cf, err := manifest.Parse(data, format, source)
	if err != nil {
		return err
	}
	return c.addFile(cf, source)
}

func (c *Catalog) addFile(cf *manifest.CatalogFile, source string) error {
	ws, err := cf.Build()
	if err != nil {
		return fmt.Errorf("catalog %s: %w", source, err)
	}
	for i, w := range ws {
		c.Add(&Entry{Workflow: w, Description: cf.Workflows[i].Description, Source: source})
	}
	return nil
}

// Add inserts e, replacing any entry with the same tag without changing its
// position.
func (c *Catalog) Add(e *Entry) {
	tag := e.Workflow.Tag()
	if prev, ok := c.entries[tag]; ok {
		slog.Debug("workflow overridden", "workflow", tag, "from", prev.Source, "to", e.Source)
	} else {
		c.order = append(c.order, tag)
	}
	c.entries[tag] = e
}

// Get returns the workflow for tag.
func (c *Catalog) Get(tag string) (*workflow.Workflow, bool) {
	e, ok := c.entries[tag]
	if !ok {
		return nil, false
	}
	return e.Workflow, true
}

// Entry returns the catalog entry for tag.
func (c *Catalog) Entry(tag string) (*Entry, bool) {
	e, ok := c.entries[tag]
	return e, ok
}

// Tags returns the workflow tags in declaration order.
func (c *Catalog) Tags() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of workflows.
func (c *Catalog) Len() int { return len(c.order) }

// Select resolves tags to workflows in the order given. Unknown tags are
// returned separately and otherwise ignored. A tag named twice is selected
// twice; merging it again only produces duplicate notices.
func (c *Catalog) Select(tags []string) (selected []*workflow.Workflow, unknown []string) {
	for _, tag := range tags {
		if w, ok := c.Get(tag); ok {
			selected = append(selected, w)
		} else {
			unknown = append(unknown, tag)
		}
	}
	return selected, unknown
}

// HelpText returns the numbered list of workflow tags, one per line.
func (c *Catalog) HelpText() string {
	var b strings.Builder
	for i, tag := range c.order {
		fmt.Fprintf(&b, "%d: %s\n", i+1, tag)
	}
	return b.String()
}
