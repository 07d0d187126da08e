package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/provis-labs/provis/internal/workflow"
	"go.yaml.in/yaml/v3"
)

// ErrEmptyCatalog is returned for a catalog file that declares nothing.
var ErrEmptyCatalog = fmt.Errorf("%w: catalog file is empty", workflow.ErrConfiguration)

// FormatForPath detects the catalog format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported catalog file extension %q in %s (want .yaml, .yml, .toml or .hcl)", filepath.Ext(path), path)
	}
}

// ParseFile reads a catalog file, detects its format from the extension and
// returns the decoded catalog. The format version is checked; schema
// validation is separate (see ValidateFile).
func ParseFile(path string) (*CatalogFile, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format, path)
}

// Parse decodes catalog data in the given format. name is used in error
// messages and HCL diagnostics.
func Parse(data []byte, format Format, name string) (*CatalogFile, error) {
	var (
		cf  *CatalogFile
		err error
	)
	switch format {
	case FormatYAML:
		cf, err = decodeYAML(data)
	case FormatTOML:
		cf, err = decodeTOML(data)
	case FormatHCL:
		cf, err = decodeHCL(data, name)
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", name, err)
	}
	if cf.FormatVersion == "" && len(cf.Workflows) == 0 {
		return nil, fmt.Errorf("catalog %s: %w", name, ErrEmptyCatalog)
	}

	if err := CheckFormatVersion(cf.FormatVersion); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	return cf, nil
}

func decodeYAML(data []byte) (*CatalogFile, error) {
	var cf CatalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, err
	}
	return &cf, nil
}

func decodeTOML(data []byte) (*CatalogFile, error) {
	var cf CatalogFile
	md, err := toml.Decode(string(data), &cf)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return &cf, nil
}

// hclCatalogFile is the block layout of an HCL catalog:
//
//	format_version = "1.0.0"
//	workflow "flux" {
//	  model { ... }
//	  node { ... }
//	  commands = [...]
//	}
type hclCatalogFile struct {
	FormatVersion string         `hcl:"format_version,optional"`
	Workflows     []*hclWorkflow `hcl:"workflow,block"`
}

type hclWorkflow struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Models      []*hclModel `hcl:"model,block"`
	Nodes       []*hclNode  `hcl:"node,block"`
	Commands    []string    `hcl:"commands,optional"`
}

type hclModel struct {
	Folder string `hcl:"folder"`
	URL    string `hcl:"url"`
	Name   string `hcl:"name,optional"`
}

type hclNode struct {
	URL      string   `hcl:"url"`
	Commands []string `hcl:"commands,optional"`
}

func decodeHCL(data []byte, filename string) (*CatalogFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var parsed hclCatalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, diags
	}

	cf := &CatalogFile{FormatVersion: parsed.FormatVersion}
	for _, w := range parsed.Workflows {
		spec := WorkflowSpec{
			Name:        w.Name,
			Description: w.Description,
			Commands:    lineSpecs(w.Commands),
		}
		for _, m := range w.Models {
			spec.Models = append(spec.Models, ModelSpec{Folder: m.Folder, URL: m.URL, Name: m.Name})
		}
		for _, n := range w.Nodes {
			spec.Nodes = append(spec.Nodes, NodeSpec{URL: n.URL, Commands: lineSpecs(n.Commands)})
		}
		cf.Workflows = append(cf.Workflows, spec)
	}
	return cf, nil
}

func lineSpecs(lines []string) []CommandSpec {
	if len(lines) == 0 {
		return nil
	}
	specs := make([]CommandSpec, len(lines))
	for i, l := range lines {
		specs[i] = CommandSpec{Line: l}
	}
	return specs
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
