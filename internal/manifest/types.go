package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format identifies the syntax of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// CurrentFormatVersion is written by tools that generate catalog files.
const CurrentFormatVersion = "1.0.0"

// CatalogFile is the decoded form of a catalog file.
type CatalogFile struct {
	FormatVersion string         `yaml:"format_version,omitempty" toml:"format_version" json:"format_version,omitempty"`
	Workflows     []WorkflowSpec `yaml:"workflows" toml:"workflows" json:"workflows"`
}

// WorkflowSpec declares one named workflow.
type WorkflowSpec struct {
	Name        string        `yaml:"name" toml:"name" json:"name"`
	Description string        `yaml:"description,omitempty" toml:"description" json:"description,omitempty"`
	Models      []ModelSpec   `yaml:"models,omitempty" toml:"models" json:"models,omitempty"`
	Nodes       []NodeSpec    `yaml:"nodes,omitempty" toml:"nodes" json:"nodes,omitempty"`
	Commands    []CommandSpec `yaml:"commands,omitempty" toml:"commands" json:"commands,omitempty"`
}

// ModelSpec declares a file to download into a models subfolder.
type ModelSpec struct {
	Folder string `yaml:"folder" toml:"folder" json:"folder"`
	URL    string `yaml:"url" toml:"url" json:"url"`
	Name   string `yaml:"name,omitempty" toml:"name" json:"name,omitempty"`
}

// NodeSpec declares a custom-node repository and the commands to run after
// cloning it.
type NodeSpec struct {
	URL      string        `yaml:"url" toml:"url" json:"url"`
	Commands []CommandSpec `yaml:"commands,omitempty" toml:"commands" json:"commands,omitempty"`
}

// CommandSpec is either a shell-style command line or an explicit argv list.
type CommandSpec struct {
	Line string
	Argv []string
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (c *CommandSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		c.Line = node.Value
		return nil
	case yaml.SequenceNode:
		return node.Decode(&c.Argv)
	default:
		return fmt.Errorf("line %d: command must be a string or a list of strings", node.Line)
	}
}

// UnmarshalTOML accepts a string or an array of strings.
func (c *CommandSpec) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		c.Line = val
		return nil
	case []any:
		argv := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("command argument %v is not a string", item)
			}
			argv = append(argv, s)
		}
		c.Argv = argv
		return nil
	default:
		return fmt.Errorf("command must be a string or an array of strings, got %T", v)
	}
}

// MarshalJSON renders the command in the form it was declared.
func (c CommandSpec) MarshalJSON() ([]byte, error) {
	if c.Argv != nil {
		return json.Marshal(c.Argv)
	}
	return json.Marshal(c.Line)
}

func (c CommandSpec) String() string {
	if c.Argv != nil {
		return strings.Join(c.Argv, " ")
	}
	return c.Line
}
