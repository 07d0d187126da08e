package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name          string // workflow name, e.g. "sdxl"
	Description   string
	FormatVersion string
	CLIName       string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Format   manifest.Format
	Warnings []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(name string) *ScaffoldData {
	return &ScaffoldData{
		Name:          name,
		Description:   fmt.Sprintf("%s workflow: %s", branding.DisplayName(), name),
		FormatVersion: manifest.CurrentFormatVersion,
		CLIName:       branding.CLIName(),
	}
}

// templateName returns the embedded template for a catalog format.
func templateName(format manifest.Format) string {
	return "scaffolds/catalog." + string(format) + ".tmpl"
}

// Generate writes a starter catalog to path. The format follows the file
// extension. An existing file is never overwritten.
func Generate(path string, data *ScaffoldData) (*Result, error) {
	format, err := manifest.FormatForPath(path)
	if err != nil {
		return nil, err
	}

	tmplBytes, err := fs.ReadFile(scaffoldFS, templateName(format))
	if err != nil {
		return nil, fmt.Errorf("template for %s not found: %w", format, err)
	}

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%s already exists; remove it first", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	result := &Result{Path: path, Format: format}

	// Validate the generated catalog against JSON Schema.
	valResult, valErr := manifest.ValidateFile(path)
	if valErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate catalog: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
