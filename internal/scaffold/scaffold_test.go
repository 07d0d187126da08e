package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provis-labs/provis/internal/manifest"
)

func TestNewScaffoldData(t *testing.T) {
	d := NewScaffoldData("sdxl")
	if d.Name != "sdxl" {
		t.Errorf("Name = %q, want %q", d.Name, "sdxl")
	}
	if d.FormatVersion != manifest.CurrentFormatVersion {
		t.Errorf("FormatVersion = %q, want %q", d.FormatVersion, manifest.CurrentFormatVersion)
	}
	if !strings.Contains(d.Description, "sdxl") {
		t.Errorf("Description = %q, want it to mention the name", d.Description)
	}
}

// Every format produces a catalog that validates and loads.
func TestGenerate_AllFormats(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml", ".hcl"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", "starter"+ext)

			result, err := Generate(path, NewScaffoldData("starter"))
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			if len(result.Warnings) > 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}

			cf, err := manifest.ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile() error: %v", err)
			}
			ws, err := cf.Build()
			if err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if len(ws) != 1 || ws[0].Tag() != "starter" {
				t.Fatalf("workflows = %v, want one named starter", ws)
			}
			if len(ws[0].Repos()) != 1 || len(ws[0].Models()) != 1 || len(ws[0].Commands()) != 1 {
				t.Errorf("unexpected entry counts: %d repos, %d models, %d commands",
					len(ws[0].Repos()), len(ws[0].Models()), len(ws[0].Commands()))
			}
		})
	}
}

func TestGenerate_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.yaml")
	if err := os.WriteFile(path, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(path, NewScaffoldData("x")); err == nil {
		t.Fatal("expected error for existing file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep me" {
		t.Errorf("existing file was modified: %q", data)
	}
}

func TestGenerate_UnsupportedExtension(t *testing.T) {
	if _, err := Generate(filepath.Join(t.TempDir(), "c.json"), NewScaffoldData("x")); err == nil {
		t.Fatal("expected error for .json")
	}
}
