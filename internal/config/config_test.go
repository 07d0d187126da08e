package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func setupConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("PROVIS_HOME", home)
	t.Setenv(EnvHFToken, "")
	t.Setenv(EnvCivitaiToken, "")
	viper.Reset()
	t.Cleanup(viper.Reset)
	Load()
	return home
}

func TestResolve_Defaults(t *testing.T) {
	setupConfig(t)
	base := t.TempDir()
	viper.Set(KeyBaseDir, base)

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.ModelsRoot != filepath.Join(base, "models") {
		t.Errorf("ModelsRoot = %q, want %q", s.ModelsRoot, filepath.Join(base, "models"))
	}
	if s.CustomNodesRoot != filepath.Join(base, "custom_nodes") {
		t.Errorf("CustomNodesRoot = %q", s.CustomNodesRoot)
	}
	if s.Wget != "wget" || s.Git != "git" || s.Pip != "pip" {
		t.Errorf("tools = %q %q %q, want wget git pip", s.Wget, s.Git, s.Pip)
	}
	if s.HFToken != "" || s.CivitaiToken != "" {
		t.Errorf("expected no tokens, got %q %q", s.HFToken, s.CivitaiToken)
	}
}

func TestResolve_TokensFromEnv(t *testing.T) {
	setupConfig(t)
	t.Setenv(EnvHFToken, "hf_env")
	t.Setenv(EnvCivitaiToken, "civ_env")

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.HFToken != "hf_env" {
		t.Errorf("HFToken = %q, want hf_env", s.HFToken)
	}
	if s.CivitaiToken != "civ_env" {
		t.Errorf("CivitaiToken = %q, want civ_env", s.CivitaiToken)
	}
}

func TestResolve_TokensFromFile(t *testing.T) {
	home := setupConfig(t)
	if err := os.WriteFile(filepath.Join(home, "tokens.env"), []byte("HF_TOKEN=hf_file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvCivitaiToken, "civ_env")

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.HFToken != "hf_file" {
		t.Errorf("HFToken = %q, want hf_file", s.HFToken)
	}
	if s.CivitaiToken != "civ_env" {
		t.Errorf("CivitaiToken = %q, want civ_env", s.CivitaiToken)
	}
}

func TestSetAndGet(t *testing.T) {
	home := setupConfig(t)

	if err := Set(KeyModelsRoot, "/data/models"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(KeyModelsRoot); got != "/data/models" {
		t.Errorf("Get = %q, want /data/models", got)
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestResolve_ToolsFromEnv(t *testing.T) {
	setupConfig(t)
	t.Setenv("PROVIS_TOOLS_WGET", "/opt/wget2")
	t.Setenv("PROVIS_MODELS_ROOT", "/data/models")

	s, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Wget != "/opt/wget2" {
		t.Errorf("Wget = %q, want /opt/wget2", s.Wget)
	}
	if s.ModelsRoot != "/data/models" {
		t.Errorf("ModelsRoot = %q, want /data/models", s.ModelsRoot)
	}
}
