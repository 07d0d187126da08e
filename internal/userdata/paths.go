package userdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provis-labs/provis/internal/branding"
)

// Directory and file name constants for the ~/.provis layout.
const (
	TokensEnvFile = "tokens.env"
	ConfigFile    = "config.yaml"
	CatalogsDir   = "catalogs"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// GetHomeRoot returns the path to the provis home directory.
// It checks the PROVIS_HOME environment variable first,
// then falls back to ~/.provis.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetTokensEnvPath returns the path to the tokens.env credentials file.
func GetTokensEnvPath() (string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, TokensEnvFile), nil
}

// GetCatalogsDir returns the directory scanned for user catalog files.
func GetCatalogsDir() (string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CatalogsDir), nil
}

// catalogExtensions are the file extensions picked up from the catalogs
// directory.
var catalogExtensions = map[string]bool{".yaml": true, ".yml": true, ".toml": true, ".hcl": true}

// ListCatalogFiles returns the catalog files in dir sorted by name. Hidden
// files and subdirectories are skipped. A missing directory yields no files.
func ListCatalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalogs directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if catalogExtensions[strings.ToLower(filepath.Ext(name))] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
