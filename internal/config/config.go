package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/userdata"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyBaseDir         = "base_dir"
	KeyModelsRoot      = "models_root"
	KeyCustomNodesRoot = "custom_nodes_root"
	KeyWget            = "tools.wget"
	KeyGit             = "tools.git"
	KeyPip             = "tools.pip"
	KeyCatalogs        = "catalogs"
	KeyHFToken         = "hf_token"
	KeyCivitaiToken    = "civitai_token"
)

// Credential environment variables. These are not prefixed because hosted
// notebook templates already export them under these names.
const (
	EnvHFToken      = "HF_TOKEN"
	EnvCivitaiToken = "CIVITAI_TOKEN"
)

// Settings is the resolved configuration for a provisioning run.
type Settings struct {
	BaseDir         string
	ModelsRoot      string
	CustomNodesRoot string
	Wget            string
	Git             string
	Pip             string
	Catalogs        []string
	HFToken         string
	CivitaiToken    string
}

// Dir returns the path to the provis config directory (~/.provis/).
func Dir() string {
	dir, err := userdata.GetHomeRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return dir
}

// FilePath returns the full path to the config file (~/.provis/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyWget, "wget")
	viper.SetDefault(KeyGit, "git")
	viper.SetDefault(KeyPip, "pip")
	_ = viper.BindEnv(KeyHFToken, EnvHFToken)
	_ = viper.BindEnv(KeyCivitaiToken, EnvCivitaiToken)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Resolve builds Settings from the loaded configuration. Roots default to
// models/ and custom_nodes/ under base_dir, which itself defaults to the
// working directory. Tokens missing from the environment are looked up in
// tokens.env.
func Resolve() (*Settings, error) {
	base := viper.GetString(KeyBaseDir)
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory %s: %w", base, err)
	}

	s := &Settings{
		BaseDir:         base,
		ModelsRoot:      viper.GetString(KeyModelsRoot),
		CustomNodesRoot: viper.GetString(KeyCustomNodesRoot),
		Wget:            viper.GetString(KeyWget),
		Git:             viper.GetString(KeyGit),
		Pip:             viper.GetString(KeyPip),
		Catalogs:        viper.GetStringSlice(KeyCatalogs),
		HFToken:         viper.GetString(KeyHFToken),
		CivitaiToken:    viper.GetString(KeyCivitaiToken),
	}
	if s.ModelsRoot == "" {
		s.ModelsRoot = filepath.Join(base, "models")
	}
	if s.CustomNodesRoot == "" {
		s.CustomNodesRoot = filepath.Join(base, "custom_nodes")
	}

	if s.HFToken == "" || s.CivitaiToken == "" {
		tokens, err := userdata.LoadTokens()
		if err != nil {
			return nil, fmt.Errorf("loading tokens: %w", err)
		}
		if s.HFToken == "" {
			s.HFToken = tokens[EnvHFToken]
		}
		if s.CivitaiToken == "" {
			s.CivitaiToken = tokens[EnvCivitaiToken]
		}
	}

	return s, nil
}
