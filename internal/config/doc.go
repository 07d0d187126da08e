// Package config manages user-level settings stored at ~/.provis/config.yaml.
// Values can be overridden with PROVIS_-prefixed environment variables; the
// two download credentials are read from HF_TOKEN and CIVITAI_TOKEN, falling
// back to ~/.provis/tokens.env.
package config
