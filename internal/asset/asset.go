package asset

import (
	"context"
	"net/url"

	"github.com/provis-labs/provis/internal/runner"
)

// Kind discriminates the Entry variants.
type Kind string

const (
	KindModel Kind = "model"
	KindRepo  Kind = "repo"
)

// CustomNodesGroup is the group every repository entry belongs to.
const CustomNodesGroup = "custom_nodes"

// Status is the outcome of materializing one entry.
type Status int

const (
	StatusDone Status = iota
	// StatusSkipped means there was nothing to do (empty source URL).
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is a declared remote asset.
type Entry interface {
	Kind() Kind
	// Group is the destination category, e.g. "checkpoints" or "custom_nodes".
	Group() string
	// SourceURL identifies the entry for deduplication. Empty means no-op.
	SourceURL() string
	WorkflowTag() string
	SetWorkflowTag(tag string)
	// Name is a short label for progress output.
	Name() string
	Materialize(ctx context.Context, env *Env) (Status, error)
}

// Tools names the external programs used during materialization.
type Tools struct {
	Wget string
	Git  string
	Pip  string
}

// Env carries everything Materialize needs from the outside world.
type Env struct {
	ModelsRoot      string
	CustomNodesRoot string
	Tools           Tools
	Credentials     Credentials
	Runner          runner.Runner
}

func (e *Env) wget() string { return orDefault(e.Tools.Wget, "wget") }
func (e *Env) git() string  { return orDefault(e.Tools.Git, "git") }
func (e *Env) pip() string  { return orDefault(e.Tools.Pip, "pip") }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Well-known hosts that accept bearer tokens.
const (
	HuggingFaceHost = "huggingface.co"
	CivitaiHost     = "civitai.com"
)

// Credentials holds optional bearer tokens for the well-known hosts.
type Credentials struct {
	HuggingFace string
	Civitai     string
}

// TokenFor returns the token to send for sourceURL, or "" when no token is
// configured or the URL is not https on exactly a well-known host.
func (c Credentials) TokenFor(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return ""
	}
	switch u.Hostname() {
	case HuggingFaceHost:
		return c.HuggingFace
	case CivitaiHost:
		return c.Civitai
	default:
		return ""
	}
}
