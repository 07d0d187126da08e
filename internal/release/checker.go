package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/provis-labs/provis/internal/branding"
)

const defaultAPIBase = "https://api.github.com"

// ErrNotFound is returned when the repository has no published release.
var ErrNotFound = errors.New("release not found")

// Release is the subset of a GitHub release the checker reads.
type Release struct {
	Tag       string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	HTMLURL   string    `json:"html_url"`
}

// Version returns the tag without its leading "v".
func (r *Release) Version() string {
	return strings.TrimPrefix(r.Tag, "v")
}

// Result is the outcome of a version check.
type Result struct {
	Current         string    `json:"current_version"`
	Latest          string    `json:"latest_version"`
	UpdateAvailable bool      `json:"update_available"`
	URL             string    `json:"url,omitempty"`
	CheckedAt       time.Time `json:"checked_at"`
	Cached          bool      `json:"-"`
}

// Checker compares the running version with the latest release.
type Checker struct {
	current    string
	apiBase    string
	repo       string
	cacheDir   string
	maxAge     time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets the client used for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) { ch.httpClient = c }
}

// WithAPIBase points the checker at another API host.
func WithAPIBase(base string) Option {
	return func(ch *Checker) { ch.apiBase = strings.TrimRight(base, "/") }
}

// WithCache enables the on-disk result cache in dir.
func WithCache(dir string, maxAge time.Duration) Option {
	return func(ch *Checker) {
		ch.cacheDir = dir
		ch.maxAge = maxAge
	}
}

// New creates a Checker for the given running version.
func New(current string, opts ...Option) *Checker {
	ch := &Checker{
		current:    current,
		apiBase:    defaultAPIBase,
		repo:       branding.GitHubRepo(),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// Check returns the comparison between the running version and the latest
// release. A fresh cached result is returned without a network request.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	if c.cacheDir != "" {
		cached, err := LoadCache(c.cacheDir)
		if err != nil {
			return nil, err
		}
		if !IsCacheStale(cached, c.maxAge, c.now()) && cached.Current == c.current {
			cached.Cached = true
			return cached, nil
		}
	}

	rel, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	newer, err := IsUpdateAvailable(c.current, rel.Version())
	if err != nil {
		return nil, err
	}
	res := &Result{
		Current:         c.current,
		Latest:          rel.Version(),
		UpdateAvailable: newer,
		URL:             rel.HTMLURL,
		CheckedAt:       c.now(),
	}
	if c.cacheDir != "" {
		if err := SaveCache(c.cacheDir, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Latest fetches the latest published release.
func (c *Checker) Latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-version-check")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", c.repo, ErrNotFound)
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	if rel.Tag == "" {
		return nil, fmt.Errorf("release has no tag")
	}
	return &rel, nil
}
