package release

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "version-check.json"

// DefaultCacheMaxAge is how long a cached check stays fresh.
const DefaultCacheMaxAge = 24 * time.Hour

// LoadCache reads the last check result from dir.
// Returns nil, nil if no check has been cached yet.
func LoadCache(dir string) (*Result, error) {
	data, err := os.ReadFile(filepath.Join(dir, cacheFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &res, nil
}

// SaveCache writes res to dir.
func SaveCache(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale reports whether res is missing or older than maxAge at now.
func IsCacheStale(res *Result, maxAge time.Duration, now time.Time) bool {
	if res == nil {
		return true
	}
	return now.Sub(res.CheckedAt) > maxAge
}
