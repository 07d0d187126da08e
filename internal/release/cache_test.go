package release

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCache_Missing(t *testing.T) {
	res, err := LoadCache(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Error("expected nil result for missing cache")
	}
}

func TestSaveAndLoadCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	now := time.Now().Truncate(time.Second).UTC()
	if err := SaveCache(dir, &Result{Current: "1.1.0", Latest: "1.2.0", UpdateAvailable: true, CheckedAt: now}); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	loaded, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if loaded.Latest != "1.2.0" || loaded.Current != "1.1.0" || !loaded.UpdateAvailable {
		t.Errorf("loaded = %+v", loaded)
	}
	if !loaded.CheckedAt.Equal(now) {
		t.Errorf("CheckedAt = %v, want %v", loaded.CheckedAt, now)
	}
}

func TestLoadCache_Corrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("not json{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCache(dir); err == nil {
		t.Error("expected error for corrupted cache")
	}
}

func TestIsCacheStale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		res  *Result
		want bool
	}{
		{"nil", nil, true},
		{"fresh", &Result{CheckedAt: now.Add(-time.Hour)}, false},
		{"stale", &Result{CheckedAt: now.Add(-25 * time.Hour)}, true},
		{"boundary", &Result{CheckedAt: now.Add(-DefaultCacheMaxAge)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheStale(tt.res, DefaultCacheMaxAge, now); got != tt.want {
				t.Errorf("IsCacheStale = %v, want %v", got, tt.want)
			}
		})
	}
}
