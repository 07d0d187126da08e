package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// PermMatches reports whether info carries exactly the permission bits want.
// Always true on Windows.
func PermMatches(info fs.FileInfo, want os.FileMode) bool {
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm() == want.Perm()
}
