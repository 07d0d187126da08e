package userdata

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/platform"
)

// CheckHome validates the provis home directory and the permissions of the
// tokens.env file. When fix is true, it attempts to repair issues.
func CheckHome(w io.Writer, fix bool) error {
	root, err := GetHomeRoot()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Home check:")
	CheckDir(w, root, fix)

	tokensPath := filepath.Join(root, TokensEnvFile)
	info, err := os.Stat(tokensPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [INFO] %s not found (tokens are read from the environment only)\n", tokensPath)
		return nil
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", tokensPath, err)
		return nil
	}

	perm := info.Mode().Perm()
	if !platform.PermMatches(info, FilePermSecure) {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", tokensPath, perm, FilePermSecure)
		if fix {
			if chErr := platform.Chmod(tokensPath, FilePermSecure); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", tokensPath, chErr)
				return nil
			}
			fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", tokensPath, FilePermSecure)
		}
		return nil
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", tokensPath, perm)
	return nil
}

// CheckDir reports whether path exists and is a directory, creating it when
// fix is true.
func CheckDir(w io.Writer, path string, fix bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		} else {
			fmt.Fprintf(w, "         Run '%s doctor --fix' to create\n", branding.CLIName())
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}

// CheckTools reports which of the named executables are on PATH and returns
// the names that are missing.
func CheckTools(w io.Writer, tools []string) []string {
	fmt.Fprintln(w, "Tool check:")
	var missing []string
	for _, name := range tools {
		p, err := exec.LookPath(name)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s not found on PATH\n", name)
			missing = append(missing, name)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s (%s)\n", name, p)
	}
	return missing
}
