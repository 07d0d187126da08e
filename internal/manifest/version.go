package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/provis-labs/provis/internal/workflow"
)

// SupportedFormatVersions is the range of catalog format versions this
// build understands.
const SupportedFormatVersions = ">= 1.0.0, < 2.0.0"

var supportedFormats = mustConstraint(SupportedFormatVersions)

func mustConstraint(c string) *semver.Constraints {
	constraints, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraints
}

// CheckFormatVersion reports whether a catalog declaring version v can be
// loaded. An empty version means the current format.
func CheckFormatVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: invalid format_version %q: %v", workflow.ErrConfiguration, v, err)
	}
	if !supportedFormats.Check(ver) {
		return fmt.Errorf("%w: format_version %s is not supported (want %s)", workflow.ErrConfiguration, ver, SupportedFormatVersions)
	}
	return nil
}
