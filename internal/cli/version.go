package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/config"
	"github.com/provis-labs/provis/internal/release"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck bool
)

// newReleaseChecker builds the checker behind version --check.
var newReleaseChecker = func(current string) *release.Checker {
	return release.New(current,
		release.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		release.WithCache(config.Dir(), release.DefaultCacheMaxAge))
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check whether a newer release is published")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionCheck {
			return checkForUpdate(cmd)
		}
		if versionShort {
			fmt.Fprintln(out, buildVersion)
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": buildVersion,
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		return nil
	},
}

func checkForUpdate(cmd *cobra.Command) error {
	res, err := newReleaseChecker(buildVersion).Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}
	out := cmd.OutOrStdout()
	if !res.UpdateAvailable {
		fmt.Fprintf(out, "%s %s is up to date (latest: %s)\n", branding.CLIName(), res.Current, res.Latest)
		return nil
	}
	fmt.Fprintf(out, "Update available: %s -> %s\n", res.Current, res.Latest)
	if res.URL != "" {
		fmt.Fprintf(out, "  %s\n", res.URL)
	}
	return nil
}
