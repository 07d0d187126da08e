package cli

import (
	"fmt"
	"io"

	"github.com/provis-labs/provis/internal/config"
	"github.com/provis-labs/provis/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and fix tokens.env permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the provisioning environment",
	Long: `Run diagnostic checks: the transfer, clone and install tools on PATH,
download credentials, the provis home directory, the target directories and
any configured catalog files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		settings, err := config.Resolve()
		if err != nil {
			return fmt.Errorf("resolving settings: %w", err)
		}

		missing := userdata.CheckTools(out, []string{settings.Wget, settings.Git, settings.Pip})
		checkCredentials(out, settings)

		if err := userdata.CheckHome(out, doctorFix); err != nil {
			fmt.Fprintf(out, "[WARN] Could not check home directory: %v\n", err)
		}

		fmt.Fprintln(out, "Target check:")
		userdata.CheckDir(out, settings.ModelsRoot, doctorFix)
		userdata.CheckDir(out, settings.CustomNodesRoot, doctorFix)

		files, err := catalogFiles(settings, nil)
		if err != nil {
			fmt.Fprintf(out, "[WARN] Could not list catalog files: %v\n", err)
		}
		for _, f := range files {
			validateCatalogFile(cmd, f)
		}

		if len(missing) > 0 {
			fmt.Fprintf(out, "\n%d required tool(s) missing; affected steps will fail during a run.\n", len(missing))
		}
		return nil
	},
}

func checkCredentials(w io.Writer, settings *config.Settings) {
	fmt.Fprintln(w, "Credential check:")
	credentials := []struct {
		env, value, host string
	}{
		{config.EnvHFToken, settings.HFToken, "huggingface.co"},
		{config.EnvCivitaiToken, settings.CivitaiToken, "civitai.com"},
	}
	for _, c := range credentials {
		if c.value == "" {
			fmt.Fprintf(w, "  [INFO] %s not set (%s downloads are unauthenticated)\n", c.env, c.host)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s = %s\n", c.env, userdata.RedactValue(c.env, c.value))
	}
}
