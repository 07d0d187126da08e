package cli

import (
	"fmt"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/config"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <workflow>",
	Short: "Show the entries of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	addCatalogFlag(showCmd)
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	settings, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}
	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}

	e, ok := cat.Entry(args[0])
	if !ok {
		return fmt.Errorf("unknown workflow %q (run '%s list' to see available workflows)", args[0], branding.CLIName())
	}

	out := cmd.OutOrStdout()
	if e.Description != "" {
		fmt.Fprintf(out, "%s\n", e.Description)
	}
	fmt.Fprintf(out, "Source: %s\n", e.Source)
	return e.Workflow.Print(out)
}
