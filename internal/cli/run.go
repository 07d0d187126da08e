package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/provis-labs/provis/internal/asset"
	"github.com/provis-labs/provis/internal/catalog"
	"github.com/provis-labs/provis/internal/config"
	"github.com/provis-labs/provis/internal/executor"
	"github.com/provis-labs/provis/internal/registry"
	"github.com/provis-labs/provis/internal/runner"
	"github.com/spf13/cobra"
)

var (
	runWorkflows []string
	runDryRun    bool
)

// newRunner builds the process runner for a run. Tests replace it with a
// recorder.
var newRunner = func(stdout, stderr io.Writer) runner.Runner {
	return &runner.ExecRunner{Stdout: stdout, Stderr: stderr}
}

var runCmd = &cobra.Command{
	Use:   "run [workflow...]",
	Short: "Provision the selected workflows",
	Long: `Merge the selected workflows into one deduplicated plan and execute it:
custom-node repositories first, then setup commands, then model downloads.

Workflows are named as arguments or with --workflows; "default" is used when
none are given. Unknown names are ignored. A failing step is reported and the
run continues, so a run can be repeated until it is clean.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringSliceVarP(&runWorkflows, "workflows", "w", nil, "Workflows to provision (comma-separated, see the list below)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the plan without running anything")
	addCatalogFlag(runCmd)
	rootCmd.AddCommand(runCmd)

	defaultHelp := runCmd.HelpFunc()
	runCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		printWorkflowHelp(cmd.OutOrStdout())
	})
}

// printWorkflowHelp appends the numbered workflow list to run's help. Help
// bypasses PersistentPreRunE, so configuration is loaded here.
func printWorkflowHelp(w io.Writer) {
	config.Load()
	settings, err := config.Resolve()
	var cat *catalog.Catalog
	if err == nil {
		cat, err = loadCatalog(settings)
	}
	if err != nil {
		slog.Debug("listing workflows for help", "error", err)
		if cat, err = catalog.Builtin(); err != nil {
			return
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Workflows:")
	fmt.Fprint(w, cat.HelpText())
}

func runRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	settings, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}

	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}

	selected, unknown := cat.Select(selectedTags(args, runWorkflows))
	for _, tag := range unknown {
		slog.Debug("ignoring unknown workflow", "workflow", tag)
	}

	reg := registry.New()
	for _, w := range selected {
		if err := w.Print(out); err != nil {
			return err
		}
		w.MergeInto(reg, out)
	}

	fmt.Fprintln(out)
	registry.PrintPlan(out, reg)
	if runDryRun {
		return nil
	}

	printBanner(out)
	fmt.Fprintln(out, "Starting provisioning...")

	env := &asset.Env{
		ModelsRoot:      settings.ModelsRoot,
		CustomNodesRoot: settings.CustomNodesRoot,
		Tools:           asset.Tools{Wget: settings.Wget, Git: settings.Git, Pip: settings.Pip},
		Credentials:     asset.Credentials{HuggingFace: settings.HFToken, Civitai: settings.CivitaiToken},
		Runner:          newRunner(out, cmd.ErrOrStderr()),
	}
	report := executor.New(env, out).Run(cmd.Context(), reg)
	executor.PrintSummary(out, report)

	fmt.Fprintln(out, "\nProvisioning complete")
	return nil
}

// selectedTags combines positional workflow names with --workflows values,
// falling back to the default workflow.
func selectedTags(args, flagValues []string) []string {
	var tags []string
	for _, v := range append(append([]string(nil), args...), flagValues...) {
		if v = strings.TrimSpace(v); v != "" {
			tags = append(tags, v)
		}
	}
	if len(tags) == 0 {
		return []string{catalog.DefaultWorkflow}
	}
	return tags
}

func printBanner(w io.Writer) {
	fmt.Fprint(w, `##############################################
#                                            #
#          Provisioning container            #
#                                            #
#         This will take some time           #
#                                            #
# Your container will be ready on completion #
#                                            #
##############################################
`)
}
