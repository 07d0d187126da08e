package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/provis-labs/provis/internal/branding"
	"github.com/provis-labs/provis/internal/catalog"
	"github.com/provis-labs/provis/internal/config"
	"github.com/provis-labs/provis/internal/manifest"
	"github.com/provis-labs/provis/internal/scaffold"
	"github.com/provis-labs/provis/internal/userdata"
	"github.com/spf13/cobra"
)

// catalogFlags are the --catalog values shared by run, list and show.
var catalogFlags []string

func addCatalogFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&catalogFlags, "catalog", nil, "Extra catalog file (.yaml, .toml, .hcl); can be repeated")
}

var catalogNewName string

func init() {
	catalogNewCmd.Flags().StringVar(&catalogNewName, "name", "", "Workflow name (defaults to the file name)")
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogNewCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with catalog files",
	Long: `Catalog files declare workflows in YAML, TOML or HCL. They are read from
~/.provis/catalogs/, from the "catalogs" config key, and from --catalog flags,
in that order. A workflow in a file replaces the built-in workflow of the
same name.`,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate catalog files against the catalog schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			if !validateCatalogFile(cmd, path) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d catalog file(s) failed validation", failed, len(args))
		}
		return nil
	},
}

var catalogNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write a starter catalog file (.yaml, .toml or .hcl)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		name := catalogNewName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		result, err := scaffold.Generate(path, scaffold.NewScaffoldData(name))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s catalog %s with workflow %q\n", result.Format, result.Path, name)
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  [WARN] %s\n", w)
		}
		fmt.Fprintf(out, "Run '%s run %s --catalog %s' to provision it.\n", branding.CLIName(), name, result.Path)
		return nil
	},
}

// validateCatalogFile checks the schema first, then builds the workflows so
// that command syntax and format version problems are reported too.
func validateCatalogFile(cmd *cobra.Command, path string) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Catalog validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
		return false
	}

	cf, err := manifest.ParseFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}
	ws, err := cf.Build()
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return false
	}

	version := cf.FormatVersion
	if version == "" {
		version = manifest.CurrentFormatVersion
	}
	fmt.Fprintf(out, "  [ OK ] Valid catalog (format %s): %d workflow(s)\n", version, len(ws))
	return true
}

// catalogFiles lists the catalog files to apply on top of the built-in
// catalog: the user catalogs directory, then configured files, then flags.
func catalogFiles(settings *config.Settings, flags []string) ([]string, error) {
	dir, err := userdata.GetCatalogsDir()
	if err != nil {
		return nil, err
	}
	files, err := userdata.ListCatalogFiles(dir)
	if err != nil {
		return nil, err
	}
	files = append(files, settings.Catalogs...)
	files = append(files, flags...)
	return files, nil
}

// loadCatalog returns the built-in catalog with every catalog file applied.
func loadCatalog(settings *config.Settings) (*catalog.Catalog, error) {
	files, err := catalogFiles(settings, catalogFlags)
	if err != nil {
		return nil, err
	}
	slog.Debug("loading catalog", "files", files)
	return catalog.Load(files...)
}
