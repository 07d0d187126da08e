package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/provis-labs/provis/internal/catalog"
	"github.com/provis-labs/provis/internal/config"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available workflows",
	Long:  `List the workflows in the built-in catalog and any catalog files, in selection order.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	addCatalogFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a catalog workflow for display.
type listEntry struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Nodes       int    `json:"nodes"`
	Models      int    `json:"models"`
	Commands    int    `json:"commands"`
	Source      string `json:"source"`
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("resolving settings: %w", err)
	}
	cat, err := loadCatalog(settings)
	if err != nil {
		return err
	}

	entries := listEntries(cat)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No workflows available.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func listEntries(cat *catalog.Catalog) []listEntry {
	var entries []listEntry
	for i, tag := range cat.Tags() {
		e, _ := cat.Entry(tag)
		entries = append(entries, listEntry{
			Index:       i + 1,
			Name:        tag,
			Description: e.Description,
			Nodes:       len(e.Workflow.Repos()),
			Models:      len(e.Workflow.Models()),
			Commands:    len(e.Workflow.Commands()),
			Source:      e.Source,
		})
	}
	return entries
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tWORKFLOW\tNODES\tMODELS\tCOMMANDS\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n", e.Index, e.Name, e.Nodes, e.Models, e.Commands, e.Source)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
