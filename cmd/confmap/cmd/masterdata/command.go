// Package masterdata provides the masterdata command group.
package masterdata

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/internal/cmd/table"
)

// NewCommand creates the masterdata command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "masterdata",
		GroupID: "management",
		Short:   "Maintain the curated master list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newUpdateCommand(app))
	return cmd
}

func newUpdateCommand(app appcontext.Interface) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Append a master for every dataset conference that has none",
		Long: `Update derives masters from the dataset: for every conference title that
has no master yet, the newest edition provides the full name, ranking,
subfield and h-index, and the title becomes the WikiCFP query. Existing
masters are never changed.`,
		Example: `  confmap masterdata update --dry-run`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			added, err := client.UpdateMasters(dryRun)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if len(added) == 0 {
				if format.IsTable() {
					fmt.Fprintln(cmd.OutOrStdout(), "Master list is up to date")
					return nil
				}
			}
			if format.IsTable() {
				verb := "Added"
				if dryRun {
					verb = "Would add"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d masters:\n", verb, len(added))
			}
			return output.Write(cmd.OutOrStdout(), format, added, table.MastersToTableData(added))
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the masters without saving them")
	return cmd
}
