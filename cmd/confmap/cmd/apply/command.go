// Package apply provides the apply command, which merges curator-reviewed
// update candidates into the dataset.
package apply

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/cmd/alerts"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/internal/cmd/table"
)

// NewCommand creates the apply command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "apply [candidates-file]",
		GroupID: "management",
		Short:   "Fill missing fields from reviewed update candidates",
		Long: `Apply reads a YAML file of deadlines a curator has reviewed and merges
each one into the dataset entry with the same id. Only missing, empty or TBA
fields are filled; differing values are reported as conflicts. Candidates
whose id is not in the dataset are reported as skipped.

Without an argument the configured candidates file is used.`,
		Example: `  confmap apply
  confmap apply _data/conferences_update_candidates.yml --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			result, err := client.ApplyUpdateCandidates(path, dryRun)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if !format.IsTable() {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), struct {
					Summary string `json:"summary" yaml:"summary"`
					Events  any    `json:"events" yaml:"events"`
					Skipped any    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
				}{result.Summary(), result.Events, result.Skipped})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, result.Summary())
			if err := alerts.NewFormatWriter(w, format).WriteAlerts(alerts.ForResult(result)); err != nil {
				return err
			}
			formatter := output.NewFormatter(format)
			if len(result.Events) > 0 {
				fmt.Fprintln(w)
				if err := formatter.Format(w, table.EventsToTableData(result.Events, true)); err != nil {
					return err
				}
			}
			if len(result.Skipped) > 0 {
				fmt.Fprintf(w, "\nSkipped:\n")
				return formatter.Format(w, table.SkipsToTableData(result.Skipped))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without saving them")
	return cmd
}
