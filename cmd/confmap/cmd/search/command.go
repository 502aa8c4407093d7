// Package search provides the search command, which scores the WikiCFP
// candidates of one conference without merging anything.
package search

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/internal/cmd/table"
	"github.com/agentstation/confmap/pkg/matching"
)

// NewCommand creates the search command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:     "search <title>",
		GroupID: "core",
		Short:   "Score the WikiCFP candidates of a conference",
		Long: `Search runs the WikiCFP lookup of a sync for a single conference and
prints every candidate with its match score. A title that has a master uses
the master's query and full name. Nothing is merged or saved.`,
		Example: `  confmap search icml
  confmap search neurips --year 2024 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().UTC().Year()
			}
			scored, err := client.Search(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			app.Logger().Debug().Str("title", args[0]).Int("candidates", len(scored)).Msg("search finished")
			return printScored(cmd.OutOrStdout(), app.OutputFormat(), scored)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year the match window is centered on (default current year)")
	return cmd
}

func printScored(w io.Writer, formatName string, scored []matching.Scored) error {
	format := output.DetectFormat(formatName)
	if len(scored) == 0 && format.IsTable() {
		_, err := fmt.Fprintln(w, "No candidates found")
		return err
	}
	return output.Write(w, format, scored, ToTableData(scored))
}

// ToTableData lists scored candidates; accepted ones are marked.
func ToTableData(scored []matching.Scored) table.Data {
	rows := make([][]string, 0, len(scored))
	for _, s := range scored {
		mark := ""
		if s.Accepted {
			mark = "✓"
		}
		rows = append(rows, []string{
			mark,
			s.Candidate.Title,
			s.Candidate.FullName,
			strconv.Itoa(s.Candidate.Year),
			strconv.FormatFloat(s.Score.Abbreviation, 'f', 2, 64),
			strconv.FormatFloat(s.Score.Name, 'f', 2, 64),
			strconv.FormatFloat(s.Score.Total, 'f', 2, 64),
			s.Candidate.Link,
		})
	}
	return table.Data{
		Headers: []string{"", "Title", "Full Name", "Year", "Abbr", "Name", "Total", "Link"},
		Rows:    rows,
		ColumnAlignment: []table.Align{
			table.AlignCenter,
			table.AlignLeft,
			table.AlignLeft,
			table.AlignRight,
			table.AlignRight,
			table.AlignRight,
			table.AlignRight,
			table.AlignLeft,
		},
	}
}
