// Package list provides the list command and its subcommands.
package list

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/internal/cmd/table"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/provenance"
)

// Flags holds the filters shared by the list subcommands.
type Flags struct {
	Search string
	Sub    string
	Limit  int
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "Only entries whose title or full name contains this text")
	cmd.Flags().StringVar(&flags.Sub, "sub", "", "Only entries of this subfield, e.g. ML")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Maximum number of entries (0 means all)")
	return flags
}

// NewCommand creates the list command. Without a subcommand it lists deadlines.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List deadlines, masters or provenance",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		Example: `  confmap list                       # Deadlines in dataset order
  confmap list --search robot -o wide
  confmap list masters --sub ML
  confmap list provenance icml25`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listDeadlines(cmd, app, flags)
		},
	}
	flags = addFlags(cmd)

	cmd.AddCommand(newDeadlinesCommand(app))
	cmd.AddCommand(newMastersCommand(app))
	cmd.AddCommand(newProvenanceCommand(app))
	return cmd
}

func newDeadlinesCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags
	cmd := &cobra.Command{
		Use:     "deadlines",
		Short:   "List deadlines of the dataset",
		Aliases: []string{"deadline", "conferences"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listDeadlines(cmd, app, flags)
		},
	}
	flags = addFlags(cmd)
	return cmd
}

func newMastersCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags
	cmd := &cobra.Command{
		Use:     "masters",
		Short:   "List the curated master conferences",
		Aliases: []string{"master"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			masters, err := client.Masters()
			if err != nil {
				return err
			}

			var filtered []conferences.Master
			for _, m := range masters {
				if flags.matches(m.Title, m.FullName, m.Sub) {
					filtered = append(filtered, m)
				}
			}
			filtered = limit(filtered, flags.Limit)

			app.Logger().Debug().Msgf("Found %d masters", len(filtered))
			return output.Write(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				filtered, table.MastersToTableData(filtered))
		},
	}
	flags = addFlags(cmd)
	return cmd
}

func newProvenanceCommand(app appcontext.Interface) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "provenance <id>",
		Short: "Show which source contributed each field of a deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pf, err := provenance.Load(path)
			if err != nil {
				return err
			}
			if pf == nil {
				return errors.NewNotFoundError("provenance file", path)
			}
			byField := ForID(pf.Provenance, args[0])
			if len(byField) == 0 {
				return errors.NewNotFoundError("provenance", args[0])
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, byField, table.ProvenanceToTableData(byField, time.Now()))
		},
	}
	cmd.Flags().StringVar(&path, "file", constants.DefaultProvenancePath, "Provenance file written by sync --provenance")
	return cmd
}

// ForID extracts the history of one deadline from m, keyed by field.
func ForID(m provenance.Map, id string) map[string][]provenance.Provenance {
	prefix := strings.ToLower(id) + ":"
	out := make(map[string][]provenance.Provenance)
	for key, history := range m {
		if field, ok := strings.CutPrefix(key, prefix); ok {
			out[field] = history
		}
	}
	return out
}

func listDeadlines(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	deadlines, err := client.Deadlines()
	if err != nil {
		return err
	}

	var filtered []*conferences.Deadline
	for _, d := range deadlines {
		if flags.matches(d.Title, d.FullName, d.Sub) {
			filtered = append(filtered, d)
		}
	}
	filtered = limit(filtered, flags.Limit)

	app.Logger().Debug().Msgf("Found %d deadlines", len(filtered))
	return output.Deadlines(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), filtered)
}

func (f *Flags) matches(title, fullName, sub string) bool {
	if f.Sub != "" && !strings.EqualFold(f.Sub, sub) {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(title), needle) ||
		strings.Contains(strings.ToLower(fullName), needle)
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
