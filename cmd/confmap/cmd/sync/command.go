// Package sync provides the sync command, which runs the reconciliation
// passes against WikiCFP, CORE and the deadline feed.
package sync

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap"
	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun         bool
	Sources        []string
	Titles         []string
	BatchStart     int
	BatchEnd       int
	Year           int
	Strategy       string
	Timeout        time.Duration
	OutputPath     string
	CSVPath        string
	ProvenancePath string
	ShowAll        bool
}

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile the dataset with all sources",
		Args:    cobra.NoArgs,
		Long: `Sync brings the conference dataset up to date by running three passes:

1. WikiCFP - every master conference is searched and the best candidate's
   detail page is merged into the dataset
2. CORE    - every deadline without a ranking is looked up in the CORE portal
3. Feed    - the rows of the third-party deadline feed are merged by id

Existing values are never overwritten. A differing incoming value is either
reported as a conflict (retain-existing) or appended as existing[incoming]
(bracket-append). The result is deduplicated, sorted by deadline and saved
as YAML and CSV.

WikiCFP allows one request every five seconds, so a full run over a few
hundred masters takes a long time; use --batch-start/--batch-end or
--titles to work through the list in parts.`,
		Example: `  confmap sync                              # Run every pass
  confmap sync --dry-run                    # Preview changes
  confmap sync --sources core,aideadlines   # Skip WikiCFP
  confmap sync --titles icml,neurips        # Only these masters
  confmap sync --batch-start 0 --batch-end 20
  confmap sync --strategy bracket-append`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, app.SyncDefaults())
			if err != nil {
				return err
			}
			return Execute(cmd, app, client, opts, flags.ShowAll)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Reconcile without writing any file")
	cmd.Flags().BoolVar(&flags.DryRun, "dry", false, "")
	_ = cmd.Flags().MarkHidden("dry")
	cmd.Flags().StringSliceVar(&flags.Sources, "sources", nil, "Passes to run: wikicfp, core, aideadlines (default all)")
	cmd.Flags().StringSliceVar(&flags.Titles, "titles", nil, "Restrict the WikiCFP pass to these master titles")
	cmd.Flags().IntVar(&flags.BatchStart, "batch-start", 0, "First master of the batch (inclusive)")
	cmd.Flags().IntVar(&flags.BatchEnd, "batch-end", 0, "End of the batch (exclusive, 0 means all)")
	cmd.Flags().IntVar(&flags.Year, "year", 0, "Year the match window is centered on (default current year)")
	cmd.Flags().StringVar(&flags.Strategy, "strategy", "", "Conflict strategy: retain-existing, bracket-append")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout for the whole run")
	cmd.Flags().StringVar(&flags.OutputPath, "output-path", "", "Where to save the YAML dataset")
	cmd.Flags().StringVar(&flags.CSVPath, "csv", "", "Where to export the CSV copy")
	cmd.Flags().StringVar(&flags.ProvenancePath, "provenance", "", "Append provenance history to this file")
	cmd.Flags().BoolVar(&flags.ShowAll, "all-events", false, "List every merge event, not only conflicts")

	return cmd
}

// options layers the changed flags over defaults.
func (f *Flags) options(cmd *cobra.Command, defaults []pkgsync.Option) ([]pkgsync.Option, error) {
	opts := append([]pkgsync.Option{}, defaults...)
	changed := cmd.Flags().Changed

	if f.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	if len(f.Sources) > 0 {
		ids, err := sources.ParseIDs(f.Sources...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pkgsync.WithSources(ids...))
	}
	if len(f.Titles) > 0 {
		opts = append(opts, pkgsync.WithTitles(f.Titles...))
	}
	if changed("batch-start") || changed("batch-end") {
		opts = append(opts, pkgsync.WithBatch(f.BatchStart, f.BatchEnd))
	}
	if f.Year != 0 {
		opts = append(opts, pkgsync.WithCurrentYear(f.Year))
	}
	if f.Strategy != "" {
		if _, err := reconciler.NewStrategy(reconciler.StrategyType(f.Strategy)); err != nil {
			return nil, err
		}
		opts = append(opts, pkgsync.WithStrategy(reconciler.StrategyType(f.Strategy)))
	}
	if changed("timeout") {
		opts = append(opts, pkgsync.WithTimeout(f.Timeout))
	}
	if f.OutputPath != "" {
		opts = append(opts, pkgsync.WithOutputPath(f.OutputPath))
	}
	if f.CSVPath != "" {
		opts = append(opts, pkgsync.WithCSVPath(f.CSVPath))
	}
	if f.ProvenancePath != "" {
		opts = append(opts, pkgsync.WithProvenancePath(f.ProvenancePath))
	}
	return opts, nil
}

// Execute runs the sync and prints its results.
func Execute(cmd *cobra.Command, app appcontext.Interface, client confmap.Client, opts []pkgsync.Option, showAll bool) error {
	logger := app.Logger()

	client.OnConflict(func(e reconciler.Event) {
		logger.Debug().Str("id", e.ID).Str("field", string(e.Field)).Msg("conflict left for review")
	})

	result, err := client.Sync(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	logger.Info().
		Int("changes", result.TotalChanges).
		Int("conflicts", result.Conflicts).
		Int("skipped", result.Skipped).
		Bool("dry_run", result.DryRun).
		Msg(result.Summary())

	return printResult(cmd.OutOrStdout(), app.OutputFormat(), result, showAll)
}
