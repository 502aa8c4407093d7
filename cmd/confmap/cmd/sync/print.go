package sync

import (
	"fmt"
	"io"
	"sort"

	"github.com/agentstation/confmap/internal/cmd/alerts"
	"github.com/agentstation/confmap/internal/cmd/output"
	"github.com/agentstation/confmap/internal/cmd/table"
	"github.com/agentstation/confmap/pkg/reconciler"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// report is the structured form of a sync result.
type report struct {
	Summary    string                      `json:"summary" yaml:"summary"`
	DryRun     bool                        `json:"dry_run" yaml:"dry_run"`
	OutputPath string                      `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	CSVPath    string                      `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	Statistics reconciler.ResultStatistics `json:"statistics" yaml:"statistics"`
	Sources    []*pkgsync.SourceResult     `json:"sources" yaml:"sources"`
	Events     []reconciler.Event          `json:"events" yaml:"events"`
	Skipped    []reconciler.Skip           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func newReport(result *pkgsync.Result, showAll bool) report {
	r := report{
		Summary:    result.Summary(),
		DryRun:     result.DryRun,
		OutputPath: result.OutputPath,
		CSVPath:    result.CSVPath,
		Sources:    sortedSources(result),
	}
	if d := result.Details; d != nil {
		r.Statistics = d.Metadata.Stats
		r.Skipped = d.Skipped
		if showAll {
			r.Events = d.Events
		} else {
			r.Events = d.Conflicts()
		}
	}
	return r
}

func sortedSources(result *pkgsync.Result) []*pkgsync.SourceResult {
	out := make([]*pkgsync.SourceResult, 0, len(result.SourceResults))
	for _, sr := range result.SourceResults {
		out = append(out, sr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// printResult writes the statistics, conflicts and skips of a sync run.
func printResult(w io.Writer, formatName string, result *pkgsync.Result, showAll bool) error {
	format := output.DetectFormat(formatName)
	rep := newReport(result, showAll)
	if !format.IsTable() {
		return output.NewFormatter(format).Format(w, rep)
	}

	formatter := output.NewFormatter(format)
	fmt.Fprintf(w, "%s\n\n", rep.Summary)
	for _, sr := range rep.Sources {
		fmt.Fprintf(w, "  %s\n", sr.Summary())
	}
	fmt.Fprintln(w)

	if err := formatter.Format(w, table.StatisticsToTableData(rep.Statistics)); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := alerts.NewFormatWriter(w, format).WriteAlerts(alerts.ForResult(result.Details)); err != nil {
		return err
	}
	if len(rep.Events) > 0 {
		title := "Conflicts to review"
		if showAll {
			title = "Merge events"
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		if err := formatter.Format(w, table.EventsToTableData(rep.Events, true)); err != nil {
			return err
		}
	}
	if len(rep.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped:\n")
		if err := formatter.Format(w, table.SkipsToTableData(rep.Skipped)); err != nil {
			return err
		}
	}
	return nil
}
