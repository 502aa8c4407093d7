// Package cmdtest provides a throwaway dataset workspace and in-memory
// sources for command tests.
package cmdtest

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap"
	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/internal/persistence"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/sources"
)

// Workspace is a dataset laid out in a temporary directory.
type Workspace struct {
	Dir        string
	Data       string
	CSV        string
	Masters    string
	Candidates string

	WikiCFP *WikiCFP
	Core    *Core
	Feed    *Feed
}

// NewWorkspace writes masters and deadlines to a temporary directory.
func NewWorkspace(t *testing.T, masters []conferences.Master, deadlines []*conferences.Deadline) *Workspace {
	t.Helper()
	logging.DisableLoggingForTest(t)

	dir := t.TempDir()
	ws := &Workspace{
		Dir:        dir,
		Data:       filepath.Join(dir, "conferences.yml"),
		CSV:        filepath.Join(dir, "conferences.csv"),
		Masters:    filepath.Join(dir, "master_data.csv"),
		Candidates: filepath.Join(dir, "conferences_update_candidates.yml"),
		WikiCFP:    &WikiCFP{},
		Core:       &Core{},
		Feed:       &Feed{},
	}

	records := make([]conferences.Record, 0, len(masters))
	for _, m := range masters {
		records = append(records, m.Record())
	}
	if err := persistence.SaveCSV(ws.Masters, records); err != nil {
		t.Fatalf("save masters: %v", err)
	}
	ws.WriteDeadlines(t, ws.Data, deadlines)
	return ws
}

// WriteDeadlines saves deadlines as YAML at path.
func (ws *Workspace) WriteDeadlines(t *testing.T, path string, deadlines []*conferences.Deadline) {
	t.Helper()
	records := make([]conferences.Record, 0, len(deadlines))
	for _, d := range deadlines {
		records = append(records, d.Record())
	}
	if err := persistence.SaveYAML(path, records); err != nil {
		t.Fatalf("save deadlines: %v", err)
	}
}

// Client returns a client on the workspace files and in-memory sources.
func (ws *Workspace) Client(t *testing.T, opts ...confmap.Option) confmap.Client {
	t.Helper()
	base := []confmap.Option{
		confmap.WithMasterPath(ws.Masters),
		confmap.WithDataPath(ws.Data),
		confmap.WithCSVPath(ws.CSV),
		confmap.WithCandidatesPath(ws.Candidates),
		confmap.WithWikiCFP(ws.WikiCFP),
		confmap.WithCore(ws.Core),
		confmap.WithFeed(ws.Feed),
	}
	c, err := confmap.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

// App returns an app context backed by the workspace client.
func (ws *Workspace) App(t *testing.T, format string) *appcontext.Mock {
	t.Helper()
	c := ws.Client(t)
	return &appcontext.Mock{
		ClientFunc:        func() (confmap.Client, error) { return c, nil },
		OutputFormatValue: format,
	}
}

// Deadlines loads the dataset as the commands left it.
func (ws *Workspace) Deadlines(t *testing.T) []*conferences.Deadline {
	t.Helper()
	ds, err := ws.Client(t).Deadlines()
	if err != nil {
		t.Fatalf("load deadlines: %v", err)
	}
	return ds
}

// Run executes cmd with args and returns what it printed to stdout.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// WikiCFP serves candidates and detail pages from maps keyed by master
// title and candidate link.
type WikiCFP struct {
	Results map[string][]conferences.Candidate
	Details map[string]*conferences.Deadline
}

// ID implements sources.Source.
func (w *WikiCFP) ID() sources.ID { return sources.WikiCFPID }

// Candidates implements sources.CandidateSource.
func (w *WikiCFP) Candidates(_ context.Context, m conferences.Master) ([]conferences.Candidate, error) {
	return w.Results[m.Title], nil
}

// Deadline implements sources.CandidateSource.
func (w *WikiCFP) Deadline(_ context.Context, _ conferences.Master, c conferences.Candidate) (*conferences.Deadline, error) {
	d, ok := w.Details[c.Link]
	if !ok {
		return nil, errors.NewFetchError(string(sources.WikiCFPID), c.Link, 404, "not found")
	}
	return d.Clone(), nil
}

// Core serves ranking rows keyed by query.
type Core struct {
	Rows map[string][]conferences.Ranking
}

// ID implements sources.Source.
func (c *Core) ID() sources.ID { return sources.CoreID }

// Rankings implements sources.RankingSource.
func (c *Core) Rankings(_ context.Context, query string) ([]conferences.Ranking, error) {
	return c.Rows[query], nil
}

// Feed serves a fixed list of rows and row errors.
type Feed struct {
	Rows   []*conferences.Deadline
	Failed []sources.RowError
}

// ID implements sources.Source.
func (f *Feed) ID() sources.ID { return sources.AIDeadlinesID }

// Deadlines implements sources.FeedSource.
func (f *Feed) Deadlines(context.Context) ([]*conferences.Deadline, []sources.RowError, error) {
	out := make([]*conferences.Deadline, 0, len(f.Rows))
	for _, d := range f.Rows {
		out = append(out, d.Clone())
	}
	return out, f.Failed, nil
}
