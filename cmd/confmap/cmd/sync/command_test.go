package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/internal/cmd/cmdtest"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/sources"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

func newWorkspace(t *testing.T) *cmdtest.Workspace {
	t.Helper()
	ws := cmdtest.NewWorkspace(t,
		[]conferences.Master{{Title: "icml", FullName: "International Conference on Machine Learning"}},
		[]*conferences.Deadline{{Title: "ICML", Year: 2025, ID: "icml25", Deadline: "TBA", Place: "Vienna, Austria"}},
	)
	ws.WikiCFP.Results = map[string][]conferences.Candidate{
		"icml": {{Title: "ICML 2025", FullName: "International Conference on Machine Learning", Year: 2025, Link: "cfp/icml"}},
	}
	ws.WikiCFP.Details = map[string]*conferences.Deadline{
		"cfp/icml": {Title: "ICML", Year: 2025, ID: "icml25", Deadline: "2025/1/23 23:59", Place: "Vancouver, Canada"},
	}
	ws.Core.Rows = map[string][]conferences.Ranking{
		"ICML": {{Title: "International Conference on Machine Learning", Acronym: "ICML", Rank: "A*", Link: "http://core/icml"}},
	}
	ws.Feed.Rows = []*conferences.Deadline{
		{Title: "CVPR", Year: 2025, ID: "cvpr25", Deadline: "2025/11/14 23:59"},
	}
	return ws
}

func TestSyncCommand(t *testing.T) {
	ws := newWorkspace(t)
	app := ws.App(t, "json")

	out, err := cmdtest.Run(t, NewCommand(app), "--year", "2025")
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.False(t, rep.DryRun)
	assert.Equal(t, 1, rep.Statistics.Created)
	require.Len(t, rep.Events, 1, "only the place conflict is listed")
	assert.Equal(t, conferences.FieldPlace, rep.Events[0].Field)
	assert.Equal(t, "Vienna, Austria", rep.Events[0].Existing)

	got := ws.Deadlines(t)
	require.Len(t, got, 2)
	assert.Equal(t, "icml25", got[0].ID)
	assert.Equal(t, "2025/1/23 23:59", got[0].Deadline)
	assert.Equal(t, "A*", got[0].Ranking)
	assert.Equal(t, "cvpr25", got[1].ID)

	_, err = os.Stat(ws.CSV)
	assert.NoError(t, err, "CSV export is written")
}

func TestSyncCommandDryRun(t *testing.T) {
	ws := newWorkspace(t)
	before, err := os.ReadFile(ws.Data)
	require.NoError(t, err)

	out, err := cmdtest.Run(t, NewCommand(ws.App(t, "table")), "--dry-run", "--year", "2025", "--sources", "aideadlines")
	require.NoError(t, err)
	assert.Contains(t, out, "(Dry run)")
	assert.Contains(t, out, "aideadlines")
	assert.Contains(t, out, "Dry run: no file was written")

	after, err := os.ReadFile(ws.Data)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSyncCommandReportsSkippedFeedRows(t *testing.T) {
	ws := newWorkspace(t)
	ws.Feed.Failed = []sources.RowError{{Row: 2, Title: "ICRA", Err: errors.NewValidationError("year", 0, "feed row needs a title and a year")}}

	out, err := cmdtest.Run(t, NewCommand(ws.App(t, "table")), "--dry-run", "--sources", "aideadlines")
	require.NoError(t, err)
	assert.Contains(t, out, "1 items skipped")
	assert.Contains(t, out, "aideadlines ICRA: unmappable row")

	out, err = cmdtest.Run(t, NewCommand(ws.App(t, "json")), "--dry-run", "--sources", "aideadlines")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Skipped, 1)
	assert.Equal(t, "ICRA", rep.Skipped[0].Item)
}

func TestSyncCommandOutputPath(t *testing.T) {
	ws := newWorkspace(t)
	target := filepath.Join(ws.Dir, "out.yml")

	_, err := cmdtest.Run(t, NewCommand(ws.App(t, "json")), "--sources", "aideadlines", "--output-path", target)
	require.NoError(t, err)

	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestSyncCommandRejectsBadFlags(t *testing.T) {
	ws := newWorkspace(t)

	_, err := cmdtest.Run(t, NewCommand(ws.App(t, "json")), "--sources", "dblp")
	assert.Error(t, err)

	_, err = cmdtest.Run(t, NewCommand(ws.App(t, "json")), "--strategy", "overwrite")
	assert.Error(t, err)

	_, err = cmdtest.Run(t, NewCommand(ws.App(t, "json")), "--batch-start", "5", "--batch-end", "2")
	assert.Error(t, err)
}

func TestFlagsLayerOverDefaults(t *testing.T) {
	cmd := NewCommand(nil)
	require.NoError(t, cmd.ParseFlags([]string{"--batch-end", "20", "--strategy", "bracket-append", "--titles", "icml,kdd"}))

	flags := &Flags{BatchEnd: 20, Strategy: "bracket-append", Titles: []string{"icml", "kdd"}}
	opts, err := flags.options(cmd, []pkgsync.Option{pkgsync.WithBatch(3, 9), pkgsync.WithTimeout(1)})
	require.NoError(t, err)

	got := pkgsync.Defaults().Apply(opts...)
	assert.Equal(t, 0, got.BatchStart, "changed batch flags replace the configured batch")
	assert.Equal(t, 20, got.BatchEnd)
	assert.Equal(t, "bracket-append", string(got.Strategy))
	assert.Equal(t, []string{"icml", "kdd"}, got.Titles)
	assert.EqualValues(t, 1, got.Timeout, "unchanged timeout keeps the configured value")
}
