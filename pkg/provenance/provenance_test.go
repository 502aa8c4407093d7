package provenance

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/confmap/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tr := NewTracker(true)
	tr.Track("ICML25", "deadline", Provenance{Source: sources.WikiCFPID, Value: "2025/1/23 23:59", Reason: "added"})
	tr.Track("icml25", "ranking", Provenance{Source: sources.CoreID, Value: "A*"})

	got := tr.FindByField("icml25", "deadline")
	require.Len(t, got, 1)
	assert.Equal(t, "deadline", got[0].Field)
	assert.False(t, got[0].Timestamp.IsZero())

	assert.Len(t, tr.FindByID("icml25"), 2)

	m := tr.Map()
	m["icml25:deadline"] = nil
	assert.Len(t, tr.FindByField("icml25", "deadline"), 1, "Map must return a copy")

	assert.Contains(t, tr.Map().String(), `ranking: "A*" from core`)

	tr.Clear()
	assert.Empty(t, tr.Map())
}

func TestDisabledTracker(t *testing.T) {
	tr := NewTracker(false)
	tr.Track("icml25", "deadline", Provenance{Value: "x"})
	assert.Nil(t, tr.FindByField("icml25", "deadline"))
	assert.Nil(t, tr.FindByID("icml25"))
	assert.Nil(t, tr.Map())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provenance.yml")

	pf, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, pf)

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, Save(path, Map{"icml25:deadline": {{Source: sources.WikiCFPID, Field: "deadline", Value: "2025/1/23 23:59", Timestamp: ts}}}))
	require.NoError(t, Save(path, Map{"icml25:deadline": {{Source: sources.AIDeadlinesID, Field: "deadline", Value: "2025/1/30 23:59", Timestamp: ts}}}))

	pf, err = Load(path)
	require.NoError(t, err)
	require.Len(t, pf.Provenance["icml25:deadline"], 2)
	assert.Equal(t, sources.AIDeadlinesID, pf.Provenance["icml25:deadline"][1].Source)
}
