package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/internal/transport"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
)

func newServer(t *testing.T, body string, status int) *Source {
	t.Helper()
	logging.DisableLoggingForTest(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ICML", r.URL.Query().Get("search"))
		assert.Equal(t, "CORE2021", r.URL.Query().Get("source"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL+"/conf-ranks/"), WithEdition("CORE2021"), WithClient(transport.New("core")))
}

func TestQueryURL(t *testing.T) {
	s := New()
	assert.Equal(t,
		"http://portal.core.edu.au/conf-ranks/?by=all&page=1&search=ICML&sort=atitle&source=CORE2023",
		s.QueryURL("ICML"))
}

func TestRankings(t *testing.T) {
	data, err := os.ReadFile("testdata/search.html")
	require.NoError(t, err)
	s := newServer(t, string(data), http.StatusOK)

	got, err := s.Rankings(context.Background(), "ICML")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, conferences.Ranking{
		Title:         "International Conference on Machine Learning",
		Acronym:       "ICML",
		Source:        "CORE2023",
		Rank:          "A*",
		DBLP:          "view",
		HasData:       "Yes",
		PrimaryFoR:    "4611",
		Comments:      "0",
		AverageRating: "0.0",
		Link:          s.QueryURL("ICML"),
	}, got[0])
	assert.Equal(t, "ICMLA", got[1].Acronym)
}

func TestRankingsErrors(t *testing.T) {
	s := newServer(t, "<html><div id=\"search\">No results</div></html>", http.StatusOK)
	_, err := s.Rankings(context.Background(), "ICML")
	assert.True(t, errors.IsFetchError(err))

	s = newServer(t, "maintenance", http.StatusServiceUnavailable)
	_, err = s.Rankings(context.Background(), "ICML")
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "ICML", Query(&conferences.Deadline{Title: " ICML ", FullName: "x"}))
	assert.Equal(t, "Some Conference", Query(&conferences.Deadline{FullName: "Some Conference"}))
}
