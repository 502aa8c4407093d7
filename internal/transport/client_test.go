package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
)

func TestGet(t *testing.T) {
	logging.DisableLoggingForTest(t)
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := New("wikicfp", WithUserAgent("confmap-test"))
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, "confmap-test", ua)
	assert.Equal(t, "wikicfp", c.Source())
}

func TestGetStatusErrors(t *testing.T) {
	logging.DisableLoggingForTest(t)
	tests := []struct {
		status      int
		rateLimited bool
		unavailable bool
	}{
		{http.StatusNotFound, false, false},
		{http.StatusTooManyRequests, true, false},
		{http.StatusBadGateway, false, true},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", tt.status)
		}))
		_, err := New("core").Get(context.Background(), srv.URL)
		srv.Close()

		var fe *errors.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, tt.status, fe.StatusCode)
		assert.Equal(t, "nope", fe.Message)
		assert.True(t, errors.IsFetchError(err))
		assert.Equal(t, tt.rateLimited, errors.IsRateLimited(err))
		assert.Equal(t, tt.unavailable, errors.IsSourceUnavailable(err))
	}
}

func TestMinimumInterval(t *testing.T) {
	logging.DisableLoggingForTest(t)
	var hits []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits = append(hits, time.Now())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	const interval = 40 * time.Millisecond
	c := New("wikicfp", WithInterval(interval))
	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), srv.URL)
		require.NoError(t, err)
	}
	require.Len(t, hits, 3)
	for i := 1; i < len(hits); i++ {
		// the limiter reserves slots at the interval; allow scheduler jitter on the server side
		assert.GreaterOrEqual(t, hits[i].Sub(hits[i-1]), interval-5*time.Millisecond)
	}
}

func TestCanceledWait(t *testing.T) {
	logging.DisableLoggingForTest(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	c := New("wikicfp", WithInterval(time.Hour))
	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Get(ctx, srv.URL)
	assert.True(t, errors.IsFetchError(err))
}

func TestConnectionError(t *testing.T) {
	logging.DisableLoggingForTest(t)
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New("core", WithTimeout(time.Second)).Get(context.Background(), url)
	var fe *errors.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, url, fe.URL)
}
