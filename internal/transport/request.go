package transport

import (
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
)

// ReadBody reads and closes the response body. A non-200 status becomes a
// FetchError whose message is the start of the body.
func ReadBody(resp *http.Response, source string) ([]byte, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("source", source).Msg("Failed to close response body")
		}
	}()

	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = resp.Request.URL.String()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.WrapFetch(source, url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewFetchError(source, url, resp.StatusCode, snippet(body))
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response"
	}
	const limit = 200
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
