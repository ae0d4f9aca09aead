package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "catalogctl", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusTeapot)
		w.Write(body)
	}))
	defer server.Close()

	status, body, err := SendRequest(context.Background(), HttpRequest{
		URL:     server.URL,
		Method:  http.MethodPost,
		Body:    []byte("ping"),
		Headers: map[string]string{"User-Agent": "catalogctl", "X-Test": "yes"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "ping", string(body))
}

func TestSendRequest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := SendRequest(ctx, HttpRequest{URL: "http://127.0.0.1:1", Method: http.MethodGet})
	assert.Error(t, err)
}
