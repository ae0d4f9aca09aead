package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "vineweb-httpclient"
)

type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
	// Timeout bounds the whole exchange; zero means DefaultTimeout.
	Timeout time.Duration
}

// SendRequest performs req and returns the status code and the full body.
// A non-2xx status is not an error.
func SendRequest(ctx context.Context, req HttpRequest) (int, []byte, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("User-Agent", DefaultUserAgent)
	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	response, err := client.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return response.StatusCode, data, nil
}
