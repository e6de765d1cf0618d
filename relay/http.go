// Package relay delivers finalized registrations and failure alerts to
// external sinks.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/puzzlesmarathon/registration-backend/registration"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTimeout bounds a single relay POST.
	DefaultTimeout = 10 * time.Second

	maxDrainSize = 64 * 1024
	userAgent    = "puzzlesmarathon-registration/1.0"
)

var _ registration.Relay = &HTTPRelay{}

// HTTPError is returned when the sink answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("relay %s responded with status %d", e.URL, e.StatusCode)
}

// HTTPRelay POSTs payloads to a caller-chosen URL. It never retries.
type HTTPRelay struct {
	client *http.Client
}

// NewHTTPRelay creates a relay client. If timeout is 0, DefaultTimeout is used.
func NewHTTPRelay(timeout time.Duration) *HTTPRelay {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &HTTPRelay{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (r *HTTPRelay) Forward(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute relay request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainSize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, URL: url}
	}

	return nil
}
