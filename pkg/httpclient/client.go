package httpclient

import (
	"fmt"
	"net/http"
	"time"
)

type Config struct {
	// Timeout bounds the whole outbound exchange. Zero keeps the client
	// unbounded, which stalls only the calling handler, not the process.
	Timeout time.Duration
}

// New returns an outbound HTTP client whose requests are logged through the
// RoundTripper in this package.
func New(cfg Config) (*http.Client, error) {
	base := http.DefaultTransport
	if base == nil {
		return nil, fmt.Errorf("no default http transport available")
	}

	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &RoundTripper{
			Base: base,
		},
	}, nil
}
