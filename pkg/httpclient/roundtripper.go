package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yusufsyaifudin/ylog"
	"go.uber.org/multierr"
)

// RoundTripper logs every outgoing request with its final status and elapsed
// time. Bodies are not captured: probe targets are third-party and their
// payloads can be arbitrarily large.
type RoundTripper struct {
	Base http.RoundTripper
}

var _ http.RoundTripper = (*RoundTripper)(nil)

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	t0 := time.Now()
	ctx := req.Context()

	resp, err := r.Base.RoundTrip(req)

	var reportErr error
	if err != nil {
		reportErr = multierr.Append(reportErr, fmt.Errorf("error doing actual request: %w", err))
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	errStr := ""
	if reportErr != nil {
		errStr = reportErr.Error()
	}

	ylog.Debug(ctx, "outgoing http request",
		ylog.KV("method", req.Method),
		ylog.KV("url", req.URL.String()),
		ylog.KV("status", status),
		ylog.KV("elapsedTimeMs", time.Since(t0).Milliseconds()),
		ylog.KV("error", errStr),
	)

	return resp, err
}
