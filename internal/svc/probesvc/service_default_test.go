package probesvc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/probesvc"
	"github.com/mustyfdn/app-portal/pkg/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepareProbe(t *testing.T) *probesvc.DefaultService {
	client, err := httpclient.New(httpclient.Config{Timeout: 5 * time.Second})
	require.NoError(t, err)

	svc, err := probesvc.New(probesvc.DefaultServiceConfig{Client: client})
	require.NoError(t, err)

	return svc
}

func TestNewBadDep(t *testing.T) {
	svc, err := probesvc.New(probesvc.DefaultServiceConfig{})
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestProbeRelaysStatus(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream is down"))
	}))
	t.Cleanup(target.Close)

	svc := prepareProbe(t)

	out, err := svc.Probe(context.Background(), probesvc.InputProbe{TargetURL: target.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, out.StatusCode)
}

func TestProbeMalformedURL(t *testing.T) {
	svc := prepareProbe(t)

	_, err := svc.Probe(context.Background(), probesvc.InputProbe{TargetURL: "not a url"})
	assert.ErrorIs(t, err, probesvc.ErrValidation)
}

func TestProbeUnreachableTarget(t *testing.T) {
	svc := prepareProbe(t)

	// a closed server makes the transport fail immediately
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target.Close()

	_, err := svc.Probe(context.Background(), probesvc.InputProbe{TargetURL: target.URL})
	assert.Error(t, err)
}
