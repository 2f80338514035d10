package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	m := New()
	m.ObserveUpstream("mempool", "ok", 120*time.Millisecond)
	m.ObserveUpstream("mempool", "ok", 80*time.Millisecond)
	m.ObserveUpstream("mempool", "timeout", 8*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("mempool", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("mempool", "timeout")))
}

func TestHandlerExposesRequests(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/blocks/:network", http.MethodGet, http.StatusOK, 10*time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `explorer_http_requests_total{method="GET",route="/api/blocks/:network",status="200"} 1`)
}
