package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/logging"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObserveUpstream(source, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, source+":"+outcome)
}

func newTestClient(timeout time.Duration, obs Observer) *Client {
	return New(Options{Timeout: timeout, MaxParallel: 4, UserAgent: "test-agent"}, logging.Discard(), obs)
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "k1", r.Header.Get("X-API-Key"))
		fmt.Fprint(w, `{"height": 871234}`)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := newTestClient(time.Second, obs)

	var out struct {
		Height int64 `json:"height"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "mempool", srv.URL, &out, WithHeader("X-API-Key", "k1")))
	assert.Equal(t, int64(871234), out.Height)
	assert.Equal(t, []string{"mempool:ok"}, obs.outcomes)
}

func TestGetJSONStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.Kind
	}{
		{"not found", http.StatusNotFound, "Block not found", apperrors.KindNotFound},
		{"server error", http.StatusInternalServerError, "oops", apperrors.KindUnavailable},
		{"rate limited", http.StatusTooManyRequests, "slow down", apperrors.KindUnavailable},
		{"malformed body", http.StatusOK, "<html>", apperrors.KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			var out map[string]any
			err := newTestClient(time.Second, nil).GetJSON(context.Background(), "src", srv.URL, &out)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.KindOf(err))
		})
	}
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	obs := &recordingObserver{}
	c := newTestClient(50*time.Millisecond, obs)

	start := time.Now()
	_, err := c.GetText(context.Background(), "slow", srv.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
	assert.Equal(t, []string{"slow:timeout"}, obs.outcomes)
}

func TestGetText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			return
		}
		fmt.Fprint(w, "000000000000000000022f2a\n")
	}))
	defer srv.Close()

	c := newTestClient(time.Second, nil)
	text, err := c.GetText(context.Background(), "mempool", srv.URL+"/hash")
	require.NoError(t, err)
	assert.Equal(t, "000000000000000000022f2a", text)

	_, err = c.GetText(context.Background(), "mempool", srv.URL+"/empty")
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestCallRPC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		var req rpcRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.JSONRPC)

		switch req.Method {
		case "eth_blockNumber":
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":"0x1312d00"}`, req.ID)
		case "eth_getTransactionByHash":
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":null}`, req.ID)
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
		}
	}))
	defer srv.Close()

	c := newTestClient(time.Second, nil)
	ctx := context.Background()

	var number string
	require.NoError(t, c.CallRPC(ctx, "eth-rpc", srv.URL, "eth_blockNumber", nil, &number))
	assert.Equal(t, "0x1312d00", number)

	var tx map[string]any
	err := c.CallRPC(ctx, "eth-rpc", srv.URL, "eth_getTransactionByHash", []any{"0xabc"}, &tx)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = c.CallRPC(ctx, "eth-rpc", srv.URL, "eth_unknown", nil, nil)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "method not found")
}

func TestGatherKeepsOrderAndDropsFailures(t *testing.T) {
	var inFlight, peak int32
	got, err := Gather(context.Background(), 2, 6, func(ctx context.Context, i int) (int, error) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if i%3 == 1 {
			return 0, fmt.Errorf("member %d failed", i)
		}
		return i * 10, nil
	})

	assert.Equal(t, []int{0, 20, 30, 50}, got)
	assert.Error(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestGatherEmpty(t *testing.T) {
	got, err := Gather(context.Background(), 4, 0, func(ctx context.Context, i int) (string, error) {
		return "", nil
	})
	assert.Empty(t, got)
	assert.NoError(t, err)
}
