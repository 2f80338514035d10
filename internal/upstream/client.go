// Package upstream is the HTTP transport shared by every provider adapter.
// Each call is bounded by its own timeout and classified into the apperrors
// taxonomy; nothing is retried.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 16 << 20

// Call outcomes reported to the Observer
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
)

// Observer receives one event per upstream call
type Observer interface {
	ObserveUpstream(source, outcome string, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string, time.Duration) {}

// Options configures a Client
type Options struct {
	Timeout     time.Duration
	MaxParallel int
	UserAgent   string
}

// Client performs GET and JSON-RPC calls against public APIs
type Client struct {
	http        *http.Client
	timeout     time.Duration
	maxParallel int
	userAgent   string
	observer    Observer
	log         *logrus.Entry
	rpcID       uint64
}

// New creates a Client. A nil observer disables call metrics.
func New(opts Options, logger *logrus.Logger, observer Observer) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 10
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Client{
		http:        &http.Client{},
		timeout:     opts.Timeout,
		maxParallel: opts.MaxParallel,
		userAgent:   opts.UserAgent,
		observer:    observer,
		log:         logger.WithField("component", "upstream"),
	}
}

// MaxParallel is the concurrency limit for batches of related sub-requests
func (c *Client) MaxParallel() int {
	return c.maxParallel
}

// RequestOption adjusts an outbound request
type RequestOption func(*http.Request)

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// GetJSON fetches url and decodes the JSON body into out
func (c *Client) GetJSON(ctx context.Context, source, url string, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, source, http.MethodGet, url, nil, opts)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "MALFORMED_RESPONSE",
			"decode "+redact(url)).WithSource(source)
	}
	return nil
}

// GetText fetches url and returns the trimmed body
func (c *Client) GetText(ctx context.Context, source, url string, opts ...RequestOption) (string, error) {
	body, err := c.do(ctx, source, http.MethodGet, url, nil, opts)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", apperrors.Malformed("empty body from %s", redact(url)).WithSource(source)
	}
	return text, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CallRPC performs a JSON-RPC 2.0 call. A null result is reported as
// NotFound, which is how nodes answer lookups of unknown blocks and
// transactions.
func (c *Client) CallRPC(ctx context.Context, source, url, method string, params []any, out any) error {
	if params == nil {
		params = []any{}
	}
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.rpcID, 1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindInternal, "ENCODE", "encode rpc request")
	}

	body, err := c.do(ctx, source, http.MethodPost, url, payload, nil)
	if err != nil {
		return err
	}

	var decoded rpcResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "MALFORMED_RESPONSE",
			"decode "+method).WithSource(source)
	}
	if decoded.Error != nil {
		return apperrors.Unavailable(nil, "rpc error %d: %s", decoded.Error.Code, decoded.Error.Message).
			WithSource(source)
	}
	if len(decoded.Result) == 0 || bytes.Equal(decoded.Result, []byte("null")) {
		return apperrors.NotFound("%s returned no result", method).WithSource(source)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "MALFORMED_RESPONSE",
			"decode "+method+" result").WithSource(source)
	}
	return nil
}

func (c *Client) do(ctx context.Context, source, method, url string, payload []byte, opts []RequestOption) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "BAD_REQUEST", "build request").WithSource(source)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		elapsed := time.Since(start)
		if errors.Is(err, context.DeadlineExceeded) {
			c.observe(source, OutcomeTimeout, elapsed)
			return nil, apperrors.Unavailable(err, "timeout after %s", c.timeout).WithSource(source)
		}
		c.observe(source, OutcomeError, elapsed)
		return nil, apperrors.Unavailable(err, "%s %s", method, redact(url)).WithSource(source)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	elapsed := time.Since(start)
	if err != nil {
		c.observe(source, OutcomeError, elapsed)
		return nil, apperrors.Unavailable(err, "read body").WithSource(source)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe(source, OutcomeNotFound, elapsed)
		return nil, apperrors.NotFound("%s returned 404", redact(url)).WithSource(source)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.observe(source, OutcomeError, elapsed)
		return nil, apperrors.Unavailable(nil, "status %d from %s", resp.StatusCode, redact(url)).WithSource(source)
	}

	c.log.WithFields(logrus.Fields{
		"source":  source,
		"url":     redact(url),
		"elapsed": elapsed,
	}).Debug("upstream call")
	c.observe(source, OutcomeOK, elapsed)
	return body, nil
}

func (c *Client) observe(source, outcome string, d time.Duration) {
	c.observer.ObserveUpstream(source, outcome, d)
}

// redact drops the query string, which may carry API keys
func redact(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}

// Malformed reports a payload from source that decoded but cannot be used
func Malformed(source, format string, args ...any) error {
	return apperrors.Malformed(format, args...).WithSource(source)
}

// NotFound reports an entity source does not know about
func NotFound(source, format string, args ...any) error {
	return apperrors.NotFound(format, args...).WithSource(source)
}
