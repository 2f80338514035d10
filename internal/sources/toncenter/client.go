// Package toncenter reads the toncenter v2 HTTP API for TON.
package toncenter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "toncenter"

// masterchain block headers live in workchain -1, shard 0x8000000000000000
const masterchainQuery = "workchain=-1&shard=-9223372036854775808"

const (
	blockWindow = 10
	txLimit     = 20
)

// Client reads toncenter
type Client struct {
	up      *upstream.Client
	baseURL string
	opts    []upstream.RequestOption
}

// New creates a Client. A non-empty apiKey is sent in the X-API-Key
// header and lifts the anonymous rate limit.
func New(up *upstream.Client, baseURL, apiKey string) *Client {
	c := &Client{up: up, baseURL: baseURL}
	if apiKey != "" {
		c.opts = append(c.opts, upstream.WithHeader("X-API-Key", apiKey))
	}
	return c
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return Name
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var (
		resp envelope[T]
		zero T
	)
	if err := c.up.GetJSON(ctx, Name, c.baseURL+path, &resp, c.opts...); err != nil {
		return zero, err
	}
	if !resp.OK {
		if resp.Code == 404 {
			return zero, upstream.NotFound(Name, "%s", resp.Error)
		}
		return zero, upstream.Malformed(Name, "not ok: %s", resp.Error)
	}
	if resp.Result == nil {
		return zero, upstream.Malformed(Name, "ok without result")
	}
	return *resp.Result, nil
}

func (c *Client) masterchainInfo(ctx context.Context) (masterchainInfo, error) {
	return get[masterchainInfo](ctx, c, "/getMasterchainInfo")
}

// Ping checks that the API answers
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.masterchainInfo(ctx)
	return err
}

// Stats reports the masterchain height. toncenter exposes no totals.
func (c *Client) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	info, err := c.masterchainInfo(ctx)
	if err != nil {
		return models.NetworkStats{}, err
	}
	return models.NetworkStats{
		TotalBlocks:  info.Last.Seqno,
		AvgBlockTime: avgBlockTime,
		Difficulty:   models.NotAvailable,
	}, nil
}

func (c *Client) header(ctx context.Context, seqno int64) (models.Block, error) {
	h, err := get[blockHeader](ctx, c, fmt.Sprintf("/getBlockHeader?%s&seqno=%d", masterchainQuery, seqno))
	if err != nil {
		return models.Block{}, err
	}

	b := models.Block{
		Height:     h.ID.Seqno,
		Hash:       h.ID.RootHash,
		Time:       units.Now(),
		Reward:     "0",
		Difficulty: models.NotAvailable,
	}
	if b.Height == 0 {
		b.Height = seqno
	}
	if h.GenUtime > 0 {
		b.Time = units.FromUnix(h.GenUtime)
	}
	return b, nil
}

// RecentBlocks fetches a window of ten masterchain block headers. Headers
// that fail to load are left out; the call fails only when none loaded.
func (c *Client) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	info, err := c.masterchainInfo(ctx)
	if err != nil {
		return nil, err
	}
	start := info.Last.Seqno - int64(max(page, 1)-1)*blockWindow
	if start <= 0 {
		return nil, upstream.NotFound(Name, "page %d is past the first block", page)
	}

	blocks, err := upstream.Gather(ctx, c.up.MaxParallel(), blockWindow, func(ctx context.Context, i int) (models.Block, error) {
		seqno := start - int64(i)
		if seqno <= 0 {
			return models.Block{}, upstream.NotFound(Name, "seqno %d", seqno)
		}
		return c.header(ctx, seqno)
	})
	if len(blocks) == 0 {
		return nil, err
	}
	return blocks, nil
}

// Block returns a masterchain block header by seqno
func (c *Client) Block(ctx context.Context, id string) (models.Block, error) {
	seqno, ok := units.ParseHeight(id)
	if !ok || seqno == 0 {
		return models.Block{}, upstream.NotFound(Name, "block %q is not a seqno", id)
	}
	return c.header(ctx, seqno)
}

// Address returns the wallet balance. toncenter reports no totals or
// transaction count.
func (c *Client) Address(ctx context.Context, addr string) (models.Wallet, error) {
	info, err := get[addressInformation](ctx, c, "/getAddressInformation?address="+url.QueryEscape(addr))
	if err != nil {
		return models.Wallet{}, err
	}
	w := models.NewWallet(addr)
	w.Balance = units.FormatUnits(info.Balance, units.NanotonDecimals)
	w.Received = models.NotAvailable
	w.Sent = models.NotAvailable
	return w, nil
}

// AddressTransactions returns the newest transactions of addr
func (c *Client) AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error) {
	path := fmt.Sprintf("/getTransactions?address=%s&limit=%d", url.QueryEscape(addr), txLimit)
	txs, err := get[[]transaction](ctx, c, path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t, addr))
	}
	return out, nil
}
