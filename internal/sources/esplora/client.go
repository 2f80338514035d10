// Package esplora reads the Esplora-style REST API served by mempool.space
// for Bitcoin and Litecoin Space for Litecoin.
package esplora

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

const (
	blockWindow = 10
	txLimit     = 20
)

// Client reads one Esplora deployment
type Client struct {
	up              *upstream.Client
	name            string
	baseURL         string
	halvingInterval int64
}

// New creates a Client. halvingInterval drives the block reward when the
// deployment does not report one.
func New(up *upstream.Client, name, baseURL string, halvingInterval int64) *Client {
	return &Client{
		up:              up,
		name:            name,
		baseURL:         baseURL,
		halvingInterval: halvingInterval,
	}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return c.name
}

// TipHeight returns the height of the best block
func (c *Client) TipHeight(ctx context.Context) (int64, error) {
	text, err := c.up.GetText(ctx, c.name, c.baseURL+"/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	height, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, upstream.Malformed(c.name, "tip height %q", text)
	}
	return height, nil
}

// tipOrZero is TipHeight for callers that only use it to refine
// confirmation counts
func (c *Client) tipOrZero(ctx context.Context) int64 {
	tip, err := c.TipHeight(ctx)
	if err != nil {
		return 0
	}
	return tip
}

// Stats summarises the chain from the latest block and the mempool size
func (c *Client) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	var blocks []block
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/v1/blocks", &blocks); err != nil {
		return models.NetworkStats{}, err
	}
	if len(blocks) == 0 {
		return models.NetworkStats{}, upstream.Malformed(c.name, "no blocks")
	}
	latest := blocks[0]

	stats := models.NetworkStats{
		TotalBlocks:       latest.Height,
		TotalTransactions: int64(latest.TxCount),
		AvgBlockTime:      avgBlockTime,
		Difficulty:        models.NotAvailable,
	}
	if latest.Difficulty > 0 {
		stats.Difficulty = units.FormatDifficulty(latest.Difficulty)
	}

	var mempool mempoolInfo
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/mempool", &mempool); err == nil {
		stats.MempoolSize = mempool.Count
	}
	return stats, nil
}

// RecentBlocks returns a window of ten blocks ending page-1 windows below
// the tip
func (c *Client) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	endpoint := c.baseURL + "/v1/blocks"
	if page > 1 {
		tip, err := c.TipHeight(ctx)
		if err != nil {
			return nil, err
		}
		start := tip - int64(page-1)*blockWindow
		if start < 0 {
			return nil, upstream.NotFound(c.name, "page %d is below the genesis block", page)
		}
		endpoint = fmt.Sprintf("%s/%d", endpoint, start)
	}

	var blocks []block
	if err := c.up.GetJSON(ctx, c.name, endpoint, &blocks); err != nil {
		return nil, err
	}
	if len(blocks) > blockWindow {
		blocks = blocks[:blockWindow]
	}

	out := make([]models.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, c.toBlock(b))
	}
	return out, nil
}

// blockHash resolves a height to a hash; anything else is taken as a hash
func (c *Client) blockHash(ctx context.Context, id string) (string, error) {
	if _, ok := units.ParseHeight(id); !ok {
		return id, nil
	}
	return c.up.GetText(ctx, c.name, c.baseURL+"/block-height/"+id)
}

// Block returns a block by height or hash
func (c *Client) Block(ctx context.Context, id string) (models.Block, error) {
	hash, err := c.blockHash(ctx, id)
	if err != nil {
		return models.Block{}, err
	}

	var b block
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/block/"+url.PathEscape(hash), &b); err != nil {
		return models.Block{}, err
	}
	if b.ID == "" {
		return models.Block{}, upstream.Malformed(c.name, "block %s without id", hash)
	}
	return c.toBlock(b), nil
}

// BlockTransactions returns the first page of a block's transactions
func (c *Client) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	hash, err := c.blockHash(ctx, id)
	if err != nil {
		return nil, err
	}

	var txs []tx
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/block/"+url.PathEscape(hash)+"/txs", &txs); err != nil {
		return nil, err
	}
	return c.toTransactions(ctx, txs), nil
}

// RecentTransactions returns the newest mempool entries. The recent-mempool
// endpoint carries no addresses, so from and to are empty.
func (c *Client) RecentTransactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []mempoolTx
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/mempool/recent", &txs); err != nil {
		return nil, err
	}
	if len(txs) > txLimit {
		txs = txs[:txLimit]
	}

	now := units.Now()
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toMempoolTransaction(t, now))
	}
	return out, nil
}

// Transaction returns a transaction by hash
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var t tx
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/tx/"+url.PathEscape(hash), &t); err != nil {
		return models.Transaction{}, err
	}
	if t.Txid == "" {
		return models.Transaction{}, upstream.Malformed(c.name, "transaction %s without txid", hash)
	}

	var tip int64
	if t.Status.Confirmed {
		tip = c.tipOrZero(ctx)
	}
	return toTransaction(t, tip), nil
}

// Address returns the wallet summary including unconfirmed activity
func (c *Client) Address(ctx context.Context, addr string) (models.Wallet, error) {
	var a address
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/address/"+url.PathEscape(addr), &a); err != nil {
		return models.Wallet{}, err
	}
	return toWallet(addr, a), nil
}

// AddressTransactions returns the newest transactions touching addr
func (c *Client) AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error) {
	var txs []tx
	if err := c.up.GetJSON(ctx, c.name, c.baseURL+"/address/"+url.PathEscape(addr)+"/txs", &txs); err != nil {
		return nil, err
	}
	return c.toTransactions(ctx, txs), nil
}

func (c *Client) toTransactions(ctx context.Context, txs []tx) []models.Transaction {
	if len(txs) > txLimit {
		txs = txs[:txLimit]
	}

	var tip int64
	for _, t := range txs {
		if t.Status.Confirmed {
			tip = c.tipOrZero(ctx)
			break
		}
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t, tip))
	}
	return out
}
