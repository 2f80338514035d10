// Package tronscan reads the TronScan API for the TRON network.
package tronscan

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "tronscan"

const (
	blockWindow = 10
	txLimit     = 20
)

// Client reads TronScan
type Client struct {
	up      *upstream.Client
	baseURL string
}

// New creates a Client
func New(up *upstream.Client, baseURL string) *Client {
	return &Client{up: up, baseURL: baseURL}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return Name
}

func (c *Client) blocks(ctx context.Context, query string) ([]block, error) {
	var resp blockList
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/block?"+query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) transactions(ctx context.Context, query string) ([]models.Transaction, error) {
	var resp txList
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/transaction?"+query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, upstream.Malformed(Name, "transaction list without data")
	}
	return toTransactions(resp.Data), nil
}

// Stats reports the latest block. TRON has no difficulty or hashrate.
func (c *Client) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	blocks, err := c.blocks(ctx, "sort=-number&limit=1")
	if err != nil {
		return models.NetworkStats{}, err
	}
	if len(blocks) == 0 {
		return models.NetworkStats{}, upstream.Malformed(Name, "no latest block")
	}
	return models.NetworkStats{
		TotalBlocks:       blocks[0].Number,
		TotalTransactions: int64(blocks[0].NrOfTrx),
		AvgBlockTime:      avgBlockTime,
		Difficulty:        models.NotAvailable,
	}, nil
}

// RecentBlocks returns a page of ten blocks, newest first
func (c *Client) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	start := (max(page, 1) - 1) * blockWindow
	blocks, err := c.blocks(ctx, fmt.Sprintf("sort=-number&limit=%d&start=%d", blockWindow, start))
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, upstream.Malformed(Name, "empty block list")
	}

	out := make([]models.Block, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlock(b))
	}
	return out, nil
}

// Block returns a block by number. TronScan does not look blocks up by
// hash.
func (c *Client) Block(ctx context.Context, id string) (models.Block, error) {
	height, ok := units.ParseHeight(id)
	if !ok {
		return models.Block{}, upstream.NotFound(Name, "block %q is not a number", id)
	}
	blocks, err := c.blocks(ctx, fmt.Sprintf("number=%d", height))
	if err != nil {
		return models.Block{}, err
	}
	if len(blocks) == 0 {
		return models.Block{}, upstream.NotFound(Name, "block %d", height)
	}
	return toBlock(blocks[0]), nil
}

// BlockTransactions returns the first twenty transactions of a block
func (c *Client) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	height, ok := units.ParseHeight(id)
	if !ok {
		return nil, upstream.NotFound(Name, "block %q is not a number", id)
	}
	txs, err := c.transactions(ctx, fmt.Sprintf("block=%d&limit=%d", height, txLimit))
	if err != nil {
		return nil, err
	}
	for i := range txs {
		if txs[i].BlockHeight == 0 {
			txs[i].BlockHeight = height
		}
	}
	return txs, nil
}

// RecentTransactions returns a page of the newest transactions
func (c *Client) RecentTransactions(ctx context.Context, page int) ([]models.Transaction, error) {
	start := (max(page, 1) - 1) * txLimit
	return c.transactions(ctx, fmt.Sprintf("sort=-timestamp&limit=%d&start=%d", txLimit, start))
}

// Transaction returns a transaction by hash
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var t tx
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/transaction-info?hash="+url.QueryEscape(hash), &t); err != nil {
		return models.Transaction{}, err
	}
	// unknown hashes come back as an empty object
	if t.Hash == "" {
		return models.Transaction{}, upstream.NotFound(Name, "transaction %s", hash)
	}
	return toTransaction(t), nil
}

// Account returns the wallet summary with up to ten priced tokens
func (c *Client) Account(ctx context.Context, addr string) (models.Wallet, error) {
	var a account
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/accountv2?address="+url.QueryEscape(addr), &a); err != nil {
		return models.Wallet{}, err
	}
	if a.Address == "" {
		return models.Wallet{}, upstream.NotFound(Name, "account %s", addr)
	}
	return toWallet(a), nil
}

// AddressTransactions returns the newest transactions touching addr
func (c *Client) AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error) {
	return c.transactions(ctx, fmt.Sprintf("address=%s&limit=%d&sort=-timestamp", url.QueryEscape(addr), txLimit))
}
