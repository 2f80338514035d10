// Package blockchaininfo reads the blockchain.info explorer API (Bitcoin
// only).
package blockchaininfo

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "blockchain.info"

const (
	blockWindow = 10
	txLimit     = 20
)

// Client reads blockchain.info
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

// Stats combines the network statistics with the latest block height
func (c *Client) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	var (
		s      stats
		latest latestBlock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.up.GetJSON(gctx, Name, c.baseURL+"/stats?format=json", &s)
	})
	g.Go(func() error {
		return c.up.GetJSON(gctx, Name, c.baseURL+"/latestblock", &latest)
	})
	if err := g.Wait(); err != nil {
		return models.NetworkStats{}, err
	}

	out := models.NetworkStats{
		TotalBlocks:       latest.Height,
		TotalTransactions: s.NTx,
		AvgBlockTime:      avgBlockTime,
		Difficulty:        units.FormatDifficulty(s.Difficulty),
		MempoolSize:       s.MempoolTransactions,
	}
	if out.TotalBlocks == 0 {
		out.TotalBlocks = s.NBlocksTotal
	}
	if s.HashRate > 0 {
		out.Hashrate = units.FormatHashrate(s.HashRate * 1e9)
	}
	return out, nil
}

// LatestHeight returns the height of the newest block
func (c *Client) LatestHeight(ctx context.Context) (int64, error) {
	var latest latestBlock
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/latestblock", &latest); err != nil {
		return 0, err
	}
	if latest.Height <= 0 {
		return 0, upstream.Malformed(Name, "latest block without height")
	}
	return latest.Height, nil
}

// RecentBlocks fetches a window of ten blocks one by one. Blocks that fail
// to load are left out; the call fails only when none loaded.
func (c *Client) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	tip, err := c.LatestHeight(ctx)
	if err != nil {
		return nil, err
	}
	start := tip - int64(max(page, 1)-1)*blockWindow

	if start < 0 {
		return nil, upstream.NotFound(Name, "page %d is past genesis", page)
	}

	blocks, err := upstream.Gather(ctx, c.up.MaxParallel(), blockWindow, func(ctx context.Context, i int) (models.Block, error) {
		height := start - int64(i)
		if height < 0 {
			return models.Block{}, upstream.NotFound(Name, "height %d below genesis", height)
		}
		b, err := c.blockAt(ctx, height)
		if err != nil {
			return models.Block{}, err
		}
		return toBlock(b), nil
	})
	if len(blocks) == 0 {
		if err == nil {
			err = upstream.Malformed(Name, "no blocks below %d", start)
		}
		return nil, err
	}
	return blocks, nil
}

func (c *Client) blockAt(ctx context.Context, height int64) (block, error) {
	var resp blockHeightResponse
	endpoint := fmt.Sprintf("%s/block-height/%d?format=json", c.baseURL, height)
	if err := c.up.GetJSON(ctx, Name, endpoint, &resp); err != nil {
		return block{}, err
	}
	if len(resp.Blocks) == 0 {
		return block{}, upstream.NotFound(Name, "no block at height %d", height)
	}
	return resp.Blocks[0], nil
}

// fetchBlock loads a block by height or by hash
func (c *Client) fetchBlock(ctx context.Context, id string) (block, error) {
	if height, ok := units.ParseHeight(id); ok {
		return c.blockAt(ctx, height)
	}
	var b block
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/rawblock/"+url.PathEscape(id), &b); err != nil {
		return block{}, err
	}
	if b.Hash == "" {
		return block{}, upstream.Malformed(Name, "block %s without hash", id)
	}
	return b, nil
}

// Block returns a block by height or hash
func (c *Client) Block(ctx context.Context, id string) (models.Block, error) {
	b, err := c.fetchBlock(ctx, id)
	if err != nil {
		return models.Block{}, err
	}
	return toBlock(b), nil
}

// BlockTransactions returns the first transactions of a block
func (c *Client) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	b, err := c.fetchBlock(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Tx == nil {
		return nil, upstream.Malformed(Name, "block %s without transactions", id)
	}
	txs := toTransactions(b.Tx, txLimit)
	for i := range txs {
		txs[i].BlockHeight = b.Height
		txs[i].Status = models.StatusConfirmed
		txs[i].Confirmations = models.DefaultConfirmations
	}
	return txs, nil
}

// UnconfirmedTransactions returns the newest mempool transactions
func (c *Client) UnconfirmedTransactions(ctx context.Context) ([]models.Transaction, error) {
	var resp unconfirmed
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/unconfirmed-transactions?format=json", &resp); err != nil {
		return nil, err
	}
	return toTransactions(resp.Txs, txLimit), nil
}

// Transaction returns a transaction by hash
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var t tx
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/rawtx/"+url.PathEscape(hash), &t); err != nil {
		return models.Transaction{}, err
	}
	if t.Hash == "" {
		return models.Transaction{}, upstream.Malformed(Name, "transaction %s without hash", hash)
	}
	return toTransaction(t), nil
}

// Address returns the wallet summary
func (c *Client) Address(ctx context.Context, addr string) (models.Wallet, error) {
	var a rawAddr
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/rawaddr/"+url.PathEscape(addr)+"?limit=0", &a); err != nil {
		return models.Wallet{}, err
	}

	if a.Address != "" {
		addr = a.Address
	}
	w := models.NewWallet(addr)
	w.Balance = units.FormatInt(a.FinalBalance, units.SatoshiDecimals)
	w.Received = units.FormatInt(a.TotalReceived, units.SatoshiDecimals)
	w.Sent = units.FormatInt(a.TotalSent, units.SatoshiDecimals)
	w.TransactionCount = a.NTx
	return w, nil
}

// AddressTransactions returns the newest transactions touching addr
func (c *Client) AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error) {
	var a rawAddr
	endpoint := fmt.Sprintf("%s/rawaddr/%s?limit=%d", c.baseURL, url.PathEscape(addr), txLimit)
	if err := c.up.GetJSON(ctx, Name, endpoint, &a); err != nil {
		return nil, err
	}
	return toTransactions(a.Txs, txLimit), nil
}
