// Package evmrpc reads an Ethereum-compatible JSON-RPC endpoint. It serves
// both Ethereum and BNB Smart Chain.
package evmrpc

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

const (
	blockWindow = 10
	txLimit     = 20
)

// Chain describes one EVM network
type Chain struct {
	Source string // name in logs and metrics, e.g. "ethereum-rpc"
	// ProofOfStake chains report "N/A (PoS)" instead of a difficulty
	ProofOfStake bool
}

// Client calls one JSON-RPC endpoint
type Client struct {
	up    *upstream.Client
	url   string
	chain Chain
}

// New creates a Client
func New(up *upstream.Client, url string, chain Chain) *Client {
	return &Client{up: up, url: url, chain: chain}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return c.chain.Source
}

func (c *Client) call(ctx context.Context, method string, out any, params ...any) error {
	return c.up.CallRPC(ctx, c.chain.Source, c.url, method, params, out)
}

// BlockNumber returns the latest block height
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var n hexutil.Uint64
	if err := c.call(ctx, "eth_blockNumber", &n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// Stats reports the chain height and the transaction count of the latest
// block
func (c *Client) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	tip, err := c.BlockNumber(ctx)
	if err != nil {
		return models.NetworkStats{}, err
	}
	var b blockHashes
	if err := c.call(ctx, "eth_getBlockByNumber", &b, units.EncodeQuantity(tip), false); err != nil {
		return models.NetworkStats{}, err
	}

	s := models.NetworkStats{
		TotalBlocks:       int64(tip),
		TotalTransactions: int64(len(b.Transactions)),
		AvgBlockTime:      avgBlockTime,
		Difficulty:        models.NotAvailable,
	}
	if c.chain.ProofOfStake {
		s.Difficulty = posDifficulty
	}
	return s, nil
}

// RecentBlocks fetches a window of ten blocks. Blocks that fail to load are
// left out; the call fails only when none loaded.
func (c *Client) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	tip, err := c.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	start := int64(tip) - int64(max(page, 1)-1)*blockWindow
	if start < 0 {
		return nil, upstream.NotFound(c.chain.Source, "page %d is past genesis", page)
	}

	blocks, err := upstream.Gather(ctx, c.up.MaxParallel(), blockWindow, func(ctx context.Context, i int) (models.Block, error) {
		height := start - int64(i)
		if height < 0 {
			return models.Block{}, upstream.NotFound(c.chain.Source, "height %d below genesis", height)
		}
		var b blockHashes
		if err := c.call(ctx, "eth_getBlockByNumber", &b, units.EncodeQuantity(uint64(height)), false); err != nil {
			return models.Block{}, err
		}
		if b.Number == nil || b.Hash == "" {
			return models.Block{}, upstream.Malformed(c.chain.Source, "block %d without number or hash", height)
		}
		return c.toBlock(b.header, len(b.Transactions)), nil
	})
	if len(blocks) == 0 {
		return nil, err
	}
	return blocks, nil
}

// fetchBlock resolves id as a decimal height or a 0x-prefixed block hash
func (c *Client) fetchBlock(ctx context.Context, id string, full bool, out any) error {
	if height, ok := units.ParseHeight(id); ok {
		return c.call(ctx, "eth_getBlockByNumber", out, units.EncodeQuantity(uint64(height)), full)
	}
	if isHash(id) {
		return c.call(ctx, "eth_getBlockByHash", out, id, full)
	}
	return upstream.NotFound(c.chain.Source, "block %q is neither a height nor a hash", id)
}

// Block returns a block by height or hash
func (c *Client) Block(ctx context.Context, id string) (models.Block, error) {
	var b blockHashes
	if err := c.fetchBlock(ctx, id, false, &b); err != nil {
		return models.Block{}, err
	}
	if b.Hash == "" {
		return models.Block{}, upstream.Malformed(c.chain.Source, "block %s without hash", id)
	}
	return c.toBlock(b.header, len(b.Transactions)), nil
}

// BlockTransactions returns the first twenty transactions of a block
func (c *Client) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	var b blockTxs
	if err := c.fetchBlock(ctx, id, true, &b); err != nil {
		return nil, err
	}
	return c.blockTransactions(b, models.DefaultConfirmations), nil
}

// RecentTransactions returns the first twenty transactions of the latest
// block
func (c *Client) RecentTransactions(ctx context.Context) ([]models.Transaction, error) {
	var b blockTxs
	if err := c.call(ctx, "eth_getBlockByNumber", &b, "latest", true); err != nil {
		return nil, err
	}
	return c.blockTransactions(b, 1), nil
}

func (c *Client) blockTransactions(b blockTxs, confirmations int64) []models.Transaction {
	txs := b.Transactions
	if len(txs) > txLimit {
		txs = txs[:txLimit]
	}
	blockTime := units.FromUnix(int64(b.Timestamp))
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t, blockTime, confirmations))
	}
	return out
}

// Transaction returns a transaction by hash. The receipt and the block time
// are looked up concurrently and are best effort: without a receipt the fee
// is the gas limit estimate.
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var t rpcTx
	if err := c.call(ctx, "eth_getTransactionByHash", &t, hash); err != nil {
		return models.Transaction{}, err
	}
	if t.Hash == "" {
		return models.Transaction{}, upstream.Malformed(c.chain.Source, "transaction %s without hash", hash)
	}
	if t.BlockNumber == nil {
		return toTransaction(t, units.Now(), 0), nil
	}

	var (
		r        receipt
		b        blockHashes
		rcptErr  error
		blockErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		rcptErr = c.call(ctx, "eth_getTransactionReceipt", &r, hash)
		return nil
	})
	g.Go(func() error {
		blockErr = c.call(ctx, "eth_getBlockByNumber", &b, units.EncodeQuantity(uint64(*t.BlockNumber)), false)
		return nil
	})
	_ = g.Wait()

	blockTime := units.Now()
	if blockErr == nil && b.Timestamp > 0 {
		blockTime = units.FromUnix(int64(b.Timestamp))
	}
	out := toTransaction(t, blockTime, models.DefaultConfirmations)
	if rcptErr == nil {
		applyReceipt(&out, t, r)
	}
	return out, nil
}

// Wallet returns the native balance and the nonce of addr. JSON-RPC has no
// notion of received or sent totals.
func (c *Client) Wallet(ctx context.Context, addr string) (models.Wallet, error) {
	var (
		balance hexutil.Big
		nonce   hexutil.Uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.call(gctx, "eth_getBalance", &balance, addr, "latest")
	})
	g.Go(func() error {
		return c.call(gctx, "eth_getTransactionCount", &nonce, addr, "latest")
	})
	if err := g.Wait(); err != nil {
		return models.Wallet{}, err
	}

	w := models.NewWallet(addr)
	w.Balance = units.FormatBig(balance.ToInt(), units.WeiDecimals)
	w.TransactionCount = int64(nonce)
	w.Received = models.NotAvailable
	w.Sent = models.NotAvailable
	return w, nil
}

func isHash(id string) bool {
	if len(id) != 66 || !strings.HasPrefix(id, "0x") {
		return false
	}
	_, err := hexutil.Decode(id)
	return err == nil
}
