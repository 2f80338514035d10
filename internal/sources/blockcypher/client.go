// Package blockcypher reads the BlockCypher API for Bitcoin, Ethereum and
// Litecoin.
package blockcypher

import (
	"context"
	"net/url"
	"strings"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "blockcypher"

// hydrateLimit is how many txids of a block are looked up individually
const hydrateLimit = 10

// Chain describes one BlockCypher chain
type Chain struct {
	Path     string // e.g. "ltc/main"
	Decimals int32
	// AddressPrefix is prepended to bare addresses, "0x" on Ethereum
	AddressPrefix string
}

// Client reads one BlockCypher chain
type Client struct {
	up      *upstream.Client
	baseURL string
	chain   Chain
}

// New creates a Client for chain
func New(up *upstream.Client, baseURL string, chain Chain) *Client {
	return &Client{up: up, baseURL: strings.TrimRight(baseURL, "/") + "/" + chain.Path, chain: chain}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return Name
}

// Transaction returns a transaction by hash
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var t tx
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/txs/"+url.PathEscape(hash), &t); err != nil {
		return models.Transaction{}, err
	}
	if t.Hash == "" {
		return models.Transaction{}, upstream.Malformed(Name, "transaction %s without hash", hash)
	}
	return c.toTransaction(t), nil
}

// AddressBalance returns the wallet summary. BlockCypher reports no
// first/last seen times.
func (c *Client) AddressBalance(ctx context.Context, addr string) (models.Wallet, error) {
	var b balance
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/addrs/"+url.PathEscape(addr)+"/balance", &b); err != nil {
		return models.Wallet{}, err
	}

	w := models.NewWallet(addr)
	w.Balance = units.FormatUnits(b.FinalBalance, c.chain.Decimals)
	w.Received = units.FormatUnits(b.TotalReceived, c.chain.Decimals)
	w.Sent = units.FormatUnits(b.TotalSent, c.chain.Decimals)
	w.TransactionCount = b.FinalNTx
	return w, nil
}

// BlockTransactions loads the block's txid list and hydrates the first ten
// transactions concurrently. Lookups that fail are left out.
func (c *Client) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	var b block
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/blocks/"+url.PathEscape(id)+"?limit=20&txstart=0", &b); err != nil {
		return nil, err
	}
	if b.TxIDs == nil {
		return nil, upstream.Malformed(Name, "block %s without txids", id)
	}

	ids := b.TxIDs
	if len(ids) > hydrateLimit {
		ids = ids[:hydrateLimit]
	}
	txs, err := upstream.Gather(ctx, c.up.MaxParallel(), len(ids), func(ctx context.Context, i int) (models.Transaction, error) {
		return c.Transaction(ctx, ids[i])
	})
	if len(txs) == 0 && len(ids) > 0 {
		return nil, err
	}
	return txs, nil
}

func (c *Client) toTransaction(t tx) models.Transaction {
	from := make([]string, 0, len(t.Inputs))
	for _, in := range t.Inputs {
		if in.OutputIndex == -1 && len(in.Addresses) == 0 {
			from = []string{models.CoinbaseSender}
			break
		}
		if len(in.Addresses) > 0 {
			from = append(from, c.address(in.Addresses[0]))
		}
	}
	to := make([]string, 0, len(t.Outputs))
	for _, out := range t.Outputs {
		if len(out.Addresses) > 0 {
			to = append(to, c.address(out.Addresses[0]))
		}
	}

	out := models.Transaction{
		Hash:          t.Hash,
		Time:          c.time(t),
		From:          from,
		To:            to,
		Value:         units.FormatUnits(t.Total, c.chain.Decimals),
		Fee:           units.FormatUnits(t.Fees, c.chain.Decimals),
		Confirmations: t.Confirmations,
		Status:        models.StatusPending,
		InputCount:    len(t.Inputs),
		OutputCount:   len(t.Outputs),
	}
	if t.BlockHeight > 0 {
		out.BlockHeight = t.BlockHeight
	}
	if t.Confirmations > 0 {
		out.Status = models.StatusConfirmed
	}
	return out
}

// time prefers the confirmation time and falls back to when the
// transaction was first seen
func (c *Client) time(t tx) string {
	for _, s := range []string{t.Confirmed, t.Received} {
		if s == "" {
			continue
		}
		if ts, err := units.ParseTime(s); err == nil {
			return ts
		}
	}
	return units.Now()
}

func (c *Client) address(a string) string {
	if c.chain.AddressPrefix == "" || strings.HasPrefix(a, c.chain.AddressPrefix) {
		return a
	}
	return c.chain.AddressPrefix + a
}
