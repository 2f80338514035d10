// Package blockchair reads the Blockchair API: transaction tables,
// transaction and address dashboards, and the richest addresses.
package blockchair

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "blockchair"

const (
	pageSize     = 20
	hydrateLimit = 10
	richLimit    = 10
)

// Chain describes one Blockchair chain
type Chain struct {
	Name     string // e.g. "bitcoin"
	Decimals int32
	// Account chains report a single sender and recipient per transaction
	Account bool
}

// Client reads one Blockchair chain
type Client struct {
	up      *upstream.Client
	baseURL string
	chain   Chain
}

// New creates a Client for chain
func New(up *upstream.Client, baseURL string, chain Chain) *Client {
	return &Client{up: up, baseURL: strings.TrimRight(baseURL, "/") + "/" + chain.Name, chain: chain}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return Name
}

// RecentTransactions returns a page of the newest transactions
func (c *Client) RecentTransactions(ctx context.Context, page int) ([]models.Transaction, error) {
	var resp listResponse
	endpoint := fmt.Sprintf("%s/transactions?limit=%d&offset=%d", c.baseURL, pageSize, (max(page, 1)-1)*pageSize)
	if err := c.up.GetJSON(ctx, Name, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, upstream.Malformed(Name, "transactions without data")
	}

	out := make([]models.Transaction, 0, len(resp.Data))
	for _, t := range resp.Data {
		out = append(out, c.toTransaction(t, resp.Context.State))
	}
	return out, nil
}

// Transaction returns a transaction from its dashboard
func (c *Client) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	var resp dashboardResponse
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/dashboards/transaction/"+url.PathEscape(hash), &resp); err != nil {
		return models.Transaction{}, err
	}

	var entry txDashboard
	if err := pick(resp.Data, hash, &entry); err != nil {
		return models.Transaction{}, err
	}
	if entry.Transaction == nil {
		return models.Transaction{}, upstream.NotFound(Name, "transaction %s", hash)
	}
	return c.toTransaction(*entry.Transaction, resp.Context.State), nil
}

func (c *Client) addressDashboard(ctx context.Context, addr string, limit int) (addressDashboard, error) {
	var resp dashboardResponse
	endpoint := c.baseURL + "/dashboards/address/" + url.PathEscape(addr)
	if limit > 0 {
		endpoint += fmt.Sprintf("?limit=%d", limit)
	}
	if err := c.up.GetJSON(ctx, Name, endpoint, &resp); err != nil {
		return addressDashboard{}, err
	}

	var entry addressDashboard
	if err := pick(resp.Data, addr, &entry); err != nil {
		return addressDashboard{}, err
	}
	if entry.Address == nil {
		return addressDashboard{}, upstream.NotFound(Name, "address %s", addr)
	}
	return entry, nil
}

// Address returns the wallet summary from the address dashboard
func (c *Client) Address(ctx context.Context, addr string) (models.Wallet, error) {
	entry, err := c.addressDashboard(ctx, addr, 0)
	if err != nil {
		return models.Wallet{}, err
	}
	a := entry.Address

	w := models.NewWallet(addr)
	w.Balance = units.FormatUnits(a.Balance, c.chain.Decimals)
	w.Received = units.FormatUnits(a.Received, c.chain.Decimals)
	w.Sent = units.FormatUnits(a.Spent, c.chain.Decimals)
	w.TransactionCount = a.TransactionCount
	if a.BalanceUSD > 0 {
		w.BalanceUSD = decimal.NewFromFloat(a.BalanceUSD).StringFixed(2)
	}
	if ts, err := units.ParseTime(a.FirstSeenReceiving); err == nil {
		w.FirstSeen = ts
	}
	if ts, err := units.ParseTime(a.LastSeenReceiving); err == nil {
		w.LastSeen = ts
	}
	return w, nil
}

// AddressTransactions hydrates the newest transaction hashes of the
// address dashboard. Lookups that fail are left out.
func (c *Client) AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error) {
	entry, err := c.addressDashboard(ctx, addr, pageSize)
	if err != nil {
		return nil, err
	}

	hashes := entry.Transactions
	if len(hashes) > hydrateLimit {
		hashes = hashes[:hydrateLimit]
	}
	txs, err := upstream.Gather(ctx, c.up.MaxParallel(), len(hashes), func(ctx context.Context, i int) (models.Transaction, error) {
		return c.Transaction(ctx, hashes[i])
	})
	if len(txs) == 0 && len(hashes) > 0 {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// RichestAddresses returns the ten addresses with the highest balance
func (c *Client) RichestAddresses(ctx context.Context) ([]models.TopWallet, error) {
	var resp richResponse
	endpoint := fmt.Sprintf("%s/addresses?limit=%d&s=balance(desc)", c.baseURL, richLimit)
	if err := c.up.GetJSON(ctx, Name, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, upstream.Malformed(Name, "addresses without data")
	}

	out := make([]models.TopWallet, 0, len(resp.Data))
	for i, a := range resp.Data {
		out = append(out, models.TopWallet{
			Rank:       i + 1,
			Address:    a.Address,
			Balance:    units.GroupThousands(a.Balance.Shift(-c.chain.Decimals)),
			BalanceUSD: units.CompactUSD(a.BalanceUSD),
			Type:       models.WalletTypeUnknown,
		})
	}
	return out, nil
}

func (c *Client) toTransaction(t tx, tip int64) models.Transaction {
	out := models.Transaction{
		Hash:        t.Hash,
		Fee:         units.FormatUnits(t.Fee, c.chain.Decimals),
		Status:      models.StatusPending,
		InputCount:  t.InputCount,
		OutputCount: t.OutputCount,
	}

	if c.chain.Account {
		out.From = models.AccountParty(t.Sender)
		out.To = models.AccountParty(t.Recipient)
		out.Value = units.FormatUnits(t.Value, c.chain.Decimals)
		out.InputCount, out.OutputCount = 1, 1
	} else {
		// table rows carry no addresses for UTXO chains
		out.From, out.To = []string{}, []string{}
		if t.IsCoinbase {
			out.From = []string{models.CoinbaseSender}
		}
		out.Value = units.FormatUnits(t.OutputTotal, c.chain.Decimals)
	}

	if ts, err := units.ParseTime(t.Time); err == nil {
		out.Time = ts
	} else {
		out.Time = units.Now()
	}

	if t.BlockID > 0 {
		out.BlockHeight = t.BlockID
		out.Status = models.StatusConfirmed
		out.Confirmations = models.DefaultConfirmations
		if tip > 0 {
			out.Confirmations = models.Confirmations(tip, t.BlockID)
		}
	}
	if t.Failed {
		out.Status = models.StatusFailed
	}
	return out
}

// pick decodes the dashboard entry for key. Blockchair keys dashboards by
// the requested id, lowercased for hex ids, and returns [] when nothing
// matched.
func pick(data json.RawMessage, key string, out any) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" || strings.HasPrefix(trimmed, "[") {
		return upstream.NotFound(Name, "%s", key)
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return upstream.Malformed(Name, "dashboard data: %v", err)
	}

	raw, ok := entries[key]
	if !ok {
		raw, ok = entries[strings.ToLower(key)]
	}
	if !ok && len(entries) == 1 {
		for _, v := range entries {
			raw, ok = v, true
		}
	}
	if !ok {
		return upstream.NotFound(Name, "%s", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return upstream.Malformed(Name, "dashboard entry %s: %v", key, err)
	}
	return nil
}
