package provider

import (
	"context"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// fakeSource implements every source interface the providers consume. Each
// call is recorded; a non-nil err fails every call.
type fakeSource struct {
	name  string
	err   error
	calls []string
	page  int

	stats  models.NetworkStats
	blocks []models.Block
	block  models.Block
	txs    []models.Transaction
	tx     models.Transaction
	wallet models.Wallet
	top    []models.TopWallet
}

func newFake(name string) *fakeSource {
	return &fakeSource{
		name:   name,
		stats:  models.NetworkStats{TotalBlocks: 100},
		blocks: []models.Block{{Height: 100, Hash: name}},
		block:  models.Block{Height: 100, Hash: name},
		txs:    []models.Transaction{{Hash: name}},
		tx:     models.Transaction{Hash: name},
		wallet: models.Wallet{Address: name},
		top:    []models.TopWallet{{Rank: 1, Address: name}},
	}
}

func failing(name string, err error) *fakeSource {
	f := newFake(name)
	f.err = err
	return f
}

func (f *fakeSource) hit(op string) error {
	f.calls = append(f.calls, op)
	return f.err
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Stats(_ context.Context, _ int) (models.NetworkStats, error) {
	return f.stats, f.hit("stats")
}

func (f *fakeSource) RecentBlocks(_ context.Context, page int) ([]models.Block, error) {
	f.page = page
	return f.blocks, f.hit("blocks")
}

func (f *fakeSource) Block(context.Context, string) (models.Block, error) {
	return f.block, f.hit("block")
}

func (f *fakeSource) BlockTransactions(context.Context, string) ([]models.Transaction, error) {
	return f.txs, f.hit("block transactions")
}

func (f *fakeSource) Transaction(context.Context, string) (models.Transaction, error) {
	return f.tx, f.hit("transaction")
}

func (f *fakeSource) RecentTransactions(context.Context) ([]models.Transaction, error) {
	return f.txs, f.hit("transactions")
}

func (f *fakeSource) UnconfirmedTransactions(context.Context) ([]models.Transaction, error) {
	return f.txs, f.hit("transactions")
}

func (f *fakeSource) Address(context.Context, string) (models.Wallet, error) {
	return f.wallet, f.hit("wallet")
}

func (f *fakeSource) AddressBalance(context.Context, string) (models.Wallet, error) {
	return f.wallet, f.hit("wallet")
}

func (f *fakeSource) Wallet(context.Context, string) (models.Wallet, error) {
	return f.wallet, f.hit("wallet")
}

func (f *fakeSource) Account(context.Context, string) (models.Wallet, error) {
	return f.wallet, f.hit("wallet")
}

func (f *fakeSource) AddressTransactions(context.Context, string) ([]models.Transaction, error) {
	return f.txs, f.hit("wallet transactions")
}

func (f *fakeSource) RichestAddresses(context.Context) ([]models.TopWallet, error) {
	return f.top, f.hit("top wallets")
}

func (f *fakeSource) Ping(context.Context) error {
	return f.hit("ping")
}

func (f *fakeSource) Tickers(_ context.Context, ids []string) ([]models.MarketData, error) {
	out := make([]models.MarketData, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.MarketData{ID: id})
	}
	return out, f.hit("market")
}

// pagedSource is a fakeSource whose recent transactions are paged, as on
// Blockchair and TronScan
type pagedSource struct {
	*fakeSource
}

func (p pagedSource) RecentTransactions(_ context.Context, page int) ([]models.Transaction, error) {
	p.page = page
	return p.txs, p.hit("transactions")
}
