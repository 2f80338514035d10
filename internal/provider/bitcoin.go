package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// Bitcoin serves btc from mempool.space, blockchain.info, Blockchair and
// an optional node
type Bitcoin struct {
	network models.Network
	mempool Explorer
	bcinfo  LegacyExplorer
	rich    RichList
	node    Node
	log     *logrus.Entry
}

// NewBitcoin creates the btc provider. node may be nil.
func NewBitcoin(mempool Explorer, bcinfo LegacyExplorer, rich RichList, node Node, logger *logrus.Logger) *Bitcoin {
	network, _ := models.LookupNetwork(models.NetworkBTC)
	return &Bitcoin{
		network: network,
		mempool: mempool,
		bcinfo:  bcinfo,
		rich:    rich,
		node:    node,
		log:     logger.WithField("network", models.NetworkBTC),
	}
}

func (p *Bitcoin) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", each(func(ctx context.Context, s BlockSource) (models.NetworkStats, error) {
		return s.Stats(ctx, p.network.AvgBlockTime)
	}, p.bcinfo, p.mempool, p.node)...)
}

func (p *Bitcoin) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", each(func(ctx context.Context, s BlockSource) ([]models.Block, error) {
		return s.RecentBlocks(ctx, page)
	}, p.mempool, p.bcinfo, p.node)...)
}

func (p *Bitcoin) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", each(func(ctx context.Context, s BlockSource) (models.Block, error) {
		return s.Block(ctx, id)
	}, p.mempool, p.bcinfo, p.node)...)
}

func (p *Bitcoin) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "block transactions", each(func(ctx context.Context, s BlockSource) ([]models.Transaction, error) {
		return s.BlockTransactions(ctx, id)
	}, p.mempool, p.bcinfo, p.node)...)
}

// Transactions returns unconfirmed transactions. None of the sources
// pages them.
func (p *Bitcoin) Transactions(ctx context.Context, _ int) ([]models.Transaction, error) {
	attempts := []Attempt[[]models.Transaction]{
		Try(p.mempool.Name(), p.mempool.RecentTransactions),
		Try(p.bcinfo.Name(), p.bcinfo.UnconfirmedTransactions),
	}
	if p.node != nil {
		attempts = append(attempts, Try(p.node.Name(), p.node.RecentTransactions))
	}
	return FirstSuccess(ctx, p.log, "transactions", attempts...)
}

func (p *Bitcoin) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transaction", each(func(ctx context.Context, s BlockSource) (models.Transaction, error) {
		return s.Transaction(ctx, hash)
	}, p.mempool, p.bcinfo, p.node)...)
}

func (p *Bitcoin) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet",
		Try(p.mempool.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.mempool.Address(ctx, address)
		}),
		Try(p.bcinfo.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.bcinfo.Address(ctx, address)
		}),
	)
}

func (p *Bitcoin) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "wallet transactions",
		Try(p.mempool.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.mempool.AddressTransactions(ctx, address)
		}),
		Try(p.bcinfo.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.bcinfo.AddressTransactions(ctx, address)
		}),
	)
}

func (p *Bitcoin) TopWallets(ctx context.Context) ([]models.TopWallet, error) {
	return FirstSuccess(ctx, p.log, "top wallets", Try(p.rich.Name(), p.rich.RichestAddresses))
}
