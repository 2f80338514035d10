package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// Litecoin serves ltc from Litecoin Space, BlockCypher, Blockchair and an
// optional node
type Litecoin struct {
	network     models.Network
	space       Explorer
	blockcypher TxIndex
	rich        RichList
	node        Node
	log         *logrus.Entry
}

// NewLitecoin creates the ltc provider. node may be nil.
func NewLitecoin(space Explorer, blockcypher TxIndex, rich RichList, node Node, logger *logrus.Logger) *Litecoin {
	network, _ := models.LookupNetwork(models.NetworkLTC)
	return &Litecoin{
		network:     network,
		space:       space,
		blockcypher: blockcypher,
		rich:        rich,
		node:        node,
		log:         logger.WithField("network", models.NetworkLTC),
	}
}

func (p *Litecoin) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", each(func(ctx context.Context, s BlockSource) (models.NetworkStats, error) {
		return s.Stats(ctx, p.network.AvgBlockTime)
	}, p.space, p.node)...)
}

func (p *Litecoin) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", each(func(ctx context.Context, s BlockSource) ([]models.Block, error) {
		return s.RecentBlocks(ctx, page)
	}, p.space, p.node)...)
}

func (p *Litecoin) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", each(func(ctx context.Context, s BlockSource) (models.Block, error) {
		return s.Block(ctx, id)
	}, p.space, p.node)...)
}

func (p *Litecoin) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	attempts := []Attempt[[]models.Transaction]{
		Try(p.blockcypher.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.blockcypher.BlockTransactions(ctx, id)
		}),
	}
	attempts = append(attempts, each(func(ctx context.Context, s BlockSource) ([]models.Transaction, error) {
		return s.BlockTransactions(ctx, id)
	}, p.space, p.node)...)
	return FirstSuccess(ctx, p.log, "block transactions", attempts...)
}

func (p *Litecoin) Transactions(ctx context.Context, _ int) ([]models.Transaction, error) {
	attempts := []Attempt[[]models.Transaction]{Try(p.space.Name(), p.space.RecentTransactions)}
	if p.node != nil {
		attempts = append(attempts, Try(p.node.Name(), p.node.RecentTransactions))
	}
	return FirstSuccess(ctx, p.log, "transactions", attempts...)
}

func (p *Litecoin) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	attempts := []Attempt[models.Transaction]{
		Try(p.blockcypher.Name(), func(ctx context.Context) (models.Transaction, error) {
			return p.blockcypher.Transaction(ctx, hash)
		}),
	}
	attempts = append(attempts, each(func(ctx context.Context, s BlockSource) (models.Transaction, error) {
		return s.Transaction(ctx, hash)
	}, p.space, p.node)...)
	return FirstSuccess(ctx, p.log, "transaction", attempts...)
}

func (p *Litecoin) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet",
		Try(p.space.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.space.Address(ctx, address)
		}),
		Try(p.blockcypher.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.blockcypher.AddressBalance(ctx, address)
		}),
	)
}

func (p *Litecoin) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "wallet transactions",
		Try(p.space.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.space.AddressTransactions(ctx, address)
		}),
	)
}

func (p *Litecoin) TopWallets(ctx context.Context) ([]models.TopWallet, error) {
	return FirstSuccess(ctx, p.log, "top wallets", Try(p.rich.Name(), p.rich.RichestAddresses))
}
