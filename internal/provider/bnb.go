package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// BNB serves bnb from a BNB Smart Chain JSON-RPC endpoint. No public
// source indexes address history or balances by rank, so those lists are
// empty.
type BNB struct {
	network models.Network
	rpc     EVMSource
	log     *logrus.Entry
}

// NewBNB creates the bnb provider
func NewBNB(rpc EVMSource, logger *logrus.Logger) *BNB {
	network, _ := models.LookupNetwork(models.NetworkBNB)
	return &BNB{
		network: network,
		rpc:     rpc,
		log:     logger.WithField("network", models.NetworkBNB),
	}
}

func (p *BNB) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", Try(p.rpc.Name(), func(ctx context.Context) (models.NetworkStats, error) {
		return p.rpc.Stats(ctx, p.network.AvgBlockTime)
	}))
}

func (p *BNB) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", Try(p.rpc.Name(), func(ctx context.Context) ([]models.Block, error) {
		return p.rpc.RecentBlocks(ctx, page)
	}))
}

func (p *BNB) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", Try(p.rpc.Name(), func(ctx context.Context) (models.Block, error) {
		return p.rpc.Block(ctx, id)
	}))
}

func (p *BNB) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "block transactions", Try(p.rpc.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.rpc.BlockTransactions(ctx, id)
	}))
}

func (p *BNB) Transactions(ctx context.Context, _ int) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transactions", Try(p.rpc.Name(), p.rpc.RecentTransactions))
}

func (p *BNB) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transaction", Try(p.rpc.Name(), func(ctx context.Context) (models.Transaction, error) {
		return p.rpc.Transaction(ctx, hash)
	}))
}

func (p *BNB) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet", Try(p.rpc.Name(), func(ctx context.Context) (models.Wallet, error) {
		return p.rpc.Wallet(ctx, address)
	}))
}

func (p *BNB) WalletTransactions(context.Context, string) ([]models.Transaction, error) {
	return emptyList[models.Transaction]()
}

func (p *BNB) TopWallets(context.Context) ([]models.TopWallet, error) {
	return emptyList[models.TopWallet]()
}
