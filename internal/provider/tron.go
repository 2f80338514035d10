package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// Tron serves trc20 from TronScan
type Tron struct {
	network  models.Network
	tronscan TronSource
	log      *logrus.Entry
}

// NewTron creates the trc20 provider
func NewTron(tronscan TronSource, logger *logrus.Logger) *Tron {
	network, _ := models.LookupNetwork(models.NetworkTRON)
	return &Tron{
		network:  network,
		tronscan: tronscan,
		log:      logger.WithField("network", models.NetworkTRON),
	}
}

func (p *Tron) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", Try(p.tronscan.Name(), func(ctx context.Context) (models.NetworkStats, error) {
		return p.tronscan.Stats(ctx, p.network.AvgBlockTime)
	}))
}

func (p *Tron) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", Try(p.tronscan.Name(), func(ctx context.Context) ([]models.Block, error) {
		return p.tronscan.RecentBlocks(ctx, page)
	}))
}

func (p *Tron) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", Try(p.tronscan.Name(), func(ctx context.Context) (models.Block, error) {
		return p.tronscan.Block(ctx, id)
	}))
}

func (p *Tron) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "block transactions", Try(p.tronscan.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.tronscan.BlockTransactions(ctx, id)
	}))
}

func (p *Tron) Transactions(ctx context.Context, page int) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transactions", Try(p.tronscan.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.tronscan.RecentTransactions(ctx, page)
	}))
}

func (p *Tron) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transaction", Try(p.tronscan.Name(), func(ctx context.Context) (models.Transaction, error) {
		return p.tronscan.Transaction(ctx, hash)
	}))
}

func (p *Tron) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet", Try(p.tronscan.Name(), func(ctx context.Context) (models.Wallet, error) {
		return p.tronscan.Account(ctx, address)
	}))
}

func (p *Tron) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "wallet transactions", Try(p.tronscan.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.tronscan.AddressTransactions(ctx, address)
	}))
}

// TopWallets is empty: TronScan's rich list needs an API key
func (p *Tron) TopWallets(context.Context) ([]models.TopWallet, error) {
	return emptyList[models.TopWallet]()
}
