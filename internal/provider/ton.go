package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/models"
)

// TON serves ton from toncenter. toncenter has no transaction lookup by
// hash and no listing by block, so those operations report nothing.
type TON struct {
	network   models.Network
	toncenter TonSource
	log       *logrus.Entry
}

// NewTON creates the ton provider
func NewTON(toncenter TonSource, logger *logrus.Logger) *TON {
	network, _ := models.LookupNetwork(models.NetworkTON)
	return &TON{
		network:   network,
		toncenter: toncenter,
		log:       logger.WithField("network", models.NetworkTON),
	}
}

func (p *TON) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", Try(p.toncenter.Name(), func(ctx context.Context) (models.NetworkStats, error) {
		return p.toncenter.Stats(ctx, p.network.AvgBlockTime)
	}))
}

func (p *TON) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", Try(p.toncenter.Name(), func(ctx context.Context) ([]models.Block, error) {
		return p.toncenter.RecentBlocks(ctx, page)
	}))
}

func (p *TON) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", Try(p.toncenter.Name(), func(ctx context.Context) (models.Block, error) {
		return p.toncenter.Block(ctx, id)
	}))
}

func (p *TON) BlockTransactions(context.Context, string) ([]models.Transaction, error) {
	return emptyList[models.Transaction]()
}

// Transactions is always empty, but still fails while toncenter is down so
// that an outage is not reported as a quiet chain
func (p *TON) Transactions(ctx context.Context, _ int) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transactions", Try(p.toncenter.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		if err := p.toncenter.Ping(ctx); err != nil {
			return nil, err
		}
		return emptyList[models.Transaction]()
	}))
}

func (p *TON) Transaction(_ context.Context, hash string) (models.Transaction, error) {
	return models.Transaction{}, apperrors.NotFound("ton transaction %s: lookup by hash is not supported", hash).WithOp("transaction")
}

func (p *TON) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet", Try(p.toncenter.Name(), func(ctx context.Context) (models.Wallet, error) {
		return p.toncenter.Address(ctx, address)
	}))
}

func (p *TON) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "wallet transactions", Try(p.toncenter.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.toncenter.AddressTransactions(ctx, address)
	}))
}

func (p *TON) TopWallets(context.Context) ([]models.TopWallet, error) {
	return emptyList[models.TopWallet]()
}
