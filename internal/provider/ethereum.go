package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// Ethereum serves eth from a JSON-RPC endpoint, Blockchair and BlockCypher
type Ethereum struct {
	network     models.Network
	rpc         EVMSource
	blockchair  Ledger
	blockcypher TxIndex
	log         *logrus.Entry
}

// NewEthereum creates the eth provider
func NewEthereum(rpc EVMSource, blockchair Ledger, blockcypher TxIndex, logger *logrus.Logger) *Ethereum {
	network, _ := models.LookupNetwork(models.NetworkETH)
	return &Ethereum{
		network:     network,
		rpc:         rpc,
		blockchair:  blockchair,
		blockcypher: blockcypher,
		log:         logger.WithField("network", models.NetworkETH),
	}
}

func (p *Ethereum) Stats(ctx context.Context) (models.NetworkStats, error) {
	return FirstSuccess(ctx, p.log, "stats", Try(p.rpc.Name(), func(ctx context.Context) (models.NetworkStats, error) {
		return p.rpc.Stats(ctx, p.network.AvgBlockTime)
	}))
}

func (p *Ethereum) Blocks(ctx context.Context, page int) ([]models.Block, error) {
	return FirstSuccess(ctx, p.log, "blocks", Try(p.rpc.Name(), func(ctx context.Context) ([]models.Block, error) {
		return p.rpc.RecentBlocks(ctx, page)
	}))
}

func (p *Ethereum) Block(ctx context.Context, id string) (models.Block, error) {
	return FirstSuccess(ctx, p.log, "block", Try(p.rpc.Name(), func(ctx context.Context) (models.Block, error) {
		return p.rpc.Block(ctx, id)
	}))
}

func (p *Ethereum) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "block transactions", Try(p.rpc.Name(), func(ctx context.Context) ([]models.Transaction, error) {
		return p.rpc.BlockTransactions(ctx, id)
	}))
}

// Transactions pages through Blockchair. The RPC fallback only knows the
// latest block.
func (p *Ethereum) Transactions(ctx context.Context, page int) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transactions",
		Try(p.blockchair.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.blockchair.RecentTransactions(ctx, page)
		}),
		Try(p.rpc.Name(), p.rpc.RecentTransactions),
	)
}

func (p *Ethereum) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "transaction",
		Try(p.blockchair.Name(), func(ctx context.Context) (models.Transaction, error) {
			return p.blockchair.Transaction(ctx, hash)
		}),
		Try(p.blockcypher.Name(), func(ctx context.Context) (models.Transaction, error) {
			return p.blockcypher.Transaction(ctx, hash)
		}),
		Try(p.rpc.Name(), func(ctx context.Context) (models.Transaction, error) {
			return p.rpc.Transaction(ctx, hash)
		}),
	)
}

func (p *Ethereum) Wallet(ctx context.Context, address string) (models.Wallet, error) {
	return FirstSuccess(ctx, p.log, "wallet",
		Try(p.blockchair.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.blockchair.Address(ctx, address)
		}),
		Try(p.blockcypher.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.blockcypher.AddressBalance(ctx, address)
		}),
		Try(p.rpc.Name(), func(ctx context.Context) (models.Wallet, error) {
			return p.rpc.Wallet(ctx, address)
		}),
	)
}

func (p *Ethereum) WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error) {
	return FirstSuccess(ctx, p.log, "wallet transactions",
		Try(p.blockchair.Name(), func(ctx context.Context) ([]models.Transaction, error) {
			return p.blockchair.AddressTransactions(ctx, address)
		}),
	)
}

func (p *Ethereum) TopWallets(ctx context.Context) ([]models.TopWallet, error) {
	return FirstSuccess(ctx, p.log, "top wallets", Try(p.blockchair.Name(), p.blockchair.RichestAddresses))
}
