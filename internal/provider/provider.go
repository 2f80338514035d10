// Package provider assembles, per network, the ordered lists of upstream
// sources that serve each explorer operation.
package provider

import (
	"context"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// Provider serves the explorer operations of one network
type Provider interface {
	Stats(ctx context.Context) (models.NetworkStats, error)
	Blocks(ctx context.Context, page int) ([]models.Block, error)
	Block(ctx context.Context, id string) (models.Block, error)
	BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error)
	Transactions(ctx context.Context, page int) ([]models.Transaction, error)
	Transaction(ctx context.Context, hash string) (models.Transaction, error)
	Wallet(ctx context.Context, address string) (models.Wallet, error)
	WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error)
	TopWallets(ctx context.Context) ([]models.TopWallet, error)
}

// The interfaces below are what the providers need from the sources
// packages.

type named interface {
	Name() string
}

// BlockSource serves the block explorer views of a chain
type BlockSource interface {
	named
	Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error)
	RecentBlocks(ctx context.Context, page int) ([]models.Block, error)
	Block(ctx context.Context, id string) (models.Block, error)
	BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error)
	Transaction(ctx context.Context, hash string) (models.Transaction, error)
}

// Node is a block source backed by a node: its recent transactions come
// from the mempool
type Node interface {
	BlockSource
	RecentTransactions(ctx context.Context) ([]models.Transaction, error)
}

// AddressSource looks up wallets
type AddressSource interface {
	Address(ctx context.Context, addr string) (models.Wallet, error)
	AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error)
}

// Explorer is a full indexer such as an Esplora instance
type Explorer interface {
	Node
	AddressSource
}

// LegacyExplorer is blockchain.info
type LegacyExplorer interface {
	BlockSource
	AddressSource
	UnconfirmedTransactions(ctx context.Context) ([]models.Transaction, error)
}

// RichList ranks the richest addresses
type RichList interface {
	named
	RichestAddresses(ctx context.Context) ([]models.TopWallet, error)
}

// Ledger is a paged transaction index with address dashboards, Blockchair
type Ledger interface {
	RichList
	AddressSource
	RecentTransactions(ctx context.Context, page int) ([]models.Transaction, error)
	Transaction(ctx context.Context, hash string) (models.Transaction, error)
}

// TxIndex is BlockCypher
type TxIndex interface {
	named
	Transaction(ctx context.Context, hash string) (models.Transaction, error)
	BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error)
	AddressBalance(ctx context.Context, addr string) (models.Wallet, error)
}

// EVMSource is an Ethereum-compatible JSON-RPC endpoint
type EVMSource interface {
	Node
	Wallet(ctx context.Context, addr string) (models.Wallet, error)
}

// TronSource is TronScan
type TronSource interface {
	BlockSource
	RecentTransactions(ctx context.Context, page int) ([]models.Transaction, error)
	Account(ctx context.Context, addr string) (models.Wallet, error)
	AddressTransactions(ctx context.Context, addr string) ([]models.Transaction, error)
}

// TonSource is toncenter
type TonSource interface {
	named
	AddressSource
	Ping(ctx context.Context) error
	Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error)
	RecentBlocks(ctx context.Context, page int) ([]models.Block, error)
	Block(ctx context.Context, id string) (models.Block, error)
}
