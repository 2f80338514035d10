package models

// Wallet represents an address summary. Balances are decimal strings in the
// network's display unit.
type Wallet struct {
	Address          string      `json:"address"`
	Balance          string      `json:"balance"`
	BalanceUSD       string      `json:"balanceUsd,omitempty"`
	TransactionCount int64       `json:"transactionCount"`
	FirstSeen        string      `json:"firstSeen,omitempty"`
	LastSeen         string      `json:"lastSeen,omitempty"`
	Received         string      `json:"received"`
	Sent             string      `json:"sent"`
	Tokens           []TokenInfo `json:"tokens"`
	NFTs             []NFTInfo   `json:"nfts"`
}

// NotAvailable marks received/sent totals the provider does not expose
const NotAvailable = "N/A"

// TokenInfo is a token balance held by a wallet
type TokenInfo struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
	Value   string `json:"value"`
}

// NFTInfo is an NFT held by a wallet
type NFTInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Collection string `json:"collection"`
	Image      string `json:"image"`
}

// NewWallet returns a wallet with empty token and NFT lists so they encode
// as [] rather than null.
func NewWallet(address string) Wallet {
	return Wallet{
		Address: address,
		Tokens:  []TokenInfo{},
		NFTs:    []NFTInfo{},
	}
}

// TopWallet is one entry of a richest-addresses list
type TopWallet struct {
	Rank       int     `json:"rank"`
	Address    string  `json:"address"`
	Balance    string  `json:"balance"`
	BalanceUSD string  `json:"balanceUsd"`
	Label      *string `json:"label"`
	Type       string  `json:"type"`
}

// WalletTypeUnknown is the type of every ranked address; no provider labels
// exchanges or contracts.
const WalletTypeUnknown = "unknown"
