package models

// Transaction status values
const (
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Address placeholders
const (
	// CoinbaseSender is the only sender of a UTXO transaction that spends no
	// previous output.
	CoinbaseSender = "Coinbase"
	// UnknownAddress stands in for a missing sender or recipient on account
	// chains.
	UnknownAddress = "Unknown"
	// ContractCreation is the recipient of an EVM transaction without a to
	// address.
	ContractCreation = "Contract Creation"
)

// DefaultConfirmations is reported for a confirmed transaction when the
// provider gives no way to compute depth from the chain tip.
const DefaultConfirmations = 6

// Transaction represents a transaction in the canonical shape
type Transaction struct {
	Hash          string   `json:"hash"`
	BlockHeight   int64    `json:"blockHeight"`
	Time          string   `json:"time"`
	From          []string `json:"from"`
	To            []string `json:"to"`
	Value         string   `json:"value"`
	Fee           string   `json:"fee"`
	Confirmations int64    `json:"confirmations"`
	Status        string   `json:"status"`
	InputCount    int      `json:"inputCount,omitempty"`
	OutputCount   int      `json:"outputCount,omitempty"`
}

// AccountParty returns addr as a one-element list, or UnknownAddress when the
// provider left it empty.
func AccountParty(addr string) []string {
	if addr == "" {
		return []string{UnknownAddress}
	}
	return []string{addr}
}

// Confirmations returns the depth of a block at height below tip, counting
// the block itself. A height above tip yields 1 since the block is known to
// exist.
func Confirmations(tip, height int64) int64 {
	if height <= 0 {
		return 0
	}
	if tip < height {
		return 1
	}
	return tip - height + 1
}
