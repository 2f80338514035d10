package units

import "github.com/shopspring/decimal"

// Halving intervals in blocks
const (
	BitcoinHalvingInterval  int64 = 210000
	LitecoinHalvingInterval int64 = 840000
)

const initialSubsidy = 50 * 100000000

// BlockSubsidy returns the coinbase subsidy in satoshi-like subunits for a
// block at height on a chain that starts at 50 coins and halves every
// interval blocks.
func BlockSubsidy(height, interval int64) int64 {
	if height < 0 || interval <= 0 {
		return 0
	}
	halvings := height / interval
	if halvings >= 64 {
		return 0
	}
	return initialSubsidy >> uint(halvings)
}

// FormatSubsidy renders BlockSubsidy in coins
func FormatSubsidy(height, interval int64) string {
	return FormatUnits(decimal.NewFromInt(BlockSubsidy(height, interval)), SatoshiDecimals)
}
