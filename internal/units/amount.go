// Package units converts provider values into the display strings used by
// the canonical records.
package units

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Subunit digits of the native coins
const (
	SatoshiDecimals int32 = 8
	WeiDecimals     int32 = 18
	SunDecimals     int32 = 6
	NanotonDecimals int32 = 9
)

// FormatUnits converts an integer subunit amount into the shortest decimal
// string in the display unit: 250000000 sat is "2.5".
func FormatUnits(amount decimal.Decimal, decimals int32) string {
	return amount.Shift(-decimals).String()
}

// FormatInt is FormatUnits for an int64 amount
func FormatInt(amount int64, decimals int32) string {
	return FormatUnits(decimal.NewFromInt(amount), decimals)
}

// FormatBig is FormatUnits for a big.Int amount. A nil amount is zero.
func FormatBig(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return FormatUnits(decimal.NewFromBigInt(amount, 0), decimals)
}

// FormatString parses a decimal string amount and formats it. An empty
// string is zero.
func FormatString(amount string, decimals int32) (string, error) {
	if amount == "" {
		return "0", nil
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return FormatUnits(d, decimals), nil
}

// Sum adds up amounts
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
