package units

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// GroupThousands renders a display-unit amount with thousands separators and
// at most three decimals, e.g. 248597.12345 as "248,597.123".
func GroupThousands(amount decimal.Decimal) string {
	f, _ := amount.Round(3).Float64()
	return humanize.CommafWithDigits(f, 3)
}

// CompactUSD renders a USD amount with a B or M suffix. Zero means the
// provider did not report a value.
func CompactUSD(usd float64) string {
	switch {
	case usd <= 0:
		return "N/A"
	case usd >= 1e9:
		return fmt.Sprintf("%.1fB", usd/1e9)
	case usd >= 1e6:
		return fmt.Sprintf("%.1fM", usd/1e6)
	default:
		return fmt.Sprintf("%.2f", usd)
	}
}
