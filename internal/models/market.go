package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketData is a ticker entry passed through from the market data provider
type MarketData struct {
	ID               string `json:"id"`
	Symbol           string `json:"symbol"`
	Name             string `json:"name"`
	PriceUSD         string `json:"price_usd"`
	PercentChange24h string `json:"percent_change_24h"`
	PercentChange7d  string `json:"percent_change_7d"`
	MarketCapUSD     string `json:"market_cap_usd"`
	Volume24         Number `json:"volume24"`
	CSupply          string `json:"csupply,omitempty"`
	TSupply          string `json:"tsupply,omitempty"`
}

// Number is a JSON value that may be sent either as a number or as a numeric
// string. It is re-encoded exactly as received.
type Number struct {
	raw json.RawMessage
}

// NewNumber returns a Number encoding as a bare JSON number
func NewNumber(d decimal.Decimal) Number {
	return Number{raw: json.RawMessage(d.String())}
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("number is null")
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	if _, err := decimal.NewFromString(text); err != nil {
		return fmt.Errorf("not numeric: %s", data)
	}

	n.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	if len(n.raw) == 0 {
		return []byte("0"), nil
	}
	return n.raw, nil
}

// String returns the numeric text without quotes
func (n Number) String() string {
	var s string
	if err := json.Unmarshal(n.raw, &s); err == nil {
		return s
	}
	return string(n.raw)
}
