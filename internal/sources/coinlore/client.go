// Package coinlore reads market tickers from the CoinLore API.
package coinlore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// Name identifies the source in logs and metrics
const Name = "coinlore"

// ticker mirrors a CoinLore ticker. Pointers tell missing fields apart
// from empty ones.
type ticker struct {
	ID               *string         `json:"id"`
	Symbol           *string         `json:"symbol"`
	Name             *string         `json:"name"`
	PriceUSD         *string         `json:"price_usd"`
	PercentChange24h *string         `json:"percent_change_24h"`
	PercentChange7d  *string         `json:"percent_change_7d"`
	MarketCapUSD     *string         `json:"market_cap_usd"`
	Volume24         *models.Number  `json:"volume24"`
	CSupply          json.RawMessage `json:"csupply"`
	TSupply          json.RawMessage `json:"tsupply"`
}

// Client reads CoinLore
type Client struct {
	up      *upstream.Client
	baseURL string
	log     *logrus.Entry
}

// New creates a Client
func New(up *upstream.Client, baseURL string, logger *logrus.Logger) *Client {
	return &Client{up: up, baseURL: baseURL, log: logger.WithField("source", Name)}
}

// Name identifies the source in logs and metrics
func (c *Client) Name() string {
	return Name
}

// Tickers returns the tickers of the given coin ids. Entries missing a
// required field are dropped; the call fails when none is valid.
func (c *Client) Tickers(ctx context.Context, ids []string) ([]models.MarketData, error) {
	var entries []json.RawMessage
	if err := c.up.GetJSON(ctx, Name, c.baseURL+"/ticker/?id="+strings.Join(ids, ","), &entries); err != nil {
		return nil, err
	}

	out := make([]models.MarketData, 0, len(entries))
	for i, raw := range entries {
		var t ticker
		if err := json.Unmarshal(raw, &t); err != nil {
			c.log.WithError(err).WithField("index", i).Warn("dropping undecodable ticker")
			continue
		}
		m, ok := t.valid()
		if !ok {
			c.log.WithField("index", i).Warn("dropping ticker with missing fields")
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, upstream.Malformed(Name, "no valid ticker among %d entries", len(entries))
	}
	return out, nil
}

func (t ticker) valid() (models.MarketData, bool) {
	for _, f := range []*string{t.ID, t.Symbol, t.Name, t.PriceUSD, t.PercentChange24h, t.PercentChange7d, t.MarketCapUSD} {
		if f == nil {
			return models.MarketData{}, false
		}
	}
	if t.Volume24 == nil {
		return models.MarketData{}, false
	}
	return models.MarketData{
		ID:               *t.ID,
		Symbol:           *t.Symbol,
		Name:             *t.Name,
		PriceUSD:         *t.PriceUSD,
		PercentChange24h: *t.PercentChange24h,
		PercentChange7d:  *t.PercentChange7d,
		MarketCapUSD:     *t.MarketCapUSD,
		Volume24:         *t.Volume24,
		CSupply:          text(t.CSupply),
		TSupply:          text(t.TSupply),
	}, true
}

// text renders an optional string or number field
func text(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
