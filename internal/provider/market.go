package provider

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/models"
)

// TickerSource serves market tickers by coin id
type TickerSource interface {
	Name() string
	Tickers(ctx context.Context, ids []string) ([]models.MarketData, error)
}

// Market serves the tickers of every supported network
type Market struct {
	source TickerSource
	ids    []string
	log    *logrus.Entry
}

// NewMarket creates a Market
func NewMarket(source TickerSource, logger *logrus.Logger) *Market {
	return &Market{
		source: source,
		ids:    models.CoinloreIDs(),
		log:    logger.WithField("component", "market"),
	}
}

// Tickers returns one entry per network the source has valid data for
func (m *Market) Tickers(ctx context.Context) ([]models.MarketData, error) {
	return FirstSuccess(ctx, m.log, "market", Try(m.source.Name(), func(ctx context.Context) ([]models.MarketData, error) {
		return m.source.Tickers(ctx, m.ids)
	}))
}
