package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/provider"
)

var (
	statsPolicy  = listPolicy("Unable to fetch network statistics", "Failed to fetch network statistics")
	marketPolicy = listPolicy("Failed to fetch market data", "Failed to fetch market data")
)

// TickerLister serves the market tickers
type TickerLister interface {
	Tickers(ctx context.Context) ([]models.MarketData, error)
}

// NetworkHandler serves the network table, market data and statistics
type NetworkHandler struct {
	market TickerLister
}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler(market TickerLister) *NetworkHandler {
	return &NetworkHandler{market: market}
}

// List returns the supported networks
// GET /api/networks
func (h *NetworkHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.Networks())
}

// Market returns the tickers of every network
// GET /api/market
func (h *NetworkHandler) Market(c *gin.Context) {
	tickers, err := h.market.Tickers(c.Request.Context())
	if err != nil {
		respondError(c, err, marketPolicy)
		return
	}
	c.JSON(http.StatusOK, tickers)
}

// Stats returns the statistics of a network
// GET /api/stats/:network
func (h *NetworkHandler) Stats(c *gin.Context) {
	withProvider(c, statsPolicy, func(p provider.Provider) {
		stats, err := p.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err, statsPolicy)
			return
		}
		c.JSON(http.StatusOK, stats)
	})
}
