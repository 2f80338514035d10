// Package api exposes the explorer over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/api/handlers"
	"github.com/thanhnp/chain-explorer/internal/api/middleware"
	"github.com/thanhnp/chain-explorer/internal/metrics"
	"github.com/thanhnp/chain-explorer/internal/provider"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine         *gin.Engine
	providers      middleware.ProviderLookup
	metrics        *metrics.Metrics
	logger         *logrus.Logger
	networkHandler *handlers.NetworkHandler
	blockHandler   *handlers.BlockHandler
	txHandler      *handlers.TxHandler
	addressHandler *handlers.AddressHandler
}

// NewRouter creates a new Router with all handlers. A nil m disables the
// metrics middleware and the /metrics endpoint.
func NewRouter(providers *provider.Registry, market handlers.TickerLister, m *metrics.Metrics, logger *logrus.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:         gin.New(),
		providers:      providers,
		metrics:        m,
		logger:         logger,
		networkHandler: handlers.NewNetworkHandler(market),
		blockHandler:   handlers.NewBlockHandler(),
		txHandler:      handlers.NewTxHandler(),
		addressHandler: handlers.NewAddressHandler(),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if r.metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	api := r.engine.Group("/api")
	api.GET("/networks", r.networkHandler.List)
	api.GET("/market", r.networkHandler.Market)

	// Per-network routes
	network := api.Group("", middleware.ValidateNetwork(r.providers))
	{
		network.GET("/stats/:network", r.networkHandler.Stats)

		network.GET("/blocks/:network", r.blockHandler.List)
		network.GET("/block/:network/:blockId", r.blockHandler.Get)
		network.GET("/block/:network/:blockId/transactions", r.blockHandler.Transactions)

		network.GET("/transactions/:network", r.txHandler.List)
		network.GET("/transaction/:network/:txHash", r.txHandler.Get)

		network.GET("/wallet/:network/:address", r.addressHandler.Get)
		network.GET("/wallet/:network/:address/transactions", r.addressHandler.GetTransactions)

		network.GET("/top-wallets/:network", r.addressHandler.Top)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
