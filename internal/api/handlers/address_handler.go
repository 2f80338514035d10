package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-explorer/internal/provider"
)

var (
	walletPolicy    = detailPolicy("Address not found", "Failed to fetch wallet details")
	walletTxsPolicy = listPolicy("Unable to fetch wallet transactions", "Failed to fetch wallet transactions")
	topPolicy       = emptyPolicy("Failed to fetch top wallets")
)

// AddressHandler handles wallet-related API requests
type AddressHandler struct{}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler() *AddressHandler {
	return &AddressHandler{}
}

// Get returns the wallet summary of an address
// GET /api/wallet/:network/:address
func (h *AddressHandler) Get(c *gin.Context) {
	withProvider(c, walletPolicy, func(p provider.Provider) {
		wallet, err := p.Wallet(c.Request.Context(), c.Param("address"))
		if err != nil {
			respondError(c, err, walletPolicy)
			return
		}
		c.JSON(http.StatusOK, wallet)
	})
}

// GetTransactions returns the latest transactions of an address
// GET /api/wallet/:network/:address/transactions
func (h *AddressHandler) GetTransactions(c *gin.Context) {
	withProvider(c, walletTxsPolicy, func(p provider.Provider) {
		txs, err := p.WalletTransactions(c.Request.Context(), c.Param("address"))
		if err != nil {
			respondError(c, err, walletTxsPolicy)
			return
		}
		c.JSON(http.StatusOK, txs)
	})
}

// Top returns the richest addresses
// GET /api/top-wallets/:network
func (h *AddressHandler) Top(c *gin.Context) {
	withProvider(c, topPolicy, func(p provider.Provider) {
		wallets, err := p.TopWallets(c.Request.Context())
		if err != nil {
			respondError(c, err, topPolicy)
			return
		}
		c.JSON(http.StatusOK, wallets)
	})
}
