package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-explorer/internal/provider"
)

var (
	txsPolicy = listPolicy("Unable to fetch transactions", "Failed to fetch transactions")
	txPolicy  = detailPolicy("Transaction not found", "Failed to fetch transaction details")
)

// TxHandler handles transaction-related API requests
type TxHandler struct{}

// NewTxHandler creates a new TxHandler
func NewTxHandler() *TxHandler {
	return &TxHandler{}
}

// List returns recent transactions
// GET /api/transactions/:network?page=N
func (h *TxHandler) List(c *gin.Context) {
	withProvider(c, txsPolicy, func(p provider.Provider) {
		txs, err := p.Transactions(c.Request.Context(), page(c))
		if err != nil {
			respondError(c, err, txsPolicy)
			return
		}
		c.JSON(http.StatusOK, txs)
	})
}

// Get returns a transaction by hash
// GET /api/transaction/:network/:txHash
func (h *TxHandler) Get(c *gin.Context) {
	withProvider(c, txPolicy, func(p provider.Provider) {
		tx, err := p.Transaction(c.Request.Context(), c.Param("txHash"))
		if err != nil {
			respondError(c, err, txPolicy)
			return
		}
		c.JSON(http.StatusOK, tx)
	})
}
