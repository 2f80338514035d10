package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-explorer/internal/provider"
)

var (
	blocksPolicy   = listPolicy("Unable to fetch blocks", "Failed to fetch blocks")
	blockPolicy    = detailPolicy("Block not found", "Failed to fetch block details")
	blockTxsPolicy = emptyPolicy("Failed to fetch block transactions")
)

// BlockHandler handles block-related API requests
type BlockHandler struct{}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler() *BlockHandler {
	return &BlockHandler{}
}

// List returns a window of ten recent blocks, newest first
// GET /api/blocks/:network?page=N
func (h *BlockHandler) List(c *gin.Context) {
	withProvider(c, blocksPolicy, func(p provider.Provider) {
		blocks, err := p.Blocks(c.Request.Context(), page(c))
		if err != nil {
			respondError(c, err, blocksPolicy)
			return
		}
		c.JSON(http.StatusOK, blocks)
	})
}

// Get returns a block by height or hash
// GET /api/block/:network/:blockId
func (h *BlockHandler) Get(c *gin.Context) {
	withProvider(c, blockPolicy, func(p provider.Provider) {
		block, err := p.Block(c.Request.Context(), c.Param("blockId"))
		if err != nil {
			respondError(c, err, blockPolicy)
			return
		}
		c.JSON(http.StatusOK, block)
	})
}

// Transactions returns up to twenty transactions of a block
// GET /api/block/:network/:blockId/transactions
func (h *BlockHandler) Transactions(c *gin.Context) {
	withProvider(c, blockTxsPolicy, func(p provider.Provider) {
		txs, err := p.BlockTransactions(c.Request.Context(), c.Param("blockId"))
		if err != nil {
			respondError(c, err, blockTxsPolicy)
			return
		}
		c.JSON(http.StatusOK, txs)
	})
}
