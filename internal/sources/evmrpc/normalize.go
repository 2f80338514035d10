package evmrpc

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

// posDifficulty is shown for chains whose difficulty no longer means anything
const posDifficulty = "N/A (PoS)"

func (c *Client) toBlock(h header, txCount int) models.Block {
	b := models.Block{
		Hash:             h.Hash,
		Time:             units.FromUnix(int64(h.Timestamp)),
		TransactionCount: txCount,
		Size:             int64(h.Size),
		Miner:            h.Miner,
		Reward:           "0",
		Nonce:            h.Nonce,
		MerkleRoot:       h.TransactionsRoot,
	}
	if h.Number != nil {
		b.Height = int64(*h.Number)
	}
	switch {
	case c.chain.ProofOfStake:
		b.Difficulty = posDifficulty
	case h.Difficulty != nil:
		b.Difficulty = h.Difficulty.ToInt().String()
	}
	return b
}

// toTransaction maps a transaction object. The fee is the gas limit times
// the gas price, an upper bound; lookups with a receipt replace it.
func toTransaction(t rpcTx, blockTime string, confirmations int64) models.Transaction {
	out := models.Transaction{
		Hash:        t.Hash,
		Time:        blockTime,
		From:        models.AccountParty(t.From),
		To:          []string{models.ContractCreation},
		Value:       units.FormatBig(bigOf(t.Value), units.WeiDecimals),
		Fee:         units.FormatBig(mul(uint64(t.Gas), t.GasPrice), units.WeiDecimals),
		Status:      models.StatusPending,
		InputCount:  1,
		OutputCount: 1,
	}
	if t.To != nil && *t.To != "" {
		out.To = []string{*t.To}
	}
	if t.BlockNumber != nil {
		out.BlockHeight = int64(*t.BlockNumber)
		out.Status = models.StatusConfirmed
		out.Confirmations = confirmations
	}
	return out
}

// applyReceipt sets the fee actually paid and marks reverted transactions
func applyReceipt(tx *models.Transaction, t rpcTx, r receipt) {
	price := r.EffectiveGasPrice
	if price == nil {
		price = t.GasPrice
	}
	tx.Fee = units.FormatBig(mul(uint64(r.GasUsed), price), units.WeiDecimals)
	if r.Status != nil && *r.Status == 0 {
		tx.Status = models.StatusFailed
	}
}

func bigOf(b *hexutil.Big) *big.Int {
	if b == nil {
		return nil
	}
	return b.ToInt()
}

func mul(gas uint64, price *hexutil.Big) *big.Int {
	if price == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), price.ToInt())
}
