package blockchaininfo

import (
	"strconv"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

func toBlock(b block) models.Block {
	out := models.Block{
		Height:           b.Height,
		Hash:             b.Hash,
		Time:             units.FromUnix(b.Time),
		TransactionCount: b.NTx,
		Size:             b.Size,
		Miner:            b.RelayedBy,
		Reward:           units.FormatSubsidy(b.Height, units.BitcoinHalvingInterval),
		MerkleRoot:       b.MrklRoot,
	}
	if b.Difficulty > 0 {
		out.Difficulty = units.FormatDifficulty(b.Difficulty)
	}
	if b.Nonce != nil {
		out.Nonce = strconv.FormatUint(*b.Nonce, 10)
	}
	return out
}

// toTransaction maps a blockchain.info transaction. An input without a
// previous output marks a coinbase transaction.
func toTransaction(t tx) models.Transaction {
	from := make([]string, 0, len(t.Inputs))
	for _, in := range t.Inputs {
		if in.PrevOut == nil {
			from = []string{models.CoinbaseSender}
			break
		}
		if in.PrevOut.Addr != "" {
			from = append(from, in.PrevOut.Addr)
		}
	}

	to := make([]string, 0, len(t.Out))
	var total int64
	for _, o := range t.Out {
		total += o.Value
		if o.Addr != "" {
			to = append(to, o.Addr)
		}
	}

	out := models.Transaction{
		Hash:        t.Hash,
		Time:        units.FromUnix(t.Time),
		From:        from,
		To:          to,
		Value:       units.FormatInt(total, units.SatoshiDecimals),
		Fee:         units.FormatInt(t.Fee, units.SatoshiDecimals),
		Status:      models.StatusPending,
		InputCount:  t.VinSz,
		OutputCount: t.VoutSz,
	}
	if t.BlockHeight != nil && *t.BlockHeight > 0 {
		out.BlockHeight = *t.BlockHeight
		out.Status = models.StatusConfirmed
		out.Confirmations = models.DefaultConfirmations
	}
	return out
}

func toTransactions(txs []tx, limit int) []models.Transaction {
	if len(txs) > limit {
		txs = txs[:limit]
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t))
	}
	return out
}
