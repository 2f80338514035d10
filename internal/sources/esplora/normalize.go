package esplora

import (
	"strconv"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

func (c *Client) toBlock(b block) models.Block {
	out := models.Block{
		Height:           b.Height,
		Hash:             b.ID,
		Time:             units.FromUnix(b.Timestamp),
		TransactionCount: b.TxCount,
		Size:             b.Size,
		Difficulty:       units.FormatDifficulty(b.Difficulty),
		MerkleRoot:       b.MerkleRoot,
		Reward:           units.FormatSubsidy(b.Height, c.halvingInterval),
	}
	if b.Nonce != nil {
		out.Nonce = strconv.FormatUint(*b.Nonce, 10)
	}
	if b.Extras != nil {
		if b.Extras.Pool != nil {
			out.Miner = b.Extras.Pool.Name
		}
		if b.Extras.Reward != nil {
			out.Reward = units.FormatUnits(*b.Extras.Reward, units.SatoshiDecimals)
		}
	}
	return out
}

// toTransaction maps an Esplora transaction. tip is the chain height used for
// the confirmation count; zero falls back to the default depth.
func toTransaction(t tx, tip int64) models.Transaction {
	from := make([]string, 0, len(t.Vin))
	for _, in := range t.Vin {
		if in.IsCoinbase {
			from = []string{models.CoinbaseSender}
			break
		}
		if in.Prevout != nil && in.Prevout.ScriptpubkeyAddress != "" {
			from = append(from, in.Prevout.ScriptpubkeyAddress)
		}
	}

	to := make([]string, 0, len(t.Vout))
	var total int64
	for _, out := range t.Vout {
		total += out.Value
		if out.ScriptpubkeyAddress != "" {
			to = append(to, out.ScriptpubkeyAddress)
		}
	}

	out := models.Transaction{
		Hash:        t.Txid,
		From:        from,
		To:          to,
		Value:       units.FormatInt(total, units.SatoshiDecimals),
		Fee:         units.FormatInt(t.Fee, units.SatoshiDecimals),
		Status:      models.StatusPending,
		Time:        units.Now(),
		InputCount:  len(t.Vin),
		OutputCount: len(t.Vout),
	}
	if t.Status.Confirmed {
		out.Status = models.StatusConfirmed
		out.BlockHeight = t.Status.BlockHeight
		out.Time = units.FromUnix(t.Status.BlockTime)
		out.Confirmations = models.DefaultConfirmations
		if tip > 0 {
			out.Confirmations = models.Confirmations(tip, t.Status.BlockHeight)
		}
	}
	return out
}

func toMempoolTransaction(t mempoolTx, now string) models.Transaction {
	return models.Transaction{
		Hash:   t.Txid,
		Time:   now,
		From:   []string{},
		To:     []string{},
		Value:  units.FormatInt(t.Value, units.SatoshiDecimals),
		Fee:    units.FormatInt(t.Fee, units.SatoshiDecimals),
		Status: models.StatusPending,
	}
}

func toWallet(addr string, a address) models.Wallet {
	received := a.ChainStats.FundedTxoSum + a.MempoolStats.FundedTxoSum
	sent := a.ChainStats.SpentTxoSum + a.MempoolStats.SpentTxoSum

	w := models.NewWallet(addr)
	w.Balance = units.FormatInt(received-sent, units.SatoshiDecimals)
	w.Received = units.FormatInt(received, units.SatoshiDecimals)
	w.Sent = units.FormatInt(sent, units.SatoshiDecimals)
	w.TransactionCount = a.ChainStats.TxCount + a.MempoolStats.TxCount
	return w
}
