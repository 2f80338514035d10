package toncenter

import (
	"github.com/shopspring/decimal"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

// toTransaction maps a TON transaction of addr. An incoming message with
// value is a receive; otherwise the outgoing messages describe a send.
// TON transactions have no block height.
func toTransaction(t transaction, addr string) models.Transaction {
	out := models.Transaction{
		Hash:          t.TransactionID.Hash,
		Time:          units.FromUnix(t.Utime),
		From:          []string{addr},
		To:            []string{addr},
		Value:         "0",
		Fee:           units.FormatUnits(t.Fee, units.NanotonDecimals),
		Confirmations: models.DefaultConfirmations,
		Status:        models.StatusConfirmed,
		InputCount:    1,
		OutputCount:   1,
	}

	switch {
	case t.InMsg != nil && t.InMsg.Value.IsPositive():
		if t.InMsg.Source != "" {
			out.From = []string{t.InMsg.Source}
		}
		if t.InMsg.Destination != "" {
			out.To = []string{t.InMsg.Destination}
		}
		out.Value = units.FormatUnits(t.InMsg.Value, units.NanotonDecimals)
	case len(t.OutMsgs) > 0:
		to := make([]string, 0, len(t.OutMsgs))
		values := make([]decimal.Decimal, 0, len(t.OutMsgs))
		for _, m := range t.OutMsgs {
			if m.Destination != "" {
				to = append(to, m.Destination)
			}
			values = append(values, m.Value)
		}
		if len(to) > 0 {
			out.To = to
		}
		out.Value = units.FormatUnits(units.Sum(values...), units.NanotonDecimals)
		out.OutputCount = len(t.OutMsgs)
	}
	return out
}
