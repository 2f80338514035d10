package tronscan

import (
	"github.com/shopspring/decimal"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

const (
	tokenLimit           = 10
	defaultTokenDecimals = 6
)

func toBlock(b block) models.Block {
	return models.Block{
		Height:           b.Number,
		Hash:             b.Hash,
		Time:             units.FromUnixMilli(b.Timestamp),
		TransactionCount: b.NrOfTrx,
		Size:             b.Size,
		Miner:            b.WitnessAddress,
		Reward:           b.BlockReward.String(),
		Difficulty:       models.NotAvailable,
	}
}

// toTransaction maps a TronScan transaction. The amount and recipient come
// from the top level, or from the contract data for contract calls.
func toTransaction(t tx) models.Transaction {
	amount := t.Amount
	if amount.IsZero() && t.ContractData != nil {
		amount = t.ContractData.Amount
	}
	to := t.ToAddress
	if to == "" && len(t.ToAddressList) > 0 {
		to = t.ToAddressList[0]
	}
	if to == "" && t.ContractData != nil {
		to = t.ContractData.ToAddress
	}

	out := models.Transaction{
		Hash:        t.Hash,
		BlockHeight: t.Block,
		Time:        units.FromUnixMilli(t.Timestamp),
		From:        models.AccountParty(t.OwnerAddress),
		To:          models.AccountParty(to),
		Value:       units.FormatUnits(amount, units.SunDecimals),
		Fee:         units.FormatUnits(t.Fee, units.SunDecimals),
		Status:      models.StatusPending,
		InputCount:  1,
		OutputCount: 1,
	}
	if t.Confirmed {
		out.Status = models.StatusConfirmed
		out.Confirmations = models.DefaultConfirmations
	}
	if t.ContractRet != "" && t.ContractRet != "SUCCESS" {
		out.Status = models.StatusFailed
	}
	return out
}

func toTransactions(txs []tx) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransaction(t))
	}
	return out
}

func toWallet(a account) models.Wallet {
	w := models.NewWallet(a.Address)
	w.Balance = units.FormatInt(a.Balance, units.SunDecimals)
	w.TransactionCount = a.Transactions
	w.Received = models.NotAvailable
	w.Sent = models.NotAvailable
	if a.DateCreated > 0 {
		w.FirstSeen = units.FromUnixMilli(a.DateCreated)
	}
	if a.LatestOperationTime > 0 {
		w.LastSeen = units.FromUnixMilli(a.LatestOperationTime)
	}

	tokens := a.WithPriceTokens
	if len(tokens) > tokenLimit {
		tokens = tokens[:tokenLimit]
	}
	for _, t := range tokens {
		w.Tokens = append(w.Tokens, toToken(t))
	}
	return w
}

func toToken(t token) models.TokenInfo {
	decimals := int32(defaultTokenDecimals)
	if t.TokenDecimal != nil {
		decimals = *t.TokenDecimal
	}
	balance := t.Balance.Shift(-decimals)

	symbol := t.TokenAbbr
	if symbol == "" {
		symbol = t.TokenName
	}
	return models.TokenInfo{
		Symbol:  symbol,
		Name:    t.TokenName,
		Balance: balance.StringFixed(4),
		Value:   balance.Mul(decimal.NewFromFloat(t.TokenPriceInUsd)).StringFixed(2),
	}
}
