package blockchair

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type respContext struct {
	Code  int    `json:"code"`
	State int64  `json:"state"` // latest block height
	Error string `json:"error"`
}

type listResponse struct {
	Data    []tx        `json:"data"`
	Context respContext `json:"context"`
}

// tx is a row of the transactions table. UTXO chains carry input/output
// counts, account chains carry sender and recipient.
type tx struct {
	Hash        string          `json:"hash"`
	BlockID     int64           `json:"block_id"` // -1 while unconfirmed
	Time        string          `json:"time"`
	Sender      string          `json:"sender"`
	Recipient   string          `json:"recipient"`
	Value       decimal.Decimal `json:"value"`
	OutputTotal decimal.Decimal `json:"output_total"`
	Fee         decimal.Decimal `json:"fee"`
	Failed      bool            `json:"failed"`
	InputCount  int             `json:"input_count"`
	OutputCount int             `json:"output_count"`
	IsCoinbase  bool            `json:"is_coinbase"`
}

// dashboardResponse keeps data raw: Blockchair answers an unknown key with
// an empty JSON array instead of an object.
type dashboardResponse struct {
	Data    json.RawMessage `json:"data"`
	Context respContext     `json:"context"`
}

type txDashboard struct {
	Transaction *tx `json:"transaction"`
}

type addressDashboard struct {
	Address      *address `json:"address"`
	Transactions []string `json:"transactions"`
}

type address struct {
	Balance            decimal.Decimal `json:"balance"`
	BalanceUSD         float64         `json:"balance_usd"`
	Received           decimal.Decimal `json:"received"`
	Spent              decimal.Decimal `json:"spent"`
	TransactionCount   int64           `json:"transaction_count"`
	FirstSeenReceiving string          `json:"first_seen_receiving"`
	LastSeenReceiving  string          `json:"last_seen_receiving"`
}

type richResponse struct {
	Data []richAddress `json:"data"`
}

type richAddress struct {
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	BalanceUSD float64         `json:"balance_usd"`
}
