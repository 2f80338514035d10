package blockcypher

import "github.com/shopspring/decimal"

type tx struct {
	Hash          string          `json:"hash"`
	BlockHeight   int64           `json:"block_height"` // -1 while unconfirmed
	Total         decimal.Decimal `json:"total"`
	Fees          decimal.Decimal `json:"fees"`
	Confirmed     string          `json:"confirmed"`
	Received      string          `json:"received"`
	Confirmations int64           `json:"confirmations"`
	VinSz         int             `json:"vin_sz"`
	VoutSz        int             `json:"vout_sz"`
	Inputs        []input         `json:"inputs"`
	Outputs       []output        `json:"outputs"`
}

type input struct {
	Addresses   []string `json:"addresses"`
	OutputIndex int64    `json:"output_index"` // -1 for coinbase
}

type output struct {
	Addresses []string        `json:"addresses"`
	Value     decimal.Decimal `json:"value"`
}

type balance struct {
	Address       string          `json:"address"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalSent     decimal.Decimal `json:"total_sent"`
	FinalBalance  decimal.Decimal `json:"final_balance"`
	FinalNTx      int64           `json:"final_n_tx"`
}

type block struct {
	Hash   string   `json:"hash"`
	Height int64    `json:"height"`
	TxIDs  []string `json:"txids"`
}
