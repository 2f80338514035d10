package toncenter

import "github.com/shopspring/decimal"

// envelope wraps every toncenter v2 response
type envelope[T any] struct {
	OK     bool   `json:"ok"`
	Result *T     `json:"result"`
	Error  string `json:"error"`
	Code   int    `json:"code"`
}

type masterchainInfo struct {
	Last blockID `json:"last"`
}

type blockID struct {
	Workchain int    `json:"workchain"`
	Shard     string `json:"shard"`
	Seqno     int64  `json:"seqno"`
	RootHash  string `json:"root_hash"`
}

type blockHeader struct {
	ID       blockID `json:"id"`
	GenUtime int64   `json:"gen_utime"`
}

type addressInformation struct {
	Balance decimal.Decimal `json:"balance"` // nanoton
	State   string          `json:"state"`
}

type transaction struct {
	TransactionID struct {
		LT   string `json:"lt"`
		Hash string `json:"hash"`
	} `json:"transaction_id"`
	Utime   int64           `json:"utime"`
	Fee     decimal.Decimal `json:"fee"`
	InMsg   *message        `json:"in_msg"`
	OutMsgs []message       `json:"out_msgs"`
}

type message struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Value       decimal.Decimal `json:"value"`
}
