package esplora

import "github.com/shopspring/decimal"

type block struct {
	ID         string       `json:"id"`
	Height     int64        `json:"height"`
	Timestamp  int64        `json:"timestamp"`
	TxCount    int          `json:"tx_count"`
	Size       int64        `json:"size"`
	Difficulty float64      `json:"difficulty"`
	Nonce      *uint64      `json:"nonce"`
	MerkleRoot string       `json:"merkle_root"`
	Extras     *blockExtras `json:"extras"`
}

type blockExtras struct {
	Reward *decimal.Decimal `json:"reward"`
	Pool   *struct {
		Name string `json:"name"`
	} `json:"pool"`
}

type tx struct {
	Txid   string   `json:"txid"`
	Vin    []vin    `json:"vin"`
	Vout   []vout   `json:"vout"`
	Fee    int64    `json:"fee"`
	Status txStatus `json:"status"`
}

type vin struct {
	Txid       string `json:"txid"`
	Prevout    *vout  `json:"prevout"`
	IsCoinbase bool   `json:"is_coinbase"`
}

type vout struct {
	ScriptpubkeyAddress string `json:"scriptpubkey_address"`
	Value               int64  `json:"value"`
}

type txStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height"`
	BlockHash   string `json:"block_hash"`
	BlockTime   int64  `json:"block_time"`
}

// mempoolTx is an entry of /mempool/recent
type mempoolTx struct {
	Txid  string `json:"txid"`
	Fee   int64  `json:"fee"`
	Vsize int64  `json:"vsize"`
	Value int64  `json:"value"`
}

type addressStats struct {
	FundedTxoSum int64 `json:"funded_txo_sum"`
	SpentTxoSum  int64 `json:"spent_txo_sum"`
	TxCount      int64 `json:"tx_count"`
}

type address struct {
	Address      string       `json:"address"`
	ChainStats   addressStats `json:"chain_stats"`
	MempoolStats addressStats `json:"mempool_stats"`
}

type mempoolInfo struct {
	Count int64 `json:"count"`
}
