package blockchaininfo

type stats struct {
	NBlocksTotal        int64   `json:"n_blocks_total"`
	NTx                 int64   `json:"n_tx"`
	Difficulty          float64 `json:"difficulty"`
	HashRate            float64 `json:"hash_rate"` // GH/s
	MempoolTransactions int64   `json:"mempool_transactions"`
}

type latestBlock struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
}

type blockHeightResponse struct {
	Blocks []block `json:"blocks"`
}

type block struct {
	Hash       string  `json:"hash"`
	Height     int64   `json:"height"`
	Time       int64   `json:"time"`
	NTx        int     `json:"n_tx"`
	Size       int64   `json:"size"`
	RelayedBy  string  `json:"relayed_by"`
	Difficulty float64 `json:"difficulty"`
	Nonce      *uint64 `json:"nonce"`
	MrklRoot   string  `json:"mrkl_root"`
	Tx         []tx    `json:"tx"`
}

type tx struct {
	Hash        string   `json:"hash"`
	BlockHeight *int64   `json:"block_height"`
	Time        int64    `json:"time"`
	Fee         int64    `json:"fee"`
	VinSz       int      `json:"vin_sz"`
	VoutSz      int      `json:"vout_sz"`
	Inputs      []input  `json:"inputs"`
	Out         []output `json:"out"`
}

type input struct {
	PrevOut *output `json:"prev_out"`
}

type output struct {
	Addr  string `json:"addr"`
	Value int64  `json:"value"`
}

type unconfirmed struct {
	Txs []tx `json:"txs"`
}

type rawAddr struct {
	Address       string `json:"address"`
	NTx           int64  `json:"n_tx"`
	TotalReceived int64  `json:"total_received"`
	TotalSent     int64  `json:"total_sent"`
	FinalBalance  int64  `json:"final_balance"`
	Txs           []tx   `json:"txs"`
}
