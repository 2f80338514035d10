package evmrpc

import "github.com/ethereum/go-ethereum/common/hexutil"

type header struct {
	Number           *hexutil.Uint64 `json:"number"`
	Hash             string          `json:"hash"`
	Timestamp        hexutil.Uint64  `json:"timestamp"`
	Size             hexutil.Uint64  `json:"size"`
	Miner            string          `json:"miner"`
	Difficulty       *hexutil.Big    `json:"difficulty"`
	Nonce            string          `json:"nonce"`
	TransactionsRoot string          `json:"transactionsRoot"`
}

// blockHashes is a block fetched with hydration disabled
type blockHashes struct {
	header
	Transactions []string `json:"transactions"`
}

// blockTxs is a block fetched with full transaction objects
type blockTxs struct {
	header
	Transactions []rpcTx `json:"transactions"`
}

type rpcTx struct {
	Hash        string          `json:"hash"`
	BlockNumber *hexutil.Uint64 `json:"blockNumber"` // nil while pending
	From        string          `json:"from"`
	To          *string         `json:"to"` // nil for contract creation
	Value       *hexutil.Big    `json:"value"`
	Gas         hexutil.Uint64  `json:"gas"`
	GasPrice    *hexutil.Big    `json:"gasPrice"`
}

type receipt struct {
	Status            *hexutil.Uint64 `json:"status"`
	GasUsed           hexutil.Uint64  `json:"gasUsed"`
	EffectiveGasPrice *hexutil.Big    `json:"effectiveGasPrice"`
}
