package tronscan

import "github.com/shopspring/decimal"

type blockList struct {
	Data []block `json:"data"`
}

type block struct {
	Number         int64           `json:"number"`
	Hash           string          `json:"hash"`
	Timestamp      int64           `json:"timestamp"` // ms
	NrOfTrx        int             `json:"nrOfTrx"`
	Size           int64           `json:"size"`
	WitnessAddress string          `json:"witnessAddress"`
	BlockReward    decimal.Decimal `json:"blockReward"`
}

type txList struct {
	Data  []tx  `json:"data"`
	Total int64 `json:"total"`
}

type tx struct {
	Hash          string          `json:"hash"`
	Block         int64           `json:"block"`
	Timestamp     int64           `json:"timestamp"` // ms
	OwnerAddress  string          `json:"ownerAddress"`
	ToAddress     string          `json:"toAddress"`
	ToAddressList []string        `json:"toAddressList"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Confirmed     bool            `json:"confirmed"`
	ContractRet   string          `json:"contractRet"`
	ContractData  *contractData   `json:"contractData"`
}

type contractData struct {
	Amount    decimal.Decimal `json:"amount"`
	ToAddress string          `json:"to_address"`
}

type account struct {
	Address             string  `json:"address"`
	Balance             int64   `json:"balance"` // sun
	Transactions        int64   `json:"transactions"`
	DateCreated         int64   `json:"date_created"`          // ms
	LatestOperationTime int64   `json:"latest_operation_time"` // ms
	WithPriceTokens     []token `json:"withPriceTokens"`
}

type token struct {
	TokenAbbr       string          `json:"tokenAbbr"`
	TokenName       string          `json:"tokenName"`
	Balance         decimal.Decimal `json:"balance"`
	TokenDecimal    *int32          `json:"tokenDecimal"`
	TokenPriceInUsd float64         `json:"tokenPriceInUsd"`
}
