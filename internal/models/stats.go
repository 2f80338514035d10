package models

// NetworkStats summarises the current state of a network
type NetworkStats struct {
	TotalBlocks       int64  `json:"totalBlocks"`
	TotalTransactions int64  `json:"totalTransactions"`
	AvgBlockTime      int    `json:"avgBlockTime"`
	Difficulty        string `json:"difficulty"`
	Hashrate          string `json:"hashrate,omitempty"`
	MempoolSize       int64  `json:"mempoolSize"`
}
