package models

// Block represents a block in the canonical shape shared by every network.
// Miner, reward, difficulty and nonce are display strings whose meaning
// depends on the chain.
type Block struct {
	Height           int64  `json:"height"`
	Hash             string `json:"hash"`
	Time             string `json:"time"`
	TransactionCount int    `json:"transactionCount"`
	Size             int64  `json:"size"`
	Miner            string `json:"miner,omitempty"`
	Reward           string `json:"reward,omitempty"`
	Difficulty       string `json:"difficulty,omitempty"`
	Nonce            string `json:"nonce,omitempty"`
	MerkleRoot       string `json:"merkleRoot,omitempty"`
}
