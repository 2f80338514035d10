package models

import (
	"fmt"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
)

// Network ids
const (
	NetworkBTC  = "btc"
	NetworkETH  = "eth"
	NetworkBNB  = "bnb"
	NetworkTRON = "trc20"
	NetworkTON  = "ton"
	NetworkLTC  = "ltc"
)

// Network is the static description of a supported network
type Network struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	CoinloreID      string `json:"coinloreId"`
	BlockchairName  string `json:"blockchairName"`
	BlockcypherName string `json:"blockcypherName,omitempty"`

	// Decimals is the number of subunit digits of the native coin
	Decimals int32 `json:"-"`
	// AvgBlockTime is the target block interval in seconds
	AvgBlockTime int `json:"-"`
}

var networks = []Network{
	{ID: NetworkBTC, Name: "Bitcoin", Symbol: "BTC", Color: "#F7931A", Icon: "₿", CoinloreID: "90",
		BlockchairName: "bitcoin", BlockcypherName: "btc/main", Decimals: 8, AvgBlockTime: 600},
	{ID: NetworkETH, Name: "Ethereum", Symbol: "ETH", Color: "#627EEA", Icon: "Ξ", CoinloreID: "80",
		BlockchairName: "ethereum", BlockcypherName: "eth/main", Decimals: 18, AvgBlockTime: 12},
	{ID: NetworkBNB, Name: "BNB Chain", Symbol: "BNB", Color: "#F3BA2F", Icon: "B", CoinloreID: "2710",
		BlockchairName: "bnb", Decimals: 18, AvgBlockTime: 3},
	{ID: NetworkTRON, Name: "TRON", Symbol: "TRX", Color: "#FF0013", Icon: "T", CoinloreID: "2713",
		BlockchairName: "tron", Decimals: 6, AvgBlockTime: 3},
	{ID: NetworkTON, Name: "TON", Symbol: "TON", Color: "#0098EA", Icon: "◎", CoinloreID: "54683",
		BlockchairName: "ton", Decimals: 9, AvgBlockTime: 5},
	{ID: NetworkLTC, Name: "Litecoin", Symbol: "LTC", Color: "#BFBBBB", Icon: "Ł", CoinloreID: "1",
		BlockchairName: "litecoin", BlockcypherName: "ltc/main", Decimals: 8, AvgBlockTime: 150},
}

// Networks returns a copy of the supported network table in display order
func Networks() []Network {
	out := make([]Network, len(networks))
	copy(out, networks)
	return out
}

// LookupNetwork returns the network with the given id
func LookupNetwork(id string) (Network, error) {
	for _, n := range networks {
		if n.ID == id {
			return n, nil
		}
	}
	return Network{}, fmt.Errorf("network %q: %w", id, apperrors.ErrInvalidNetwork)
}

// CoinloreIDs returns the market ticker ids of every network
func CoinloreIDs() []string {
	ids := make([]string, 0, len(networks))
	for _, n := range networks {
		ids = append(ids, n.CoinloreID)
	}
	return ids
}
