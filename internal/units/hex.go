package units

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseQuantity decodes a JSON-RPC hex quantity such as "0x1b4"
func ParseQuantity(s string) (uint64, error) {
	n, err := hexutil.DecodeUint64(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return n, nil
}

// ParseBigQuantity decodes a hex quantity that may exceed 64 bits
func ParseBigQuantity(s string) (*big.Int, error) {
	n, err := hexutil.DecodeBig(s)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return n, nil
}

// EncodeQuantity encodes n as a JSON-RPC hex quantity
func EncodeQuantity(n uint64) string {
	return hexutil.EncodeUint64(n)
}
