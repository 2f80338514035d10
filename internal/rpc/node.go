// Package rpc talks to a self-hosted bitcoind or litecoind over JSON-RPC
// and serves explorer records from it.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/config"
)

// Node is the subset of the bitcoind JSON-RPC API the explorer reads.
// Litecoin and Bitcoin nodes expose the same calls.
type Node interface {
	BlockCount(ctx context.Context) (int64, error)
	BlockHash(ctx context.Context, height int64) (string, error)
	// Block returns a block with its txids only
	Block(ctx context.Context, hash string) (*Block, error)
	// BlockWithTxs returns a block with decoded transactions
	BlockWithTxs(ctx context.Context, hash string) (*Block, error)
	Transaction(ctx context.Context, hash string) (*Tx, error)
	Mempool(ctx context.Context) ([]string, error)
	Difficulty(ctx context.Context) (float64, error)
	ChainTxCount(ctx context.Context) (int64, error)
	NetworkInfo(ctx context.Context) (NetworkInfo, error)
	Close()
}

// Block is a verbose block decoded from either node implementation
type Block struct {
	Hash          string
	Height        int64
	Confirmations int64
	Time          int64
	Size          int64
	Difficulty    float64
	Nonce         uint32
	MerkleRoot    string
	TxIDs         []string
	Txs           []Tx
}

// TxCount returns the number of transactions in the block
func (b *Block) TxCount() int {
	if len(b.Txs) > 0 {
		return len(b.Txs)
	}
	return len(b.TxIDs)
}

// Tx is a verbose transaction. Values are in whole coins as the node
// reports them.
type Tx struct {
	Txid          string
	BlockHash     string
	Confirmations uint64
	Time          int64
	Vin           []Input
	Vout          []Output
}

// Input spends a previous output, or is the coinbase
type Input struct {
	Coinbase bool
	Txid     string
	Vout     uint32
}

// Output is a transaction output
type Output struct {
	Value     float64
	Addresses []string
}

// NetworkInfo is the node's advertised version
type NetworkInfo struct {
	Version    int32
	SubVersion string
}

// rawTx is a verbose transaction as getrawtransaction and getblock with
// verbosity 2 return it. Releases before 22.0 list the output addresses
// under "addresses", later ones a single "address".
type rawTx struct {
	Txid          string `json:"txid"`
	BlockHash     string `json:"blockhash"`
	Confirmations uint64 `json:"confirmations"`
	Time          int64  `json:"time"`
	Vin           []struct {
		Coinbase string `json:"coinbase"`
		Txid     string `json:"txid"`
		Vout     uint32 `json:"vout"`
	} `json:"vin"`
	Vout []struct {
		Value        float64 `json:"value"`
		ScriptPubKey struct {
			Address   string   `json:"address"`
			Addresses []string `json:"addresses"`
		} `json:"scriptPubKey"`
	} `json:"vout"`
}

func (r *rawTx) tx() Tx {
	tx := Tx{
		Txid:          r.Txid,
		BlockHash:     r.BlockHash,
		Confirmations: r.Confirmations,
		Time:          r.Time,
		Vin:           make([]Input, 0, len(r.Vin)),
		Vout:          make([]Output, 0, len(r.Vout)),
	}
	for _, in := range r.Vin {
		tx.Vin = append(tx.Vin, Input{Coinbase: in.Coinbase != "", Txid: in.Txid, Vout: in.Vout})
	}
	for _, out := range r.Vout {
		addrs := out.ScriptPubKey.Addresses
		if len(addrs) == 0 && out.ScriptPubKey.Address != "" {
			addrs = []string{out.ScriptPubKey.Address}
		}
		tx.Vout = append(tx.Vout, Output{Value: out.Value, Addresses: addrs})
	}
	return tx
}

// rawBlock is getblock with verbosity 2
type rawBlock struct {
	Hash          string  `json:"hash"`
	Height        int64   `json:"height"`
	Confirmations int64   `json:"confirmations"`
	Time          int64   `json:"time"`
	Size          int64   `json:"size"`
	Difficulty    float64 `json:"difficulty"`
	Nonce         uint32  `json:"nonce"`
	MerkleRoot    string  `json:"merkleroot"`
	Tx            []rawTx `json:"tx"`
}

func (r *rawBlock) block() *Block {
	b := &Block{
		Hash:          r.Hash,
		Height:        r.Height,
		Confirmations: r.Confirmations,
		Time:          r.Time,
		Size:          r.Size,
		Difficulty:    r.Difficulty,
		Nonce:         r.Nonce,
		MerkleRoot:    r.MerkleRoot,
		Txs:           make([]Tx, 0, len(r.Tx)),
	}
	for i := range r.Tx {
		b.Txs = append(b.Txs, r.Tx[i].tx())
	}
	return b
}

func encodeParams(params []any) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.KindInternal, "ENCODE", "encode rpc params")
		}
		out = append(out, raw)
	}
	return out, nil
}

// Error codes returned by bitcoind for unknown ids
const (
	errCodeInvalidAddressOrKey = -5
	errCodeInvalidParameter    = -8
)

// classify maps a node RPC error code onto the error taxonomy
func classify(source string, code int, err error) error {
	switch code {
	case errCodeInvalidAddressOrKey, errCodeInvalidParameter:
		return apperrors.Wrap(err, apperrors.KindNotFound, "NOT_FOUND", "node lookup").WithSource(source)
	default:
		return unavailable(source, err)
	}
}

// unavailable reports a transport failure or an abandoned call
func unavailable(source string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.Unavailable(err, "node call abandoned").WithSource(source)
	}
	return apperrors.Unavailable(err, "node call").WithSource(source)
}

// call runs a blocking rpcclient call and gives up when ctx is done. The
// call itself keeps running until the client's own timeout.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// readCert loads the TLS certificate of the node, if TLS is enabled
func readCert(cfg config.NodeConfig) ([]byte, error) {
	if cfg.DisableTLS || cfg.Cert == "" {
		return nil, nil
	}
	return os.ReadFile(cfg.Cert)
}

func logConnect(log *logrus.Entry, cfg config.NodeConfig) {
	fields := logrus.Fields{"host": cfg.Host, "user": cfg.User}
	if cfg.DisableTLS {
		log.WithFields(fields).Info("Connecting to node RPC (no TLS)")
		return
	}
	log.WithFields(fields).WithField("cert", cfg.Cert).Info("Connecting to node RPC")
}
