package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ltcsuite/ltcd/btcjson"
	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/rpcclient"
	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/config"
)

// LitecoinSource names litecoind in logs and metrics
const LitecoinSource = "litecoind"

// LTCClient wraps the Litecoin RPC client
type LTCClient struct {
	client *rpcclient.Client
}

// NewLTCClient creates a Litecoin RPC client in HTTP POST mode, the only mode
// litecoind speaks. No connection is made until the first call.
func NewLTCClient(cfg config.NodeConfig, logger *logrus.Logger) (*LTCClient, error) {
	certs, err := readCert(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	logConnect(logger.WithField("component", LitecoinSource), cfg)

	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		HTTPPostMode: true,
		DisableTLS:   cfg.DisableTLS,
		Certificates: certs,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}

	return &LTCClient{client: client}, nil
}

// Close shuts the RPC client down
func (c *LTCClient) Close() {
	c.client.Shutdown()
}

func (c *LTCClient) wrap(err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return classify(LitecoinSource, int(rpcErr.Code), err)
	}
	return unavailable(LitecoinSource, err)
}

func (c *LTCClient) hash(s string) (*chainhash.Hash, error) {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, apperrors.NotFound("malformed hash %q", s).WithSource(LitecoinSource)
	}
	return h, nil
}

// BlockCount returns the current block height
func (c *LTCClient) BlockCount(ctx context.Context) (int64, error) {
	n, err := call(ctx, c.client.GetBlockCount)
	if err != nil {
		return 0, c.wrap(err)
	}
	return n, nil
}

// BlockHash returns the block hash for a given height
func (c *LTCClient) BlockHash(ctx context.Context, height int64) (string, error) {
	h, err := call(ctx, func() (*chainhash.Hash, error) {
		return c.client.GetBlockHash(height)
	})
	if err != nil {
		return "", c.wrap(err)
	}
	return h.String(), nil
}

// Block returns verbose block info for a given hash
func (c *LTCClient) Block(ctx context.Context, hash string) (*Block, error) {
	h, err := c.hash(hash)
	if err != nil {
		return nil, err
	}
	b, err := call(ctx, func() (*btcjson.GetBlockVerboseResult, error) {
		return c.client.GetBlockVerbose(h)
	})
	if err != nil {
		return nil, c.wrap(err)
	}
	return &Block{
		Hash:          b.Hash,
		Height:        b.Height,
		Confirmations: int64(b.Confirmations),
		Time:          b.Time,
		Size:          int64(b.Size),
		Difficulty:    b.Difficulty,
		Nonce:         uint32(b.Nonce),
		MerkleRoot:    b.MerkleRoot,
		TxIDs:         b.Tx,
	}, nil
}

// BlockWithTxs returns verbose block info with decoded transactions
func (c *LTCClient) BlockWithTxs(ctx context.Context, hash string) (*Block, error) {
	if _, err := c.hash(hash); err != nil {
		return nil, err
	}
	var b rawBlock
	if err := c.raw(ctx, "getblock", &b, hash, 2); err != nil {
		return nil, err
	}
	return b.block(), nil
}

// Transaction returns the verbose transaction for a given hash
func (c *LTCClient) Transaction(ctx context.Context, hash string) (*Tx, error) {
	if _, err := c.hash(hash); err != nil {
		return nil, err
	}
	var raw rawTx
	if err := c.raw(ctx, "getrawtransaction", &raw, hash, true); err != nil {
		return nil, err
	}
	tx := raw.tx()
	return &tx, nil
}

// Mempool returns the txids in the node's mempool
func (c *LTCClient) Mempool(ctx context.Context) ([]string, error) {
	hashes, err := call(ctx, c.client.GetRawMempool)
	if err != nil {
		return nil, c.wrap(err)
	}
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		out = append(out, h.String())
	}
	return out, nil
}

// Difficulty returns the proof-of-work difficulty of the tip
func (c *LTCClient) Difficulty(ctx context.Context) (float64, error) {
	d, err := call(ctx, c.client.GetDifficulty)
	if err != nil {
		return 0, c.wrap(err)
	}
	return d, nil
}

// ChainTxCount returns the total number of transactions in the chain
func (c *LTCClient) ChainTxCount(ctx context.Context) (int64, error) {
	var stats struct {
		TxCount int64 `json:"txcount"`
	}
	if err := c.raw(ctx, "getchaintxstats", &stats); err != nil {
		return 0, err
	}
	return stats.TxCount, nil
}

// NetworkInfo returns the node version. The reply is decoded here rather
// than through btcjson so fields that changed shape across releases do
// not break it.
func (c *LTCClient) NetworkInfo(ctx context.Context) (NetworkInfo, error) {
	var info struct {
		Version    int32  `json:"version"`
		SubVersion string `json:"subversion"`
	}
	if err := c.raw(ctx, "getnetworkinfo", &info); err != nil {
		return NetworkInfo{}, err
	}
	return NetworkInfo{Version: info.Version, SubVersion: info.SubVersion}, nil
}

func (c *LTCClient) raw(ctx context.Context, method string, out any, params ...any) error {
	encoded, err := encodeParams(params)
	if err != nil {
		return err
	}
	res, err := call(ctx, func() (json.RawMessage, error) {
		return c.client.RawRequest(method, encoded)
	})
	if err != nil {
		return c.wrap(err)
	}
	if err := json.Unmarshal(res, out); err != nil {
		return apperrors.Wrap(err, apperrors.KindUnavailable, "MALFORMED_RESPONSE", "decode "+method).
			WithSource(LitecoinSource)
	}
	return nil
}
