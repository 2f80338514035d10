package rpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/logging"
	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
)

// fakeNode serves a tiny chain of 12 blocks from memory
type fakeNode struct {
	tip     int64
	info    NetworkInfo
	txs     map[string]*Tx
	mempool []string
	broken  map[int64]bool
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		tip:  11,
		info: NetworkInfo{Version: 270000, SubVersion: "/Satoshi:27.0.0/"},
		txs: map[string]*Tx{
			"cb": {Txid: "cb", Confirmations: 3, Time: 1713571767,
				Vin: []Input{{Coinbase: true}}, Vout: []Output{{Value: 3.125, Addresses: []string{"bc1qminer"}}}},
			"prev": {Txid: "prev", Confirmations: 100,
				Vout: []Output{{Value: 0.5, Addresses: []string{"bc1qa"}}, {Value: 1.0, Addresses: []string{"bc1qb"}}}},
			"spend": {Txid: "spend", Confirmations: 2, Time: 1713571767,
				Vin:  []Input{{Txid: "prev", Vout: 0}, {Txid: "prev", Vout: 1}},
				Vout: []Output{{Value: 1.4, Addresses: []string{"bc1qc"}}, {Value: 0.0999, Addresses: []string{"bc1qa"}}}},
			"orphan": {Txid: "orphan",
				Vin:  []Input{{Txid: "gone", Vout: 0}},
				Vout: []Output{{Value: 0.2, Addresses: []string{"bc1qd"}}}},
		},
		mempool: []string{"orphan", "vanished"},
		broken:  map[int64]bool{7: true},
	}
}

func (f *fakeNode) BlockCount(context.Context) (int64, error) { return f.tip, nil }

func (f *fakeNode) BlockHash(_ context.Context, height int64) (string, error) {
	if height > f.tip {
		return "", classify("fake", errCodeInvalidParameter, fmt.Errorf("Block height out of range"))
	}
	return fmt.Sprintf("h%d", height), nil
}

func (f *fakeNode) block(hash string) (*Block, error) {
	var height int64
	if _, err := fmt.Sscanf(hash, "h%d", &height); err != nil || height > f.tip {
		return nil, classify("fake", errCodeInvalidAddressOrKey, fmt.Errorf("Block not found"))
	}
	if f.broken[height] {
		return nil, unavailable("fake", fmt.Errorf("connection reset"))
	}
	return &Block{
		Hash: hash, Height: height, Confirmations: f.tip - height + 1, Time: 1713571767,
		Size: 1000, Difficulty: 86871474313761.9, Nonce: 42, MerkleRoot: "m",
		TxIDs: []string{"cb", "spend"},
	}, nil
}

func (f *fakeNode) Block(_ context.Context, hash string) (*Block, error) { return f.block(hash) }

func (f *fakeNode) BlockWithTxs(_ context.Context, hash string) (*Block, error) {
	b, err := f.block(hash)
	if err != nil {
		return nil, err
	}
	b.TxIDs = nil
	b.Txs = []Tx{*f.txs["cb"], *f.txs["spend"]}
	return b, nil
}

func (f *fakeNode) Transaction(_ context.Context, hash string) (*Tx, error) {
	tx, ok := f.txs[hash]
	if !ok {
		return nil, classify("fake", errCodeInvalidAddressOrKey, fmt.Errorf("No such mempool or blockchain transaction"))
	}
	return tx, nil
}

func (f *fakeNode) Mempool(context.Context) ([]string, error)        { return f.mempool, nil }
func (f *fakeNode) Difficulty(context.Context) (float64, error)      { return 86871474313761.9, nil }
func (f *fakeNode) ChainTxCount(context.Context) (int64, error)      { return 1000000000, nil }
func (f *fakeNode) NetworkInfo(context.Context) (NetworkInfo, error) { return f.info, nil }
func (f *fakeNode) Close()                                           {}

func newSource(node Node) *Source {
	return NewSource(node, "fake", units.BitcoinHalvingInterval, 4, logging.Discard())
}

func TestCheckVersion(t *testing.T) {
	node := newFakeNode()
	s := newSource(node)

	v, err := s.CheckVersion(context.Background(), "0.21.0")
	require.NoError(t, err)
	assert.Equal(t, "27.0.0", v.String())

	node.info = NetworkInfo{Version: 200100, SubVersion: "/Satoshi:0.20.1/"}
	_, err = s.CheckVersion(context.Background(), "0.21.0")
	assert.Error(t, err)

	// no parsable subversion: the numeric version decides
	node.info = NetworkInfo{Version: 250000, SubVersion: "/custom/"}
	v, err = s.CheckVersion(context.Background(), "0.21.0")
	require.NoError(t, err)
	assert.Equal(t, "25.0.0", v.String())

	_, err = s.CheckVersion(context.Background(), "latest")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	st, err := newSource(newFakeNode()).Stats(context.Background(), 600)
	require.NoError(t, err)
	assert.Equal(t, int64(11), st.TotalBlocks)
	assert.Equal(t, int64(1000000000), st.TotalTransactions)
	assert.Equal(t, "86.87T", st.Difficulty)
	assert.Equal(t, int64(2), st.MempoolSize)
	// 86.87T * 2^32 / 600s
	assert.Equal(t, "621.85 EH/s", st.Hashrate)
}

func TestRecentBlocks(t *testing.T) {
	blocks, err := newSource(newFakeNode()).RecentBlocks(context.Background(), 1)
	require.NoError(t, err)
	// heights 11..2, height 7 is broken
	require.Len(t, blocks, 9)
	assert.Equal(t, models.Block{
		Height:           11,
		Hash:             "h11",
		Time:             "2024-04-20T00:09:27.000Z",
		TransactionCount: 2,
		Size:             1000,
		Reward:           "50",
		Difficulty:       "86.87T",
		Nonce:            "42",
		MerkleRoot:       "m",
	}, blocks[0])

	_, err = newSource(newFakeNode()).RecentBlocks(context.Background(), 3)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlockLookup(t *testing.T) {
	s := newSource(newFakeNode())

	b, err := s.Block(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "h5", b.Hash)

	b, err = s.Block(context.Background(), "h9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), b.Height)

	_, err = s.Block(context.Background(), "99")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlockTransactions(t *testing.T) {
	txs, err := newSource(newFakeNode()).BlockTransactions(context.Background(), "10")
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, []string{models.CoinbaseSender}, txs[0].From)
	assert.Equal(t, "3.125", txs[0].Value)
	assert.Equal(t, int64(10), txs[0].BlockHeight)
	assert.Equal(t, int64(2), txs[0].Confirmations)
	// inputs are not resolved in lists
	assert.Empty(t, txs[1].From)
	assert.Equal(t, "0", txs[1].Fee)
}

func TestRecentTransactionsSkipsVanished(t *testing.T) {
	txs, err := newSource(newFakeNode()).RecentTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "orphan", txs[0].Hash)
	assert.Equal(t, models.StatusPending, txs[0].Status)
}

func TestTransactionResolvesInputs(t *testing.T) {
	s := newSource(newFakeNode())

	tx, err := s.Transaction(context.Background(), "spend")
	require.NoError(t, err)
	assert.Equal(t, []string{"bc1qa", "bc1qb"}, tx.From)
	assert.Equal(t, []string{"bc1qc", "bc1qa"}, tx.To)
	assert.Equal(t, "1.4999", tx.Value)
	assert.Equal(t, "0.0001", tx.Fee)
	assert.Equal(t, int64(10), tx.BlockHeight)
	assert.Equal(t, models.StatusConfirmed, tx.Status)

	// the previous transaction is unknown: no sender, no fee
	tx, err = s.Transaction(context.Background(), "orphan")
	require.NoError(t, err)
	assert.Empty(t, tx.From)
	assert.Equal(t, "0", tx.Fee)

	_, err = s.Transaction(context.Background(), "missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
