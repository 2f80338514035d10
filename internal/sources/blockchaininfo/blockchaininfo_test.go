package blockchaininfo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/logging"
	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

const txJSON = `{"hash":"abc","block_height":840000,"time":1713571767,"fee":10000,"vin_sz":2,"vout_sz":2,
	"inputs":[{"prev_out":{"addr":"1A","value":150000000}},{"prev_out":{"value":100000000}}],
	"out":[{"addr":"1B","value":200000000},{"addr":"1C","value":49990000}]}`

func mockBlockchainInfo(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		fmt.Fprint(w, `{"n_blocks_total":839999,"n_tx":1000000000,"difficulty":86871474313761.9,"hash_rate":600000000000,"mempool_transactions":3000}`)
	})
	mux.HandleFunc("/latestblock", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hash":"h840000","height":840000,"time":1713571767}`)
	})
	mux.HandleFunc("/block-height/", func(w http.ResponseWriter, r *http.Request) {
		var height int64
		if _, err := fmt.Sscanf(r.URL.Path, "/block-height/%d", &height); err != nil || height > 840000 {
			http.NotFound(w, r)
			return
		}
		if height == 839995 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"blocks":[{"hash":"h%d","height":%d,"time":1713571767,"n_tx":3,"size":900,
			"relayed_by":"0.0.0.0","difficulty":86871474313761.9,"nonce":7,"mrkl_root":"m",
			"tx":[%s,{"hash":"cb","block_height":%d,"inputs":[{}],"out":[{"addr":"1M","value":312500000}]}]}]}`,
			height, height, txJSON, height)
	})
	mux.HandleFunc("/rawblock/hx", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hash":"hx","height":5,"time":1231006505,"n_tx":1,"size":200,"difficulty":1}`)
	})
	mux.HandleFunc("/unconfirmed-transactions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"txs":[{"hash":"u1","time":1713571767,"fee":500,"inputs":[{"prev_out":{"addr":"1U","value":1000}}],"out":[{"addr":"1V","value":500}]}]}`)
	})
	mux.HandleFunc("/rawtx/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, txJSON)
	})
	mux.HandleFunc("/rawaddr/1A", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"address":"1A","n_tx":4,"total_received":600000000,"total_sent":150000000,"final_balance":450000000,"txs":[%s]}`, txJSON)
	})
	return httptest.NewServer(mux)
}

func newClient(srv *httptest.Server) *Client {
	up := upstream.New(upstream.Options{Timeout: time.Second, MaxParallel: 3}, logging.Discard(), nil)
	return New(up, srv.URL)
}

func TestStats(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	s, err := newClient(srv).Stats(context.Background(), 600)
	require.NoError(t, err)
	assert.Equal(t, models.NetworkStats{
		TotalBlocks:       840000,
		TotalTransactions: 1000000000,
		AvgBlockTime:      600,
		Difficulty:        "86.87T",
		Hashrate:          "600.00 EH/s",
		MempoolSize:       3000,
	}, s)
}

func TestRecentBlocksSkipsFailures(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	blocks, err := newClient(srv).RecentBlocks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, blocks, 9)
	assert.Equal(t, int64(840000), blocks[0].Height)
	assert.Equal(t, int64(839991), blocks[8].Height)
	assert.Equal(t, "3.125", blocks[0].Reward)
	assert.Equal(t, "7", blocks[0].Nonce)
}

func TestRecentBlocksPastGenesis(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	_, err := newClient(srv).RecentBlocks(context.Background(), 100000)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlockByHash(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	b, err := newClient(srv).Block(context.Background(), "hx")
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.Height)
	assert.Equal(t, "2009-01-03T18:15:05.000Z", b.Time)
	assert.Equal(t, "50", b.Reward)
	assert.Equal(t, "1.00", b.Difficulty)

	_, err = newClient(srv).Block(context.Background(), "999999")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlockTransactions(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	txs, err := newClient(srv).BlockTransactions(context.Background(), "840000")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, []string{"1A"}, txs[0].From)
	assert.Equal(t, []string{models.CoinbaseSender}, txs[1].From)
	assert.Equal(t, int64(840000), txs[1].BlockHeight)
	assert.Equal(t, models.StatusConfirmed, txs[1].Status)
}

func TestTransaction(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	tx, err := newClient(srv).Transaction(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, models.Transaction{
		Hash:          "abc",
		BlockHeight:   840000,
		Time:          "2024-04-20T00:09:27.000Z",
		From:          []string{"1A"},
		To:            []string{"1B", "1C"},
		Value:         "2.4999",
		Fee:           "0.0001",
		Confirmations: models.DefaultConfirmations,
		Status:        models.StatusConfirmed,
		InputCount:    2,
		OutputCount:   2,
	}, tx)
}

func TestUnconfirmedTransactions(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	txs, err := newClient(srv).UnconfirmedTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, models.StatusPending, txs[0].Status)
	assert.Equal(t, int64(0), txs[0].Confirmations)
	assert.Equal(t, "0.000005", txs[0].Fee)
}

func TestAddress(t *testing.T) {
	srv := mockBlockchainInfo(t)
	defer srv.Close()

	w, err := newClient(srv).Address(context.Background(), "1A")
	require.NoError(t, err)
	assert.Equal(t, "4.5", w.Balance)
	assert.Equal(t, "6", w.Received)
	assert.Equal(t, "1.5", w.Sent)
	assert.Equal(t, int64(4), w.TransactionCount)

	txs, err := newClient(srv).AddressTransactions(context.Background(), "1A")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "abc", txs[0].Hash)
}
