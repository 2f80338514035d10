package blockcypher

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
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

var litecoin = Chain{Path: "ltc/main", Decimals: units.SatoshiDecimals}

func mockBlockcypher(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ltc/main/txs/", func(w http.ResponseWriter, r *http.Request) {
		hash := r.URL.Path[len("/v1/ltc/main/txs/"):]
		switch hash {
		case "bad":
			http.Error(w, "busy", http.StatusTooManyRequests)
		case "missing":
			http.NotFound(w, r)
		case "cb":
			fmt.Fprint(w, `{"hash":"cb","block_height":2700000,"total":625000000,"fees":0,"confirmed":"2024-04-20T00:09:27Z",
				"confirmations":3,"inputs":[{"output_index":-1}],"outputs":[{"addresses":["LMiner"],"value":625000000}]}`)
		default:
			fmt.Fprintf(w, `{"hash":%q,"block_height":-1,"total":150000000,"fees":22600,"received":"2024-04-20T00:09:27.123Z",
				"confirmations":0,"inputs":[{"addresses":["LA"],"output_index":1},{"output_index":0}],
				"outputs":[{"addresses":["LB"],"value":100000000},{"addresses":["LC"],"value":50000000}]}`, hash)
		}
	})
	mux.HandleFunc("/v1/ltc/main/blocks/2700000", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"hash":"bh","height":2700000,"txids":["cb","bad","t1","t2","t3","t4","t5","t6","t7","t8","t9"]}`)
	})
	mux.HandleFunc("/v1/ltc/main/addrs/LA/balance", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"address":"LA","total_received":900000000,"total_sent":400000000,"final_balance":500000000,"final_n_tx":12}`)
	})
	mux.HandleFunc("/v1/eth/main/txs/e1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hash":"e1","block_height":19000000,"total":1500000000000000000,"fees":420000000000000,
			"confirmed":"2024-01-12T10:00:00Z","confirmations":7,
			"inputs":[{"addresses":["ab12"],"output_index":-1}],"outputs":[{"addresses":["cd34"]}]}`)
	})
	return httptest.NewServer(mux)
}

func newClient(srv *httptest.Server, chain Chain) *Client {
	up := upstream.New(upstream.Options{Timeout: time.Second, MaxParallel: 4}, logging.Discard(), nil)
	return New(up, srv.URL+"/v1", chain)
}

func TestTransactionPending(t *testing.T) {
	srv := mockBlockcypher(t)
	defer srv.Close()

	tx, err := newClient(srv, litecoin).Transaction(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.Transaction{
		Hash:        "t1",
		Time:        "2024-04-20T00:09:27.123Z",
		From:        []string{"LA"},
		To:          []string{"LB", "LC"},
		Value:       "1.5",
		Fee:         "0.000226",
		Status:      models.StatusPending,
		InputCount:  2,
		OutputCount: 2,
	}, tx)
}

func TestTransactionCoinbase(t *testing.T) {
	srv := mockBlockcypher(t)
	defer srv.Close()

	tx, err := newClient(srv, litecoin).Transaction(context.Background(), "cb")
	require.NoError(t, err)
	assert.Equal(t, []string{models.CoinbaseSender}, tx.From)
	assert.Equal(t, int64(2700000), tx.BlockHeight)
	assert.Equal(t, int64(3), tx.Confirmations)
	assert.Equal(t, models.StatusConfirmed, tx.Status)
	assert.Equal(t, "2024-04-20T00:09:27.000Z", tx.Time)

	_, err = newClient(srv, litecoin).Transaction(context.Background(), "missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTransactionEthereum(t *testing.T) {
	srv := mockBlockcypher(t)
	defer srv.Close()

	eth := Chain{Path: "eth/main", Decimals: units.WeiDecimals, AddressPrefix: "0x"}
	tx, err := newClient(srv, eth).Transaction(context.Background(), "e1")
	require.NoError(t, err)
	// an account input carries an address, so it is not a coinbase
	assert.Equal(t, []string{"0xab12"}, tx.From)
	assert.Equal(t, []string{"0xcd34"}, tx.To)
	assert.Equal(t, "1.5", tx.Value)
	assert.Equal(t, "0.00042", tx.Fee)
}

func TestBlockTransactionsHydratesTen(t *testing.T) {
	srv := mockBlockcypher(t)
	defer srv.Close()

	txs, err := newClient(srv, litecoin).BlockTransactions(context.Background(), "2700000")
	require.NoError(t, err)
	// ten txids hydrated, "bad" failed
	require.Len(t, txs, 9)
	assert.Equal(t, "cb", txs[0].Hash)
	assert.Equal(t, "t1", txs[1].Hash)
	assert.Equal(t, "t8", txs[8].Hash)
}

func TestAddressBalance(t *testing.T) {
	srv := mockBlockcypher(t)
	defer srv.Close()

	w, err := newClient(srv, litecoin).AddressBalance(context.Background(), "LA")
	require.NoError(t, err)
	assert.Equal(t, "5", w.Balance)
	assert.Equal(t, "9", w.Received)
	assert.Equal(t, "4", w.Sent)
	assert.Equal(t, int64(12), w.TransactionCount)
	assert.Empty(t, w.FirstSeen)
	assert.Equal(t, []models.TokenInfo{}, w.Tokens)
}
