package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/logging"
	"github.com/thanhnp/chain-explorer/internal/models"
)

var errDown = apperrors.Unavailable(nil, "connection refused")

func TestBitcoinBlocksFallsThrough(t *testing.T) {
	mempool := failing("mempool", errDown)
	bcinfo := newFake("blockchain.info")
	node := newFake("bitcoind")
	p := NewBitcoin(mempool, bcinfo, newFake("blockchair"), node, logging.Discard())

	blocks, err := p.Blocks(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "blockchain.info", blocks[0].Hash)
	assert.Equal(t, 3, bcinfo.page)
	assert.Equal(t, []string{"blocks"}, mempool.calls)
	assert.Empty(t, node.calls)
}

func TestBitcoinStatsOrder(t *testing.T) {
	mempool := newFake("mempool")
	bcinfo := newFake("blockchain.info")
	p := NewBitcoin(mempool, bcinfo, newFake("blockchair"), nil, logging.Discard())

	_, err := p.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"stats"}, bcinfo.calls)
	assert.Empty(t, mempool.calls)
}

func TestBitcoinNodeIsLastResort(t *testing.T) {
	node := newFake("bitcoind")
	p := NewBitcoin(failing("mempool", errDown), failing("blockchain.info", errDown),
		newFake("blockchair"), node, logging.Discard())

	tx, err := p.Transaction(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "bitcoind", tx.Hash)

	txs, err := p.Transactions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "bitcoind", txs[0].Hash)
}

func TestBitcoinWithoutNode(t *testing.T) {
	p := NewBitcoin(failing("mempool", errDown), failing("blockchain.info", apperrors.NotFound("no tx")),
		newFake("blockchair"), nil, logging.Discard())

	_, err := p.Transaction(context.Background(), "abc")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = p.Blocks(context.Background(), 1)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestBitcoinWalletSkipsNode(t *testing.T) {
	node := newFake("bitcoind")
	p := NewBitcoin(failing("mempool", errDown), failing("blockchain.info", errDown),
		newFake("blockchair"), node, logging.Discard())

	_, err := p.Wallet(context.Background(), "bc1q")
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
	assert.Empty(t, node.calls)

	top, err := p.TopWallets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "blockchair", top[0].Address)
}

func TestLitecoinOrders(t *testing.T) {
	space := newFake("litecoinspace")
	cypher := failing("blockcypher", errDown)
	p := NewLitecoin(space, cypher, newFake("blockchair"), nil, logging.Discard())

	txs, err := p.BlockTransactions(context.Background(), "2700000")
	require.NoError(t, err)
	assert.Equal(t, "litecoinspace", txs[0].Hash)
	assert.Equal(t, []string{"block transactions"}, cypher.calls)

	w, err := p.Wallet(context.Background(), "ltc1q")
	require.NoError(t, err)
	assert.Equal(t, "litecoinspace", w.Address)
	assert.Equal(t, []string{"block transactions"}, cypher.calls)

	space.err = errDown
	w, err = p.Wallet(context.Background(), "ltc1q")
	require.NoError(t, err)
	assert.Equal(t, "blockcypher", w.Address)
}

func TestEthereumTransactionsPaging(t *testing.T) {
	rpc := newFake("ethereum-rpc")
	chair := pagedSource{newFake("blockchair")}
	p := NewEthereum(rpc, chair, newFake("blockcypher"), logging.Discard())

	txs, err := p.Transactions(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "blockchair", txs[0].Hash)
	assert.Equal(t, 4, chair.page)
	assert.Empty(t, rpc.calls)

	chair.err = errDown
	txs, err = p.Transactions(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "ethereum-rpc", txs[0].Hash)
}

func TestEthereumWalletOrder(t *testing.T) {
	rpc := newFake("ethereum-rpc")
	chair := pagedSource{failing("blockchair", errDown)}
	cypher := failing("blockcypher", apperrors.NotFound("unknown address"))
	p := NewEthereum(rpc, chair, cypher, logging.Discard())

	w, err := p.Wallet(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "ethereum-rpc", w.Address)
	assert.Equal(t, []string{"wallet"}, cypher.calls)
}

func TestEmptyLists(t *testing.T) {
	ctx := context.Background()
	bnb := NewBNB(newFake("bsc-rpc"), logging.Discard())
	tron := NewTron(pagedSource{newFake("tronscan")}, logging.Discard())
	ton := NewTON(newFake("toncenter"), logging.Discard())

	txs, err := bnb.WalletTransactions(ctx, "0xabc")
	require.NoError(t, err)
	assert.NotNil(t, txs)
	assert.Empty(t, txs)

	for _, p := range []Provider{bnb, tron, ton} {
		top, err := p.TopWallets(ctx)
		require.NoError(t, err)
		assert.NotNil(t, top)
		assert.Empty(t, top)
	}

	txs, err = ton.BlockTransactions(ctx, "100")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTronPassesPage(t *testing.T) {
	scan := pagedSource{newFake("tronscan")}
	p := NewTron(scan, logging.Discard())

	_, err := p.Transactions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, scan.page)

	w, err := p.Wallet(context.Background(), "T9y")
	require.NoError(t, err)
	assert.Equal(t, "tronscan", w.Address)
}

func TestTONTransactions(t *testing.T) {
	center := newFake("toncenter")
	p := NewTON(center, logging.Discard())

	txs, err := p.Transactions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []models.Transaction{}, txs)
	assert.Equal(t, []string{"ping"}, center.calls)

	center.err = errDown
	_, err = p.Transactions(context.Background(), 1)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))

	_, err = p.Transaction(context.Background(), "abc")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(models.NetworkBNB, NewBNB(newFake("bsc-rpc"), logging.Discard())))
	assert.Error(t, r.Register("doge", NewBNB(newFake("x"), logging.Discard())))

	p, err := r.Get(models.NetworkBNB)
	require.NoError(t, err)
	assert.IsType(t, &BNB{}, p)

	_, err = r.Get("doge")
	assert.ErrorIs(t, err, apperrors.ErrInvalidNetwork)
	assert.Error(t, r.Complete())
}

func TestMarketRequestsEveryNetwork(t *testing.T) {
	m := NewMarket(newFake("coinlore"), logging.Discard())

	tickers, err := m.Tickers(context.Background())
	require.NoError(t, err)
	require.Len(t, tickers, len(models.Networks()))
	assert.Equal(t, "90", tickers[0].ID)
}
