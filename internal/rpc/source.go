package rpc

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
	"github.com/thanhnp/chain-explorer/pkg/semver"
)

const (
	blockWindow = 10
	txLimit     = 20
	// prevoutLimit caps the extra lookups made to resolve the senders of a
	// single transaction
	prevoutLimit = 10
)

// Source serves explorer records from a node
type Source struct {
	node        Node
	name        string
	halving     int64
	maxParallel int
	log         *logrus.Entry
}

// NewSource creates a Source. halvingInterval drives the block subsidy.
func NewSource(node Node, name string, halvingInterval int64, maxParallel int, logger *logrus.Logger) *Source {
	return &Source{
		node:        node,
		name:        name,
		halving:     halvingInterval,
		maxParallel: max(maxParallel, 1),
		log:         logger.WithField("source", name),
	}
}

// Name identifies the source in logs and metrics
func (s *Source) Name() string {
	return s.name
}

// CheckVersion rejects a node older than minVersion. The advertised
// subversion is preferred; the numeric version is the fallback.
func (s *Source) CheckVersion(ctx context.Context, minVersion string) (*semver.Version, error) {
	required, err := semver.Parse(minVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum node version: %w", err)
	}
	info, err := s.node.NetworkInfo(ctx)
	if err != nil {
		return nil, err
	}

	nodeVer, err := semver.ParseSubVersion(info.SubVersion)
	if err != nil {
		nodeVer = semver.FromClientVersion(info.Version)
	}
	if nodeVer.Normalize().LessThan(required.Normalize()) {
		return nodeVer, fmt.Errorf("%s node %s (%s) is older than the required %s",
			s.name, nodeVer, info.SubVersion, minVersion)
	}
	s.log.WithField("version", nodeVer.String()).Info("Node version accepted")
	return nodeVer, nil
}

// Stats reads height, difficulty and transaction totals from the node.
// The hashrate is estimated from the difficulty.
func (s *Source) Stats(ctx context.Context, avgBlockTime int) (models.NetworkStats, error) {
	var (
		height     int64
		difficulty float64
		txCount    int64
		mempool    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		height, err = s.node.BlockCount(gctx)
		return err
	})
	g.Go(func() (err error) {
		difficulty, err = s.node.Difficulty(gctx)
		return err
	})
	g.Go(func() (err error) {
		txCount, err = s.node.ChainTxCount(gctx)
		return err
	})
	g.Go(func() error {
		// mempool size is best effort
		var err error
		if mempool, err = s.node.Mempool(gctx); err != nil {
			s.log.WithError(err).Debug("mempool unavailable")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.NetworkStats{}, err
	}

	st := models.NetworkStats{
		TotalBlocks:       height,
		TotalTransactions: txCount,
		AvgBlockTime:      avgBlockTime,
		Difficulty:        units.FormatDifficulty(difficulty),
		MempoolSize:       int64(len(mempool)),
	}
	if difficulty > 0 && avgBlockTime > 0 {
		st.Hashrate = units.FormatHashrate(difficulty * math.Exp2(32) / float64(avgBlockTime))
	}
	return st, nil
}

// RecentBlocks fetches a window of ten blocks. Blocks that fail to load are
// left out; the call fails only when none loaded.
func (s *Source) RecentBlocks(ctx context.Context, page int) ([]models.Block, error) {
	tip, err := s.node.BlockCount(ctx)
	if err != nil {
		return nil, err
	}
	start := tip - int64(max(page, 1)-1)*blockWindow
	if start < 0 {
		return nil, upstream.NotFound(s.name, "page %d is past genesis", page)
	}

	blocks, err := upstream.Gather(ctx, s.maxParallel, blockWindow, func(ctx context.Context, i int) (models.Block, error) {
		height := start - int64(i)
		if height < 0 {
			return models.Block{}, upstream.NotFound(s.name, "height %d below genesis", height)
		}
		hash, err := s.node.BlockHash(ctx, height)
		if err != nil {
			return models.Block{}, err
		}
		b, err := s.node.Block(ctx, hash)
		if err != nil {
			return models.Block{}, err
		}
		return s.toBlock(b), nil
	})
	if len(blocks) == 0 {
		return nil, err
	}
	return blocks, nil
}

func (s *Source) resolveHash(ctx context.Context, id string) (string, error) {
	if height, ok := units.ParseHeight(id); ok {
		return s.node.BlockHash(ctx, height)
	}
	return id, nil
}

// Block returns a block by height or hash
func (s *Source) Block(ctx context.Context, id string) (models.Block, error) {
	hash, err := s.resolveHash(ctx, id)
	if err != nil {
		return models.Block{}, err
	}
	b, err := s.node.Block(ctx, hash)
	if err != nil {
		return models.Block{}, err
	}
	return s.toBlock(b), nil
}

// BlockTransactions returns the first twenty transactions of a block
func (s *Source) BlockTransactions(ctx context.Context, id string) ([]models.Transaction, error) {
	hash, err := s.resolveHash(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.node.BlockWithTxs(ctx, hash)
	if err != nil {
		return nil, err
	}

	txs := b.Txs
	if len(txs) > txLimit {
		txs = txs[:txLimit]
	}
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		tx := toTransaction(&txs[i])
		tx.BlockHeight = b.Height
		tx.Time = units.FromUnix(b.Time)
		tx.Status = models.StatusConfirmed
		tx.Confirmations = max(b.Confirmations, 1)
		out = append(out, tx)
	}
	return out, nil
}

// RecentTransactions looks up the first twenty mempool transactions.
// Lookups that fail, typically because the transaction was just mined, are
// left out.
func (s *Source) RecentTransactions(ctx context.Context) ([]models.Transaction, error) {
	ids, err := s.node.Mempool(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) > txLimit {
		ids = ids[:txLimit]
	}

	txs, err := upstream.Gather(ctx, s.maxParallel, len(ids), func(ctx context.Context, i int) (models.Transaction, error) {
		raw, err := s.node.Transaction(ctx, ids[i])
		if err != nil {
			return models.Transaction{}, err
		}
		return toTransaction(raw), nil
	})
	if len(txs) == 0 && len(ids) > 0 {
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// Transaction returns a transaction by hash. A node only knows the
// addresses and values of the outputs, so the inputs are resolved through
// their previous transactions; the fee is reported only when every input
// resolved.
func (s *Source) Transaction(ctx context.Context, hash string) (models.Transaction, error) {
	raw, err := s.node.Transaction(ctx, hash)
	if err != nil {
		return models.Transaction{}, err
	}
	tx := toTransaction(raw)

	if raw.Confirmations > 0 {
		if tip, err := s.node.BlockCount(ctx); err == nil {
			tx.BlockHeight = tip - int64(raw.Confirmations) + 1
		}
	}

	if len(raw.Vin) == 0 || raw.Vin[0].Coinbase || len(raw.Vin) > prevoutLimit {
		return tx, nil
	}
	prevouts, err := upstream.Gather(ctx, s.maxParallel, len(raw.Vin), func(ctx context.Context, i int) (Output, error) {
		in := raw.Vin[i]
		prev, err := s.node.Transaction(ctx, in.Txid)
		if err != nil {
			return Output{}, err
		}
		if int(in.Vout) >= len(prev.Vout) {
			return Output{}, fmt.Errorf("%s has no output %d", in.Txid, in.Vout)
		}
		return prev.Vout[in.Vout], nil
	})
	if err != nil {
		s.log.WithError(err).WithField("tx", hash).Debug("inputs left unresolved")
	}

	from := make([]string, 0, len(prevouts))
	in := decimal.Zero
	for _, o := range prevouts {
		from = append(from, o.Addresses...)
		in = in.Add(decimal.NewFromFloat(o.Value))
	}
	tx.From = from
	if len(prevouts) == len(raw.Vin) {
		out, _ := decimal.NewFromString(tx.Value)
		tx.Fee = in.Sub(out).String()
	}
	return tx, nil
}

func (s *Source) toBlock(b *Block) models.Block {
	return models.Block{
		Height:           b.Height,
		Hash:             b.Hash,
		Time:             units.FromUnix(b.Time),
		TransactionCount: b.TxCount(),
		Size:             b.Size,
		Reward:           units.FormatSubsidy(b.Height, s.halving),
		Difficulty:       units.FormatDifficulty(b.Difficulty),
		Nonce:            fmt.Sprint(b.Nonce),
		MerkleRoot:       b.MerkleRoot,
	}
}

// toTransaction maps what the node knows without extra lookups: inputs
// other than the coinbase carry no address, so From is empty and the fee
// is zero.
func toTransaction(raw *Tx) models.Transaction {
	from := []string{}
	if len(raw.Vin) > 0 && raw.Vin[0].Coinbase {
		from = []string{models.CoinbaseSender}
	}

	to := make([]string, 0, len(raw.Vout))
	value := decimal.Zero
	for _, o := range raw.Vout {
		to = append(to, o.Addresses...)
		value = value.Add(decimal.NewFromFloat(o.Value))
	}

	tx := models.Transaction{
		Hash:        raw.Txid,
		Time:        units.Now(),
		From:        from,
		To:          to,
		Value:       value.String(),
		Fee:         "0",
		Status:      models.StatusPending,
		InputCount:  len(raw.Vin),
		OutputCount: len(raw.Vout),
	}
	if raw.Time > 0 {
		tx.Time = units.FromUnix(raw.Time)
	}
	if raw.Confirmations > 0 {
		tx.Status = models.StatusConfirmed
		tx.Confirmations = int64(raw.Confirmations)
	}
	return tx
}
