package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thanhnp/chain-explorer/internal/config"
	"github.com/thanhnp/chain-explorer/internal/logging"
	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/provider"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

type probeProvider struct {
	provider.Provider // unused operations panic
	page              int
}

func (p *probeProvider) Stats(context.Context) (models.NetworkStats, error) {
	return models.NetworkStats{TotalBlocks: 42, Difficulty: "N/A"}, nil
}

func (p *probeProvider) Blocks(_ context.Context, page int) ([]models.Block, error) {
	p.page = page
	return []models.Block{}, nil
}

func TestBuildRegistry(t *testing.T) {
	up := upstream.New(upstream.Options{Timeout: time.Second}, logging.Discard(), nil)
	reg, err := buildRegistry(config.Default().Sources, up, nil, nil, logging.Discard())
	require.NoError(t, err)

	for _, n := range models.Networks() {
		_, err := reg.Get(n.ID)
		assert.NoError(t, err, n.ID)
	}
	btc, _ := reg.Get(models.NetworkBTC)
	assert.IsType(t, &provider.Bitcoin{}, btc)
	ton, _ := reg.Get(models.NetworkTON)
	assert.IsType(t, &provider.TON{}, ton)
}

func TestRunProbe(t *testing.T) {
	p := &probeProvider{}

	var out bytes.Buffer
	require.NoError(t, runProbe(context.Background(), &out, p, "stats", ""))
	assert.Contains(t, out.String(), `"totalBlocks": 42`)

	out.Reset()
	require.NoError(t, runProbe(context.Background(), &out, p, "blocks", "5"))
	assert.Equal(t, 5, p.page)
	assert.Equal(t, "[]\n", out.String())

	require.NoError(t, runProbe(context.Background(), &out, p, "blocks", "x"))
	assert.Equal(t, 1, p.page)
}

func TestRunProbeErrors(t *testing.T) {
	var out bytes.Buffer
	err := runProbe(context.Background(), &out, &probeProvider{}, "mine", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block-txs")

	err = runProbe(context.Background(), &out, &probeProvider{}, "tx", "")
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
