package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/config"
	"github.com/thanhnp/chain-explorer/internal/logging"
	"github.com/thanhnp/chain-explorer/internal/metrics"
	"github.com/thanhnp/chain-explorer/internal/models"
	"github.com/thanhnp/chain-explorer/internal/provider"
	"github.com/thanhnp/chain-explorer/internal/rpc"
	"github.com/thanhnp/chain-explorer/internal/sources/blockchaininfo"
	"github.com/thanhnp/chain-explorer/internal/sources/blockchair"
	"github.com/thanhnp/chain-explorer/internal/sources/blockcypher"
	"github.com/thanhnp/chain-explorer/internal/sources/coinlore"
	"github.com/thanhnp/chain-explorer/internal/sources/esplora"
	"github.com/thanhnp/chain-explorer/internal/sources/evmrpc"
	"github.com/thanhnp/chain-explorer/internal/sources/toncenter"
	"github.com/thanhnp/chain-explorer/internal/sources/tronscan"
	"github.com/thanhnp/chain-explorer/internal/units"
	"github.com/thanhnp/chain-explorer/internal/upstream"
)

// app holds everything a command needs
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	metrics  *metrics.Metrics
	registry *provider.Registry
	market   *provider.Market
	nodes    []rpc.Node
}

func newApp(ctx context.Context, path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	var observer upstream.Observer
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New()
		observer = a.metrics
	}
	up := upstream.New(upstream.Options{
		Timeout:     cfg.Upstream.Timeout,
		MaxParallel: cfg.Upstream.MaxParallel,
		UserAgent:   cfg.Upstream.UserAgent,
	}, logger, observer)

	btcNode := a.connectNode(ctx, cfg.Bitcoin, rpc.BitcoinSource, units.BitcoinHalvingInterval, func() (rpc.Node, error) {
		return rpc.NewBTCClient(cfg.Bitcoin, logger)
	})
	ltcNode := a.connectNode(ctx, cfg.Litecoin, rpc.LitecoinSource, units.LitecoinHalvingInterval, func() (rpc.Node, error) {
		return rpc.NewLTCClient(cfg.Litecoin, logger)
	})

	a.registry, err = buildRegistry(cfg.Sources, up, btcNode, ltcNode, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.market = provider.NewMarket(coinlore.New(up, cfg.Sources.Coinlore, logger), logger)
	return a, nil
}

// connectNode returns the node source of an enabled node, or nil when the
// node is disabled, unreachable or too old. A missing node only shortens
// the fallback lists.
func (a *app) connectNode(ctx context.Context, cfg config.NodeConfig, name string, halving int64, dial func() (rpc.Node, error)) provider.Node {
	if !cfg.Enabled {
		return nil
	}
	log := a.logger.WithField("node", name)

	node, err := dial()
	if err != nil {
		log.WithError(err).Warn("Failed to connect to node, continuing without it")
		return nil
	}
	src := rpc.NewSource(node, name, halving, a.cfg.Upstream.MaxParallel, a.logger)

	checkCtx, cancel := context.WithTimeout(ctx, a.cfg.Upstream.Timeout)
	defer cancel()
	if _, err := src.CheckVersion(checkCtx, cfg.MinVersion); err != nil {
		log.WithError(err).Warn("Node rejected, continuing without it")
		node.Close()
		return nil
	}

	a.nodes = append(a.nodes, node)
	return src
}

// buildRegistry assembles the provider of every network. btcNode and
// ltcNode may be nil.
func buildRegistry(src config.SourcesConfig, up *upstream.Client, btcNode, ltcNode provider.Node, logger *logrus.Logger) (*provider.Registry, error) {
	mempool := esplora.New(up, "mempool", src.Mempool, units.BitcoinHalvingInterval)
	litecoinSpace := esplora.New(up, "litecoinspace", src.LitecoinSpace, units.LitecoinHalvingInterval)
	bcinfo := blockchaininfo.New(up, src.BlockchainInfo)

	chair := func(network string, account bool) *blockchair.Client {
		n, _ := models.LookupNetwork(network)
		return blockchair.New(up, src.Blockchair, blockchair.Chain{Name: n.BlockchairName, Decimals: n.Decimals, Account: account})
	}
	cypher := func(network, prefix string) *blockcypher.Client {
		n, _ := models.LookupNetwork(network)
		return blockcypher.New(up, src.Blockcypher, blockcypher.Chain{Path: n.BlockcypherName, Decimals: n.Decimals, AddressPrefix: prefix})
	}

	eth := evmrpc.New(up, src.EthereumRPC, evmrpc.Chain{Source: "ethereum-rpc", ProofOfStake: true})
	bsc := evmrpc.New(up, src.BSCRPC, evmrpc.Chain{Source: "bsc-rpc"})

	reg := provider.NewRegistry()
	for network, p := range map[string]provider.Provider{
		models.NetworkBTC:  provider.NewBitcoin(mempool, bcinfo, chair(models.NetworkBTC, false), btcNode, logger),
		models.NetworkETH:  provider.NewEthereum(eth, chair(models.NetworkETH, true), cypher(models.NetworkETH, "0x"), logger),
		models.NetworkBNB:  provider.NewBNB(bsc, logger),
		models.NetworkTRON: provider.NewTron(tronscan.New(up, src.Tronscan), logger),
		models.NetworkTON:  provider.NewTON(toncenter.New(up, src.Toncenter, src.ToncenterAPIKey), logger),
		models.NetworkLTC:  provider.NewLitecoin(litecoinSpace, cypher(models.NetworkLTC, ""), chair(models.NetworkLTC, false), ltcNode, logger),
	} {
		if err := reg.Register(network, p); err != nil {
			return nil, err
		}
	}
	return reg, reg.Complete()
}

// Close disconnects the nodes
func (a *app) Close() {
	for _, n := range a.nodes {
		n.Close()
	}
}
