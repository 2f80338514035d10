package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thanhnp/chain-explorer/internal/provider"
)

// probeOp runs one provider operation. arg is the optional third argument.
type probeOp func(ctx context.Context, p provider.Provider, arg string) (any, error)

var probeOps = map[string]probeOp{
	"stats": func(ctx context.Context, p provider.Provider, _ string) (any, error) {
		return p.Stats(ctx)
	},
	"blocks": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.Blocks(ctx, probePage(arg))
	},
	"block": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.Block(ctx, arg)
	},
	"block-txs": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.BlockTransactions(ctx, arg)
	},
	"txs": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.Transactions(ctx, probePage(arg))
	},
	"tx": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.Transaction(ctx, arg)
	},
	"wallet": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.Wallet(ctx, arg)
	},
	"wallet-txs": func(ctx context.Context, p provider.Provider, arg string) (any, error) {
		return p.WalletTransactions(ctx, arg)
	},
	"top": func(ctx context.Context, p provider.Provider, _ string) (any, error) {
		return p.TopWallets(ctx)
	},
}

// needsArg lists the operations that cannot run without an id
var needsArg = map[string]bool{"block": true, "block-txs": true, "tx": true, "wallet": true, "wallet-txs": true}

func probeOpNames() string {
	names := make([]string, 0, len(probeOps))
	for name := range probeOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <network|market> [operation] [arg]",
		Short: "Run one explorer operation and print the JSON result",
		Long: "Runs a single operation through the provider fallback chain of a network, for diagnosing upstream APIs.\n" +
			"Operations: " + probeOpNames() + ".\n" +
			"`probe market` prints the market tickers.",
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configFile)
			if err != nil {
				return err
			}
			defer a.Close()

			if args[0] == "market" {
				tickers, err := a.market.Tickers(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tickers)
			}
			if len(args) < 2 {
				return fmt.Errorf("missing operation, one of: %s", probeOpNames())
			}
			p, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			var arg string
			if len(args) == 3 {
				arg = args[2]
			}
			return runProbe(cmd.Context(), cmd.OutOrStdout(), p, args[1], arg)
		},
	}
}

func runProbe(ctx context.Context, w io.Writer, p provider.Provider, op, arg string) error {
	run, ok := probeOps[op]
	if !ok {
		return fmt.Errorf("unknown operation %q, one of: %s", op, probeOpNames())
	}
	if needsArg[op] && arg == "" {
		return fmt.Errorf("operation %s needs an argument", op)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := run(ctx, p, arg)
	if err != nil {
		return err
	}
	return printJSON(w, result)
}

func probePage(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
