package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "explorer",
		Short:         "Multi-chain block explorer API",
		Long:          `Serves blocks, transactions, wallets and market data for btc, eth, bnb, trc20, ton and ltc from public blockchain APIs`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "Path to configuration file")

	rootCmd.AddCommand(newServeCmd(), newProbeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
