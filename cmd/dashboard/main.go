package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Price, indicator, balance and trade log dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	serve := newServeCmd(&configPath)
	root.AddCommand(serve, newTickersCmd(&configPath))

	// running without a subcommand serves the dashboard
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}
