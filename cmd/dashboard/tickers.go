package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camuig/lcf-dashboard/internal/config"
	"github.com/camuig/lcf-dashboard/internal/storage"
)

func newTickersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List the distinct tickers in the price store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			db, err := storage.NewDatabase(cfg.Stores.PriceDB, nil)
			if err != nil {
				return fmt.Errorf("price store: %w", err)
			}
			defer storage.Close(db)

			tickers, err := storage.NewPriceRepository(db).DistinctTickers(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tickers {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}
