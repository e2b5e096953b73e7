package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/camuig/lcf-dashboard/internal/config"
	"github.com/camuig/lcf-dashboard/internal/dashboard"
	"github.com/camuig/lcf-dashboard/internal/logger"
	"github.com/camuig/lcf-dashboard/internal/storage"
	"github.com/camuig/lcf-dashboard/internal/tradelog"
	"github.com/camuig/lcf-dashboard/internal/web"
)

func newServeCmd(configPath *string) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug") {
				cfg.Web.Debug = &debug
			}
			return serve(cfg)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", true, "verbose diagnostics and error details in responses")

	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg.LogLevel())
	log.Info("starting dashboard", "title", cfg.Dashboard.Title, "debug", cfg.IsDebug())

	// Trade log is read once; restart to pick up new rows
	table, err := tradelog.Load(cfg.TradeLog.Path)
	if err != nil {
		return err
	}
	log.Info("trade log loaded", "path", cfg.TradeLog.Path, "rows", len(table.Rows), "columns", len(table.Columns))

	priceDB, err := storage.NewDatabase(cfg.Stores.PriceDB, log.SQL())
	if err != nil {
		return fmt.Errorf("price store: %w", err)
	}
	defer storage.Close(priceDB)

	eventDB, err := storage.NewDatabase(cfg.Stores.EventDB, log.SQL())
	if err != nil {
		return fmt.Errorf("event store: %w", err)
	}
	defer storage.Close(eventDB)

	svc := dashboard.NewService(storage.NewPriceRepository(priceDB), storage.NewEventRepository(eventDB), log)

	var tickers []string
	if cfg.Dashboard.DiscoverTickers {
		tickers, err = svc.Tickers(context.Background())
		if err != nil {
			return err
		}
		log.Info("tickers discovered", "tickers", tickers)
	}

	webServer := web.NewServer(svc, dashboard.BuildLayout(cfg.Dashboard, tickers, table), cfg, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- webServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	log.Info("dashboard stopped")
	return nil
}
