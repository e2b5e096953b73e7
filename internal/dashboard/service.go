package dashboard

import (
	"context"
	"fmt"

	"github.com/camuig/lcf-dashboard/internal/chart"
	"github.com/camuig/lcf-dashboard/internal/logger"
	"github.com/camuig/lcf-dashboard/internal/storage"
)

const (
	PriceColor = "#0000FF"
	BuyColor   = "#FF0000"
	SellColor  = "#00FF00"
	MarkerSize = 10
)

type PriceStore interface {
	Prices(ctx context.Context, ticker string) ([]storage.Point, error)
	Indicator(ctx context.Context, ticker, column string) ([]storage.Point, error)
	DistinctTickers(ctx context.Context) ([]string, error)
}

type EventStore interface {
	Trades(ctx context.Context, side storage.Side, ticker string) ([]storage.Point, error)
	Balances(ctx context.Context, platform string) ([]storage.Point, error)
}

// Service turns a selector state into a chart. It holds no state between calls.
type Service struct {
	prices PriceStore
	events EventStore
	logger *logger.Logger
}

func NewService(prices PriceStore, events EventStore, log *logger.Logger) *Service {
	return &Service{
		prices: prices,
		events: events,
		logger: log,
	}
}

// PriceChart draws the close line of ticker, its buy and sell markers and one
// overlay per known indicator in sel. Unknown codes are skipped.
func (s *Service) PriceChart(ctx context.Context, ticker string, sel IndicatorSelection) (*chart.Figure, error) {
	prices, err := s.prices.Prices(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	buys, err := s.events.Trades(ctx, storage.SideBuy, ticker)
	if err != nil {
		return nil, fmt.Errorf("load buys: %w", err)
	}

	sells, err := s.events.Trades(ctx, storage.SideSell, ticker)
	if err != nil {
		return nil, fmt.Errorf("load sells: %w", err)
	}

	fig := chart.NewLine("Close", "Time", "Close", toSeries(prices))
	fig.AddMarkers("buy", BuyColor, MarkerSize, toSeries(buys))
	fig.AddMarkers("sell", SellColor, MarkerSize, toSeries(sells))
	fig.SetLineColor(0, PriceColor)

	for _, code := range sel {
		ind, ok := LookupIndicator(code)
		if !ok {
			s.logger.Debug("ignoring unknown indicator", "indicator", code, "ticker", ticker)
			continue
		}

		points, err := s.prices.Indicator(ctx, ticker, ind.Column)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", ind.Code, err)
		}
		fig.AddLine(ind.TraceName, ind.Color, toSeries(points))
	}

	return fig, nil
}

// BalanceChart draws the balance snapshots of one platform.
func (s *Service) BalanceChart(ctx context.Context, platform string) (*chart.Figure, error) {
	balances, err := s.events.Balances(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	return chart.NewLine("Balance", "Time", "Balance", toSeries(balances)), nil
}

// Tickers lists every ticker present in the price store.
func (s *Service) Tickers(ctx context.Context) ([]string, error) {
	tickers, err := s.prices.DistinctTickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tickers: %w", err)
	}
	return tickers, nil
}

func toSeries(points []storage.Point) chart.Series {
	s := chart.Series{
		X: make([]any, len(points)),
		Y: make([]*float64, len(points)),
	}
	for i, p := range points {
		s.X[i] = p.Time
		s.Y[i] = p.Value
	}
	return s
}
