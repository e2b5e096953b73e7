package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/lcf-dashboard/internal/chart"
	"github.com/camuig/lcf-dashboard/internal/logger"
	"github.com/camuig/lcf-dashboard/internal/storage"
)

func f64(v float64) *float64 { return &v }

func pts(vals ...float64) []storage.Point {
	out := make([]storage.Point, len(vals))
	for i, v := range vals {
		out[i] = storage.Point{Time: int64(i + 1), Value: f64(v)}
	}
	return out
}

type fakePrices struct {
	prices     map[string][]storage.Point
	indicators map[string]map[string][]storage.Point // ticker -> column -> points
	tickers    []string
	err        error
	calls      []string
}

func (f *fakePrices) Prices(_ context.Context, ticker string) ([]storage.Point, error) {
	f.calls = append(f.calls, "prices:"+ticker)
	if f.err != nil {
		return nil, f.err
	}
	return f.prices[ticker], nil
}

func (f *fakePrices) Indicator(_ context.Context, ticker, column string) ([]storage.Point, error) {
	f.calls = append(f.calls, column+":"+ticker)
	return f.indicators[ticker][column], nil
}

func (f *fakePrices) DistinctTickers(context.Context) ([]string, error) {
	return f.tickers, f.err
}

type fakeEvents struct {
	trades   map[storage.Side]map[string][]storage.Point
	balances map[string][]storage.Point
	err      error
}

func (f *fakeEvents) Trades(_ context.Context, side storage.Side, ticker string) ([]storage.Point, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trades[side][ticker], nil
}

func (f *fakeEvents) Balances(_ context.Context, platform string) ([]storage.Point, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.balances[platform], nil
}

func newFixture() (*Service, *fakePrices, *fakeEvents) {
	prices := &fakePrices{
		prices: map[string][]storage.Point{
			"ETHUSD": pts(100, 101, 102, 103),
			"TQQQ":   pts(30, 31),
		},
		indicators: map[string]map[string][]storage.Point{
			"ETHUSD": {
				storage.ColumnSMA15Day: pts(99, 100, 101, 102),
				storage.ColumnBaseSMA:  {{Time: int64(1)}, {Time: int64(2)}, {Time: int64(3), Value: f64(90)}, {Time: int64(4), Value: f64(91)}},
			},
		},
		tickers: []string{"ETHUSD", "TQQQ"},
	}
	events := &fakeEvents{
		trades: map[storage.Side]map[string][]storage.Point{
			storage.SideBuy: {
				"ETHUSD": {{Time: "t1", Value: f64(100)}, {Time: "t3", Value: f64(102)}},
			},
			storage.SideSell: {
				"ETHUSD": {{Time: "t2", Value: f64(101)}},
			},
		},
		balances: map[string][]storage.Point{
			"Binance": pts(5000, 5100, 5050),
		},
	}
	log := logger.NewWithWriter(io.Discard, "debug")
	return NewService(prices, events, log), prices, events
}

func overlays(fig *chart.Figure) []chart.Trace {
	return fig.Data[3:]
}

func TestPriceChart_NoIndicators(t *testing.T) {
	svc, prices, _ := newFixture()

	for _, ticker := range []string{"ETHUSD", "TQQQ"} {
		fig, err := svc.PriceChart(context.Background(), ticker, nil)
		require.NoError(t, err)
		require.Len(t, fig.Data, 3)

		line := fig.Data[0]
		assert.Equal(t, chart.ModeLines, line.Mode)
		assert.Equal(t, "Close", line.Name)
		assert.Equal(t, PriceColor, line.Line.Color)
		assert.Len(t, line.Y, len(prices.prices[ticker]))
		assert.Empty(t, overlays(fig))
	}
}

func TestPriceChart_TradeMarkers(t *testing.T) {
	svc, _, _ := newFixture()

	fig, err := svc.PriceChart(context.Background(), "ETHUSD", nil)
	require.NoError(t, err)

	buy, sell := fig.Data[1], fig.Data[2]
	assert.Equal(t, "buy", buy.Name)
	assert.Equal(t, chart.ModeMarkers, buy.Mode)
	assert.Equal(t, &chart.Marker{Size: 10, Color: BuyColor}, buy.Marker)
	assert.Equal(t, []any{"t1", "t3"}, buy.X)
	assert.Equal(t, []*float64{f64(100), f64(102)}, buy.Y)

	assert.Equal(t, "sell", sell.Name)
	assert.Equal(t, &chart.Marker{Size: 10, Color: SellColor}, sell.Marker)
	assert.Equal(t, []any{"t2"}, sell.X)
	assert.Equal(t, []*float64{f64(101)}, sell.Y)
}

func TestPriceChart_IndicatorOverlays(t *testing.T) {
	tests := []struct {
		name   string
		sel    IndicatorSelection
		names  []string
		colors []string
	}{
		{name: "short", sel: IndicatorSelection{"sma15day"}, names: []string{"SMA 15d"}, colors: []string{"#FFA500"}},
		{name: "long", sel: IndicatorSelection{"baseSMA"}, names: []string{"SMA 200d"}, colors: []string{"#023020"}},
		{name: "both", sel: IndicatorSelection{"sma15day", "baseSMA"}, names: []string{"SMA 15d", "SMA 200d"}, colors: []string{"#FFA500", "#023020"}},
		{name: "both reversed", sel: IndicatorSelection{"baseSMA", "sma15day"}, names: []string{"SMA 200d", "SMA 15d"}, colors: []string{"#023020", "#FFA500"}},
		{name: "unknown", sel: IndicatorSelection{"rsi14"}, names: []string{}, colors: []string{}},
		{name: "unknown mixed", sel: IndicatorSelection{"rsi14", "baseSMA"}, names: []string{"SMA 200d"}, colors: []string{"#023020"}},
		{name: "empty", sel: IndicatorSelection{}, names: []string{}, colors: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newFixture()

			fig, err := svc.PriceChart(context.Background(), "ETHUSD", tt.sel)
			require.NoError(t, err)

			names, colors := []string{}, []string{}
			for _, tr := range overlays(fig) {
				assert.Equal(t, chart.ModeLines, tr.Mode)
				names = append(names, tr.Name)
				colors = append(colors, tr.Line.Color)
			}
			assert.Equal(t, tt.names, names)
			assert.Equal(t, tt.colors, colors)
			assert.Equal(t, PriceColor, fig.Data[0].Line.Color)
		})
	}
}

func TestPriceChart_IndicatorKeepsGaps(t *testing.T) {
	svc, _, _ := newFixture()

	fig, err := svc.PriceChart(context.Background(), "ETHUSD", IndicatorSelection{"baseSMA"})
	require.NoError(t, err)

	y := overlays(fig)[0].Y
	require.Len(t, y, 4)
	assert.Nil(t, y[0])
	assert.Nil(t, y[1])
	assert.Equal(t, 90.0, *y[2])
}

func TestPriceChart_QueriesOnlyRequestedIndicators(t *testing.T) {
	svc, prices, _ := newFixture()

	_, err := svc.PriceChart(context.Background(), "ETHUSD", IndicatorSelection{"sma15day", "nope"})
	require.NoError(t, err)
	assert.Equal(t, []string{"prices:ETHUSD", "sma15day:ETHUSD"}, prices.calls)

	prices.calls = nil
	_, err = svc.PriceChart(context.Background(), "ETHUSD", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"prices:ETHUSD"}, prices.calls)
}

func TestPriceChart_UnknownTickerIsEmpty(t *testing.T) {
	svc, _, _ := newFixture()

	fig, err := svc.PriceChart(context.Background(), "DOGEUSD", IndicatorSelection{"sma15day"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 4)
	for _, tr := range fig.Data {
		assert.Empty(t, tr.X)
		assert.Empty(t, tr.Y)
	}
}

func TestPriceChart_StoreErrorsPropagate(t *testing.T) {
	svc, prices, events := newFixture()
	boom := errors.New("no such table: cryptoData")

	prices.err = boom
	_, err := svc.PriceChart(context.Background(), "ETHUSD", nil)
	assert.ErrorIs(t, err, boom)

	prices.err = nil
	events.err = boom
	_, err = svc.PriceChart(context.Background(), "ETHUSD", nil)
	assert.ErrorIs(t, err, boom)
}

func TestBalanceChart(t *testing.T) {
	svc, _, _ := newFixture()

	fig, err := svc.BalanceChart(context.Background(), "Binance")
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "Balance", fig.Data[0].Name)
	assert.Equal(t, []*float64{f64(5000), f64(5100), f64(5050)}, fig.Data[0].Y)
	assert.Equal(t, "Balance", fig.Layout.YAxis.Title.Text)
}

func TestBalanceChart_NoRows(t *testing.T) {
	svc, _, _ := newFixture()

	fig, err := svc.BalanceChart(context.Background(), "Alpaca")
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].X)
	assert.Empty(t, fig.Data[0].Y)
}

func TestBalanceChart_Error(t *testing.T) {
	svc, _, events := newFixture()
	events.err = errors.New("disk I/O error")

	_, err := svc.BalanceChart(context.Background(), "Binance")
	assert.ErrorContains(t, err, "load balances")
}

func TestTickers(t *testing.T) {
	svc, _, _ := newFixture()

	tickers, err := svc.Tickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ETHUSD", "TQQQ"}, tickers)
}
