package dashboard

import (
	"slices"

	"github.com/camuig/lcf-dashboard/internal/config"
	"github.com/camuig/lcf-dashboard/internal/tradelog"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Dropdown struct {
	ID          string   `json:"id"`
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options"`
	Value       string   `json:"value,omitempty"`
	Multi       bool     `json:"multi"`
	Clearable   bool     `json:"clearable"`
	Searchable  bool     `json:"searchable"`
}

// Layout is the static page: two selector driven charts and the trade log.
type Layout struct {
	Title           string          `json:"title"`
	Ticker          Dropdown        `json:"ticker"`
	Indicator       Dropdown        `json:"indicator"`
	PriceGraphID    string          `json:"price_graph_id"`
	Platform        Dropdown        `json:"platform"`
	TradeLogHeading string          `json:"trade_log_heading"`
	BalanceGraphID  string          `json:"balance_graph_id"`
	TradeLog        *tradelog.Table `json:"trade_log"`
}

// BuildLayout declares the page. tickers overrides the configured ticker list
// when it is not empty.
func BuildLayout(cfg config.DashboardConfig, tickers []string, table *tradelog.Table) Layout {
	if len(tickers) == 0 {
		tickers = cfg.Tickers
	}
	defaultTicker := cfg.DefaultTicker
	if !slices.Contains(tickers, defaultTicker) && len(tickers) > 0 {
		defaultTicker = tickers[0]
	}

	indicatorOptions := make([]Option, 0, len(indicators))
	for _, ind := range indicators {
		indicatorOptions = append(indicatorOptions, Option{Label: ind.Option, Value: ind.Code})
	}

	return Layout{
		Title: cfg.Title,
		Ticker: Dropdown{
			ID:          "ticker-name",
			Placeholder: "Select Ticker Name",
			Options:     plainOptions(tickers),
			Value:       defaultTicker,
		},
		Indicator: Dropdown{
			ID:          "indicator",
			Placeholder: "Select Indicator",
			Options:     indicatorOptions,
			Multi:       true,
			Clearable:   true,
		},
		PriceGraphID: "graph",
		Platform: Dropdown{
			ID:          "platform",
			Placeholder: "Select Platform",
			Options:     plainOptions(cfg.Platforms),
			Value:       cfg.DefaultPlatform,
			Searchable:  true,
		},
		TradeLogHeading: "TradeLog",
		BalanceGraphID:  "balance",
		TradeLog:        table,
	}
}

func plainOptions(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Label: v, Value: v}
	}
	return out
}
