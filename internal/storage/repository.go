package storage

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

// PriceRepository reads the price/indicator store (cryptoData).
type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Prices returns the close series for ticker in store order.
func (r *PriceRepository) Prices(ctx context.Context, ticker string) ([]Point, error) {
	rows, err := r.db.WithContext(ctx).Model(&PriceRow{}).
		Select("openTimestamp", "close").
		Where("ticker = ?", ticker).Rows()
	if err != nil {
		return nil, fmt.Errorf("query prices %s: %w", ticker, err)
	}
	return scanPoints(rows)
}

// Indicator returns the series of one precomputed indicator column for ticker.
func (r *PriceRepository) Indicator(ctx context.Context, ticker, column string) ([]Point, error) {
	switch column {
	case ColumnSMA15Day, ColumnBaseSMA:
	default:
		return nil, fmt.Errorf("unknown indicator column %q", column)
	}

	rows, err := r.db.WithContext(ctx).Model(&PriceRow{}).
		Select("openTimestamp", column).
		Where("ticker = ?", ticker).Rows()
	if err != nil {
		return nil, fmt.Errorf("query %s %s: %w", column, ticker, err)
	}
	return scanPoints(rows)
}

func (r *PriceRepository) DistinctTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).Model(&PriceRow{}).
		Distinct("ticker").Order("ticker").Pluck("ticker", &tickers).Error
	if err != nil {
		return nil, fmt.Errorf("query distinct tickers: %w", err)
	}
	return tickers, nil
}

// EventRepository reads the trade/balance event store (miscData).
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Trades returns (timestamp, price) of every side trade on ticker.
func (r *EventRepository) Trades(ctx context.Context, side Side, ticker string) ([]Point, error) {
	rows, err := r.db.WithContext(ctx).Model(&EventRow{}).
		Select("timestamp", "price").
		Where("side = ? AND ticker = ?", string(side), ticker).Rows()
	if err != nil {
		return nil, fmt.Errorf("query %s trades %s: %w", side, ticker, err)
	}
	return scanPoints(rows)
}

// Balances returns (timestamp, balance) snapshots recorded for platform.
func (r *EventRepository) Balances(ctx context.Context, platform string) ([]Point, error) {
	rows, err := r.db.WithContext(ctx).Model(&EventRow{}).
		Select("timestamp", "balance").
		Where("side = ? AND platform = ?", string(SideBalance), platform).Rows()
	if err != nil {
		return nil, fmt.Errorf("query balances %s: %w", platform, err)
	}
	return scanPoints(rows)
}

func scanPoints(rows *sql.Rows) ([]Point, error) {
	defer rows.Close()

	points := make([]Point, 0)
	for rows.Next() {
		var (
			t any
			v sql.NullFloat64
		)
		if err := rows.Scan(&t, &v); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		p := Point{Time: normalizeTime(t)}
		if v.Valid {
			val := v.Float64
			p.Value = &val
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return points, nil
}

// normalizeTime turns TEXT values the driver hands back as bytes into strings
// so they serialize as-is.
func normalizeTime(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
