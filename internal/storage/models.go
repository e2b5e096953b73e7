package storage

// PriceRow is one candle of the price/indicator store. Indicator columns are
// NULL until the moving-average window has filled.
type PriceRow struct {
	Ticker        string   `gorm:"column:ticker;index" json:"ticker"`
	OpenTimestamp int64    `gorm:"column:openTimestamp" json:"open_timestamp"`
	Close         float64  `gorm:"column:close" json:"close"`
	SMA15Day      *float64 `gorm:"column:sma15day" json:"sma15day"`
	BaseSMA       *float64 `gorm:"column:baseSMA" json:"base_sma"`
}

func (PriceRow) TableName() string { return "cryptoData" }

// EventRow is either a trade (Side buy/sell) or a balance snapshot (Side "").
type EventRow struct {
	Timestamp string  `gorm:"column:timestamp" json:"timestamp"`
	Price     float64 `gorm:"column:price" json:"price"`
	Side      Side    `gorm:"column:side" json:"side"`
	Ticker    string  `gorm:"column:ticker" json:"ticker"`
	Platform  string  `gorm:"column:platform" json:"platform"`
	Balance   float64 `gorm:"column:balance" json:"balance"`
}

func (EventRow) TableName() string { return "miscData" }

type Side string

const (
	SideBuy     Side = "buy"
	SideSell    Side = "sell"
	SideBalance Side = ""
)

// Indicator columns of cryptoData.
const (
	ColumnSMA15Day = "sma15day"
	ColumnBaseSMA  = "baseSMA"
)

// Point is one (time, value) sample. Time keeps whatever type the column holds.
// Value is nil for SQL NULL.
type Point struct {
	Time  any
	Value *float64
}
