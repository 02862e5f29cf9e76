package model

import "time"

// Candle is one daily OHLCV bar, ordered oldest to newest inside a history.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// MarketSnapshot is the raw per-symbol input of a run. It is transient and
// never persisted.
type MarketSnapshot struct {
	Symbol       string   `json:"symbol"`
	LatestPrice  float64  `json:"latest_price"`
	LatestVolume int64    `json:"latest_volume"`
	History      []Candle `json:"history"`
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Indicators are derived from a MarketSnapshot for a single run.
type Indicators struct {
	RSI         float64 `json:"rsi"`
	AvgVolume20 float64 `json:"avg_volume_20"`
	VolumeRatio float64 `json:"volume_ratio"`
	PctChange1D float64 `json:"pct_change_1d"`
	Trend       Trend   `json:"trend"`
}

// NewsItem is one entry from the news feed collaborator.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}
