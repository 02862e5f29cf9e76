package model

import "time"

// SymbolReport is the per-symbol slice of the dashboard snapshot. The JSON
// schema is consumed by a separate rendering layer and must stay stable.
type SymbolReport struct {
	Price       float64    `json:"price"`
	Volume      int64      `json:"volume"`
	RSI         float64    `json:"rsi"`
	VolumeRatio float64    `json:"volume_ratio"`
	PctChange1D float64    `json:"pct_change_1d"`
	Trend       Trend      `json:"trend"`
	Signal      SignalKind `json:"signal"`
	Severity    Severity   `json:"severity"`
	HoldingDays *int       `json:"holding_days,omitempty"`
	GainLossPct *float64   `json:"gain_loss_pct,omitempty"`
	Phase       *string    `json:"phase,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Stale       bool       `json:"stale,omitempty"`
}

// DashboardSnapshot is the aggregate output of one run. It is fully
// replaced on publish, never patched incrementally.
type DashboardSnapshot struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Symbols     map[string]SymbolReport `json:"symbols"`
	Order       []string                `json:"order"`
}
