package model

import "time"

// JournalEntry is one appended record of a fired signal. Entries are
// deduplicated by (calendar day, symbol, action).
type JournalEntry struct {
	Timestamp   time.Time  `json:"timestamp"`
	Symbol      string     `json:"symbol"`
	Action      SignalKind `json:"action"`
	Price       float64    `json:"price"`
	EntryPrice  *float64   `json:"entry_price,omitempty"`
	GainLossPct *float64   `json:"gain_loss_pct,omitempty"`
	HoldingDays *int       `json:"holding_days,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// DedupKey identifies the entry at day granularity. Two entries with the
// same key on the same day are the same event.
func (e JournalEntry) DedupKey() string {
	return e.Timestamp.Format("2006-01-02") + "|" + e.Symbol + "|" + string(e.Action)
}
