package model

import "time"

// SignalKind is the union of portfolio-phase labels and watchlist-condition
// labels. Each tracked symbol yields exactly one kind per run.
type SignalKind string

const (
	// Watch-only kinds, in classification priority order.
	SignalBreakingNews      SignalKind = "BREAKING_NEWS"
	SignalWhaleEruption     SignalKind = "WHALE_ERUPTION"
	SignalExtremeOverbought SignalKind = "EXTREME_OVERBOUGHT"
	SignalExtremeOversold   SignalKind = "EXTREME_OVERSOLD"
	SignalRally             SignalKind = "RALLY"
	SignalPressure          SignalKind = "PRESSURE"
	SignalBuyDip            SignalKind = "BUY_DIP"
	SignalTakeProfit        SignalKind = "TAKE_PROFIT"
	SignalNeutral           SignalKind = "NEUTRAL"

	// Stale marker for symbols whose fetch failed this run.
	SignalStale SignalKind = "STALE"

	// Auxiliary whale-mention journal action.
	SignalWhaleMention SignalKind = "WHALE_MENTION"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Signal is the classified outcome for one symbol in one run.
type Signal struct {
	Symbol     string     `json:"symbol"`
	Kind       SignalKind `json:"kind"`
	Severity   Severity   `json:"severity"`
	Notes      string     `json:"notes,omitempty"`
	ComputedAt time.Time  `json:"computed_at"`
}

// Actionable reports whether the signal belongs in the journal. Info and
// neutral outcomes are kept out so the journal stays a record of events
// that demand attention.
func (s Signal) Actionable() bool {
	return s.Severity == SeverityWarning || s.Severity == SeverityCritical
}
