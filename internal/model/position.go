package model

import "time"

// Position is an owned holding as configured by the user. EntryPrice == 0
// marks a watch-only symbol. Positions are read once per run and never
// mutated by the engine.
type Position struct {
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	EntryDate  time.Time `json:"entry_date"`
}

// Owned reports whether the position represents an actual holding.
func (p Position) Owned() bool {
	return p.EntryPrice > 0
}

type PositionPhase string

const (
	PhaseJustBought          PositionPhase = "JUST_BOUGHT"
	PhaseSettling            PositionPhase = "SETTLING"
	PhaseHolding             PositionPhase = "HOLDING"
	PhaseProfitTarget        PositionPhase = "PROFIT_TARGET"
	PhaseStopLoss            PositionPhase = "STOP_LOSS"
	PhaseLongTerm            PositionPhase = "LONG_TERM"
	PhaseApproachingLongTerm PositionPhase = "APPROACHING_LONG_TERM"
)

// PositionState is the per-run evaluation of an owned position. It is
// recomputed from scratch every run and never stored.
type PositionState struct {
	Phase          PositionPhase `json:"phase"`
	HoldingDays    int           `json:"holding_days"`
	GainLossPct    float64       `json:"gain_loss_pct"`
	DaysToLongTerm int           `json:"days_to_long_term"`
}
