package service

import (
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"
)

// PositionTracker evaluates owned positions. The phase is a pure function
// of (holding days, gain/loss percentage, thresholds) and is recomputed
// from scratch every run; no transition history is kept anywhere.
type PositionTracker struct {
	th config.Thresholds
}

func NewPositionTracker(th config.Thresholds) *PositionTracker {
	return &PositionTracker{th: th}
}

// Track derives the position state for one owned position at runDate.
//
// The phase priority is a strict total order:
// JUST_BOUGHT > STOP_LOSS > PROFIT_TARGET > SETTLING > LONG_TERM >
// APPROACHING_LONG_TERM > HOLDING. Day-0 confirmation silences every other
// phase, and realized-loss protection outranks tax-timing advice.
func (t *PositionTracker) Track(pos model.Position, latestPrice float64, runDate time.Time) model.PositionState {
	holdingDays := utils.DaysBetween(pos.EntryDate, runDate)
	gainLossPct := (latestPrice - pos.EntryPrice) / pos.EntryPrice * 100

	daysToLongTerm := t.th.LongTermDays - holdingDays
	if daysToLongTerm < 0 {
		daysToLongTerm = 0
	}

	state := model.PositionState{
		HoldingDays:    holdingDays,
		GainLossPct:    gainLossPct,
		DaysToLongTerm: daysToLongTerm,
	}

	switch {
	case holdingDays == 0:
		state.Phase = model.PhaseJustBought
	case gainLossPct <= t.th.StopLossPct && holdingDays > t.th.SettlingPeriodDays:
		state.Phase = model.PhaseStopLoss
	case gainLossPct >= t.th.ProfitTargetPct:
		state.Phase = model.PhaseProfitTarget
	case gainLossPct <= t.th.StopLossPct:
		// Same-magnitude loss inside the settling window is treated as
		// volatility, not a stop trigger.
		state.Phase = model.PhaseSettling
	case holdingDays >= t.th.LongTermDays:
		state.Phase = model.PhaseLongTerm
	case daysToLongTerm <= t.th.TaxWarningDays:
		state.Phase = model.PhaseApproachingLongTerm
	default:
		state.Phase = model.PhaseHolding
	}

	return state
}
