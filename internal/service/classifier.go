package service

import (
	"fmt"
	"math"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/model"
)

// SignalClassifier maps indicators and position state onto exactly one
// signal per symbol per run. It is total: every input combination yields a
// kind, so classification itself cannot fail.
type SignalClassifier struct {
	th config.Thresholds
}

func NewSignalClassifier(th config.Thresholds) *SignalClassifier {
	return &SignalClassifier{th: th}
}

// ClassifyOwned turns a position phase into the symbol's signal. The kind
// reuses the phase label; severity reflects how urgently the holder should
// act.
func (c *SignalClassifier) ClassifyOwned(symbol string, state model.PositionState, computedAt time.Time) model.Signal {
	signal := model.Signal{
		Symbol:     symbol,
		Kind:       model.SignalKind(state.Phase),
		Severity:   model.SeverityInfo,
		ComputedAt: computedAt,
	}

	switch state.Phase {
	case model.PhaseStopLoss:
		signal.Severity = model.SeverityCritical
		signal.Notes = fmt.Sprintf("down %.2f%% after %d days", math.Abs(state.GainLossPct), state.HoldingDays)
	case model.PhaseProfitTarget:
		signal.Severity = model.SeverityCritical
		signal.Notes = fmt.Sprintf("up %.2f%%, target reached", state.GainLossPct)
	case model.PhaseSettling:
		signal.Severity = model.SeverityWarning
		signal.Notes = fmt.Sprintf("down %.2f%% inside settling window", math.Abs(state.GainLossPct))
	case model.PhaseApproachingLongTerm:
		signal.Notes = fmt.Sprintf("%d days to long-term", state.DaysToLongTerm)
	}

	return signal
}

// ClassifyWatch evaluates a watch-only symbol from indicators alone.
// First match wins, top to bottom: magnitude-of-event signals outrank
// momentum and dip signals, which outrank neutral.
func (c *SignalClassifier) ClassifyWatch(symbol string, ind model.Indicators, computedAt time.Time) model.Signal {
	signal := model.Signal{
		Symbol:     symbol,
		Kind:       model.SignalNeutral,
		Severity:   model.SeverityInfo,
		ComputedAt: computedAt,
	}

	switch {
	case math.Abs(ind.PctChange1D) > c.th.BreakingNewsPct:
		signal.Kind = model.SignalBreakingNews
		signal.Severity = model.SeverityCritical
		signal.Notes = fmt.Sprintf("%+.1f%% in one day", ind.PctChange1D)
	case ind.VolumeRatio > c.th.VolumeEruptionRatio:
		signal.Kind = model.SignalWhaleEruption
		signal.Severity = model.SeverityCritical
		signal.Notes = fmt.Sprintf("%.1fx volume", ind.VolumeRatio)
	case ind.RSI > c.th.RSIExtremeOverbought:
		signal.Kind = model.SignalExtremeOverbought
		signal.Severity = model.SeverityWarning
		signal.Notes = fmt.Sprintf("RSI %.1f", ind.RSI)
	case ind.RSI < c.th.RSIExtremeOversold:
		signal.Kind = model.SignalExtremeOversold
		signal.Severity = model.SeverityWarning
		signal.Notes = fmt.Sprintf("RSI %.1f", ind.RSI)
	case ind.VolumeRatio > c.th.VolumeActiveRatio && ind.Trend == model.TrendUp:
		signal.Kind = model.SignalRally
	case ind.VolumeRatio > c.th.VolumeActiveRatio && ind.Trend == model.TrendDown:
		signal.Kind = model.SignalPressure
		signal.Severity = model.SeverityWarning
		signal.Notes = fmt.Sprintf("%.1fx volume on downtrend", ind.VolumeRatio)
	case ind.RSI < c.th.RSIOversold:
		signal.Kind = model.SignalBuyDip
	case ind.RSI > c.th.RSIOverbought:
		signal.Kind = model.SignalTakeProfit
	}

	return signal
}
