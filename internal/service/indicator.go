package service

import (
	"whale-watcher/config"
	"whale-watcher/internal/model"

	"gonum.org/v1/gonum/stat"
)

// IndicatorCalculator derives per-run indicators from raw OHLCV history.
// All thresholds and lookback windows come from the injected config; the
// calculator holds no other state.
type IndicatorCalculator struct {
	th config.Thresholds
}

func NewIndicatorCalculator(th config.Thresholds) *IndicatorCalculator {
	return &IndicatorCalculator{th: th}
}

// Compute derives indicators from the snapshot. It returns
// model.ErrInsufficientHistory when fewer than 2 bars exist; the caller
// must skip the symbol for this run, not abort the batch.
func (c *IndicatorCalculator) Compute(snapshot *model.MarketSnapshot) (model.Indicators, error) {
	history := snapshot.History
	if len(history) < 2 {
		return model.Indicators{}, model.ErrInsufficientHistory
	}

	closes := make([]float64, len(history))
	for i, candle := range history {
		closes[i] = candle.Close
	}

	// The latest bar carries the current tick; trailing windows cover the
	// bars before it so today's surge measures against normal days.
	trailing := history[:len(history)-1]

	avgVolume := trailingVolumeMean(trailing, c.th.VolumeAvgPeriod)
	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = float64(snapshot.LatestVolume) / avgVolume
	}

	prevClose := closes[len(closes)-2]
	pctChange1D := 0.0
	if prevClose != 0 {
		pctChange1D = (snapshot.LatestPrice - prevClose) / prevClose * 100
	}

	return model.Indicators{
		RSI:         c.rsi(closes),
		AvgVolume20: avgVolume,
		VolumeRatio: volumeRatio,
		PctChange1D: pctChange1D,
		Trend:       c.trend(snapshot.LatestPrice, trailing),
	}, nil
}

// rsi computes the simple-average RSI: mean gain over mean loss across the
// lookback window, RSI = 100 - 100/(1+RS). Zero average loss yields 100.
func (c *IndicatorCalculator) rsi(closes []float64) float64 {
	period := c.th.RSIPeriod
	if period > len(closes)-1 {
		period = len(closes) - 1
	}

	window := closes[len(closes)-period-1:]
	var gains, losses float64
	for i := 1; i < len(window); i++ {
		delta := window[i] - window[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// trend compares the latest price against its trailing moving average; a
// small epsilon band around the average reads as flat.
func (c *IndicatorCalculator) trend(latestPrice float64, trailing []model.Candle) model.Trend {
	period := c.th.TrendMAPeriod
	if period > len(trailing) {
		period = len(trailing)
	}
	if period == 0 {
		return model.TrendFlat
	}

	window := make([]float64, 0, period)
	for _, candle := range trailing[len(trailing)-period:] {
		window = append(window, candle.Close)
	}
	ma := stat.Mean(window, nil)
	if ma == 0 {
		return model.TrendFlat
	}

	epsilon := ma * c.th.TrendEpsilonPct / 100
	switch {
	case latestPrice > ma+epsilon:
		return model.TrendUp
	case latestPrice < ma-epsilon:
		return model.TrendDown
	default:
		return model.TrendFlat
	}
}

func trailingVolumeMean(trailing []model.Candle, period int) float64 {
	if len(trailing) == 0 {
		return 0
	}
	if period > len(trailing) {
		period = len(trailing)
	}

	volumes := make([]float64, 0, period)
	for _, candle := range trailing[len(trailing)-period:] {
		volumes = append(volumes, float64(candle.Volume))
	}
	return stat.Mean(volumes, nil)
}
