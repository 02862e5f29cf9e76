package service

import (
	"testing"
	"time"

	"whale-watcher/config"
	"whale-watcher/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThresholds() config.Thresholds {
	return config.Thresholds{
		ProfitTargetPct:      20,
		StopLossPct:          -8,
		LongTermDays:         365,
		TaxWarningDays:       30,
		SettlingPeriodDays:   3,
		RSIOverbought:        70,
		RSIOversold:          30,
		RSIExtremeOverbought: 85,
		RSIExtremeOversold:   15,
		VolumeEruptionRatio:  3.5,
		VolumeActiveRatio:    1.5,
		BreakingNewsPct:      10,
		RSIPeriod:            14,
		VolumeAvgPeriod:      20,
		TrendMAPeriod:        20,
		TrendEpsilonPct:      0.25,
	}
}

// marketSnapshot builds a snapshot from closes and volumes of equal length,
// oldest first. The latest bar supplies price and volume.
func marketSnapshot(symbol string, closes []float64, volumes []int64) *model.MarketSnapshot {
	history := make([]model.Candle, len(closes))
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range closes {
		history[i] = model.Candle{
			Date:   day.AddDate(0, 0, i),
			Open:   closes[i],
			High:   closes[i],
			Low:    closes[i],
			Close:  closes[i],
			Volume: volumes[i],
		}
	}
	return &model.MarketSnapshot{
		Symbol:       symbol,
		LatestPrice:  closes[len(closes)-1],
		LatestVolume: volumes[len(volumes)-1],
		History:      history,
	}
}

func flatSeries(n int, close float64, volume int64) ([]float64, []int64) {
	closes := make([]float64, n)
	volumes := make([]int64, n)
	for i := range closes {
		closes[i] = close
		volumes[i] = volume
	}
	return closes, volumes
}

func TestIndicatorCalculator_Compute_InsufficientHistory(t *testing.T) {
	calc := NewIndicatorCalculator(testThresholds())

	tests := []struct {
		name  string
		bars  int
		close float64
	}{
		{name: "no history", bars: 0},
		{name: "single bar", bars: 1, close: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := &model.MarketSnapshot{Symbol: "NVDA", LatestPrice: tt.close}
			for i := 0; i < tt.bars; i++ {
				snapshot.History = append(snapshot.History, model.Candle{Close: tt.close, Volume: 100})
			}
			_, err := calc.Compute(snapshot)
			assert.ErrorIs(t, err, model.ErrInsufficientHistory)
		})
	}
}

func TestIndicatorCalculator_Compute_VolumeRatioExcludesLatestBar(t *testing.T) {
	calc := NewIndicatorCalculator(testThresholds())

	// 20 trailing bars at 100 shares, latest bar surges to 520.
	closes, volumes := flatSeries(21, 50, 100)
	volumes[20] = 520

	ind, err := calc.Compute(marketSnapshot("NVDA", closes, volumes))
	require.NoError(t, err)

	assert.InDelta(t, 100, ind.AvgVolume20, 1e-9)
	assert.InDelta(t, 5.2, ind.VolumeRatio, 1e-9)
}

func TestIndicatorCalculator_Compute_VolumeRatioDefaultsToOneOnZeroAverage(t *testing.T) {
	calc := NewIndicatorCalculator(testThresholds())

	closes, volumes := flatSeries(5, 50, 0)
	volumes[4] = 999

	ind, err := calc.Compute(marketSnapshot("NVDA", closes, volumes))
	require.NoError(t, err)
	assert.Equal(t, 1.0, ind.VolumeRatio)
}

func TestIndicatorCalculator_Compute_PctChange1D(t *testing.T) {
	calc := NewIndicatorCalculator(testThresholds())

	closes, volumes := flatSeries(10, 100, 100)
	closes[9] = 112

	ind, err := calc.Compute(marketSnapshot("NVDA", closes, volumes))
	require.NoError(t, err)
	assert.InDelta(t, 12, ind.PctChange1D, 1e-9)
}

func TestIndicatorCalculator_RSI(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{
			name:   "all gains pins at 100",
			closes: []float64{100, 101, 102, 103, 104, 105},
			want:   100,
		},
		{
			name:   "all losses pins at 0",
			closes: []float64{105, 104, 103, 102, 101, 100},
			want:   0,
		},
		{
			name:   "balanced gains and losses reads 50",
			closes: []float64{100, 110, 100, 110, 100},
			want:   50,
		},
	}

	calc := NewIndicatorCalculator(testThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.rsi(tt.closes)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestIndicatorCalculator_Trend(t *testing.T) {
	calc := NewIndicatorCalculator(testThresholds())

	tests := []struct {
		name        string
		latestPrice float64
		want        model.Trend
	}{
		{name: "above moving average", latestPrice: 105, want: model.TrendUp},
		{name: "below moving average", latestPrice: 95, want: model.TrendDown},
		{name: "inside epsilon band", latestPrice: 100.1, want: model.TrendFlat},
	}

	closes, volumes := flatSeries(21, 100, 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := marketSnapshot("NVDA", closes, volumes)
			snapshot.LatestPrice = tt.latestPrice

			ind, err := calc.Compute(snapshot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ind.Trend)
		})
	}
}
