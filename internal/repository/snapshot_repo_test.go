package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotRepository_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapshot.json")
	repo := NewFileSnapshotRepository(path)

	snapshot := &model.DashboardSnapshot{
		GeneratedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		Order:       []string{"NVDA", "MSFT"},
		Symbols: map[string]model.SymbolReport{
			"NVDA": {
				Price:       912.40,
				Volume:      52000000,
				RSI:         62.5,
				VolumeRatio: 5.2,
				PctChange1D: 4.1,
				Trend:       model.TrendUp,
				Signal:      model.SignalWhaleEruption,
				Severity:    model.SeverityCritical,
				Notes:       "5.2x volume",
			},
			"MSFT": {
				Price:       155.50,
				Signal:      model.SignalKind(model.PhaseHolding),
				Severity:    model.SeverityInfo,
				HoldingDays: utils.ToPointer(100),
				GainLossPct: utils.ToPointer(19.16),
				Phase:       utils.ToPointer(string(model.PhaseHolding)),
			},
		},
	}

	require.NoError(t, repo.Save(snapshot))

	got, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.True(t, snapshot.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, snapshot.Order, got.Order)
	assert.Equal(t, snapshot.Symbols["NVDA"], got.Symbols["NVDA"])
	assert.Equal(t, snapshot.Symbols["MSFT"], got.Symbols["MSFT"])
}

func TestFileSnapshotRepository_SaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	repo := NewFileSnapshotRepository(path)

	first := &model.DashboardSnapshot{
		GeneratedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		Order:       []string{"NVDA", "AMD"},
		Symbols: map[string]model.SymbolReport{
			"NVDA": {Signal: model.SignalNeutral},
			"AMD":  {Signal: model.SignalNeutral},
		},
	}
	require.NoError(t, repo.Save(first))

	second := &model.DashboardSnapshot{
		GeneratedAt: time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC),
		Order:       []string{"NVDA"},
		Symbols: map[string]model.SymbolReport{
			"NVDA": {Signal: model.SignalRally},
		},
	}
	require.NoError(t, repo.Save(second))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA"}, got.Order)
	assert.NotContains(t, got.Symbols, "AMD")

	// No temp file debris left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileSnapshotRepository_LoadMissingFile(t *testing.T) {
	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "missing.json"))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileSnapshotRepository_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewFileSnapshotRepository(path)
	_, err := repo.Load()
	assert.Error(t, err)
}
