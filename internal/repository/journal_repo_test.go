package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func journalEntry(day time.Time, symbol string, action model.SignalKind) model.JournalEntry {
	return model.JournalEntry{
		Timestamp: day,
		Symbol:    symbol,
		Action:    action,
		Price:     912.40,
		Notes:     "5.2x volume",
	}
}

func TestCSVJournalRepository_AppendCreatesFileWithHeader(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "journal.csv")
	repo := NewCSVJournalRepository(path)

	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	written, err := repo.Append(ctx, []model.JournalEntry{journalEntry(day, "NVDA", model.SignalWhaleEruption)})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(journalHeader, ","), lines[0])
	assert.Contains(t, lines[1], "NVDA")
	assert.Contains(t, lines[1], "WHALE_ERUPTION")
}

func TestCSVJournalRepository_AppendIsIdempotentPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewCSVJournalRepository(filepath.Join(t.TempDir(), "journal.csv"))

	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC)

	written, err := repo.Append(ctx, []model.JournalEntry{journalEntry(morning, "NVDA", model.SignalWhaleEruption)})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Same day, same symbol, same action: skipped regardless of time.
	written, err = repo.Append(ctx, []model.JournalEntry{journalEntry(evening, "NVDA", model.SignalWhaleEruption)})
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	// Different action on the same day still lands.
	written, err = repo.Append(ctx, []model.JournalEntry{journalEntry(evening, "NVDA", model.SignalBreakingNews)})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// The calendar rolling over resets the dedup.
	written, err = repo.Append(ctx, []model.JournalEntry{journalEntry(nextDay, "NVDA", model.SignalWhaleEruption)})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	entries, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCSVJournalRepository_AppendDeduplicatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	repo := NewCSVJournalRepository(filepath.Join(t.TempDir(), "journal.csv"))

	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	written, err := repo.Append(ctx, []model.JournalEntry{
		journalEntry(day, "NVDA", model.SignalWhaleEruption),
		journalEntry(day, "NVDA", model.SignalWhaleEruption),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written)
}

func TestCSVJournalRepository_RoundTripsOptionalColumns(t *testing.T) {
	ctx := context.Background()
	repo := NewCSVJournalRepository(filepath.Join(t.TempDir(), "journal.csv"))

	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	entry := model.JournalEntry{
		Timestamp:   day,
		Symbol:      "MSFT",
		Action:      model.SignalKind(model.PhaseProfitTarget),
		Price:       156.60,
		EntryPrice:  utils.ToPointer(130.50),
		GainLossPct: utils.ToPointer(20.0),
		HoldingDays: utils.ToPointer(45),
		Notes:       "up 20.00%, target reached",
	}

	_, err := repo.Append(ctx, []model.JournalEntry{entry, journalEntry(day, "NVDA", model.SignalWhaleEruption)})
	require.NoError(t, err)

	entries, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got := entries[0]
	assert.Equal(t, "MSFT", got.Symbol)
	require.NotNil(t, got.EntryPrice)
	assert.InDelta(t, 130.50, *got.EntryPrice, 1e-9)
	require.NotNil(t, got.GainLossPct)
	assert.InDelta(t, 20.0, *got.GainLossPct, 1e-9)
	require.NotNil(t, got.HoldingDays)
	assert.Equal(t, 45, *got.HoldingDays)

	watch := entries[1]
	assert.Nil(t, watch.EntryPrice)
	assert.Nil(t, watch.GainLossPct)
	assert.Nil(t, watch.HoldingDays)
}

func TestCSVJournalRepository_RecentLimitsToNewest(t *testing.T) {
	ctx := context.Background()
	repo := NewCSVJournalRepository(filepath.Join(t.TempDir(), "journal.csv"))

	for i := 0; i < 5; i++ {
		day := time.Date(2026, 3, 10+i, 8, 0, 0, 0, time.UTC)
		_, err := repo.Append(ctx, []model.JournalEntry{journalEntry(day, "NVDA", model.SignalWhaleEruption)})
		require.NoError(t, err)
	}

	entries, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 13, entries[0].Timestamp.Day())
	assert.Equal(t, 14, entries[1].Timestamp.Day())
}

func TestCSVJournalRepository_RecentOnMissingFile(t *testing.T) {
	repo := NewCSVJournalRepository(filepath.Join(t.TempDir(), "missing.csv"))

	entries, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
