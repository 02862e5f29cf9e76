package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/pkg/utils"
)

var journalHeader = []string{"timestamp", "ticker", "action", "price", "entry_price", "gain_loss_pct", "holding_days", "notes"}

// JournalRepository is the append-only trade journal. Appends are
// idempotent at (day, symbol, action) granularity: re-running the engine on
// the same day never duplicates an entry.
type JournalRepository interface {
	Append(ctx context.Context, entries []model.JournalEntry) (int, error)
	Recent(ctx context.Context, limit int) ([]model.JournalEntry, error)
}

type csvJournalRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVJournalRepository(path string) JournalRepository {
	return &csvJournalRepository{path: path}
}

// Append writes the entries that are not already journaled for their
// calendar day and returns how many were written.
func (r *csvJournalRepository) Append(ctx context.Context, entries []model.JournalEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.readAll()
	if err != nil {
		return 0, fmt.Errorf("read journal: %w", err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		seen[entry.DedupKey()] = struct{}{}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return 0, fmt.Errorf("create journal dir: %w", err)
	}

	writeHeader := len(existing) == 0
	if _, statErr := os.Stat(r.path); statErr == nil {
		writeHeader = false
	}

	file, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(journalHeader); err != nil {
			return 0, fmt.Errorf("write journal header: %w", err)
		}
	}

	written := 0
	for _, entry := range entries {
		key := entry.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record := []string{
			entry.Timestamp.Format(time.RFC3339),
			entry.Symbol,
			string(entry.Action),
			strconv.FormatFloat(entry.Price, 'f', 2, 64),
			utils.FormatFloat(entry.EntryPrice),
			utils.FormatFloat(entry.GainLossPct),
			utils.FormatInt(entry.HoldingDays),
			entry.Notes,
		}
		if err := writer.Write(record); err != nil {
			return written, fmt.Errorf("write journal record: %w", err)
		}
		written++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return written, fmt.Errorf("flush journal: %w", err)
	}
	return written, nil
}

// Recent returns up to limit entries, newest last.
func (r *csvJournalRepository) Recent(ctx context.Context, limit int) ([]model.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.readAll()
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (r *csvJournalRepository) readAll() ([]model.JournalEntry, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(journalHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var entries []model.JournalEntry
	for i, record := range records {
		if i == 0 && record[0] == journalHeader[0] {
			continue
		}
		entry, err := parseJournalRecord(record)
		if err != nil {
			return nil, fmt.Errorf("journal line %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseJournalRecord(record []string) (model.JournalEntry, error) {
	timestamp, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse timestamp %q: %w", record[0], err)
	}
	price, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parse price %q: %w", record[3], err)
	}

	entry := model.JournalEntry{
		Timestamp: timestamp,
		Symbol:    record[1],
		Action:    model.SignalKind(record[2]),
		Price:     price,
		Notes:     record[7],
	}

	if record[4] != "" {
		entryPrice, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parse entry_price %q: %w", record[4], err)
		}
		entry.EntryPrice = &entryPrice
	}
	if record[5] != "" {
		gainLossPct, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parse gain_loss_pct %q: %w", record[5], err)
		}
		entry.GainLossPct = &gainLossPct
	}
	if record[6] != "" {
		holdingDays, err := strconv.Atoi(record[6])
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("parse holding_days %q: %w", record[6], err)
		}
		entry.HoldingDays = &holdingDays
	}

	return entry, nil
}
