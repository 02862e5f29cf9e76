package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"whale-watcher/internal/model"
	"whale-watcher/internal/repository"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*HttpAPIHandler, *echo.Echo, *repository.Repository) {
	t.Helper()
	dir := t.TempDir()

	repo := &repository.Repository{
		JournalRepo:  repository.NewCSVJournalRepository(filepath.Join(dir, "journal.csv")),
		SnapshotRepo: repository.NewFileSnapshotRepository(filepath.Join(dir, "snapshot.json")),
	}

	e := echo.New()
	handler := NewHttpAPIHandler(context.Background(), e, goValidator.New(), nil, repo)
	handler.SetupRoutes()
	return handler, e, repo
}

func TestGetDashboard(t *testing.T) {
	t.Run("404 before the first run publishes", func(t *testing.T) {
		_, e, _ := newTestHandler(t)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("serves the published snapshot", func(t *testing.T) {
		_, e, repo := newTestHandler(t)

		snapshot := &model.DashboardSnapshot{
			GeneratedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
			Order:       []string{"NVDA"},
			Symbols: map[string]model.SymbolReport{
				"NVDA": {
					Price:    912.40,
					Signal:   model.SignalWhaleEruption,
					Severity: model.SeverityCritical,
				},
			},
		}
		require.NoError(t, repo.SnapshotRepo.Save(snapshot))

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data model.DashboardSnapshot `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []string{"NVDA"}, body.Data.Order)
		assert.Equal(t, model.SignalWhaleEruption, body.Data.Symbols["NVDA"].Signal)
	})
}

func TestDashboardPage(t *testing.T) {
	_, e, repo := newTestHandler(t)

	snapshot := &model.DashboardSnapshot{
		GeneratedAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		Order:       []string{"NVDA"},
		Symbols: map[string]model.SymbolReport{
			"NVDA": {Price: 912.40, Signal: model.SignalWhaleEruption, Severity: model.SeverityCritical, Notes: "5.2x volume"},
		},
	}
	require.NoError(t, repo.SnapshotRepo.Save(snapshot))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NVDA")
	assert.Contains(t, rec.Body.String(), "WHALE_ERUPTION")
	assert.Contains(t, rec.Body.String(), "$912.40")
}

func TestGetJournal(t *testing.T) {
	_, e, repo := newTestHandler(t)

	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	_, err := repo.JournalRepo.Append(context.Background(), []model.JournalEntry{
		{Timestamp: day, Symbol: "NVDA", Action: model.SignalWhaleEruption, Price: 912.40, Notes: "5.2x volume"},
	})
	require.NoError(t, err)

	t.Run("returns recent entries", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/journal?limit=10", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data []model.JournalEntry `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "NVDA", body.Data[0].Symbol)
	})

	t.Run("rejects an oversized limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/journal?limit=5000", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
