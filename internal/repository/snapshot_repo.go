package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"whale-watcher/internal/model"
)

// SnapshotRepository persists the single rolling dashboard snapshot. Save
// replaces the whole document atomically; a crashed run can never leave a
// half-written snapshot behind.
type SnapshotRepository interface {
	Save(snapshot *model.DashboardSnapshot) error
	Load() (*model.DashboardSnapshot, error)
}

type fileSnapshotRepository struct {
	path string
}

func NewFileSnapshotRepository(path string) SnapshotRepository {
	return &fileSnapshotRepository{path: path}
}

// Save writes to a temp file in the same directory, syncs, then renames
// over the destination.
func (r *fileSnapshotRepository) Save(snapshot *model.DashboardSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmpPath := r.path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("sync temp snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load returns the previous run's snapshot, or nil when none exists yet.
func (r *fileSnapshotRepository) Load() (*model.DashboardSnapshot, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot model.DashboardSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
