package localfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

const snapshotFile = "clause_index.json"

// ClauseStore persists clause index snapshots as a single JSON file.
// Writes go through a temp file and rename so a crashed rebuild never
// leaves a truncated snapshot behind.
type ClauseStore struct {
	basePath string
}

func NewClauseStore(basePath string) (*ClauseStore, error) {
	if basePath == "" {
		basePath = "./data/clause-index"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &ClauseStore{basePath: basePath}, nil
}

func (s *ClauseStore) SaveEntries(_ context.Context, entries []domain.ClauseEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(s.basePath, snapshotFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// LoadEntries returns the persisted snapshot, or an empty slice when no
// rebuild has run yet.
func (s *ClauseStore) LoadEntries(_ context.Context) ([]domain.ClauseEntry, error) {
	path := filepath.Join(s.basePath, snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var entries []domain.ClauseEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return entries, nil
}
