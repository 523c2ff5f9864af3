// Package persistence moves state snapshots in and out of files.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/brewtrack/internal/ports/primary"
)

// FileSnapshotStore implements primary.SnapshotStore with indented JSON
// files. The format is the external exchange contract: exports are meant
// to be diffed, archived and re-imported.
type FileSnapshotStore struct{}

// NewFileSnapshotStore creates a new file-based snapshot store.
func NewFileSnapshotStore() *FileSnapshotStore {
	return &FileSnapshotStore{}
}

// Save writes the snapshot to path as indented JSON.
func (s *FileSnapshotStore) Save(path string, snap *primary.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}

// Load reads a snapshot from path.
func (s *FileSnapshotStore) Load(path string) (*primary.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	snap := &primary.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return snap, nil
}

// Ensure FileSnapshotStore implements the interface
var _ primary.SnapshotStore = (*FileSnapshotStore)(nil)
