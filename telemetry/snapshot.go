package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyon-labs/aloft/flight"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// StateSnapshot holds the complete vehicle state for save/replay. Together
// with the terrain seed it reproduces the session exactly.
type StateSnapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Tick    int32 `json:"tick"`

	Vehicle flight.State `json:"vehicle"`
}

// SaveState writes a state snapshot to disk and returns the path it was
// saved to.
func SaveState(snapshot *StateSnapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Tick))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadState reads a state snapshot from disk.
func LoadState(path string) (*StateSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot StateSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
