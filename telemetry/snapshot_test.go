package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/halcyon-labs/aloft/flight"
	"github.com/halcyon-labs/aloft/vmath"
)

func TestStateSnapshotRoundtrip(t *testing.T) {
	dir := t.TempDir()

	snap := &StateSnapshot{
		Version: SnapshotVersion,
		Seed:    42,
		Tick:    1234,
		Vehicle: flight.State{
			Position:    vmath.Vec3{X: 120.5, Y: 430.2, Z: -9000.1},
			Orientation: vmath.QuatFromAxisAngle(vmath.Vec3{X: 1}, 0.04),
			Velocity:    vmath.Vec3{Z: -120},
			PitchRate:   0.02,
			Throttle:    0.36,
			Fuel:        0.9,
			GForce:      1.01,
			SimTime:     20.57,
		},
	}

	path, err := SaveState(snap, dir)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "snapshot_1234.json" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	loaded, err := LoadState(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Version != snap.Version || loaded.Seed != snap.Seed || loaded.Tick != snap.Tick {
		t.Errorf("header mismatch: %+v vs %+v", loaded, snap)
	}
	if loaded.Vehicle != snap.Vehicle {
		t.Errorf("vehicle state mismatch:\n got %+v\nwant %+v", loaded.Vehicle, snap.Vehicle)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	if _, err := LoadState(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
