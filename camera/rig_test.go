package camera

import (
	"math"
	"testing"

	"github.com/halcyon-labs/aloft/vmath"
)

func testParams() Params {
	return Params{
		PositionTau:    0.25,
		FOVTau:         0.35,
		BaseFOV:        60,
		AfterburnerFOV: 72,
		Sensitivity:    [3]float64{1.0, 0.7, 0.85},
	}
}

func TestFirstUpdateSnapsToFraming(t *testing.T) {
	r := NewRig(testParams())
	pos := vmath.Vec3{X: 100, Y: 400, Z: -50}
	pose := r.Update(1.0/60, pos, vmath.IdentityQuat(), false)

	// Chase mode: 18 behind (world +Z for identity orientation), 6 above.
	want := vmath.Vec3{X: 100, Y: 406, Z: -32}
	if pose.Position.Sub(want).Len() > 1e-9 {
		t.Errorf("expected first pose %+v, got %+v", want, pose.Position)
	}
}

func TestPositionDampsWithoutOvershoot(t *testing.T) {
	r := NewRig(testParams())
	r.Update(1.0/60, vmath.Vec3{}, vmath.IdentityQuat(), false)

	// Teleport the vehicle; the camera should close the gap monotonically.
	vehicle := vmath.Vec3{X: 500}
	prevGap := math.Inf(1)
	for i := 0; i < 300; i++ {
		pose := r.Update(1.0/60, vehicle, vmath.IdentityQuat(), false)
		desired := vmath.Vec3{X: 500, Y: 6, Z: 18}
		gap := pose.Position.Sub(desired).Len()
		if gap > prevGap+1e-9 {
			t.Fatalf("camera overshot at step %d: gap %v -> %v", i, prevGap, gap)
		}
		prevGap = gap
	}
	if prevGap > 1.0 {
		t.Errorf("camera did not converge: remaining gap %v", prevGap)
	}
}

func TestFOVBoostsUnderAfterburner(t *testing.T) {
	r := NewRig(testParams())
	var pose Pose
	for i := 0; i < 600; i++ {
		pose = r.Update(1.0/60, vmath.Vec3{}, vmath.IdentityQuat(), true)
	}
	if math.Abs(pose.FOV-72) > 0.5 {
		t.Errorf("expected FOV near 72 under afterburner, got %v", pose.FOV)
	}

	for i := 0; i < 600; i++ {
		pose = r.Update(1.0/60, vmath.Vec3{}, vmath.IdentityQuat(), false)
	}
	if math.Abs(pose.FOV-60) > 0.5 {
		t.Errorf("expected FOV to settle back near 60, got %v", pose.FOV)
	}
}

func TestCycleModeWraps(t *testing.T) {
	r := NewRig(testParams())
	if r.Mode() != ModeChase {
		t.Fatalf("expected initial chase mode, got %v", r.Mode())
	}
	r.CycleMode()
	r.CycleMode()
	if r.Mode() != ModeSide {
		t.Errorf("expected side mode after two cycles, got %v", r.Mode())
	}
	r.CycleMode()
	if r.Mode() != ModeChase {
		t.Errorf("expected wrap to chase, got %v", r.Mode())
	}
}

func TestSensitivityFollowsMode(t *testing.T) {
	r := NewRig(testParams())
	if r.SensitivityScale() != 1.0 {
		t.Errorf("chase sensitivity: got %v", r.SensitivityScale())
	}
	r.SetMode(ModeClose)
	if r.SensitivityScale() != 0.7 {
		t.Errorf("close sensitivity: got %v", r.SensitivityScale())
	}
}

func TestModeStrings(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeChase, "chase"},
		{ModeClose, "close"},
		{ModeSide, "side"},
		{Mode(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.mode.String(); got != tc.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.want)
		}
	}
}
