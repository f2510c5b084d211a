package flight

import (
	"math"
	"math/rand"
	"testing"

	"github.com/halcyon-labs/aloft/config"
	"github.com/halcyon-labs/aloft/environ"
	"github.com/halcyon-labs/aloft/terrain"
)

const testDT = 1.0 / 60.0

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func TestStepRejectsBadDT(t *testing.T) {
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0, -0.5}

	for _, dt := range bad {
		m := New(testCfg(t))
		// Advance once so the model has a non-initial snapshot to return.
		want := m.Step(testDT)
		before := m.CaptureState()

		got := m.Step(dt)
		if got != want {
			t.Errorf("Step(%v) snapshot changed: got %+v, want %+v", dt, got, want)
		}
		if m.CaptureState() != before {
			t.Errorf("Step(%v) mutated state", dt)
		}
	}
}

func TestStepClampsLargeDT(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	m.Step(10.0)
	if got := m.SimTime(); got != cfg.Physics.MaxDT {
		t.Errorf("SimTime after oversized step = %v, want %v", got, cfg.Physics.MaxDT)
	}
}

func TestInvariantsUnderRandomInputs(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)
	m.SetElevation(terrain.NewElevationSampler(terrain.NewNoiseField(7), terrain.ElevationParams{
		BaseScale:      cfg.Terrain.BaseScale,
		BaseAmplitude:  cfg.Terrain.BaseAmplitude,
		Octaves:        cfg.Terrain.Octaves,
		RidgeScale:     cfg.Terrain.RidgeScale,
		RidgeAmplitude: cfg.Terrain.RidgeAmplitude,
	}))
	m.SetWind(environ.NewGustField(7, cfg.Wind.Amplitude, cfg.Wind.Scale, cfg.Wind.TimeScale))

	rng := rand.New(rand.NewSource(42))
	c := &cfg.Control

	for i := 0; i < 3000; i++ {
		m.ApplyPointerDelta((rng.Float64()*2-1)*200, (rng.Float64()*2-1)*200)
		if i%37 == 0 {
			dir := float64(rng.Intn(3) - 1)
			yaw := rng.Float64()*2 - 1
			m.SetControlInputs(dir, yaw, rng.Intn(4) == 0, false)
		}
		snap := m.Step(testDT)

		pos, orient := m.VehiclePose()
		if d := math.Abs(orient.Len() - 1); d > 1e-6 {
			t.Fatalf("step %d: orientation drifted off unit length by %v", i, d)
		}
		if snap.Speed < cfg.Vehicle.MinSpeed-1e-6 || snap.Speed > cfg.Derived.SpeedCeiling+1e-6 {
			t.Fatalf("step %d: speed %v outside [%v, %v]", i, snap.Speed,
				cfg.Vehicle.MinSpeed, cfg.Derived.SpeedCeiling)
		}
		if math.Abs(snap.PitchRate) > c.MaxPitchRate+1e-9 ||
			math.Abs(snap.RollRate) > c.MaxRollRate+1e-9 ||
			math.Abs(snap.YawRate) > c.MaxYawRate+1e-9 {
			t.Fatalf("step %d: angular rates %v/%v/%v exceed limits",
				i, snap.PitchRate, snap.RollRate, snap.YawRate)
		}
		if snap.AfterburnerFuel < 0 || snap.AfterburnerFuel > 1 {
			t.Fatalf("step %d: fuel %v outside [0, 1]", i, snap.AfterburnerFuel)
		}
		if snap.Throttle < 0 || snap.Throttle > 1 {
			t.Fatalf("step %d: throttle %v outside [0, 1]", i, snap.Throttle)
		}
		for _, v := range []float64{pos.X, pos.Y, pos.Z, snap.GForce, snap.Alpha, snap.Beta} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("step %d: non-finite state value", i)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() State {
		cfg := testCfg(t)
		m := New(cfg)
		m.SetWind(environ.NewGustField(99, cfg.Wind.Amplitude, cfg.Wind.Scale, cfg.Wind.TimeScale))

		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 600; i++ {
			m.ApplyPointerDelta((rng.Float64()*2-1)*100, (rng.Float64()*2-1)*100)
			if i == 120 {
				m.SetControlInputs(1, 0.3, true, false)
			}
			if i == 400 {
				m.SetControlInputs(-1, 0, false, false)
			}
			m.Step(testDT)
		}
		return m.CaptureState()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("identical runs diverged:\n a=%+v\n b=%+v", a, b)
	}
}

func TestGroundClampHoldsClearance(t *testing.T) {
	cfg := testCfg(t)
	noise := terrain.NewNoiseField(3)
	elev := terrain.NewElevationSampler(noise, terrain.ElevationParams{
		BaseScale:      cfg.Terrain.BaseScale,
		BaseAmplitude:  cfg.Terrain.BaseAmplitude,
		Octaves:        cfg.Terrain.Octaves,
		RidgeScale:     cfg.Terrain.RidgeScale,
		RidgeAmplitude: cfg.Terrain.RidgeAmplitude,
	})

	m := New(cfg)
	m.SetElevation(elev)

	// Start just above the floor, diving steeply.
	st := m.CaptureState()
	st.Position.Y = elev.Height(st.Position.X, st.Position.Z) + cfg.Terrain.MinAltitude + 5
	st.Velocity = st.Velocity.Scale(0.5)
	st.Velocity.Y = -80
	m.RestoreState(st)

	for i := 0; i < 120; i++ {
		m.Step(testDT)
		pos, _ := m.VehiclePose()
		floor := elev.Height(pos.X, pos.Z) + cfg.Terrain.MinAltitude
		if pos.Y < floor-1e-9 {
			t.Fatalf("step %d: altitude %v below floor %v", i, pos.Y, floor)
		}
	}
}

func TestShapeInput(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	if got := m.shapeInput(cfg.Input.Deadzone / 2); got != 0 {
		t.Errorf("inside deadzone: got %v, want 0", got)
	}
	if got := m.shapeInput(1); math.Abs(got-1) > 1e-12 {
		t.Errorf("full deflection: got %v, want 1", got)
	}
	if got := m.shapeInput(-1); math.Abs(got+1) > 1e-12 {
		t.Errorf("full negative deflection: got %v, want -1", got)
	}
	if a, b := m.shapeInput(0.3), m.shapeInput(0.6); a >= b {
		t.Errorf("shaping not monotonic: f(0.3)=%v >= f(0.6)=%v", a, b)
	}
	// Expo flattens the center of the curve.
	if got := m.shapeInput(0.5); got >= 0.5 {
		t.Errorf("expo curve should attenuate mid deflection: got %v", got)
	}
}

func TestPointerDeltaAccumulation(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	m.ApplyPointerDelta(10, 0)
	want := 10 * cfg.Input.Sensitivity
	if got := m.Inputs().StickX; math.Abs(got-want) > 1e-12 {
		t.Errorf("StickX = %v, want %v", got, want)
	}

	// Framing-mode scale multiplies incoming deltas.
	m.SetPointerScale(0.5)
	m.ApplyPointerDelta(10, 0)
	want += 5 * cfg.Input.Sensitivity
	if got := m.Inputs().StickX; math.Abs(got-want) > 1e-12 {
		t.Errorf("scaled StickX = %v, want %v", got, want)
	}

	// Stick saturates at the unit range.
	m.ApplyPointerDelta(1e9, -1e9)
	in := m.Inputs()
	if in.StickX != 1 || in.StickY != -1 {
		t.Errorf("saturated stick = (%v, %v), want (1, -1)", in.StickX, in.StickY)
	}
}

func TestThrottleRamp(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	m.SetControlInputs(1, 0, false, false)
	steps := int(1/(cfg.Vehicle.ThrottleRate*testDT)) + 2
	for i := 0; i < steps; i++ {
		m.Step(testDT)
	}
	if got := m.LastSnapshot().Throttle; got != 1 {
		t.Errorf("throttle after full-up ramp = %v, want 1", got)
	}

	m.SetControlInputs(0, 0, false, false)
	m.Step(testDT)
	if got := m.LastSnapshot().Throttle; got != 1 {
		t.Errorf("throttle moved with neutral command: %v", got)
	}

	m.SetControlInputs(-1, 0, false, false)
	for i := 0; i < 2*steps; i++ {
		m.Step(testDT)
	}
	if got := m.LastSnapshot().Throttle; got != 0 {
		t.Errorf("throttle after full-down ramp = %v, want 0", got)
	}
}

func TestAfterburnerFuelGate(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	// Drain to the floor.
	m.SetControlInputs(0, 0, true, false)
	drainSteps := int(1/(cfg.Vehicle.BurnRate*testDT)) + 60
	for i := 0; i < drainSteps; i++ {
		m.Step(testDT)
	}
	snap := m.LastSnapshot()
	if snap.AfterburnerFuel > cfg.Vehicle.FuelFloor+cfg.Vehicle.RegenRate*testDT+1e-9 {
		t.Errorf("fuel did not drain to the floor: %v", snap.AfterburnerFuel)
	}

	// Released boost regenerates fuel.
	m.SetControlInputs(0, 0, false, false)
	for i := 0; i < 120; i++ {
		m.Step(testDT)
	}
	regen := m.LastSnapshot()
	if regen.AfterburnerActive {
		t.Error("burner active without boost command")
	}
	if regen.AfterburnerFuel <= snap.AfterburnerFuel {
		t.Errorf("fuel did not regenerate: %v -> %v", snap.AfterburnerFuel, regen.AfterburnerFuel)
	}
}

func TestCaptureRestoreRoundtrip(t *testing.T) {
	cfg := testCfg(t)
	m := New(cfg)

	m.SetControlInputs(1, 0.2, false, false)
	for i := 0; i < 90; i++ {
		m.ApplyPointerDelta(3, -2)
		m.Step(testDT)
	}
	saved := m.CaptureState()

	for i := 0; i < 90; i++ {
		m.Step(testDT)
	}
	if m.CaptureState() == saved {
		t.Fatal("state did not evolve after capture")
	}

	// RestoreState renormalizes the orientation, which may perturb the last
	// bits, so compare with a tolerance rather than exactly.
	m.RestoreState(saved)
	got := m.CaptureState()
	if got.Position != saved.Position || got.Velocity != saved.Velocity ||
		got.Throttle != saved.Throttle || got.Fuel != saved.Fuel ||
		got.SimTime != saved.SimTime {
		t.Errorf("restore mismatch:\n got=%+v\nwant=%+v", got, saved)
	}
	for _, d := range []float64{
		got.Orientation.W - saved.Orientation.W,
		got.Orientation.X - saved.Orientation.X,
		got.Orientation.Y - saved.Orientation.Y,
		got.Orientation.Z - saved.Orientation.Z,
	} {
		if math.Abs(d) > 1e-12 {
			t.Errorf("restored orientation drifted: got %+v, want %+v",
				got.Orientation, saved.Orientation)
			break
		}
	}
}
