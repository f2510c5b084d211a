// Package flight implements the vehicle's 6-DoF dynamics and the
// rate-command control law that drives them. One Model owns the complete
// vehicle state; a single Step call per host frame advances it and returns a
// read-only telemetry snapshot. The ordering inside a step is fixed:
// throttle/afterburner bookkeeping, control-law evaluation, orientation
// integration, aerodynamic force evaluation (new orientation, pre-step
// velocity), then velocity/position integration.
package flight

import (
	"math"

	"github.com/halcyon-labs/aloft/config"
	"github.com/halcyon-labs/aloft/environ"
	"github.com/halcyon-labs/aloft/terrain"
	"github.com/halcyon-labs/aloft/vmath"
)

// Vehicle-local axes. Forward is -Z, matching the camera convention.
var (
	localRight   = vmath.Vec3{X: 1}
	localUp      = vmath.Vec3{Y: 1}
	localForward = vmath.Vec3{Z: -1}
)

// Model owns the vehicle kinematic state and advances it step by step.
// It is not safe for concurrent use; the host loop calls Step exactly once
// per frame.
type Model struct {
	cfg *config.Config

	inputs ControlInputs

	pos    vmath.Vec3
	orient vmath.Quat
	vel    vmath.Vec3

	pitchRate float64
	rollRate  float64
	yawRate   float64

	throttle float64
	fuel     float64
	burnerOn bool

	gSmoothed    float64
	pointerScale float64
	simTime      float64

	elev *terrain.ElevationSampler
	wind *environ.GustField

	last Snapshot
}

// New creates a vehicle in approximate cruise trim: level wings, nose pitched
// up by the configured trim attitude, horizontal velocity at cruise speed.
func New(cfg *config.Config) *Model {
	m := &Model{
		cfg:          cfg,
		pos:          vmath.Vec3{Y: cfg.Vehicle.InitialAltitude},
		orient:       vmath.QuatFromAxisAngle(localRight, cfg.Vehicle.TrimPitch),
		vel:          vmath.Vec3{Z: -cfg.Vehicle.CruiseSpeed},
		throttle:     cfg.Vehicle.InitialThrottle,
		fuel:         1,
		gSmoothed:    1,
		pointerScale: 1,
	}
	m.last = Snapshot{
		Speed:           cfg.Vehicle.CruiseSpeed,
		Throttle:        m.throttle,
		GForce:          1,
		AfterburnerFuel: 1,
		Altitude:        m.pos.Y,
	}
	return m
}

// SetElevation wires in ground-contact clamping against the given sampler.
// A nil sampler leaves the vehicle free to pass through terrain.
func (m *Model) SetElevation(s *terrain.ElevationSampler) { m.elev = s }

// SetWind wires in the gust disturbance field. Nil means calm air.
func (m *Model) SetWind(w *environ.GustField) { m.wind = w }

// Step advances the simulation by dt seconds and returns the telemetry
// snapshot for the step. A non-finite or non-positive dt is a no-op: the
// previous snapshot is returned and no state changes. dt is clamped to the
// configured maximum to bound integration error during frame hitches.
func (m *Model) Step(dt float64) Snapshot {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return m.last
	}
	if dt > m.cfg.Physics.MaxDT {
		dt = m.cfg.Physics.MaxDT
	}
	m.simTime += dt

	m.updateEnergy(dt)
	authority, pitchCmd := m.controlStep(dt)

	prevVel := m.vel
	snap := m.applyForces(dt, authority)
	m.updateGForce(prevVel, dt)

	snap.Time = m.simTime
	snap.GForce = m.gSmoothed
	snap.PitchInput = pitchCmd
	snap.PitchRate = m.pitchRate
	snap.RollRate = m.rollRate
	snap.YawRate = m.yawRate
	snap.Throttle = m.throttle
	snap.AfterburnerFuel = m.fuel
	snap.AfterburnerActive = m.burnerOn
	snap.Altitude = m.pos.Y

	m.last = snap
	return snap
}

// updateEnergy ramps the throttle toward its commanded direction and runs
// afterburner fuel bookkeeping. Thrust later in the same step sees the
// updated values. The burner gate is re-evaluated every step with no
// hysteresis.
func (m *Model) updateEnergy(dt float64) {
	v := &m.cfg.Vehicle

	if m.inputs.ThrottleDir > 0 {
		m.throttle = math.Min(1, m.throttle+v.ThrottleRate*dt)
	} else if m.inputs.ThrottleDir < 0 {
		m.throttle = math.Max(0, m.throttle-v.ThrottleRate*dt)
	}

	m.burnerOn = m.inputs.Boost && m.fuel > v.FuelFloor
	if m.burnerOn {
		m.fuel = math.Max(0, m.fuel-v.BurnRate*dt)
	} else {
		m.fuel = math.Min(1, m.fuel+v.RegenRate*dt)
	}
}

// updateGForce derives the smoothed load factor from the velocity change
// over the step: specific force (acceleration minus gravity) projected onto
// the vehicle up axis, in gravities.
func (m *Model) updateGForce(prevVel vmath.Vec3, dt float64) {
	grav := m.cfg.Physics.Gravity
	up := m.orient.Rotate(localUp)

	specific := m.vel.Sub(prevVel).Scale(1 / dt).Add(vmath.Vec3{Y: grav})
	g := specific.Dot(up) / grav
	g = clamp(g, m.cfg.GForce.ClampMin, m.cfg.GForce.ClampMax)

	k := math.Min(1, dt*m.cfg.GForce.Smoothing)
	m.gSmoothed += (g - m.gSmoothed) * k
}

// VehiclePose returns the current position and orientation, for placing the
// vehicle's visual representation and recentering terrain paging.
func (m *Model) VehiclePose() (vmath.Vec3, vmath.Quat) {
	return m.pos, m.orient
}

// Velocity returns the world-frame linear velocity.
func (m *Model) Velocity() vmath.Vec3 { return m.vel }

// Speed returns the current airspeed.
func (m *Model) Speed() float64 { return m.vel.Len() }

// AfterburnerActive reports whether the burner produced thrust this step.
func (m *Model) AfterburnerActive() bool { return m.burnerOn }

// LastSnapshot returns the telemetry from the most recent completed step.
func (m *Model) LastSnapshot() Snapshot { return m.last }

// SimTime returns accumulated simulation time in seconds.
func (m *Model) SimTime() float64 { return m.simTime }

// State is the serializable vehicle state, used by telemetry snapshots for
// save/replay.
type State struct {
	Position    vmath.Vec3 `json:"position"`
	Orientation vmath.Quat `json:"orientation"`
	Velocity    vmath.Vec3 `json:"velocity"`
	PitchRate   float64    `json:"pitch_rate"`
	RollRate    float64    `json:"roll_rate"`
	YawRate     float64    `json:"yaw_rate"`
	Throttle    float64    `json:"throttle"`
	Fuel        float64    `json:"fuel"`
	GForce      float64    `json:"g_force"`
	SimTime     float64    `json:"sim_time"`
}

// CaptureState copies the current vehicle state.
func (m *Model) CaptureState() State {
	return State{
		Position:    m.pos,
		Orientation: m.orient,
		Velocity:    m.vel,
		PitchRate:   m.pitchRate,
		RollRate:    m.rollRate,
		YawRate:     m.yawRate,
		Throttle:    m.throttle,
		Fuel:        m.fuel,
		GForce:      m.gSmoothed,
		SimTime:     m.simTime,
	}
}

// RestoreState overwrites the vehicle state, renormalizing the orientation in
// case it was perturbed by serialization rounding.
func (m *Model) RestoreState(st State) {
	m.pos = st.Position
	m.orient = st.Orientation.Normalized()
	m.vel = st.Velocity
	m.pitchRate = st.PitchRate
	m.rollRate = st.RollRate
	m.yawRate = st.YawRate
	m.throttle = clamp(st.Throttle, 0, 1)
	m.fuel = clamp(st.Fuel, 0, 1)
	m.gSmoothed = st.GForce
	m.simTime = st.SimTime
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x float64) float64 { return clamp(x, 0, 1) }
