package flight

import (
	"math"

	"github.com/halcyon-labs/aloft/vmath"
)

// applyForces recomputes the aerodynamic state from the new orientation and
// the pre-step velocity, integrates velocity and position, and enforces the
// speed and ground-contact clamps. Returns a snapshot with the aerodynamic
// fields filled in.
func (m *Model) applyForces(dt float64, authority float64) Snapshot {
	a := &m.cfg.Aero
	v := &m.cfg.Vehicle

	forward := m.orient.Rotate(localForward)
	up := m.orient.Rotate(localUp)
	right := m.orient.Rotate(localRight)

	// Floor the speed before deriving direction and dynamic pressure so a
	// degenerate velocity cannot poison the coefficients.
	speed := math.Max(m.vel.Len(), 1)
	dir := m.vel.Scale(1 / speed)
	if dir.LenSq() < 1e-9 {
		dir = forward
	}

	vl := m.orient.Conj().Rotate(m.vel)
	alpha := math.Atan2(-vl.Y, -vl.Z)
	beta := math.Atan2(vl.X, -vl.Z)

	// Stall fade: linear ramp from the threshold, fully developed one fade
	// band past it.
	stall := clamp01((math.Abs(alpha) - a.StallAlpha) / a.StallFade)

	cl := clamp(a.CL0+a.CLAlpha*alpha, -a.CLMax, a.CLMax)
	cl *= 1 - a.StallLiftLoss*stall
	cd := a.CD0 + a.CDAlpha*math.Abs(alpha) + a.InducedDrag*cl*cl + a.StallDrag*stall
	// Sideslip pushes the fuselage away from the oncoming flow, turning the
	// velocity back toward the nose.
	cy := clamp(-a.SideSlope*beta, -a.SideMax, a.SideMax)

	// Dynamic pressure proxy; density is folded into the gain constants.
	q := speed * speed

	liftAccel := a.LiftGain * cl * q
	dragAccel := a.DragGain * cd * q
	sideAccel := a.SideGain * cy * q

	// Lift acts along vehicle up orthogonal to the velocity; side force
	// along vehicle right orthogonal to the velocity.
	liftDir := up.Reject(dir).Normalized()
	if liftDir.LenSq() < 1e-9 {
		liftDir = up
	}
	sideDir := right.Reject(dir).Normalized()
	if sideDir.LenSq() < 1e-9 {
		sideDir = right
	}

	thrust := v.ThrustIdle + (v.ThrustMax-v.ThrustIdle)*m.throttle
	if m.burnerOn {
		thrust += v.AfterburnerThrust
	}

	accel := liftDir.Scale(liftAccel).
		Add(dir.Scale(-dragAccel)).
		Add(sideDir.Scale(sideAccel)).
		Add(forward.Scale(thrust)).
		Add(vmath.Vec3{Y: -m.cfg.Physics.Gravity}).
		Add(m.wind.GustAccel(m.pos, m.simTime))

	m.vel = m.vel.Add(accel.Scale(dt))

	// Velocity-alignment helper: nudge the velocity direction toward the
	// nose, preserving speed. Arcade-feel correction, not a physical force.
	sp := m.vel.Len()
	k := clamp01(a.AlignRate * authority * dt)
	blended := m.vel.Scale(1 - k).Add(forward.Scale(sp * k))
	if bl := blended.Len(); bl > 1e-9 {
		m.vel = blended.Scale(sp / bl)
	}

	// Direction-preserving speed clamp.
	sp = m.vel.Len()
	ceiling := m.cfg.Derived.SpeedCeiling
	if sp < v.MinSpeed {
		if sp < 1e-9 {
			m.vel = forward.Scale(v.MinSpeed)
		} else {
			m.vel = m.vel.Scale(v.MinSpeed / sp)
		}
	} else if sp > ceiling {
		m.vel = m.vel.Scale(ceiling / sp)
	}

	m.pos = m.pos.Add(m.vel.Scale(dt))

	// Ground contact: clamp altitude to terrain plus clearance and stop any
	// downward motion on contact.
	if m.elev != nil {
		floor := m.elev.Height(m.pos.X, m.pos.Z) + m.cfg.Terrain.MinAltitude
		if m.pos.Y < floor {
			m.pos.Y = floor
			if m.vel.Y < 0 {
				m.vel.Y = 0
			}
		}
	}

	return Snapshot{
		Speed:         m.vel.Len(),
		Thrust:        thrust,
		Alpha:         alpha,
		Beta:          beta,
		CL:            cl,
		CD:            cd,
		CY:            cy,
		LiftAccel:     liftAccel,
		DragAccel:     dragAccel,
		SideAccel:     sideAccel,
		StallFraction: stall,
		Authority:     authority,
	}
}
