package flight

import (
	"math"

	"github.com/halcyon-labs/aloft/vmath"
)

// controlStep runs the rate-command control law for one step: shapes the
// stick, blends rate commands with stability augmentation into angular
// accelerations, integrates the angular rates and applies the resulting
// rotations to the orientation. Returns the control authority factor and the
// shaped pitch command.
func (m *Model) controlStep(dt float64) (authority, pitchCmd float64) {
	c := &m.cfg.Control

	// Spring-return stick feel, frame-rate independent.
	decay := math.Exp(-dt / m.cfg.Input.StickDecay)
	m.inputs.StickX *= decay
	m.inputs.StickY *= decay

	rollCmd := m.shapeInput(m.inputs.StickX)
	pitchCmd = m.shapeInput(m.inputs.StickY)
	if m.inputs.InvertY {
		pitchCmd = -pitchCmd
	}

	// Flow angles from the velocity vector in the vehicle frame.
	vl := m.orient.Conj().Rotate(m.vel)
	alpha := math.Atan2(-vl.Y, -vl.Z)
	beta := math.Atan2(vl.X, -vl.Z)

	speed := m.vel.Len()
	authority = clamp(speed/m.cfg.Vehicle.CruiseSpeed, c.AuthorityMin, c.AuthorityMax)

	desPitch := pitchCmd * c.MaxPitchRate * authority
	desRoll := rollCmd * c.MaxRollRate * authority
	desYaw := m.inputs.YawInput * c.MaxYawRate * authority

	// AoA limiter, first line: past the limit the commanded pitch rate may
	// not push alpha further out.
	if alpha > c.AlphaLimit && desPitch > 0 {
		desPitch = 0
	} else if alpha < -c.AlphaLimit && desPitch < 0 {
		desPitch = 0
	}

	right := m.orient.Rotate(localRight)
	up := m.orient.Rotate(localUp)

	// Bank angle, positive rolled right.
	bank := math.Atan2(-right.Y, up.Y)

	// Vertical flight-path angle; the hold term fades out under pilot pitch
	// commands so it only steadies hands-off flight.
	gamma := math.Asin(clamp(m.vel.Y/math.Max(speed, 1), -1, 1))
	holdBlend := clamp01(1 - math.Abs(pitchCmd)/c.PathHoldBlend)

	pitchAcc := (desPitch-m.pitchRate)*c.PitchResponse -
		c.AlphaTrimGain*alpha -
		c.PitchDamping*m.pitchRate -
		c.PathHoldGain*gamma*holdBlend

	// AoA limiter, second line: restoring acceleration past the threshold.
	if alpha > c.AlphaLimit {
		pitchAcc -= c.AlphaLimiterGain * (alpha - c.AlphaLimit)
	} else if alpha < -c.AlphaLimit {
		pitchAcc -= c.AlphaLimiterGain * (alpha + c.AlphaLimit)
	}

	rollAcc := (desRoll-m.rollRate)*c.RollResponse -
		c.RollLevelGain*bank -
		c.RollDamping*m.rollRate

	// Banking induces yaw, approximating a coordinated turn.
	yawAcc := (desYaw-m.yawRate)*c.YawResponse -
		c.BetaGain*beta -
		c.YawDamping*m.yawRate -
		c.TurnCoordination*m.rollRate

	m.pitchRate = clamp(m.pitchRate+pitchAcc*dt, -c.MaxPitchRate, c.MaxPitchRate)
	m.rollRate = clamp(m.rollRate+rollAcc*dt, -c.MaxRollRate, c.MaxRollRate)
	m.yawRate = clamp(m.yawRate+yawAcc*dt, -c.MaxYawRate, c.MaxYawRate)

	// Fixed rotation order for reproducibility; per-step angles are small
	// enough that commutation error is negligible.
	m.orient = m.orient.
		Mul(vmath.QuatFromAxisAngle(localRight, m.pitchRate*dt)).
		Mul(vmath.QuatFromAxisAngle(localForward, m.rollRate*dt)).
		Mul(vmath.QuatFromAxisAngle(localUp, m.yawRate*dt)).
		Normalized()

	return authority, pitchCmd
}
