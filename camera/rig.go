// Package camera derives a smoothed external viewpoint from the vehicle
// pose. Three framing modes are supported; the rig position is critically
// damped toward the mode's desired offset rather than snapped, and the field
// of view widens under afterburner.
package camera

import (
	"math"

	"github.com/halcyon-labs/aloft/vmath"
)

// Mode selects the camera framing.
type Mode int

const (
	ModeChase Mode = iota // trailing chase view
	ModeClose             // close forward-looking view
	ModeSide              // side-offset view
	modeCount
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeChase:
		return "chase"
	case ModeClose:
		return "close"
	case ModeSide:
		return "side"
	}
	return "unknown"
}

// Next cycles to the following framing mode.
func (m Mode) Next() Mode { return (m + 1) % modeCount }

// framing holds a mode's offsets in vehicle-relative axes.
type framing struct {
	posForward, posUp, posRight    float64
	aimForward, aimUp              float64
}

var framings = [modeCount]framing{
	ModeChase: {posForward: -18, posUp: 6, aimForward: 12, aimUp: 1.5},
	ModeClose: {posForward: -8, posUp: 2.5, aimForward: 25},
	ModeSide:  {posForward: -6, posUp: 4, posRight: 16, aimForward: 8},
}

// Params holds rig smoothing constants.
type Params struct {
	PositionTau    float64 // seconds; damping time constant for position
	FOVTau         float64
	BaseFOV        float64 // degrees
	AfterburnerFOV float64

	// Pointer sensitivity multiplier per mode, indexed by Mode.
	Sensitivity [3]float64
}

// Pose is the camera output consumed once per rendered frame.
type Pose struct {
	Position vmath.Vec3
	Target   vmath.Vec3
	FOV      float64
}

// Rig holds the smoothed camera state.
type Rig struct {
	params Params
	mode   Mode

	pos         vmath.Vec3
	fov         float64
	initialized bool
}

// NewRig creates a rig in chase mode.
func NewRig(params Params) *Rig {
	return &Rig{params: params, fov: params.BaseFOV}
}

// Mode returns the active framing mode.
func (r *Rig) Mode() Mode { return r.mode }

// SetMode switches the framing mode. The position keeps damping from where
// it is, so switches glide instead of cutting.
func (r *Rig) SetMode(m Mode) { r.mode = m }

// CycleMode advances to the next framing mode and returns it.
func (r *Rig) CycleMode() Mode {
	r.mode = r.mode.Next()
	return r.mode
}

// SensitivityScale returns the pointer sensitivity multiplier for the active
// mode.
func (r *Rig) SensitivityScale() float64 {
	return r.params.Sensitivity[r.mode]
}

// Update advances the rig toward the desired framing for the given vehicle
// pose and returns the camera pose for this frame.
func (r *Rig) Update(dt float64, pos vmath.Vec3, orient vmath.Quat, afterburner bool) Pose {
	f := framings[r.mode]

	forward := orient.Rotate(vmath.Vec3{Z: -1})
	up := orient.Rotate(vmath.Vec3{Y: 1})
	right := orient.Rotate(vmath.Vec3{X: 1})

	desired := pos.
		Add(forward.Scale(f.posForward)).
		Add(up.Scale(f.posUp)).
		Add(right.Scale(f.posRight))
	target := pos.
		Add(forward.Scale(f.aimForward)).
		Add(up.Scale(f.aimUp))

	if !r.initialized {
		r.pos = desired
		r.initialized = true
	} else {
		k := 1 - math.Exp(-dt/r.params.PositionTau)
		r.pos = r.pos.Add(desired.Sub(r.pos).Scale(k))
	}

	fovTarget := r.params.BaseFOV
	if afterburner {
		fovTarget = r.params.AfterburnerFOV
	}
	kf := 1 - math.Exp(-dt/r.params.FOVTau)
	r.fov += (fovTarget - r.fov) * kf

	return Pose{Position: r.pos, Target: target, FOV: r.fov}
}
