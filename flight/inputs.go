package flight

import "math"

// ControlInputs holds the raw pilot inputs. The discrete fields are written
// by the input-handling collaborator; the two virtual-stick axes accumulate
// pointer deltas and are exponentially re-centered by the model every step.
type ControlInputs struct {
	ThrottleDir float64 // -1, 0 or 1
	YawInput    float64 // -1..1 rudder
	Boost       bool
	InvertY     bool

	// Virtual stick axes, -1..1. StickX is roll, StickY is pitch.
	StickX float64
	StickY float64
}

// SetControlInputs updates the discrete control fields.
func (m *Model) SetControlInputs(throttleDir, yawInput float64, boost, invertY bool) {
	m.inputs.ThrottleDir = throttleDir
	m.inputs.YawInput = clamp(yawInput, -1, 1)
	m.inputs.Boost = boost
	m.inputs.InvertY = invertY
}

// ApplyPointerDelta accumulates a pointer movement into the virtual stick.
// Deltas are scaled by the configured sensitivity and the current framing
// mode's pointer scale, then clamped to the stick range.
func (m *Model) ApplyPointerDelta(dx, dy float64) {
	s := m.cfg.Input.Sensitivity * m.pointerScale
	m.inputs.StickX = clamp(m.inputs.StickX+dx*s, -1, 1)
	m.inputs.StickY = clamp(m.inputs.StickY+dy*s, -1, 1)
}

// SetPointerScale sets the framing-mode sensitivity multiplier applied to
// pointer deltas.
func (m *Model) SetPointerScale(scale float64) { m.pointerScale = scale }

// Inputs returns a copy of the current control inputs.
func (m *Model) Inputs() ControlInputs { return m.inputs }

// shapeInput applies the deadzone and the expo curve: fine control near
// center, full authority at the edges.
func (m *Model) shapeInput(x float64) float64 {
	if math.Abs(x) < m.cfg.Input.Deadzone {
		return 0
	}
	shaped := math.Pow(math.Abs(x), 1+m.cfg.Input.Expo)
	return math.Copysign(shaped, x)
}
