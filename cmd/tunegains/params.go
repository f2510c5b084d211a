package main

import (
	"github.com/halcyon-labs/aloft/config"
)

// ParamSpec defines a single optimizable control gain.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable gains.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable control gains.
// Rate limits and the AoA limit itself stay locked; the optimizer only moves
// the feedback gains around them.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "pitch_response", Path: "control.pitch_response", Min: 1.0, Max: 10.0, Default: 4.5},
			{Name: "roll_response", Path: "control.roll_response", Min: 1.0, Max: 12.0, Default: 6.0},
			{Name: "yaw_response", Path: "control.yaw_response", Min: 0.5, Max: 8.0, Default: 3.0},
			{Name: "roll_level_gain", Path: "control.roll_level_gain", Min: 0.0, Max: 4.0, Default: 1.2},
			{Name: "roll_damping", Path: "control.roll_damping", Min: 0.1, Max: 3.0, Default: 0.8},
			{Name: "alpha_trim_gain", Path: "control.alpha_trim_gain", Min: 0.0, Max: 4.0, Default: 1.0},
			{Name: "pitch_damping", Path: "control.pitch_damping", Min: 0.2, Max: 4.0, Default: 1.8},
			{Name: "beta_gain", Path: "control.beta_gain", Min: 0.5, Max: 8.0, Default: 3.0},
			{Name: "yaw_damping", Path: "control.yaw_damping", Min: 0.2, Max: 5.0, Default: 2.0},
			{Name: "turn_coordination", Path: "control.turn_coordination", Min: 0.0, Max: 1.0, Default: 0.35},
			{Name: "path_hold_gain", Path: "control.path_hold_gain", Min: 0.0, Max: 6.0, Default: 2.5},
			{Name: "alpha_limiter_gain", Path: "control.alpha_limiter_gain", Min: 5.0, Max: 60.0, Default: 25.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default gain values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw gain values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw gain values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies gain values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	c := &cfg.Control
	i := 0
	c.PitchResponse = clamped[i]
	i++
	c.RollResponse = clamped[i]
	i++
	c.YawResponse = clamped[i]
	i++
	c.RollLevelGain = clamped[i]
	i++
	c.RollDamping = clamped[i]
	i++
	c.AlphaTrimGain = clamped[i]
	i++
	c.PitchDamping = clamped[i]
	i++
	c.BetaGain = clamped[i]
	i++
	c.YawDamping = clamped[i]
	i++
	c.TurnCoordination = clamped[i]
	i++
	c.PathHoldGain = clamped[i]
	i++
	c.AlphaLimiterGain = clamped[i]
}

// ExtractFromConfig extracts current gain values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	c := &cfg.Control
	return []float64{
		c.PitchResponse,
		c.RollResponse,
		c.YawResponse,
		c.RollLevelGain,
		c.RollDamping,
		c.AlphaTrimGain,
		c.PitchDamping,
		c.BetaGain,
		c.YawDamping,
		c.TurnCoordination,
		c.PathHoldGain,
		c.AlphaLimiterGain,
	}
}
