package terrain

import "math"

// ElevationParams holds the tunables for elevation synthesis.
type ElevationParams struct {
	BaseScale      float64 // frequency of the rolling base terrain
	BaseAmplitude  float64 // height contribution of the fBm base
	Octaves        int     // fBm octave count
	RidgeScale     float64 // frequency of the ridge term; lower than BaseScale
	RidgeAmplitude float64 // height contribution of ridgelines
}

// ElevationSampler maps any (x, z) to a terrain height. It is a pure
// function of its inputs after construction; independent callers (rendering,
// ground contact) may query it without coordination.
type ElevationSampler struct {
	noise  *NoiseField
	params ElevationParams
}

// NewElevationSampler wraps an owned noise field. The noise field is injected
// rather than shared through a package global so seeds stay reproducible per
// instance.
func NewElevationSampler(noise *NoiseField, params ElevationParams) *ElevationSampler {
	return &ElevationSampler{noise: noise, params: params}
}

// Height returns the terrain elevation at (x, z): a smooth fractal base plus
// a lower-frequency folded ridge term that produces occasional sharp crests.
func (s *ElevationSampler) Height(x, z float64) float64 {
	p := s.params
	base := s.noise.FBM(x*p.BaseScale, z*p.BaseScale, p.Octaves) * p.BaseAmplitude
	ridge := math.Abs(s.noise.Sample2D(x*p.RidgeScale, z*p.RidgeScale)) * p.RidgeAmplitude
	return base + ridge
}
