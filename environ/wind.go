// Package environ provides atmospheric disturbances applied to the flight
// model. The gust field is deterministic for a given seed: identical
// positions and sim times always produce identical gusts.
package environ

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/halcyon-labs/aloft/vmath"
)

// Component offsets keep the three gust axes decorrelated while sharing one
// noise instance.
const (
	gustOffsetY = 133.7
	gustOffsetZ = 87.1

	// Vertical gusts are weaker than lateral ones.
	verticalGustScale = 0.6
)

// GustField produces a smoothly varying gust acceleration from seeded
// simplex noise over position and simulation time.
type GustField struct {
	noise     opensimplex.Noise
	amplitude float64
	scale     float64
	timeScale float64
}

// NewGustField creates a gust field. Amplitude is peak acceleration in
// m/s^2; zero disables the field entirely.
func NewGustField(seed int64, amplitude, scale, timeScale float64) *GustField {
	return &GustField{
		noise:     opensimplex.New(seed),
		amplitude: amplitude,
		scale:     scale,
		timeScale: timeScale,
	}
}

// GustAccel returns the gust acceleration at a world position and sim time.
// Safe to call on a nil receiver (calm air).
func (g *GustField) GustAccel(pos vmath.Vec3, t float64) vmath.Vec3 {
	if g == nil || g.amplitude == 0 {
		return vmath.Vec3{}
	}

	x := pos.X * g.scale
	z := pos.Z * g.scale
	tt := t * g.timeScale

	return vmath.Vec3{
		X: g.noise.Eval3(x, z, tt),
		Y: g.noise.Eval3(x+gustOffsetY, z, tt) * verticalGustScale,
		Z: g.noise.Eval3(x, z+gustOffsetZ, tt),
	}.Scale(g.amplitude)
}
