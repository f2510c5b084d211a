package terrain

import (
	"math"
	"testing"
)

func testParams() ElevationParams {
	return ElevationParams{
		BaseScale:      0.0012,
		BaseAmplitude:  90,
		Octaves:        6,
		RidgeScale:     0.0004,
		RidgeAmplitude: 60,
	}
}

func TestHeightIdempotent(t *testing.T) {
	s := NewElevationSampler(NewNoiseField(42), testParams())

	for i := 0; i < 200; i++ {
		x := float64(i) * 93.7
		z := float64(i) * -41.3
		h1 := s.Height(x, z)
		h2 := s.Height(x, z)
		if h1 != h2 {
			t.Fatalf("height not idempotent at (%v, %v): %v vs %v", x, z, h1, h2)
		}
	}
}

func TestHeightContinuity(t *testing.T) {
	s := NewElevationSampler(NewNoiseField(42), testParams())

	const eps = 0.01
	for i := 0; i < 500; i++ {
		x := float64(i) * 57.3
		z := float64(i) * 23.1
		d := math.Abs(s.Height(x+eps, z) - s.Height(x, z))
		if d > 0.5 {
			t.Fatalf("height jump of %v over %v units at (%v, %v)", d, eps, x, z)
		}
	}
}

func TestHeightBounded(t *testing.T) {
	p := testParams()
	s := NewElevationSampler(NewNoiseField(3), p)

	limit := p.BaseAmplitude + p.RidgeAmplitude + 1
	for i := 0; i < 1000; i++ {
		h := s.Height(float64(i)*211.7, float64(i)*-87.9)
		if h < -limit || h > limit {
			t.Fatalf("height out of amplitude bound: %v", h)
		}
	}
}

func TestRidgeContributionNonNegative(t *testing.T) {
	p := testParams()
	noise := NewNoiseField(11)
	withRidge := NewElevationSampler(noise, p)

	flat := p
	flat.RidgeAmplitude = 0
	withoutRidge := NewElevationSampler(noise, flat)

	for i := 0; i < 300; i++ {
		x := float64(i) * 133.1
		z := float64(i) * 71.7
		if withRidge.Height(x, z) < withoutRidge.Height(x, z)-1e-9 {
			t.Fatalf("ridge term lowered terrain at (%v, %v)", x, z)
		}
	}
}
