// Package terrain provides the procedural elevation field: a seeded 2D
// gradient-noise primitive plus a fractal sampler that maps any horizontal
// coordinate to a height. Both are deterministic for a given seed and hold no
// mutable state after construction, so they are safe for concurrent queries.
package terrain

import "math"

// Simplex skew factors for 2D.
const (
	skew2   = 0.3660254037844386  // (sqrt(3)-1)/2
	unskew2 = 0.21132486540518713 // (3-sqrt(3))/6
)

// Corner gradients. Indexed by the low 3 bits of the permutation hash.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// NoiseField is a seeded simplex-lattice gradient noise generator. The
// permutation table is built once from the seed and never mutated.
type NoiseField struct {
	perm [512]int
}

// NewNoiseField builds the permutation table by shuffling 0..255 with a
// linear-congruential generator seeded from seed, then duplicating the table
// to length 512 so corner hashing never needs a wrap-around check.
func NewNoiseField(seed int64) *NoiseField {
	var base [256]int
	for i := range base {
		base[i] = i
	}

	s := uint64(seed)
	for i := len(base) - 1; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	n := &NoiseField{}
	for i := 0; i < 256; i++ {
		n.perm[i] = base[i]
		n.perm[i+256] = base[i]
	}
	return n
}

// Sample2D returns band-limited noise in roughly [-1, 1], continuous across
// lattice boundaries.
func (n *NoiseField) Sample2D(x, y float64) float64 {
	// Skew input space to locate the containing simplex cell.
	s := (x + y) * skew2
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Offsets for the middle corner depend on which triangle we are in.
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii := i & 255
	jj := j & 255

	sum := n.corner(x0, y0, n.perm[ii+n.perm[jj]])
	sum += n.corner(x1, y1, n.perm[ii+i1+n.perm[jj+j1]])
	sum += n.corner(x2, y2, n.perm[ii+1+n.perm[jj+1]])

	// Scale to roughly [-1, 1].
	return 70 * sum
}

// corner computes one corner's contribution: gradient dot offset, weighted by
// a radial falloff that reaches zero at radius^2 = 0.5.
func (n *NoiseField) corner(x, y float64, hash int) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	g := grad2[hash&7]
	return t * t * (g[0]*x + g[1]*y)
}

// FBM sums octaves of Sample2D at geometrically increasing frequency
// (lacunarity 2) and decreasing amplitude (persistence 0.5), normalized by
// the maximum possible amplitude so the result stays in [-1, 1].
func (n *NoiseField) FBM(x, y float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}

	var sum, amp, norm float64
	amp = 1
	freq := 1.0
	for o := 0; o < octaves; o++ {
		sum += n.Sample2D(x*freq, y*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
