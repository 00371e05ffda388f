// Package layer implements the resolution pyramid shared by every classification
// pipeline: seeded per-cell random draws, memoized grid areas and the generic
// transforms (zoom, smooth, neighborhood and merge) stages are built from.
package layer

// LCG multiplier and increment used for every seed mix.
const (
	lcgMul = 6364136223846793005
	lcgAdd = 1442695040888963407
)

// Mix advances seed by one LCG step salted with v. Arithmetic wraps.
func Mix(seed, v int64) int64 {
	return seed*(seed*lcgMul+lcgAdd) + v
}

// Context holds the seed of a single layer, derived from the world seed and the
// layer's salt. It is immutable and safe to share between goroutines.
type Context struct {
	seed int64
}

// NewContext derives the layer seed for salt under worldSeed.
func NewContext(worldSeed, salt int64) Context {
	s := salt
	s = Mix(s, salt)
	s = Mix(s, salt)
	s = Mix(s, salt)

	w := worldSeed
	w = Mix(w, s)
	w = Mix(w, s)
	w = Mix(w, s)
	return Context{seed: w}
}

// Seed returns the mixed layer seed.
func (c Context) Seed() int64 { return c.seed }

// At returns a generator positioned at cell (x, z). Two calls with the same
// arguments always yield the same draw sequence.
func (c Context) At(x, z int) Rand {
	s := c.seed
	s = Mix(s, int64(x))
	s = Mix(s, int64(z))
	s = Mix(s, int64(x))
	s = Mix(s, int64(z))
	return Rand{state: s, seed: c.seed}
}

// Rand is a cell-local random sequence. It is a value: copies draw independently.
type Rand struct {
	state int64
	seed  int64
}

// NextInt returns a value in [0, bound). bound must be positive.
func (r *Rand) NextInt(bound int) int {
	if bound <= 0 {
		panic("layer: NextInt bound must be positive")
	}
	v := (r.state >> 24) % int64(bound)
	if v < 0 {
		v += int64(bound)
	}
	r.state = Mix(r.state, r.seed)
	return int(v)
}

// NextFloat returns a value in [0, 1) with 24 bits of precision.
func (r *Rand) NextFloat() float64 {
	return float64(r.NextInt(1<<24)) / (1 << 24)
}

// Choose2 returns a or b with equal probability using one draw.
func Choose2[T any](r *Rand, a, b T) T {
	if r.NextInt(2) == 0 {
		return a
	}
	return b
}

// Choose4 returns one of four values with equal probability using one draw.
func Choose4[T any](r *Rand, a, b, c, d T) T {
	switch r.NextInt(4) {
	case 0:
		return a
	case 1:
		return b
	case 2:
		return c
	default:
		return d
	}
}
