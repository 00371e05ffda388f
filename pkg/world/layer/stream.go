package layer

import "math"

// Stream is a sequential splitmix64 generator. Pipelines use it for draws that
// are not tied to a grid cell: layer salts, river growth and fractal jitter.
// Not safe for concurrent use.
type Stream struct {
	state uint64
}

// NewStream returns a stream seeded with seed.
func NewStream(seed int64) *Stream {
	return &Stream{state: uint64(seed)}
}

// Uint64 returns the next 64 random bits.
func (s *Stream) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Int63 returns a non-negative int64.
func (s *Stream) Int63() int64 {
	return int64(s.Uint64() & math.MaxInt64)
}

// Float64 returns a value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// IntN returns a value in [0, n). n must be positive.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		panic("layer: IntN bound must be positive")
	}
	return int(s.Uint64() % uint64(n))
}

// Bool returns true or false with equal probability.
func (s *Stream) Bool() bool {
	return s.Uint64()&1 == 1
}
