package layer

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Stage is a named, type-erased view of an area registered with a Builder.
type Stage struct {
	Name     string
	Pipeline string
	Level    int

	sample func(x, z int) int32
	evict  func(pred func(Key) bool) int
	size   func() int
}

// Sample returns the encoded value of cell (x, z) on the stage grid.
func (s Stage) Sample(x, z int) int32 { return s.sample(x, z) }

// Evict drops the stage's cached cells matching pred.
func (s Stage) Evict(pred func(Key) bool) int { return s.evict(pred) }

// Len returns the number of cached cells.
func (s Stage) Len() int { return s.size() }

// Builder hands out layer contexts in build order and records the stages of a
// pipeline. Salts come from a stream seeded by the world seed and the pipeline
// name, so the same seed always rebuilds identical layers.
type Builder struct {
	name   string
	seed   int64
	salts  *Stream
	opts   []Option
	stages []Stage
	names  map[string]int
}

// NewBuilder returns a builder for the named pipeline. opts apply to every area
// built through Options.
func NewBuilder(seed int64, name string, opts ...Option) *Builder {
	return &Builder{
		name:  name,
		seed:  seed,
		salts: NewStream(seed ^ int64(xxhash.Sum64String(name))),
		opts:  opts,
		names: make(map[string]int),
	}
}

// Name returns the pipeline name.
func (b *Builder) Name() string { return b.name }

// Seed returns the world seed.
func (b *Builder) Seed() int64 { return b.seed }

// Context returns the context for the next layer.
func (b *Builder) Context() Context {
	return NewContext(b.seed, b.salts.Int63())
}

// Options returns the cache options shared by the pipeline's areas.
func (b *Builder) Options() []Option { return b.opts }

// Stages returns the registered stages in build order.
func (b *Builder) Stages() []Stage {
	out := make([]Stage, len(b.stages))
	copy(out, b.stages)
	return out
}

// Add registers a under name and returns it. encode maps values to int32 for
// tooling. Repeated names get a numeric suffix.
func Add[T any](b *Builder, name string, a *Area[T], encode func(T) int32) *Area[T] {
	b.names[name]++
	if n := b.names[name]; n > 1 {
		name += "_" + strconv.Itoa(n)
	}
	b.stages = append(b.stages, Stage{
		Name:     name,
		Pipeline: b.name,
		Level:    a.Level(),
		sample:   func(x, z int) int32 { return encode(a.Get(x, z)) },
		evict:    a.Evict,
		size:     a.Len,
	})
	return a
}

// AddLabel registers an area of integer labels.
func AddLabel[T ~int32](b *Builder, name string, a *Area[T]) *Area[T] {
	return Add(b, name, a, func(v T) int32 { return int32(v) })
}
