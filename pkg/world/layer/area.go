package layer

import "fmt"

// Sampler is a readable layer grid. Level counts the zooms between the grid and
// the root of its pipeline; an area and its same-resolution transforms share it.
type Sampler[T any] interface {
	Get(x, z int) T
	Level() int
}

// Option configures the cache behind an area.
type Option func(*options)

type options struct {
	shardLimit int
}

// WithShardLimit bounds the resident cells per cache shard. Zero means unbounded.
func WithShardLimit(n int) Option {
	return func(o *options) { o.shardLimit = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Area is a memoized grid: a per-cell function plus its cache.
type Area[T any] struct {
	fn    func(x, z int) T
	level int
	cache *Cache[T]
}

// New returns an area at the given level computing cells with fn.
func New[T any](level int, fn func(x, z int) T, opts ...Option) *Area[T] {
	o := buildOptions(opts)
	return &Area[T]{fn: fn, level: level, cache: NewCache[T](o.shardLimit)}
}

// Get returns the value of cell (x, z).
func (a *Area[T]) Get(x, z int) T { return a.cache.GetOrCompute(x, z, a.fn) }

// Level returns the zoom level of the area.
func (a *Area[T]) Level() int { return a.level }

// Evict drops cached cells matching pred.
func (a *Area[T]) Evict(pred func(k Key) bool) int { return a.cache.Evict(pred) }

// Len returns the number of cached cells.
func (a *Area[T]) Len() int { return a.cache.Len() }

// NewSource returns a root area. fn receives a generator positioned at the cell.
func NewSource[T any](ctx Context, level int, fn func(r *Rand, x, z int) T, opts ...Option) *Area[T] {
	return New(level, func(x, z int) T {
		r := ctx.At(x, z)
		return fn(&r, x, z)
	}, opts...)
}

// NewTransform maps every cell of parent through fn.
func NewTransform[P, T any](ctx Context, parent Sampler[P], fn func(r *Rand, x, z int, v P) T, opts ...Option) *Area[T] {
	return New(parent.Level(), func(x, z int) T {
		r := ctx.At(x, z)
		return fn(&r, x, z, parent.Get(x, z))
	}, opts...)
}

// NewCross computes a cell from its north, east, south and west neighbors and
// itself.
func NewCross[P, T any](ctx Context, parent Sampler[P], fn func(r *Rand, n, e, s, w, c P) T, opts ...Option) *Area[T] {
	return New(parent.Level(), func(x, z int) T {
		r := ctx.At(x, z)
		return fn(&r,
			parent.Get(x, z-1),
			parent.Get(x+1, z),
			parent.Get(x, z+1),
			parent.Get(x-1, z),
			parent.Get(x, z))
	}, opts...)
}

// NewCorner computes a cell from its four diagonal neighbors and itself.
func NewCorner[P, T any](ctx Context, parent Sampler[P], fn func(r *Rand, nw, ne, sw, se, c P) T, opts ...Option) *Area[T] {
	return New(parent.Level(), func(x, z int) T {
		r := ctx.At(x, z)
		return fn(&r,
			parent.Get(x-1, z-1),
			parent.Get(x+1, z-1),
			parent.Get(x-1, z+1),
			parent.Get(x+1, z+1),
			parent.Get(x, z))
	}, opts...)
}

// NewMerge combines two parents of the same level cell by cell. It panics when
// the levels differ, which is a pipeline wiring error.
func NewMerge[A, B, T any](ctx Context, a Sampler[A], b Sampler[B], fn func(r *Rand, x, z int, av A, bv B) T, opts ...Option) *Area[T] {
	if a.Level() != b.Level() {
		panic(fmt.Sprintf("layer: merging level %d with level %d", a.Level(), b.Level()))
	}
	return New(a.Level(), func(x, z int) T {
		r := ctx.At(x, z)
		return fn(&r, x, z, a.Get(x, z), b.Get(x, z))
	}, opts...)
}
