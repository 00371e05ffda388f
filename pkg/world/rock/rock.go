// Package rock builds the pipeline assigning each chunk a rock-category index.
// The number of categories is not known when the pipeline is built: it comes
// from an injected provider so the registry can be loaded later.
package rock

import (
	"errors"
	"sync/atomic"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// ErrNoRockCategories is returned when a rock is sampled before any categories
// are registered.
var ErrNoRockCategories = errors.New("rock: no rock categories registered")

// BoundProvider returns the current number of rock categories.
type BoundProvider func() int

// Latch returns a provider that reports p's first positive value forever. Until
// p reports a positive value, the latch passes its readings through.
func Latch(p BoundProvider) BoundProvider {
	var latched atomic.Int64
	return func() int {
		if v := latched.Load(); v > 0 {
			return int(v)
		}
		v := p()
		if v <= 0 {
			return v
		}
		if latched.CompareAndSwap(0, int64(v)) {
			return v
		}
		return int(latched.Load())
	}
}

func mustBound(bound BoundProvider) int {
	n := bound()
	if n <= 0 {
		panic(ErrNoRockCategories)
	}
	return n
}

// NewSource draws a category for every cell.
func NewSource(ctx layer.Context, bound BoundProvider, opts ...layer.Option) *layer.Area[int32] {
	return layer.NewSource(ctx, 0, func(r *layer.Rand, _, _ int) int32 {
		return int32(r.NextInt(mustBound(bound)))
	}, opts...)
}

// NewRandomizeNeighbors redraws, once, every cell that matches one of its
// north, east, south or west neighbors.
func NewRandomizeNeighbors(ctx layer.Context, parent layer.Sampler[int32], bound BoundProvider, opts ...layer.Option) *layer.Area[int32] {
	return layer.NewCross(ctx, parent, func(r *layer.Rand, n, e, s, w, c int32) int32 {
		if n == c || e == c || s == c || w == c {
			return int32(r.NextInt(mustBound(bound)))
		}
		return c
	}, opts...)
}

// Settings configures the rock pipeline.
type Settings struct {
	// LayerScale is the number of zooms after the smoothing passes.
	LayerScale int
}

// FinalLevel returns the level of the pipeline output for s.
func (s Settings) FinalLevel() int { return 4 + s.LayerScale }

// Build registers the rock stages and returns the output area, at chunk
// resolution. bound is latched on first use.
func Build(b *layer.Builder, s Settings, bound BoundProvider) *layer.Area[int32] {
	opts := b.Options()
	bound = Latch(bound)

	a := layer.AddLabel(b, "rock_source", NewSource(b.Context(), bound, opts...))
	a = layer.AddLabel(b, "randomize_neighbors", NewRandomizeNeighbors(b.Context(), a, bound, opts...))
	for i := 0; i < 2; i++ {
		a = layer.AddLabel(b, "rock_zoom", layer.Zoom(b.Context(), a, layer.ZoomNormal, opts...))
		a = layer.AddLabel(b, "rock_zoom", layer.Zoom(b.Context(), a, layer.ZoomNormal, opts...))
		a = layer.AddLabel(b, "rock_smooth", layer.Smooth(b.Context(), a, opts...))
	}
	for i := 0; i < s.LayerScale; i++ {
		a = layer.AddLabel(b, "rock_scale_zoom", layer.Zoom(b.Context(), a, layer.ZoomNormal, opts...))
	}
	return a
}
