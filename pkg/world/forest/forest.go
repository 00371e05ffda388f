// Package forest builds the forest density pipeline. Densities start from
// OpenSimplex noise on the root grid and are broken up by random passes while
// zooming to quart resolution.
package forest

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// Type is a forest density.
type Type int32

const (
	None Type = iota
	Sparse
	Normal
	Edge
	OldGrowth
)

var typeNames = [...]string{"none", "sparse", "normal", "edge", "old_growth"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// IsForest reports whether t carries trees.
func (t Type) IsForest() bool { return t != None }

// DefaultSpread is the noise frequency of the root grid.
const DefaultSpread = 0.3

// FinalLevel is the level of the pipeline output, at quart resolution.
const FinalLevel = 5

// Density thresholds on normalized noise.
const (
	sparseAbove    = 0.38
	normalAbove    = 0.5
	oldGrowthAbove = 0.66
)

// Classify maps a normalized noise value to a density.
func Classify(v float64) Type {
	switch {
	case v >= oldGrowthAbove:
		return OldGrowth
	case v >= normalAbove:
		return Normal
	case v >= sparseAbove:
		return Sparse
	}
	return None
}

// NewInit samples noise at every root cell.
func NewInit(ctx layer.Context, spread float64, opts ...layer.Option) *layer.Area[Type] {
	noise := opensimplex.NewNormalized(ctx.Seed())
	return layer.New(0, func(x, z int) Type {
		return Classify(noise.Eval2(float64(x)*spread, float64(z)*spread))
	}, opts...)
}

var densities = [...]Type{Sparse, Normal, OldGrowth}

// NewRandomize occasionally reassigns densities: forests get a random forest
// density and clearings a sparse forest.
func NewRandomize(ctx layer.Context, parent layer.Sampler[Type], opts ...layer.Option) *layer.Area[Type] {
	return layer.NewTransform(ctx, parent, func(r *layer.Rand, _, _ int, v Type) Type {
		if v == None {
			if r.NextInt(24) == 0 {
				return Sparse
			}
			return None
		}
		if r.NextInt(10) == 0 {
			return densities[r.NextInt(len(densities))]
		}
		return v
	}, opts...)
}

// NewEdge marks forest cells touching a clearing.
func NewEdge(ctx layer.Context, parent layer.Sampler[Type], opts ...layer.Option) *layer.Area[Type] {
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c Type) Type {
		if c != None && c != Edge && (n == None || e == None || s == None || w == None) {
			return Edge
		}
		return c
	}, opts...)
}

// NewRandomizeSmall thins a few interior cells by one density step.
func NewRandomizeSmall(ctx layer.Context, parent layer.Sampler[Type], opts ...layer.Option) *layer.Area[Type] {
	return layer.NewTransform(ctx, parent, func(r *layer.Rand, _, _ int, v Type) Type {
		if v == None || v == Edge || r.NextInt(20) != 0 {
			return v
		}
		switch v {
		case OldGrowth:
			return Normal
		case Normal:
			return Sparse
		}
		return None
	}, opts...)
}

// Build registers the forest stages and returns the output area.
func Build(b *layer.Builder, spread float64) *layer.Area[Type] {
	opts := b.Options()
	zoom := func(a *layer.Area[Type], mode layer.ZoomMode) *layer.Area[Type] {
		return layer.AddLabel(b, "forest_zoom", layer.Zoom(b.Context(), a, mode, opts...))
	}

	a := layer.AddLabel(b, "forest_init", NewInit(b.Context(), spread, opts...))
	a = layer.AddLabel(b, "forest_randomize", NewRandomize(b.Context(), a, opts...))
	a = zoom(a, layer.ZoomFuzzy)
	a = layer.AddLabel(b, "forest_randomize", NewRandomize(b.Context(), a, opts...))
	a = zoom(a, layer.ZoomFuzzy)
	a = zoom(a, layer.ZoomNormal)
	a = layer.AddLabel(b, "forest_edge", NewEdge(b.Context(), a, opts...))
	a = layer.AddLabel(b, "forest_randomize_small", NewRandomizeSmall(b.Context(), a, opts...))
	a = zoom(a, layer.ZoomNormal)
	return zoom(a, layer.ZoomNormal)
}
