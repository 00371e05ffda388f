package biome

import (
	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
)

type area = layer.Area[label.Biome]
type sampler = layer.Sampler[label.Biome]

// pick returns one of choices, favoring earlier entries.
func pick(r *layer.Rand, choices ...label.Biome) label.Biome {
	return choices[r.NextInt(r.NextInt(len(choices))+1)]
}

// regimeLabel maps a plate regime to a provisional label.
func regimeLabel(r *layer.Rand, g plate.Regime) label.Biome {
	switch g {
	case plate.Oceanic:
		return pick(r, label.DeepOcean, label.Ocean)
	case plate.ContinentalShelf:
		return pick(r, label.Ocean, label.OceanReefMarker)
	case plate.OceanOceanDiverging:
		return label.OceanOceanDivergingMarker
	case plate.OceanOceanConvergingLower:
		return pick(r, label.DeepOceanTrench, label.DeepOcean)
	case plate.OceanOceanConvergingUpper:
		return label.OceanOceanConvergingMarker
	case plate.OceanContinentConvergingLower:
		return pick(r, label.DeepOceanTrench, label.DeepOcean, label.Ocean)
	case plate.OceanContinentConvergingUpper:
		return pick(r, label.VolcanicMountains, label.Mountains, label.Plateau)
	case plate.OceanContinentDiverging:
		return pick(r, label.Lowlands, label.Plains, label.Ocean)
	case plate.ContinentContinentDiverging:
		return pick(r, label.Canyons, label.LowCanyons, label.Lowlands)
	case plate.ContinentContinentConverging:
		return pick(r, label.Mountains, label.OldMountains, label.Plateau)
	case plate.ContinentalLow:
		return pick(r, label.Plains, label.Hills, label.Lowlands, label.LowCanyons, label.RollingHills)
	case plate.ContinentalMid:
		return pick(r, label.RollingHills, label.Hills, label.Plains, label.Badlands, label.InvertedBadlands, label.Plateau)
	}
	return pick(r, label.Plateau, label.OldMountains, label.RollingHills, label.Badlands, label.Hills)
}

// NewPlateBiome assigns a provisional label to every regime cell.
func NewPlateBiome(ctx layer.Context, regimes layer.Sampler[plate.Regime], opts ...layer.Option) *area {
	return layer.NewTransform(ctx, regimes, func(r *layer.Rand, _, _ int, g plate.Regime) label.Biome {
		return regimeLabel(r, g)
	}, opts...)
}

func anyOf(pred func(label.Biome) bool, vs ...label.Biome) bool {
	for _, v := range vs {
		if pred(v) {
			return true
		}
	}
	return false
}

// NewOceanBorder keeps deep ocean away from coasts: deep ocean touching land
// becomes ocean.
func NewOceanBorder(ctx layer.Context, parent sampler, opts ...layer.Option) *area {
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c label.Biome) label.Biome {
		if c == label.DeepOcean && anyOf(label.IsLand, n, e, s, w) {
			return label.Ocean
		}
		return c
	}, opts...)
}

// NewArchipelago resolves the ocean-ocean markers. Converging boundaries raise a
// volcanic island one time in islandFrequency; diverging ridges surface half as
// often.
func NewArchipelago(ctx layer.Context, parent sampler, islandFrequency int, opts ...layer.Option) *area {
	return layer.NewTransform(ctx, parent, func(r *layer.Rand, _, _ int, v label.Biome) label.Biome {
		switch v {
		case label.OceanOceanConvergingMarker:
			if r.NextInt(islandFrequency) == 0 {
				return label.VolcanicOceanicMountains
			}
			return label.DeepOcean
		case label.OceanOceanDivergingMarker:
			if r.NextInt(2*islandFrequency) == 0 {
				return label.OceanicMountains
			}
			return label.DeepOcean
		}
		return v
	}, opts...)
}

func isDeep(l label.Biome) bool { return l == label.DeepOcean || l == label.DeepOceanTrench }

// NewReefBorder resolves reef markers: reefs form only in shallow water.
func NewReefBorder(ctx layer.Context, parent sampler, opts ...layer.Option) *area {
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c label.Biome) label.Biome {
		if c != label.OceanReefMarker {
			return c
		}
		if anyOf(isDeep, n, e, s, w) {
			return label.Ocean
		}
		return label.OceanReef
	}, opts...)
}

// NewEdgeBiome softens steep transitions. Low land next to mountains or high
// land becomes hills; mountains next to low land become rolling hills; high land
// next to low land becomes hills.
func NewEdgeBiome(ctx layer.Context, parent sampler, opts ...layer.Option) *area {
	steep := func(l label.Biome) bool { return label.IsMountains(l) || label.IsHigh(l) }
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c label.Biome) label.Biome {
		switch {
		case label.IsLow(c) && c != label.Hills && anyOf(steep, n, e, s, w):
			return label.Hills
		case label.IsMountains(c) && anyOf(label.IsLow, n, e, s, w):
			return label.RollingHills
		case label.IsHigh(c) && anyOf(label.IsLow, n, e, s, w):
			return label.Hills
		}
		return c
	}, opts...)
}

// NewInland marks cells whose whole neighborhood is land.
func NewInland(ctx layer.Context, parent sampler, opts ...layer.Option) *area {
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c label.Biome) label.Biome {
		for _, v := range [5]label.Biome{n, e, s, w, c} {
			if !label.IsLand(v) {
				return label.NullMarker
			}
		}
		return label.InlandMarker
	}, opts...)
}

// LakeSize tunes a lake placement pass. A lake is seeded one time in Seed; with
// a positive Expand, an inland cell next to a seeded cell joins it one time in
// Expand.
type LakeSize struct {
	Seed   int
	Expand int
}

var (
	LakesLarge = LakeSize{Seed: 45, Expand: 3}
	LakesSmall = LakeSize{Seed: 20}
)

// NewAddLakes places lake markers on inland cells. Expansion re-derives each
// neighbor's seed roll from that neighbor's own position, so the layer remains
// a pure function of its parent.
func NewAddLakes(ctx layer.Context, parent sampler, size LakeSize, opts ...layer.Option) *area {
	seeded := func(x, z int) bool {
		r := ctx.At(x, z)
		return r.NextInt(size.Seed) == 0
	}
	return layer.New(parent.Level(), func(x, z int) label.Biome {
		c := parent.Get(x, z)
		if c != label.InlandMarker {
			return c
		}
		r := ctx.At(x, z)
		if r.NextInt(size.Seed) == 0 {
			return label.LakeMarker
		}
		if size.Expand <= 0 {
			return c
		}
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, nz := x+d[0], z+d[1]
			if parent.Get(nx, nz) == label.InlandMarker && seeded(nx, nz) {
				if r.NextInt(size.Expand) == 0 {
					return label.LakeMarker
				}
				break
			}
		}
		return c
	}, opts...)
}

// NewMergeLake places lakes from the lake grid into labels that accept them.
func NewMergeLake(ctx layer.Context, main, lakes sampler, opts ...layer.Option) *area {
	return layer.NewMerge(ctx, main, lakes, func(_ *layer.Rand, _, _ int, v, lake label.Biome) label.Biome {
		if lake == label.LakeMarker && label.HasLake(v) {
			return label.LakeFor(v)
		}
		return v
	}, opts...)
}

// NewShore turns land bordering the ocean into its shore variant.
func NewShore(ctx layer.Context, parent sampler, opts ...layer.Option) *area {
	return layer.NewCross(ctx, parent, func(_ *layer.Rand, n, e, s, w, c label.Biome) label.Biome {
		if label.IsOcean(c) || !label.HasShore(c) {
			return c
		}
		if anyOf(label.IsOcean, n, e, s, w) {
			return label.ShoreFor(c)
		}
		return c
	}, opts...)
}

// Rivers answers whether a quart lies on a river.
type Rivers interface {
	InRiver(q coord.Quart) bool
}

// NewMergeRiver carves rivers into labels that accept them. The parent must be
// at quart resolution.
func NewMergeRiver(ctx layer.Context, parent sampler, rivers Rivers, opts ...layer.Option) *area {
	return layer.NewTransform(ctx, parent, func(_ *layer.Rand, x, z int, v label.Biome) label.Biome {
		if label.HasRiver(v) && rivers.InRiver(coord.Quart{X: x, Z: z}) {
			return label.RiverFor(v)
		}
		return v
	}, opts...)
}
