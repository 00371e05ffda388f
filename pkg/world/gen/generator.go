// Package gen wires the biome, river, rock and forest pipelines of one world
// and answers classification queries in block coordinates.
package gen

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/OCharnyshevich/worldlayers/pkg/world/biome"
	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/forest"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
	"github.com/OCharnyshevich/worldlayers/pkg/world/river"
	"github.com/OCharnyshevich/worldlayers/pkg/world/rock"
)

// Pipeline names, also used to seed each pipeline's layer salts.
const (
	BiomePipeline  = "biome"
	RockPipeline   = "rock"
	ForestPipeline = "forest"
)

// RockCatalog is the source of the rock category count. OnChange registers a
// callback run after every change to the catalog.
type RockCatalog interface {
	Count() int
	OnChange(fn func())
}

type rockPipeline struct {
	builder *layer.Builder
	bound   rock.BoundProvider
	out     *layer.Area[int32]
}

// Generator classifies world positions for one seed. Safe for concurrent use.
type Generator struct {
	settings Settings
	log      *slog.Logger
	opts     []layer.Option

	biome       *layer.Builder
	biomes      *biome.Pipeline
	rivers      *river.Context
	forest      *layer.Builder
	forestArea  *layer.Area[forest.Type]
	rockCatalog RockCatalog
	rock        atomic.Pointer[rockPipeline]
}

// New validates s and builds every pipeline. rocks may be nil, in which case
// rock sampling reports rock.ErrNoRockCategories. A nil log discards output.
func New(s Settings, rocks RockCatalog, log *slog.Logger) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g := &Generator{settings: s, log: log, rockCatalog: rocks}
	if s.ShardLimit > 0 {
		g.opts = append(g.opts, layer.WithShardLimit(s.ShardLimit))
	}

	g.biome = layer.NewBuilder(s.Seed, BiomePipeline, g.opts...)
	plates := biome.NewPlates(g.biome, s.Biome)
	watershedPlates := biome.NewWatershedPlates(g.biome, plates)
	g.rivers = river.NewContext(watershedPlates, s.Seed, s.River, s.Biome.WatershedBits(), s.ShardLimit)
	g.biomes = biome.Build(g.biome, plates, s.Biome, g.rivers)

	g.forest = layer.NewBuilder(s.Seed, ForestPipeline, g.opts...)
	g.forestArea = forest.Build(g.forest, s.ForestSpread)

	g.rebuildRocks()
	if rocks != nil {
		rocks.OnChange(func() {
			g.rebuildRocks()
			g.log.Info("rock pipeline rebuilt", "seed", s.Seed, "categories", rocks.Count())
		})
	}

	g.log.Info("layer pipelines built",
		"seed", s.Seed,
		"stages", len(g.Stages()),
		"biomeLevel", g.biomes.Output.Level(),
	)
	return g, nil
}

func (g *Generator) rockCount() int {
	if g.rockCatalog == nil {
		return 0
	}
	return g.rockCatalog.Count()
}

func (g *Generator) rebuildRocks() {
	b := layer.NewBuilder(g.settings.Seed, RockPipeline, g.opts...)
	bound := rock.Latch(g.rockCount)
	out := rock.Build(b, g.settings.Rock, bound)
	g.rock.Store(&rockPipeline{builder: b, bound: bound, out: out})
}

// Settings returns the settings the generator was built with.
func (g *Generator) Settings() Settings { return g.settings }

// Seed returns the world seed.
func (g *Generator) Seed() int64 { return g.settings.Seed }

// Rivers returns the river context of the biome pipeline.
func (g *Generator) Rivers() *river.Context { return g.rivers }

// SampleBiome returns the terminal label at b.
func (g *Generator) SampleBiome(b coord.Block) label.Biome {
	q := b.Quart()
	return g.terminal(q, g.biomes.Output.Get(q.X, q.Z))
}

// SampleRock returns the rock category index of the chunk containing b.
func (g *Generator) SampleRock(b coord.Block) (int, error) {
	p := g.rock.Load()
	// Once positive, the latched bound never changes for p.
	if p.bound() <= 0 {
		return 0, rock.ErrNoRockCategories
	}
	c := b.Chunk()
	return int(p.out.Get(c.X, c.Z)), nil
}

// SampleForest returns the forest density at b.
func (g *Generator) SampleForest(b coord.Block) forest.Type {
	q := b.Quart()
	return g.forestArea.Get(q.X, q.Z)
}

// LookupPlate returns the tectonic plate owning b.
func (g *Generator) LookupPlate(b coord.Block) plate.Plate {
	cell := b.Quart().Grid(g.settings.Biome.FinalLevel())
	return g.biomes.Plates.Get(cell.X, cell.Z)
}

// LookupRegime returns the plate regime at b.
func (g *Generator) LookupRegime(b coord.Block) plate.Regime {
	shift := g.settings.Biome.FinalLevel() - g.biomes.Regimes.Level()
	cell := b.Quart().Grid(shift)
	return g.biomes.Regimes.Get(cell.X, cell.Z)
}

// IsRiver reports whether the corner of block b lies within width blocks of a
// river centerline.
func (g *Generator) IsRiver(b coord.Block, width float64) bool {
	cellBlocks := float64(int(1) << (coord.QuartBits + g.settings.Biome.WatershedBits()))
	return g.rivers.IntersectsPoint(float64(b.X)/cellBlocks, float64(b.Z)/cellBlocks, width/cellBlocks)
}

// Stages returns the named stages of every pipeline, biome first.
func (g *Generator) Stages() []layer.Stage {
	out := g.biome.Stages()
	out = append(out, g.rock.Load().builder.Stages()...)
	return append(out, g.forest.Stages()...)
}

// Stage returns the stage with the given pipeline and name.
func (g *Generator) Stage(pipeline, name string) (layer.Stage, error) {
	for _, s := range g.Stages() {
		if s.Pipeline == pipeline && s.Name == name {
			return s, nil
		}
	}
	return layer.Stage{}, fmt.Errorf("gen: no stage %q in pipeline %q", name, pipeline)
}

// BlockShift returns the shift from block to the grid of stage s.
func (g *Generator) BlockShift(s layer.Stage) int {
	switch s.Pipeline {
	case RockPipeline:
		return coord.ChunkBits + g.settings.Rock.FinalLevel() - s.Level
	case ForestPipeline:
		return coord.QuartBits + forest.FinalLevel - s.Level
	}
	return coord.QuartBits + g.settings.Biome.FinalLevel() - s.Level
}

func inBounds(x0, z0, x1, z1 int) func(layer.Key) bool {
	return func(k layer.Key) bool {
		return k.X >= x0 && k.X <= x1 && k.Z >= z0 && k.Z <= z1
	}
}

// EvictRegion drops the cached cells lying entirely inside r from every stage
// and the river caches, and returns the number dropped. Cells coarser than a
// region are kept.
func (g *Generator) EvictRegion(r coord.Region) int {
	n := 0
	evict := func(shift int, fn func(func(layer.Key) bool) int) {
		if shift > coord.RegionBits {
			return
		}
		n += fn(inBounds(r.Bounds(shift)))
	}
	for _, s := range g.Stages() {
		evict(g.BlockShift(s), s.Evict)
	}
	evict(coord.QuartBits+g.settings.Biome.WatershedBits(), g.rivers.EvictWatersheds)
	evict(coord.QuartBits+g.rivers.PartitionBits(), g.rivers.EvictPartitions)
	if n > 0 {
		g.log.Debug("evicted region", "regionX", r.X, "regionZ", r.Z, "cells", n)
	}
	return n
}
