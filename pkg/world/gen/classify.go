package gen

import (
	"fmt"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/forest"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
)

// quartsPerChunk is the number of quarts along a chunk edge.
const quartsPerChunk = 1 << (coord.ChunkBits - coord.QuartBits)

// ChunkClassification holds the layer output for one chunk column.
type ChunkClassification struct {
	Pos    coord.Chunk
	Biomes [256]label.Biome // index = z*16 + x
	Forest [quartsPerChunk * quartsPerChunk]forest.Type
	Rivers [256]bool // index = z*16 + x
	Rock   int
	Plate  plate.Plate
}

// Biome returns the label at local column (x, z). x, z must be in [0,16).
func (c *ChunkClassification) Biome(x, z int) label.Biome { return c.Biomes[z*16+x] }

// SetBiome sets the label at local column (x, z).
func (c *ChunkClassification) SetBiome(x, z int, l label.Biome) { c.Biomes[z*16+x] = l }

// ForestAt returns the forest density at local column (x, z).
func (c *ChunkClassification) ForestAt(x, z int) forest.Type {
	return c.Forest[(z>>coord.QuartBits)*quartsPerChunk+x>>coord.QuartBits]
}

// River reports whether local column (x, z) is on a river.
func (c *ChunkClassification) River(x, z int) bool { return c.Rivers[z*16+x] }

// Classify samples every pipeline over chunk c.
func (g *Generator) Classify(c coord.Chunk) (*ChunkClassification, error) {
	base := c.Block()
	rockIdx, err := g.SampleRock(base)
	if err != nil {
		return nil, fmt.Errorf("classify chunk (%d,%d): %w", c.X, c.Z, err)
	}

	out := &ChunkClassification{Pos: c, Rock: rockIdx, Plate: g.LookupPlate(base)}
	q0 := c.Quart()
	for qz := 0; qz < quartsPerChunk; qz++ {
		for qx := 0; qx < quartsPerChunk; qx++ {
			q := coord.Quart{X: q0.X + qx, Z: q0.Z + qz}
			b := q.Block()
			l := g.SampleBiome(b)
			onRiver := label.IsRiver(l)
			out.Forest[qz*quartsPerChunk+qx] = g.SampleForest(b)
			for dz := 0; dz < 1<<coord.QuartBits; dz++ {
				for dx := 0; dx < 1<<coord.QuartBits; dx++ {
					x, z := qx<<coord.QuartBits+dx, qz<<coord.QuartBits+dz
					out.SetBiome(x, z, l)
					out.Rivers[z*16+x] = onRiver
				}
			}
		}
	}
	return out, nil
}
