// Package coord defines the cell coordinate tiers used by the layer pipelines.
// Every tier is its own type so that a quart coordinate can never be passed
// where a block or chunk coordinate is expected without an explicit conversion.
package coord

const (
	// QuartBits is the shift from block to quart (4×4 block columns).
	QuartBits = 2
	// ChunkBits is the shift from block to chunk (16×16 block columns).
	ChunkBits = 4
	// RegionBits is the shift from block to region (32×32 chunks).
	RegionBits = 9
)

// Block is a block column position in world space.
type Block struct{ X, Z int }

// Quart is a 4×4 block column cell, the output resolution of the biome pipeline.
type Quart struct{ X, Z int }

// Chunk is a 16×16 block column cell.
type Chunk struct{ X, Z int }

// Region is a 32×32 chunk cell. It is the unit of cache eviction.
type Region struct{ X, Z int }

// Partition is a river partition cell, Shift bits coarser than a quart.
type Partition struct{ X, Z int }

// Grid is a cell of a layer grid Shift bits coarser than a quart.
type Grid struct{ X, Z, Shift int }

// Quart returns the quart containing b.
func (b Block) Quart() Quart { return Quart{b.X >> QuartBits, b.Z >> QuartBits} }

// Chunk returns the chunk containing b.
func (b Block) Chunk() Chunk { return Chunk{b.X >> ChunkBits, b.Z >> ChunkBits} }

// Region returns the region containing b.
func (b Block) Region() Region { return Region{b.X >> RegionBits, b.Z >> RegionBits} }

// Local returns b's column offset inside its chunk, both in [0,16).
func (b Block) Local() (x, z int) { return b.X & 15, b.Z & 15 }

// Block returns the minimum corner block of q.
func (q Quart) Block() Block { return Block{q.X << QuartBits, q.Z << QuartBits} }

// Grid returns the layer grid cell shift bits coarser than q.
func (q Quart) Grid(shift int) Grid { return Grid{q.X >> shift, q.Z >> shift, shift} }

// Partition returns the partition containing q for the given partition shift.
func (q Quart) Partition(bits int) Partition { return Partition{q.X >> bits, q.Z >> bits} }

// Block returns the minimum corner block of c.
func (c Chunk) Block() Block { return Block{c.X << ChunkBits, c.Z << ChunkBits} }

// Quart returns the minimum corner quart of c.
func (c Chunk) Quart() Quart { return Quart{c.X << (ChunkBits - QuartBits), c.Z << (ChunkBits - QuartBits)} }

// Region returns the region containing c.
func (c Chunk) Region() Region {
	return Region{c.X >> (RegionBits - ChunkBits), c.Z >> (RegionBits - ChunkBits)}
}

// Block returns the minimum corner block of r.
func (r Region) Block() Block { return Block{r.X << RegionBits, r.Z << RegionBits} }

// Bounds returns the inclusive cell range covered by r on a grid whose cells are
// shift bits coarser than a block.
func (r Region) Bounds(shift int) (x0, z0, x1, z1 int) {
	b := r.Block()
	size := 1 << RegionBits
	return b.X >> shift, b.Z >> shift, (b.X + size - 1) >> shift, (b.Z + size - 1) >> shift
}

// Quart returns the minimum corner quart of g.
func (g Grid) Quart() Quart { return Quart{g.X << g.Shift, g.Z << g.Shift} }
