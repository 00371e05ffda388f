package river

import (
	"math"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
)

// partitionToWatershedBits is the shift between partition and watershed cells.
const partitionToWatershedBits = 2

// Context caches watersheds and partitions for one world and answers river
// queries in quart coordinates. Safe for concurrent use.
type Context struct {
	plates        layer.Sampler[plate.Plate]
	seed          int64
	params        Params
	zoomBits      int
	partitionBits int

	watersheds *layer.Cache[*Watershed]
	partitions *layer.Cache[[]*MidpointFractal]
}

// NewContext returns a river context over the land-biased plate area. zoomBits
// is the shift from quart to watershed cell and must be at least 2. A positive
// shardLimit bounds both caches.
func NewContext(plates layer.Sampler[plate.Plate], seed int64, p Params, zoomBits, shardLimit int) *Context {
	return &Context{
		plates:        plates,
		seed:          seed,
		params:        p,
		zoomBits:      zoomBits,
		partitionBits: zoomBits - partitionToWatershedBits,
		watersheds:    layer.NewCache[*Watershed](shardLimit),
		partitions:    layer.NewCache[[]*MidpointFractal](shardLimit),
	}
}

// Params returns the river parameters.
func (c *Context) Params() Params { return c.params }

// PartitionBits returns the shift from quart to partition cell.
func (c *Context) PartitionBits() int { return c.partitionBits }

// Watershed returns the watershed containing cell (x, z).
func (c *Context) Watershed(x, z int) *Watershed {
	return c.watersheds.GetOrCompute(x, z, c.newWatershed)
}

func (c *Context) newWatershed(x, z int) *Watershed {
	w := NewWatershed(c.plates, x, z, c.seed, c.params)
	if w.truncated {
		return w
	}
	// Every interior cell yields the same watershed.
	for cell := range w.interior {
		c.watersheds.Store(cell.X, cell.Z, w)
	}
	return w
}

// FractalsByPartition returns the river polylines that may pass through
// partition p: those whose bounds reach the partition's enclosing disc, taken
// from the four watersheds nearest the partition center.
func (c *Context) FractalsByPartition(p coord.Partition) []*MidpointFractal {
	return c.partitions.GetOrCompute(p.X, p.Z, c.newPartition)
}

func (c *Context) newPartition(px, pz int) []*MidpointFractal {
	scale := 1.0 / (1 << partitionToWatershedBits)
	x := (float64(px) + 0.5) * scale
	z := (float64(pz) + 0.5) * scale
	radius := scale*math.Sqrt2/2 + 2*c.params.Width

	seen := make(map[*Watershed]struct{}, 4)
	var out []*MidpointFractal
	for _, d := range [4][2]float64{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
		w := c.Watershed(int(math.Floor(x+d[0])), int(math.Floor(z+d[1])))
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		for _, r := range w.Rivers {
			for _, f := range r.Fractals {
				if f.MaybeIntersect(x, z, radius) {
					out = append(out, f)
				}
			}
		}
	}
	return out
}

// InRiver reports whether quart q lies on a river of the default width.
func (c *Context) InRiver(q coord.Quart) bool {
	return c.Intersects(q, c.params.Width)
}

// Intersects reports whether the corner of quart q lies within width, in
// watershed units, of a river.
func (c *Context) Intersects(q coord.Quart, width float64) bool {
	scale := 1.0 / float64(int(1)<<c.zoomBits)
	return c.IntersectsPoint(float64(q.X)*scale, float64(q.Z)*scale, width)
}

// IntersectsPoint reports whether (x, z), in watershed units, lies within width
// of a river. Every partition the query square touches is checked.
func (c *Context) IntersectsPoint(x, z, width float64) bool {
	toPartition := float64(int(1) << partitionToWatershedBits)
	px0, px1 := int(math.Floor((x-width)*toPartition)), int(math.Floor((x+width)*toPartition))
	pz0, pz1 := int(math.Floor((z-width)*toPartition)), int(math.Floor((z+width)*toPartition))
	for pz := pz0; pz <= pz1; pz++ {
		for px := px0; px <= px1; px++ {
			for _, f := range c.FractalsByPartition(coord.Partition{X: px, Z: pz}) {
				if f.MaybeIntersect(x, z, width) && f.Intersect(x, z, width) {
					return true
				}
			}
		}
	}
	return false
}

// EvictPartitions drops cached partitions matching pred and returns the count.
func (c *Context) EvictPartitions(pred func(layer.Key) bool) int {
	return c.partitions.Evict(pred)
}

// EvictWatersheds drops cached watersheds matching pred and returns the count.
func (c *Context) EvictWatersheds(pred func(layer.Key) bool) int {
	return c.watersheds.Evict(pred)
}
