// Package river grows river networks over the continental plates and answers
// whether a point lies on a river.
//
// Watersheds are computed on the land-biased plate grid, whose cells are quart
// coordinates shifted by the zoom bits of the biome pipeline. Rivers start at
// ocean cells bordering a plate and grow upstream into its interior.
package river

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
)

// DefaultWidth is the river half-width in watershed units.
const DefaultWidth = 0.013

// maxWatershedCells bounds the flood fill of a single plate.
const maxWatershedCells = 1 << 14

// Params tunes river growth.
type Params struct {
	SourceChance float64 // chance that an ocean cell bordering the plate starts a river
	Length       float64 // length of the first edge, in watershed units
	Depth        int     // edges from mouth to the furthest branch point
	Feather      float64 // minimum distance between unrelated edges
	Width        float64 // river half-width in watershed units
	Bisections   int     // midpoint bisections per edge
}

// DefaultParams returns the standard river parameters.
func DefaultParams() Params {
	return Params{
		SourceChance: 0.5,
		Length:       0.8,
		Depth:        14,
		Feather:      0.2,
		Width:        DefaultWidth,
		Bisections:   4,
	}
}

// Cell is a watershed grid cell.
type Cell struct{ X, Z int }

func floorCell(p mgl64.Vec2) Cell {
	return Cell{int(math.Floor(p.X())), int(math.Floor(p.Y()))}
}

// Fractal is one river: its straight edges and their refined polylines.
type Fractal struct {
	Edges    []Edge
	Fractals []*MidpointFractal
}

// Watershed is the connected region of one continental plate and the rivers
// draining it. Oceanic plates have no rivers.
type Watershed struct {
	Plate  plate.Plate
	Rivers []*Fractal

	interior  map[Cell]struct{}
	sources   []Cell
	truncated bool
}

var directions = [8]Cell{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

// NewWatershed flood fills the plate region containing cell (x, z) and grows
// its rivers. The result is the same for every cell of the region.
func NewWatershed(plates layer.Sampler[plate.Plate], x, z int, seed int64, p Params) *Watershed {
	root := plates.Get(x, z)
	w := &Watershed{Plate: root}
	if root.Oceanic {
		return w
	}

	start := Cell{x, z}
	w.interior = map[Cell]struct{}{start: {}}
	sources := map[Cell]struct{}{}
	stack := []Cell{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range directions {
			n := Cell{c.X + d.X, c.Z + d.Z}
			other := plates.Get(n.X, n.Z)
			switch {
			case other.Same(root):
				if _, seen := w.interior[n]; !seen {
					if len(w.interior) >= maxWatershedCells {
						w.truncated = true
						continue
					}
					w.interior[n] = struct{}{}
					stack = append(stack, n)
				}
			case other.Oceanic:
				sources[n] = struct{}{}
			}
		}
	}
	if len(sources) == 0 {
		return w
	}

	w.sources = make([]Cell, 0, len(sources))
	for c := range sources {
		w.sources = append(w.sources, c)
	}
	slices.SortFunc(w.sources, func(a, b Cell) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Z, b.Z)
	})

	rand := layer.NewStream(seed ^ root.Hash())
	mb := &multiBuilder{legal: func(v *vertex) bool { return w.Contains(floorCell(v.pos)) }}
	for _, s := range w.sources {
		if rand.Float64() >= p.SourceChance {
			continue
		}
		mouth := mgl64.Vec2{float64(s.X) + 0.5, float64(s.Z) + 0.5}
		angle := rand.Float64() * 2 * math.Pi
		for i := 0; i < 8; i++ {
			ahead := mouth.Add(mgl64.Vec2{math.Cos(angle) * 1.4, math.Sin(angle) * 1.4})
			if w.Contains(floorCell(ahead)) {
				mb.add(newBuilder(rand, mouth, angle, p.Length, p.Depth, p.Feather))
				break
			}
			angle += math.Pi / 4
		}
	}

	for _, edges := range mb.build() {
		f := &Fractal{Edges: edges, Fractals: make([]*MidpointFractal, len(edges))}
		for i, e := range edges {
			f.Fractals[i] = NewMidpointFractal(rand, p.Bisections, e.Source, e.Drain)
		}
		w.Rivers = append(w.Rivers, f)
	}
	return w
}

// Contains reports whether c belongs to the watershed interior.
func (w *Watershed) Contains(c Cell) bool {
	_, ok := w.interior[c]
	return ok
}

// Sources returns the ocean cells bordering the watershed, sorted.
func (w *Watershed) Sources() []Cell { return w.sources }

// Size returns the number of interior cells.
func (w *Watershed) Size() int { return len(w.interior) }
