// Package plate simulates the tectonic plates the biome and river pipelines are
// built on: a jittered Voronoi tiling of plate space, per-plate motion and
// elevation, and the classification of plate boundaries into regimes.
package plate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// Plate is one tectonic plate. Every field derives from the generating cell, so
// two plates are equal exactly when their cells are.
type Plate struct {
	CellX, CellZ int
	Center       mgl64.Vec2
	Drift        mgl64.Vec2
	Elevation    float64
	Oceanic      bool
}

// Same reports whether p and o are the same plate.
func (p Plate) Same(o Plate) bool { return p.CellX == o.CellX && p.CellZ == o.CellZ }

// Land reports whether the plate is continental.
func (p Plate) Land() bool { return !p.Oceanic }

// Hash returns a stable 64-bit identifier for the plate's cell.
func (p Plate) Hash() int64 {
	return int64(p.CellX)*341873128712 + int64(p.CellZ)*132897987541
}

// Generator assigns grid cells to plates.
type Generator struct {
	cells        layer.Context
	attrs        layer.Context
	spread       float64
	oceanPercent int
}

// NewGenerator returns a plate generator. cells seeds the jittered plate centers
// and attrs the plate attributes. spread scales grid coordinates into plate
// space; oceanPercent is the chance in [0,100] that a plate is oceanic.
func NewGenerator(cells, attrs layer.Context, spread float64, oceanPercent int) *Generator {
	return &Generator{cells: cells, attrs: attrs, spread: spread, oceanPercent: oceanPercent}
}

func (g *Generator) center(cx, cz int) mgl64.Vec2 {
	r := g.cells.At(cx, cz)
	return mgl64.Vec2{float64(cx) + r.NextFloat(), float64(cz) + r.NextFloat()}
}

// Plate returns the plate owning grid cell (x, z): the nearest jittered center
// among the 5×5 plate cells around the point.
func (g *Generator) Plate(x, z int) Plate {
	p := mgl64.Vec2{float64(x) * g.spread, float64(z) * g.spread}
	cx, cz := int(math.Floor(p.X())), int(math.Floor(p.Y()))

	best := math.Inf(1)
	var bx, bz int
	var center mgl64.Vec2
	for dz := -2; dz <= 2; dz++ {
		for dx := -2; dx <= 2; dx++ {
			c := g.center(cx+dx, cz+dz)
			d := c.Sub(p)
			if dist := d.Dot(d); dist < best {
				best, bx, bz, center = dist, cx+dx, cz+dz, c
			}
		}
	}

	r := g.attrs.At(bx, bz)
	oceanic := r.NextInt(100) < g.oceanPercent
	angle := r.NextFloat() * 2 * math.Pi
	speed := r.NextFloat()
	elevation := r.NextFloat()
	return Plate{
		CellX:     bx,
		CellZ:     bz,
		Center:    center,
		Drift:     mgl64.Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
		Elevation: elevation,
		Oceanic:   oceanic,
	}
}

// NewLayer returns the plate generation area at level 0.
func NewLayer(g *Generator, opts ...layer.Option) *layer.Area[Plate] {
	return layer.New(0, g.Plate, opts...)
}

// Zoom zooms a plate area picking plates uniformly.
func Zoom(ctx layer.Context, parent layer.Sampler[Plate], opts ...layer.Option) *layer.Area[Plate] {
	return layer.Zoom(ctx, parent, layer.ZoomFuzzy, opts...)
}

// ZoomLandBiased zooms a plate area preferring continental plates, which keeps
// coastlines on the land side of every disputed sub-cell.
func ZoomLandBiased(ctx layer.Context, parent layer.Sampler[Plate], opts ...layer.Option) *layer.Area[Plate] {
	return layer.ZoomBiased(ctx, parent, Plate.Land, opts...)
}
