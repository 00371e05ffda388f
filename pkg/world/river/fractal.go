package river

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// Perpendicular jitter of the first bisection, as a fraction of the segment
// length, and its decay per bisection.
const (
	fractalJitter = 0.25
	fractalDecay  = 0.9
)

// MidpointFractal is a river edge refined by recursive midpoint displacement.
// Points run from source to drain; the bounding box covers all of them.
type MidpointFractal struct {
	Points []mgl64.Vec2

	minX, minZ float64
	maxX, maxZ float64
}

// NewMidpointFractal bisects the segment source→drain the given number of times,
// offsetting each midpoint along the segment normal.
func NewMidpointFractal(s *layer.Stream, bisections int, source, drain mgl64.Vec2) *MidpointFractal {
	pts := []mgl64.Vec2{source, drain}
	amp := fractalJitter
	for i := 0; i < bisections; i++ {
		next := make([]mgl64.Vec2, 0, 2*len(pts)-1)
		for j := 0; j+1 < len(pts); j++ {
			a, b := pts[j], pts[j+1]
			d := b.Sub(a)
			normal := mgl64.Vec2{-d.Y(), d.X()}
			offset := (s.Float64()*2 - 1) * amp
			next = append(next, a, a.Add(b).Mul(0.5).Add(normal.Mul(offset)))
		}
		pts = append(next, pts[len(pts)-1])
		amp *= fractalDecay
	}

	f := &MidpointFractal{
		Points: pts,
		minX:   math.Inf(1),
		minZ:   math.Inf(1),
		maxX:   math.Inf(-1),
		maxZ:   math.Inf(-1),
	}
	for _, p := range pts {
		f.minX, f.maxX = min(f.minX, p.X()), max(f.maxX, p.X())
		f.minZ, f.maxZ = min(f.minZ, p.Y()), max(f.maxZ, p.Y())
	}
	return f
}

// MaybeIntersect reports whether the box around the fractal, grown by dist,
// contains (x, z). A false result guarantees Intersect is false.
func (f *MidpointFractal) MaybeIntersect(x, z, dist float64) bool {
	return x >= f.minX-dist && x <= f.maxX+dist && z >= f.minZ-dist && z <= f.maxZ+dist
}

// Intersect reports whether (x, z) lies within dist of the polyline.
func (f *MidpointFractal) Intersect(x, z, dist float64) bool {
	if !f.MaybeIntersect(x, z, dist) {
		return false
	}
	p := mgl64.Vec2{x, z}
	d2 := dist * dist
	for i := 0; i+1 < len(f.Points); i++ {
		if distanceSq(f.Points[i], f.Points[i+1], p) <= d2 {
			return true
		}
	}
	return false
}
