package river

import "github.com/go-gl/mathgl/mgl64"

// distanceSq returns the squared distance from p to segment ab.
func distanceSq(a, b, p mgl64.Vec2) float64 {
	ab := b.Sub(a)
	t := 0.0
	if l := ab.Dot(ab); l > 0 {
		t = p.Sub(a).Dot(ab) / l
		switch {
		case t < 0:
			t = 0
		case t > 1:
			t = 1
		}
	}
	d := p.Sub(a.Add(ab.Mul(t)))
	return d.Dot(d)
}

func orientation(a, b, c mgl64.Vec2) float64 {
	return (b.Y()-a.Y())*(c.X()-b.X()) - (b.X()-a.X())*(c.Y()-b.Y())
}

func onSegment(a, b, p mgl64.Vec2) bool {
	return p.X() <= max(a.X(), b.X()) && p.X() >= min(a.X(), b.X()) &&
		p.Y() <= max(a.Y(), b.Y()) && p.Y() >= min(a.Y(), b.Y())
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// intersects reports whether segments p1q1 and p2q2 cross or touch.
func intersects(p1, q1, p2, q2 mgl64.Vec2) bool {
	o1 := sign(orientation(p1, q1, p2))
	o2 := sign(orientation(p1, q1, q2))
	o3 := sign(orientation(p2, q2, p1))
	o4 := sign(orientation(p2, q2, q1))
	if o1 != o2 && o3 != o4 {
		return true
	}
	return o1 == 0 && onSegment(p1, q1, p2) ||
		o2 == 0 && onSegment(p1, q1, q2) ||
		o3 == 0 && onSegment(p2, q2, p1) ||
		o4 == 0 && onSegment(p2, q2, q1)
}
