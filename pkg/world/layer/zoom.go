package layer

// ZoomMode selects how a zoom resolves the diagonal sub-cell.
type ZoomMode int

const (
	// ZoomNormal takes the most common of the four parents, breaking ties randomly.
	ZoomNormal ZoomMode = iota
	// ZoomFuzzy always picks one of the four parents at random.
	ZoomFuzzy
)

func (m ZoomMode) String() string {
	if m == ZoomFuzzy {
		return "fuzzy"
	}
	return "normal"
}

// Zoom doubles the resolution of parent. The even sub-cell copies its parent.
// The odd sub-cells draw, in order: a Choose2 toward the south neighbor, a
// Choose2 toward the east neighbor, then the diagonal resolution of mode.
// Draws come from the generator positioned at the even cell.
func Zoom[T comparable](ctx Context, parent Sampler[T], mode ZoomMode, opts ...Option) *Area[T] {
	pick4 := selectMode[T]
	if mode == ZoomFuzzy {
		pick4 = Choose4[T]
	}
	return zoom(ctx, parent, Choose2[T], pick4, opts...)
}

// ZoomBiased zooms parent, always preferring values for which prefer reports
// true when the candidates disagree.
func ZoomBiased[T any](ctx Context, parent Sampler[T], prefer func(T) bool, opts ...Option) *Area[T] {
	pick2 := func(r *Rand, a, b T) T {
		pa, pb := prefer(a), prefer(b)
		if pa != pb {
			if pa {
				return a
			}
			return b
		}
		return Choose2(r, a, b)
	}
	pick4 := func(r *Rand, a, b, c, d T) T {
		var chosen [4]T
		n := 0
		for _, v := range [4]T{a, b, c, d} {
			if prefer(v) {
				chosen[n] = v
				n++
			}
		}
		if n == 0 || n == 4 {
			return Choose4(r, a, b, c, d)
		}
		return chosen[r.NextInt(n)]
	}
	return zoom(ctx, parent, pick2, pick4, opts...)
}

func zoom[T any](ctx Context, parent Sampler[T], pick2 func(*Rand, T, T) T, pick4 func(*Rand, T, T, T, T) T, opts ...Option) *Area[T] {
	return New(parent.Level()+1, func(x, z int) T {
		px, pz := x>>1, z>>1
		nw := parent.Get(px, pz)
		odd := x&1 == 1
		if !odd && z&1 == 0 {
			return nw
		}
		r := ctx.At(x&^1, z&^1)
		sw := parent.Get(px, pz+1)
		south := pick2(&r, nw, sw)
		if !odd {
			return south
		}
		ne := parent.Get(px+1, pz)
		east := pick2(&r, nw, ne)
		if z&1 == 0 {
			return east
		}
		se := parent.Get(px+1, pz+1)
		return pick4(&r, nw, ne, sw, se)
	}, opts...)
}

// selectMode returns the most frequent of four values, or a random one when no
// value dominates.
func selectMode[T comparable](r *Rand, a, b, c, d T) T {
	switch {
	case b == c && c == d:
		return b
	case a == b && a == c:
		return a
	case a == b && a == d:
		return a
	case a == c && a == d:
		return a
	case a == b && c != d:
		return a
	case a == c && b != d:
		return a
	case a == d && b != c:
		return a
	case b == c && a != d:
		return b
	case b == d && a != c:
		return b
	case c == d && a != b:
		return c
	}
	return Choose4(r, a, b, c, d)
}

// Smooth removes single-cell noise. When both axis pairs agree it picks one of
// them at random; when one pair agrees it takes that value; otherwise the cell
// is unchanged.
func Smooth[T comparable](ctx Context, parent Sampler[T], opts ...Option) *Area[T] {
	return NewCross(ctx, parent, func(r *Rand, n, e, s, w, c T) T {
		xMatch := e == w
		zMatch := n == s
		switch {
		case xMatch && zMatch:
			return Choose2(r, w, n)
		case xMatch:
			return w
		case zMatch:
			return n
		}
		return c
	}, opts...)
}
