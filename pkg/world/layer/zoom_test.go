package layer

import "testing"

func constant(v int) *Area[int] {
	return New(0, func(x, z int) int { return v })
}

func randomSource(seed int64, n int) *Area[int] {
	return NewSource(NewContext(seed, 1), 0, func(r *Rand, x, z int) int { return r.NextInt(n) })
}

func TestZoomUniformParent(t *testing.T) {
	for _, mode := range []ZoomMode{ZoomNormal, ZoomFuzzy} {
		z := Zoom(NewContext(1, 2), constant(9), mode)
		for x := -8; x < 8; x++ {
			for y := -8; y < 8; y++ {
				if v := z.Get(x, y); v != 9 {
					t.Fatalf("%v zoom (%d,%d) = %d, want 9", mode, x, y, v)
				}
			}
		}
	}
}

func TestZoomEvenCellCopiesParent(t *testing.T) {
	parent := randomSource(77, 10)
	for _, mode := range []ZoomMode{ZoomNormal, ZoomFuzzy} {
		z := Zoom(NewContext(77, 2), parent, mode)
		for x := -20; x < 20; x += 2 {
			for y := -20; y < 20; y += 2 {
				if got, want := z.Get(x, y), parent.Get(x>>1, y>>1); got != want {
					t.Fatalf("%v zoom (%d,%d) = %d, parent %d", mode, x, y, got, want)
				}
			}
		}
	}
}

func TestZoomOddCellsFromCandidates(t *testing.T) {
	parent := randomSource(5, 50)
	z := Zoom(NewContext(5, 2), parent, ZoomFuzzy)
	for x := -20; x < 20; x++ {
		for y := -20; y < 20; y++ {
			px, pz := x>>1, y>>1
			v := z.Get(x, y)
			ok := false
			for _, c := range []int{parent.Get(px, pz), parent.Get(px+1, pz), parent.Get(px, pz+1), parent.Get(px+1, pz+1)} {
				if c == v {
					ok = true
				}
			}
			if !ok {
				t.Fatalf("zoom (%d,%d) = %d is not one of its parents", x, y, v)
			}
		}
	}
}

func TestZoomNormalMajority(t *testing.T) {
	// Parent cell (1,1) differs, every other cell is 1.
	parent := New(0, func(x, z int) int {
		if x == 1 && z == 1 {
			return 2
		}
		return 1
	})
	z := Zoom(NewContext(3, 3), parent, ZoomNormal)
	if v := z.Get(1, 1); v != 1 {
		t.Errorf("diagonal with three of four agreeing = %d, want 1", v)
	}
}

func TestZoomLevel(t *testing.T) {
	z := Zoom(NewContext(1, 1), Zoom(NewContext(1, 2), constant(0), ZoomNormal), ZoomFuzzy)
	if z.Level() != 2 {
		t.Errorf("Level() = %d, want 2", z.Level())
	}
}

func TestZoomBiasedPrefers(t *testing.T) {
	checker := New(0, func(x, z int) bool { return (x+z)&1 == 0 })
	z := ZoomBiased(NewContext(1, 1), checker, func(v bool) bool { return v })
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			if x&1 == 0 && y&1 == 0 {
				continue
			}
			if !z.Get(x, y) {
				t.Fatalf("biased zoom (%d,%d) picked the non-preferred value", x, y)
			}
		}
	}
}

func TestSmooth(t *testing.T) {
	cross := func(n, e, s, w, c int) *Area[int] {
		return New(0, func(x, z int) int {
			switch {
			case x == 0 && z == -1:
				return n
			case x == 1 && z == 0:
				return e
			case x == 0 && z == 1:
				return s
			case x == -1 && z == 0:
				return w
			}
			return c
		})
	}
	tests := []struct {
		name          string
		n, e, s, w, c int
		want          []int
	}{
		{"x axis agrees", 1, 2, 3, 2, 4, []int{2}},
		{"z axis agrees", 5, 2, 5, 3, 4, []int{5}},
		{"both agree", 5, 2, 5, 2, 4, []int{2, 5}},
		{"none agree", 1, 2, 3, 4, 6, []int{6}},
	}
	for _, tt := range tests {
		got := Smooth(NewContext(1, 1), cross(tt.n, tt.e, tt.s, tt.w, tt.c)).Get(0, 0)
		ok := false
		for _, w := range tt.want {
			if got == w {
				ok = true
			}
		}
		if !ok {
			t.Errorf("%s: Smooth = %d, want one of %v", tt.name, got, tt.want)
		}
	}
}
