package coord

import "testing"

func TestBlockConversionsFloor(t *testing.T) {
	tests := []struct {
		b      Block
		quart  Quart
		chunk  Chunk
		region Region
	}{
		{Block{0, 0}, Quart{0, 0}, Chunk{0, 0}, Region{0, 0}},
		{Block{3, 15}, Quart{0, 3}, Chunk{0, 0}, Region{0, 0}},
		{Block{-1, -1}, Quart{-1, -1}, Chunk{-1, -1}, Region{-1, -1}},
		{Block{-5, 16}, Quart{-2, 4}, Chunk{-1, 1}, Region{-1, 0}},
		{Block{512, -513}, Quart{128, -129}, Chunk{32, -33}, Region{1, -2}},
	}
	for _, tt := range tests {
		if got := tt.b.Quart(); got != tt.quart {
			t.Errorf("%v.Quart() = %v, want %v", tt.b, got, tt.quart)
		}
		if got := tt.b.Chunk(); got != tt.chunk {
			t.Errorf("%v.Chunk() = %v, want %v", tt.b, got, tt.chunk)
		}
		if got := tt.b.Region(); got != tt.region {
			t.Errorf("%v.Region() = %v, want %v", tt.b, got, tt.region)
		}
	}
}

func TestChunkRoundTrip(t *testing.T) {
	for _, c := range []Chunk{{0, 0}, {-1, 7}, {31, -32}, {1000, -1000}} {
		if got := c.Block().Chunk(); got != c {
			t.Errorf("%v.Block().Chunk() = %v", c, got)
		}
		if got := c.Quart().Block().Chunk(); got != c {
			t.Errorf("%v.Quart().Block().Chunk() = %v", c, got)
		}
		if got := c.Region(); got != c.Block().Region() {
			t.Errorf("%v.Region() = %v, want %v", c, got, c.Block().Region())
		}
	}
}

func TestLocal(t *testing.T) {
	x, z := Block{-1, 17}.Local()
	if x != 15 || z != 1 {
		t.Errorf("Local() = (%d,%d), want (15,1)", x, z)
	}
}

func TestRegionBounds(t *testing.T) {
	x0, z0, x1, z1 := Region{-1, 0}.Bounds(QuartBits)
	if x0 != -128 || x1 != -1 || z0 != 0 || z1 != 127 {
		t.Errorf("Bounds = (%d,%d)-(%d,%d)", x0, z0, x1, z1)
	}
	x0, _, x1, _ = Region{0, 0}.Bounds(12)
	if x0 != 0 || x1 != 0 {
		t.Errorf("coarse Bounds = %d..%d, want 0..0", x0, x1)
	}
}

func TestGrid(t *testing.T) {
	g := Quart{-3, 9}.Grid(2)
	if g != (Grid{-1, 2, 2}) {
		t.Fatalf("Grid = %v", g)
	}
	if q := g.Quart(); q != (Quart{-4, 8}) {
		t.Errorf("Grid.Quart() = %v", q)
	}
}
