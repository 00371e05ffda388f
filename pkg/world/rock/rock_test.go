package rock

import (
	"errors"
	"testing"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

func fixed(n int) BoundProvider { return func() int { return n } }

func matchingNeighbors(a layer.Sampler[int32], size int) int {
	n := 0
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			c := a.Get(x, z)
			if a.Get(x+1, z) == c || a.Get(x, z+1) == c {
				n++
			}
		}
	}
	return n
}

func TestRandomizeNeighborsReducesAdjacency(t *testing.T) {
	const size = 100
	src := NewSource(layer.NewContext(1234, 1), fixed(10))
	rnd := NewRandomizeNeighbors(layer.NewContext(1234, 2), src, fixed(10))
	before, after := matchingNeighbors(src, size), matchingNeighbors(rnd, size)
	if after >= before {
		t.Errorf("matching neighbor pairs: before %d, after %d", before, after)
	}
}

func TestSourceWithinBound(t *testing.T) {
	src := NewSource(layer.NewContext(5, 5), fixed(7))
	for x := -20; x < 20; x++ {
		if v := src.Get(x, -x); v < 0 || v >= 7 {
			t.Fatalf("Get(%d,%d) = %d", x, -x, v)
		}
	}
}

func TestNoCategoriesPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNoRockCategories) {
			t.Fatalf("recovered %v, want ErrNoRockCategories", r)
		}
	}()
	NewSource(layer.NewContext(1, 1), fixed(0)).Get(0, 0)
}

func TestLatch(t *testing.T) {
	n := 0
	l := Latch(func() int { return n })
	if l() != 0 {
		t.Fatal("latch invented a bound")
	}
	n = 4
	if l() != 4 {
		t.Fatal("latch did not pick up the first positive bound")
	}
	n = 9
	if l() != 4 {
		t.Error("latch changed after first positive read")
	}
}

func TestBuild(t *testing.T) {
	b := layer.NewBuilder(1234, "rock")
	out := Build(b, Settings{LayerScale: 1}, fixed(5))
	if out.Level() != (Settings{LayerScale: 1}).FinalLevel() {
		t.Errorf("output level = %d, want %d", out.Level(), Settings{LayerScale: 1}.FinalLevel())
	}
	if len(b.Stages()) != 2+6+1 {
		t.Errorf("got %d stages", len(b.Stages()))
	}
	for x := -50; x < 50; x += 3 {
		if v := out.Get(x, x*2); v < 0 || v >= 5 {
			t.Fatalf("Get = %d", v)
		}
	}

	b2 := layer.NewBuilder(1234, "rock")
	again := Build(b2, Settings{LayerScale: 1}, fixed(5))
	for x := -50; x < 50; x += 3 {
		if again.Get(x, -x) != out.Get(x, -x) {
			t.Fatal("rock pipeline not deterministic")
		}
	}
}
