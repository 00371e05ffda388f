package world

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/gen"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

type fakeClassifier struct {
	calls   atomic.Int64
	evicted atomic.Int64
	fail    coord.Chunk
	err     error
}

func (f *fakeClassifier) Classify(c coord.Chunk) (*gen.ChunkClassification, error) {
	f.calls.Add(1)
	if f.err != nil && c == f.fail {
		return nil, f.err
	}
	cc := &gen.ChunkClassification{Pos: c}
	for i := range cc.Biomes {
		cc.Biomes[i] = label.Plains
	}
	cc.SetBiome(3, 4, label.River)
	return cc, nil
}

func (f *fakeClassifier) EvictRegion(coord.Region) int {
	f.evicted.Add(1)
	return 7
}

func TestGetOrClassifyChunkCaches(t *testing.T) {
	f := &fakeClassifier{}
	w := New(f, nil)

	a, err := w.GetOrClassifyChunk(coord.Chunk{X: 1, Z: 2})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := w.GetOrClassifyChunk(coord.Chunk{X: 1, Z: 2})
	if a != b {
		t.Error("second lookup returned a different classification")
	}
	if got := f.calls.Load(); got != 1 {
		t.Errorf("classifier called %d times, want 1", got)
	}
}

func TestBiome(t *testing.T) {
	w := New(&fakeClassifier{}, nil)
	got, err := w.Biome(coord.Block{X: -16 + 3, Z: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got != label.River {
		t.Errorf("Biome = %v, want river", got)
	}
}

func TestPreClassifyRadius(t *testing.T) {
	f := &fakeClassifier{}
	w := New(f, nil)
	count, err := w.PreClassifyRadius(context.Background(), coord.Chunk{X: 10, Z: -10}, 2, 4)
	if err != nil {
		t.Fatal(err)
	}

	// Radius 2 → 5×5 = 25 chunks.
	if count != 25 {
		t.Errorf("PreClassifyRadius(2) returned %d, want 25", count)
	}
	if w.Loaded() != 25 {
		t.Errorf("Loaded() = %d, want 25", w.Loaded())
	}
	for cx := 8; cx <= 12; cx++ {
		for cz := -12; cz <= -8; cz++ {
			w.mu.RLock()
			_, ok := w.chunks[coord.Chunk{X: cx, Z: cz}]
			w.mu.RUnlock()
			if !ok {
				t.Errorf("chunk (%d,%d) not pre-classified", cx, cz)
			}
		}
	}
}

func TestPreClassifyRadiusSingleWorker(t *testing.T) {
	w := New(&fakeClassifier{}, nil)
	count, err := w.PreClassifyRadius(context.Background(), coord.Chunk{}, 0, 1)
	if err != nil {
		t.Fatalf("PreClassifyRadius(0) error: %v", err)
	}
	if count != 1 || w.Loaded() != 1 {
		t.Errorf("count = %d, loaded = %d, want 1 and 1", count, w.Loaded())
	}
}

func TestPreClassifyRadiusError(t *testing.T) {
	boom := errors.New("boom")
	w := New(&fakeClassifier{fail: coord.Chunk{X: 1, Z: 1}, err: boom}, nil)
	if _, err := w.PreClassifyRadius(context.Background(), coord.Chunk{}, 1, 2); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, err := w.PreClassifyRadius(context.Background(), coord.Chunk{}, -1, 2); err == nil {
		t.Error("negative radius accepted")
	}
}

func TestPreClassifyRadiusCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := New(&fakeClassifier{}, nil)
	if _, err := w.PreClassifyRadius(ctx, coord.Chunk{}, 3, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestUnloadRegion(t *testing.T) {
	f := &fakeClassifier{}
	w := New(f, nil)
	for _, c := range []coord.Chunk{{X: 0, Z: 0}, {X: 31, Z: 31}, {X: 32, Z: 0}, {X: -1, Z: 0}} {
		if _, err := w.GetOrClassifyChunk(c); err != nil {
			t.Fatal(err)
		}
	}
	if n := w.UnloadRegion(coord.Region{}); n != 2 {
		t.Errorf("UnloadRegion dropped %d chunks, want 2", n)
	}
	if w.Loaded() != 2 {
		t.Errorf("Loaded() = %d, want 2", w.Loaded())
	}
	if f.evicted.Load() != 1 {
		t.Error("layer caches not evicted")
	}

	seen := 0
	w.ForEachChunk(func(cc *gen.ChunkClassification) {
		if cc.Pos.Region() == (coord.Region{}) {
			t.Errorf("chunk %v survived unload", cc.Pos)
		}
		seen++
	})
	if seen != 2 {
		t.Errorf("ForEachChunk visited %d chunks", seen)
	}
}

func TestWorldWithGenerator(t *testing.T) {
	rocks := staticRocks(3)
	g, err := gen.New(gen.DefaultSettings(1234), rocks, nil)
	if err != nil {
		t.Fatal(err)
	}
	w := New(g, nil)
	if _, err := w.PreClassifyRadius(context.Background(), coord.Chunk{}, 1, 4); err != nil {
		t.Fatal(err)
	}
	b := coord.Block{X: 5, Z: -7}
	got, err := w.Biome(b)
	if err != nil {
		t.Fatal(err)
	}
	if want := g.SampleBiome(b); got != want {
		t.Errorf("Biome = %v, generator says %v", got, want)
	}
}

type staticRocks int

func (s staticRocks) Count() int    { return int(s) }
func (staticRocks) OnChange(func()) {}
