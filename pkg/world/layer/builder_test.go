package layer

import "testing"

func TestBuilderSaltsReproducible(t *testing.T) {
	a := NewBuilder(1234, "biome")
	b := NewBuilder(1234, "biome")
	c := NewBuilder(1234, "rock")
	for i := 0; i < 10; i++ {
		ca, cb, cc := a.Context(), b.Context(), c.Context()
		if ca != cb {
			t.Fatalf("context %d differs between equal builders", i)
		}
		if ca == cc {
			t.Fatalf("context %d shared between pipelines", i)
		}
	}
}

func TestBuilderStages(t *testing.T) {
	b := NewBuilder(1, "test")
	src := AddLabel(b, "source", NewSource(b.Context(), 0, func(r *Rand, x, z int) int32 { return int32(r.NextInt(4)) }, b.Options()...))
	z1 := AddLabel(b, "zoom", Zoom(b.Context(), src, ZoomNormal, b.Options()...))
	AddLabel(b, "zoom", Zoom(b.Context(), z1, ZoomNormal, b.Options()...))

	stages := b.Stages()
	names := []string{"source", "zoom", "zoom_2"}
	if len(stages) != len(names) {
		t.Fatalf("got %d stages, want %d", len(stages), len(names))
	}
	for i, s := range stages {
		if s.Name != names[i] {
			t.Errorf("stage %d name = %q, want %q", i, s.Name, names[i])
		}
		if s.Level != i {
			t.Errorf("stage %q level = %d, want %d", s.Name, s.Level, i)
		}
		if s.Pipeline != "test" {
			t.Errorf("stage %q pipeline = %q", s.Name, s.Pipeline)
		}
	}

	if got, want := stages[0].Sample(3, 4), src.Get(3, 4); got != want {
		t.Errorf("Sample = %d, want %d", got, want)
	}
	if stages[0].Len() != 1 {
		t.Errorf("Len() = %d, want 1", stages[0].Len())
	}
	if n := stages[0].Evict(func(Key) bool { return true }); n != 1 {
		t.Errorf("Evict = %d, want 1", n)
	}
}
