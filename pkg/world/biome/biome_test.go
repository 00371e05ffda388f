package biome

import (
	"testing"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// cross returns a level-0 grid holding c at the origin, the four neighbors
// around it and rest everywhere else.
func cross(n, e, s, w, c, rest label.Biome) *layer.Area[label.Biome] {
	return layer.New(0, func(x, z int) label.Biome {
		switch {
		case x == 0 && z == 0:
			return c
		case x == 0 && z == -1:
			return n
		case x == 1 && z == 0:
			return e
		case x == 0 && z == 1:
			return s
		case x == -1 && z == 0:
			return w
		}
		return rest
	})
}

func uniform(v label.Biome) *layer.Area[label.Biome] {
	return layer.New(0, func(int, int) label.Biome { return v })
}

type allRivers struct{}

func (allRivers) InRiver(coord.Quart) bool { return true }

type noRivers struct{}

func (noRivers) InRiver(coord.Quart) bool { return false }

var ctx = layer.NewContext(1234, 1)

func TestPickFavorsEarlier(t *testing.T) {
	var counts [3]int
	for x := 0; x < 3000; x++ {
		r := ctx.At(x, 0)
		switch pick(&r, label.Plains, label.Hills, label.Plateau) {
		case label.Plains:
			counts[0]++
		case label.Hills:
			counts[1]++
		case label.Plateau:
			counts[2]++
		}
	}
	if counts[0] <= counts[1] || counts[1] <= counts[2] || counts[2] == 0 {
		t.Errorf("pick counts = %v, want strictly decreasing and non-zero", counts)
	}
}

func TestShore(t *testing.T) {
	tests := []struct {
		name string
		c    label.Biome
		want label.Biome
	}{
		{"plains", label.Plains, label.Shore},
		{"hills", label.Hills, label.Shore},
		{"mountains", label.Mountains, label.OceanicMountains},
		{"volcanic mountains", label.VolcanicMountains, label.VolcanicOceanicMountains},
		{"oceanic mountains", label.OceanicMountains, label.OceanicMountains},
		{"lowlands", label.Lowlands, label.Lowlands},
		{"canyons", label.Canyons, label.Canyons},
		{"lake", label.Lake, label.Lake},
		{"ocean", label.Ocean, label.Ocean},
	}
	for _, tt := range tests {
		g := cross(label.Ocean, tt.c, tt.c, tt.c, tt.c, tt.c)
		if got := NewShore(ctx, g).Get(0, 0); got != tt.want {
			t.Errorf("%s next to ocean = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := NewShore(ctx, uniform(label.Plains)).Get(0, 0); got != label.Plains {
		t.Errorf("inland plains = %v", got)
	}
}

func TestMergeLake(t *testing.T) {
	tests := []struct {
		main, want label.Biome
	}{
		{label.Plains, label.Lake},
		{label.Mountains, label.MountainLake},
		{label.Plateau, label.PlateauLake},
		{label.Badlands, label.Badlands},
		{label.Ocean, label.Ocean},
	}
	for _, tt := range tests {
		m := NewMergeLake(ctx, uniform(tt.main), uniform(label.LakeMarker))
		if got := m.Get(3, 3); got != tt.want {
			t.Errorf("lake into %v = %v, want %v", tt.main, got, tt.want)
		}
		if got := NewMergeLake(ctx, uniform(tt.main), uniform(label.NullMarker)).Get(3, 3); got != tt.main {
			t.Errorf("no lake into %v = %v", tt.main, got)
		}
	}
}

func TestMergeRiver(t *testing.T) {
	tests := []struct {
		main, want label.Biome
	}{
		{label.Plains, label.River},
		{label.Mountains, label.MountainRiver},
		{label.VolcanicOceanicMountains, label.VolcanicOceanicMountainRiver},
		{label.Lake, label.Lake},
		{label.Ocean, label.Ocean},
		{label.Shore, label.River},
	}
	for _, tt := range tests {
		if got := NewMergeRiver(ctx, uniform(tt.main), allRivers{}).Get(0, 0); got != tt.want {
			t.Errorf("river through %v = %v, want %v", tt.main, got, tt.want)
		}
		if got := NewMergeRiver(ctx, uniform(tt.main), noRivers{}).Get(0, 0); got != tt.main {
			t.Errorf("no river through %v = %v", tt.main, got)
		}
	}
}

func TestArchipelago(t *testing.T) {
	a := NewArchipelago(ctx, uniform(label.OceanOceanConvergingMarker), 1)
	if got := a.Get(5, 5); got != label.VolcanicOceanicMountains {
		t.Errorf("frequency 1 converging = %v", got)
	}
	d := NewArchipelago(ctx, uniform(label.OceanOceanDivergingMarker), 6)
	for x := 0; x < 20; x++ {
		if got := d.Get(x, 0); got != label.DeepOcean && got != label.OceanicMountains {
			t.Fatalf("diverging marker resolved to %v", got)
		}
	}
	if got := NewArchipelago(ctx, uniform(label.Plains), 1).Get(0, 0); got != label.Plains {
		t.Errorf("plains = %v", got)
	}
}

func TestReefBorder(t *testing.T) {
	shallow := cross(label.Ocean, label.Ocean, label.OceanReefMarker, label.Ocean, label.OceanReefMarker, label.Ocean)
	if got := NewReefBorder(ctx, shallow).Get(0, 0); got != label.OceanReef {
		t.Errorf("shallow reef = %v", got)
	}
	deep := cross(label.DeepOcean, label.Ocean, label.Ocean, label.Ocean, label.OceanReefMarker, label.Ocean)
	if got := NewReefBorder(ctx, deep).Get(0, 0); got != label.Ocean {
		t.Errorf("reef next to deep ocean = %v", got)
	}
}

func TestOceanBorder(t *testing.T) {
	g := cross(label.Plains, label.DeepOcean, label.DeepOcean, label.DeepOcean, label.DeepOcean, label.DeepOcean)
	b := NewOceanBorder(ctx, g)
	if got := b.Get(0, 0); got != label.Ocean {
		t.Errorf("deep ocean by land = %v", got)
	}
	if got := b.Get(5, 5); got != label.DeepOcean {
		t.Errorf("open deep ocean = %v", got)
	}
}

func TestEdgeBiome(t *testing.T) {
	low := cross(label.Mountains, label.Plains, label.Plains, label.Plains, label.Plains, label.Plains)
	if got := NewEdgeBiome(ctx, low).Get(0, 0); got != label.Hills {
		t.Errorf("plains by mountains = %v", got)
	}
	high := cross(label.Plains, label.Mountains, label.Mountains, label.Mountains, label.Mountains, label.Mountains)
	if got := NewEdgeBiome(ctx, high).Get(0, 0); got != label.RollingHills {
		t.Errorf("mountains by plains = %v", got)
	}
	plateau := cross(label.Lowlands, label.Plateau, label.Plateau, label.Plateau, label.Plateau, label.Plateau)
	if got := NewEdgeBiome(ctx, plateau).Get(0, 0); got != label.Hills {
		t.Errorf("plateau by lowlands = %v", got)
	}
	if got := NewEdgeBiome(ctx, uniform(label.Plains)).Get(0, 0); got != label.Plains {
		t.Errorf("plains = %v", got)
	}
}

func TestInlandAndLakes(t *testing.T) {
	coast := cross(label.Ocean, label.Plains, label.Plains, label.Plains, label.Plains, label.Plains)
	in := NewInland(ctx, coast)
	if got := in.Get(0, 0); got != label.NullMarker {
		t.Errorf("coastal cell = %v, want null marker", got)
	}
	if got := in.Get(5, 5); got != label.InlandMarker {
		t.Errorf("inland cell = %v, want inland marker", got)
	}

	always := NewAddLakes(ctx, in, LakeSize{Seed: 1})
	if got := always.Get(5, 5); got != label.LakeMarker {
		t.Errorf("seed 1 lake = %v", got)
	}
	if got := always.Get(0, 0); got != label.NullMarker {
		t.Errorf("lake on coast = %v", got)
	}

	a := NewAddLakes(layer.NewContext(3, 3), uniform(label.InlandMarker), LakesLarge)
	b := NewAddLakes(layer.NewContext(3, 3), uniform(label.InlandMarker), LakesLarge)
	lakes := 0
	for x := -30; x < 30; x++ {
		for z := -30; z < 30; z++ {
			v := a.Get(x, z)
			if v != b.Get(x, z) {
				t.Fatalf("lake layer not deterministic at (%d,%d)", x, z)
			}
			if v == label.LakeMarker {
				lakes++
			}
		}
	}
	if lakes == 0 || lakes > 3600/4 {
		t.Errorf("large lakes covered %d of 3600 cells", lakes)
	}
}
