package biome

import (
	"testing"

	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

func build(seed int64, s Settings) (*layer.Builder, *Pipeline) {
	b := layer.NewBuilder(seed, "biome")
	plates := NewPlates(b, s)
	NewWatershedPlates(b, plates)
	return b, Build(b, plates, s, noRivers{})
}

func TestPipelineStages(t *testing.T) {
	b, p := build(1234, DefaultSettings())
	want := []string{
		"plate_generation", "watershed_plates", "plate_zoom", "plate_boundary", "plate_smooth",
		"plate_boundary_modifier", "plate_biome",
		"inland", "lake_zoom", "add_lakes_large", "lake_zoom_2", "add_lakes_small", "lake_zoom_3",
		"ocean_border", "zoom", "archipelago", "reef_border", "zoom_2", "edge_biome", "zoom_3",
		"merge_lake", "shore", "biome_zoom", "biome_zoom_2", "biome_zoom_3", "biome_zoom_4",
		"smooth", "merge_river",
	}
	stages := b.Stages()
	if len(stages) != len(want) {
		t.Fatalf("got %d stages, want %d", len(stages), len(want))
	}
	for i, s := range stages {
		if s.Name != want[i] {
			t.Errorf("stage %d = %q, want %q", i, s.Name, want[i])
		}
	}
	if got := p.Output.Level(); got != DefaultSettings().FinalLevel() {
		t.Errorf("output level = %d, want %d", got, DefaultSettings().FinalLevel())
	}
	if got := stages[1].Level; got != 1 || DefaultSettings().WatershedBits() != 7 {
		t.Errorf("watershed plates level %d, bits %d", got, DefaultSettings().WatershedBits())
	}
}

func TestPipelineDeterministicAndTerminal(t *testing.T) {
	_, a := build(42, DefaultSettings())
	_, b := build(42, DefaultSettings())
	for x := -300; x < 300; x += 7 {
		for z := -300; z < 300; z += 11 {
			v := a.Output.Get(x, z)
			if v != b.Output.Get(x, z) {
				t.Fatalf("(%d,%d) differs between builds", x, z)
			}
			if label.Default.IsMarker(v) {
				t.Fatalf("(%d,%d) = marker %v", x, z, v)
			}
		}
	}
}

func TestPipelineZoomLevels(t *testing.T) {
	s := DefaultSettings()
	s.ZoomLevels = 2
	_, p := build(7, s)
	if p.Output.Level() != 6 {
		t.Errorf("output level = %d, want 6", p.Output.Level())
	}
}
