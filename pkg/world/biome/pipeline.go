// Package biome builds the classification pipeline that turns tectonic plates
// into terminal labels at quart resolution: plate regimes, provisional labels,
// lakes, coasts, ocean features, shores and rivers.
package biome

import (
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
	"github.com/OCharnyshevich/worldlayers/pkg/world/plate"
)

// Settings configures the biome pipeline.
type Settings struct {
	OceanPercent    int
	PlateSpread     float64
	IslandFrequency int
	ZoomLevels      int
}

// DefaultSettings returns the standard pipeline settings.
func DefaultSettings() Settings {
	return Settings{OceanPercent: 40, PlateSpread: 0.2, IslandFrequency: 6, ZoomLevels: 4}
}

// baseLevels is the level of the merged lake and main grids.
const baseLevels = 4

// FinalLevel returns the level of the pipeline output for s.
func (s Settings) FinalLevel() int { return baseLevels + s.ZoomLevels }

// WatershedBits returns the shift from quart to the plate grid one zoom below
// plate generation, where watersheds are computed.
func (s Settings) WatershedBits() int { return s.FinalLevel() - 1 }

// Pipeline holds the notable areas of a built biome pipeline.
type Pipeline struct {
	Plates  *layer.Area[plate.Plate]
	Regimes *layer.Area[plate.Regime]
	Output  *layer.Area[label.Biome]
}

// EncodePlate maps a plate to a stage value for tooling.
func EncodePlate(p plate.Plate) int32 { return int32(p.Hash() >> 16) }

// NewPlates registers the plate generation stage. It is the first stage of the
// pipeline and is shared with the watershed plates.
func NewPlates(b *layer.Builder, s Settings) *layer.Area[plate.Plate] {
	g := plate.NewGenerator(b.Context(), b.Context(), s.PlateSpread, s.OceanPercent)
	return layer.Add(b, "plate_generation", plate.NewLayer(g, b.Options()...), EncodePlate)
}

// NewWatershedPlates registers the land-biased plate zoom the river network is
// grown on.
func NewWatershedPlates(b *layer.Builder, plates layer.Sampler[plate.Plate]) *layer.Area[plate.Plate] {
	return layer.Add(b, "watershed_plates", plate.ZoomLandBiased(b.Context(), plates, b.Options()...), EncodePlate)
}

// Build registers the remaining stages on top of plates and returns the
// pipeline. Its output is at quart resolution for every ZoomLevels.
func Build(b *layer.Builder, plates *layer.Area[plate.Plate], s Settings, rivers Rivers) *Pipeline {
	opts := b.Options()
	add := func(name string, a *layer.Area[label.Biome]) *layer.Area[label.Biome] {
		return layer.AddLabel(b, name, a)
	}
	addRegime := func(name string, a *layer.Area[plate.Regime]) *layer.Area[plate.Regime] {
		return layer.AddLabel(b, name, a)
	}
	zoom := func(name string, parent *layer.Area[label.Biome]) *layer.Area[label.Biome] {
		return add(name, layer.Zoom(b.Context(), parent, layer.ZoomNormal, opts...))
	}

	zoomed := layer.Add(b, "plate_zoom", plate.Zoom(b.Context(), plates, opts...), EncodePlate)
	regimes := addRegime("plate_boundary", plate.NewBoundaryLayer(b.Context(), zoomed, opts...))
	regimes = addRegime("plate_smooth", layer.Smooth(b.Context(), regimes, opts...))
	regimes = addRegime("plate_boundary_modifier", plate.NewBoundaryModifier(b.Context(), regimes, opts...))

	main := add("plate_biome", NewPlateBiome(b.Context(), regimes, opts...))

	lakes := add("inland", NewInland(b.Context(), main, opts...))
	lakes = zoom("lake_zoom", lakes)
	lakes = add("add_lakes_large", NewAddLakes(b.Context(), lakes, LakesLarge, opts...))
	lakes = zoom("lake_zoom", lakes)
	lakes = add("add_lakes_small", NewAddLakes(b.Context(), lakes, LakesSmall, opts...))
	lakes = zoom("lake_zoom", lakes)

	main = add("ocean_border", NewOceanBorder(b.Context(), main, opts...))
	main = zoom("zoom", main)
	main = add("archipelago", NewArchipelago(b.Context(), main, s.IslandFrequency, opts...))
	main = add("reef_border", NewReefBorder(b.Context(), main, opts...))
	main = zoom("zoom", main)
	main = add("edge_biome", NewEdgeBiome(b.Context(), main, opts...))
	main = zoom("zoom", main)

	main = add("merge_lake", NewMergeLake(b.Context(), main, lakes, opts...))
	main = add("shore", NewShore(b.Context(), main, opts...))
	for i := 0; i < s.ZoomLevels; i++ {
		main = zoom("biome_zoom", main)
	}
	main = add("smooth", layer.Smooth(b.Context(), main, opts...))
	main = add("merge_river", NewMergeRiver(b.Context(), main, rivers, opts...))

	return &Pipeline{Plates: plates, Regimes: regimes, Output: main}
}
