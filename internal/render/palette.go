package render

import (
	"encoding/binary"
	"image/color"

	"github.com/cespare/xxhash/v2"

	"github.com/OCharnyshevich/worldlayers/pkg/world/forest"
	"github.com/OCharnyshevich/worldlayers/pkg/world/gen"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

// Palette maps an encoded stage value to a color.
type Palette func(v int32) color.RGBA

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var labelColors = map[label.Biome]color.RGBA{
	label.Ocean:                        rgb(0x1f4fbf),
	label.OceanReef:                    rgb(0x3fb5c8),
	label.DeepOcean:                    rgb(0x123680),
	label.DeepOceanTrench:              rgb(0x0a1d4a),
	label.Plains:                       rgb(0x8fc65a),
	label.Hills:                        rgb(0x7aa64c),
	label.Lowlands:                     rgb(0x5d9b60),
	label.LowCanyons:                   rgb(0x8a7a4c),
	label.RollingHills:                 rgb(0x9bae5c),
	label.Badlands:                     rgb(0xc67a3e),
	label.InvertedBadlands:             rgb(0xb0643a),
	label.Plateau:                      rgb(0xa89a6a),
	label.OldMountains:                 rgb(0x8c8c7c),
	label.Mountains:                    rgb(0x9a9a9a),
	label.VolcanicMountains:            rgb(0x6e4a42),
	label.OceanicMountains:             rgb(0x7c8ea0),
	label.VolcanicOceanicMountains:     rgb(0x5e4f5c),
	label.Canyons:                      rgb(0xac6c3a),
	label.Shore:                        rgb(0xe6d99c),
	label.Lake:                         rgb(0x3f7fe0),
	label.River:                        rgb(0x4a8cf0),
	label.MountainRiver:                rgb(0x4a8cf0),
	label.VolcanicMountainRiver:        rgb(0x4a8cf0),
	label.OldMountainRiver:             rgb(0x4a8cf0),
	label.OceanicMountainRiver:         rgb(0x4a8cf0),
	label.VolcanicOceanicMountainRiver: rgb(0x4a8cf0),
	label.MountainLake:                 rgb(0x3f7fe0),
	label.VolcanicMountainLake:         rgb(0x3f7fe0),
	label.OldMountainLake:              rgb(0x3f7fe0),
	label.OceanicMountainLake:          rgb(0x3f7fe0),
	label.VolcanicOceanicMountainLake:  rgb(0x3f7fe0),
	label.PlateauLake:                  rgb(0x3f7fe0),
}

var markerColor = rgb(0xff00ff)

// Labels colors terminal labels and paints markers magenta.
func Labels(v int32) color.RGBA {
	if c, ok := labelColors[label.Biome(v)]; ok {
		return c
	}
	return markerColor
}

var forestColors = [...]color.RGBA{
	forest.None:      rgb(0xd8d0a8),
	forest.Sparse:    rgb(0x9cc070),
	forest.Normal:    rgb(0x4f8a3c),
	forest.Edge:      rgb(0x7aa050),
	forest.OldGrowth: rgb(0x1f4a24),
}

// Forest colors forest densities.
func Forest(v int32) color.RGBA {
	if v < 0 || int(v) >= len(forestColors) {
		return markerColor
	}
	return forestColors[v]
}

// Hashed gives every distinct value a stable arbitrary color.
func Hashed(v int32) color.RGBA {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	h := xxhash.Sum64(buf[:])
	return color.RGBA{R: uint8(h), G: uint8(h >> 8), B: uint8(h >> 16), A: 0xff}
}

// For returns the palette suited to a stage of the named pipeline.
func For(pipeline, stage string) Palette {
	switch {
	case pipeline == gen.ForestPipeline:
		return Forest
	case pipeline == gen.RockPipeline:
		return Hashed
	case stage == "plate_generation" || stage == "watershed_plates" || stage == "plate_zoom":
		return Hashed
	case stage == "plate_boundary" || stage == "plate_smooth" || stage == "plate_boundary_modifier":
		return Hashed
	}
	return Labels
}
