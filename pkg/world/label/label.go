// Package label defines the closed set of classification labels produced by the
// biome pipeline, together with the single table that maps each label to its
// name, kind, lake and river variants, and, for markers, the fallback label.
package label

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned when an id or name has no table entry.
var ErrUnknownLabel = errors.New("label: unknown label")

// Biome is a classification label. The zero value is Ocean.
type Biome int32

// Terminal labels.
const (
	Ocean Biome = iota
	OceanReef
	DeepOcean
	DeepOceanTrench
	Plains
	Hills
	Lowlands
	LowCanyons
	RollingHills
	Badlands
	InvertedBadlands
	Plateau
	OldMountains
	Mountains
	VolcanicMountains
	OceanicMountains
	VolcanicOceanicMountains
	Canyons
	Shore
	Lake
	River
	MountainRiver
	VolcanicMountainRiver
	OldMountainRiver
	OceanicMountainRiver
	VolcanicOceanicMountainRiver
	MountainLake
	VolcanicMountainLake
	OldMountainLake
	OceanicMountainLake
	VolcanicOceanicMountainLake
	PlateauLake
)

// Intermediate markers. They exist only inside the pipeline.
const (
	OceanOceanConvergingMarker Biome = iota + PlateauLake + 1
	OceanOceanDivergingMarker
	LakeMarker
	NullMarker
	InlandMarker
	OceanReefMarker

	count
)

// Flag is a set of label properties used by stage predicates.
type Flag uint16

const (
	FlagOcean Flag = 1 << iota
	FlagLow
	FlagHigh
	FlagMountains
	FlagLake
	FlagRiver
	FlagNoShore
	FlagNoLake
	FlagMarker
)

// Entry is one row of the label table.
type Entry struct {
	Label    Biome
	Name     string
	Flags    Flag
	Lake     Biome
	River    Biome
	Shore    Biome
	Fallback Biome
}

// IsMarker reports whether the entry is an intermediate marker.
func (e Entry) IsMarker() bool { return e.Flags&FlagMarker != 0 }

// String returns the label's registered name.
func (b Biome) String() string {
	if e, ok := Default.Lookup(b); ok {
		return e.Name
	}
	return fmt.Sprintf("Biome(%d)", int32(b))
}
