package plate

import (
	"fmt"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

// Regime classifies a plate-grid cell by its position on or inside a plate.
type Regime int32

const (
	Oceanic Regime = iota
	ContinentalLow
	ContinentalMid
	ContinentalHigh
	OceanOceanDiverging
	OceanOceanConvergingLower
	OceanOceanConvergingUpper
	OceanContinentConvergingLower
	OceanContinentConvergingUpper
	OceanContinentDiverging
	ContinentContinentDiverging
	ContinentContinentConverging
	ContinentalShelf
)

var regimeNames = [...]string{
	Oceanic:                       "oceanic",
	ContinentalLow:                "continental_low",
	ContinentalMid:                "continental_mid",
	ContinentalHigh:               "continental_high",
	OceanOceanDiverging:           "ocean_ocean_diverging",
	OceanOceanConvergingLower:     "ocean_ocean_converging_lower",
	OceanOceanConvergingUpper:     "ocean_ocean_converging_upper",
	OceanContinentConvergingLower: "ocean_continent_converging_lower",
	OceanContinentConvergingUpper: "ocean_continent_converging_upper",
	OceanContinentDiverging:       "ocean_continent_diverging",
	ContinentContinentDiverging:   "continent_continent_diverging",
	ContinentContinentConverging:  "continent_continent_converging",
	ContinentalShelf:              "continental_shelf",
}

func (r Regime) String() string {
	if r >= 0 && int(r) < len(regimeNames) {
		return regimeNames[r]
	}
	return fmt.Sprintf("Regime(%d)", int32(r))
}

// IsContinentalInterior reports whether r is a continental interior band.
func (r Regime) IsContinentalInterior() bool {
	return r == ContinentalLow || r == ContinentalMid || r == ContinentalHigh
}

// Relative motion beyond which a boundary counts as converging or diverging.
const motionThreshold = 0.4

// Interior elevation band limits.
const (
	lowBand = 0.3
	midBand = 0.7
)

// Interior returns the regime of a cell with no boundary.
func Interior(p Plate) Regime {
	switch {
	case p.Oceanic:
		return Oceanic
	case p.Elevation < lowBand:
		return ContinentalLow
	case p.Elevation < midBand:
		return ContinentalMid
	}
	return ContinentalHigh
}

// ClassifyBoundary returns the regime of the cell owned by center. Among the
// neighbors on a different plate one is chosen by reservoir sampling; when none
// differ the cell is interior.
func ClassifyBoundary(r *layer.Rand, center, north, west, south, east Plate) Regime {
	var other Plate
	count := 0
	for _, n := range [4]Plate{north, west, south, east} {
		if n.Same(center) {
			continue
		}
		count++
		if r.NextInt(count) == 0 {
			other = n
		}
	}
	if count == 0 {
		return Interior(center)
	}

	motion := other.Center.Sub(center.Center).Normalize().Dot(center.Drift.Sub(other.Drift))
	switch {
	case motion > motionThreshold:
		return converging(center, other)
	case motion < -motionThreshold:
		return diverging(center, other)
	}
	return Interior(center)
}

func converging(c, o Plate) Regime {
	switch {
	case c.Oceanic && o.Oceanic:
		if c.Elevation < o.Elevation {
			return OceanOceanConvergingLower
		}
		return OceanOceanConvergingUpper
	case c.Oceanic:
		return OceanContinentConvergingLower
	case o.Oceanic:
		return OceanContinentConvergingUpper
	}
	return ContinentContinentConverging
}

func diverging(c, o Plate) Regime {
	switch {
	case c.Oceanic && o.Oceanic:
		return OceanOceanDiverging
	case c.Oceanic || o.Oceanic:
		return OceanContinentDiverging
	}
	return ContinentContinentDiverging
}

// NewBoundaryLayer classifies every cell of a plate area.
func NewBoundaryLayer(ctx layer.Context, plates layer.Sampler[Plate], opts ...layer.Option) *layer.Area[Regime] {
	return layer.NewCross(ctx, plates, func(r *layer.Rand, n, e, s, w, c Plate) Regime {
		return ClassifyBoundary(r, c, n, w, s, e)
	}, opts...)
}

// NewBoundaryModifier turns oceanic cells next to a continental interior into
// continental shelf.
func NewBoundaryModifier(ctx layer.Context, regimes layer.Sampler[Regime], opts ...layer.Option) *layer.Area[Regime] {
	return layer.NewCross(ctx, regimes, func(_ *layer.Rand, n, e, s, w, c Regime) Regime {
		if c != Oceanic {
			return c
		}
		for _, v := range [4]Regime{n, e, s, w} {
			if v.IsContinentalInterior() {
				return ContinentalShelf
			}
		}
		return c
	}, opts...)
}
