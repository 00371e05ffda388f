package gen

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/worldlayers/pkg/world/biome"
	"github.com/OCharnyshevich/worldlayers/pkg/world/forest"
	"github.com/OCharnyshevich/worldlayers/pkg/world/river"
	"github.com/OCharnyshevich/worldlayers/pkg/world/rock"
)

// ErrInvalidSettings is wrapped by every settings validation error.
var ErrInvalidSettings = errors.New("gen: invalid settings")

// Settings configures every pipeline of a Generator.
type Settings struct {
	Seed         int64
	Biome        biome.Settings
	River        river.Params
	Rock         rock.Settings
	ForestSpread float64
	// ShardLimit bounds the resident cells per cache shard of every stage.
	// Zero means unbounded.
	ShardLimit int
}

// DefaultSettings returns the standard settings for seed.
func DefaultSettings(seed int64) Settings {
	return Settings{
		Seed:         seed,
		Biome:        biome.DefaultSettings(),
		River:        river.DefaultParams(),
		Rock:         rock.Settings{LayerScale: 1},
		ForestSpread: forest.DefaultSpread,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
}

// Validate reports the first out-of-range setting.
func (s Settings) Validate() error {
	b := s.Biome
	switch {
	case b.OceanPercent < 0 || b.OceanPercent > 100:
		return invalid("ocean percent %d not in [0,100]", b.OceanPercent)
	case b.PlateSpread < 0 || b.PlateSpread > 1:
		return invalid("plate spread %v not in [0,1]", b.PlateSpread)
	case b.IslandFrequency < 1:
		return invalid("island frequency %d below 1", b.IslandFrequency)
	case b.ZoomLevels < 1 || b.ZoomLevels > 8:
		return invalid("biome zoom levels %d not in [1,8]", b.ZoomLevels)
	case s.Rock.LayerScale < 0 || s.Rock.LayerScale > 8:
		return invalid("rock layer scale %d not in [0,8]", s.Rock.LayerScale)
	case s.ForestSpread <= 0:
		return invalid("forest spread %v not positive", s.ForestSpread)
	case s.ShardLimit < 0:
		return invalid("shard limit %d negative", s.ShardLimit)
	}

	r := s.River
	switch {
	case r.SourceChance < 0 || r.SourceChance > 1:
		return invalid("river source chance %v not in [0,1]", r.SourceChance)
	case r.Length <= 0:
		return invalid("river length %v not positive", r.Length)
	case r.Depth < 1:
		return invalid("river depth %d below 1", r.Depth)
	case r.Feather < 0:
		return invalid("river feather %v negative", r.Feather)
	case r.Width <= 0 || r.Width >= 0.25:
		return invalid("river width %v not in (0,0.25)", r.Width)
	case r.Bisections < 0 || r.Bisections > 10:
		return invalid("river bisections %d not in [0,10]", r.Bisections)
	}
	return nil
}
