// Package config holds the layer generator configuration and converts it into
// generator settings.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OCharnyshevich/worldlayers/pkg/world/biome"
	"github.com/OCharnyshevich/worldlayers/pkg/world/gen"
	"github.com/OCharnyshevich/worldlayers/pkg/world/river"
	"github.com/OCharnyshevich/worldlayers/pkg/world/rock"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid")

// River holds the river growth parameters.
type River struct {
	SourceChance float64 `yaml:"source_chance" json:"source_chance"`
	Length       float64 `yaml:"length" json:"length"`
	Depth        int     `yaml:"depth" json:"depth"`
	Feather      float64 `yaml:"feather" json:"feather"`
	Width        float64 `yaml:"width" json:"width"`
	Bisections   int     `yaml:"bisections" json:"bisections"`
}

// Config holds the generator configuration.
type Config struct {
	Seed            int64   `yaml:"seed" json:"seed"`
	OceanPercent    int     `yaml:"ocean_percent" json:"ocean_percent"`
	PlateSpread     float64 `yaml:"plate_spread" json:"plate_spread"`
	IslandFrequency int     `yaml:"island_frequency" json:"island_frequency"`
	BiomeZoomLevels int     `yaml:"biome_zoom_levels" json:"biome_zoom_levels"`
	RockLayerScale  int     `yaml:"rock_layer_scale" json:"rock_layer_scale"`
	River           River   `yaml:"river" json:"river"`
	ForestSpread    float64 `yaml:"forest_spread" json:"forest_spread"`

	RocksFile       string `yaml:"rocks_file" json:"rocks_file"`     // local rock definition file
	RocksSource     string `yaml:"rocks_source" json:"rocks_source"` // go-getter URL fetched into RocksDir
	RocksDir        string `yaml:"rocks_dir" json:"rocks_dir"`
	CacheShardLimit int    `yaml:"cache_shard_limit" json:"cache_shard_limit"` // 0 = unbounded
	LogLevel        string `yaml:"log_level" json:"log_level"`                 // debug, info, warn or error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	bs := biome.DefaultSettings()
	rp := river.DefaultParams()
	s := gen.DefaultSettings(0)
	return &Config{
		OceanPercent:    bs.OceanPercent,
		PlateSpread:     bs.PlateSpread,
		IslandFrequency: bs.IslandFrequency,
		BiomeZoomLevels: bs.ZoomLevels,
		RockLayerScale:  s.Rock.LayerScale,
		River: River{
			SourceChance: rp.SourceChance,
			Length:       rp.Length,
			Depth:        rp.Depth,
			Feather:      rp.Feather,
			Width:        rp.Width,
			Bisections:   rp.Bisections,
		},
		ForestSpread: s.ForestSpread,
		RocksDir:     "rocks",
		LogLevel:     "info",
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["ocean-percent"] {
		cfg.OceanPercent = fromFile.OceanPercent
	}
	if !explicitFlags["plate-spread"] {
		cfg.PlateSpread = fromFile.PlateSpread
	}
	if !explicitFlags["island-frequency"] {
		cfg.IslandFrequency = fromFile.IslandFrequency
	}
	if !explicitFlags["zoom-levels"] {
		cfg.BiomeZoomLevels = fromFile.BiomeZoomLevels
	}
	if !explicitFlags["rock-scale"] {
		cfg.RockLayerScale = fromFile.RockLayerScale
	}
	if !explicitFlags["forest-spread"] {
		cfg.ForestSpread = fromFile.ForestSpread
	}
	if !explicitFlags["rocks"] {
		cfg.RocksFile = fromFile.RocksFile
	}
	if !explicitFlags["rocks-source"] {
		cfg.RocksSource = fromFile.RocksSource
	}
	if !explicitFlags["rocks-dir"] {
		cfg.RocksDir = fromFile.RocksDir
	}
	if !explicitFlags["shard-limit"] {
		cfg.CacheShardLimit = fromFile.CacheShardLimit
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	// River parameters have no flags.
	cfg.River = fromFile.River
}

// Settings converts cfg into generator settings.
func (c *Config) Settings() gen.Settings {
	return gen.Settings{
		Seed: c.Seed,
		Biome: biome.Settings{
			OceanPercent:    c.OceanPercent,
			PlateSpread:     c.PlateSpread,
			IslandFrequency: c.IslandFrequency,
			ZoomLevels:      c.BiomeZoomLevels,
		},
		River: river.Params{
			SourceChance: c.River.SourceChance,
			Length:       c.River.Length,
			Depth:        c.River.Depth,
			Feather:      c.River.Feather,
			Width:        c.River.Width,
			Bisections:   c.River.Bisections,
		},
		Rock:         rock.Settings{LayerScale: c.RockLayerScale},
		ForestSpread: c.ForestSpread,
		ShardLimit:   c.CacheShardLimit,
	}
}

// SlogLevel returns the slog level named by LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return l, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.RocksSource != "" && strings.TrimSpace(c.RocksDir) == "" {
		return fmt.Errorf("%w: rocks_source set without rocks_dir", ErrInvalidConfig)
	}
	return nil
}
