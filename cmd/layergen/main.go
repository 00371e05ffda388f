package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/OCharnyshevich/worldlayers/internal/config"
	"github.com/OCharnyshevich/worldlayers/internal/render"
	"github.com/OCharnyshevich/worldlayers/internal/rocks"
	"github.com/OCharnyshevich/worldlayers/internal/world"
	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/gen"
)

type options struct {
	configPath     string
	pipeline       string
	stage          string
	out            string
	x, z           int
	size           int
	scale          int
	workers        int
	classifyRadius int
	listStages     bool
	caption        bool
}

func main() {
	cfg := config.DefaultConfig()
	opts := options{}

	flag.StringVar(&opts.configPath, "config", "", "YAML config file")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.OceanPercent, "ocean-percent", cfg.OceanPercent, "percentage of oceanic plates")
	flag.Float64Var(&cfg.PlateSpread, "plate-spread", cfg.PlateSpread, "plate center jitter in [0,1]")
	flag.IntVar(&cfg.IslandFrequency, "island-frequency", cfg.IslandFrequency, "one in N converging ocean cells becomes an island arc")
	flag.IntVar(&cfg.BiomeZoomLevels, "zoom-levels", cfg.BiomeZoomLevels, "biome zooms after the shore stage")
	flag.IntVar(&cfg.RockLayerScale, "rock-scale", cfg.RockLayerScale, "rock zooms after smoothing")
	flag.Float64Var(&cfg.ForestSpread, "forest-spread", cfg.ForestSpread, "forest noise frequency")
	flag.StringVar(&cfg.RocksFile, "rocks", cfg.RocksFile, "local rock definition file")
	flag.StringVar(&cfg.RocksSource, "rocks-source", cfg.RocksSource, "go-getter source of a rock bundle")
	flag.StringVar(&cfg.RocksDir, "rocks-dir", cfg.RocksDir, "directory the rock bundle is fetched into")
	flag.IntVar(&cfg.CacheShardLimit, "shard-limit", cfg.CacheShardLimit, "resident cells per cache shard (0 = unbounded)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	flag.StringVar(&opts.pipeline, "pipeline", gen.BiomePipeline, "pipeline of the rendered stage")
	flag.StringVar(&opts.stage, "stage", "merge_river", "stage to render")
	flag.StringVar(&opts.out, "o", "./maps", "output dir path")
	flag.IntVar(&opts.x, "x", 0, "center block x")
	flag.IntVar(&opts.z, "z", 0, "center block z")
	flag.IntVar(&opts.size, "size", 512, "image size in pixels")
	flag.IntVar(&opts.scale, "scale", 16, "blocks per pixel")
	flag.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "sampling goroutines")
	flag.IntVar(&opts.classifyRadius, "classify-radius", 0, "pre-classify chunks within this radius of the center")
	flag.BoolVar(&opts.listStages, "stages", false, "list stages and exit")
	flag.BoolVar(&opts.caption, "caption", true, "draw the stage name into the map")
	flag.Parse()

	if opts.configPath != "" {
		fromFile, err := config.Load(opts.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error("layergen failed", "error", err)
		os.Exit(1)
	}
}

func loadRocks(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]rocks.Rock, error) {
	switch {
	case cfg.RocksSource != "":
		log.Info("fetching rock definitions", "source", cfg.RocksSource, "dir", cfg.RocksDir)
		return rocks.Load(ctx, cfg.RocksSource, cfg.RocksDir)
	case cfg.RocksFile != "":
		return rocks.LoadFile(cfg.RocksFile)
	}
	return rocks.DefaultRocks(), nil
}

func run(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) error {
	registry := rocks.NewRegistry()
	g, err := gen.New(cfg.Settings(), registry, log)
	if err != nil {
		return err
	}
	defs, err := loadRocks(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := registry.Replace(defs); err != nil {
		return err
	}

	if opts.listStages {
		for _, s := range g.Stages() {
			fmt.Printf("%-8s %-26s level %d, 1 cell = %d blocks\n", s.Pipeline, s.Name, s.Level, 1<<g.BlockShift(s))
		}
		return nil
	}

	center := coord.Block{X: opts.x, Z: opts.z}
	if opts.classifyRadius > 0 {
		w := world.New(g, log)
		if _, err := w.PreClassifyRadius(ctx, center.Chunk(), opts.classifyRadius, opts.workers); err != nil {
			return err
		}
		cc, err := w.GetOrClassifyChunk(center.Chunk())
		if err != nil {
			return err
		}
		lx, lz := center.Local()
		rock, _ := registry.Rock(cc.Rock)
		log.Info("center chunk",
			"biome", cc.Biome(lx, lz).String(),
			"rock", rock.Name,
			"forest", cc.ForestAt(lx, lz).String(),
			"river", cc.River(lx, lz),
			"oceanicPlate", cc.Plate.Oceanic,
		)
	}

	stage, err := g.Stage(opts.pipeline, opts.stage)
	if err != nil {
		return err
	}
	r, err := render.New(opts.out, opts.workers, log)
	if err != nil {
		return err
	}
	half := opts.size / 2 * opts.scale
	view := render.View{
		X:      opts.x - half,
		Z:      opts.z - half,
		Width:  opts.size,
		Height: opts.size,
		Step:   opts.scale,
	}
	shift := g.BlockShift(stage)
	sample := func(x, z int) int32 { return stage.Sample(x>>shift, z>>shift) }
	meta := render.Meta{Seed: cfg.Seed, Pipeline: stage.Pipeline, Stage: stage.Name, Level: stage.Level, View: view}
	name := fmt.Sprintf("%s_%s_%d", stage.Pipeline, stage.Name, cfg.Seed)
	if opts.caption {
		meta.Caption = fmt.Sprintf("%s/%s seed %d", stage.Pipeline, stage.Name, cfg.Seed)
	}
	_, err = r.Render(ctx, name, meta, sample, render.For(stage.Pipeline, stage.Name))
	return err
}
