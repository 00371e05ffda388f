// Package world keeps the classified chunks of a running world and unloads
// them, together with the layer caches behind them, one region at a time.
package world

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/worldlayers/pkg/world/coord"
	"github.com/OCharnyshevich/worldlayers/pkg/world/gen"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

// Classifier produces chunk classifications and drops the caches behind a
// region. *gen.Generator implements it.
type Classifier interface {
	Classify(c coord.Chunk) (*gen.ChunkClassification, error)
	EvictRegion(r coord.Region) int
}

// World caches chunk classifications from a classifier.
type World struct {
	mu         sync.RWMutex
	classifier Classifier
	chunks     map[coord.Chunk]*gen.ChunkClassification
	log        *slog.Logger
}

// New returns an empty World over classifier. A nil log discards output.
func New(classifier Classifier, log *slog.Logger) *World {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &World{
		classifier: classifier,
		chunks:     make(map[coord.Chunk]*gen.ChunkClassification),
		log:        log,
	}
}

// GetOrClassifyChunk returns the classification of c, computing and caching it
// if needed.
func (w *World) GetOrClassifyChunk(c coord.Chunk) (*gen.ChunkClassification, error) {
	w.mu.RLock()
	if cc, ok := w.chunks[c]; ok {
		w.mu.RUnlock()
		return cc, nil
	}
	w.mu.RUnlock()

	cc, err := w.classifier.Classify(c)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[c]; ok {
		w.mu.Unlock()
		return existing, nil
	}
	w.chunks[c] = cc
	w.mu.Unlock()
	return cc, nil
}

// Biome returns the label of block column b.
func (w *World) Biome(b coord.Block) (label.Biome, error) {
	cc, err := w.GetOrClassifyChunk(b.Chunk())
	if err != nil {
		return 0, err
	}
	x, z := b.Local()
	return cc.Biome(x, z), nil
}

// PreClassifyRadius classifies every chunk within radius of center using up to
// workers goroutines and returns the number of chunks classified. It stops at
// the first error or when ctx is done.
func (w *World) PreClassifyRadius(ctx context.Context, center coord.Chunk, radius, workers int) (int, error) {
	if radius < 0 {
		return 0, fmt.Errorf("pre-classify: negative radius %d", radius)
	}
	if workers < 1 {
		workers = 1
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	count := 0
loop:
	for cx := center.X - radius; cx <= center.X+radius; cx++ {
		for cz := center.Z - radius; cz <= center.Z+radius; cz++ {
			if gctx.Err() != nil {
				break loop
			}
			c := coord.Chunk{X: cx, Z: cz}
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				_, err := w.GetOrClassifyChunk(c)
				return err
			})
			count++
		}
	}
	if err := eg.Wait(); err != nil {
		return 0, fmt.Errorf("pre-classify around (%d,%d): %w", center.X, center.Z, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("pre-classify around (%d,%d): %w", center.X, center.Z, err)
	}
	w.log.Info("pre-classified chunks", "centerX", center.X, "centerZ", center.Z, "radius", radius, "chunks", count)
	return count, nil
}

// UnloadRegion drops the chunks of r and the layer cells covering it, and
// returns the number of chunks dropped.
func (w *World) UnloadRegion(r coord.Region) int {
	w.mu.Lock()
	n := 0
	for c := range w.chunks {
		if c.Region() == r {
			delete(w.chunks, c)
			n++
		}
	}
	w.mu.Unlock()

	cells := w.classifier.EvictRegion(r)
	w.log.Debug("unloaded region", "regionX", r.X, "regionZ", r.Z, "chunks", n, "cells", cells)
	return n
}

// Loaded returns the number of cached chunks.
func (w *World) Loaded() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// ForEachChunk calls fn for every cached chunk under a read lock.
func (w *World) ForEachChunk(fn func(cc *gen.ChunkClassification)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, cc := range w.chunks {
		fn(cc)
	}
}
