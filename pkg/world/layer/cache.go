package layer

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 64

// Key is a cell coordinate on a single layer grid.
type Key struct{ X, Z int }

// Cache memoizes per-cell values. Each cell is computed at most once while it is
// resident; published values are never mutated. Safe for concurrent use.
type Cache[T any] struct {
	limit  int
	shards [shardCount]shard[T]
}

type shard[T any] struct {
	mu    sync.Mutex
	cells map[Key]*cell[T]
}

type cell[T any] struct {
	once  sync.Once
	ready atomic.Bool
	value T
}

// NewCache returns an empty cache. A positive limit bounds the number of
// resident cells per shard; a full shard drops half its cells before inserting.
func NewCache[T any](limit int) *Cache[T] {
	c := &Cache[T]{limit: limit}
	for i := range c.shards {
		c.shards[i].cells = make(map[Key]*cell[T])
	}
	return c
}

func shardOf(k Key) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(k.X))
	binary.LittleEndian.PutUint64(b[8:], uint64(k.Z))
	return xxhash.Sum64(b[:]) & (shardCount - 1)
}

func (c *Cache[T]) entry(k Key) *cell[T] {
	s := &c.shards[shardOf(k)]
	s.mu.Lock()
	e, ok := s.cells[k]
	if !ok {
		if c.limit > 0 && len(s.cells) >= c.limit {
			s.shrink(max(len(s.cells)/2, 1))
		}
		e = &cell[T]{}
		s.cells[k] = e
	}
	s.mu.Unlock()
	return e
}

// shrink drops n arbitrary cells. Callers must hold s.mu.
func (s *shard[T]) shrink(n int) {
	for k := range s.cells {
		if n <= 0 {
			return
		}
		delete(s.cells, k)
		n--
	}
}

// GetOrCompute returns the value cached for (x, z), calling fn to compute it
// when absent. fn runs outside the shard lock, so it may recurse into other
// caches freely; concurrent callers for the same cell wait for the first.
func (c *Cache[T]) GetOrCompute(x, z int, fn func(x, z int) T) T {
	e := c.entry(Key{x, z})
	if e.ready.Load() {
		return e.value
	}
	e.once.Do(func() {
		e.value = fn(x, z)
		e.ready.Store(true)
	})
	return e.value
}

// Store publishes v for (x, z) if the cell is absent. It never waits on a
// computation in progress and reports whether v was stored.
func (c *Cache[T]) Store(x, z int, v T) bool {
	k := Key{x, z}
	s := &c.shards[shardOf(k)]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cells[k]; ok {
		return false
	}
	if c.limit > 0 && len(s.cells) >= c.limit {
		s.shrink(max(len(s.cells)/2, 1))
	}
	e := &cell[T]{value: v}
	e.once.Do(func() {})
	e.ready.Store(true)
	s.cells[k] = e
	return true
}

// Evict drops every resident cell whose key matches pred and returns the count.
func (c *Cache[T]) Evict(pred func(k Key) bool) int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for k := range s.cells {
			if pred(k) {
				delete(s.cells, k)
				n++
			}
		}
		s.mu.Unlock()
	}
	return n
}

// Len returns the number of resident cells.
func (c *Cache[T]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.cells)
		s.mu.Unlock()
	}
	return n
}
