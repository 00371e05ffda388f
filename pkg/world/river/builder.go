package river

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/worldlayers/pkg/world/layer"
)

const (
	minBranchAngle    = 0.4
	minBranchDistance = 2
	minRiverEdges     = 6
)

type vertex struct {
	pos      mgl64.Vec2
	angle    float64
	length   float64
	distance int
}

// edge flows from source (upstream) to drain (downstream). Vertices are shared
// between adjacent edges and compared by identity.
type edge struct {
	source, drain *vertex
}

// Edge is a straight river segment in watershed units.
type Edge struct {
	Source, Drain mgl64.Vec2
}

// intersector rejects a candidate edge that would cross or crowd existing rivers.
type intersector interface {
	intersectAny(e edge) bool
}

// builder grows one river upstream from its mouth.
type builder struct {
	rand      *layer.Stream
	root      *vertex
	depth     int
	featherSq float64

	edges  []edge
	queue  []edge
	branch []edge
}

func newBuilder(rand *layer.Stream, drain mgl64.Vec2, angle, length float64, depth int, feather float64) *builder {
	return &builder{
		rand:      rand,
		root:      &vertex{pos: drain, angle: angle, length: length},
		depth:     depth,
		featherSq: feather * feather,
	}
}

func (b *builder) extraLength() int {
	return b.rand.IntN(1 + int(float64(b.depth)*0.3))
}

// buildInitialBranch grows the trunk. It reports whether the river survived
// and has branch points queued.
func (b *builder) buildInitialBranch(ctx intersector) bool {
	prev := b.root
	n := b.depth + b.extraLength()
	for i := 0; i < n; i++ {
		next := b.next(prev, prev.length, prev.distance)
		e := edge{source: next, drain: prev}
		if ctx.intersectAny(e) {
			break
		}
		b.edges = append(b.edges, e)
		prev = next
		if prev.distance < b.depth && prev.distance >= minBranchDistance {
			b.queue = append(b.queue, e)
		}
	}
	b.pruneIfTooShort()
	return len(b.edges) > 0
}

// buildBranch tries one branch from the oldest queued edge. It reports whether
// the builder is finished.
func (b *builder) buildBranch(ctx intersector) bool {
	if len(b.queue) == 0 {
		b.pruneIfTooShort()
		return true
	}

	from := b.queue[0]
	b.queue = b.queue[1:]
	prev := from.drain
	dist := prev.distance + b.rand.IntN(3)
	first := b.next(prev, prev.length, dist)

	delta := math.Abs(from.source.angle - first.angle)
	if delta < minBranchAngle || 2*math.Pi-delta < minBranchAngle {
		return false
	}

	b.branch = b.branch[:0]
	e := edge{source: first, drain: prev}
	if ctx.intersectAny(e) {
		return false
	}
	b.branch = append(b.branch, e)

	prev = first
	n := b.depth - prev.distance + b.extraLength()
	for i := 0; i < n; i++ {
		next := b.next(prev, prev.length, dist)
		e := edge{source: next, drain: prev}
		if ctx.intersectAny(e) {
			break
		}
		b.branch = append(b.branch, e)
		prev = next
		dist = next.distance
		if dist < b.depth && dist >= minBranchDistance {
			b.queue = append(b.queue, e)
		}
	}
	b.edges = append(b.edges, b.branch...)
	return false
}

func (b *builder) pruneIfTooShort() {
	if len(b.edges) < minRiverEdges {
		b.edges = nil
		b.queue = nil
	}
}

// intersectAny reports whether e crosses one of the builder's edges, or its
// source lies within the feather distance of one. Edges attached to e's drain
// are ignored.
func (b *builder) intersectAny(e edge) bool {
	for _, o := range b.edges {
		if o.source == e.drain || o.drain == e.drain {
			continue
		}
		if distanceSq(o.source.pos, o.drain.pos, e.source.pos) < b.featherSq ||
			intersects(o.source.pos, o.drain.pos, e.source.pos, e.drain.pos) {
			return true
		}
	}
	return false
}

// next extends prev by one step. At the mouth the angle is kept as chosen.
func (b *builder) next(prev *vertex, length float64, distance int) *vertex {
	angle := prev.angle
	if distance != 0 {
		turn := b.rand.Float64()*0.5 + 0.2
		if b.rand.Bool() {
			turn = -turn
		}
		angle += turn
	}
	length *= b.rand.Float64()*0.08 + 0.92
	return &vertex{
		pos:      prev.pos.Add(mgl64.Vec2{math.Cos(angle) * length, math.Sin(angle) * length}),
		angle:    angle,
		length:   length,
		distance: distance + 1,
	}
}

// multiBuilder grows several rivers against each other, always extending the
// river with the most edges and pending branches first.
type multiBuilder struct {
	builders []*builder
	legal    func(v *vertex) bool
}

func (m *multiBuilder) add(b *builder) { m.builders = append(m.builders, b) }

func (m *multiBuilder) intersectAny(e edge) bool {
	if m.legal != nil && !m.legal(e.source) {
		return true
	}
	for _, b := range m.builders {
		if b.intersectAny(e) {
			return true
		}
	}
	return false
}

// build runs every builder to completion and returns the surviving rivers in
// builder order.
func (m *multiBuilder) build() [][]Edge {
	work := &builderHeap{}
	for i, b := range m.builders {
		if b.buildInitialBranch(m) {
			heap.Push(work, queued{b: b, order: i, priority: b.priority()})
		}
	}
	for work.Len() > 0 {
		q := heap.Pop(work).(queued)
		if !q.b.buildBranch(m) {
			q.priority = q.b.priority()
			heap.Push(work, q)
		}
	}

	var rivers [][]Edge
	for _, b := range m.builders {
		if len(b.edges) == 0 {
			continue
		}
		out := make([]Edge, len(b.edges))
		for i, e := range b.edges {
			out[i] = Edge{Source: e.source.pos, Drain: e.drain.pos}
		}
		rivers = append(rivers, out)
	}
	return rivers
}

func (b *builder) priority() int { return len(b.edges) + 10*len(b.queue) }

type queued struct {
	b        *builder
	order    int
	priority int
}

// builderHeap is a max-heap on priority; ties go to the earlier builder.
type builderHeap []queued

func (h builderHeap) Len() int { return len(h) }
func (h builderHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].order < h[j].order
}
func (h builderHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *builderHeap) Push(x any)   { *h = append(*h, x.(queued)) }
func (h *builderHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
