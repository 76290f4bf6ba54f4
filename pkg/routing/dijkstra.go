// Package routing implements the weighted single-source shortest-path
// search over a bikeroute/pkg/graph.Graph: one-to-one with early
// termination, one-to-all, and optional predecessor tracking for path
// reconstruction.
package routing

import (
	"fmt"
	"math"

	"bikeroute/pkg/cost"
	"bikeroute/pkg/graph"
)

// noNode marks the absence of a predecessor.
const noNode = math.MaxUint32

// Unreachable is the sentinel distance returned when no path exists.
const Unreachable = -1

// minHeap is a concrete-typed min-heap of immutable priority-queue
// entries, keyed by tentative cost. A newly improved tentative cost
// pushes a fresh entry rather than decreasing one in place; stale
// entries are discarded lazily at pop time by checking settled.
type minHeap struct {
	items []pqItem
}

type pqItem struct {
	node uint32
	dist int64
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) push(node uint32, dist int64) {
	h.items = append(h.items, pqItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) pop() pqItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *minHeap) reset() {
	h.items = h.items[:0]
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Engine owns the reusable work arrays for one weighted Dijkstra search.
// It serves one query at a time; running two queries concurrently on the
// same Engine is a programming error, not a runtime condition the Engine
// guards against.
type Engine struct {
	g *graph.Graph

	dist    []int64
	settled []bool
	pred    []uint32
	touched []uint32
	pq      minHeap
}

// NewEngine creates an Engine with work arrays sized for g's node count.
func NewEngine(g *graph.Graph) *Engine {
	n := g.NumNodes()
	e := &Engine{
		g:       g,
		dist:    make([]int64, n),
		settled: make([]bool, n),
		pred:    make([]uint32, n),
		touched: make([]uint32, 0, 1024),
		pq:      minHeap{items: make([]pqItem, 0, 256)},
	}
	for i := range e.dist {
		e.dist[i] = math.MaxInt64
		e.pred[i] = noNode
	}
	e.reinit()
	return e
}

func (e *Engine) reinit() {
	for _, node := range e.touched {
		e.dist[node] = math.MaxInt64
		e.settled[node] = false
		e.pred[node] = noNode
	}
	e.touched = e.touched[:0]
	e.pq.reset()
}

func (e *Engine) touch(node uint32, dist int64) {
	if e.dist[node] == math.MaxInt64 {
		e.touched = append(e.touched, node)
	}
	e.dist[node] = dist
}

func (e *Engine) checkID(id uint32, name string) {
	if int(id) >= e.g.NumNodes() {
		panic(fmt.Sprintf("routing: %s id %d out of range [0,%d)", name, id, e.g.NumNodes()))
	}
}

// OneToOne returns the minimum cost from source to target under weight w,
// terminating as soon as target is settled. Returns Unreachable if no
// path exists.
func (e *Engine) OneToOne(source, target uint32, w float64) int64 {
	e.checkID(source, "source")
	e.checkID(target, "target")
	e.reinit()
	e.relax(source, target, w, false)
	if e.dist[target] == math.MaxInt64 {
		return Unreachable
	}
	return e.dist[target]
}

// OneToAll runs Dijkstra to exhaustion from source under weight w and
// returns the per-node distance array (index by node id). Unreachable
// nodes hold math.MaxInt64; callers report that as Unreachable.
func (e *Engine) OneToAll(source uint32, w float64) []int64 {
	e.checkID(source, "source")
	e.reinit()
	e.relax(source, noNode, w, false)
	return e.dist
}

// WithPath runs a one-to-one search with predecessor tracking enabled
// and, if target is reachable, reconstructs the node sequence from
// source to target. ok is false when no path exists.
func (e *Engine) WithPath(source, target uint32, w float64) (path []uint32, ok bool) {
	e.checkID(source, "source")
	e.checkID(target, "target")
	e.reinit()
	e.relax(source, target, w, true)
	if e.dist[target] == math.MaxInt64 {
		return nil, false
	}
	return e.reconstruct(source, target), true
}

// relax runs the core loop: if target != noNode, stop as soon as it is
// settled (one-to-one); otherwise drain the queue (one-to-all).
func (e *Engine) relax(source, target uint32, w float64, trackPred bool) {
	e.touch(source, 0)
	e.pq.push(source, 0)

	for e.pq.Len() > 0 {
		item := e.pq.pop()
		u := item.node
		if e.settled[u] {
			continue
		}
		e.settled[u] = true
		if target != noNode && u == target {
			return
		}

		start, end := e.g.EdgesFrom(u)
		du := e.dist[u]
		for i := start; i < end; i++ {
			v := e.g.EdgeTarget[i]
			if e.settled[v] {
				continue
			}
			c := cost.Of(cost.Edge{LengthCm: e.g.LengthCm[i], ClimbCm: e.g.ClimbCm[i]}, w)
			nd := du + c
			if nd < e.dist[v] {
				e.touch(v, nd)
				if trackPred {
					e.pred[v] = u
				}
				e.pq.push(v, nd)
			}
		}
	}
}

func (e *Engine) reconstruct(source, target uint32) []uint32 {
	var rev []uint32
	for n := target; ; n = e.pred[n] {
		rev = append(rev, n)
		if n == source {
			break
		}
	}
	path := make([]uint32, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

// PathTotals sums the raw edge length and climb along path directly from
// the graph, independent of the weight used to find it.
func PathTotals(g *graph.Graph, path []uint32) (lengthCm, climbCm int64) {
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			if g.EdgeTarget[e] == v {
				lengthCm += int64(g.LengthCm[e])
				climbCm += int64(g.ClimbCm[e])
				break
			}
		}
	}
	return lengthCm, climbCm
}
