// Package graph holds the frozen, in-memory road network: a compact
// adjacency-array (CSR) representation sized once from a declared node and
// edge count, populated by a Loader, and never mutated after the edge
// climbs are backfilled.
package graph

import "fmt"

// Node is a dense-id graph vertex: geographic position plus an elevation
// that starts at zero and is set exactly once during startup.
type Node struct {
	Lat, Lon float64
	ElevCm   int32
}

// Graph is the adjacency-array representation queried by every search
// algorithm. Edges are grouped contiguously by source node id, in the
// order they appeared in the input.
type Graph struct {
	Nodes []Node

	// Parallel edge arrays, length NumEdges.
	EdgeTarget []uint32
	LengthCm   []uint32
	ClimbCm    []uint32

	// Offsets[i]..Offsets[i+1] bounds the outgoing edges of node i.
	// len(Offsets) == NumNodes+1, Offsets[0] == 0, Offsets[NumNodes] == NumEdges.
	Offsets []uint32
}

// New allocates a Graph sized for exactly n nodes and m edges, so callers
// can populate it without per-edge reallocation.
func New(n, m int) *Graph {
	return &Graph{
		Nodes:      make([]Node, n),
		EdgeTarget: make([]uint32, m),
		LengthCm:   make([]uint32, m),
		ClimbCm:    make([]uint32, m),
		Offsets:    make([]uint32, n+1),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the number of directed edges in the graph.
func (g *Graph) NumEdges() int { return len(g.EdgeTarget) }

// EdgesFrom returns the half-open range of edge indices for node u's
// outgoing edges.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.Offsets[u], g.Offsets[u+1]
}

// ValidateCSR checks the structural invariants every Graph must satisfy:
// monotone offsets bounded by [0, NumEdges], and every edge target inside
// [0, NumNodes).
func (g *Graph) ValidateCSR() error {
	n := uint32(g.NumNodes())
	m := uint32(g.NumEdges())
	if len(g.Offsets) != int(n)+1 {
		return fmt.Errorf("graph: len(Offsets)=%d, want %d", len(g.Offsets), n+1)
	}
	if g.Offsets[0] != 0 {
		return fmt.Errorf("graph: Offsets[0]=%d, want 0", g.Offsets[0])
	}
	if g.Offsets[n] != m {
		return fmt.Errorf("graph: Offsets[N]=%d, want NumEdges=%d", g.Offsets[n], m)
	}
	for i := uint32(1); i <= n; i++ {
		if g.Offsets[i] < g.Offsets[i-1] {
			return fmt.Errorf("graph: Offsets not monotone at %d: %d < %d", i, g.Offsets[i], g.Offsets[i-1])
		}
	}
	for i, t := range g.EdgeTarget {
		if t >= n {
			return fmt.Errorf("graph: edge %d target %d out of range [0,%d)", i, t, n)
		}
	}
	return nil
}

// Bounds returns the bounding box and centroid of every node in the graph.
// Returns ok=false for an empty graph.
func (g *Graph) Bounds() (minLat, maxLat, minLon, maxLon, centerLat, centerLon float64, ok bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, 0, 0, 0, 0, false
	}
	minLat, maxLat = g.Nodes[0].Lat, g.Nodes[0].Lat
	minLon, maxLon = g.Nodes[0].Lon, g.Nodes[0].Lon
	for _, nd := range g.Nodes[1:] {
		if nd.Lat < minLat {
			minLat = nd.Lat
		}
		if nd.Lat > maxLat {
			maxLat = nd.Lat
		}
		if nd.Lon < minLon {
			minLon = nd.Lon
		}
		if nd.Lon > maxLon {
			maxLon = nd.Lon
		}
	}
	return minLat, maxLat, minLon, maxLon, (minLat + maxLat) / 2, (minLon + maxLon) / 2, true
}
