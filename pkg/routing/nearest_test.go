package routing

import (
	"testing"

	"bikeroute/pkg/graph"
)

func nodesGraph(coords [][2]float64) *graph.Graph {
	g := graph.New(len(coords), 0)
	for i, c := range coords {
		g.Nodes[i] = graph.Node{Lat: c[0], Lon: c[1]}
	}
	for i := range g.Offsets {
		g.Offsets[i] = 0
	}
	return g
}

func TestNearestPicksClosest(t *testing.T) {
	g := nodesGraph([][2]float64{
		{48.0, 8.0},
		{49.0, 9.0},
		{48.5, 8.5},
	})
	got := Nearest(g, 48.4, 8.4)
	if got != 2 {
		t.Errorf("Nearest = %d, want 2", got)
	}
}

func TestNearestBreaksTiesByLowestID(t *testing.T) {
	g := nodesGraph([][2]float64{
		{48.0, 8.0},
		{48.0, 8.0}, // exact duplicate — same distance as node 0
	})
	got := Nearest(g, 48.0, 8.0)
	if got != 0 {
		t.Errorf("Nearest tie = %d, want 0 (lowest id)", got)
	}
}

func TestNearestSingleNode(t *testing.T) {
	g := nodesGraph([][2]float64{{1.0, 2.0}})
	if got := Nearest(g, 99.0, 99.0); got != 0 {
		t.Errorf("Nearest single node = %d, want 0", got)
	}
}
