package graph

import (
	"os"
	"path/filepath"
	"testing"

	"bikeroute/pkg/elevation"
)

func TestUpdateEdgeClimbsTakesMaxWithZero(t *testing.T) {
	g := buildGraph(3, [][2]uint32{{0, 1}, {1, 2}, {2, 0}})
	g.Nodes[0].ElevCm = 10000
	g.Nodes[1].ElevCm = 15000 // uphill from 0: climb 5000
	g.Nodes[2].ElevCm = 9000  // downhill from 1: climb 0

	UpdateEdgeClimbs(g)

	start, _ := g.EdgesFrom(0)
	if g.ClimbCm[start] != 5000 {
		t.Errorf("climb(0->1) = %d, want 5000", g.ClimbCm[start])
	}
	start, _ = g.EdgesFrom(1)
	if g.ClimbCm[start] != 0 {
		t.Errorf("climb(1->2) = %d, want 0 (descent clamps to zero)", g.ClimbCm[start])
	}
	start, _ = g.EdgesFrom(2)
	if g.ClimbCm[start] != 1000 {
		t.Errorf("climb(2->0) = %d, want 1000", g.ClimbCm[start])
	}
}

func TestUpdateEdgeClimbsLeavesLengthUntouched(t *testing.T) {
	g := buildGraph(2, [][2]uint32{{0, 1}})
	start, _ := g.EdgesFrom(0)
	g.LengthCm[start] = 4242
	g.Nodes[1].ElevCm = 100

	UpdateEdgeClimbs(g)

	if g.LengthCm[start] != 4242 {
		t.Errorf("LengthCm changed: %d, want 4242", g.LengthCm[start])
	}
}

// writeFlatTile writes a complete SRTM .hgt tile of constant elevation so
// AssignElevations can be tested without a real dataset.
func writeFlatTile(t *testing.T, dir string, name string, heightM int16) {
	t.Helper()
	const gridSize = 3601
	raw := make([]byte, gridSize*gridSize*2)
	hi := byte(heightM >> 8)
	lo := byte(heightM)
	for i := 0; i < len(raw); i += 2 {
		raw[i] = hi
		raw[i+1] = lo
	}
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestAssignElevationsFromFlatTile(t *testing.T) {
	dir := t.TempDir()
	writeFlatTile(t, dir, "N48E008.hgt", 500)

	g := buildGraph(2, [][2]uint32{{0, 1}})
	g.Nodes[0] = Node{Lat: 48.1, Lon: 8.1}
	g.Nodes[1] = Node{Lat: 48.2, Lon: 8.2}

	store := elevation.NewStore(dir)
	var calls int
	err := AssignElevations(g, store, func(done, total int) { calls++ })
	if err != nil {
		t.Fatalf("AssignElevations: %v", err)
	}
	if calls != 2 {
		t.Errorf("progress called %d times, want 2", calls)
	}
	for i, nd := range g.Nodes {
		if nd.ElevCm != 50000 {
			t.Errorf("node %d ElevCm = %d, want 50000", i, nd.ElevCm)
		}
	}
}

func TestAssignElevationsMissingTile(t *testing.T) {
	dir := t.TempDir()
	g := buildGraph(1, nil)
	g.Nodes[0] = Node{Lat: 48.1, Lon: 8.1}

	store := elevation.NewStore(dir)
	if err := AssignElevations(g, store, nil); err == nil {
		t.Fatal("expected error for missing tile")
	}
}
