package routing

import (
	"testing"

	"bikeroute/pkg/graph"
)

// lineGraph builds a directed path graph 0->1->2->...->n-1 with given
// per-edge (length, climb) pairs. Only the forward edges are added.
func lineGraph(lengths, climbs []uint32) *graph.Graph {
	n := len(lengths) + 1
	g := graph.New(n, len(lengths))
	for u := 0; u < n; u++ {
		g.Offsets[u] = uint32(u)
		if u < len(lengths) {
			g.EdgeTarget[u] = uint32(u + 1)
			g.LengthCm[u] = lengths[u]
			g.ClimbCm[u] = climbs[u]
		}
	}
	g.Offsets[n] = uint32(len(lengths))
	for i := range g.Nodes {
		g.Nodes[i] = graph.Node{Lat: float64(i), Lon: float64(i)}
	}
	return g
}

func TestOneToOneSimplePath(t *testing.T) {
	g := lineGraph([]uint32{100, 200, 300}, []uint32{10, 20, 30})
	e := NewEngine(g)

	got := e.OneToOne(0, 3, 1.0) // pure distance
	if got != 600 {
		t.Errorf("OneToOne(w=1.0) = %d, want 600", got)
	}

	got = e.OneToOne(0, 3, 0.0) // pure climb
	if got != 60 {
		t.Errorf("OneToOne(w=0.0) = %d, want 60", got)
	}
}

func TestOneToOneUnreachable(t *testing.T) {
	g := graph.New(2, 0)
	g.Offsets = []uint32{0, 0, 0}
	e := NewEngine(g)
	if got := e.OneToOne(0, 1, 1.0); got != Unreachable {
		t.Errorf("OneToOne unreachable = %d, want %d", got, Unreachable)
	}
}

func TestOneToOneSameNode(t *testing.T) {
	g := lineGraph([]uint32{100}, []uint32{10})
	e := NewEngine(g)
	if got := e.OneToOne(0, 0, 1.0); got != 0 {
		t.Errorf("OneToOne(same node) = %d, want 0", got)
	}
}

func TestOneToAllReachesEveryNode(t *testing.T) {
	g := lineGraph([]uint32{100, 200, 300}, []uint32{0, 0, 0})
	e := NewEngine(g)
	dist := e.OneToAll(0, 1.0)

	want := []int64{0, 100, 300, 600}
	for i, w := range want {
		if dist[i] != w {
			t.Errorf("dist[%d] = %d, want %d", i, dist[i], w)
		}
	}
}

func TestEngineReusableAcrossCalls(t *testing.T) {
	g := lineGraph([]uint32{100, 200}, []uint32{0, 0})
	e := NewEngine(g)

	if got := e.OneToOne(0, 2, 1.0); got != 300 {
		t.Fatalf("first call = %d, want 300", got)
	}
	// Second call on the same Engine must not be polluted by the first.
	if got := e.OneToOne(1, 2, 1.0); got != 200 {
		t.Fatalf("second call = %d, want 200", got)
	}
}

func TestWithPathReconstructsNodeSequence(t *testing.T) {
	g := lineGraph([]uint32{100, 200, 300}, []uint32{0, 0, 0})
	e := NewEngine(g)

	path, ok := e.WithPath(0, 3, 1.0)
	if !ok {
		t.Fatal("expected a path")
	}
	want := []uint32{0, 1, 2, 3}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %d, want %d", i, path[i], want[i])
		}
	}
}

func TestWithPathUnreachable(t *testing.T) {
	g := graph.New(2, 0)
	g.Offsets = []uint32{0, 0, 0}
	e := NewEngine(g)
	if _, ok := e.WithPath(0, 1, 1.0); ok {
		t.Error("expected ok=false for unreachable target")
	}
}

func TestPathTotalsIndependentOfWeight(t *testing.T) {
	g := lineGraph([]uint32{1500, 2500}, []uint32{400, 100})
	e := NewEngine(g)

	path, ok := e.WithPath(0, 2, 0.3)
	if !ok {
		t.Fatal("expected a path")
	}
	lengthCm, climbCm := PathTotals(g, path)
	if lengthCm != 4000 {
		t.Errorf("lengthCm = %d, want 4000", lengthCm)
	}
	if climbCm != 500 {
		t.Errorf("climbCm = %d, want 500", climbCm)
	}
}

func TestOneToOneSymmetryOnMatchingReverseEdges(t *testing.T) {
	// u->v and v->u exist with identical length and identical absolute
	// elevation difference; at w=1.0 (pure distance) dist(u,v) must equal
	// dist(v,u), since neither direction's cost depends on climb.
	n := 3
	g := graph.New(n, 6)
	g.Offsets = []uint32{0, 2, 4, 6}
	g.EdgeTarget = []uint32{1, 2, 0, 2, 0, 1}
	g.LengthCm = []uint32{1000, 2000, 1000, 1500, 2000, 1500}
	g.ClimbCm = []uint32{50, 0, 50, 0, 0, 0}
	g.Nodes = make([]graph.Node, n)

	e := NewEngine(g)
	fwd := e.OneToOne(0, 2, 1.0)
	bwd := e.OneToOne(2, 0, 1.0)
	if fwd != bwd {
		t.Errorf("dist(0,2)=%d, dist(2,0)=%d, want equal at w=1.0", fwd, bwd)
	}
}

func TestOneToAllConsistentWithOneToOne(t *testing.T) {
	n := 3
	g := graph.New(n, 3)
	g.Offsets = []uint32{0, 2, 3, 3}
	g.EdgeTarget = []uint32{1, 2, 2}
	g.LengthCm = []uint32{100, 1000, 100}
	g.ClimbCm = []uint32{500, 0, 500}
	g.Nodes = make([]graph.Node, n)

	for _, w := range []float64{0.0, 0.3, 1.0} {
		e := NewEngine(g)
		// OneToAll returns the engine's own work array, which the OneToOne
		// calls below overwrite, so keep a copy.
		all := append([]int64(nil), e.OneToAll(0, w)...)
		for t_ := 0; t_ < n; t_++ {
			one := e.OneToOne(0, uint32(t_), w)
			if all[t_] != one {
				t.Errorf("w=%g: OneToAll(0)[%d]=%d, OneToOne(0,%d)=%d, want equal", w, t_, all[t_], t_, one)
			}
		}
	}
}

func TestTieBreakingDeterministicAcrossRepeatedRuns(t *testing.T) {
	// Diamond graph: 0->1->3 and 0->2->3, both paths cost 200.
	n := 4
	g := graph.New(n, 4)
	g.Offsets = []uint32{0, 2, 3, 4, 4}
	g.EdgeTarget = []uint32{1, 2, 3, 3}
	g.LengthCm = []uint32{100, 100, 100, 100}
	g.ClimbCm = []uint32{0, 0, 0, 0}
	g.Nodes = make([]graph.Node, n)

	var first []uint32
	for i := 0; i < 5; i++ {
		e := NewEngine(g)
		dist := e.OneToOne(0, 3, 1.0)
		if dist != 200 {
			t.Fatalf("run %d: dist = %d, want 200", i, dist)
		}
		path, ok := e.WithPath(0, 3, 1.0)
		if !ok {
			t.Fatalf("run %d: expected a path", i)
		}
		if first == nil {
			first = path
			continue
		}
		if len(path) != len(first) {
			t.Fatalf("run %d: path = %v, want %v", i, path, first)
		}
		for j := range first {
			if path[j] != first[j] {
				t.Errorf("run %d: path[%d] = %d, want %d (non-deterministic tie-break)", i, j, path[j], first[j])
			}
		}
	}
}

func TestOneToOneWeightAffectsChosenPath(t *testing.T) {
	// Two parallel routes from 0 to 2: direct edge 0->2 is long but flat,
	// via 1 is short but climbs a lot. Weight should flip which wins.
	n := 3
	g := graph.New(n, 3)
	// Sort edges by source: node 0 has two outgoing edges (to 1, to 2); node 1 has one (to 2).
	g.Offsets = []uint32{0, 2, 3, 3}
	g.EdgeTarget = []uint32{1, 2, 2}
	g.LengthCm = []uint32{100, 1000, 100}
	g.ClimbCm = []uint32{500, 0, 500}
	g.Nodes = make([]graph.Node, n)

	e := NewEngine(g)
	distAtW1 := e.OneToOne(0, 2, 1.0) // pure distance favors via-1 (100+100=200 < 1000)
	if distAtW1 != 200 {
		t.Errorf("w=1.0: dist = %d, want 200", distAtW1)
	}
	distAtW0 := e.OneToOne(0, 2, 0.0) // pure climb favors direct (0 < 500+500=1000)
	if distAtW0 != 0 {
		t.Errorf("w=0.0: dist = %d, want 0", distAtW0)
	}
}
