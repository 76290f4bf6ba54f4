// Package route wraps the Dijkstra engine to turn a user-facing slider
// value into a routing weight and a reconstructed path into a GeoJSON
// LineString with aggregate distance and climb.
package route

import (
	"math"

	"github.com/paulmach/orb"

	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

// sliderExponent spreads route variation over most of the slider range;
// without it the middle of the slider collapses onto the pure-distance
// solution because raw distance dwarfs raw climb in magnitude.
const sliderExponent = 0.7

// Result is the outcome of a single route request. Found is false when
// either endpoint is unreachable from the other; in that case the other
// fields are zero.
type Result struct {
	Found           bool
	Path            orb.LineString // (lon, lat) order, GeoJSON convention
	DistanceCm      int64
	ElevationGainCm int64
}

// Service answers route requests against one Graph using one reusable
// Dijkstra Engine. Like the Engine it wraps, a Service serves one query
// at a time.
type Service struct {
	g      *graph.Graph
	engine *routing.Engine
}

// NewService creates a Service over g.
func NewService(g *graph.Graph) *Service {
	return &Service{g: g, engine: routing.NewEngine(g)}
}

// Route computes the path from source to target for slider value
// sigma ∈ [0,1]. It first runs the two extreme searches (pure distance,
// pure climb) to learn the terrain's dynamic range, rescales sigma into
// a routing weight, then runs a third search at that weight and returns
// its path.
func (s *Service) Route(source, target uint32, sigma float64) Result {
	distPath, distOK := s.engine.WithPath(source, target, 1.0)
	if !distOK {
		return Result{}
	}
	climbPath, climbOK := s.engine.WithPath(source, target, 0.0)
	if !climbOK {
		return Result{}
	}

	dMax, gMax := pathExtent(s.g, distPath, climbPath)

	w := sigma
	if dMax != 0 && gMax != 0 {
		w = math.Pow(sigma, sliderExponent)
	}

	path, ok := s.engine.WithPath(source, target, w)
	if !ok {
		return Result{}
	}

	lengthCm, climbCm := routing.PathTotals(s.g, path)
	return Result{
		Found:           true,
		Path:            toLineString(s.g, path),
		DistanceCm:      lengthCm,
		ElevationGainCm: climbCm,
	}
}

// pathExtent returns the largest distance and largest climb observed
// across the two reference routes, the Dmax/Gmax of the slider remap.
func pathExtent(g *graph.Graph, distPath, climbPath []uint32) (dMax, gMax int64) {
	d1, g1 := routing.PathTotals(g, distPath)
	d2, g2 := routing.PathTotals(g, climbPath)
	dMax = max(d1, d2)
	gMax = max(g1, g2)
	return dMax, gMax
}

func toLineString(g *graph.Graph, path []uint32) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, n := range path {
		nd := g.Nodes[n]
		ls[i] = orb.Point{nd.Lon, nd.Lat}
	}
	return ls
}
