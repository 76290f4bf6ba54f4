package routing

import (
	"math"

	"bikeroute/pkg/graph"
)

// Nearest scans every node in g and returns the id of the one closest to
// (lat, lon), comparing squared Euclidean distance in the latitude-
// longitude plane. No great-circle correction is applied — at node
// spacings of tens of meters the distortion is immaterial. Ties are
// broken by lowest id, which the left-to-right scan gives for free since
// a later candidate only replaces the best on a strictly smaller
// distance.
func Nearest(g *graph.Graph, lat, lon float64) uint32 {
	best := uint32(0)
	bestD := math.MaxFloat64
	for i, nd := range g.Nodes {
		dLat := nd.Lat - lat
		dLon := nd.Lon - lon
		d := dLat*dLat + dLon*dLon
		if d < bestD {
			bestD = d
			best = uint32(i)
		}
	}
	return best
}
