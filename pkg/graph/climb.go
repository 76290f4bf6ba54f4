package graph

import "bikeroute/pkg/elevation"

// AssignElevations sets every node's elevation from store, in id order.
// Must run after Load and before UpdateEdgeClimbs. progress, if non-nil,
// is called after every node (useful for logging every Nth node).
func AssignElevations(g *Graph, store *elevation.Store, progress func(done, total int)) error {
	total := len(g.Nodes)
	for i := range g.Nodes {
		elevCm, err := store.ElevationCm(g.Nodes[i].Lat, g.Nodes[i].Lon)
		if err != nil {
			return err
		}
		g.Nodes[i].ElevCm = elevCm
		if progress != nil {
			progress(i+1, total)
		}
	}
	return nil
}

// UpdateEdgeClimbs recomputes every edge's climb as max(0, elev(target) -
// elev(source)) now that node elevations are known. Edge length is left
// untouched.
func UpdateEdgeClimbs(g *Graph) {
	for u := uint32(0); u < uint32(g.NumNodes()); u++ {
		srcElev := g.Nodes[u].ElevCm
		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			tgtElev := g.Nodes[g.EdgeTarget[e]].ElevCm
			diff := int64(tgtElev) - int64(srcElev)
			if diff < 0 {
				diff = 0
			}
			g.ClimbCm[e] = uint32(diff)
		}
	}
}
