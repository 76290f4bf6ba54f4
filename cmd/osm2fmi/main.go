// Command osm2fmi converts an OSM PBF extract into the .fmi graph text
// format the server and benchmark load, filtering ways down to the
// bicycle-accessible road network and assigning dense node ids.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	gosm "github.com/paulmach/osm"

	"bikeroute/pkg/osm"
)

func main() {
	inPath := flag.String("in", "", "path to the input .osm.pbf file (required)")
	outPath := flag.String("out", "", "path to the output .fmi file (required)")
	minLat := flag.Float64("min-lat", 0, "bounding box: minimum latitude")
	maxLat := flag.Float64("max-lat", 0, "bounding box: maximum latitude")
	minLon := flag.Float64("min-lon", 0, "bounding box: minimum longitude")
	maxLon := flag.Float64("max-lon", 0, "bounding box: maximum longitude")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "osm2fmi: -in and -out are required")
		os.Exit(1)
	}

	in, err := os.Open(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "osm2fmi: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	var opts []osm.ParseOptions
	bbox := osm.BBox{MinLat: *minLat, MaxLat: *maxLat, MinLng: *minLon, MaxLng: *maxLon}
	if !bbox.IsZero() {
		opts = append(opts, osm.ParseOptions{BBox: bbox})
	}

	result, err := osm.Parse(context.Background(), in, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "osm2fmi: parsing: %v\n", err)
		os.Exit(1)
	}

	if err := writeFmi(*outPath, result); err != nil {
		fmt.Fprintf(os.Stderr, "osm2fmi: writing output: %v\n", err)
		os.Exit(1)
	}
}

// writeFmi assigns every OSM node referenced by an edge a dense id in
// [0, N) and writes the .fmi text format: node count, edge count, N node
// lines, then M edge lines sorted by source id.
func writeFmi(path string, result *osm.ParseResult) error {
	osmIDs := make([]gosm.NodeID, 0, len(result.NodeLat))
	for id := range result.NodeLat {
		osmIDs = append(osmIDs, id)
	}
	sort.Slice(osmIDs, func(i, j int) bool { return osmIDs[i] < osmIDs[j] })

	denseID := make(map[gosm.NodeID]int, len(osmIDs))
	for i, id := range osmIDs {
		denseID[id] = i
	}

	type edge struct {
		src, tgt int
		lengthCm uint32
	}
	edges := make([]edge, 0, len(result.Edges))
	for _, e := range result.Edges {
		edges = append(edges, edge{
			src:      denseID[e.FromNodeID],
			tgt:      denseID[e.ToNodeID],
			lengthCm: e.LengthCm,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].src != edges[j].src {
			return edges[i].src < edges[j].src
		}
		return edges[i].tgt < edges[j].tgt
	})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	fmt.Fprintln(w, len(osmIDs))
	fmt.Fprintln(w, len(edges))
	for i, osmID := range osmIDs {
		fmt.Fprintf(w, "%d %d %.7f %.7f 0\n", i, osmID, result.NodeLat[osmID], result.NodeLon[osmID])
	}
	for _, e := range edges {
		fmt.Fprintf(w, "%d %d %d 0\n", e.src, e.tgt, e.lengthCm)
	}
	return w.Flush()
}
