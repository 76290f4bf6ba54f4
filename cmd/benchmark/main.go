// Command benchmark drives the routing engine the same way the original
// .que/.sol benchmark harness does: load a graph, optionally run a batch
// of queries or a single nearest-node lookup or one-to-all search, and
// report timing to stderr while keeping stdout byte-compatible with the
// .sol format.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/profile"

	"bikeroute/internal/config"
	"bikeroute/pkg/elevation"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/routing"
)

func main() {
	cfg, err := config.LoadBenchmark(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: parsing configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.GraphPath == "" {
		fmt.Fprintln(os.Stderr, "benchmark: -graph is required")
		os.Exit(1)
	}

	if cfg.Profile {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	start := time.Now()
	g, err := graph.Load(cfg.GraphPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: loading graph: %v\n", err)
		os.Exit(1)
	}

	dir := cfg.ElevationDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(cfg.GraphPath), "srtm")
	}
	store := elevation.NewStore(dir)
	if err := graph.AssignElevations(g, store, nil); err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: assigning elevations: %v\n", err)
		os.Exit(1)
	}
	graph.UpdateEdgeClimbs(g)

	if err := g.ValidateCSR(); err != nil {
		fmt.Fprintf(os.Stderr, "benchmark: invalid graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "loaded %d nodes, %d edges in %s\n",
		g.NumNodes(), g.NumEdges(), time.Since(start).Round(time.Millisecond))

	if cfg.ReportComponents {
		fmt.Fprintf(os.Stderr, "component sizes (largest first): %v\n", graph.ComponentSizes(g))
	}

	engine := routing.NewEngine(g)

	if cfg.HasLatLon {
		id := routing.Nearest(g, cfg.Lat, cfg.Lon)
		nd := g.Nodes[id]
		fmt.Printf("%g %g\n", nd.Lat, nd.Lon)
	}

	if cfg.QuePath != "" {
		if err := runQueries(engine, cfg.QuePath); err != nil {
			fmt.Fprintf(os.Stderr, "benchmark: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.Source >= 0 {
		t0 := time.Now()
		dist := engine.OneToAll(uint32(cfg.Source), cfg.Weight)
		fmt.Fprintf(os.Stderr, "one-to-all from %d at w=%g took %s\n",
			cfg.Source, cfg.Weight, time.Since(t0).Round(time.Millisecond))
		_ = dist
	}
}

// runQueries processes every "src tgt weight" line in path and writes one
// cost per line to stdout, -1 for unreachable — byte-compatible with the
// .sol format.
func runQueries(engine *routing.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening query file: %w", err)
	}
	defer f.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	t0 := time.Now()
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("malformed query line %q", line)
		}
		src, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fmt.Errorf("non-numeric source %q: %w", fields[0], err)
		}
		tgt, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("non-numeric target %q: %w", fields[1], err)
		}
		w, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("non-numeric weight %q: %w", fields[2], err)
		}

		dist := engine.OneToOne(uint32(src), uint32(tgt), w)
		fmt.Fprintln(out, dist)
		n++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "processed %d queries in %s\n", n, time.Since(t0).Round(time.Millisecond))
	return nil
}
