package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"bikeroute/internal/config"
	"bikeroute/pkg/api"
	"bikeroute/pkg/elevation"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/route"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		log.Fatal("parsing configuration", zap.Error(err))
	}

	elevDir := cfg.ElevationDir
	if elevDir == "" {
		elevDir = filepath.Join(filepath.Dir(cfg.GraphPath), "srtm")
	}

	start := time.Now()

	log.Info("loading graph", zap.String("path", cfg.GraphPath))
	g, err := graph.Load(cfg.GraphPath)
	if err != nil {
		log.Fatal("loading graph", zap.Error(err))
	}
	log.Info("loaded graph", zap.Int("nodes", g.NumNodes()), zap.Int("edges", g.NumEdges()))

	store := elevation.NewStore(elevDir)
	log.Info("assigning node elevations", zap.String("tileDir", elevDir))
	logEvery := max(g.NumNodes()/20, 1)
	if err := graph.AssignElevations(g, store, func(done, total int) {
		if done%logEvery == 0 || done == total {
			log.Info("elevation progress", zap.Int("done", done), zap.Int("total", total))
		}
	}); err != nil {
		log.Fatal("assigning elevations", zap.Error(err))
	}
	graph.UpdateEdgeClimbs(g)

	if err := g.ValidateCSR(); err != nil {
		log.Fatal("graph failed validation", zap.Error(err))
	}
	if sizes := graph.ComponentSizes(g); len(sizes) > 1 {
		log.Warn("graph is not strongly connected", zap.Uint32s("componentSizes", sizes))
	}

	loadTime := time.Since(start)
	log.Info("ready", zap.Duration("loadTime", loadTime), zap.Int("cachedTiles", store.CachedTiles()))

	routeSvc := route.NewService(g)
	handlers := api.NewHandlers(g, routeSvc, log)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srvCfg := api.DefaultConfig(addr)
	srvCfg.CORSOrigin = cfg.CORSOrigin
	srv := api.NewServer(srvCfg, handlers, log)

	if err := api.ListenAndServe(srv, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
