package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"bikeroute/pkg/geo"
	"bikeroute/pkg/graph"
	"bikeroute/pkg/route"
	"bikeroute/pkg/routing"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handlers holds the HTTP handlers and their shared dependencies. The Graph
// is read-only and shared freely; route.Service's underlying Dijkstra engine
// is not safe for concurrent queries, so HandleRoute admits one route
// computation at a time through a single-slot semaphore and answers a
// request that arrives while another is running with 503.
type Handlers struct {
	g        *graph.Graph
	routeSvc *route.Service
	log      *zap.Logger
	queryMu  chan struct{}
}

// NewHandlers creates handlers backed by g. Because route.Service owns one
// reusable Dijkstra engine, at most one route computation runs at a time.
func NewHandlers(g *graph.Graph, routeSvc *route.Service, log *zap.Logger) *Handlers {
	return &Handlers{
		g:        g,
		routeSvc: routeSvc,
		log:      log,
		queryMu:  make(chan struct{}, 1),
	}
}

// HandleNearest handles GET /nearest?lat=F&lon=F.
func (h *Handlers) HandleNearest(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}
	q := NearestQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	id := routing.Nearest(h.g, lat, lon)
	nd := h.g.Nodes[id]
	writeJSON(w, http.StatusOK, NearestResponse{NodeID: id, Lat: nd.Lat, Lon: nd.Lon})
}

// HandleRoute handles GET /route?from=I&to=I&slider=F.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	from, err := parseNodeIDParam(r, "from", h.g.NumNodes())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseNodeIDParam(r, "to", h.g.NumNodes())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slider, err := parseFloatParam(r, "slider")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slider parameter")
		return
	}
	if err := validate.Struct(RouteQuery{Slider: slider}); err != nil {
		writeError(w, http.StatusBadRequest, "slider must be in [0,1]")
		return
	}

	select {
	case h.queryMu <- struct{}{}:
		defer func() { <-h.queryMu }()
	default:
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "routing engine busy")
		return
	}

	result := h.routeSvc.Route(from, to, slider)
	if !result.Found {
		writeError(w, http.StatusNotFound, "no route between the given nodes")
		return
	}

	writeJSON(w, http.StatusOK, RouteResponse{
		DistanceCm:      result.DistanceCm,
		ElevationGainCm: result.ElevationGainCm,
		GeoJSON:         geojson.NewGeometry(result.Path),
	})
}

// HandleBounds handles GET /bounds.
func (h *Handlers) HandleBounds(w http.ResponseWriter, r *http.Request) {
	minLat, maxLat, minLon, maxLon, centerLat, centerLon, ok := h.g.Bounds()
	if !ok {
		writeError(w, http.StatusInternalServerError, "graph has no nodes")
		return
	}
	writeJSON(w, http.StatusOK, BoundsResponse{
		MinLat:     minLat,
		MaxLat:     maxLat,
		MinLon:     minLon,
		MaxLon:     maxLon,
		CenterLat:  centerLat,
		CenterLon:  centerLon,
		NodeCount:  h.g.NumNodes(),
		DiagonalKm: geo.Haversine(minLat, minLon, maxLat, maxLon) / 1000,
	})
}

// HandleHealthz handles GET /healthz.
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(name), 64)
}

func parseNodeIDParam(r *http.Request, name string, numNodes int) (uint32, error) {
	v, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return 0, errInvalidParam(name)
	}
	if int(v) >= numNodes {
		return 0, errInvalidParam(name)
	}
	return uint32(v), nil
}

func errInvalidParam(name string) error {
	return &paramError{name}
}

type paramError struct{ name string }

func (e *paramError) Error() string { return "invalid or out-of-range " + e.name + " parameter" }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
