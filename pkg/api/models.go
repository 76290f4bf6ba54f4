package api

import "github.com/paulmach/orb/geojson"

// NearestQuery is the validated query string for GET /nearest.
type NearestQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// NearestResponse is the JSON response for GET /nearest.
type NearestResponse struct {
	NodeID uint32  `json:"nodeId"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// RouteQuery is the validated query string for GET /route. From and To are
// checked for presence separately — "required" on an unsigned field would
// reject the legitimate node id 0.
type RouteQuery struct {
	Slider float64 `validate:"gte=0,lte=1"`
}

// RouteResponse is the JSON response for a successful GET /route.
type RouteResponse struct {
	DistanceCm      int64            `json:"distanceCm"`
	ElevationGainCm int64            `json:"elevationGainCm"`
	GeoJSON         *geojson.Geometry `json:"geojson"`
}

// BoundsResponse is the JSON response for GET /bounds.
type BoundsResponse struct {
	MinLat     float64 `json:"minLat"`
	MaxLat     float64 `json:"maxLat"`
	MinLon     float64 `json:"minLon"`
	MaxLon     float64 `json:"maxLon"`
	CenterLat  float64 `json:"centerLat"`
	CenterLon  float64 `json:"centerLon"`
	NodeCount  int     `json:"nodeCount"`
	DiagonalKm float64 `json:"diagonalKm"`
}

// HealthResponse is the JSON response for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the JSON response for any 4xx/5xx error.
type ErrorResponse struct {
	Error string `json:"error"`
}
