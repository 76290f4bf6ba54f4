package elevation

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ErrTileNotFound is returned when a required .hgt tile is missing from the
// configured directory. Failure to resolve a tile is fatal to the caller —
// there is no fallback elevation.
type ErrTileNotFound struct {
	Path string
}

func (e *ErrTileNotFound) Error() string {
	return fmt.Sprintf("elevation: tile not found: %s", e.Path)
}

// Store resolves (lat, lon) to a height in centimeters using SRTM tiles
// read from a configured directory. Tiles are cached with no eviction once
// touched; once loaded, a tile is never mutated.
type Store struct {
	dir   string
	cache map[key]*tile
}

// NewStore creates a Store reading tiles from dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[key]*tile),
	}
}

// CachedTiles reports how many distinct tiles have been loaded so far.
func (s *Store) CachedTiles() int {
	return len(s.cache)
}

func tileKeyFor(lat, lon float64) key {
	return key{lat: int(math.Floor(lat)), lon: int(math.Floor(lon))}
}

func (s *Store) loadTile(k key) (*tile, error) {
	if t, ok := s.cache[k]; ok {
		return t, nil
	}
	path := filepath.Join(s.dir, k.filename())
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrTileNotFound{Path: path}
		}
		return nil, fmt.Errorf("elevation: read %s: %w", path, err)
	}
	t, err := decodeTile(raw)
	if err != nil {
		return nil, fmt.Errorf("elevation: %s: %w", path, err)
	}
	s.cache[k] = t
	return t, nil
}

// ElevationCm returns the interpolated elevation at (lat, lon) in
// centimeters, rounded half-away-from-zero from the meter-valued
// interpolation result.
func (s *Store) ElevationCm(lat, lon float64) (int32, error) {
	k := tileKeyFor(lat, lon)
	t, err := s.loadTile(k)
	if err != nil {
		return 0, err
	}

	frLat := lat - float64(k.lat)
	frLon := lon - float64(k.lon)

	row := (1 - frLat) * float64(gridSize-1)
	col := frLon * float64(gridSize-1)

	r0 := int(math.Floor(row))
	c0 := int(math.Floor(col))
	r1 := min(r0+1, gridSize-1)
	c1 := min(c0+1, gridSize-1)

	rf := row - float64(r0)
	cf := col - float64(c0)

	h00 := float64(t.at(r0, c0))
	h01 := float64(t.at(r0, c1))
	h10 := float64(t.at(r1, c0))
	h11 := float64(t.at(r1, c1))

	var elevM float64
	if rf+cf <= 1 {
		elevM = (1-rf-cf)*h00 + cf*h01 + rf*h10
	} else {
		elevM = (rf+cf-1)*h11 + (1-rf)*h01 + (1-cf)*h10
	}

	return int32(roundHalfAwayFromZero(elevM * 100)), nil
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return math.Ceil(x - 0.5)
}
