// Package exposure computes spatial sun-exposure grids: a geographic area is
// discretized into cells and each cell stores its average daily sun hours
// across representative sample days, accounting for obstacle shadows.
// Computation strategies are pluggable; all of them work on pure inputs and
// a single flat output buffer.
package exposure

import (
	"math"
	"time"

	"github.com/verdantlabs/sunfield/pkg/geo"
)

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

// Center returns the midpoint of the box.
func (b Bounds) Center() geo.Coordinates {
	return geo.Coordinates{
		Latitude:  (b.MinLat + b.MaxLat) / 2,
		Longitude: (b.MinLon + b.MaxLon) / 2,
	}
}

// Config controls grid resolution and temporal sampling.
type Config struct {
	ResolutionM float64       // meters per cell
	SampleDays  int           // representative days across the date range
	Interval    time.Duration // intra-day sampling interval
	ChunkSize   int           // cells between progress/cancellation checks
}

// DefaultConfig matches the engine defaults: 5 m cells, 12 sample days,
// 15-minute intra-day sampling, 64-cell chunks.
func DefaultConfig() Config {
	return Config{
		ResolutionM: 5,
		SampleDays:  12,
		Interval:    15 * time.Minute,
		ChunkSize:   64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ResolutionM <= 0 {
		c.ResolutionM = d.ResolutionM
	}
	if c.SampleDays <= 0 {
		c.SampleDays = d.SampleDays
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = d.ChunkSize
	}
	return c
}

// Grid holds per-cell average sun hours over an area. Values is a single
// flat buffer indexed row*Width+col; rows run south to north, columns west
// to east.
type Grid struct {
	Bounds      Bounds        `json:"bounds"`
	ResolutionM float64       `json:"resolution"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Values      []float64     `json:"values"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	SampleDays  int           `json:"sampleDays"` // days actually sampled, after duplicate merging
	ComputeTime time.Duration `json:"computeTime"`
}

// newGrid allocates a grid sized from the physical extent of the bounds.
// Both dimensions are at least 1.
func newGrid(b Bounds, cfg Config, start, end time.Time) *Grid {
	heightM := (b.MaxLat - b.MinLat) * geo.MetersPerDegreeLat
	widthM := (b.MaxLon - b.MinLon) * geo.MetersPerDegreeLon(b.Center().Latitude)

	w := int(math.Round(widthM / cfg.ResolutionM))
	h := int(math.Round(heightM / cfg.ResolutionM))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return &Grid{
		Bounds:      b,
		ResolutionM: cfg.ResolutionM,
		Width:       w,
		Height:      h,
		Values:      make([]float64, w*h),
		Start:       start,
		End:         end,
	}
}

// At returns the value at (row, col) and whether the indices are in range.
// Row 0 is the southernmost row, column 0 the westernmost column.
func (g *Grid) At(row, col int) (float64, bool) {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		return 0, false
	}
	return g.Values[row*g.Width+col], true
}

// CellCenter returns the geographic center of cell (row, col).
func (g *Grid) CellCenter(row, col int) geo.Coordinates {
	latStep := (g.Bounds.MaxLat - g.Bounds.MinLat) / float64(g.Height)
	lonStep := (g.Bounds.MaxLon - g.Bounds.MinLon) / float64(g.Width)
	return geo.Coordinates{
		Latitude:  g.Bounds.MinLat + (float64(row)+0.5)*latStep,
		Longitude: g.Bounds.MinLon + (float64(col)+0.5)*lonStep,
	}
}

// Nearest returns the value of the cell whose center is closest to the given
// coordinates, clamping points outside the bounds onto the edge cells.
func (g *Grid) Nearest(lat, lon float64) float64 {
	latStep := (g.Bounds.MaxLat - g.Bounds.MinLat) / float64(g.Height)
	lonStep := (g.Bounds.MaxLon - g.Bounds.MinLon) / float64(g.Width)

	row, col := 0, 0
	if latStep > 0 {
		row = int((lat - g.Bounds.MinLat) / latStep)
	}
	if lonStep > 0 {
		col = int((lon - g.Bounds.MinLon) / lonStep)
	}
	row = int(geo.Clamp(float64(row), 0, float64(g.Height-1)))
	col = int(geo.Clamp(float64(col), 0, float64(g.Width-1)))
	return g.Values[row*g.Width+col]
}
