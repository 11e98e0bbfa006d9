package config

import (
	"fmt"

	"github.com/verdantlabs/sunfield/pkg/geo"
	"github.com/verdantlabs/sunfield/pkg/shade"
	"github.com/verdantlabs/sunfield/pkg/slope"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSite() (*SiteData, error)
	GetObstacles() ([]ObstacleData, error)
	GetHTTP() (*HTTPData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Site      SiteData       `json:"site"`
	Obstacles []ObstacleData `json:"obstacles,omitempty"`
	Sampling  SamplingData   `json:"sampling,omitempty"`
	Grid      GridData       `json:"grid,omitempty"`
	HTTP      *HTTPData      `json:"http,omitempty"`
}

// SiteData describes the observation site: where it is and how the ground
// is tilted.
type SiteData struct {
	Name        string  `json:"name,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	SlopeAngle  float64 `json:"slope_angle,omitempty"`
	SlopeAspect float64 `json:"slope_aspect,omitempty"`
}

// Coordinates returns the site location as a geo type.
func (s *SiteData) Coordinates() geo.Coordinates {
	return geo.Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Slope returns the site terrain tilt.
func (s *SiteData) Slope() slope.Slope {
	return slope.Slope{AngleDeg: s.SlopeAngle, AspectDeg: s.SlopeAspect}
}

// Validate checks that the site describes a real place.
func (s *SiteData) Validate() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", s.Latitude)
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", s.Longitude)
	}
	if s.SlopeAngle < 0 || s.SlopeAngle > 90 {
		return fmt.Errorf("slope angle %v out of range [0, 90]", s.SlopeAngle)
	}
	return nil
}

// ObstacleData holds the configuration for a single shading structure
// around the site.
type ObstacleData struct {
	ID        string  `json:"id,omitempty"`
	Shape     string  `json:"shape"`
	Direction float64 `json:"direction"`
	Distance  float64 `json:"distance"`
	Height    float64 `json:"height"`
	Width     float64 `json:"width"`
}

// ToObstacle converts the configuration entry into an engine obstacle.
func (o *ObstacleData) ToObstacle() (shade.Obstacle, error) {
	shape := shade.ShapeType(o.Shape)
	if !shape.Valid() {
		return shade.Obstacle{}, fmt.Errorf("unknown obstacle shape %q", o.Shape)
	}
	if o.Distance <= 0 {
		return shade.Obstacle{}, fmt.Errorf("obstacle %q: distance must be positive", o.ID)
	}
	if o.Height <= 0 || o.Width <= 0 {
		return shade.Obstacle{}, fmt.Errorf("obstacle %q: height and width must be positive", o.ID)
	}
	return shade.NewObstacle(o.ID, shape, o.Direction, o.Distance, o.Height, o.Width), nil
}

// SamplingData holds configuration for time-series sun integration.
type SamplingData struct {
	IntervalMinutes int `json:"interval_minutes,omitempty"`
}

// GridData holds configuration for exposure map computation.
type GridData struct {
	ResolutionM float64 `json:"resolution_m,omitempty"`
	SampleDays  int     `json:"sample_days,omitempty"`
	ChunkSize   int     `json:"chunk_size,omitempty"`
}

// HTTPData holds the configuration for the REST API server.
type HTTPData struct {
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
	Port       int    `json:"port,omitempty"`
	ListenAddr string `json:"listen_addr,omitempty"`
	EnableCORS bool   `json:"enable_cors,omitempty"`
}

// Obstacles converts every configured obstacle, failing on the first
// invalid entry.
func (c *ConfigData) ObstacleList() ([]shade.Obstacle, error) {
	obstacles := make([]shade.Obstacle, 0, len(c.Obstacles))
	for i := range c.Obstacles {
		o, err := c.Obstacles[i].ToObstacle()
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}
