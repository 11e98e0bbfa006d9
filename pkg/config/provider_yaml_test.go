package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verdantlabs/sunfield/pkg/shade"
)

const sampleConfig = `
site:
  name: back-garden
  latitude: 45.5152
  longitude: -122.6784
  slope-angle: 10
  slope-aspect: 180

obstacles:
  - id: garage
    shape: building
    direction: 225
    distance: 8
    height: 4
    width: 7
  - shape: deciduous-tree
    direction: 90
    distance: 12
    height: 9
    width: 6

sampling:
  interval-minutes: 10

grid:
  resolution-m: 2
  sample-days: 6
  chunk-size: 32

http:
  listen-addr: 127.0.0.1
  port: 8081
  enable-cors: true
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sunfield.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	provider := NewYAMLProvider(writeConfig(t, sampleConfig))
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Site.Name != "back-garden" {
		t.Errorf("site name = %q, want back-garden", cfg.Site.Name)
	}
	if cfg.Site.Latitude != 45.5152 || cfg.Site.Longitude != -122.6784 {
		t.Errorf("site location = (%v, %v)", cfg.Site.Latitude, cfg.Site.Longitude)
	}
	if s := cfg.Site.Slope(); s.AngleDeg != 10 || s.AspectDeg != 180 {
		t.Errorf("slope = %+v, want 10/180", s)
	}

	if len(cfg.Obstacles) != 2 {
		t.Fatalf("got %d obstacles, want 2", len(cfg.Obstacles))
	}
	if cfg.Obstacles[0].ID != "garage" || cfg.Obstacles[0].Shape != "building" {
		t.Errorf("first obstacle = %+v", cfg.Obstacles[0])
	}

	if cfg.Sampling.IntervalMinutes != 10 {
		t.Errorf("sampling interval = %d, want 10", cfg.Sampling.IntervalMinutes)
	}
	if cfg.Grid.ResolutionM != 2 || cfg.Grid.SampleDays != 6 || cfg.Grid.ChunkSize != 32 {
		t.Errorf("grid config = %+v", cfg.Grid)
	}

	if cfg.HTTP == nil {
		t.Fatal("http config missing")
	}
	if cfg.HTTP.Port != 8081 || !cfg.HTTP.EnableCORS {
		t.Errorf("http config = %+v", cfg.HTTP)
	}
}

func TestYAMLProviderObstacleConversion(t *testing.T) {
	provider := NewYAMLProvider(writeConfig(t, sampleConfig))

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	obstacles, err := cfg.ObstacleList()
	if err != nil {
		t.Fatalf("ObstacleList: %v", err)
	}
	if len(obstacles) != 2 {
		t.Fatalf("got %d obstacles, want 2", len(obstacles))
	}
	if obstacles[0].Shape != shade.ShapeBuilding {
		t.Errorf("shape = %v, want building", obstacles[0].Shape)
	}
	// The tree entry had no ID, so one should be assigned.
	if obstacles[1].ID == "" {
		t.Error("expected a generated ID for obstacle without one")
	}
}

func TestYAMLProviderValidation(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{
			name: "latitude out of range",
			contents: `
site:
  latitude: 95
  longitude: 0
`,
		},
		{
			name: "slope angle out of range",
			contents: `
site:
  latitude: 45
  longitude: 0
  slope-angle: 120
`,
		},
		{
			name:     "malformed yaml",
			contents: "site: [unclosed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := NewYAMLProvider(writeConfig(t, tc.contents))
			if _, err := provider.LoadConfig(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestYAMLProviderBadObstacle(t *testing.T) {
	cfg := &ConfigData{
		Obstacles: []ObstacleData{
			{Shape: "pergola", Direction: 0, Distance: 5, Height: 3, Width: 4},
		},
	}
	if _, err := cfg.ObstacleList(); err == nil {
		t.Error("expected error for unknown shape")
	}

	cfg.Obstacles[0] = ObstacleData{Shape: "fence", Direction: 0, Distance: 0, Height: 2, Width: 10}
	if _, err := cfg.ObstacleList(); err == nil {
		t.Error("expected error for zero distance")
	}
}

func TestYAMLProviderMissingFile(t *testing.T) {
	provider := NewYAMLProvider("/nonexistent/sunfield.yaml")
	if _, err := provider.LoadConfig(); err == nil {
		t.Error("expected error for missing file")
	}
	if !provider.IsReadOnly() {
		t.Error("YAML provider should be read-only")
	}
}
