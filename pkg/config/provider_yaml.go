package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Site      SiteYAML       `yaml:"site"`
		Obstacles []ObstacleYAML `yaml:"obstacles,omitempty"`
		Sampling  *SamplingYAML  `yaml:"sampling,omitempty"`
		Grid      *GridYAML      `yaml:"grid,omitempty"`
		HTTP      *HTTPYAML      `yaml:"http,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Site: SiteData{
			Name:        yamlConfig.Site.Name,
			Latitude:    yamlConfig.Site.Latitude,
			Longitude:   yamlConfig.Site.Longitude,
			SlopeAngle:  yamlConfig.Site.SlopeAngle,
			SlopeAspect: yamlConfig.Site.SlopeAspect,
		},
		Obstacles: make([]ObstacleData, len(yamlConfig.Obstacles)),
	}

	if err := config.Site.Validate(); err != nil {
		return nil, err
	}

	for i, obstacle := range yamlConfig.Obstacles {
		config.Obstacles[i] = ObstacleData{
			ID:        obstacle.ID,
			Shape:     obstacle.Shape,
			Direction: obstacle.Direction,
			Distance:  obstacle.Distance,
			Height:    obstacle.Height,
			Width:     obstacle.Width,
		}
	}

	if yamlConfig.Sampling != nil {
		config.Sampling = SamplingData{
			IntervalMinutes: yamlConfig.Sampling.IntervalMinutes,
		}
	}

	if yamlConfig.Grid != nil {
		config.Grid = GridData{
			ResolutionM: yamlConfig.Grid.ResolutionM,
			SampleDays:  yamlConfig.Grid.SampleDays,
			ChunkSize:   yamlConfig.Grid.ChunkSize,
		}
	}

	if yamlConfig.HTTP != nil {
		config.HTTP = &HTTPData{
			Cert:       yamlConfig.HTTP.Cert,
			Key:        yamlConfig.HTTP.Key,
			Port:       yamlConfig.HTTP.Port,
			ListenAddr: yamlConfig.HTTP.ListenAddr,
			EnableCORS: yamlConfig.HTTP.EnableCORS,
		}
	}

	y.config = config
	return config, nil
}

// GetSite returns the site configuration
func (y *YAMLProvider) GetSite() (*SiteData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Site, nil
}

// GetObstacles returns obstacle configurations
func (y *YAMLProvider) GetObstacles() ([]ObstacleData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Obstacles, nil
}

// GetHTTP returns REST server configuration
func (y *YAMLProvider) GetHTTP() (*HTTPData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.HTTP, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the config file format
type SiteYAML struct {
	Name        string  `yaml:"name,omitempty"`
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	SlopeAngle  float64 `yaml:"slope-angle,omitempty"`
	SlopeAspect float64 `yaml:"slope-aspect,omitempty"`
}

type ObstacleYAML struct {
	ID        string  `yaml:"id,omitempty"`
	Shape     string  `yaml:"shape"`
	Direction float64 `yaml:"direction"`
	Distance  float64 `yaml:"distance"`
	Height    float64 `yaml:"height"`
	Width     float64 `yaml:"width"`
}

type SamplingYAML struct {
	IntervalMinutes int `yaml:"interval-minutes,omitempty"`
}

type GridYAML struct {
	ResolutionM float64 `yaml:"resolution-m,omitempty"`
	SampleDays  int     `yaml:"sample-days,omitempty"`
	ChunkSize   int     `yaml:"chunk-size,omitempty"`
}

type HTTPYAML struct {
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	ListenAddr string `yaml:"listen-addr,omitempty"`
	EnableCORS bool   `yaml:"enable-cors,omitempty"`
}
