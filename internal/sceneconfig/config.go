// Package sceneconfig loads the demo scene's tunable parameters from an
// optional YAML file, defaults otherwise. Grounded on
// avatar29A-midgard-ro/internal/config/load.go's defaults-then-file priority
// order, narrowed to the single flat file this demo needs (no search-path
// probing, since cmd/orrery-demo takes its path explicitly via a flag).
package sceneconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Body describes one orbiting body's placement and size in the demo scene.
type Body struct {
	Name     string  `yaml:"name"`
	RadiusM  float64 `yaml:"radius_m"`
	OrbitM   float64 `yaml:"orbit_radius_m"`
	HeightM  float64 `yaml:"orbit_height_m"`
	PeriodS  float64 `yaml:"orbit_period_s"`
}

// Config is the demo scene's tunable parameter set.
type Config struct {
	PlanetRadiusM float64 `yaml:"planet_radius_m"`
	Spacecraft    Body    `yaml:"spacecraft"`
}

// Default returns the demo's built-in scene parameters, matching the values
// cmd/orrery-demo used before this file existed.
func Default() *Config {
	return &Config{
		PlanetRadiusM: 6.371e6,
		Spacecraft: Body{
			Name:    "spacecraft",
			RadiusM: 12,
			OrbitM:  3.8e7,
			HeightM: 9e6,
			PeriodS: 120,
		},
	}
}

// Load reads path, falling back to Default when path is empty. A file that
// fails to parse is a hard error; a missing optional path is not.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("sceneconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
