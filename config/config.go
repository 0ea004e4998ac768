// Package config loads the YAML server manifest used by the CLI entry
// points: server identity, enabled tools, upstream endpoints and static
// prompt/resource sets.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the server manifest.
type Config struct {
	Server struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"server"`

	LogLevel string `yaml:"log_level"`

	// Tools lists the enabled tool packages: time, fetch, translate, weather.
	Tools []string `yaml:"tools"`

	Translate struct {
		Endpoint string `yaml:"endpoint"`
	} `yaml:"translate"`

	Weather struct {
		GeocodeURL  string `yaml:"geocode_url"`
		ForecastURL string `yaml:"forecast_url"`
	} `yaml:"weather"`

	Prompts   map[string]string `yaml:"prompts"`
	Resources map[string]string `yaml:"resources"`
}

// Default returns a manifest with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a manifest file and applies defaults. An empty path yields the
// default manifest.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Name == "" {
		c.Server.Name = "mcpkit-server"
	}
	if c.Server.Version == "" {
		c.Server.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Tools == nil {
		c.Tools = []string{"time"}
	}
	if c.Translate.Endpoint == "" {
		c.Translate.Endpoint = "https://libretranslate.com/translate"
	}
	if c.Weather.GeocodeURL == "" {
		c.Weather.GeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if c.Weather.ForecastURL == "" {
		c.Weather.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
}
