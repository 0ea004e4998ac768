package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "mcpkit-server", cfg.Server.Name)
	assert.Equal(t, "0.1.0", cfg.Server.Version)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"time"}, cfg.Tools)
	assert.NotEmpty(t, cfg.Weather.GeocodeURL)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	manifest := `
server:
  name: weather-server
  version: 2.1.0
log_level: debug
tools:
  - weather
  - fetch
weather:
  geocode_url: http://localhost:9000/geocode
prompts:
  greet: "Hello {{name}}"
resources:
  readme: "usage notes"
`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "weather-server", cfg.Server.Name)
	assert.Equal(t, "2.1.0", cfg.Server.Version)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"weather", "fetch"}, cfg.Tools)
	assert.Equal(t, "http://localhost:9000/geocode", cfg.Weather.GeocodeURL)
	assert.NotEmpty(t, cfg.Weather.ForecastURL, "unset fields still get defaults")
	assert.Equal(t, "Hello {{name}}", cfg.Prompts["greet"])
	assert.Equal(t, "usage notes", cfg.Resources["readme"])
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
