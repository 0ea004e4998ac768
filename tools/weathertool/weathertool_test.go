package weathertool

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpkit/mcpkit/mcp"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "Berlin" {
			_, _ = w.Write([]byte(`{"results":[{"name":"Berlin","latitude":52.52,"longitude":13.41}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	mux.HandleFunc("/forecast", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":18.3,"windspeed":11.5,"weathercode":3}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newService(t *testing.T) *Service {
	upstream := newUpstream(t)
	return New(upstream.URL+"/geocode", upstream.URL+"/forecast", upstream.Client())
}

func TestCurrentWeather(t *testing.T) {
	service := newService(t)

	result, err := service.CurrentWeather(map[string]any{"location": "Berlin"})
	require.NoError(t, err)

	envelope := result.(mcp.ToolResponse)
	value := envelope.Content[0].Value.(map[string]any)
	assert.Equal(t, "Berlin", value["location"])
	assert.Equal(t, 18.3, value["temperature_c"])
	assert.Equal(t, 11.5, value["windspeed_kmh"])
	assert.Equal(t, int64(3), value["weather_code"])
}

func TestCurrentWeatherUnknownLocation(t *testing.T) {
	service := newService(t)

	_, err := service.CurrentWeather(map[string]any{"location": "Atlantis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantis")
}

func TestCurrentWeatherRequiresLocation(t *testing.T) {
	service := newService(t)
	_, err := service.CurrentWeather(map[string]any{})
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	service := newService(t)
	server := mcp.NewServer()
	require.NoError(t, service.Register(server))

	server.HandleRequest(mcp.NewRequest("initialize", map[string]any{}, 1))
	resp := server.HandleRequest(mcp.NewRequest("tools/call", map[string]any{
		"tool": map[string]any{
			"name":       "get_weather",
			"parameters": map[string]any{"location": "Berlin"},
		},
	}, 2))

	success, ok := resp.(*mcp.SuccessResponse)
	require.True(t, ok)
	envelope := success.Result.(mcp.ToolResponse)
	assert.False(t, envelope.IsError)
}
