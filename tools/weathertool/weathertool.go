// Package weathertool provides the weather server tool, backed by
// open-meteo-compatible geocoding and forecast endpoints.
package weathertool

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mcpkit/mcpkit/mcp"
)

var weatherMetadata = mcp.ToolMetadata{
	Description: "Get the current weather for a location",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"location": map[string]any{
				"type":        "string",
				"description": "City name, e.g. San Francisco",
			},
		},
		"required": []any{"location"},
	},
}

// Service resolves locations and fetches current weather.
type Service struct {
	geocodeURL  string
	forecastURL string
	client      *http.Client
}

// New creates a Service for the given upstream endpoints. A nil client gets
// a default with a 30s timeout.
func New(geocodeURL, forecastURL string, client *http.Client) *Service {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Service{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		client:      client,
	}
}

// Register adds the get_weather tool to a server.
func (s *Service) Register(server *mcp.Server) error {
	meta := weatherMetadata
	return server.RegisterToolFunc("get_weather", s.CurrentWeather, &meta)
}

// CurrentWeather geocodes a location and returns its current conditions.
func (s *Service) CurrentWeather(params map[string]any) (any, error) {
	if err := mcp.ValidateParams(weatherMetadata.Parameters, params); err != nil {
		return nil, err
	}
	location, _ := params["location"].(string)

	body, err := s.get(s.geocodeURL, url.Values{"name": {location}, "count": {"1"}})
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", location, err)
	}
	match := gjson.GetBytes(body, "results.0")
	if !match.Exists() {
		return nil, fmt.Errorf("unknown location %q", location)
	}
	latitude := match.Get("latitude")
	longitude := match.Get("longitude")
	resolved := match.Get("name").String()

	body, err = s.get(s.forecastURL, url.Values{
		"latitude":        {latitude.String()},
		"longitude":       {longitude.String()},
		"current_weather": {"true"},
	})
	if err != nil {
		return nil, fmt.Errorf("forecast for %q: %w", location, err)
	}
	current := gjson.GetBytes(body, "current_weather")
	if !current.Exists() {
		return nil, fmt.Errorf("forecast response missing current_weather")
	}

	return mcp.NewToolResponse([]mcp.Content{
		mcp.NewJSONContent(map[string]any{
			"location":      resolved,
			"latitude":      latitude.Float(),
			"longitude":     longitude.Float(),
			"temperature_c": current.Get("temperature").Float(),
			"windspeed_kmh": current.Get("windspeed").Float(),
			"weather_code":  current.Get("weathercode").Int(),
		}),
	}, false), nil
}

func (s *Service) get(base string, query url.Values) ([]byte, error) {
	resp, err := s.client.Get(base + "?" + query.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
