// Package timetool provides the time server tools: current time lookup and
// timezone conversion.
package timetool

import (
	"fmt"
	"time"

	"github.com/mcpkit/mcpkit/mcp"
)

var currentTimeMetadata = mcp.ToolMetadata{
	Description: "Get the current time in a given IANA timezone",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"timezone": map[string]any{
				"type":        "string",
				"description": "IANA timezone name, e.g. Europe/Berlin. Defaults to UTC.",
			},
		},
	},
}

var convertTimeMetadata = mcp.ToolMetadata{
	Description: "Convert a wall-clock time between two IANA timezones",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"source_timezone": map[string]any{
				"type":        "string",
				"description": "IANA timezone the input time is expressed in",
			},
			"time": map[string]any{
				"type":        "string",
				"description": "Wall-clock time in 24h HH:MM format",
			},
			"target_timezone": map[string]any{
				"type":        "string",
				"description": "IANA timezone to convert to",
			},
		},
		"required": []any{"source_timezone", "time", "target_timezone"},
	},
}

// Register adds the get_current_time and convert_time tools to a server.
func Register(server *mcp.Server) error {
	meta := currentTimeMetadata
	if err := server.RegisterToolFunc("get_current_time", CurrentTime, &meta); err != nil {
		return err
	}
	meta = convertTimeMetadata
	return server.RegisterToolFunc("convert_time", ConvertTime, &meta)
}

// CurrentTime reports the current time in the requested timezone.
func CurrentTime(params map[string]any) (any, error) {
	timezone := "UTC"
	if tz, ok := params["timezone"].(string); ok && tz != "" {
		timezone = tz
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", timezone)
	}

	now := time.Now().In(location)
	return mcp.NewToolResponse([]mcp.Content{
		mcp.NewJSONContent(map[string]any{
			"timezone": timezone,
			"datetime": now.Format(time.RFC3339),
			"is_dst":   now.IsDST(),
		}),
	}, false), nil
}

// ConvertTime converts an HH:MM wall-clock time from one timezone to
// another, using today's date in the source zone.
func ConvertTime(params map[string]any) (any, error) {
	if err := mcp.ValidateParams(convertTimeMetadata.Parameters, params); err != nil {
		return nil, err
	}

	sourceName, _ := params["source_timezone"].(string)
	targetName, _ := params["target_timezone"].(string)
	clock, _ := params["time"].(string)

	source, err := time.LoadLocation(sourceName)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", sourceName)
	}
	target, err := time.LoadLocation(targetName)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", targetName)
	}

	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, expected 24h HH:MM", clock)
	}

	now := time.Now().In(source)
	sourceTime := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, source)
	targetTime := sourceTime.In(target)

	_, sourceOffset := sourceTime.Zone()
	_, targetOffset := targetTime.Zone()
	diff := time.Duration(targetOffset-sourceOffset) * time.Second

	return mcp.NewToolResponse([]mcp.Content{
		mcp.NewJSONContent(map[string]any{
			"source": map[string]any{
				"timezone": sourceName,
				"datetime": sourceTime.Format(time.RFC3339),
			},
			"target": map[string]any{
				"timezone": targetName,
				"datetime": targetTime.Format(time.RFC3339),
			},
			"time_difference": fmt.Sprintf("%+.1fh", diff.Hours()),
		}),
	}, false), nil
}
