package timetool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpkit/mcpkit/mcp"
	"github.com/mcpkit/mcpkit/observability"
)

func resultValue(t *testing.T, result any) map[string]any {
	t.Helper()
	envelope, ok := result.(mcp.ToolResponse)
	require.True(t, ok)
	require.Len(t, envelope.Content, 1)
	assert.Equal(t, "json", envelope.Content[0].Type)
	value, ok := envelope.Content[0].Value.(map[string]any)
	require.True(t, ok)
	return value
}

func TestCurrentTimeDefaultsToUTC(t *testing.T) {
	result, err := CurrentTime(map[string]any{})
	require.NoError(t, err)

	value := resultValue(t, result)
	assert.Equal(t, "UTC", value["timezone"])

	parsed, err := time.Parse(time.RFC3339, value["datetime"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}

func TestCurrentTimeUnknownTimezone(t *testing.T) {
	_, err := CurrentTime(map[string]any{"timezone": "Mars/Olympus"})
	assert.Error(t, err)
}

func TestConvertTime(t *testing.T) {
	result, err := ConvertTime(map[string]any{
		"source_timezone": "UTC",
		"time":            "12:00",
		"target_timezone": "Etc/GMT-2",
	})
	require.NoError(t, err)

	value := resultValue(t, result)
	target := value["target"].(map[string]any)

	// Etc/GMT-2 is UTC+2, so noon UTC is 14:00 there.
	parsed, err := time.Parse(time.RFC3339, target["datetime"].(string))
	require.NoError(t, err)
	assert.Equal(t, 14, parsed.Hour())
	assert.Equal(t, "+2.0h", value["time_difference"])
}

func TestConvertTimeRejectsMissingParams(t *testing.T) {
	_, err := ConvertTime(map[string]any{"time": "12:00"})
	assert.Error(t, err)
}

func TestConvertTimeRejectsBadClock(t *testing.T) {
	_, err := ConvertTime(map[string]any{
		"source_timezone": "UTC",
		"time":            "noon",
		"target_timezone": "UTC",
	})
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	server := mcp.NewServer(mcp.UseLogger(observability.NewNullLogger()))
	require.NoError(t, Register(server))

	server.HandleRequest(mcp.NewRequest("initialize", map[string]any{}, 1))
	resp := server.HandleRequest(mcp.NewRequest("tools/list", nil, 2))

	success, ok := resp.(*mcp.SuccessResponse)
	require.True(t, ok)
	tools := success.Result.(map[string]any)["tools"].([]mcp.ToolMetadata)
	assert.Len(t, tools, 2)
}
