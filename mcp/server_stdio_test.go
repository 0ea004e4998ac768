package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpkit/mcpkit/observability"
)

func runStdIO(t *testing.T, server *Server, input string) []string {
	t.Helper()
	out := &bytes.Buffer{}
	err := NewStdIOServer(server, strings.NewReader(input), out).Run(context.Background())
	require.NoError(t, err)

	raw := strings.TrimSpace(out.String())
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func TestStdIOServerSession(t *testing.T) {
	server := newTestServer(t)
	require.NoError(t, server.RegisterToolFunc("echo", echoHandler, nil))

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","method":"initialize","params":{},"id":1}`,
		``,
		`{"jsonrpc":"2.0","method":"tools/list","id":2}`,
		`{"jsonrpc":"2.0","method":"echo","params":{"a":1},"id":3}`,
	}, "\n") + "\n"

	lines := runStdIO(t, server, input)
	require.Len(t, lines, 3, "empty lines must not produce replies")

	var initReply struct {
		Result struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"result"`
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &initReply))
	assert.Equal(t, "t1", initReply.Result.Name)
	assert.Equal(t, 1, initReply.ID)

	var listReply struct {
		Result struct {
			Tools []ToolMetadata `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &listReply))
	assert.Len(t, listReply.Result.Tools, 1)

	assert.JSONEq(t, `{"jsonrpc":"2.0","result":{"a":1},"id":3}`, lines[2])
}

func TestStdIOServerParseError(t *testing.T) {
	server := newTestServer(t)

	lines := runStdIO(t, server, "this is not json\n")
	require.Len(t, lines, 1)

	// No id could be recovered, so the reply carries a null id.
	assert.JSONEq(t,
		`{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error"},"id":null}`,
		lines[0])
}

func TestStdIOServerKeepsRunningAfterBadLine(t *testing.T) {
	server := newTestServer(t)

	input := strings.Join([]string{
		`{broken`,
		`{"jsonrpc":"2.0","method":"initialize","params":{},"id":1}`,
		`{"jsonrpc":"2.0","method":"ping","id":2}`,
	}, "\n") + "\n"

	lines := runStdIO(t, server, input)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `-32700`)
	assert.Contains(t, lines[1], `"result"`)
	assert.JSONEq(t, `{"jsonrpc":"2.0","result":{},"id":2}`, lines[2])
}

func TestStdIOServerGatesUninitializedRequests(t *testing.T) {
	server := newTestServer(t)

	lines := runStdIO(t, server, `{"jsonrpc":"2.0","method":"tools/list","id":1}`+"\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `-32002`)
}

func TestStdIOServerStopsAtEOF(t *testing.T) {
	server := NewServer(UseLogger(observability.NewNullLogger()))
	out := &bytes.Buffer{}

	err := NewStdIOServer(server, strings.NewReader(""), out).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.String())
}
