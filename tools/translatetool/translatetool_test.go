package translatetool

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpkit/mcpkit/mcp"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestTranslate(t *testing.T) {
	var received map[string]any
	upstream := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"translatedText":"hola mundo"}`))
	})

	translator := New(upstream.URL, upstream.Client())
	result, err := translator.Translate(map[string]any{
		"text":   "hello world",
		"target": "es",
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", received["q"])
	assert.Equal(t, "auto", received["source"], "missing source defaults to auto-detect")
	assert.Equal(t, "es", received["target"])

	envelope := result.(mcp.ToolResponse)
	value := envelope.Content[0].Value.(map[string]any)
	assert.Equal(t, "hola mundo", value["translated"])
}

func TestTranslateRequiresTextAndTarget(t *testing.T) {
	translator := New("http://unused.invalid", nil)

	_, err := translator.Translate(map[string]any{"target": "es"})
	assert.Error(t, err)

	_, err = translator.Translate(map[string]any{"text": "hi"})
	assert.Error(t, err)
}

func TestTranslateUpstreamFailure(t *testing.T) {
	upstream := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	translator := New(upstream.URL, upstream.Client())
	_, err := translator.Translate(map[string]any{"text": "hi", "target": "es"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestTranslateMalformedUpstreamReply(t *testing.T) {
	upstream := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	})

	translator := New(upstream.URL, upstream.Client())
	_, err := translator.Translate(map[string]any{"text": "hi", "target": "es"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translatedText")
}
