// Package translatetool provides the translation server tool, backed by a
// LibreTranslate-compatible HTTP endpoint.
package translatetool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mcpkit/mcpkit/mcp"
)

var translateMetadata = mcp.ToolMetadata{
	Description: "Translate text between languages",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The text to translate",
			},
			"source": map[string]any{
				"type":        "string",
				"description": "Source language code, e.g. en. Use auto to detect.",
			},
			"target": map[string]any{
				"type":        "string",
				"description": "Target language code, e.g. es",
			},
		},
		"required": []any{"text", "target"},
	},
}

// Translator calls an upstream translation API.
type Translator struct {
	endpoint string
	client   *http.Client
}

// New creates a Translator for the given endpoint. A nil client gets a
// default with a 30s timeout.
func New(endpoint string, client *http.Client) *Translator {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Translator{endpoint: endpoint, client: client}
}

// Register adds the translate tool to a server.
func (t *Translator) Register(server *mcp.Server) error {
	meta := translateMetadata
	return server.RegisterToolFunc("translate", t.Translate, &meta)
}

// Translate sends text to the upstream API and returns the translation.
func (t *Translator) Translate(params map[string]any) (any, error) {
	if err := mcp.ValidateParams(translateMetadata.Parameters, params); err != nil {
		return nil, err
	}

	text, _ := params["text"].(string)
	target, _ := params["target"].(string)
	source, _ := params["source"].(string)
	if source == "" {
		source = "auto"
	}

	payload, err := json.Marshal(map[string]any{
		"q":      text,
		"source": source,
		"target": target,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translate request: %w", err)
	}

	resp, err := t.client.Post(t.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("translate request: unexpected status %d", resp.StatusCode)
	}

	translated := gjson.GetBytes(body, "translatedText")
	if !translated.Exists() {
		return nil, fmt.Errorf("translate response missing translatedText")
	}

	return mcp.NewToolResponse([]mcp.Content{
		mcp.NewJSONContent(map[string]any{
			"source":     source,
			"target":     target,
			"text":       text,
			"translated": translated.String(),
		}),
	}, false), nil
}
