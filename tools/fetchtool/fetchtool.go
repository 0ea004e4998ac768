// Package fetchtool provides the fetch server tool: retrieve a URL and
// return its content as Markdown or raw text.
package fetchtool

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mcpkit/mcpkit/htmlmd"
	"github.com/mcpkit/mcpkit/mcp"
)

const maxBodyBytes = 5 << 20

var fetchMetadata = mcp.ToolMetadata{
	Description: "Fetch a URL and return its content converted to Markdown",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "The URL to fetch",
			},
			"raw": map[string]any{
				"type":        "boolean",
				"description": "Return the raw body instead of Markdown",
			},
		},
		"required": []any{"url"},
	},
}

// Fetcher retrieves URLs for the fetch tool.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher. A nil client gets a default with a 30s timeout.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client}
}

// Register adds the fetch tool to a server.
func (f *Fetcher) Register(server *mcp.Server) error {
	meta := fetchMetadata
	return server.RegisterToolFunc("fetch", f.Fetch, &meta)
}

// Fetch retrieves a URL. HTML bodies are converted to Markdown unless raw
// is requested; everything else is returned as text.
func (f *Fetcher) Fetch(params map[string]any) (any, error) {
	if err := mcp.ValidateParams(fetchMetadata.Parameters, params); err != nil {
		return nil, err
	}
	url, _ := params["url"].(string)
	raw, _ := params["raw"].(bool)

	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")

	text := string(body)
	if isHTML && !raw {
		text = htmlmd.Convert(text)
	}

	response := mcp.NewToolResponse([]mcp.Content{mcp.NewTextContent(text)}, false)
	if title := pageTitle(string(body), isHTML); title != "" {
		response.Status = title
	}
	return response, nil
}

func pageTitle(body string, isHTML bool) string {
	if !isHTML {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
