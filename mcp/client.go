package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcpkit/mcpkit/htmlmd"
	"github.com/mcpkit/mcpkit/observability"
)

// ClientConfig holds configuration for Client.
type ClientConfig struct {
	Logger observability.Logger
}

// Client drives a server over a newline-delimited JSON duplex stream. It
// writes one request per line and reads exactly one reply line per request;
// ids are decimal strings assigned from a monotonically increasing counter.
type Client struct {
	config      ClientConfig
	conn        io.ReadWriter
	reader      *bufio.Reader
	initialized bool
	serverInfo  map[string]any
	nextID      int
}

// NewClient creates a disconnected client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = observability.NewLogger()
	}
	return &Client{
		config: config,
		nextID: 1,
	}
}

// Connect attaches a duplex stream. The id counter is not reset, so ids stay
// unique across reconnects.
func (c *Client) Connect(conn io.ReadWriter) {
	c.conn = conn
	c.reader = bufio.NewReader(conn)
}

// Connected reports whether a stream is attached.
func (c *Client) Connected() bool { return c.conn != nil }

// Initialized reports whether the handshake has completed.
func (c *Client) Initialized() bool { return c.initialized }

// ServerInfo returns the result of the initialize handshake.
func (c *Client) ServerInfo() map[string]any { return c.serverInfo }

// Initialize performs the handshake. It is a no-op when already initialized;
// on an error reply the client stays uninitialized so the call can be
// retried.
func (c *Client) Initialize() error {
	if c.initialized {
		return nil
	}

	response, err := c.SendRequest("initialize", map[string]any{})
	if err != nil {
		return err
	}
	if response == nil {
		return fmt.Errorf("initialize: no reply from server")
	}
	if errResp, ok := response.(*ErrorResponse); ok {
		return fmt.Errorf("initialize failed: %s", errResp.Err.Message)
	}

	success := response.(*SuccessResponse)
	info, _ := success.Result.(map[string]any)
	c.serverInfo = info
	c.initialized = true
	c.config.Logger.WithFields(map[string]any{"server": info["name"]}).
		Debug("client initialized")
	return nil
}

// SendRequest writes one request and reads one reply line. An error reply is
// returned as a value, not as a Go error; the error return reports transport
// failures only. An empty reply line yields (nil, nil).
func (c *Client) SendRequest(method string, params map[string]any) (Response, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	id := strconv.Itoa(c.nextID)
	c.nextID++

	request := NewRequest(method, params, id)
	if err := c.writeMessage(request); err != nil {
		return nil, err
	}

	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	return ParseResponse([]byte(line))
}

// SendNotification writes one notification. No id is assigned and no reply
// is read.
func (c *Client) SendNotification(method string, params map[string]any) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	return c.writeMessage(NewNotification(method, params))
}

func (c *Client) writeMessage(message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := c.conn.Write(payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// ListTools returns the metadata of every tool the server exposes. A
// non-empty cursor is forwarded as params.cursor.
func (c *Client) ListTools(cursor string) ([]ToolMetadata, error) {
	success, err := c.call("tools/list", cursorParams(cursor))
	if err != nil {
		return nil, err
	}
	var result struct {
		Tools []ToolMetadata `json:"tools"`
	}
	if err := decodeResult(success.Result, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// ListResources returns the name descriptors of every registered resource.
func (c *Client) ListResources(cursor string) ([]map[string]any, error) {
	success, err := c.call("resources/list", cursorParams(cursor))
	if err != nil {
		return nil, err
	}
	var result struct {
		Resources []map[string]any `json:"resources"`
	}
	if err := decodeResult(success.Result, &result); err != nil {
		return nil, err
	}
	return result.Resources, nil
}

// ListPrompts returns the name descriptors of every registered prompt.
func (c *Client) ListPrompts(cursor string) ([]map[string]any, error) {
	success, err := c.call("prompts/list", cursorParams(cursor))
	if err != nil {
		return nil, err
	}
	var result struct {
		Prompts []map[string]any `json:"prompts"`
	}
	if err := decodeResult(success.Result, &result); err != nil {
		return nil, err
	}
	return result.Prompts, nil
}

// GetResource fetches one resource by name.
func (c *Client) GetResource(name string) (map[string]any, error) {
	success, err := c.call("resources/get", map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	result, _ := success.Result.(map[string]any)
	return result, nil
}

// GetPrompt fetches one prompt by name.
func (c *Client) GetPrompt(name string) (map[string]any, error) {
	success, err := c.call("prompts/get", map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	result, _ := success.Result.(map[string]any)
	return result, nil
}

// CallTool invokes a tool through the tools/call envelope and returns the
// raw result.
func (c *Client) CallTool(name string, parameters map[string]any) (any, error) {
	success, err := c.call("tools/call", map[string]any{
		"tool": map[string]any{
			"name":       name,
			"parameters": parameters,
		},
	})
	if err != nil {
		return nil, err
	}
	return success.Result, nil
}

// ExtractContent flattens a tool response envelope into plain values: raw
// text for text items, the embedded value for json items, markdown for html
// items, and a {url, alt_text} map for image items. Malformed items are
// skipped; a result without a content list yields nil.
func (c *Client) ExtractContent(result any) []any {
	envelope, ok := result.(map[string]any)
	if !ok {
		return nil
	}
	items, ok := envelope["content"].([]any)
	if !ok {
		return nil
	}

	var out []any
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch entry["type"] {
		case "text":
			if text, ok := entry["text"].(string); ok {
				out = append(out, text)
			}
		case "json":
			if value, ok := entry["value"]; ok {
				out = append(out, value)
			}
		case "html":
			if html, ok := entry["html"].(string); ok {
				out = append(out, htmlmd.Convert(html))
			}
		case "image":
			url, ok := entry["url"].(string)
			if !ok {
				continue
			}
			altText, _ := entry["alt_text"].(string)
			out = append(out, map[string]any{"url": url, "alt_text": altText})
		}
	}
	return out
}

// Close detaches the stream, closing it when it supports closing, and
// resets the handshake state. The id counter is preserved.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	var err error
	if closer, ok := c.conn.(io.Closer); ok {
		err = closer.Close()
	}
	c.conn = nil
	c.reader = nil
	c.initialized = false
	c.serverInfo = nil
	return err
}

// call wraps SendRequest for the typed convenience methods: an error reply
// becomes a Go error carrying the server's message.
func (c *Client) call(method string, params map[string]any) (*SuccessResponse, error) {
	response, err := c.SendRequest(method, params)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("%s: no reply from server", method)
	}
	if errResp, ok := response.(*ErrorResponse); ok {
		return nil, fmt.Errorf("server error: %s", errResp.Err.Message)
	}
	return response.(*SuccessResponse), nil
}

func cursorParams(cursor string) map[string]any {
	params := map[string]any{}
	if cursor != "" {
		params["cursor"] = cursor
	}
	return params
}

func decodeResult(result any, into any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
