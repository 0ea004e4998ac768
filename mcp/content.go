package mcp

// Content is a tagged content item carried inside a tool response envelope.
// Exactly one of the value fields is populated, selected by Type.
type Content struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
	Value   any    `json:"value,omitempty"`
	URL     string `json:"url,omitempty"`
	AltText string `json:"alt_text,omitempty"`
}

// NewTextContent creates a content item of type "text".
func NewTextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// NewJSONContent creates a content item of type "json" embedding a value.
func NewJSONContent(value any) Content {
	return Content{Type: "json", Value: value}
}

// NewHTMLContent creates a content item of type "html".
func NewHTMLContent(html string) Content {
	return Content{Type: "html", HTML: html}
}

// NewImageContent creates a content item of type "image".
func NewImageContent(url, altText string) Content {
	return Content{Type: "image", URL: url, AltText: altText}
}

// ToolResponse is the standard result envelope returned by tool handlers.
type ToolResponse struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
	Status  string    `json:"status,omitempty"`
}

// NewToolResponse wraps content items into the standard envelope.
func NewToolResponse(content []Content, isError bool) ToolResponse {
	return ToolResponse{Content: content, IsError: isError}
}
