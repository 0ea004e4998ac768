package mcp

import (
	"encoding/json"
	"fmt"
)

// Version is the JSON-RPC protocol version carried by every message.
const Version = "2.0"

// Request represents a JSON-RPC request message. Params and ID are optional
// and are omitted from the wire when absent; a nil Params map is meaningful
// and must not be replaced with an empty one.
type Request struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params,omitempty"`
	ID      any            `json:"id,omitempty"`
}

// Notification represents a JSON-RPC notification message. It has the same
// shape as Request but never carries an id.
type Notification struct {
	JSONRPC string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params,omitempty"`
}

// SuccessResponse represents a JSON-RPC reply carrying a result. The id slot
// is always serialized, as null when no id could be correlated.
type SuccessResponse struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result"`
	ID      any    `json:"id"`
}

// ErrorResponse represents a JSON-RPC reply carrying an error object.
type ErrorResponse struct {
	JSONRPC string       `json:"jsonrpc"`
	Err     *ErrorObject `json:"error"`
	ID      any          `json:"id"`
}

// ErrorObject represents a JSON-RPC 2.0 error object.
type ErrorObject struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func (e *ErrorObject) Error() string {
	return e.Message
}

// Response is either a *SuccessResponse or an *ErrorResponse.
type Response interface {
	ResponseID() any
}

func (r *SuccessResponse) ResponseID() any { return r.ID }
func (r *ErrorResponse) ResponseID() any   { return r.ID }

// NewRequest creates a request message. Pass a nil id for an id-less request.
func NewRequest(method string, params map[string]any, id any) *Request {
	return &Request{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}

// NewNotification creates a notification message.
func NewNotification(method string, params map[string]any) *Notification {
	return &Notification{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
	}
}

// NewSuccessResponse creates a success reply echoing the given request id.
func NewSuccessResponse(result any, id any) *SuccessResponse {
	return &SuccessResponse{
		JSONRPC: Version,
		Result:  result,
		ID:      id,
	}
}

// ParseRequest parses one line of wire text into a Request. The object must
// carry jsonrpc "2.0" and a method; params and id stay absent when missing.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.JSONRPC != Version {
		return nil, fmt.Errorf("%w: jsonrpc must be %q", ErrInvalidRequest, Version)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: missing method", ErrInvalidRequest)
	}
	return &req, nil
}

// ParseNotification parses one line of wire text into a Notification. The
// presence of an id field makes the message a Request and is rejected here.
func ParseNotification(data []byte) (*Notification, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}
	if _, hasID := probe["id"]; hasID {
		return nil, fmt.Errorf("%w: notification must not carry an id", ErrInvalidNotification)
	}
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}
	if n.JSONRPC != Version {
		return nil, fmt.Errorf("%w: jsonrpc must be %q", ErrInvalidNotification, Version)
	}
	if n.Method == "" {
		return nil, fmt.Errorf("%w: missing method", ErrInvalidNotification)
	}
	return &n, nil
}

// ParseResponse parses one line of wire text into a SuccessResponse or an
// ErrorResponse, selected by the presence of the error key.
func ParseResponse(data []byte) (Response, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var version string
	if raw, ok := probe["jsonrpc"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	if version != Version {
		return nil, fmt.Errorf("%w: jsonrpc must be %q", ErrInvalidResponse, Version)
	}

	var id any
	if raw, ok := probe["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	if raw, ok := probe["error"]; ok {
		var errObj ErrorObject
		if err := json.Unmarshal(raw, &errObj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return &ErrorResponse{JSONRPC: Version, Err: &errObj, ID: id}, nil
	}

	var result any
	if raw, ok := probe["result"]; ok {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return &SuccessResponse{JSONRPC: Version, Result: result, ID: id}, nil
}
