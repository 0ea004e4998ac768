package mcp

import "errors"

// JSON-RPC 2.0 error codes, plus the protocol-specific extensions in the
// implementation-defined range.
const (
	ErrorCodeParseError           = -32700
	ErrorCodeInvalidRequest       = -32600
	ErrorCodeMethodNotFound       = -32601
	ErrorCodeInvalidParams        = -32602
	ErrorCodeInternal             = -32603
	ErrorCodeServerNotInitialized = -32002
	ErrorCodeUnknownResourceType  = -32001
	ErrorCodeToolExecution        = -32000
)

var (
	// ErrInvalidRequest reports wire text that is not a valid request.
	ErrInvalidRequest = errors.New("invalid JSON-RPC request")
	// ErrInvalidResponse reports wire text that is not a valid response.
	ErrInvalidResponse = errors.New("invalid JSON-RPC response")
	// ErrInvalidNotification reports wire text that is not a valid notification.
	ErrInvalidNotification = errors.New("invalid JSON-RPC notification")
	// ErrNotFound reports a registry lookup for an unknown name.
	ErrNotFound = errors.New("not found")
	// ErrNotConnected reports a client call made before Connect.
	ErrNotConnected = errors.New("client is not connected")
)

// NewErrorResponse creates an error reply with the given code and message.
// Data is omitted from the wire when nil.
func NewErrorResponse(code int, message string, id any, data map[string]any) *ErrorResponse {
	return &ErrorResponse{
		JSONRPC: Version,
		Err: &ErrorObject{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}

// NewParseErrorResponse creates a -32700 reply for malformed wire text.
func NewParseErrorResponse(id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeParseError, "Parse error", id, nil)
}

// NewInvalidRequestResponse creates a -32600 reply for a structurally
// invalid request.
func NewInvalidRequestResponse(id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeInvalidRequest, "Invalid request", id, nil)
}

// NewMethodNotFoundResponse creates a -32601 reply.
func NewMethodNotFoundResponse(id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeMethodNotFound, "Method not found", id, nil)
}

// NewInvalidParamsResponse creates a -32602 reply.
func NewInvalidParamsResponse(message string, id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeInvalidParams, message, id, nil)
}

// NewInternalErrorResponse creates a -32603 reply carrying the failure
// description as data.details.
func NewInternalErrorResponse(details string, id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeInternal, "Internal error", id, map[string]any{"details": details})
}

// NewServerNotInitializedResponse creates a -32002 reply for requests
// arriving before the first successful initialize.
func NewServerNotInitializedResponse(id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeServerNotInitialized, "Server not initialized", id, nil)
}

// NewUnknownResourceResponse creates a -32001 reply for a resource or
// prompt lookup by an unknown name.
func NewUnknownResourceResponse(name string, id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeUnknownResourceType, "Unknown resource", id, map[string]any{"name": name})
}

// NewToolExecutionErrorResponse creates a -32000 reply carrying the tool
// failure message as data.details.
func NewToolExecutionErrorResponse(details string, id any) *ErrorResponse {
	return NewErrorResponse(ErrorCodeToolExecution, "Tool execution failed", id, map[string]any{"details": details})
}
