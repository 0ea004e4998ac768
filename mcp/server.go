package mcp

import (
	"fmt"
	"sort"

	"github.com/mcpkit/mcpkit/observability"
)

const (
	defaultServerName    = "mcpkit-server"
	defaultServerVersion = "0.1.0"
)

// Server owns the tool/prompt/resource registries and the request dispatch
// state machine. It is created uninitialized; the first successful
// "initialize" request flips it initialized, and every other method is
// rejected until then.
type Server struct {
	name        string
	version     string
	tools       *ToolRegistry
	prompts     map[string]any
	resources   map[string]any
	initialized bool
	logger      observability.Logger
}

// ServerOption modifies a Server during construction.
type ServerOption func(*Server)

// UseServerInfo sets the server name and version reported at initialize.
func UseServerInfo(name, version string) ServerOption {
	return func(s *Server) {
		s.name = name
		s.version = version
	}
}

// UseLogger sets a custom logger.
func UseLogger(logger observability.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// UseToolRegistry sets a pre-populated tool registry.
func UseToolRegistry(registry *ToolRegistry) ServerOption {
	return func(s *Server) {
		s.tools = registry
	}
}

// NewServer creates an uninitialized Server with the given options.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		name:      defaultServerName,
		version:   defaultServerVersion,
		tools:     NewToolRegistry(),
		prompts:   make(map[string]any),
		resources: make(map[string]any),
		logger:    observability.NewLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the server name reported at initialize.
func (s *Server) Name() string { return s.name }

// Version returns the server version reported at initialize.
func (s *Server) Version() string { return s.version }

// Initialized reports whether the first successful initialize has happened.
func (s *Server) Initialized() bool { return s.initialized }

// RegisterTool registers a tool handler and/or metadata; see
// ToolRegistry.RegisterTool for the overwrite rules.
func (s *Server) RegisterTool(name string, handler ToolHandler, metadata *ToolMetadata) error {
	return s.tools.RegisterTool(name, handler, metadata)
}

// RegisterToolFunc registers a plain function as a tool handler.
func (s *Server) RegisterToolFunc(name string, fn func(map[string]any) (any, error), metadata *ToolMetadata) error {
	return s.tools.RegisterTool(name, ToolHandlerFunc(fn), metadata)
}

// RegisterPrompt registers a prompt, overwriting any prior entry.
func (s *Server) RegisterPrompt(name string, content any) {
	s.prompts[name] = content
}

// RegisterResource registers a resource, overwriting any prior entry.
func (s *Server) RegisterResource(name string, content any) {
	s.resources[name] = content
}

// GetPrompt returns a registered prompt.
func (s *Server) GetPrompt(name string) (any, error) {
	content, ok := s.prompts[name]
	if !ok {
		return nil, fmt.Errorf("prompt %q: %w", name, ErrNotFound)
	}
	return content, nil
}

// GetResource returns a registered resource.
func (s *Server) GetResource(name string) (any, error) {
	content, ok := s.resources[name]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", name, ErrNotFound)
	}
	return content, nil
}

// HandleRequest routes one request to a response. It never panics outward:
// any failure that escapes the method handlers is converted to an internal
// error reply.
func (s *Server) HandleRequest(request *Request) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(map[string]any{"method": request.Method}).
				Errorf("panic while handling request: %v", r)
			response = NewInternalErrorResponse(fmt.Sprintf("%v", r), request.ID)
		}
	}()

	s.logger.WithFields(map[string]any{"method": request.Method, "id": request.ID}).
		Debug("handling request")

	if request.Method != "initialize" && !s.initialized {
		return NewServerNotInitializedResponse(request.ID)
	}

	switch request.Method {
	case "initialize":
		return s.handleInitialize(request)
	case "ping":
		return NewSuccessResponse(map[string]any{}, request.ID)
	case "tools/list":
		return NewSuccessResponse(map[string]any{
			"tools":      s.tools.ListMetadata(),
			"nextCursor": nil,
		}, request.ID)
	case "tools/call":
		return s.handleToolsCall(request)
	case "resources/list":
		return NewSuccessResponse(map[string]any{
			"resources":  nameDescriptors(s.resources),
			"nextCursor": nil,
		}, request.ID)
	case "resources/get":
		return s.handleGet(request, s.resources)
	case "prompts/list":
		return NewSuccessResponse(map[string]any{
			"prompts":    nameDescriptors(s.prompts),
			"nextCursor": nil,
		}, request.ID)
	case "prompts/get":
		return s.handleGet(request, s.prompts)
	default:
		return s.handleDirectCall(request)
	}
}

func (s *Server) handleInitialize(request *Request) Response {
	s.initialized = true
	return NewSuccessResponse(map[string]any{
		"name":    s.name,
		"version": s.version,
		"capabilities": map[string]any{
			"tools":     s.tools.ListMetadata(),
			"prompts":   nameDescriptors(s.prompts),
			"resources": nameDescriptors(s.resources),
		},
	}, request.ID)
}

func (s *Server) handleToolsCall(request *Request) Response {
	tool, ok := request.Params["tool"].(map[string]any)
	if !ok {
		return NewInvalidParamsResponse("Missing required parameter: tool.name", request.ID)
	}
	name, ok := tool["name"].(string)
	if !ok || name == "" {
		return NewInvalidParamsResponse("Missing required parameter: tool.name", request.ID)
	}

	handler, ok := s.tools.Lookup(name)
	if !ok {
		return NewErrorResponse(ErrorCodeMethodNotFound, "Tool not found", request.ID,
			map[string]any{"tool": name})
	}

	parameters, _ := tool["parameters"].(map[string]any)
	if parameters == nil {
		parameters = map[string]any{}
	}

	result, err := handler.Invoke(parameters)
	if err != nil {
		s.logger.WithErr(err).WithFields(map[string]any{"tool": name}).
			Warn("tool execution failed")
		return NewToolExecutionErrorResponse(err.Error(), request.ID)
	}
	return NewSuccessResponse(result, request.ID)
}

// handleDirectCall is the legacy dispatch path: a registered tool name used
// directly as the method, invoked with the request params as arguments.
// Handler failures surface as internal errors here, not tool execution
// errors; the two historical paths are kept distinct on purpose.
func (s *Server) handleDirectCall(request *Request) Response {
	handler, ok := s.tools.Lookup(request.Method)
	if !ok {
		return NewMethodNotFoundResponse(request.ID)
	}

	result, err := handler.Invoke(request.Params)
	if err != nil {
		s.logger.WithErr(err).WithFields(map[string]any{"tool": request.Method}).
			Warn("direct tool call failed")
		return NewInternalErrorResponse(err.Error(), request.ID)
	}
	return NewSuccessResponse(result, request.ID)
}

func (s *Server) handleGet(request *Request, entries map[string]any) Response {
	name, ok := request.Params["name"].(string)
	if !ok || name == "" {
		return NewInvalidParamsResponse("Missing required parameter: name", request.ID)
	}
	content, ok := entries[name]
	if !ok {
		return NewUnknownResourceResponse(name, request.ID)
	}
	return NewSuccessResponse(map[string]any{
		"name":    name,
		"content": content,
	}, request.ID)
}

func nameDescriptors(entries map[string]any) []map[string]any {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"name": name})
	}
	return out
}
