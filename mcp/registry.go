package mcp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const defaultToolDescription = "No description provided"

// ToolHandler executes a named tool. Implementations report failure through
// the returned error; its message is surfaced verbatim on the wire.
type ToolHandler interface {
	Invoke(params map[string]any) (any, error)
}

// ToolHandlerFunc adapts a plain function to the ToolHandler interface.
type ToolHandlerFunc func(params map[string]any) (any, error)

func (f ToolHandlerFunc) Invoke(params map[string]any) (any, error) {
	return f(params)
}

// ToolMetadata describes a registered tool for capability listings.
type ToolMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolRegistry holds named tool handlers and their metadata. Handlers and
// metadata may be registered independently; see RegisterTool.
type ToolRegistry struct {
	handlers map[string]ToolHandler
	metadata map[string]ToolMetadata
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		handlers: make(map[string]ToolHandler),
		metadata: make(map[string]ToolMetadata),
	}
}

// RegisterTool registers a handler, metadata, or both under name,
// overwriting what was supplied before:
//
//   - handler and metadata: both are stored.
//   - handler only: previously registered metadata for the name is kept;
//     otherwise default metadata is synthesized.
//   - metadata only: a stub handler that always fails is installed unless a
//     real handler was registered earlier.
func (r *ToolRegistry) RegisterTool(name string, handler ToolHandler, metadata *ToolMetadata) error {
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if handler == nil && metadata == nil {
		return fmt.Errorf("tool %q: handler or metadata required", name)
	}

	if metadata != nil {
		meta := *metadata
		meta.Name = name
		if meta.Parameters == nil {
			meta.Parameters = map[string]any{}
		}
		if err := checkParametersSchema(meta.Parameters); err != nil {
			return fmt.Errorf("tool %q: %w", name, err)
		}
		r.metadata[name] = meta
	} else if _, exists := r.metadata[name]; !exists {
		r.metadata[name] = ToolMetadata{
			Name:        name,
			Description: defaultToolDescription,
			Parameters:  map[string]any{},
		}
	}

	if handler != nil {
		r.handlers[name] = handler
	} else if _, exists := r.handlers[name]; !exists {
		r.handlers[name] = ToolHandlerFunc(func(map[string]any) (any, error) {
			return nil, fmt.Errorf("Tool function not implemented.")
		})
	}
	return nil
}

// Lookup returns the handler registered under name.
func (r *ToolRegistry) Lookup(name string) (ToolHandler, bool) {
	handler, ok := r.handlers[name]
	return handler, ok
}

// GetMetadata returns the metadata registered under name.
func (r *ToolRegistry) GetMetadata(name string) (ToolMetadata, error) {
	meta, ok := r.metadata[name]
	if !ok {
		return ToolMetadata{}, fmt.Errorf("tool %q: %w", name, ErrNotFound)
	}
	return meta, nil
}

// ListMetadata returns the metadata of every registered tool, ordered by
// name for deterministic listings.
func (r *ToolRegistry) ListMetadata() []ToolMetadata {
	names := make([]string, 0, len(r.metadata))
	for name := range r.metadata {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ToolMetadata, 0, len(names))
	for _, name := range names {
		out = append(out, r.metadata[name])
	}
	return out
}

// checkParametersSchema verifies that a non-empty parameters object is a
// loadable JSON schema.
func checkParametersSchema(parameters map[string]any) error {
	if len(parameters) == 0 {
		return nil
	}
	raw, err := json.Marshal(parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters schema: %w", err)
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw)); err != nil {
		return fmt.Errorf("invalid parameters schema: %w", err)
	}
	return nil
}

// ValidateParams checks params against a JSON-schema-like parameters object.
// An empty schema accepts anything. Tool implementations call this before
// executing.
func ValidateParams(schema map[string]any, params map[string]any) error {
	if len(schema) == 0 {
		return nil
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(paramsJSON),
	)
	if err != nil {
		return fmt.Errorf("validate params: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid params: %s", strings.Join(msgs, "; "))
	}
	return nil
}
