// Package tools provides the tool contract and registry for the agent loop.
//
// A Tool is a named capability the model can invoke through function calling.
// Tools never propagate faults: every failure mode, including panics inside
// Execute, is converted into a ToolResult by the registry so that the agent
// loop can surface it to the model and keep going.
package tools

import (
	"context"
	"fmt"
	"strings"
)

// ToolResult is the outcome of a single tool execution. Exactly one of
// Data/Error carries information: success implies no error, failure
// implies no data.
type ToolResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK returns a successful result carrying data.
func OK(data any) ToolResult {
	return ToolResult{Success: true, Data: data}
}

// Failf returns a failed result with a formatted error message.
func Failf(format string, args ...any) ToolResult {
	return ToolResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Tool is the interface implemented by every agent capability.
type Tool interface {
	// Name returns the unique identifier used for dispatch and as the
	// model-facing function name.
	Name() string

	// Description returns a human-readable description for the model.
	Description() string

	// Schema returns the JSON Schema for the tool's parameters.
	Schema() Schema

	// Execute runs the tool with arguments already parsed from JSON.
	Execute(ctx context.Context, args map[string]any) ToolResult
}

// FunctionSchema is the model-facing function-calling envelope for a tool.
type FunctionSchema struct {
	Type     string         `json:"type"`
	Function FunctionDetail `json:"function"`
}

// FunctionDetail carries the name, description, and parameter schema.
type FunctionDetail struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// NewFunctionSchema packages a tool into the shape function-calling
// backends expect.
func NewFunctionSchema(t Tool) FunctionSchema {
	return FunctionSchema{
		Type: "function",
		Function: FunctionDetail{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Schema(),
		},
	}
}

// Registry manages tool registration and dispatch.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry. Registration is a one-time,
// build-time operation: a duplicate name is an error, never a silent
// override.
func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister adds a tool to the registry, panicking on error. Intended
// for wiring code where a duplicate name is a programming mistake.
func (r *Registry) MustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// All returns all registered tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// FunctionSchemas returns the model-facing schemas for all tools in
// registration order.
func (r *Registry) FunctionSchemas() []FunctionSchema {
	out := make([]FunctionSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, NewFunctionSchema(r.tools[name]))
	}
	return out
}

// Execute dispatches a tool by name. It is total: an unknown name, invalid
// arguments, or a panic inside the tool all become failure results. Callers
// never need to handle errors or panics from dispatch.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result ToolResult) {
	tool, exists := r.Get(name)
	if !exists {
		return Failf("tool %q not found. Available tools: %s", name, strings.Join(r.Names(), ", "))
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = Failf("tool %q execution failed: %v", name, rec)
		}
	}()

	schema := tool.Schema()
	if err := schema.Validate(args); err != nil {
		return Failf("invalid arguments for %q: %v", name, err)
	}

	return tool.Execute(ctx, schema.ApplyDefaults(args))
}
