// Package llm provides model backends for the agent engine.
//
// A backend turns the conversation so far plus the available tool schemas
// into the model's next step: response text, zero or more requested tool
// calls, and a continuation hint. How the continuation hint is decided is
// backend policy; the engine only overrides it when tool calls are present.
package llm

import (
	"context"

	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

// Response is one step of model output.
type Response struct {
	Message        string
	ToolCalls      []types.ToolCall
	ShouldContinue bool
}

// HasToolCalls reports whether the response requests any tool invocations.
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Backend is the model-calling capability the engine consumes. A backend
// may signal failure either by returning an error (terminating the run) or
// by returning a degraded response with ShouldContinue=false.
type Backend interface {
	Generate(ctx context.Context, msgs []types.Message, schemas []tools.FunctionSchema, maxToolCalls int) (*Response, error)
}
