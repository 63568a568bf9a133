package llm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

// ScriptedBackend returns a predefined sequence of responses, cycling when
// exhausted. It backs tests and the --dry-run mode, where no model endpoint
// is available.
type ScriptedBackend struct {
	Responses []Response
	calls     int
}

// NewScriptedBackend creates a scripted backend over fixed responses.
func NewScriptedBackend(responses ...Response) *ScriptedBackend {
	return &ScriptedBackend{Responses: responses}
}

// Calls returns how many times Generate has been invoked.
func (s *ScriptedBackend) Calls() int {
	return s.calls
}

// Generate returns the next scripted response. With no script configured it
// improvises a minimal two-step run: invoke the first available tool with
// empty arguments, then finish.
func (s *ScriptedBackend) Generate(ctx context.Context, msgs []types.Message, schemas []tools.FunctionSchema, maxToolCalls int) (*Response, error) {
	s.calls++

	if len(s.Responses) > 0 {
		resp := s.Responses[(s.calls-1)%len(s.Responses)]
		return &resp, nil
	}

	if s.calls == 1 && len(schemas) > 0 {
		name := schemas[0].Function.Name
		return &Response{
			Message: fmt.Sprintf("I'll use the %s tool to help with this task.", name),
			ToolCalls: []types.ToolCall{{
				ID:        NewCallID(),
				Name:      name,
				Arguments: "{}",
			}},
			ShouldContinue: true,
		}, nil
	}

	return &Response{
		Message:        "Task completed successfully.",
		ShouldContinue: false,
	}, nil
}

// NewCallID returns a fresh tool-call correlation id.
func NewCallID() string {
	return "call_" + uuid.NewString()[:8]
}
