// Package types defines shared data structures for surveyor.
package types

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents one turn in the agent conversation.
type Message struct {
	Role       string     `json:"role"` // "user", "assistant", "tool"
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // set when Role == "tool"
}

// ToolCall represents a model-requested invocation of a named tool.
// Arguments is the raw JSON object exactly as the model produced it;
// parsing it is the engine's job so that malformed payloads can be
// surfaced back to the model instead of failing the run.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// RunPhase represents the current phase of agent processing.
type RunPhase int

const (
	PhaseIdle RunPhase = iota
	PhaseThinking
	PhaseToolExecuting
	PhaseResponding
	PhaseError
)

// String returns a human-readable phase name.
func (p RunPhase) String() string {
	names := [...]string{
		"Idle",
		"Thinking",
		"Executing tool",
		"Responding",
		"Error",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// RunEvent is a progress notification from a run to an observer such as the
// interactive UI. Final and Err are only set on terminal events.
type RunEvent struct {
	Phase  RunPhase
	Tool   string
	Detail string
	Final  string
	Err    error
}
