package agent

import (
	"fmt"
	"sort"

	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

// State is the accumulated record of one agent run: the conversation,
// iteration counters, exploration tracking, and the optional todo list.
// State is not safe for concurrent use; each run owns its own State.
type State struct {
	Messages       []types.Message
	IterationCount int
	ShouldContinue bool
	Metadata       map[string]any

	filesExplored map[string]struct{}
	todo          *tools.TodoList
}

// NewState creates a fresh run state ready to continue.
func NewState() *State {
	return &State{
		ShouldContinue: true,
		Metadata:       make(map[string]any),
		filesExplored:  make(map[string]struct{}),
	}
}

// AddUserMessage appends a user message to the conversation.
func (s *State) AddUserMessage(content string) {
	s.Messages = append(s.Messages, types.Message{
		Role:    types.RoleUser,
		Content: content,
	})
}

// AddAssistantMessage appends an assistant message, including any tool calls
// it requested. Empty content with tool calls is valid.
func (s *State) AddAssistantMessage(content string, toolCalls []types.ToolCall) {
	s.Messages = append(s.Messages, types.Message{
		Role:      types.RoleAssistant,
		Content:   content,
		ToolCalls: toolCalls,
	})
}

// AddToolMessage appends a tool result message correlated to a tool call.
func (s *State) AddToolMessage(content, toolCallID string) {
	s.Messages = append(s.Messages, types.Message{
		Role:       types.RoleTool,
		Content:    content,
		ToolCallID: toolCallID,
	})
}

// LastAssistantMessage returns the most recent assistant message, if any.
func (s *State) LastAssistantMessage() (types.Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == types.RoleAssistant {
			return s.Messages[i], true
		}
	}
	return types.Message{}, false
}

// AddExploredFile records a file path the agent has read. Duplicates are
// collapsed.
func (s *State) AddExploredFile(path string) {
	s.filesExplored[path] = struct{}{}
}

// FilesExplored returns the explored paths in sorted order.
func (s *State) FilesExplored() []string {
	out := make([]string, 0, len(s.filesExplored))
	for path := range s.filesExplored {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// ExplorationSummary returns a human-readable one-liner about exploration.
func (s *State) ExplorationSummary() string {
	switch n := len(s.filesExplored); n {
	case 0:
		return "No files explored"
	case 1:
		return fmt.Sprintf("Explored 1 file: %s", s.FilesExplored()[0])
	default:
		return fmt.Sprintf("Explored %d files and directories", n)
	}
}

// IncrementIteration bumps the iteration counter.
func (s *State) IncrementIteration() {
	s.IterationCount++
}

// StopExecution marks the run as finished. Once stopped a state never
// resumes; the reason, when given, is recorded in Metadata under
// "stop_reason".
func (s *State) StopExecution(reason string) {
	s.ShouldContinue = false
	if reason != "" {
		s.Metadata["stop_reason"] = reason
	}
}

// InitTodoState lazily creates the run's todo list. Calling it again
// returns the existing list untouched.
func (s *State) InitTodoState() *tools.TodoList {
	if s.todo == nil {
		s.todo = tools.NewTodoList()
	}
	return s.todo
}

// TodoList returns the run's todo list, or nil if never initialized.
func (s *State) TodoList() *tools.TodoList {
	return s.todo
}
