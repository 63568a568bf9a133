// Package agent implements the iterative execution engine that drives a
// model backend through a conversation, dispatching requested tool calls
// and accumulating run state until the backend signals completion or the
// iteration budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

const (
	defaultMaxIterations = 15
	defaultMaxToolCalls  = 5
)

// Config assembles an Engine. Zero-value fields get defaults.
type Config struct {
	Backend       llm.Backend
	Tools         *tools.Registry
	State         *State
	MaxIterations int
	MaxToolCalls  int
	Logger        *zap.Logger
}

// Engine runs the agent loop against a backend and a tool registry.
type Engine struct {
	backend       llm.Backend
	tools         *tools.Registry
	state         *State
	maxIterations int
	maxToolCalls  int
	logger        *zap.Logger
}

// New creates an engine from the given config, filling in defaults for the
// state, limits, and logger.
func New(cfg Config) *Engine {
	if cfg.State == nil {
		cfg.State = NewState()
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.MaxToolCalls <= 0 {
		cfg.MaxToolCalls = defaultMaxToolCalls
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Tools == nil {
		cfg.Tools = tools.NewRegistry()
	}
	return &Engine{
		backend:       cfg.Backend,
		tools:         cfg.Tools,
		state:         cfg.State,
		maxIterations: cfg.MaxIterations,
		maxToolCalls:  cfg.MaxToolCalls,
		logger:        cfg.Logger,
	}
}

// State exposes the engine's run state.
func (e *Engine) State() *State {
	return e.state
}

// Output is the structured summary of a finished run.
type Output struct {
	Summary            string           `json:"agent_summary"`
	IterationsUsed     int              `json:"iterations_used"`
	ConversationLength int              `json:"conversation_length"`
	ExplorationSummary string           `json:"exploration_summary"`
	FilesExplored      []string         `json:"files_explored"`
	TodoMarkdown       string           `json:"todo_list,omitempty"`
	TodoStats          *tools.TodoStats `json:"todo_stats,omitempty"`
	Extra              map[string]any   `json:"extra,omitempty"`
}

// Result is the terminal outcome of a run. On failure the state still holds
// whatever the run accumulated before the error.
type Result struct {
	Success        bool
	Output         Output
	State          *State
	IterationsUsed int
	Error          string
}

// Summary returns a one-line human description of the run outcome.
func (r *Result) Summary() string {
	if !r.Success {
		return fmt.Sprintf("Failed after %d iterations: %s", r.IterationsUsed, r.Error)
	}
	s := fmt.Sprintf("Completed successfully in %d iterations", r.IterationsUsed)
	if n := len(r.State.FilesExplored()); n > 0 {
		s += fmt.Sprintf(", explored %d files", n)
	}
	if todo := r.State.TodoList(); todo != nil && todo.Len() > 0 {
		s += ", created todo plan"
	}
	return s
}

// Run executes the agent loop for an initial prompt. It never panics: a
// panic anywhere in the loop is converted into a failed Result carrying the
// partial state.
func (e *Engine) Run(ctx context.Context, initialPrompt string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("agent run panicked", zap.Any("panic", r))
			e.state.StopExecution("panic")
			result = &Result{
				Success:        false,
				State:          e.state,
				IterationsUsed: e.state.IterationCount,
				Error:          fmt.Sprintf("agent run panicked: %v", r),
			}
		}
	}()

	e.state.AddUserMessage(initialPrompt)
	schemas := e.tools.FunctionSchemas()

	for e.state.IterationCount < e.maxIterations && e.state.ShouldContinue {
		e.state.IncrementIteration()
		e.logger.Debug("agent iteration",
			zap.Int("iteration", e.state.IterationCount),
			zap.Int("conversation_length", len(e.state.Messages)))

		resp, err := e.backend.Generate(ctx, e.state.Messages, schemas, e.maxToolCalls)
		if err != nil {
			e.logger.Error("backend call failed", zap.Error(err))
			e.state.StopExecution("backend_error")
			return &Result{
				Success:        false,
				State:          e.state,
				IterationsUsed: e.state.IterationCount,
				Error:          fmt.Sprintf("backend call failed: %v", err),
			}
		}

		e.state.AddAssistantMessage(resp.Message, resp.ToolCalls)

		if resp.HasToolCalls() {
			e.executeToolCalls(ctx, resp.ToolCalls)
			// Tool results need another model pass regardless of what
			// the backend hinted.
			e.state.ShouldContinue = true
			continue
		}

		e.state.ShouldContinue = resp.ShouldContinue
	}

	if e.state.IterationCount >= e.maxIterations && e.state.ShouldContinue {
		e.logger.Warn("iteration budget exhausted", zap.Int("max_iterations", e.maxIterations))
		e.state.StopExecution("max_iterations_reached")
	}

	return &Result{
		Success:        true,
		Output:         e.buildOutput(),
		State:          e.state,
		IterationsUsed: e.state.IterationCount,
	}
}

func (e *Engine) executeToolCalls(ctx context.Context, calls []types.ToolCall) {
	for _, call := range calls {
		e.executeToolCall(ctx, call)
	}
}

// executeToolCall runs one tool call in isolation: a malformed call or a
// panicking tool produces an error-bearing tool message and the batch moves
// on.
func (e *Engine) executeToolCall(ctx context.Context, call types.ToolCall) {
	defer func() {
		if r := recover(); r != nil {
			id := call.ID
			if id == "" {
				id = "unknown"
			}
			e.logger.Error("tool call panicked",
				zap.String("tool", call.Name),
				zap.Any("panic", r))
			e.state.AddToolMessage(fmt.Sprintf("Error: tool %s panicked: %v", call.Name, r), id)
		}
	}()

	args := make(map[string]any)
	if raw := strings.TrimSpace(call.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			e.logger.Warn("malformed tool arguments",
				zap.String("tool", call.Name),
				zap.Error(err))
			e.state.AddToolMessage(
				fmt.Sprintf("Error: invalid JSON arguments for tool %s: %v", call.Name, err),
				call.ID)
			return
		}
	}

	e.logger.Debug("executing tool", zap.String("tool", call.Name), zap.String("id", call.ID))
	result := e.tools.Execute(ctx, call.Name, args)

	if call.Name == "read_file" && result.Success {
		if path, ok := args["path"].(string); ok {
			e.state.AddExploredFile(path)
		}
	}

	e.state.AddToolMessage(formatToolResult(call.Name, result), call.ID)
}

// formatToolResult renders a tool result for the conversation. Structured
// data is pretty-printed JSON so the model can read field names back.
func formatToolResult(name string, result tools.ToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Error: %s", result.Error)
	}
	switch data := result.Data.(type) {
	case nil:
		return fmt.Sprintf("%s executed successfully", name)
	case string:
		return data
	default:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Sprintf("%s executed successfully", name)
		}
		return string(out)
	}
}

func (e *Engine) buildOutput() Output {
	summary := "No final message"
	if msg, ok := e.state.LastAssistantMessage(); ok && msg.Content != "" {
		summary = msg.Content
	}

	out := Output{
		Summary:            summary,
		IterationsUsed:     e.state.IterationCount,
		ConversationLength: len(e.state.Messages),
		ExplorationSummary: e.state.ExplorationSummary(),
		FilesExplored:      e.state.FilesExplored(),
	}

	if len(e.state.Metadata) > 0 {
		out.Extra = make(map[string]any, len(e.state.Metadata))
		for k, v := range e.state.Metadata {
			out.Extra[k] = v
		}
	}

	if todo := e.state.TodoList(); todo != nil {
		out.TodoMarkdown = todo.Markdown()
		stats := todo.Stats()
		out.TodoStats = &stats
	}

	return out
}
