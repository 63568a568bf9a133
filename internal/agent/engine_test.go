package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

// errorBackend fails every call.
type errorBackend struct{}

func (errorBackend) Generate(ctx context.Context, msgs []types.Message, schemas []tools.FunctionSchema, maxToolCalls int) (*llm.Response, error) {
	return nil, errors.New("connection refused")
}

// echoTool records its invocations.
type echoTool struct {
	calls []map[string]any
	fail  bool
}

func (e *echoTool) Name() string         { return "echo" }
func (e *echoTool) Description() string  { return "echoes arguments" }
func (e *echoTool) Schema() tools.Schema { return tools.ObjectSchema(nil) }
func (e *echoTool) Execute(ctx context.Context, args map[string]any) tools.ToolResult {
	e.calls = append(e.calls, args)
	if e.fail {
		return tools.Failf("echo broke")
	}
	return tools.OK(map[string]any{"echoed": true})
}

func countRole(msgs []types.Message, role string) int {
	n := 0
	for _, m := range msgs {
		if m.Role == role {
			n++
		}
	}
	return n
}

func TestEngine_ToolCallThenFinish(t *testing.T) {
	tool := &echoTool{}
	registry := tools.NewRegistry()
	registry.MustRegister(tool)

	backend := llm.NewScriptedBackend(
		llm.Response{
			Message: "Let me check.",
			ToolCalls: []types.ToolCall{
				{ID: "call_1", Name: "echo", Arguments: `{"value": 42}`},
			},
			ShouldContinue: false, // overridden: tool calls force continuation
		},
		llm.Response{Message: "Task completed.", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend, Tools: registry})
	result := engine.Run(context.Background(), "do the thing")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	if result.IterationsUsed != 2 {
		t.Fatalf("iterations = %d, want 2", result.IterationsUsed)
	}
	if len(tool.calls) != 1 {
		t.Fatalf("tool calls = %d, want 1", len(tool.calls))
	}
	if tool.calls[0]["value"] != float64(42) {
		t.Fatalf("args = %v", tool.calls[0])
	}
	// user + assistant + tool + assistant
	if len(result.State.Messages) != 4 {
		t.Fatalf("conversation length = %d", len(result.State.Messages))
	}
	if countRole(result.State.Messages, types.RoleTool) != 1 {
		t.Fatal("expected exactly one tool message")
	}
	if result.Output.Summary != "Task completed." {
		t.Fatalf("summary = %q", result.Output.Summary)
	}
}

func TestEngine_MaxIterationsReached(t *testing.T) {
	backend := llm.NewScriptedBackend(
		llm.Response{Message: "still working", ShouldContinue: true},
	)

	engine := New(Config{Backend: backend, MaxIterations: 3})
	result := engine.Run(context.Background(), "never finishes")

	if !result.Success {
		t.Fatalf("hitting the budget is not a failure: %s", result.Error)
	}
	if result.IterationsUsed != 3 {
		t.Fatalf("iterations = %d, want 3", result.IterationsUsed)
	}
	if result.State.ShouldContinue {
		t.Fatal("state should be stopped")
	}
	if result.Output.Extra["stop_reason"] != "max_iterations_reached" {
		t.Fatalf("stop reason = %v", result.Output.Extra["stop_reason"])
	}
}

func TestEngine_BackendError(t *testing.T) {
	engine := New(Config{Backend: errorBackend{}})
	result := engine.Run(context.Background(), "anything")

	if result.Success {
		t.Fatal("backend error should fail the run")
	}
	if !strings.Contains(result.Error, "backend call failed") ||
		!strings.Contains(result.Error, "connection refused") {
		t.Fatalf("error = %q", result.Error)
	}
	if result.IterationsUsed != 1 {
		t.Fatalf("iterations = %d, want 1", result.IterationsUsed)
	}
	// Partial state survives: the initial prompt is recorded.
	if len(result.State.Messages) != 1 || result.State.Messages[0].Role != types.RoleUser {
		t.Fatalf("partial state = %+v", result.State.Messages)
	}
	if result.State.Metadata["stop_reason"] != "backend_error" {
		t.Fatalf("stop reason = %v", result.State.Metadata["stop_reason"])
	}
}

func TestEngine_MalformedArgumentsContinue(t *testing.T) {
	tool := &echoTool{}
	registry := tools.NewRegistry()
	registry.MustRegister(tool)

	backend := llm.NewScriptedBackend(
		llm.Response{
			Message: "calling with junk",
			ToolCalls: []types.ToolCall{
				{ID: "call_1", Name: "echo", Arguments: `{"broken`},
				{ID: "call_2", Name: "echo", Arguments: `{"fine": true}`},
			},
			ShouldContinue: true,
		},
		llm.Response{Message: "Task completed.", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend, Tools: registry})
	result := engine.Run(context.Background(), "go")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	// The malformed call never reached the tool; the good one did.
	if len(tool.calls) != 1 {
		t.Fatalf("tool executions = %d, want 1", len(tool.calls))
	}

	var parseErrMsg string
	for _, m := range result.State.Messages {
		if m.Role == types.RoleTool && m.ToolCallID == "call_1" {
			parseErrMsg = m.Content
		}
	}
	if !strings.Contains(parseErrMsg, "invalid JSON arguments") ||
		!strings.Contains(parseErrMsg, "echo") {
		t.Fatalf("parse error message = %q", parseErrMsg)
	}
}

func TestEngine_EmptyArgumentsAllowed(t *testing.T) {
	tool := &echoTool{}
	registry := tools.NewRegistry()
	registry.MustRegister(tool)

	backend := llm.NewScriptedBackend(
		llm.Response{
			ToolCalls:      []types.ToolCall{{ID: "call_1", Name: "echo", Arguments: "  "}},
			ShouldContinue: true,
		},
		llm.Response{Message: "Task completed.", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend, Tools: registry})
	result := engine.Run(context.Background(), "go")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	if len(tool.calls) != 1 {
		t.Fatalf("tool executions = %d, want 1", len(tool.calls))
	}
}

func TestEngine_ReadFileTracksExploration(t *testing.T) {
	registry := tools.NewRegistry()
	registry.MustRegister(&fakeReadFile{})

	backend := llm.NewScriptedBackend(
		llm.Response{
			ToolCalls: []types.ToolCall{
				{ID: "call_1", Name: "read_file", Arguments: `{"path": "main.go"}`},
				{ID: "call_2", Name: "read_file", Arguments: `{"path": "missing.go"}`},
			},
			ShouldContinue: true,
		},
		llm.Response{Message: "Task completed.", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend, Tools: registry})
	result := engine.Run(context.Background(), "explore")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	// Only the successful read is recorded.
	files := result.State.FilesExplored()
	if len(files) != 1 || files[0] != "main.go" {
		t.Fatalf("files explored = %v", files)
	}
	if result.Output.ExplorationSummary != "Explored 1 file: main.go" {
		t.Fatalf("summary = %q", result.Output.ExplorationSummary)
	}
}

// fakeReadFile succeeds for main.go only.
type fakeReadFile struct{}

func (fakeReadFile) Name() string         { return "read_file" }
func (fakeReadFile) Description() string  { return "reads files" }
func (fakeReadFile) Schema() tools.Schema { return tools.ObjectSchema(nil) }
func (fakeReadFile) Execute(ctx context.Context, args map[string]any) tools.ToolResult {
	if args["path"] == "main.go" {
		return tools.OK(map[string]any{"content": "package main"})
	}
	return tools.Failf("file does not exist")
}

func TestEngine_TodoOutput(t *testing.T) {
	state := NewState()
	todo := state.InitTodoState()

	registry := tools.NewRegistry()
	registry.MustRegister(tools.NewTodoAddTool(todo))

	backend := llm.NewScriptedBackend(
		llm.Response{
			ToolCalls: []types.ToolCall{
				{ID: "call_1", Name: "todo_add", Arguments: `{"text": "survey the code"}`},
			},
			ShouldContinue: true,
		},
		llm.Response{Message: "Task completed.", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend, Tools: registry, State: state})
	result := engine.Run(context.Background(), "plan it")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	if result.Output.TodoMarkdown != "- [ ] 1. survey the code" {
		t.Fatalf("todo markdown = %q", result.Output.TodoMarkdown)
	}
	if result.Output.TodoStats == nil || result.Output.TodoStats.TotalItems != 1 {
		t.Fatalf("todo stats = %+v", result.Output.TodoStats)
	}
	if !strings.Contains(result.Summary(), "created todo plan") {
		t.Fatalf("result summary = %q", result.Summary())
	}
}

func TestEngine_NoToolsAdoptsBackendHint(t *testing.T) {
	backend := llm.NewScriptedBackend(
		llm.Response{Message: "all done here", ShouldContinue: false},
	)

	engine := New(Config{Backend: backend})
	result := engine.Run(context.Background(), "quick question")

	if !result.Success {
		t.Fatalf("run failed: %s", result.Error)
	}
	if result.IterationsUsed != 1 {
		t.Fatalf("iterations = %d, want 1", result.IterationsUsed)
	}
	if _, hasReason := result.State.Metadata["stop_reason"]; hasReason {
		t.Fatalf("natural stop should not record a reason: %v", result.State.Metadata)
	}
}
