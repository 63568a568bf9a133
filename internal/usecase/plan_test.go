package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/rgoyal8/surveyor/internal/config"
	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/types"
)

func planFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/repo/main.go":   "package main\n",
		"/repo/README.md": "# demo project\n",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fs
}

func TestPlanner_Run(t *testing.T) {
	backend := llm.NewScriptedBackend(
		llm.Response{
			Message: "Exploring first.",
			ToolCalls: []types.ToolCall{
				{ID: "call_1", Name: "read_file", Arguments: `{"path": "main.go"}`},
				{ID: "call_2", Name: "todo_add", Arguments: `{"text": "review main entrypoint"}`},
				{ID: "call_3", Name: "todo_add", Arguments: `{"text": "add integration tests"}`},
			},
			ShouldContinue: true,
		},
		llm.Response{Message: "Task completed: plan is ready.", ShouldContinue: false},
	)

	planner := NewPlanner(config.Default(), backend, planFs(t), nil)
	out, err := planner.Run(context.Background(), PlanInput{
		Objective:   "Harden the main entrypoint against bad input",
		ProjectRoot: "/repo",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !out.Success {
		t.Fatalf("planning failed: %s", out.AgentReasoning)
	}
	if !strings.Contains(out.Plan, "1. review main entrypoint") ||
		!strings.Contains(out.Plan, "2. add integration tests") {
		t.Fatalf("plan = %q", out.Plan)
	}
	if out.TodoStats == nil || out.TodoStats.TotalItems != 2 {
		t.Fatalf("stats = %+v", out.TodoStats)
	}
	if out.ExplorationSummary != "Explored 1 file: main.go" {
		t.Fatalf("exploration = %q", out.ExplorationSummary)
	}
	if out.AgentReasoning != "Task completed: plan is ready." {
		t.Fatalf("reasoning = %q", out.AgentReasoning)
	}
	if out.IterationsUsed != 2 {
		t.Fatalf("iterations = %d", out.IterationsUsed)
	}
}

func TestPlanner_RejectsBadObjective(t *testing.T) {
	planner := NewPlanner(config.Default(), llm.NewScriptedBackend(), planFs(t), nil)

	if _, err := planner.Run(context.Background(), PlanInput{Objective: "hi"}); err == nil {
		t.Fatal("short objective should be rejected before any model call")
	}
}

func TestPlanner_DryRunDefaults(t *testing.T) {
	// An unscripted backend walks the default two-step path: one tool call,
	// then completion.
	planner := NewPlanner(config.Default(), llm.NewScriptedBackend(), planFs(t), nil)

	out, err := planner.Run(context.Background(), PlanInput{
		Objective:   "Survey the repository layout and suggest cleanups",
		ProjectRoot: "/repo",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Success {
		t.Fatalf("dry run failed: %s", out.AgentReasoning)
	}
	if out.IterationsUsed != 2 {
		t.Fatalf("iterations = %d", out.IterationsUsed)
	}
}

func TestAsker_Run(t *testing.T) {
	backend := llm.NewScriptedBackend(
		llm.Response{Message: "It is a demo project.", ShouldContinue: false},
	)

	asker := NewAsker(config.Default(), backend, planFs(t), nil)
	out, err := asker.Run(context.Background(), AskInput{
		Query:       "What is this project about?",
		Paths:       []string{"README.md"},
		ProjectRoot: "/repo",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if out.Answer != "It is a demo project." {
		t.Fatalf("answer = %q", out.Answer)
	}
	if len(out.FilesIncluded) != 1 || out.FilesIncluded[0] != "README.md" {
		t.Fatalf("files included = %v", out.FilesIncluded)
	}
}
