// Package usecase wires validated user requests into agent runs and shapes
// their results for presentation.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rgoyal8/surveyor/internal/agent"
	"github.com/rgoyal8/surveyor/internal/config"
	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/sandbox"
	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/validator"
)

// PlanInput is a validated-on-entry planning request.
type PlanInput struct {
	Objective        string
	Mode             string // "plan" or "explore+plan"
	RiskLevel        string
	ExplorationDepth int
	MaxIterations    int
	ContextFiles     []string
	ProjectRoot      string
}

// PlanOutput is the presentable result of a planning run.
type PlanOutput struct {
	Objective          string           `json:"objective"`
	Plan               string           `json:"plan"`
	ExplorationSummary string           `json:"exploration_summary"`
	AgentReasoning     string           `json:"agent_reasoning"`
	IterationsUsed     int              `json:"iterations_used"`
	FilesExplored      []string         `json:"files_explored"`
	TodoStats          *tools.TodoStats `json:"todo_stats,omitempty"`
	Success            bool             `json:"success"`
}

// Planner runs the planning use case: explore a project read-only, build a
// todo plan, and summarize.
type Planner struct {
	cfg     config.Config
	backend llm.Backend
	fs      afero.Fs
	logger  *zap.Logger
}

// NewPlanner creates a planner. A nil backend gets the configured HTTP
// client; a nil fs gets the OS filesystem.
func NewPlanner(cfg config.Config, backend llm.Backend, fs afero.Fs, logger *zap.Logger) *Planner {
	if backend == nil {
		backend = llm.NewClient(
			cfg.LLM.Endpoint,
			cfg.LLM.APIKey,
			cfg.LLM.Model,
			time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
			cfg.LLM.Temperature,
			cfg.LLM.MaxTokens,
		)
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{cfg: cfg, backend: backend, fs: fs, logger: logger}
}

// Run executes a planning run for the given input.
func (p *Planner) Run(ctx context.Context, in PlanInput) (*PlanOutput, error) {
	v := validator.NewInputValidator()
	if err := v.Validate(in.Objective); err != nil {
		return nil, fmt.Errorf("invalid objective: %w", err)
	}
	in.Objective = v.Sanitize(in.Objective)

	if in.Mode == "" {
		in.Mode = "explore+plan"
	}
	if in.RiskLevel == "" {
		in.RiskLevel = "moderate"
	}
	if in.ExplorationDepth <= 0 {
		in.ExplorationDepth = p.cfg.Agent.ExplorationDepth
	}
	if in.MaxIterations <= 0 {
		in.MaxIterations = p.cfg.Agent.MaxIterations
	}
	if in.ProjectRoot == "" {
		in.ProjectRoot = "."
	}

	// Planning is read-only regardless of the configured sandbox mode.
	guard := sandbox.NewGuard(sandbox.Policy{
		Mode:        sandbox.ModeFull,
		ProjectRoot: in.ProjectRoot,
	})
	blacklist := sandbox.NewBlacklist(p.cfg.Sandbox.ExtraIgnores...)

	state := agent.NewState()
	todo := state.InitTodoState()

	registry := tools.NewRegistry()
	registry.MustRegister(tools.NewTreeTool(p.fs, guard, blacklist))
	registry.MustRegister(tools.NewReadFileTool(p.fs, guard, blacklist))
	registry.MustRegister(tools.NewTodoViewTool(todo))
	registry.MustRegister(tools.NewTodoEditTool(todo))
	registry.MustRegister(tools.NewTodoAddTool(todo))

	engine := agent.New(agent.Config{
		Backend:       p.backend,
		Tools:         registry,
		State:         state,
		MaxIterations: in.MaxIterations,
		MaxToolCalls:  p.cfg.Agent.MaxToolCalls,
		Logger:        p.logger,
	})

	prompt := llm.BuildPlanPrompt(llm.PlanPromptInput{
		Objective:        in.Objective,
		Mode:             in.Mode,
		RiskLevel:        in.RiskLevel,
		ExplorationDepth: in.ExplorationDepth,
		ContextFiles:     in.ContextFiles,
	})

	p.logger.Info("starting planning run",
		zap.String("mode", in.Mode),
		zap.String("risk_level", in.RiskLevel),
		zap.Int("max_iterations", in.MaxIterations))

	result := engine.Run(ctx, prompt)
	return convertResult(in.Objective, result), nil
}

// convertResult shapes an engine result into planner output. Failed runs
// still surface whatever plan state accumulated before the error.
func convertResult(objective string, result *agent.Result) *PlanOutput {
	out := &PlanOutput{
		Objective:          objective,
		ExplorationSummary: result.State.ExplorationSummary(),
		IterationsUsed:     result.IterationsUsed,
		FilesExplored:      result.State.FilesExplored(),
		Success:            result.Success,
	}

	if todo := result.State.TodoList(); todo != nil {
		out.Plan = todo.Markdown()
		stats := todo.Stats()
		out.TodoStats = &stats
	}

	if !result.Success {
		out.AgentReasoning = fmt.Sprintf("Planning failed: %s", result.Error)
		return out
	}

	out.AgentReasoning = result.Output.Summary
	return out
}
