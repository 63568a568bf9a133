package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/types"
	"github.com/rgoyal8/surveyor/internal/ui"
	"github.com/rgoyal8/surveyor/internal/usecase"
)

var (
	planMode         string
	planRisk         string
	planDepth        int
	planIterations   int
	planContextFiles []string
	planRoot         string
	planDryRun       bool
	planInteractive  bool
)

var planCmd = &cobra.Command{
	Use:   "plan [objective]",
	Short: "Explore the project and produce a structured plan",
	Long: `Run the planning agent against the current project.

The agent explores the directory tree and file contents read-only, builds
a numbered todo plan for the objective, and reports a summary.

Examples:
  surveyor plan "Add retry logic to the payment client"
  surveyor plan "Migrate storage to Postgres" --risk conservative
  surveyor plan --it`,
	Run: func(cmd *cobra.Command, args []string) {
		if planInteractive {
			runPlanInteractive()
			return
		}
		if len(args) == 0 {
			cmd.Help()
			return
		}
		runPlanOneShot(strings.Join(args, " "))
	},
}

func init() {
	planCmd.Flags().StringVar(&planMode, "mode", "explore+plan", "Planning mode: plan or explore+plan")
	planCmd.Flags().StringVar(&planRisk, "risk", "moderate", "Risk approach: conservative, moderate, aggressive")
	planCmd.Flags().IntVar(&planDepth, "depth", 0, "Exploration tree depth (default from config)")
	planCmd.Flags().IntVar(&planIterations, "max-iterations", 0, "Iteration budget (default from config)")
	planCmd.Flags().StringSliceVar(&planContextFiles, "context", nil, "Files the agent should prioritize reading")
	planCmd.Flags().StringVar(&planRoot, "root", ".", "Project root to explore")
	planCmd.Flags().BoolVar(&planDryRun, "dry-run", false, "Use a scripted backend instead of a live model")
	planCmd.Flags().BoolVar(&planInteractive, "it", false, "Start interactive mode")
}

func newPlanner() *usecase.Planner {
	cfg := loadConfig()
	logger := createLogger()

	var backend llm.Backend
	if planDryRun {
		backend = llm.NewScriptedBackend()
	}
	return usecase.NewPlanner(cfg, backend, nil, logger)
}

func runPlanOneShot(objective string) {
	planner := newPlanner()

	out, err := planner.Run(context.Background(), usecase.PlanInput{
		Objective:        objective,
		Mode:             planMode,
		RiskLevel:        planRisk,
		ExplorationDepth: planDepth,
		MaxIterations:    planIterations,
		ContextFiles:     planContextFiles,
		ProjectRoot:      planRoot,
	})
	if err != nil {
		printError("planning failed", err)
		os.Exit(1)
	}

	fmt.Print(ui.RenderPlanResult(out))
	if !out.Success {
		os.Exit(1)
	}
}

func runPlanInteractive() {
	planner := newPlanner()

	run := func(objective string) tea.Cmd {
		return func() tea.Msg {
			out, err := planner.Run(context.Background(), usecase.PlanInput{
				Objective:        objective,
				Mode:             planMode,
				RiskLevel:        planRisk,
				ExplorationDepth: planDepth,
				MaxIterations:    planIterations,
				ProjectRoot:      planRoot,
			})
			if err != nil {
				return types.RunEvent{Phase: types.PhaseError, Err: err}
			}
			if !out.Success {
				return types.RunEvent{
					Phase: types.PhaseError,
					Err:   fmt.Errorf("%s", out.AgentReasoning),
				}
			}
			return types.RunEvent{
				Phase:  types.PhaseResponding,
				Detail: out.Plan,
				Final:  out.AgentReasoning,
			}
		}
	}

	p := tea.NewProgram(ui.NewModel(run), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		printError("interactive session failed", err)
		os.Exit(1)
	}
}
