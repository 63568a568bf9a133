package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgoyal8/surveyor/internal/llm"
	"github.com/rgoyal8/surveyor/internal/ui"
	"github.com/rgoyal8/surveyor/internal/usecase"
)

var (
	askStyle  string
	askPaths  []string
	askRoot   string
	askDryRun bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off question about the project",
	Long: `Answer a question in a single model call, without the agent loop.

With --path, matching project files are inlined as context, subject to the
security blacklist and ingest size caps.

Examples:
  surveyor ask "What does the ingest package do?" --path internal/ingest
  surveyor ask "Summarize the README" --path README.md --style bullets`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
		runAsk(strings.Join(args, " "))
	},
}

func init() {
	askCmd.Flags().StringVar(&askStyle, "style", "plain", "Answer style: plain, summary, bullets")
	askCmd.Flags().StringSliceVar(&askPaths, "path", nil, "Project paths to include as context")
	askCmd.Flags().StringVar(&askRoot, "root", ".", "Project root")
	askCmd.Flags().BoolVar(&askDryRun, "dry-run", false, "Use a scripted backend instead of a live model")
}

func runAsk(question string) {
	cfg := loadConfig()
	logger := createLogger()

	var backend llm.Backend
	if askDryRun {
		backend = llm.NewScriptedBackend()
	}
	asker := usecase.NewAsker(cfg, backend, nil, logger)

	out, err := asker.Run(context.Background(), usecase.AskInput{
		Query:       question,
		Style:       askStyle,
		Paths:       askPaths,
		ProjectRoot: askRoot,
	})
	if err != nil {
		printError("ask failed", err)
		os.Exit(1)
	}

	fmt.Print(ui.RenderAskResult(out))
}
