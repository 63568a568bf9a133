package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgoyal8/surveyor/internal/config"
)

var (
	configPath  string
	verbose     bool
	interactive bool
)

var rootCmd = &cobra.Command{
	Use:   "surveyor",
	Short: "Agentic project exploration and planning",
	Long: `
███████╗██╗   ██╗██████╗ ██╗   ██╗███████╗██╗   ██╗
██╔════╝██║   ██║██╔══██╗██║   ██║██╔════╝╚██╗ ██╔╝
███████╗██║   ██║██████╔╝██║   ██║█████╗   ╚████╔╝
╚════██║██║   ██║██╔══██╗╚██╗ ██╔╝██╔══╝    ╚██╔╝
███████║╚██████╔╝██║  ██║ ╚████╔╝ ███████╗   ██║
╚══════╝ ╚═════╝ ╚═╝  ╚═╝  ╚═══╝  ╚══════╝   ╚═╝

  An LLM agent that explores your project read-only and produces
  structured, reviewable plans.

Usage:
  surveyor plan "Add retry logic to the payment client"
  surveyor ask "What does the ingest package do?" --path internal/ingest
  surveyor plan --it`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Best effort; a missing .env is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Warning: Could not load config: %v\n", err)
		return config.Default()
	}
	return cfg
}

func createLogger() *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func printError(msg string, err error) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).
		Render(fmt.Sprintf("Error: %s: %v", msg, err)))
}
