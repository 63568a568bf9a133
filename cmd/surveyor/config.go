package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgoyal8/surveyor/internal/config"
)

var (
	configInit bool
	configShow bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage surveyor configuration",
	Long: `Inspect or initialize the configuration file.

Examples:
  surveyor config --show   # Print the effective configuration
  surveyor config --init   # Write defaults to ~/.surveyor/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case configInit:
			runConfigInit()
		case configShow:
			runConfigShow()
		default:
			cmd.Help()
		}
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file")
	configCmd.Flags().BoolVar(&configShow, "show", false, "Print the effective configuration")
}

func runConfigInit() {
	path, err := config.DefaultPath()
	if err != nil {
		printError("resolve config path", err)
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s\n", path)
		return
	}
	if err := config.Save(config.Default(), path); err != nil {
		printError("write config", err)
		os.Exit(1)
	}

	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	fmt.Println(okStyle.Render("Created " + path))
}

func runConfigShow() {
	cfg := loadConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		printError("render config", err)
		os.Exit(1)
	}

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2563EB")).
		Bold(true)
	fmt.Println(headerStyle.Render("Effective configuration"))
	fmt.Println()
	fmt.Print(string(data))
}
