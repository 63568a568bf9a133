package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rgoyal8/surveyor/internal/sandbox"
	"github.com/rgoyal8/surveyor/internal/tools"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List available agent tools",
	Long: `List the tools the planning agent can call.

Examples:
  surveyor tools           # List all tools
  surveyor tools --verbose # Show parameter details`,
	Run: func(cmd *cobra.Command, args []string) {
		runTools()
	},
}

// buildToolRegistry assembles the same registry the planning agent uses, so
// the listing never drifts from reality.
func buildToolRegistry() *tools.Registry {
	fs := afero.NewOsFs()
	guard := sandbox.NewGuard(sandbox.Policy{Mode: sandbox.ModeFull, ProjectRoot: "."})
	blacklist := sandbox.NewBlacklist()
	todo := tools.NewTodoList()

	registry := tools.NewRegistry()
	registry.MustRegister(tools.NewTreeTool(fs, guard, blacklist))
	registry.MustRegister(tools.NewReadFileTool(fs, guard, blacklist))
	registry.MustRegister(tools.NewTodoViewTool(todo))
	registry.MustRegister(tools.NewTodoEditTool(todo))
	registry.MustRegister(tools.NewTodoAddTool(todo))
	return registry
}

func runTools() {
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2563EB")).
		Bold(true)

	toolStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF"))

	paramStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#06B6D4"))

	registry := buildToolRegistry()

	fmt.Println(headerStyle.Render("Available Tools"))
	fmt.Println()

	for _, tool := range registry.All() {
		fmt.Printf("  %s\n", toolStyle.Render(tool.Name()))
		fmt.Printf("    %s\n", descStyle.Render(tool.Description()))

		schema := tool.Schema()
		if verbose && len(schema.Properties) > 0 {
			required := make(map[string]bool, len(schema.Required))
			for _, name := range schema.Required {
				required[name] = true
			}
			fmt.Println("    Parameters:")
			for name, prop := range schema.Properties {
				req := ""
				if required[name] {
					req = " (required)"
				}
				fmt.Printf("      %s%s\n", paramStyle.Render(name), req)
				if prop.Description != "" {
					fmt.Printf("        %s\n", descStyle.Render(prop.Description))
				}
			}
		}
		fmt.Println()
	}

	fmt.Println(descStyle.Render(fmt.Sprintf("  Total: %d tools available", registry.Len())))
	if !verbose {
		fmt.Println(descStyle.Render("  Use --verbose for parameter details"))
	}
}
