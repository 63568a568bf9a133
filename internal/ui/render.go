package ui

import (
	"fmt"
	"strings"

	"github.com/rgoyal8/surveyor/internal/usecase"
)

// RenderPlanResult formats a planning result for one-shot (non-interactive)
// output.
func RenderPlanResult(out *usecase.PlanOutput) string {
	s := DefaultStyles()
	var b strings.Builder

	b.WriteString(s.PlanTitle.Render("Objective"))
	b.WriteString("\n")
	b.WriteString(s.AssistantMessage.Render(out.Objective))
	b.WriteString("\n\n")

	if out.Plan != "" {
		b.WriteString(s.PlanTitle.Render("Plan"))
		b.WriteString("\n")
		for _, line := range strings.Split(out.Plan, "\n") {
			style := s.PlanOpen
			if strings.HasPrefix(line, "- [x]") {
				style = s.PlanDone
			}
			b.WriteString("  ")
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if out.AgentReasoning != "" {
		b.WriteString(s.PlanTitle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(s.AssistantMessage.Render(out.AgentReasoning))
		b.WriteString("\n\n")
	}

	status := s.ToolSuccess.Render("Success")
	if !out.Success {
		status = s.ToolError.Render("Failed")
	}
	footer := fmt.Sprintf("%s  |  %d iterations  |  %s",
		status, out.IterationsUsed, out.ExplorationSummary)
	if out.TodoStats != nil {
		footer += fmt.Sprintf("  |  %d/%d todos done",
			out.TodoStats.CompletedItems, out.TodoStats.TotalItems)
	}
	b.WriteString(s.StatusText.Render(footer))
	b.WriteString("\n")

	return b.String()
}

// RenderAskResult formats an ask answer for one-shot output.
func RenderAskResult(out *usecase.AskOutput) string {
	s := DefaultStyles()
	var b strings.Builder

	b.WriteString(s.AssistantMessage.Render(out.Answer))
	b.WriteString("\n")

	if len(out.FilesIncluded) > 0 {
		b.WriteString("\n")
		b.WriteString(s.StatusText.Render(
			fmt.Sprintf("Context: %s", strings.Join(out.FilesIncluded, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderError formats an error for one-shot output.
func RenderError(err error) string {
	s := DefaultStyles()
	return s.ToolError.Render(fmt.Sprintf("Error: %v", err)) + "\n"
}
