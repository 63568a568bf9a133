package llm

import (
	"fmt"
	"strings"
)

// PlanPromptInput carries the knobs that shape the planning prompt.
type PlanPromptInput struct {
	Objective        string
	Mode             string // "plan" or "explore+plan"
	RiskLevel        string // "conservative", "moderate", "aggressive"
	ExplorationDepth int
	ContextFiles     []string
}

var riskGuidance = map[string]string{
	"conservative": "Take a conservative approach prioritizing safety and stability. " +
		"Focus on thorough testing, gradual implementation, and minimal risk. " +
		"Prefer well-established patterns and avoid experimental approaches.",
	"moderate": "Balance speed with safety. Consider both quick wins and long-term stability. " +
		"Take reasonable risks where benefits are clear, but maintain good practices.",
	"aggressive": "Move fast and prioritize rapid implementation. Accept higher risks for speed. " +
		"Focus on minimum viable solutions and iterate quickly. " +
		"Use cutting-edge approaches where they provide clear advantages.",
}

var modeGuidance = map[string]string{
	"plan": "Focus primarily on creating a comprehensive plan. " +
		"Do minimal exploration, just enough to understand the context.",
	"explore+plan": "First thoroughly explore and understand the project structure, " +
		"then create a detailed, context-aware plan.",
}

// BuildPlanPrompt renders the initial prompt for a planning run.
func BuildPlanPrompt(in PlanPromptInput) string {
	mode, ok := modeGuidance[in.Mode]
	if !ok {
		mode = "Create comprehensive plan"
	}
	risk, ok := riskGuidance[in.RiskLevel]
	if !ok {
		risk = "Use balanced approach"
	}

	var sb strings.Builder
	sb.WriteString("You are an expert technical planning agent helping with software development tasks.\n\n")
	fmt.Fprintf(&sb, "OBJECTIVE: %s\n\n", in.Objective)
	fmt.Fprintf(&sb, "MODE: %s\n\n", mode)
	fmt.Fprintf(&sb, "RISK APPROACH: %s\n\n", risk)

	sb.WriteString("AVAILABLE TOOLS:\n")
	sb.WriteString("- tree(depth, path): Explore project directory structure\n")
	sb.WriteString("- read_file(path): Read and analyze file contents (respects security blacklist)\n")
	sb.WriteString("- todo_add(text): Add new todo items to create structured plan\n")
	sb.WriteString("- todo_edit(number, completed, text): Edit existing todo items\n")
	sb.WriteString("- todo_view(): View current todo list in markdown format\n\n")

	sb.WriteString("PROCESS:\n")
	if in.Mode == "explore+plan" {
		contextFiles := "none specified"
		if len(in.ContextFiles) > 0 {
			contextFiles = strings.Join(in.ContextFiles, ", ")
		}
		fmt.Fprintf(&sb, "1. Start by exploring the project structure with tree tool (depth %d)\n", in.ExplorationDepth)
		sb.WriteString("2. Read key files to understand architecture, dependencies, and current state\n")
		fmt.Fprintf(&sb, "3. If specific files were mentioned, prioritize reading: %s\n", contextFiles)
		sb.WriteString("4. Create comprehensive todo list breaking down the objective into specific, actionable steps\n")
		sb.WriteString("5. Organize todos by priority and dependencies\n")
		sb.WriteString("6. Mark any completed analysis/exploration todos as done\n")
		sb.WriteString("7. Provide final summary with recommendations\n")
	} else {
		sb.WriteString("1. Quickly understand the context (minimal exploration)\n")
		sb.WriteString("2. Create a structured todo list for the objective\n")
		sb.WriteString("3. Focus on actionable, prioritized steps\n")
		sb.WriteString("4. Provide concise recommendations\n")
	}

	sb.WriteString("\nIMPORTANT:\n")
	sb.WriteString("- Each todo should be specific and actionable\n")
	sb.WriteString("- Consider dependencies between todos\n")
	sb.WriteString("- Include testing and validation steps\n")
	sb.WriteString("- Think about edge cases and potential issues\n")
	sb.WriteString("- Provide rationale for your planning decisions\n\n")
	sb.WriteString("Begin by exploring the project to understand what you're working with, then create a comprehensive plan.")

	return sb.String()
}

// AskPromptInput carries the question and any inlined context.
type AskPromptInput struct {
	Query   string
	Style   string // "plain", "summary", "bullets"
	Context []ContextFile
}

// ContextFile is one file inlined into an ask prompt.
type ContextFile struct {
	Path    string
	Content string
}

// BuildAskPrompt renders a single-shot question prompt with optional
// project context.
func BuildAskPrompt(in AskPromptInput) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant answering questions about a software project.\n\n")

	if len(in.Context) > 0 {
		sb.WriteString("PROJECT CONTEXT:\n")
		for _, f := range in.Context {
			fmt.Fprintf(&sb, "--- %s ---\n%s\n\n", f.Path, f.Content)
		}
	}

	switch in.Style {
	case "summary":
		sb.WriteString("Answer with a short summary paragraph.\n\n")
	case "bullets":
		sb.WriteString("Answer with concise bullet points.\n\n")
	}

	fmt.Fprintf(&sb, "QUESTION: %s", in.Query)
	return sb.String()
}
