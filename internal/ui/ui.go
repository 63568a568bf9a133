// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgoyal8/surveyor/internal/types"
)

// Model is the Bubble Tea model for the interactive planning session.
type Model struct {
	// UI components
	textInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	styles    Styles

	// State
	phase    types.RunPhase
	messages []chatMessage
	width    int
	height   int
	ready    bool
	quitting bool
	err      error

	// Run starter (injected)
	runObjective func(objective string) tea.Cmd
}

// chatMessage represents an entry in the session history.
type chatMessage struct {
	role    string // "user", "assistant", "system", "plan"
	content string
}

// NewModel creates a new UI model. runObjective starts a planning run and
// must eventually deliver a terminal types.RunEvent.
func NewModel(runObjective func(objective string) tea.Cmd) Model {
	ti := textinput.New()
	ti.Placeholder = "Describe your objective... (e.g., 'Add retry logic to the payment client')"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB"))

	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.DefaultKeyMap()

	return Model{
		textInput:    ti,
		spinner:      s,
		viewport:     vp,
		styles:       DefaultStyles(),
		phase:        types.PhaseIdle,
		messages:     make([]chatMessage, 0),
		runObjective: runObjective,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// headerHeight returns the number of terminal lines occupied by the banner.
func (m Model) headerHeight() int {
	banner := m.styles.BannerTitle.Render(Banner())
	return lipgloss.Height(banner) + 2 // +2 for the two "\n" after the banner
}

// footerHeight returns the number of terminal lines occupied by the input + help bar.
func (m Model) footerHeight() int {
	// 1 blank line + 1 prompt/input line + 1 newline + 1 help bar = 4
	return 4
}

// updateViewport rebuilds the viewport content and scrolls to the bottom.
func (m *Model) updateViewport() {
	var b strings.Builder

	for _, msg := range m.messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}

	if m.phase != types.PhaseIdle {
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.phase == types.PhaseIdle {
				m.quitting = true
				return m, tea.Quit
			}
			m.phase = types.PhaseIdle
			return m, nil

		case tea.KeyEnter:
			if m.phase != types.PhaseIdle {
				return m, nil
			}

			objective := strings.TrimSpace(m.textInput.Value())
			if objective == "" {
				return m, nil
			}

			if cmd := m.handleCommand(objective); cmd != nil {
				m.updateViewport()
				return m, cmd
			}

			m.messages = append(m.messages, chatMessage{
				role:    "user",
				content: objective,
			})

			m.textInput.SetValue("")
			m.phase = types.PhaseThinking
			m.updateViewport()

			if m.runObjective != nil {
				cmds = append(cmds, m.runObjective(objective))
			}

			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10

		vpWidth := msg.Width
		vpHeight := msg.Height - m.headerHeight() - m.footerHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.viewport.KeyMap = viewport.DefaultKeyMap()
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}

		m.ready = true
		m.updateViewport()

	case types.RunEvent:
		newModel, cmd := m.handleRunEvent(msg)
		nm := newModel.(Model)
		nm.updateViewport()
		return nm, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		// Refresh viewport to update spinner frame
		m.updateViewport()
	}

	if m.phase == types.PhaseIdle {
		var tiCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

// handleCommand processes special commands.
func (m *Model) handleCommand(input string) tea.Cmd {
	switch strings.ToLower(input) {
	case "exit", "quit", "q":
		m.quitting = true
		return tea.Quit

	case "clear":
		m.messages = make([]chatMessage, 0)
		m.textInput.SetValue("")
		return nil

	case "help", "?":
		m.messages = append(m.messages, chatMessage{
			role: "system",
			content: `Available commands:
  help, ?     Show this help
  clear       Clear session history
  exit, quit  Exit surveyor

Example objectives:
  "Add input validation to the REST handlers"
  "Migrate the storage layer from SQLite to Postgres"
  "Set up CI with linting and race-enabled tests"`,
		})
		m.textInput.SetValue("")
		return nil

	case "tools":
		m.messages = append(m.messages, chatMessage{
			role: "system",
			content: `Available agent tools:

  Exploration:
    tree, read_file

  Planning:
    todo_view, todo_add, todo_edit`,
		})
		m.textInput.SetValue("")
		return nil
	}

	return nil
}

// handleRunEvent processes progress events from a planning run.
func (m Model) handleRunEvent(event types.RunEvent) (tea.Model, tea.Cmd) {
	m.phase = event.Phase

	switch event.Phase {
	case types.PhaseToolExecuting:
		if event.Tool != "" {
			m.messages = append(m.messages, chatMessage{
				role:    "system",
				content: fmt.Sprintf("Running %s...", event.Tool),
			})
		}

	case types.PhaseResponding:
		if event.Detail != "" {
			m.messages = append(m.messages, chatMessage{
				role:    "plan",
				content: event.Detail,
			})
		}
		if event.Final != "" {
			m.messages = append(m.messages, chatMessage{
				role:    "assistant",
				content: event.Final,
			})
		}
		m.phase = types.PhaseIdle

	case types.PhaseError:
		m.err = event.Err
		errText := "An error occurred"
		if event.Err != nil {
			errText = event.Err.Error()
		}
		m.messages = append(m.messages, chatMessage{
			role:    "system",
			content: fmt.Sprintf("Error: %s", errText),
		})
		m.phase = types.PhaseIdle
	}

	return m, m.spinner.Tick
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return m.styles.SystemMessage.Render("Goodbye!\n")
	}

	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	// Fixed header: banner
	b.WriteString(m.styles.BannerTitle.Render(Banner()))
	b.WriteString("\n\n")

	// Scrollable middle: viewport
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Fixed footer: input + help bar
	b.WriteString(m.styles.Prompt.Render("> "))
	if m.phase == types.PhaseIdle {
		b.WriteString(m.textInput.View())
	} else {
		b.WriteString(m.styles.StatusText.Render("(processing...)"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return m.styles.App.Render(b.String())
}

// renderMessage renders a single session entry.
func (m Model) renderMessage(msg chatMessage) string {
	switch msg.role {
	case "user":
		return m.styles.UserMessage.Render("You: " + msg.content)

	case "assistant":
		return m.styles.AssistantMessage.Render(msg.content)

	case "system":
		return m.styles.SystemMessage.Render(msg.content)

	case "plan":
		return m.renderPlan(msg.content)
	}
	return ""
}

// renderPlan renders a todo-list snapshot inside a box.
func (m Model) renderPlan(markdown string) string {
	var b strings.Builder
	b.WriteString(m.styles.PlanTitle.Render("Plan"))
	b.WriteString("\n")
	for _, line := range strings.Split(markdown, "\n") {
		style := m.styles.PlanOpen
		if strings.HasPrefix(line, "- [x]") {
			style = m.styles.PlanDone
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return m.styles.PlanBox.Render(b.String())
}

// renderStatus renders the current processing status.
func (m Model) renderStatus() string {
	return fmt.Sprintf("%s %s",
		m.spinner.View(),
		m.styles.StateLabel.Render(m.phase.String()+"..."),
	)
}

// renderHelpBar renders the bottom help bar.
func (m Model) renderHelpBar() string {
	help := []string{
		m.styles.HelpKey.Render("enter") + m.styles.HelpValue.Render(" run"),
		m.styles.HelpKey.Render("ctrl+c") + m.styles.HelpValue.Render(" quit"),
		m.styles.HelpKey.Render("help") + m.styles.HelpValue.Render(" commands"),
		m.styles.HelpKey.Render("tools") + m.styles.HelpValue.Render(" list tools"),
	}
	return m.styles.HelpBar.Render(strings.Join(help, "  |  "))
}
