// Package tui is the interactive front end: a single input line whose path
// completions are listed below it as the user types.
package tui

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/pathcomplete/internal/completion"
	"github.com/atinylittleshell/pathcomplete/internal/input"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"go.uber.org/zap"
)

// maxListed is how many live suggestions are shown below the input.
const maxListed = 10

var (
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the bubbletea model for interactive path completion.
type Model struct {
	input    textinput.Model
	provider *completion.Provider
	state    *input.CompletionState
	logger   *zap.Logger

	live     []completion.Candidate
	width    int
	accepted string
	done     bool
}

// New creates a Model whose input line starts empty.
func New(provider *completion.Provider, prompt string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "type a path, Tab to complete"
	ti.Focus()

	m := Model{
		input:    ti,
		provider: provider,
		state:    input.NewCompletionState(),
		logger:   logger,
	}
	m.refresh()
	return m
}

// Run starts the interactive program and returns the accepted line, or ""
// when the user quit without accepting.
func Run(provider *completion.Provider, prompt string, logger *zap.Logger) (string, error) {
	final, err := tea.NewProgram(New(provider, prompt, logger)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run interactive prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return m.Accepted(), nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.accepted = m.input.Value()
			m.done = true
			return m, tea.Quit

		case tea.KeyTab:
			m.cycle(true)
			return m, nil

		case tea.KeyShiftTab:
			m.cycle(false)
			return m, nil

		case tea.KeyEsc:
			if m.state.IsActive() {
				m.input.SetValue(m.state.Cancel())
				m.input.CursorEnd()
				m.refresh()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	m.state.Reset()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// cycle starts a completion session on the first Tab and moves through the
// candidates on later ones. A candidate replaces the last path component
// before the cursor through to the end of the word under the cursor. A lone
// candidate is applied and the session ends.
func (m *Model) cycle(forward bool) {
	if !m.state.IsActive() {
		text := m.input.Value()
		pos := m.input.Position()

		candidates := m.provider.GetCompletions(text, pos)
		if len(candidates) == 0 {
			return
		}

		_, end := input.GetWordBoundary(text, pos)
		start := pos + candidates[0].Offset
		m.state.Activate(text, completion.Texts(candidates), start, end)
		m.logger.Debug("completion started",
			zap.String("line", text),
			zap.String("word", completion.CurrentWord(text, pos)),
			zap.Int("candidates", len(candidates)))
	}

	if forward {
		m.state.NextSuggestion()
	} else {
		m.state.PrevSuggestion()
	}

	result := m.state.Apply()
	m.input.SetValue(result.NewText)
	m.input.SetCursor(result.NewCursorPos)

	if len(m.state.Suggestions()) == 1 {
		m.state.Reset()
		m.refresh()
	}
}

func (m *Model) refresh() {
	m.live = m.provider.GetCompletions(m.input.Value(), m.input.Position())
}

// Accepted returns the line accepted with Enter.
func (m Model) Accepted() string {
	return m.accepted
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())

	if m.state.IsVisible() {
		b.WriteString("\n")
		b.WriteString(m.state.Render(func(s string, selected bool) string {
			if selected {
				return selectedStyle.Render("> " + m.fit(s, 2))
			}
			return "  " + m.renderEntry(m.fit(s, 2))
		}))
		return b.String()
	}

	for i, c := range m.live {
		if i == maxListed {
			b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("  … %d more", len(m.live)-maxListed)))
			break
		}
		b.WriteString("\n  " + m.renderEntry(m.fit(c.Text, 2)))
	}
	return b.String()
}

// fit truncates s to the terminal width minus indent.
func (m Model) fit(s string, indent int) string {
	if m.width <= indent {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width-indent), "…")
}

func (m Model) renderEntry(s string) string {
	switch {
	case strings.HasSuffix(s, "/") || strings.HasSuffix(s, "/\""):
		return directoryStyle.Render(s)
	case strings.HasPrefix(s, "."):
		return dimStyle.Render(s)
	default:
		return s
	}
}
