package composer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mindflow/internal/tui/messages"
	"mindflow/internal/tui/theme"
)

const (
	minLines = 1
	maxLines = 8
	// CharLimit caps a single note
	CharLimit = 4000
)

var hintStyle = theme.HelpHint

// Model wraps bubbles/textarea as the note input. The box grows with its
// content up to maxLines.
type Model struct {
	Input   textarea.Model
	spinner spinner.Model
	loading bool
	focused bool
	width   int
}

// New creates a focused composer
func New() Model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind? Tasks, ideas, links, feelings…"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = CharLimit
	ta.MaxHeight = maxLines
	ta.SetHeight(minLines)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	return Model{Input: ta, spinner: sp, focused: true}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input keys. Enter emits a SubmitRequestMsg with the current
// text; blank text and keys pressed while loading are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if msg.Type == tea.KeyEnter && !msg.Alt {
			text := m.Input.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return messages.SubmitRequestMsg{Text: text}
			}
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.resize()
	return m, cmd
}

// resize grows or shrinks the textarea to fit its content
func (m *Model) resize() {
	lines := m.Input.LineCount()
	if lines < minLines {
		lines = minLines
	}
	if lines > maxLines {
		lines = maxLines
	}
	if lines != m.Input.Height() {
		m.Input.SetHeight(lines)
	}
}

func (m Model) View() string {
	var content string
	if m.loading {
		content = m.spinner.View() + " " + theme.Muted.Render("Organizing your thoughts…")
	} else {
		content = m.Input.View()
	}

	hint := "enter: send  alt+enter: newline  esc: feed"
	if !m.focused {
		hint = "i: write a note"
	}
	content += "\n" + hintStyle.Render(hint)

	box := theme.InputBox
	if m.focused {
		box = theme.InputBoxFocused
	}
	return box.Width(m.width).Render(content)
}

// Height returns the rendered height including the border and hint line
func (m Model) Height() int {
	if m.loading {
		return 1 + 1 + 2
	}
	return m.Input.Height() + 1 + 2
}

// Value returns the current input value
func (m Model) Value() string {
	return m.Input.Value()
}

// SetValue sets the input value
func (m *Model) SetValue(v string) {
	m.Input.SetValue(v)
	m.resize()
}

// Reset clears the input after a successful submission
func (m *Model) Reset() {
	m.Input.Reset()
	m.resize()
}

// SetWidth sets both the outer box and inner input widths
func (m *Model) SetWidth(w int) {
	// Account for border (2) and padding (2)
	m.width = w - 2
	m.Input.SetWidth(w - 4)
	m.resize()
}

// Focus focuses the input
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.Input.Focus()
}

// Blur removes focus from the input
func (m *Model) Blur() {
	m.focused = false
	m.Input.Blur()
}

// Focused reports whether the composer receives keys
func (m Model) Focused() bool {
	return m.focused
}

// SetLoading shows the spinner in place of the input. The returned command
// starts the spinner.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// Loading reports whether a submission is in flight
func (m Model) Loading() bool {
	return m.loading
}
