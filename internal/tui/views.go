package tui

import (
	"mindflow/internal/tui/messages"
	"mindflow/internal/tui/shared"

	"github.com/charmbracelet/lipgloss"
)

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	main := shared.FitHeight(
		lipgloss.JoinVertical(lipgloss.Left, m.feed.View(), m.composer.View()),
		m.height-statusBarHeight,
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m AppModel) renderStatusBar() string {
	var text string
	switch {
	case m.feed.Searching():
		text = "/" + m.feed.SearchQuery() + "█  enter: keep  esc: clear"
	case m.status != "":
		if m.statusIsErr {
			text = StatusErrStyle.Render(m.status)
		} else {
			text = StatusOkStyle.Render(m.status)
		}
	case m.focus == messages.FocusComposer:
		text = "esc: browse feed | ctrl+c: quit"
	default:
		text = "i: write | 1-7 [ ]: filter | /: search | J: json | e/E: export | ?: help | q: quit"
	}
	return StatusBarStyle.Width(m.width).Render(HelpStyle.Render(text))
}

func (m AppModel) renderHelpOverlay() string {
	sections := []shared.HelpSection{
		{
			Title: "Composer",
			Binds: []shared.HelpBind{
				{Key: "enter", Desc: "Send note"},
				{Key: "alt+enter", Desc: "New line"},
				{Key: "esc", Desc: "Browse the feed"},
			},
		},
		{
			Title: "Feed",
			Binds: []shared.HelpBind{
				{Key: "i / tab", Desc: "Write a note"},
				{Key: "j / k", Desc: "Scroll"},
				{Key: "g / G", Desc: "Top / bottom"},
				{Key: "1-7", Desc: "Pick a filter"},
				{Key: "[ / ]", Desc: "Previous / next filter"},
				{Key: "/", Desc: "Search titles and tags"},
				{Key: "J", Desc: "Show / hide the raw JSON payload"},
				{Key: "e", Desc: "Export shown notes as markdown"},
				{Key: "E", Desc: "Export shown notes as HTML"},
			},
		},
		{
			Title: "Global",
			Binds: []shared.HelpBind{
				{Key: "?", Desc: "Show this help"},
				{Key: "q", Desc: "Quit (feed)"},
				{Key: "ctrl+c", Desc: "Force quit"},
			},
		},
	}
	return shared.RenderHelpPopup("MindFlow - Keyboard Shortcuts", sections, m.width, m.height)
}
