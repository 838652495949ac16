package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"mindflow/internal/feed"
	"mindflow/internal/notes"
)

// Focus identifies which pane receives key input
type Focus int

const (
	FocusComposer Focus = iota
	FocusFeed
)

// SubmitRequestMsg is sent by the composer when the user confirms a note
type SubmitRequestMsg struct {
	Text string
}

// SubmitResultMsg carries the outcome of one submission
type SubmitResultMsg struct {
	Record notes.FeedRecord
	Err    error
}

// FilterChangedMsg is sent when the sidebar selection changes
type FilterChangedMsg struct {
	Filter feed.Filter
}

// ExportDoneMsg reports the result of an export
type ExportDoneMsg struct {
	Paths []string
	Err   error
}

// ChangeFilter returns a command that switches the active filter
func ChangeFilter(f feed.Filter) tea.Cmd {
	return func() tea.Msg {
		return FilterChangedMsg{Filter: f}
	}
}
