package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindflow/internal/feed"
	"mindflow/internal/tui/theme"
)

// Width is the rendered sidebar width including its border
const Width = 24

var (
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	versionStyle = theme.Muted
	countStyle   = theme.Muted
	statusReady  = lipgloss.NewStyle().Foreground(theme.Success)
	statusBusy   = lipgloss.NewStyle().Foreground(theme.Warning)
)

// Model renders the filter navigation
type Model struct {
	active  int
	counts  map[feed.Filter]int
	busy    bool
	version string
	height  int
}

// New creates a sidebar with the given filter selected
func New(initial feed.Filter, version string) Model {
	m := Model{version: version}
	m.Select(initial)
	return m
}

// Active returns the selected filter
func (m Model) Active() feed.Filter {
	return feed.Filters[m.active]
}

// Select makes f the active filter; unknown filters select "all"
func (m *Model) Select(f feed.Filter) {
	m.active = 0
	for i, candidate := range feed.Filters {
		if candidate == f {
			m.active = i
			return
		}
	}
}

// SelectIndex selects the filter at position i (0-based), ignoring out of
// range values. It reports whether the selection changed.
func (m *Model) SelectIndex(i int) bool {
	if i < 0 || i >= len(feed.Filters) || i == m.active {
		return false
	}
	m.active = i
	return true
}

// Next moves the selection down, wrapping at the end
func (m *Model) Next() {
	m.active = (m.active + 1) % len(feed.Filters)
}

// Prev moves the selection up, wrapping at the start
func (m *Model) Prev() {
	m.active = (m.active - 1 + len(feed.Filters)) % len(feed.Filters)
}

// SetCounts updates the per-filter badges
func (m *Model) SetCounts(counts map[feed.Filter]int) {
	m.counts = counts
}

// SetBusy toggles the status indicator
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetHeight sets the rendered height
func (m *Model) SetHeight(h int) {
	m.height = h
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(brandStyle.Render("MindFlow") + "\n")
	b.WriteString(versionStyle.Render("Ver "+m.version+" · companion") + "\n\n")

	inner := Width - 5
	for i, f := range feed.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		count := ""
		if n := m.counts[f]; n > 0 {
			count = fmt.Sprintf("%d", n)
		}
		gap := inner - lipgloss.Width(label) - lipgloss.Width(count)
		if gap < 1 {
			gap = 1
		}

		style := theme.NavInactive
		prefix := "  "
		if i == m.active {
			style = theme.NavActive
			prefix = "▸ "
		}
		b.WriteString(prefix + style.Render(label) + strings.Repeat(" ", gap) + countStyle.Render(count) + "\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(statusBusy.Render("● thinking…"))
	} else {
		b.WriteString(statusReady.Render("● ready"))
	}

	style := theme.Sidebar.Width(Width - 1)
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(b.String())
}
