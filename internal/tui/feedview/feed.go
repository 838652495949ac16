package feedview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/sahilm/fuzzy"

	"mindflow/internal/feed"
	"mindflow/internal/logs"
	"mindflow/internal/notes"
	"mindflow/internal/tui/shared"
	"mindflow/internal/tui/theme"

	"go.uber.org/zap"
)

// Model is the scrollable list of feed cards
type Model struct {
	viewport    viewport.Model
	records     []notes.FeedRecord
	visible     []notes.FeedRecord
	filter      feed.Filter
	searchQuery string
	searching   bool
	showJSON    bool
	renderer    *glamour.TermRenderer
	useGlamour  bool
	width       int
	height      int
}

// New creates an empty feed view. When richText is true, narratives are
// rendered as markdown through glamour.
func New(richText bool) Model {
	return Model{
		viewport:   viewport.New(0, 0),
		filter:     feed.FilterAll,
		useGlamour: richText,
	}
}

// SetSize resizes the viewport and rebuilds the markdown renderer for the
// new wrap width.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height

	if m.useGlamour && width > 8 {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(cardInnerWidth(width)),
		)
		if err != nil {
			logs.Logger.Warn("markdown renderer unavailable", zap.Error(err))
			r = nil
		}
		m.renderer = r
	}
	m.refresh()
}

// SetRecords replaces the filtered records shown in the feed
func (m *Model) SetRecords(records []notes.FeedRecord, filter feed.Filter) {
	filterChanged := filter != m.filter
	m.records = records
	m.filter = filter
	m.refresh()
	if filterChanged {
		m.viewport.GotoTop()
	}
}

// Visible returns the records currently shown, after search
func (m Model) Visible() []notes.FeedRecord {
	return m.visible
}

// Searching reports whether the search prompt is capturing keys
func (m Model) Searching() bool {
	return m.searching
}

// SearchQuery returns the active search query
func (m Model) SearchQuery() string {
	return m.searchQuery
}

// StartSearch opens the search prompt
func (m *Model) StartSearch() {
	m.searching = true
}

// ClearSearch closes the prompt and drops the query
func (m *Model) ClearSearch() {
	m.searching = false
	m.searchQuery = ""
	m.refresh()
}

// ToggleJSON shows or hides the raw payload on every card
func (m *Model) ToggleJSON() {
	m.showJSON = !m.showJSON
	m.refresh()
}

// ShowingJSON reports whether cards include the raw payload
func (m Model) ShowingJSON() bool {
	return m.showJSON
}

// GotoTop scrolls to the newest record
func (m *Model) GotoTop() {
	m.viewport.GotoTop()
}

func (m *Model) applySearch() {
	if m.searchQuery == "" {
		m.visible = m.records
		return
	}

	names := make([]string, len(m.records))
	for i, r := range m.records {
		names[i] = searchText(r)
	}
	matches := fuzzy.Find(m.searchQuery, names)

	m.visible = make([]notes.FeedRecord, 0, len(matches))
	for _, match := range matches {
		m.visible = append(m.visible, m.records[match.Index])
	}
}

func searchText(r notes.FeedRecord) string {
	parts := append([]string{r.Payload.Title}, r.Payload.Tags...)
	return strings.Join(parts, " ")
}

func (m *Model) refresh() {
	m.applySearch()
	m.viewport.SetContent(m.render())
}

func (m Model) render() string {
	if len(m.visible) == 0 {
		return shared.CenterContent(m.emptyState(), m.width, m.height)
	}

	cards := make([]string, len(m.visible))
	for i, r := range m.visible {
		cards[i] = renderCard(r, m.width, m.renderNarrative, m.showJSON)
	}
	return strings.Join(cards, "\n")
}

func (m Model) emptyState() string {
	if m.searchQuery != "" {
		return theme.Muted.Render("No notes match \"" + m.searchQuery + "\".")
	}
	if !m.filter.ShowsAll() {
		return theme.Muted.Render("No " + strings.ToLower(m.filter.Label()) + " yet.")
	}
	return theme.Muted.Render("No notes yet.") + "\n" +
		theme.Muted.Render("Write anything, and I'll organize it for you.")
}

func (m Model) renderNarrative(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// Update handles scrolling and the search prompt
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.ClearSearch()
		case tea.KeyEnter:
			m.searching = false
		case tea.KeyBackspace:
			if r := []rune(m.searchQuery); len(r) > 0 {
				m.searchQuery = string(r[:len(r)-1])
				m.refresh()
				m.viewport.GotoTop()
			}
		case tea.KeyRunes, tea.KeySpace:
			if keyMsg.Type == tea.KeySpace {
				m.searchQuery += " "
			} else {
				m.searchQuery += string(keyMsg.Runes)
			}
			m.refresh()
			m.viewport.GotoTop()
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "J":
		m.ToggleJSON()
		return m, nil
	case "g", "home":
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	case "j", "k", "up", "down", "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	return m.viewport.View()
}
