package tui

import (
	"context"
	"errors"
	"fmt"

	"mindflow/internal/export"
	"mindflow/internal/feed"
	"mindflow/internal/feed/service"
	"mindflow/internal/logs"
	"mindflow/internal/notes"
	"mindflow/internal/tui/composer"
	"mindflow/internal/tui/feedview"
	"mindflow/internal/tui/messages"
	"mindflow/internal/tui/sidebar"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the root model
type Options struct {
	Version       string
	DefaultFilter feed.Filter
	RichText      bool
}

// AppModel is the root model that wires the feed service to the child views
type AppModel struct {
	svc      service.FeedService
	exporter *export.Exporter
	ctx      context.Context

	sidebar  sidebar.Model
	composer composer.Model
	feed     feedview.Model
	focus    messages.Focus

	status      string
	statusIsErr bool
	showHelp    bool
	width       int
	height      int
	ready       bool
}

// NewAppModel creates the root application model. ctx bounds every model
// call started from the UI.
func NewAppModel(ctx context.Context, svc service.FeedService, exporter *export.Exporter, opts Options) AppModel {
	if opts.DefaultFilter == "" {
		opts.DefaultFilter = feed.FilterAll
	}
	m := AppModel{
		svc:      svc,
		exporter: exporter,
		ctx:      ctx,
		sidebar:  sidebar.New(opts.DefaultFilter, opts.Version),
		composer: composer.New(),
		feed:     feedview.New(opts.RichText),
		focus:    messages.FocusComposer,
	}
	m.reload()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.composer.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case messages.SubmitRequestMsg:
		if m.composer.Loading() {
			return m, nil
		}
		m.status = ""
		m.sidebar.SetBusy(true)
		tick := m.composer.SetLoading(true)
		m.layout()
		return m, tea.Batch(tick, m.submitCmd(msg.Text))

	case messages.SubmitResultMsg:
		return m.handleSubmitResult(msg)

	case messages.FilterChangedMsg:
		m.sidebar.Select(msg.Filter)
		m.reload()
		return m, nil

	case messages.ExportDoneMsg:
		if msg.Err != nil {
			logs.Logger.Error("export failed", zap.Error(msg.Err))
			m.setStatus("Export failed: "+msg.Err.Error(), true)
		} else if len(msg.Paths) == 0 {
			m.setStatus("Nothing to export", false)
		} else {
			m.setStatus(fmt.Sprintf("Exported %d note(s) to %s", len(msg.Paths), m.exporter.Dir()), false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.focus == messages.FocusComposer {
			return m.updateComposer(msg)
		}
		return m.updateFeed(msg)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m AppModel) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.setFocus(messages.FocusFeed)
		return m, nil
	}
	before := m.composer.Height()
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	if m.composer.Height() != before {
		m.layout()
	}
	return m, cmd
}

func (m AppModel) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.feed.Searching() {
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "i", "tab", "enter":
		return m, m.setFocus(messages.FocusComposer)
	case "?":
		m.showHelp = true
		return m, nil
	case "/":
		m.feed.StartSearch()
		return m, nil
	case "esc":
		if m.feed.SearchQuery() != "" {
			m.feed.ClearSearch()
		}
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7":
		if m.sidebar.SelectIndex(int(key[0] - '1')) {
			return m, messages.ChangeFilter(m.sidebar.Active())
		}
		return m, nil
	case "]":
		m.sidebar.Next()
		return m, messages.ChangeFilter(m.sidebar.Active())
	case "[":
		m.sidebar.Prev()
		return m, messages.ChangeFilter(m.sidebar.Active())
	case "e":
		return m, m.exportCmd(export.FormatMarkdown)
	case "E":
		return m, m.exportCmd(export.FormatHTML)
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

func (m AppModel) handleSubmitResult(msg messages.SubmitResultMsg) (tea.Model, tea.Cmd) {
	m.composer.SetLoading(false)
	m.sidebar.SetBusy(false)

	if msg.Err != nil {
		if errors.Is(msg.Err, service.ErrSubmissionInFlight) {
			m.layout()
			return m, nil
		}
		logs.Logger.Warn("submission failed", zap.Error(msg.Err))
		m.setStatus(notes.UserMessage(msg.Err), true)
		m.layout()
		return m, nil
	}

	m.composer.Reset()
	m.feed.ClearSearch()
	m.reload()
	m.layout()
	m.feed.GotoTop()
	m.setStatus("Added: "+msg.Record.Payload.Title, false)
	return m, nil
}

func (m AppModel) submitCmd(text string) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	return func() tea.Msg {
		record, err := svc.Submit(ctx, text)
		return messages.SubmitResultMsg{Record: record, Err: err}
	}
}

func (m AppModel) exportCmd(format export.Format) tea.Cmd {
	if m.exporter == nil {
		return nil
	}
	records := m.feed.Visible()
	if len(records) == 0 {
		return func() tea.Msg {
			return messages.ExportDoneMsg{}
		}
	}
	exporter := m.exporter
	return func() tea.Msg {
		paths, err := exporter.Export(records, format)
		return messages.ExportDoneMsg{Paths: paths, Err: err}
	}
}

// reload pulls the active filter's records and the sidebar counts
func (m *AppModel) reload() {
	filter := m.sidebar.Active()
	m.feed.SetRecords(m.svc.List(filter), filter)
	m.sidebar.SetCounts(m.svc.Counts())
}

func (m *AppModel) setFocus(f messages.Focus) tea.Cmd {
	m.focus = f
	if f == messages.FocusComposer {
		return m.composer.Focus()
	}
	m.composer.Blur()
	return nil
}

func (m *AppModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// layout sizes the child views from the window and composer heights
func (m *AppModel) layout() {
	if !m.ready {
		return
	}
	mainWidth := m.width - sidebar.Width
	if mainWidth < 20 {
		mainWidth = 20
	}
	bodyHeight := m.height - statusBarHeight

	m.sidebar.SetHeight(bodyHeight)
	m.composer.SetWidth(mainWidth)

	feedHeight := bodyHeight - m.composer.Height()
	if feedHeight < 1 {
		feedHeight = 1
	}
	m.feed.SetSize(mainWidth, feedHeight)
}
