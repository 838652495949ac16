package composer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"mindflow/internal/tui/messages"
)

func TestEnter_BlankIsIgnored(t *testing.T) {
	m := New()
	m.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank input should not produce a command")
	}
}

func TestEnter_EmitsSubmitRequest(t *testing.T) {
	m := New()
	m.SetValue("Buy milk tomorrow")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(messages.SubmitRequestMsg)
	if !ok {
		t.Fatalf("expected SubmitRequestMsg, got %T", cmd())
	}
	if msg.Text != "Buy milk tomorrow" {
		t.Errorf("unexpected text %q", msg.Text)
	}
}

func TestLoading_IgnoresKeys(t *testing.T) {
	m := New()
	m.SetValue("draft")
	m.SetLoading(true)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while loading should be ignored")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.Value() != "draft" {
		t.Errorf("input changed while loading: %q", m.Value())
	}
}

func TestResize_GrowsWithContent(t *testing.T) {
	m := New()
	m.SetWidth(60)
	before := m.Height()
	m.SetValue("one\ntwo\nthree")
	if m.Height() != before+2 {
		t.Errorf("expected height %d, got %d", before+2, m.Height())
	}
	m.Reset()
	if m.Height() != before {
		t.Errorf("expected height %d after reset, got %d", before, m.Height())
	}
}
