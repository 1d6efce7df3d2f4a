package ui

import (
	"unicode"

	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes a key press. Modals take every key while open; otherwise
// global keys win over panel commands, and what remains is resolved against
// the focused list.
func (m *Model) handleKey(msg tea.KeyMsg, out *event.Batch) {
	switch {
	case m.alert != "":
		m.handleAlertKey(msg)
		return
	case m.files != nil:
		m.handleFilePickerKey(msg, out)
		return
	case m.filter != nil:
		m.handleFilterKey(msg, out)
		return
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return
	case key.Matches(msg, m.keys.Open):
		out.Emit(event.OpenFileRequested{})
		return
	}
	if m.view != viewSession || m.session == nil {
		return
	}

	switch {
	case key.Matches(msg, m.keys.FirstTool):
		m.session.FirstTool()
		return
	case key.Matches(msg, m.keys.LastTool):
		m.session.LastTool()
		return
	case key.Matches(msg, m.keys.NextTool):
		m.session.NextTool()
		return
	case key.Matches(msg, m.keys.PrevTool):
		m.session.PrevTool()
		return
	case key.Matches(msg, m.keys.Filter):
		m.openFilter()
		return
	}
	if action, ok := m.keys.action(msg); ok {
		m.session.Act(action, out)
		return
	}
	if move, ok := m.router.Resolve(msg); ok {
		target := m.router.Current()
		if !m.session.Navigate(target, move) {
			logging.Diagnosticf("focus is %s but %s has no such list", target, m.session.Active().Name())
		}
	}
}

func (m *Model) handleAlertKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c":
		m.quit()
	case "enter", "esc", " ", "q":
		m.alert = ""
		events.App.Modal("alert", false)
	}
}

func (m *Model) handleFilterKey(msg tea.KeyMsg, out *event.Batch) {
	p := m.filter.picker
	rows := m.filterRows()
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeFilter()
		return
	case "enter":
		m.commitFilter(out)
		return
	case "up", "ctrl+p":
		p.MoveCursorUp()
	case "down", "ctrl+n":
		p.MoveCursorDown()
	case "home":
		p.MoveCursorHome()
	case "end":
		p.MoveCursorEnd()
	case "pgup":
		p.MoveCursorPageUp(rows)
	case "pgdown":
		p.MoveCursorPageDown(rows)
	case "ctrl+u":
		if p.Filter != "" {
			p.SetFilter("", 0)
			events.Filter.Query(string(m.filter.list), p.Filter)
		}
	case "ctrl+w":
		if p.DeleteFilterWordBackward() {
			events.Filter.Query(string(m.filter.list), p.Filter)
		}
	default:
		m.handleFilterText(msg)
	}
	p.EnsureCursorVisible(rows)
}

func (m *Model) handleFilterText(msg tea.KeyMsg) {
	p := m.filter.picker
	changed := false
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		changed = p.DeleteFilterRuneBackward()
	case tea.KeyLeft:
		p.MoveFilterCursorRuneBackward()
	case tea.KeyRight:
		p.MoveFilterCursorRuneForward()
	case tea.KeySpace:
		changed = p.InsertFilterText(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return
			}
		}
		changed = p.InsertFilterText(string(msg.Runes))
	}
	if changed {
		events.Filter.Query(string(m.filter.list), p.Filter)
	}
}
