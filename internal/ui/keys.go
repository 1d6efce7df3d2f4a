package ui

import (
	"github.com/atomicstack/demo-crawler/internal/panel"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds the global keys and the panel commands.
type KeyMap struct {
	Open      key.Binding
	Quit      key.Binding
	NextTool  key.Binding
	PrevTool  key.Binding
	FirstTool key.Binding
	LastTool  key.Binding
	Filter    key.Binding

	Goto        key.Binding
	ClearFilter key.Binding
	HideNone    key.Binding
	CycleFocus  key.Binding
	Mode        key.Binding
	ScanNet     key.Binding
	ScanUser    key.Binding
	Copy        key.Binding

	Nav focus.KeyMap
}

// DefaultKeyMap returns the bindings listed in the About panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTool:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tool")),
		PrevTool:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous tool")),
		FirstTool: key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "first tool")),
		LastTool:  key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "last tool")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),

		Goto:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to")),
		ClearFilter: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filter")),
		HideNone:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide none values")),
		CycleFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle focus")),
		Mode:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "data table mode")),
		ScanNet:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "scan net messages")),
		ScanUser:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "scan user messages")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selection")),

		Nav: focus.DefaultKeyMap(),
	}
}

// action resolves a panel command key.
func (k KeyMap) action(msg tea.KeyMsg) (panel.Action, bool) {
	switch {
	case key.Matches(msg, k.Goto):
		return panel.ActionGoto, true
	case key.Matches(msg, k.ClearFilter):
		return panel.ActionClearFilter, true
	case key.Matches(msg, k.HideNone):
		return panel.ActionToggleNone, true
	case key.Matches(msg, k.CycleFocus):
		return panel.ActionCycleFocus, true
	case key.Matches(msg, k.Mode):
		return panel.ActionToggleMode, true
	case key.Matches(msg, k.ScanNet):
		return panel.ActionScanNetMessages, true
	case key.Matches(msg, k.ScanUser):
		return panel.ActionScanUserMessages, true
	case key.Matches(msg, k.Copy):
		return panel.ActionCopy, true
	}
	return 0, false
}
