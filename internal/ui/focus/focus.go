// Package focus records which list currently receives arrow-key input and
// translates keys into navigation moves for it.
package focus

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind enumerates the focusable list kinds.
type Kind int

const (
	KindNone Kind = iota
	KindFrameList
	KindMessageList
	KindGameEventList
	KindSchemaTableList
)

// Target identifies the list owning arrow-key input. List names the concrete
// list for kinds that have more than one instance. The zero value is None.
type Target struct {
	Kind Kind
	List string
}

// None leaves arrow keys inert.
func None() Target { return Target{} }

// FrameList targets a frame list by name.
func FrameList(list string) Target { return Target{Kind: KindFrameList, List: list} }

// MessageList targets a message list by name.
func MessageList(list string) Target { return Target{Kind: KindMessageList, List: list} }

// GameEventList targets the game event list.
func GameEventList(list string) Target { return Target{Kind: KindGameEventList, List: list} }

// SchemaTableList targets the send table list of a schema view.
func SchemaTableList(list string) Target { return Target{Kind: KindSchemaTableList, List: list} }

// IsNone reports whether arrow keys are inert.
func (t Target) IsNone() bool { return t.Kind == KindNone }

func (t Target) String() string {
	switch t.Kind {
	case KindNone:
		return "none"
	case KindFrameList:
		return "frame-list:" + t.List
	case KindMessageList:
		return "message-list:" + t.List
	case KindGameEventList:
		return "game-event-list:" + t.List
	case KindSchemaTableList:
		return "schema-table-list:" + t.List
	default:
		return fmt.Sprintf("target(%d):%s", int(t.Kind), t.List)
	}
}

// KeyMap binds navigation keys to moves.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	First    key.Binding
	Last     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap mirrors the list keys described in the About panel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next")),
		First:    key.NewBinding(key.WithKeys("ctrl+up", "home"), key.WithHelp("ctrl+↑", "first")),
		Last:     key.NewBinding(key.WithKeys("ctrl+down", "end"), key.WithHelp("ctrl+↓", "last")),
		PageUp:   key.NewBinding(key.WithKeys("shift+up", "pgup"), key.WithHelp("shift+↑", "10 up")),
		PageDown: key.NewBinding(key.WithKeys("shift+down", "pgdown"), key.WithHelp("shift+↓", "10 down")),
	}
}

// Router holds the single focus target of the process.
type Router struct {
	target Target
	keys   KeyMap
}

// NewRouter returns a router with no focus.
func NewRouter(keys KeyMap) *Router {
	return &Router{keys: keys}
}

// Current returns the focused target.
func (r *Router) Current() Target {
	return r.target
}

// Set replaces the focused target. Only set-focus dispatch calls it.
func (r *Router) Set(t Target) {
	if r.target == t {
		return
	}
	events.Focus.Set(r.target.String(), t.String())
	r.target = t
}

// Resolve translates a key press into a move for the focused list. It
// reports false when nothing is focused or the key is not a navigation key.
func (r *Router) Resolve(msg tea.KeyMsg) (state.Move, bool) {
	if r.target.IsNone() {
		return 0, false
	}
	switch {
	case key.Matches(msg, r.keys.First):
		return state.MoveFirst, true
	case key.Matches(msg, r.keys.Last):
		return state.MoveLast, true
	case key.Matches(msg, r.keys.PageUp):
		return state.MovePageUp, true
	case key.Matches(msg, r.keys.PageDown):
		return state.MovePageDown, true
	case key.Matches(msg, r.keys.Up):
		return state.MovePrev, true
	case key.Matches(msg, r.keys.Down):
		return state.MoveNext, true
	}
	return 0, false
}
