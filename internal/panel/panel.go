// Package panel implements the tool views hosted by a session. Panel is a
// closed sum type: the session controller matches on the concrete variants
// to route navigation and commands.
package panel

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/format/table"
	"github.com/atomicstack/demo-crawler/internal/theme"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

// Tool names, in tab order.
const (
	NameAbout        = "?"
	NameHeader       = "Header"
	NameServerInfo   = "Server Info"
	NameFrames       = "Frames"
	NameSignOnFrames = "Sign On Frames"
	NameUserMessages = "User Messages"
	NameGameEvents   = "Game Events"
	NameTasks        = "Tasks"
)

var styles = theme.Default()

// Panel is implemented only by the variants in this package.
type Panel interface {
	// Name is the tab label, unique within a session.
	Name() string
	// Focus is the target that should own arrow keys while the panel is
	// active.
	Focus() focus.Target
	// SetFocus records the focus target last routed to this panel.
	SetFocus(focus.Target)
	// Draw renders into s and may append events to out.
	Draw(s *draw.Surface, out *event.Batch)
	// HandleEvent reports whether the event was consumed.
	HandleEvent(evt event.Event) bool
	panel()
}

// Action is a panel-level command bound to a key.
type Action int

const (
	ActionGoto Action = iota
	ActionClearFilter
	ActionToggleNone
	ActionCycleFocus
	ActionToggleMode
	ActionScanNetMessages
	ActionScanUserMessages
	ActionCopy
)

func (a Action) String() string {
	switch a {
	case ActionGoto:
		return "goto"
	case ActionClearFilter:
		return "clear-filter"
	case ActionToggleNone:
		return "toggle-none"
	case ActionCycleFocus:
		return "cycle-focus"
	case ActionToggleMode:
		return "toggle-mode"
	case ActionScanNetMessages:
		return "scan-net-messages"
	case ActionScanUserMessages:
		return "scan-user-messages"
	case ActionCopy:
		return "copy"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Filter describes the filter entries of the list that owns a focus target.
type Filter struct {
	List    event.List
	Title   string
	Entries []state.FilterEntry
}

// New builds the panels for a decoded file in tab order.
func New(file *demo.File) []Panel {
	return []Panel{
		NewAbout(),
		NewHeader(file),
		NewServerInfo(file.ServerInfo),
		NewFrames(file),
		NewSignOnFrames(file),
		NewUserMessages(file),
		NewGameEvents(file),
		NewTasks(),
	}
}

// tickColumns formats the tick and wall-clock cells of a row.
func tickColumns(interval float64, tick int32) []string {
	return []string{fmt.Sprintf("%d", tick), demo.FormatTick(interval, tick)}
}

// listTitle renders a list heading, highlighted while the list has focus.
func listTitle(s *draw.Surface, title string, focused bool) {
	style := styles.Header
	if focused {
		style = styles.Title
		title = "» " + title
	}
	s.Add(title, style)
}

// drawRows renders the visible window of a navigator using pre-formatted
// rows aligned by the table formatter.
func drawRows[T any](s *draw.Surface, nav *state.Navigator[T], header []string, row func(abs int, item T) []string, alignments []table.Alignment) {
	rows := s.Remaining()
	switch {
	case rows < 0:
		rows = nav.Len()
	case rows > 0:
		rows--
	}
	start, end := nav.Window(rows)
	cells := make([][]string, 0, end-start+1)
	cells = append(cells, header)
	abs := make([]int, 0, end-start)
	for pos := start; pos < end; pos++ {
		i, _ := nav.At(pos)
		item, _ := nav.Item(i)
		cells = append(cells, row(i, item))
		abs = append(abs, i)
	}
	formatted := table.Format(cells, alignments)
	s.Add("  "+formatted[0], styles.Dim)
	selected, hasSelection := nav.Selected()
	for i, line := range formatted[1:] {
		s.AddLine(draw.Item(line, hasSelection && abs[i] == selected, s.Width))
	}
	if nav.DisplayLen() == 0 {
		s.Add("(no entries)", styles.Info)
	}
}

// filterStatus summarises the enabled entries of a navigator.
func filterStatus(entries []state.FilterEntry) string {
	enabled := 0
	var only string
	for _, e := range entries {
		if e.Enabled {
			enabled++
			only = e.Key
		}
	}
	switch {
	case enabled == len(entries):
		return ""
	case enabled == 1:
		return "filter: " + only
	default:
		return fmt.Sprintf("filter: %d/%d", enabled, len(entries))
	}
}
