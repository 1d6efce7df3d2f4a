package panel

import (
	"fmt"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/format/table"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

// GameEvents lists every game event filtered by event name.
type GameEvents struct {
	file  *demo.File
	nav   *state.Navigator[demo.GameEvent]
	focus focus.Target
}

func NewGameEvents(file *demo.File) *GameEvents {
	g := &GameEvents{
		file: file,
		nav:  state.NewNavigator(file.GameEvents, func(e demo.GameEvent) string { return e.Name }, nil),
	}
	g.focus = g.target()
	return g
}

func (g *GameEvents) panel() {}

func (g *GameEvents) Name() string { return NameGameEvents }

func (g *GameEvents) Focus() focus.Target { return g.focus }

func (g *GameEvents) SetFocus(t focus.Target) { g.focus = t }

func (g *GameEvents) target() focus.Target { return focus.GameEventList(string(event.GameEvents)) }

// Selected returns the absolute index of the selected game event.
func (g *GameEvents) Selected() (int, bool) { return g.nav.Selected() }

// Display returns the displayed game event indices.
func (g *GameEvents) Display() []int { return g.nav.Display() }

func (g *GameEvents) Navigate(t focus.Target, move state.Move) bool {
	if t != g.target() {
		return false
	}
	g.nav.Apply(move)
	return true
}

func (g *GameEvents) Filter(t focus.Target) (Filter, bool) {
	if t != g.target() {
		return Filter{}, false
	}
	return Filter{List: event.GameEvents, Title: "Filter " + NameGameEvents, Entries: g.nav.Entries()}, true
}

func (g *GameEvents) HandleEvent(evt event.Event) bool {
	switch e := evt.(type) {
	case event.SelectItem:
		if e.List == event.GameEvents {
			return selectTraced(g.nav, e)
		}
	case event.SetFilter:
		if e.List == event.GameEvents {
			return setFilterTraced(g.nav, e)
		}
	case event.ClearFilter:
		if e.List == event.GameEvents {
			g.nav.ClearFilters()
			events.Filter.Cleared(string(e.List))
			return true
		}
	}
	return false
}

func (g *GameEvents) Act(a Action, out *event.Batch) bool {
	switch a {
	case ActionGoto:
		ev, ok := g.nav.SelectedItem()
		if !ok {
			return false
		}
		out.Emit(
			event.SwitchTool{Name: NameFrames},
			event.SelectItem{List: event.Frames, Index: ev.Frame},
			event.SelectItem{List: event.PacketDataMessages, Index: ev.Message},
		)
		return true
	case ActionClearFilter:
		out.Emit(event.ClearFilter{List: event.GameEvents})
		return true
	case ActionCopy:
		ev, ok := g.nav.SelectedItem()
		if !ok {
			return false
		}
		abs, _ := g.nav.Selected()
		lines := append([]string{fmt.Sprintf("%s #%d", ev.Name, abs)}, table.Format(keyRows(ev), nil)...)
		out.Emit(event.CopyText{Text: strings.Join(lines, "\n")})
		return true
	}
	return false
}

func (g *GameEvents) tick(ev demo.GameEvent) int32 {
	if ev.Frame < len(g.file.Frames) {
		return g.file.Frames[ev.Frame].Tick
	}
	return 0
}

func (g *GameEvents) Draw(s *draw.Surface, _ *event.Batch) {
	left := maxFrameListWidth
	if s.Width > 0 && s.Width/2 < left {
		left = s.Width / 2
	}
	cols := s.Columns(left, 0)
	list := cols[0]
	title := fmt.Sprintf("%s (%d)", NameGameEvents, g.nav.Len())
	if status := filterStatus(g.nav.Entries()); status != "" {
		title += "  " + status
	}
	listTitle(list, title, g.focus == g.target())
	interval := g.file.TickInterval()
	drawRows(list, g.nav, []string{"#", "Tick", "Time", "Event"},
		func(abs int, ev demo.GameEvent) []string {
			row := []string{fmt.Sprintf("%d", abs)}
			row = append(row, tickColumns(interval, g.tick(ev))...)
			return append(row, ev.Name)
		},
		[]table.Alignment{table.AlignRight, table.AlignRight, table.AlignRight},
	)

	detail := cols[1]
	if abs, ok := g.nav.Selected(); ok {
		ev, _ := g.nav.Item(abs)
		lines := []string{fmt.Sprintf("frame #%d, message #%d (g: go to)", ev.Frame, ev.Message), ""}
		lines = append(lines, table.Format(keyRows(ev), nil)...)
		box(detail, fmt.Sprintf("%s #%d", ev.Name, abs), lines)
	} else {
		detail.Add("Select a game event to see its keys.", styles.Dim)
	}
	s.Join(cols...)
}

// keyRows lays out the keys of a game event under a header row.
func keyRows(ev demo.GameEvent) [][]string {
	rows := [][]string{{"Type", "Name", "Value"}}
	for _, k := range ev.Keys {
		rows = append(rows, []string{k.Type, k.Name, k.Value})
	}
	return rows
}
