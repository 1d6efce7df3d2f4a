package panel

import (
	"fmt"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/format/table"
	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

// messageList is a filterable list of decoded messages with a field detail
// view. The filter discriminator is the message name.
type messageList[M demo.Message] struct {
	list     event.List
	title    string
	nav      *state.Navigator[M]
	hideNone bool
	reported int

	// optional tick column
	tick     func(M) int32
	interval float64
}

func newMessageList[M demo.Message](list event.List, title string, msgs []M) *messageList[M] {
	return &messageList[M]{
		list:     list,
		title:    title,
		nav:      state.NewNavigator(msgs, func(m M) string { return m.MessageName() }, nil),
		reported: -1,
	}
}

func (l *messageList[M]) target() focus.Target {
	return focus.MessageList(string(l.list))
}

func (l *messageList[M]) filter() Filter {
	return Filter{List: l.list, Title: "Filter " + l.title, Entries: l.nav.Entries()}
}

func (l *messageList[M]) handle(evt event.Event) bool {
	switch e := evt.(type) {
	case event.SelectItem:
		if e.List != l.list {
			return false
		}
		return selectTraced(l.nav, e)
	case event.SetFilter:
		if e.List != l.list {
			return false
		}
		return setFilterTraced(l.nav, e)
	case event.ClearFilter:
		if e.List != l.list {
			return false
		}
		l.nav.ClearFilters()
		events.Filter.Cleared(string(l.list))
		return true
	}
	return false
}

// report logs the warnings of a newly selected message once.
func (l *messageList[M]) report() {
	abs, ok := l.nav.Selected()
	if !ok || abs == l.reported {
		return
	}
	l.reported = abs
	m, _ := l.nav.Item(abs)
	if lines := demo.Report(fmt.Sprintf("%s[%d]", l.list, abs), m); len(lines) > 0 {
		logging.Diagnostic(lines...)
	}
}

func (l *messageList[M]) drawList(s *draw.Surface, focused bool) {
	l.report()
	title := fmt.Sprintf("%s (%d)", l.title, l.nav.Len())
	if status := filterStatus(l.nav.Entries()); status != "" {
		title += "  " + status
	}
	listTitle(s, title, focused)
	header := []string{"#"}
	alignments := []table.Alignment{table.AlignRight}
	if l.tick != nil {
		header = append(header, "Tick", "Time")
		alignments = append(alignments, table.AlignRight, table.AlignRight)
	}
	header = append(header, "Message")
	drawRows(s, l.nav, header, func(abs int, m M) []string {
		row := []string{fmt.Sprintf("%d", abs)}
		if l.tick != nil {
			row = append(row, tickColumns(l.interval, l.tick(m))...)
		}
		return append(row, m.MessageName())
	}, alignments)
}

// detailLines flattens the selected message into field rows followed by its
// warnings and error.
func (l *messageList[M]) detailLines(m M) []string {
	var rows [][]string
	for _, f := range m.MessageFields() {
		if f.None {
			if l.hideNone {
				continue
			}
			rows = append(rows, []string{f.Name, "None"})
			continue
		}
		rows = append(rows, []string{f.Name, f.Value})
	}
	lines := table.Format(rows, nil)
	if len(lines) == 0 {
		lines = []string{"(no fields)"}
	}
	if warnings := demo.FormatWarnings(m.MessageWarnings()); len(warnings) > 0 {
		lines = append(lines, "", "warnings:")
		for _, w := range warnings {
			lines = append(lines, "  "+w)
		}
	}
	if err := m.MessageError(); err != "" {
		lines = append(lines, "", "error: "+err)
	}
	return lines
}

// copyText renders the selected message as its detail box shows it.
func (l *messageList[M]) copyText() (string, bool) {
	abs, ok := l.nav.Selected()
	if !ok {
		return "", false
	}
	m, _ := l.nav.Item(abs)
	lines := append([]string{fmt.Sprintf("%s #%d", m.MessageName(), abs)}, l.detailLines(m)...)
	return strings.Join(lines, "\n"), true
}

func (l *messageList[M]) drawDetail(s *draw.Surface, extra []string) {
	abs, ok := l.nav.Selected()
	if !ok {
		s.Add("Select a message to see its fields.", styles.Dim)
		return
	}
	m, _ := l.nav.Item(abs)
	lines := append([]string(nil), extra...)
	hide := "off"
	if l.hideNone {
		hide = "on"
	}
	lines = append(lines, "hide none values: "+hide, "")
	lines = append(lines, l.detailLines(m)...)
	box(s, fmt.Sprintf("%s #%d", m.MessageName(), abs), lines)
}

// box fills the remaining surface with a bordered box.
func box(s *draw.Surface, title string, lines []string) {
	width := s.Width
	if width <= 0 {
		width = 60
	}
	height := s.Remaining()
	if height < 0 {
		height = len(lines) + 2
	}
	if height < 3 {
		return
	}
	s.AddRaw(draw.Box(title, lines, 0, width, height))
}

func selectTraced[T any](nav *state.Navigator[T], e event.SelectItem) bool {
	if !nav.Select(e.Index) {
		events.Nav.Rejected(string(e.List), e.Index)
		return false
	}
	events.Nav.Select(string(e.List), e.Index)
	return true
}

func setFilterTraced[T any](nav *state.Navigator[T], e event.SetFilter) bool {
	if !nav.SetOnly(e.Key) {
		return false
	}
	if e.Key == "" {
		events.Filter.Cleared(string(e.List))
	} else {
		events.Filter.Changed(string(e.List), e.Key, true)
	}
	return true
}
