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

// SchemaMode selects what the schema view shows.
type SchemaMode int

const (
	ModeClasses SchemaMode = iota
	ModeSendTables
)

func (m SchemaMode) String() string {
	if m == ModeSendTables {
		return "Send Tables"
	}
	return "Class Descriptions"
}

// SchemaTables shows a data-tables snapshot. It is nested inside the frames
// panels rather than listed as a tool of its own.
type SchemaTables struct {
	tables   *demo.DataTables
	mode     SchemaMode
	nav      *state.Navigator[demo.SendTable]
	reported int
}

// NewSchemaTables builds the view in class mode.
func NewSchemaTables(tables *demo.DataTables) *SchemaTables {
	return &SchemaTables{
		tables:   tables,
		nav:      state.NewNavigator(tables.SendTables, sendTableKey, nil),
		reported: -1,
	}
}

func sendTableKey(t demo.SendTable) string {
	if t.NeedsDecoder {
		return "needs decoder"
	}
	return "no decoder"
}

func (t *SchemaTables) panel() {}

func (t *SchemaTables) Name() string { return "Data Tables" }

func (t *SchemaTables) Focus() focus.Target { return focus.SchemaTableList(string(event.SendTables)) }

func (t *SchemaTables) SetFocus(focus.Target) {}

// Mode returns the active mode.
func (t *SchemaTables) Mode() SchemaMode { return t.mode }

// ToggleMode switches between class descriptions and send tables.
func (t *SchemaTables) ToggleMode() {
	if t.mode == ModeClasses {
		t.mode = ModeSendTables
	} else {
		t.mode = ModeClasses
	}
}

// Navigate moves the send table selection. Keys are inert in class mode.
func (t *SchemaTables) Navigate(move state.Move) bool {
	if t.mode != ModeSendTables {
		return false
	}
	t.nav.Apply(move)
	return true
}

// Selected returns the absolute index of the selected send table.
func (t *SchemaTables) Selected() (int, bool) { return t.nav.Selected() }

func (t *SchemaTables) Filter() Filter {
	return Filter{List: event.SendTables, Title: "Filter send tables", Entries: t.nav.Entries()}
}

func (t *SchemaTables) HandleEvent(evt event.Event) bool {
	switch e := evt.(type) {
	case event.SelectItem:
		if e.List == event.SendTables {
			return selectTraced(t.nav, e)
		}
	case event.SetFilter:
		if e.List == event.SendTables {
			return setFilterTraced(t.nav, e)
		}
	case event.ClearFilter:
		if e.List == event.SendTables {
			t.nav.ClearFilters()
			events.Filter.Cleared(string(e.List))
			return true
		}
	}
	return false
}

func (t *SchemaTables) Draw(s *draw.Surface, _ *event.Batch) {
	t.drawNested(s, false)
}

func (t *SchemaTables) drawNested(s *draw.Surface, focused bool) {
	s.Add(fmt.Sprintf("Data Tables: %s  (m: switch to %s)", t.mode, t.mode^1), styles.Header)
	if t.mode == ModeClasses {
		rows := [][]string{{"Class", "Table", "Network Name"}}
		for _, c := range t.tables.Classes {
			rows = append(rows, []string{fmt.Sprintf("%d", c.ClassID), c.TableName, c.NetworkName})
		}
		for i, line := range table.Format(rows, []table.Alignment{table.AlignRight}) {
			style := styles.Info
			if i == 0 {
				style = styles.Dim
			}
			s.Add(line, style)
		}
		return
	}

	listRows := t.nav.Len() + 3
	if h := s.Remaining(); h > 0 && listRows > h/2 {
		listRows = h / 2
	}
	upper := draw.New(s.Width, listRows)
	listTitle(upper, fmt.Sprintf("Send Tables (%d)", t.nav.Len()), focused)
	drawRows(upper, t.nav, []string{"#", "Name", "End", "Decoder", "Props"},
		func(abs int, st demo.SendTable) []string {
			return []string{
				fmt.Sprintf("%d", abs),
				st.Name,
				fmt.Sprintf("%t", st.IsEnd),
				fmt.Sprintf("%t", st.NeedsDecoder),
				fmt.Sprintf("%d", len(st.Props)),
			}
		},
		[]table.Alignment{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight},
	)
	s.AddRaw(upper.Block())

	st, ok := t.nav.SelectedItem()
	if !ok {
		s.Add("Select a send table to see its props.", styles.Dim)
		return
	}
	t.report()
	for _, w := range demo.FormatWarnings(st.Warnings) {
		s.Add("warning: "+w, styles.Warning)
	}
	box(s, "Props: "+st.Name, table.Format(propRows(st), nil))
}

func propRows(st demo.SendTable) [][]string {
	rows := [][]string{{"Type", "Name", "Flags", "Priority", "Elements", "Low", "High", "Bits", "Exclude"}}
	for _, p := range st.Props {
		rows = append(rows, []string{
			p.Type,
			p.Name,
			fmt.Sprintf("%d", p.Flags),
			fmt.Sprintf("%d", p.Priority),
			fmt.Sprintf("%d", p.NumElements),
			fmt.Sprintf("%g", p.LowValue),
			fmt.Sprintf("%g", p.HighValue),
			fmt.Sprintf("%d", p.NumBits),
			p.ExcludeName,
		})
	}
	return rows
}

// copyText renders the selected send table with its props and warnings.
func (t *SchemaTables) copyText() (string, bool) {
	if t.mode != ModeSendTables {
		return "", false
	}
	st, ok := t.nav.SelectedItem()
	if !ok {
		return "", false
	}
	lines := append([]string{"Props: " + st.Name}, table.Format(propRows(st), nil)...)
	for _, w := range demo.FormatWarnings(st.Warnings) {
		lines = append(lines, "warning: "+w)
	}
	return strings.Join(lines, "\n"), true
}

// report logs the warnings of a newly selected send table once.
func (t *SchemaTables) report() {
	abs, ok := t.nav.Selected()
	if !ok || abs == t.reported {
		return
	}
	t.reported = abs
	st, _ := t.nav.Item(abs)
	if lines := demo.Report(fmt.Sprintf("%s[%d]", event.SendTables, abs), st); len(lines) > 0 {
		logging.Diagnostic(lines...)
	}
}
