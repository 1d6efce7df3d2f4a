package ui

import (
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/state"
)

// filterModal chooses the single enabled filter entry of a list.
type filterModal struct {
	list   event.List
	picker *state.Picker
}

// openFilter shows the chooser for the focused list.
func (m *Model) openFilter() {
	target := m.router.Current()
	f, ok := m.session.Filter(target)
	if !ok {
		return
	}
	m.filter = &filterModal{list: f.List, picker: state.FilterPicker(f.Title, f.Entries)}
	m.filter.picker.EnsureCursorVisible(m.filterRows())
	events.App.Modal("filter", true)
}

func (m *Model) closeFilter() {
	m.filter = nil
	events.App.Modal("filter", false)
}

// commitFilter emits the choice under the cursor. The "None" entry carries an
// empty key, which clears filtering.
func (m *Model) commitFilter(out *event.Batch) {
	if item, ok := m.filter.picker.Current(); ok {
		out.Emit(event.SetFilter{List: m.filter.list, Key: item.ID})
	}
	m.closeFilter()
}

func (m *Model) filterRows() int {
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m *Model) filterView() string {
	p := m.filter.picker
	width := m.modalWidth()
	rows := m.filterRows()
	s := draw.New(width, rows+3)
	s.Add(p.Title, styles.Title)
	s.AddRaw(filterPrompt(p))
	s.Blank()
	if len(p.Items) == 0 {
		s.Add("No matches", styles.Info)
	}
	end := p.ViewportOffset + rows
	if end > len(p.Items) {
		end = len(p.Items)
	}
	for i := p.ViewportOffset; i < end; i++ {
		s.AddLine(draw.Item(p.Items[i].Label, i == p.Cursor, width))
	}
	return styles.Modal.Render(s.Render())
}

// filterPrompt renders the query with a block caret at the cursor.
func filterPrompt(p *state.Picker) string {
	prompt := styles.FilterPrompt.Render("» ")
	if p.Filter == "" {
		return prompt + styles.Cursor.Render("(") + styles.FilterPlaceholder.Render("type to search)")
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + styles.Filter.Render(string(runes[:pos])) + styles.Cursor.Render(caret) + styles.Filter.Render(after)
}
