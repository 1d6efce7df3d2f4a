package ui

import (
	"strings"

	"github.com/atomicstack/demo-crawler/internal/task"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/charmbracelet/lipgloss"
)

const footerText = "ctrl+o open  ←/→ tools  f filter  g go to  y copy  q quit"

// render draws the active top-level view. Panels append the events they
// raise to out. An open modal replaces the output but not the panel draw.
func (m *Model) render(out *event.Batch) string {
	var body string
	switch m.view {
	case viewNoFile:
		body = m.viewNoFile()
	case viewOpening:
		body = m.viewProgress(task.KindFileLoad, "Opening: ")
	case viewSession:
		body = m.viewSession(out)
	case viewTask:
		body = m.viewProgress(task.KindDiagnosticScan, "")
	}
	if modal := m.modalView(); modal != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}
	return body
}

func (m *Model) viewNoFile() string {
	s := draw.New(m.width, m.height)
	s.Add("No files opened", styles.Title)
	s.Blank()
	s.Add("Press ctrl+o to open a demo", styles.Info)
	return s.Render()
}

// viewProgress shows the spinner, the latest progress message and a bar
// when the fraction is known.
func (m *Model) viewProgress(kind task.Kind, prefix string) string {
	s := draw.New(m.width, m.height)
	s.AddRaw(m.spinner.View() + " " + styles.Loading.Render(prefix+m.tasks.Label(kind)))
	s.Blank()
	p := m.tasks.Progress(kind)
	if p.Message != "" {
		s.Add(p.Message, styles.Info)
		if p.Fraction >= 0 {
			s.AddRaw(m.bar.ViewAs(p.Fraction))
		}
	}
	return s.Render()
}

func (m *Model) viewSession(out *event.Batch) string {
	if m.session == nil {
		return m.viewNoFile()
	}
	s := draw.New(m.width, m.height-1)
	m.session.Draw(s, out)
	lines := strings.Split(s.Render(), "\n")
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	footer := draw.New(m.width, 1)
	footer.Add(footerText, styles.Footer)
	return strings.Join(append(lines, footer.Render()), "\n")
}

func (m *Model) modalView() string {
	switch {
	case m.alert != "":
		return styles.ModalError.Width(m.modalWidth()).Render(m.alert + "\n\n" + styles.Dim.Render("enter: dismiss"))
	case m.files != nil:
		return m.filePickerView()
	case m.filter != nil:
		return m.filterView()
	}
	return ""
}

// modalWidth is the content width of a modal box.
func (m *Model) modalWidth() int {
	w := m.width - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}
