package ui

import (
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/task"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerTypes are the extensions the file picker offers.
var pickerTypes = []string{".dem", ".json"}

// openFilePicker shows the file dialog unless a load is in flight.
func (m *Model) openFilePicker() {
	if m.tasks.Running(task.KindFileLoad) {
		events.App.OpenIgnored(m.tasks.Label(task.KindFileLoad))
		return
	}
	fp := filepicker.New()
	fp.CurrentDirectory = m.dir
	fp.AllowedTypes = pickerTypes
	fp.AutoHeight = false
	fp.ShowPermissions = false
	fp.SetHeight(m.pickerHeight())
	m.files = &fp
	events.App.Modal("file-picker", true)
	m.cmds = append(m.cmds, fp.Init())
}

func (m *Model) closeFilePicker() {
	if m.files == nil {
		return
	}
	m.dir = m.files.CurrentDirectory
	m.files = nil
	events.App.Modal("file-picker", false)
}

func (m *Model) pickerHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) updateFilePicker(msg tea.Msg) {
	updated, cmd := m.files.Update(msg)
	m.files = &updated
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

// handleFilePickerKey closes the dialog on esc or ctrl+c and turns a picked
// file into a file-opened event.
func (m *Model) handleFilePickerKey(msg tea.KeyMsg, out *event.Batch) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.closeFilePicker()
		return
	}
	m.updateFilePicker(msg)
	if ok, path := m.files.DidSelectFile(msg); ok {
		m.closeFilePicker()
		out.Emit(event.FileOpened{Path: path})
	}
}

func (m *Model) filePickerView() string {
	body := styles.Title.Render("Open demo") + "\n" +
		styles.Dim.Render(m.files.CurrentDirectory) + "\n\n" +
		m.files.View()
	return styles.Modal.Width(m.modalWidth()).Render(body)
}
