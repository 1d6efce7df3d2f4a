package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/session"
	"github.com/atomicstack/demo-crawler/internal/task"
	"github.com/atomicstack/demo-crawler/internal/theme"
	"github.com/atomicstack/demo-crawler/internal/ui/command"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// pollInterval paces task polling and progress coalescing.
	pollInterval = 50 * time.Millisecond
)

var styles = theme.Default()

// view is the top-level view owned by the mediator.
type view int

const (
	viewNoFile view = iota
	viewOpening
	viewSession
	viewTask
)

func (v view) String() string {
	switch v {
	case viewNoFile:
		return "no-file"
	case viewOpening:
		return "opening"
	case viewSession:
		return "session"
	case viewTask:
		return "task"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

// OpenFunc decodes the file at path.
type OpenFunc func(ctx context.Context, path string, progress demo.ProgressFunc) (*demo.File, error)

// ClipboardFunc writes text to the system clipboard.
type ClipboardFunc func(text string) error

// Options configures a Model.
type Options struct {
	// Path is opened on start as if picked.
	Path string
	// Dir is where the file picker starts.
	Dir    string
	Width  int
	Height int
	// Open defaults to demo.Open.
	Open OpenFunc
	// Clipboard defaults to the system clipboard.
	Clipboard ClipboardFunc
	Context   context.Context
}

type frameMsg struct{}

type pollMsg struct{}

type openPathMsg struct {
	path string
}

// Model is the root mediator. Every Update runs one frame: poll tasks, drop
// a finished transient view, route keys, draw, then dispatch the events the
// frame produced.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	keys      KeyMap
	router    *focus.Router
	bus       *command.Bus
	tasks     *task.Coordinator
	open      OpenFunc
	clip      ClipboardFunc
	dir       string
	startPath string

	view     view
	prior    view
	session  *session.Controller
	rendered string
	quitting bool

	// events raised outside a draw, dispatched on the next frame
	pending event.Batch
	cmds    []tea.Cmd
	polling bool
	after   func(time.Duration, tea.Msg) tea.Cmd

	spinner spinner.Model
	bar     progress.Model
	files   *filepicker.Model
	filter  *filterModal
	alert   string
}

// NewModel builds the mediator in the no-file view.
func NewModel(opts Options) *Model {
	open := opts.Open
	if open == nil {
		open = demo.Open
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	keys := DefaultKeyMap()
	m := &Model{
		width:     defaultWidth,
		height:    defaultHeight,
		keys:      keys,
		router:    focus.NewRouter(keys.Nav),
		bus:       command.New(),
		tasks:     task.NewCoordinator(opts.Context, pollInterval),
		open:      open,
		clip:      clip,
		dir:       dir,
		startPath: opts.Path,
		after: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(*styles.Loading)),
		bar:     progress.New(progress.WithDefaultGradient()),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.bar.Width = m.width - 4
	m.rendered = m.render(&event.Batch{})
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("demo-crawler")}
	if m.startPath != "" {
		path := m.startPath
		cmds = append(cmds, func() tea.Msg { return openPathMsg{path: path} })
	}
	return tea.Batch(cmds...)
}

// Update runs one frame.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.cmds = nil
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
	case pollMsg:
		m.polling = false
		if m.tasks.Busy() {
			// the spinner advances with the poll tick instead of its own timer
			m.spinner, _ = m.spinner.Update(spinner.TickMsg{ID: m.spinner.ID()})
		}
	case openPathMsg:
		m.pending.Emit(event.FileOpened{Path: msg.path})
	}
	if m.files != nil {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			m.updateFilePicker(msg)
		}
	}
	m.frame(msg)
	return m, tea.Batch(m.cmds...)
}

// View returns the output of the last frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.rendered
}

func (m *Model) frame(msg tea.Msg) {
	m.tasks.Poll()
	if m.view == viewTask && !m.tasks.Running(task.KindDiagnosticScan) {
		m.setView(m.prior)
	}

	batch := m.pending
	m.pending = nil
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.handleKey(keyMsg, &batch)
	}

	m.rendered = m.render(&batch)

	if len(batch) > 0 {
		leftover := m.bus.Dispatch(batch, m.handlers()...)
		if len(leftover) > 0 {
			logging.Diagnostic(append([]string{"unhandled events on frame:"}, leftover.Strings()...)...)
		}
	}
	if len(batch) > 0 || len(m.pending) > 0 {
		m.cmds = append(m.cmds, nextFrame)
	}
	if m.tasks.Busy() && !m.polling {
		m.polling = true
		m.cmds = append(m.cmds, m.after(pollInterval, pollMsg{}))
	}
}

func nextFrame() tea.Msg { return frameMsg{} }

func (m *Model) handlers() []command.Handler {
	handlers := []command.Handler{m}
	if m.session != nil {
		handlers = append(handlers, m.session)
	}
	return handlers
}

// HandleEvent consumes the events addressed to the mediator itself.
func (m *Model) HandleEvent(evt event.Event) bool {
	switch e := evt.(type) {
	case event.OpenFileRequested:
		m.openFilePicker()
		return true
	case event.FileOpened:
		m.startLoad(e.Path)
		return true
	case event.RunDiagnostic:
		m.startScan(e.Kind)
		return true
	case event.CopyText:
		m.copyText(e.Text)
		return true
	case event.SetFocus:
		m.router.Set(e.Target)
		if m.session != nil {
			m.session.HandleEvent(e)
		}
		return true
	}
	return false
}

func (m *Model) setView(v view) {
	if m.view == v {
		return
	}
	m.view = v
	events.App.View(v.String())
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	if !m.fixedWidth {
		m.width = msg.Width
	}
	if !m.fixedHeight {
		m.height = msg.Height
	}
	m.bar.Width = m.width - 4
	if m.files != nil {
		m.files.SetHeight(m.pickerHeight())
	}
}

func (m *Model) copyText(text string) {
	if err := m.clip(text); err != nil {
		logging.Error(fmt.Errorf("copy to clipboard: %w", err))
		m.alert = fmt.Sprintf("Failed to copy: %v", err)
		events.App.Modal("alert", true)
		return
	}
	events.App.Copied(len(text))
}

func (m *Model) quit() {
	m.quitting = true
	events.App.Quit()
	m.cmds = append(m.cmds, tea.Quit)
}
