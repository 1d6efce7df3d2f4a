package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/demo-crawler/internal/demo"
	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/session"
	"github.com/atomicstack/demo-crawler/internal/task"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// startLoad decodes path off the UI goroutine. The current session is
// dropped while the opening view is shown.
func (m *Model) startLoad(path string) {
	if m.tasks.Running(task.KindFileLoad) {
		events.App.OpenIgnored(path)
		return
	}
	events.App.OpenRequested(path)
	open := m.open
	work := func(ctx context.Context, report *task.Reporter) (any, error) {
		return open(ctx, path, report.Frames)
	}
	if err := m.tasks.Start(task.KindFileLoad, openingLabel(path), work, m.loadFinished); err != nil {
		logging.Error(err)
		return
	}
	m.session = nil
	m.filter = nil
	m.router.Set(focus.None())
	m.setView(viewOpening)
}

func openingLabel(path string) string {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(info.Size())))
}

func (m *Model) loadFinished(res task.Result) {
	file, _ := res.Value.(*demo.File)
	if res.Err == nil && file == nil {
		res.Err = fmt.Errorf("decode %s: no data", res.Label)
	}
	if res.Err != nil {
		logging.Error(res.Err)
		m.alert = fmt.Sprintf("Failed to open file: %v", res.Err)
		events.App.Modal("alert", true)
		m.setView(viewNoFile)
		return
	}
	m.session = session.NewController(file)
	m.setView(viewSession)
	m.cmds = append(m.cmds, tea.SetWindowTitle(m.session.Title()))
}

// startScan runs a diagnostic scan behind the transient task view.
func (m *Model) startScan(kind event.DiagnosticKind) {
	if m.session == nil {
		return
	}
	file := m.session.File()
	var label string
	var work task.Work
	switch kind {
	case event.DiagnoseNetMessages:
		label = "Scanning net messages"
		work = func(ctx context.Context, report *task.Reporter) (any, error) {
			return file.ScanNetMessages(ctx, report.Frames, emitDiagnostic)
		}
	case event.DiagnoseUserMessages:
		label = "Scanning user messages"
		work = func(ctx context.Context, report *task.Reporter) (any, error) {
			progress := func(done, total int) { report.Report(task.Count(done, total, "messages")) }
			return file.ScanUserMessages(ctx, progress, emitDiagnostic)
		}
	default:
		return
	}
	onDone := func(res task.Result) { m.scanFinished(kind, res) }
	if err := m.tasks.Start(task.KindDiagnosticScan, label, work, onDone); err != nil {
		logging.Error(err)
		return
	}
	if m.view != viewTask {
		m.prior = m.view
	}
	m.setView(viewTask)
}

func emitDiagnostic(lines []string) {
	logging.Diagnostic(lines...)
}

func (m *Model) scanFinished(kind event.DiagnosticKind, res task.Result) {
	summary, _ := res.Value.(demo.ScanSummary)
	if res.Err != nil {
		logging.Error(fmt.Errorf("%s: %w", res.Label, res.Err))
	}
	m.pending.Emit(event.DiagnosticFinished{
		Kind: kind,
		Report: event.Report{
			Scanned:  summary.Scanned,
			Flagged:  summary.Flagged,
			Warnings: summary.Warnings,
			Errors:   summary.Errors,
			Err:      res.Err,
		},
	})
}
