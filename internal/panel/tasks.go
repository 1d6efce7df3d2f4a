package panel

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/ui/draw"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
	"github.com/atomicstack/demo-crawler/internal/ui/focus"
)

// Tasks launches the bulk diagnostic scans and shows the last result.
type Tasks struct {
	last *event.DiagnosticFinished
}

func NewTasks() *Tasks { return &Tasks{} }

func (t *Tasks) panel() {}

func (t *Tasks) Name() string { return NameTasks }

func (t *Tasks) Focus() focus.Target { return focus.None() }

func (t *Tasks) SetFocus(focus.Target) {}

// Last returns the most recent scan result.
func (t *Tasks) Last() (event.DiagnosticFinished, bool) {
	if t.last == nil {
		return event.DiagnosticFinished{}, false
	}
	return *t.last, true
}

func (t *Tasks) HandleEvent(evt event.Event) bool {
	if e, ok := evt.(event.DiagnosticFinished); ok {
		t.last = &e
		return true
	}
	return false
}

func (t *Tasks) Act(a Action, out *event.Batch) bool {
	switch a {
	case ActionScanNetMessages:
		out.Emit(event.RunDiagnostic{Kind: event.DiagnoseNetMessages})
		return true
	case ActionScanUserMessages:
		out.Emit(event.RunDiagnostic{Kind: event.DiagnoseUserMessages})
		return true
	}
	return false
}

func (t *Tasks) Draw(s *draw.Surface, _ *event.Batch) {
	s.Add("Tasks", styles.Title)
	s.Blank()
	s.Add("n  Dump all net message warnings/errors to the log", styles.Info)
	s.Add("u  Dump all user message warnings/errors to the log", styles.Info)
	s.Blank()
	if t.last == nil {
		s.Add("Log: "+logging.Path(), styles.Dim)
		return
	}
	r := t.last.Report
	if r.Err != nil {
		s.Add(fmt.Sprintf("Last scan (%s) failed: %v", t.last.Kind, r.Err), styles.Error)
		return
	}
	s.Add(fmt.Sprintf("Last scan (%s): %d scanned, %d flagged, %d warnings, %d errors",
		t.last.Kind, r.Scanned, r.Flagged, r.Warnings, r.Errors), styles.Info)
	s.Add("Details were written to "+logging.Path(), styles.Dim)
}
