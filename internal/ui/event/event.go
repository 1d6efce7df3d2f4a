// Package event defines the closed set of commands exchanged between the
// mediator, the session controller and the tool panels.
package event

import (
	"fmt"

	"github.com/atomicstack/demo-crawler/internal/ui/focus"
)

// List names a navigable list that events can address.
type List string

const (
	Frames             List = "frames"
	SignOnFrames       List = "sign_on_frames"
	PacketDataMessages List = "packet_data_messages"
	UserMessages       List = "user_messages"
	GameEvents         List = "game_events"
	SendTables         List = "send_tables"
)

// DiagnosticKind selects a bulk validation scan.
type DiagnosticKind int

const (
	DiagnoseNetMessages DiagnosticKind = iota
	DiagnoseUserMessages
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnoseNetMessages:
		return "net-messages"
	case DiagnoseUserMessages:
		return "user-messages"
	default:
		return fmt.Sprintf("diagnostic(%d)", int(k))
	}
}

// Event is implemented only by the types in this package.
type Event interface {
	fmt.Stringer
	event()
}

type OpenFileRequested struct{}

type FileOpened struct {
	Path string
}

type SetFocus struct {
	Target focus.Target
}

type SelectItem struct {
	List  List
	Index int
}

type SwitchTool struct {
	Name string
}

type ClearFilter struct {
	List List
}

// SetFilter leaves only Key enabled on List; an empty Key clears filtering.
type SetFilter struct {
	List List
	Key  string
}

type RunDiagnostic struct {
	Kind DiagnosticKind
}

// CopyText asks the mediator to put Text on the system clipboard.
type CopyText struct {
	Text string
}

// DiagnosticFinished carries the summary of a completed scan.
type DiagnosticFinished struct {
	Kind   DiagnosticKind
	Report Report
}

// Report summarises a diagnostic scan.
type Report struct {
	Scanned  int
	Flagged  int
	Warnings int
	Errors   int
	Err      error
}

func (OpenFileRequested) event()  {}
func (FileOpened) event()         {}
func (SetFocus) event()           {}
func (SelectItem) event()         {}
func (SwitchTool) event()         {}
func (ClearFilter) event()        {}
func (SetFilter) event()          {}
func (RunDiagnostic) event()      {}
func (CopyText) event()           {}
func (DiagnosticFinished) event() {}

func (OpenFileRequested) String() string { return "OpenFileRequested" }
func (e FileOpened) String() string      { return fmt.Sprintf("FileOpened(%s)", e.Path) }
func (e SetFocus) String() string        { return fmt.Sprintf("SetFocus(%s)", e.Target) }
func (e SelectItem) String() string      { return fmt.Sprintf("SelectItem(%s, %d)", e.List, e.Index) }
func (e SwitchTool) String() string      { return fmt.Sprintf("SwitchTool(%s)", e.Name) }
func (e ClearFilter) String() string     { return fmt.Sprintf("ClearFilter(%s)", e.List) }
func (e SetFilter) String() string       { return fmt.Sprintf("SetFilter(%s, %q)", e.List, e.Key) }
func (e RunDiagnostic) String() string   { return fmt.Sprintf("RunDiagnostic(%s)", e.Kind) }
func (e CopyText) String() string        { return fmt.Sprintf("CopyText(%d bytes)", len(e.Text)) }
func (e DiagnosticFinished) String() string {
	return fmt.Sprintf("DiagnosticFinished(%s, %d/%d)", e.Kind, e.Report.Flagged, e.Report.Scanned)
}

// Batch is an ordered group of events produced during one pass.
type Batch []Event

// Emit appends events to the batch.
func (b *Batch) Emit(evts ...Event) {
	*b = append(*b, evts...)
}

// Strings renders each event for logging.
func (b Batch) Strings() []string {
	out := make([]string, len(b))
	for i, evt := range b {
		out[i] = evt.String()
	}
	return out
}
