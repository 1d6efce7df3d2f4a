// Package task runs blocking work off the UI loop and hands results back
// through a non-blocking poll.
package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/google/uuid"
)

// ErrBusy is returned by Start when a task of the same kind is running.
var ErrBusy = errors.New("task already running")

// Kind distinguishes concurrently running tasks. At most one task per kind
// runs at a time.
type Kind int

const (
	KindFileLoad Kind = iota
	KindDiagnosticScan
)

func (k Kind) String() string {
	switch k {
	case KindFileLoad:
		return "file-load"
	case KindDiagnosticScan:
		return "diagnostic-scan"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is the lifecycle position of a task kind.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is handed to the completion callback exactly once.
type Result struct {
	Kind    Kind
	ID      uuid.UUID
	Label   string
	Value   any
	Err     error
	Elapsed time.Duration
}

// Work is the blocking operation. It owns its inputs and must not touch UI
// state; progress goes through report.
type Work func(ctx context.Context, report *Reporter) (any, error)

// Completion runs on the polling goroutine when a task finishes.
type Completion func(Result)

type slot struct {
	id       uuid.UUID
	label    string
	state    State
	done     chan Result
	progress *queue
	latest   Progress
	onDone   Completion
}

// Coordinator owns one slot per task kind. All methods except the work
// itself run on the UI goroutine.
type Coordinator struct {
	ctx      context.Context
	interval time.Duration
	slots    map[Kind]*slot
}

// NewCoordinator creates a coordinator whose workers coalesce progress to at
// most one message per interval. ctx is handed to every worker.
func NewCoordinator(ctx context.Context, interval time.Duration) *Coordinator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Coordinator{
		ctx:      ctx,
		interval: interval,
		slots:    make(map[Kind]*slot),
	}
}

func (c *Coordinator) slot(kind Kind) *slot {
	s, ok := c.slots[kind]
	if !ok {
		s = &slot{}
		c.slots[kind] = s
	}
	return s
}

// Start launches work for kind. Starting a kind that is already running is a
// caller bug reported as ErrBusy.
func (c *Coordinator) Start(kind Kind, label string, work Work, onDone Completion) error {
	s := c.slot(kind)
	if s.state == StateRunning {
		events.Task.Busy(kind.String())
		return fmt.Errorf("%s: %w", kind, ErrBusy)
	}
	id := uuid.New()
	done := make(chan Result, 1)
	progress := &queue{}
	*s = slot{
		id:       id,
		label:    label,
		state:    StateRunning,
		done:     done,
		progress: progress,
		onDone:   onDone,
	}
	events.Task.Start(id.String(), kind.String(), label)
	reporter := newReporter(progress, c.interval)
	ctx := c.ctx
	go func() {
		started := time.Now()
		value, err := work(ctx, reporter)
		reporter.flush()
		done <- Result{
			Kind:    kind,
			ID:      id,
			Label:   label,
			Value:   value,
			Err:     err,
			Elapsed: time.Since(started),
		}
	}()
	return nil
}

// Poll checks every running task without blocking. Finished tasks have their
// completion callback invoked and return to Idle; their kinds are returned in
// ascending order.
func (c *Coordinator) Poll() []Kind {
	var finished []Kind
	for _, kind := range []Kind{KindFileLoad, KindDiagnosticScan} {
		s, ok := c.slots[kind]
		if !ok || s.state != StateRunning {
			continue
		}
		select {
		case res := <-s.done:
			s.state = StateFinished
			s.drain()
			events.Task.Finish(res.ID.String(), kind.String(), res.Err)
			if s.onDone != nil {
				s.onDone(res)
			}
			if s.id == res.ID && s.state == StateFinished {
				*s = slot{latest: s.latest}
			}
			finished = append(finished, kind)
		default:
		}
	}
	return finished
}

// State returns the lifecycle state of kind.
func (c *Coordinator) State(kind Kind) State {
	if s, ok := c.slots[kind]; ok {
		return s.state
	}
	return StateIdle
}

// Running reports whether kind is running.
func (c *Coordinator) Running(kind Kind) bool {
	return c.State(kind) == StateRunning
}

// Busy reports whether any task is running.
func (c *Coordinator) Busy() bool {
	for _, s := range c.slots {
		if s.state == StateRunning {
			return true
		}
	}
	return false
}

// Label returns the label given to the running task of kind.
func (c *Coordinator) Label(kind Kind) string {
	if s, ok := c.slots[kind]; ok {
		return s.label
	}
	return ""
}

// Progress returns the most recent progress of kind, draining any queued
// messages without blocking.
func (c *Coordinator) Progress(kind Kind) Progress {
	s, ok := c.slots[kind]
	if !ok {
		return Progress{}
	}
	s.drain()
	return s.latest
}

func (s *slot) drain() {
	if s.progress == nil {
		return
	}
	if msgs := s.progress.drain(); len(msgs) > 0 {
		s.latest = msgs[len(msgs)-1]
	}
}
