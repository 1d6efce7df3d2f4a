package task

import (
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Progress is a human-readable status line plus an optional completion
// fraction in [0, 1]; a negative fraction means unknown.
type Progress struct {
	Message  string
	Fraction float64
}

// Status builds a progress value without a known fraction.
func Status(msg string) Progress {
	return Progress{Message: msg, Fraction: -1}
}

// Count builds a "done/total unit" progress value with grouped digits.
func Count(done, total int, unit string) Progress {
	p := Progress{Message: printer.Sprintf("%d/%d %s", done, total, unit), Fraction: -1}
	if total > 0 {
		p.Fraction = float64(done) / float64(total)
	}
	return p
}

// queue is an unbounded single-producer, single-consumer progress buffer.
type queue struct {
	mu    sync.Mutex
	items []Progress
}

func (q *queue) push(p Progress) {
	q.mu.Lock()
	q.items = append(q.items, p)
	q.mu.Unlock()
}

func (q *queue) drain() []Progress {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

// Reporter forwards worker progress, coalescing bursts to one message per
// interval. The most recent suppressed message is delivered when the work
// returns.
type Reporter struct {
	out     *queue
	gate    *throttle
	pending *Progress
}

func newReporter(out *queue, interval time.Duration) *Reporter {
	return &Reporter{out: out, gate: newThrottle(interval)}
}

// Report queues p unless a message was forwarded within the interval.
func (r *Reporter) Report(p Progress) {
	if r == nil {
		return
	}
	if r.gate.allow() {
		r.pending = nil
		r.out.push(p)
		return
	}
	r.pending = &p
}

// Frames reports decode progress in frames.
func (r *Reporter) Frames(done, total int) {
	r.Report(Count(done, total, "frames"))
}

func (r *Reporter) flush() {
	if r.pending != nil {
		r.out.push(*r.pending)
		r.pending = nil
	}
}
