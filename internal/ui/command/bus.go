package command

import (
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/atomicstack/demo-crawler/internal/ui/event"
)

// Handler consumes events addressed to it.
type Handler interface {
	HandleEvent(evt event.Event) bool
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(evt event.Event) bool

func (fn HandlerFunc) HandleEvent(evt event.Event) bool {
	return fn(evt)
}

// Bus runs dispatch passes over event batches.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Dispatch offers every event of in to the handlers top-down; the first
// handler that consumes an event stops its propagation. The input batch is
// not modified; events no handler consumed are returned in a fresh batch.
func (b *Bus) Dispatch(in event.Batch, handlers ...Handler) event.Batch {
	if len(in) == 0 {
		return nil
	}
	var leftover event.Batch
	for _, evt := range in {
		consumed := false
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if h.HandleEvent(evt) {
				consumed = true
				break
			}
		}
		if !consumed {
			leftover = append(leftover, evt)
		}
	}
	events.Dispatch.Pass(len(in), len(leftover))
	if len(leftover) > 0 {
		events.Dispatch.Unhandled(leftover.Strings())
	}
	return leftover
}
