package events

import "github.com/atomicstack/demo-crawler/internal/logging"

type TaskTracer struct{}

type FocusTracer struct{}

type ToolTracer struct{}

type DispatchTracer struct{}

type NavTracer struct{}

type FilterTracer struct{}

var (
	Task     = TaskTracer{}
	Focus    = FocusTracer{}
	Tool     = ToolTracer{}
	Dispatch = DispatchTracer{}
	Nav      = NavTracer{}
	Filter   = FilterTracer{}
)

func (TaskTracer) Start(id, kind, label string) {
	logging.Trace("task.start", map[string]interface{}{"id": id, "kind": kind, "label": label})
}

func (TaskTracer) Finish(id, kind string, err error) {
	payload := map[string]interface{}{"id": id, "kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("task.finish", payload)
}

func (TaskTracer) Busy(kind string) {
	logging.Trace("task.busy", map[string]interface{}{"kind": kind})
}

func (FocusTracer) Set(from, to string) {
	logging.Trace("focus.set", map[string]interface{}{"from": from, "to": to})
}

func (ToolTracer) Active(index int, name string) {
	logging.Trace("tool.active", map[string]interface{}{"index": index, "name": name})
}

func (ToolTracer) Missing(name string) {
	logging.Trace("tool.missing", map[string]interface{}{"name": name})
}

func (DispatchTracer) Pass(events, leftover int) {
	logging.Trace("dispatch.pass", map[string]interface{}{"events": events, "leftover": leftover})
}

func (DispatchTracer) Unhandled(events []string) {
	logging.Trace("dispatch.unhandled", map[string]interface{}{"events": events})
}

func (NavTracer) Select(list string, index int) {
	logging.Trace("nav.select", map[string]interface{}{"list": list, "index": index})
}

func (NavTracer) Rejected(list string, index int) {
	logging.Trace("nav.rejected", map[string]interface{}{"list": list, "index": index})
}

func (FilterTracer) Changed(list, key string, enabled bool) {
	logging.Trace("filter.changed", map[string]interface{}{"list": list, "key": key, "enabled": enabled})
}

func (FilterTracer) Cleared(list string) {
	logging.Trace("filter.clear", map[string]interface{}{"list": list})
}

func (FilterTracer) Query(list, query string) {
	logging.Trace("filter.query", map[string]interface{}{"list": list, "query": query})
}
