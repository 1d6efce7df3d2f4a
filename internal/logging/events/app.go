package events

import "github.com/atomicstack/demo-crawler/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) OpenRequested(path string) {
	logging.Trace("app.open", map[string]interface{}{"path": path})
}

func (AppTracer) OpenIgnored(path string) {
	logging.Trace("app.open-ignored", map[string]interface{}{"path": path})
}

func (AppTracer) View(name string) {
	logging.Trace("app.view", map[string]interface{}{"view": name})
}

func (AppTracer) Modal(name string, open bool) {
	logging.Trace("app.modal", map[string]interface{}{"modal": name, "open": open})
}

func (AppTracer) Quit() {
	logging.Trace("app.quit", nil)
}

func (AppTracer) Copied(bytes int) {
	logging.Trace("app.copy", map[string]interface{}{"bytes": bytes})
}
