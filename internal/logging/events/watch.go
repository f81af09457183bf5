package events

import "github.com/atomicstack/minimenu/internal/logging"

type WatchTracer struct{}

var Watch = WatchTracer{}

func (WatchTracer) Changed(path string) {
	logging.Trace("watch.changed", map[string]interface{}{"path": path})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}
