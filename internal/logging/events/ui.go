package events

import "github.com/atomicstack/minimenu/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Pointer(event, element string, x, y int) {
	logging.Trace("ui.pointer", map[string]interface{}{"event": event, "element": element, "x": x, "y": y})
}

func (UITracer) Key(key string, menuOpen bool) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "menuOpen": menuOpen})
}

func (UITracer) Highlight(menu string, index int) {
	logging.Trace("ui.highlight", map[string]interface{}{"menu": menu, "index": index})
}

func (UITracer) Reload(menus int) {
	logging.Trace("ui.reload", map[string]interface{}{"menus": menus})
}

func (ActionTracer) Raised(token, target string) {
	logging.Trace("action.raised", map[string]interface{}{"token": token, "target": target})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(token, target string, argv []string) {
	logging.Trace("command.queue", map[string]interface{}{"token": token, "target": target, "argv": argv})
}

func (CommandTracer) Skip(token, target string) {
	logging.Trace("command.skip", map[string]interface{}{"token": token, "target": target})
}

func (CommandTracer) Result(token, target string, exitCode int) {
	logging.Trace("command.result", map[string]interface{}{"token": token, "target": target, "exit": exitCode})
}
