package events

import "github.com/atomicstack/minimenu/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Created(id, selector, trigger string, items int) {
	logging.Trace("menu.create", map[string]interface{}{
		"menu":     id,
		"selector": selector,
		"trigger":  trigger,
		"items":    items,
	})
}

func (MenuTracer) Opened(id, target string, x, y int) {
	logging.Trace("menu.open", map[string]interface{}{"menu": id, "target": target, "x": x, "y": y})
}

func (MenuTracer) Closed(id, reason string) {
	logging.Trace("menu.close", map[string]interface{}{"menu": id, "reason": reason})
}

func (MenuTracer) Selected(id, token, target string) {
	logging.Trace("menu.select", map[string]interface{}{"menu": id, "token": token, "target": target})
}

func (MenuTracer) Rejected(id, token, message string) {
	logging.Trace("menu.reject", map[string]interface{}{"menu": id, "token": token, "message": message})
}

func (MenuTracer) Unloaded(id string) {
	logging.Trace("menu.unload", map[string]interface{}{"menu": id})
}

func (MenuTracer) HookFailed(id, phase string, err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.hook-error", map[string]interface{}{"menu": id, "phase": phase, "error": err.Error()})
}
