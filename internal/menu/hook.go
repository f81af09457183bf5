package menu

import (
	"fmt"

	"github.com/atomicstack/minimenu/internal/dom"
)

// Phase selects which transition a hook is bound to.
type Phase int

const (
	// PhasePre runs just before a menu is shown.
	PhasePre Phase = iota + 1
	// PhasePost runs just after a menu is hidden.
	PhasePost
)

func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhasePost:
		return "post"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhase maps "pre"/"post" to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "pre":
		return PhasePre, nil
	case "post":
		return PhasePost, nil
	default:
		return 0, fmt.Errorf("%w: unknown phase %q", ErrInvalidHook, s)
	}
}

// HookContext carries the arguments of a hook invocation. Subject is the
// target element for open hooks and the menu container for close hooks.
type HookContext struct {
	Phase   Phase
	Event   *dom.Event
	Menu    *Menu
	Target  *dom.Element
	Subject *dom.Element
}

// Hook observes an open or close transition. A returned error propagates to
// the dispatcher of the triggering event; hooks cannot veto a close.
type Hook func(HookContext) error

func noopHook(HookContext) error { return nil }

type hooks struct {
	onOpen  Hook
	onClose Hook
}

func newHooks() hooks {
	return hooks{onOpen: noopHook, onClose: noopHook}
}

func (h *hooks) set(phase Phase, fn Hook) error {
	if fn == nil {
		return fmt.Errorf("%w: %s hook must be a function", ErrInvalidHook, phase)
	}
	switch phase {
	case PhasePre:
		h.onOpen = fn
	case PhasePost:
		h.onClose = fn
	default:
		return fmt.Errorf("%w: unknown phase %s", ErrInvalidHook, phase)
	}
	return nil
}

func (h *hooks) clear(phase Phase) error {
	switch phase {
	case PhasePre:
		h.onOpen = noopHook
	case PhasePost:
		h.onClose = noopHook
	default:
		return fmt.Errorf("%w: unknown phase %s", ErrInvalidHook, phase)
	}
	return nil
}
