package menu

import (
	"fmt"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/logging/events"
)

// Config describes a menu at construction time.
type Config struct {
	Items   []Item
	OnOpen  Hook
	OnClose Hook
}

// Menu is one popup built by a Registry.
type Menu struct {
	id        string
	registry  *Registry
	container Container
	nodes     []Node
	hooks     hooks
	context   *dom.Element
	selector  string
	events    string
	target    *dom.Element
	trigger   *dom.Binding
	itemClick *dom.Binding
	closing   bool
	disposed  bool
}

// ID returns the menu identifier.
func (m *Menu) ID() string {
	return m.id
}

// Container returns the menu's graphical container.
func (m *Menu) Container() Container {
	return m.container
}

// Nodes returns the realised items in construction order.
func (m *Menu) Nodes() []Node {
	dup := make([]Node, len(m.nodes))
	copy(dup, m.nodes)
	return dup
}

// Context returns the element the trigger binding is attached to.
func (m *Menu) Context() *dom.Element {
	return m.context
}

// Selector returns the trigger selector.
func (m *Menu) Selector() string {
	return m.selector
}

// Target returns the element that opened the menu, or nil while closed.
func (m *Menu) Target() *dom.Element {
	return m.target
}

// IsOpen reports whether this menu is the registry's active menu.
func (m *Menu) IsOpen() bool {
	return !m.disposed && m.registry.active == m.id
}

// Disposed reports whether Unload has been called.
func (m *Menu) Disposed() bool {
	return m.disposed
}

func (m *Menu) checkLive() error {
	if m.disposed {
		return fmt.Errorf("menu %s: %w", m.id, ErrDisposed)
	}
	return nil
}

// Hook sets the open (PhasePre) or close (PhasePost) hook.
func (m *Menu) Hook(phase Phase, fn Hook) error {
	if err := m.checkLive(); err != nil {
		return err
	}
	return m.hooks.set(phase, fn)
}

// Unhook resets the hooks of the given phases to no-ops; with no arguments
// both hooks are reset.
func (m *Menu) Unhook(phases ...Phase) error {
	if err := m.checkLive(); err != nil {
		return err
	}
	if len(phases) == 0 {
		phases = []Phase{PhasePre, PhasePost}
	}
	for _, p := range phases {
		if err := m.hooks.clear(p); err != nil {
			return err
		}
	}
	return nil
}

// Query returns the nodes whose token is listed in the whitespace-separated
// tokens, in construction order. An empty list returns every node.
func (m *Menu) Query(tokens string) ([]Node, error) {
	if err := m.checkLive(); err != nil {
		return nil, err
	}
	return m.query(ParseTokens(tokens)), nil
}

func (m *Menu) query(set TokenSet) []Node {
	out := make([]Node, 0, len(m.nodes))
	for _, n := range m.nodes {
		if set.Matches(n.Token()) {
			out = append(out, n)
		}
	}
	return out
}

// Invalidate marks the matched nodes as not selectable, annotated with
// message. It is meant to be called from the open hook.
func (m *Menu) Invalidate(tokens, message string) ([]Node, error) {
	if err := m.checkLive(); err != nil {
		return nil, err
	}
	nodes := m.query(ParseTokens(tokens))
	for _, n := range nodes {
		n.MarkInvalid(message)
	}
	return nodes, nil
}

// Reset clears the invalid marking of the matched nodes (all nodes when
// tokens is empty).
func (m *Menu) Reset(tokens string) ([]Node, error) {
	if err := m.checkLive(); err != nil {
		return nil, err
	}
	nodes := m.query(ParseTokens(tokens))
	for _, n := range nodes {
		n.ClearInvalid()
	}
	return nodes, nil
}

func (m *Menu) resetAll() {
	for _, n := range m.nodes {
		n.ClearInvalid()
	}
}

// Unload detaches the trigger and item bindings, removes the container and
// drops the menu from the registry. An open menu is closed without running
// its close hook. A second call returns ErrDisposed.
func (m *Menu) Unload() error {
	if err := m.checkLive(); err != nil {
		return err
	}
	r := m.registry
	if r.active == m.id {
		m.container.Hide()
		r.active = ""
	}
	m.target = nil
	r.doc.Off(m.trigger)
	r.doc.Off(m.itemClick)
	m.container.Remove()
	r.remove(m)
	m.disposed = true
	events.Menu.Unloaded(m.id)
	r.observer.MenuUnloaded(m.id)
	return nil
}

// handleTrigger is the trigger binding: it suppresses the default action,
// keeps the event away from the dismiss listener and opens the menu on the
// matched element.
func (m *Menu) handleTrigger(ev *dom.Event) error {
	ev.PreventDefault()
	ev.StopPropagation()
	if m.disposed || m.registry.owns(ev.CurrentTarget) {
		return nil
	}
	return m.registry.open(m, ev)
}

// handleItemClick is the item-click binding on the container. Clicks that
// hit no item (the border) are left to bubble to the dismiss listener.
func (m *Menu) handleItemClick(ev *dom.Event) error {
	node, ok := m.container.NodeFor(ev.Target)
	if !ok {
		return nil
	}
	ev.StopPropagation()
	if m.disposed || !m.IsOpen() {
		return nil
	}
	token := node.Token()
	if node.Invalid() {
		events.Menu.Rejected(m.id, token, node.Message())
		return nil
	}
	r := m.registry
	target := m.target
	if err := r.close(m, ev, ReasonSelect); err != nil {
		return err
	}
	events.Menu.Selected(m.id, token, target.ID())
	r.observer.ItemSelected(m.id, token)
	if token == "" || target == nil {
		return nil
	}
	return r.doc.Trigger(target, token)
}
