package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/logging/events"
)

const (
	defaultOffset        = 1
	defaultDismissEvents = "click contextmenu blur"
)

// Registry tracks the menus of one interface session and the single menu
// that is currently open. It is not safe for concurrent use: every call,
// including those made from hooks, must come from the goroutine that owns
// the document (the Bubble Tea update loop).
type Registry struct {
	doc       *dom.Document
	surface   Surface
	menus     map[string]*Menu
	order     []string
	active    string
	seq       uint64
	offset    int
	dismissOn string
	observer  Observer
	dismiss   *dom.Binding
	closed    bool
}

// Option customises a Registry.
type Option func(*Registry)

// WithOffset sets how many cells the container is shifted up and left of the
// pointer so the pointer lands inside the first row.
func WithOffset(cells int) Option {
	return func(r *Registry) {
		if cells >= 0 {
			r.offset = cells
		}
	}
}

// WithDismissEvents overrides the window-level events that close the active
// menu.
func WithDismissEvents(list string) Option {
	return func(r *Registry) {
		r.dismissOn = list
	}
}

// WithObserver registers an observer for transitions.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRegistry creates the registry for doc and installs the dismiss listener.
func NewRegistry(doc *dom.Document, surface Surface, opts ...Option) (*Registry, error) {
	if doc == nil || surface == nil {
		return nil, fmt.Errorf("%w: registry needs a document and a surface", ErrConfiguration)
	}
	r := &Registry{
		doc:       doc,
		surface:   surface,
		menus:     make(map[string]*Menu),
		offset:    defaultOffset,
		dismissOn: defaultDismissEvents,
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	b, err := doc.OnWindow(r.dismissOn, r.Dismiss)
	if err != nil {
		return nil, fmt.Errorf("%w: dismiss events: %v", ErrConfiguration, err)
	}
	r.dismiss = b
	return r, nil
}

// Document returns the document the registry is bound to.
func (r *Registry) Document() *dom.Document {
	return r.doc
}

// Create builds a menu that opens when one of the whitespace-separated events
// fires on an element matching selector inside context. An empty selector
// binds the context element itself.
func (r *Registry) Create(context *dom.Element, selector, eventList string, cfg Config) (*Menu, error) {
	if r.closed {
		return nil, fmt.Errorf("create menu: %w", ErrDisposed)
	}
	if context == nil {
		return nil, fmt.Errorf("%w: nil context element", ErrConfiguration)
	}
	if strings.TrimSpace(eventList) == "" {
		return nil, fmt.Errorf("%w: no trigger events", ErrConfiguration)
	}
	if _, err := dom.ParseSelector(selector); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := validateItems(cfg.Items); err != nil {
		return nil, err
	}
	h := newHooks()
	if cfg.OnOpen != nil {
		h.onOpen = cfg.OnOpen
	}
	if cfg.OnClose != nil {
		h.onClose = cfg.OnClose
	}

	r.seq++
	id := fmt.Sprintf("%s%d", IDPrefix, r.seq)
	container, err := r.surface.Build(id, CloneItems(cfg.Items))
	if err != nil {
		return nil, fmt.Errorf("build menu %s: %w", id, err)
	}
	container.Hide()
	m := &Menu{
		id:        id,
		registry:  r,
		container: container,
		nodes:     container.Nodes(),
		hooks:     h,
		context:   context,
		selector:  strings.TrimSpace(selector),
		events:    eventList,
	}
	m.trigger, err = r.doc.On(context, eventList, selector, m.handleTrigger)
	if err != nil {
		container.Remove()
		return nil, fmt.Errorf("%w: trigger binding: %v", ErrConfiguration, err)
	}
	m.itemClick, err = r.doc.On(container.Element(), dom.EventClick, "", m.handleItemClick)
	if err != nil {
		r.doc.Off(m.trigger)
		container.Remove()
		return nil, fmt.Errorf("%w: item binding: %v", ErrConfiguration, err)
	}
	r.menus[id] = m
	r.order = append(r.order, id)
	events.Menu.Created(id, m.selector, eventList, len(m.nodes))
	r.observer.MenuCreated(id)
	return m, nil
}

// Active returns the open menu, or nil when every menu is closed.
func (r *Registry) Active() *Menu {
	if r.active == "" {
		return nil
	}
	return r.menus[r.active]
}

// Lookup returns a registered menu by id.
func (r *Registry) Lookup(id string) (*Menu, bool) {
	m, ok := r.menus[id]
	return m, ok
}

// Menus returns the registered menus in creation order.
func (r *Registry) Menus() []*Menu {
	out := make([]*Menu, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.menus[id])
	}
	return out
}

// Len returns the number of registered menus.
func (r *Registry) Len() int {
	return len(r.menus)
}

// Dismiss closes the active menu, if any, running its close hook.
func (r *Registry) Dismiss(ev *dom.Event) error {
	return r.closeActive(ev, ReasonDismiss)
}

// Close unloads every menu and removes the dismiss listener.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	for _, m := range r.Menus() {
		if err := m.Unload(); err != nil {
			return err
		}
	}
	r.doc.Off(r.dismiss)
	r.closed = true
	return nil
}

// owns reports whether el lies inside one of the registered containers.
func (r *Registry) owns(el *dom.Element) bool {
	for _, m := range r.menus {
		if m.container.Element().Contains(el) {
			return true
		}
	}
	return false
}

// open moves the registry to Open(m). Whatever menu is active is closed
// first and completely; only then does m's open hook run. m becomes visible
// and active only after its hook succeeded, so a failing or panicking hook
// leaves every menu closed and untargeted.
func (r *Registry) open(m *Menu, ev *dom.Event) error {
	if err := r.closeActive(ev, ReasonSwitch); err != nil {
		return err
	}
	target := ev.CurrentTarget
	m.target = target
	returned := false
	defer func() {
		if !returned {
			m.target = nil
		}
	}()
	err := m.hooks.onOpen(HookContext{
		Phase:   PhasePre,
		Event:   ev,
		Menu:    m,
		Target:  target,
		Subject: target,
	})
	returned = true
	if err != nil {
		m.target = nil
		events.Menu.HookFailed(m.id, PhasePre.String(), err)
		return fmt.Errorf("menu %s: open hook: %w", m.id, err)
	}
	if m.disposed {
		m.target = nil
		return nil
	}
	m.container.Show(ev.X-r.offset, ev.Y-r.offset)
	r.active = m.id
	events.Menu.Opened(m.id, target.ID(), ev.X, ev.Y)
	r.observer.MenuOpened(m.id)
	return nil
}

func (r *Registry) closeActive(ev *dom.Event, reason CloseReason) error {
	if r.active == "" {
		return nil
	}
	m, ok := r.menus[r.active]
	if !ok {
		r.active = ""
		return nil
	}
	return r.close(m, ev, reason)
}

// close moves the registry from Open(m) to Closed. The container is hidden
// before the hook runs and the bookkeeping is cleared even when the hook
// fails or panics, so no container stays visible without being active.
func (r *Registry) close(m *Menu, ev *dom.Event, reason CloseReason) error {
	if m.closing {
		return nil
	}
	m.closing = true
	defer func() { m.closing = false }()

	m.container.Hide()
	target := m.target
	defer func() {
		m.resetAll()
		m.target = nil
		if r.active == m.id {
			r.active = ""
		}
		events.Menu.Closed(m.id, string(reason))
		r.observer.MenuClosed(m.id, reason)
	}()
	err := m.hooks.onClose(HookContext{
		Phase:   PhasePost,
		Event:   ev,
		Menu:    m,
		Target:  target,
		Subject: m.container.Element(),
	})
	if err != nil {
		events.Menu.HookFailed(m.id, PhasePost.String(), err)
		return fmt.Errorf("menu %s: close hook: %w", m.id, err)
	}
	return nil
}

func (r *Registry) remove(m *Menu) {
	delete(r.menus, m.id)
	for i, id := range r.order {
		if id == m.id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
