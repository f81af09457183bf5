package dom

import (
	"errors"
	"fmt"
	"strings"
)

// Handler reacts to a dispatched event. A non-nil error aborts the dispatch
// and is returned from Document.Dispatch.
type Handler func(*Event) error

// Binding is a registered listener. Bindings rooted at an element run while
// the event bubbles through that element; window bindings run after the
// event has bubbled out of the body.
type Binding struct {
	doc      *Document
	root     *Element
	events   map[string]struct{}
	selector Selector
	handler  Handler
	active   bool
}

// Active reports whether the binding is still registered.
func (b *Binding) Active() bool {
	return b != nil && b.active
}

func (b *Binding) handles(name string) bool {
	_, ok := b.events[name]
	return ok
}

// Document owns the element tree of one interface session.
type Document struct {
	body   *Element
	width  int
	height int
	ids    map[string]*Element
	window []*Binding
}

// NewDocument creates a document whose body spans width x height cells.
func NewDocument(width, height int) *Document {
	d := &Document{ids: make(map[string]*Element)}
	d.body = &Element{kind: "body", doc: d}
	d.Resize(width, height)
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// Resize updates the document dimensions.
func (d *Document) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	d.width = width
	d.height = height
	d.body.bounds = Rect{W: width, H: height}
}

// Size returns the document dimensions in cells.
func (d *Document) Size() (int, int) {
	return d.width, d.height
}

// NewElement creates a detached element owned by this document.
func (d *Document) NewElement(kind, id string) *Element {
	e := &Element{kind: kind, id: id, doc: d}
	if id != "" {
		d.ids[id] = e
	}
	return e
}

// ElementByID returns the attached element with the given id.
func (d *Document) ElementByID(id string) (*Element, bool) {
	e, ok := d.ids[id]
	if !ok || !e.Attached() {
		return nil, false
	}
	return e, true
}

func (d *Document) adopt(e *Element) {
	e.doc = d
	if e.id != "" {
		d.ids[e.id] = e
	}
	for _, c := range e.children {
		d.adopt(c)
	}
}

func (d *Document) forget(e *Element) {
	if e.id != "" && d.ids[e.id] == e {
		delete(d.ids, e.id)
	}
	for _, b := range e.bindings {
		b.active = false
	}
	e.bindings = nil
	for _, c := range e.children {
		d.forget(c)
	}
}

// ElementAt returns the deepest visible element containing (x, y). Later
// siblings are drawn on top, so they are tested first.
func (d *Document) ElementAt(x, y int) *Element {
	return elementAt(d.body, x, y)
}

func elementAt(e *Element, x, y int) *Element {
	if e.hidden || !e.bounds.Contains(x, y) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := elementAt(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	return e
}

// On binds fn to the whitespace-separated events on ctx. With a non-empty
// selector the binding is delegated: it fires for every descendant of ctx on
// the propagation path that matches the selector, with CurrentTarget set to
// that descendant.
func (d *Document) On(ctx *Element, events, selector string, fn Handler) (*Binding, error) {
	if ctx == nil {
		return nil, errors.New("bind: nil context element")
	}
	b, err := d.newBinding(events, selector, fn)
	if err != nil {
		return nil, err
	}
	b.root = ctx
	ctx.bindings = append(ctx.bindings, b)
	return b, nil
}

// OnWindow binds fn at window level, after the body.
func (d *Document) OnWindow(events string, fn Handler) (*Binding, error) {
	b, err := d.newBinding(events, "", fn)
	if err != nil {
		return nil, err
	}
	d.window = append(d.window, b)
	return b, nil
}

func (d *Document) newBinding(events, selector string, fn Handler) (*Binding, error) {
	if fn == nil {
		return nil, errors.New("bind: nil handler")
	}
	names := strings.Fields(events)
	if len(names) == 0 {
		return nil, errors.New("bind: no event names")
	}
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, fmt.Errorf("bind: %w", err)
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return &Binding{doc: d, events: set, selector: sel, handler: fn, active: true}, nil
}

// Off removes a binding. Removing an inactive binding is a no-op.
func (d *Document) Off(b *Binding) {
	if b == nil || !b.active {
		return
	}
	b.active = false
	if b.root == nil {
		d.window = without(d.window, b)
		return
	}
	b.root.bindings = without(b.root.bindings, b)
}

func without(list []*Binding, b *Binding) []*Binding {
	for i, cur := range list {
		if cur == b {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// Dispatch propagates ev from its target up to the body and then to window
// bindings, stopping early when a handler stops propagation. The first
// handler error aborts the dispatch.
func (d *Document) Dispatch(ev *Event) error {
	if ev == nil {
		return nil
	}
	for node := ev.Target; node != nil; node = node.parent {
		if err := d.runElement(node, ev); err != nil {
			return err
		}
		if ev.stopped {
			return nil
		}
	}
	ev.CurrentTarget = nil
	for _, b := range snapshot(d.window) {
		if !b.active || !b.handles(ev.Name) {
			continue
		}
		if err := b.handler(ev); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) runElement(node *Element, ev *Event) error {
	for _, b := range snapshot(node.bindings) {
		if !b.active || !b.handles(ev.Name) {
			continue
		}
		if b.selector.Empty() {
			ev.CurrentTarget = node
			if err := b.handler(ev); err != nil {
				return err
			}
			continue
		}
		for cur := ev.Target; cur != nil && cur != node; cur = cur.parent {
			if !b.selector.Match(cur) {
				continue
			}
			ev.CurrentTarget = cur
			if err := b.handler(ev); err != nil {
				return err
			}
			if ev.stopped || !b.active {
				break
			}
		}
	}
	return nil
}

func snapshot(list []*Binding) []*Binding {
	if len(list) == 0 {
		return nil
	}
	dup := make([]*Binding, len(list))
	copy(dup, list)
	return dup
}

// Trigger raises a synthetic event named name on el, positioned at the
// element's origin.
func (d *Document) Trigger(el *Element, name string) error {
	if el == nil {
		return errors.New("trigger: nil element")
	}
	ev := &Event{Name: name, Target: el, X: el.bounds.X, Y: el.bounds.Y}
	return d.Dispatch(ev)
}
