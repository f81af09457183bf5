package dom

import "sort"

// Rect is a cell-addressed rectangle on the terminal surface.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Element is a node in the document tree. Elements are positioned by their
// owner (the scene or the rendering layer); the document only reads bounds
// for hit testing.
type Element struct {
	id       string
	kind     string
	classes  map[string]struct{}
	attrs    map[string]string
	parent   *Element
	children []*Element
	bounds   Rect
	hidden   bool
	doc      *Document
	bindings []*Binding
}

// ID returns the element identifier, which may be empty.
func (e *Element) ID() string {
	if e == nil {
		return ""
	}
	return e.id
}

// Kind returns the element kind used by type selectors.
func (e *Element) Kind() string {
	if e == nil {
		return ""
	}
	return e.kind
}

// Parent returns the parent element or nil for detached elements and the body.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the element's children in document order.
func (e *Element) Children() []*Element {
	dup := make([]*Element, len(e.children))
	copy(dup, e.children)
	return dup
}

// Append attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) Append(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.doc != nil {
		e.doc.adopt(child)
	}
}

// Remove detaches the element (and its subtree) from its parent and drops
// every binding rooted inside the subtree.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
		e.parent = nil
	}
	if e.doc != nil {
		e.doc.forget(e)
	}
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

// AddClass adds one or more classes.
func (e *Element) AddClass(names ...string) {
	if e.classes == nil {
		e.classes = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		if name != "" {
			e.classes[name] = struct{}{}
		}
	}
}

// RemoveClass removes the given classes if present.
func (e *Element) RemoveClass(names ...string) {
	for _, name := range names {
		delete(e.classes, name)
	}
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// Classes returns the element's classes sorted by name.
func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for name := range e.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr stores an attribute value.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Bounds returns the element's rectangle in document coordinates.
func (e *Element) Bounds() Rect {
	return e.bounds
}

// SetBounds moves and resizes the element.
func (e *Element) SetBounds(r Rect) {
	e.bounds = r
}

// Show clears the hidden flag.
func (e *Element) Show() {
	e.hidden = false
}

// Hide sets the hidden flag. Hidden elements and their descendants are
// skipped by hit testing.
func (e *Element) Hide() {
	e.hidden = true
}

// Visible reports whether the element and all of its ancestors are shown.
func (e *Element) Visible() bool {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.hidden {
			return false
		}
	}
	return true
}

// Attached reports whether the element is reachable from the document body.
func (e *Element) Attached() bool {
	if e.doc == nil {
		return false
	}
	return e.doc.body.Contains(e)
}
