package menu

import (
	"testing"

	"github.com/atomicstack/minimenu/internal/dom"
)

type fakeSurface struct {
	doc   *dom.Document
	built []*fakeContainer
}

func (s *fakeSurface) Build(id string, items []Item) (Container, error) {
	el := s.doc.NewElement("menu", id)
	c := &fakeContainer{el: el}
	for i, item := range items {
		child := s.doc.NewElement("item", "")
		child.SetAttr("token", item.Token)
		el.Append(child)
		c.nodes = append(c.nodes, &fakeNode{el: child, item: item, row: i})
	}
	el.Hide()
	s.doc.Body().Append(el)
	s.built = append(s.built, c)
	return c, nil
}

type fakeContainer struct {
	el      *dom.Element
	nodes   []*fakeNode
	shows   int
	removed bool
	x, y    int
}

func (c *fakeContainer) Element() *dom.Element { return c.el }

func (c *fakeContainer) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n
	}
	return out
}

func (c *fakeContainer) NodeFor(el *dom.Element) (Node, bool) {
	for _, n := range c.nodes {
		if n.el.Contains(el) {
			return n, true
		}
	}
	return nil, false
}

func (c *fakeContainer) Show(x, y int) {
	c.shows++
	c.x, c.y = x, y
	c.el.SetBounds(dom.Rect{X: x, Y: y, W: 10, H: len(c.nodes) + 2})
	for _, n := range c.nodes {
		n.el.SetBounds(dom.Rect{X: x + 1, Y: y + 1 + n.row, W: 8, H: 1})
	}
	c.el.Show()
}

func (c *fakeContainer) Hide()         { c.el.Hide() }
func (c *fakeContainer) Visible() bool { return c.el.Visible() && !c.removed }
func (c *fakeContainer) Remove() {
	c.removed = true
	c.el.Remove()
}

type fakeNode struct {
	el      *dom.Element
	item    Item
	row     int
	invalid bool
	message string
}

func (n *fakeNode) Element() *dom.Element { return n.el }
func (n *fakeNode) Item() Item            { return n.item }
func (n *fakeNode) Token() string         { return n.item.Token }
func (n *fakeNode) Invalid() bool         { return n.invalid }
func (n *fakeNode) Message() string       { return n.message }

func (n *fakeNode) MarkInvalid(message string) {
	n.invalid = true
	n.message = message
}

func (n *fakeNode) ClearInvalid() {
	n.invalid = false
	n.message = ""
}

type fixture struct {
	doc     *dom.Document
	surface *fakeSurface
	reg     *Registry
	files   *dom.Element
	tasks   *dom.Element
	rows    map[string]*dom.Element
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := dom.NewDocument(80, 24)
	surface := &fakeSurface{doc: doc}
	reg, err := NewRegistry(doc, surface, opts...)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	f := &fixture{doc: doc, surface: surface, reg: reg, rows: map[string]*dom.Element{}}
	f.files = f.panel("files", dom.Rect{X: 0, Y: 0, W: 40, H: 24}, "readme", "notes")
	f.tasks = f.panel("tasks", dom.Rect{X: 40, Y: 0, W: 40, H: 24}, "build", "deploy")
	return f
}

func (f *fixture) panel(id string, bounds dom.Rect, rows ...string) *dom.Element {
	p := f.doc.NewElement("panel", id)
	p.SetBounds(bounds)
	f.doc.Body().Append(p)
	for i, rowID := range rows {
		row := f.doc.NewElement("row", rowID)
		row.AddClass("entry")
		row.SetBounds(dom.Rect{X: bounds.X, Y: bounds.Y + 2 + i, W: bounds.W, H: 1})
		p.Append(row)
		f.rows[rowID] = row
	}
	return p
}

func (f *fixture) create(t *testing.T, context *dom.Element, items []Item) *Menu {
	t.Helper()
	m, err := f.reg.Create(context, ".entry", dom.EventContextMenu, Config{Items: items})
	if err != nil {
		t.Fatalf("create menu: %v", err)
	}
	return m
}

func (f *fixture) rightClick(t *testing.T, rowID string) error {
	t.Helper()
	row := f.rows[rowID]
	b := row.Bounds()
	return f.doc.Dispatch(dom.NewPointerEvent(dom.EventContextMenu, row, b.X+3, b.Y, dom.ButtonSecondary))
}

func (f *fixture) clickItem(t *testing.T, m *Menu, token string) error {
	t.Helper()
	nodes, err := m.Query(token)
	if err != nil || len(nodes) != 1 {
		t.Fatalf("query %q: %v (%d nodes)", token, err, len(nodes))
	}
	el := nodes[0].Element()
	b := el.Bounds()
	return f.doc.Dispatch(dom.NewPointerEvent(dom.EventClick, el, b.X, b.Y, dom.ButtonPrimary))
}

// assertSingleActive checks at most one container is visible and it belongs
// to the active menu.
func (f *fixture) assertSingleActive(t *testing.T) {
	t.Helper()
	visible := 0
	var visibleEl *dom.Element
	for _, c := range f.surface.built {
		if c.Visible() {
			visible++
			visibleEl = c.el
		}
	}
	if visible > 1 {
		t.Fatalf("expected at most one visible container, got %d", visible)
	}
	active := f.reg.Active()
	switch {
	case active == nil && visible != 0:
		t.Fatalf("container %s visible while no menu is active", visibleEl.ID())
	case active != nil && (visible != 1 || visibleEl != active.Container().Element()):
		t.Fatalf("active menu %s is not the visible container", active.ID())
	}
}
