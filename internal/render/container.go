package render

import (
	"strings"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Container is a rendered menu box. Rows are laid out one cell inside the
// border, one row per item.
type Container struct {
	surface   *Surface
	el        *dom.Element
	nodes     []*Node
	icons     bool
	labelW    int
	hintW     int
	contentW  int
	highlight int
	removed   bool
}

var _ menu.Container = (*Container)(nil)

func (c *Container) Element() *dom.Element { return c.el }

// ID returns the container id, which equals the owning menu id.
func (c *Container) ID() string { return c.el.ID() }

func (c *Container) Nodes() []menu.Node {
	out := make([]menu.Node, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n
	}
	return out
}

// NodeFor resolves the node whose element is el or an ancestor of el.
func (c *Container) NodeFor(el *dom.Element) (menu.Node, bool) {
	if n := c.nodeFor(el); n != nil {
		return n, true
	}
	return nil, false
}

func (c *Container) nodeFor(el *dom.Element) *Node {
	for _, n := range c.nodes {
		if n.el.Contains(el) {
			return n
		}
	}
	return nil
}

// measure sizes the content area from the labels, the hints and the messages
// of rows currently marked invalid.
func (c *Container) measure() {
	hintW := c.hintW
	for _, n := range c.nodes {
		if !n.invalid {
			continue
		}
		if w := runewidth.StringWidth(n.message); w > hintW {
			hintW = w
		}
	}
	c.contentW = c.labelW
	if c.icons {
		c.contentW += iconColumnWidth
	}
	if hintW > 0 {
		c.contentW += hintGap + hintW
	}
}

// Size returns the outer width and height of the box, border included.
func (c *Container) Size() (int, int) {
	return c.contentW + 4, len(c.nodes) + 2
}

// Show places the box with its top-left corner at (x, y), shifted left and up
// as needed to keep it on screen, and raises it above every other element.
// The box is re-measured so reasons of rows marked invalid before showing
// fit beside their labels.
func (c *Container) Show(x, y int) {
	c.measure()
	w, h := c.Size()
	docW, docH := c.surface.doc.Size()
	x = clamp(x, docW-w)
	y = clamp(y, docH-h)
	c.surface.doc.Body().Append(c.el)
	c.el.SetBounds(dom.Rect{X: x, Y: y, W: w, H: h})
	for i, n := range c.nodes {
		n.el.SetBounds(dom.Rect{X: x + 1, Y: y + 1 + i, W: w - 2, H: 1})
	}
	c.highlight = -1
	c.el.Show()
}

func clamp(v, max int) int {
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (c *Container) Hide() {
	c.highlight = -1
	c.el.Hide()
}

func (c *Container) Visible() bool {
	return !c.removed && c.el.Attached() && c.el.Visible()
}

func (c *Container) Remove() {
	if c.removed {
		return
	}
	c.removed = true
	c.el.Remove()
	c.surface.forget(c)
}

// Highlighted returns the highlighted row index, or -1.
func (c *Container) Highlighted() int { return c.highlight }

// HighlightedNode returns the node under the keyboard highlight.
func (c *Container) HighlightedNode() (*Node, bool) {
	if c.highlight < 0 || c.highlight >= len(c.nodes) {
		return nil, false
	}
	return c.nodes[c.highlight], true
}

// SetHighlight moves the highlight to index; out of range values clear it.
func (c *Container) SetHighlight(index int) {
	if index < 0 || index >= len(c.nodes) {
		index = -1
	}
	c.highlight = index
}

// MoveHighlight steps the highlight by delta, wrapping around and skipping
// invalid rows. It reports false when no row is selectable.
func (c *Container) MoveHighlight(delta int) bool {
	n := len(c.nodes)
	if n == 0 || delta == 0 {
		return false
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	cur := c.highlight
	if cur < 0 && step < 0 {
		cur = 0
	}
	for i := 0; i < n; i++ {
		cur = ((cur+step)%n + n) % n
		if !c.nodes[cur].invalid {
			c.highlight = cur
			return true
		}
	}
	return false
}

// Render draws the box.
func (c *Container) Render() string {
	styles := c.surface.styles
	lines := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		base := styles.Item
		switch {
		case n.invalid:
			base = styles.InvalidItem
		case i == c.highlight:
			base = styles.SelectedItem
		}
		var b strings.Builder
		b.WriteString(base.Render(" "))
		if c.icons {
			icon := runewidth.FillRight(runewidth.Truncate(n.item.Icon, 1, ""), iconColumnWidth)
			b.WriteString(styles.ItemIcon.Render(icon))
		}
		b.WriteString(base.Render(runewidth.FillRight(n.label, c.labelW)))
		rest := c.contentW - lipgloss.Width(b.String()) + 1
		hint, hintStyle := n.item.Hint, styles.ItemHint
		if n.invalid && n.message != "" {
			hint, hintStyle = n.message, styles.InvalidItem
		}
		if hint != "" && rest > 1 {
			hint = runewidth.Truncate(hint, rest-1, ellipsis)
			b.WriteString(hintStyle.Render(runewidth.FillLeft(hint, rest)))
		} else if rest > 0 {
			b.WriteString(base.Render(strings.Repeat(" ", rest)))
		}
		b.WriteString(base.Render(" "))
		lines[i] = b.String()
	}
	return styles.MenuBorder.Render(strings.Join(lines, "\n"))
}

// Node is one rendered row.
type Node struct {
	el      *dom.Element
	item    menu.Item
	label   string
	invalid bool
	message string
}

var _ menu.Node = (*Node)(nil)

func (n *Node) Element() *dom.Element { return n.el }
func (n *Node) Item() menu.Item       { return n.item }
func (n *Node) Token() string         { return n.item.Token }
func (n *Node) Invalid() bool         { return n.invalid }
func (n *Node) Message() string       { return n.message }

// Label returns the label as displayed, after truncation.
func (n *Node) Label() string { return n.label }

// MarkInvalid flags the row with the invalid class and stores message as its
// title.
func (n *Node) MarkInvalid(message string) {
	n.invalid = true
	n.message = message
	n.el.AddClass(invalidClass)
	n.el.SetAttr(titleAttr, message)
}

func (n *Node) ClearInvalid() {
	n.invalid = false
	n.message = ""
	n.el.RemoveClass(invalidClass)
	n.el.RemoveAttr(titleAttr)
}
