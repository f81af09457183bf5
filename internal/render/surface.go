// Package render realises menu containers on the terminal surface. It builds
// the element subtree of each menu inside the document, lays out rows when a
// menu is shown and draws visible menus over an already rendered screen.
package render

import (
	"fmt"
	"strings"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/atomicstack/minimenu/internal/theme"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultMaxLabelWidth = 32
	iconColumnWidth      = 2
	hintGap              = 2
	ellipsis             = "…"

	anchorClass  = "mm-anchor"
	itemClass    = "mm-item"
	invalidClass = "mm-invalid"
	iconsClass   = "icons"
	tokenPrefix  = "mm-"
	titleAttr    = "title"
	tokenAttr    = "token"
)

// Option customises a Surface.
type Option func(*Surface)

// WithStyles overrides the style set.
func WithStyles(styles *theme.Styles) Option {
	return func(s *Surface) {
		if styles != nil {
			s.styles = styles
		}
	}
}

// WithMaxLabelWidth caps label width in cells; longer labels are truncated.
func WithMaxLabelWidth(cells int) Option {
	return func(s *Surface) {
		if cells > 0 {
			s.maxLabel = cells
		}
	}
}

// Surface builds containers in a document. It satisfies menu.Surface.
type Surface struct {
	doc        *dom.Document
	styles     *theme.Styles
	maxLabel   int
	containers []*Container
}

var _ menu.Surface = (*Surface)(nil)

// NewSurface creates a surface drawing into doc.
func NewSurface(doc *dom.Document, opts ...Option) *Surface {
	s := &Surface{
		doc:      doc,
		styles:   theme.Default(),
		maxLabel: defaultMaxLabelWidth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build creates the container for items and attaches it, hidden, to the body.
func (s *Surface) Build(id string, items []menu.Item) (menu.Container, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("build %s: no items", id)
	}
	el := s.doc.NewElement("menu", id)
	el.AddClass(anchorClass)
	el.Hide()
	c := &Container{surface: s, el: el, highlight: -1}

	labelW, hintW := 0, 0
	for _, item := range items {
		if item.Icon != "" {
			c.icons = true
		}
		label := fitLabel(item.Label, s.maxLabel)
		if w := runewidth.StringWidth(label); w > labelW {
			labelW = w
		}
		if w := runewidth.StringWidth(item.Hint); w > hintW {
			hintW = w
		}
		child := s.doc.NewElement("item", "")
		child.AddClass(itemClass)
		if item.Token != "" {
			child.AddClass(tokenPrefix + item.Token)
			child.SetAttr(tokenAttr, item.Token)
		}
		el.Append(child)
		c.nodes = append(c.nodes, &Node{el: child, item: item, label: label})
	}
	if c.icons {
		el.AddClass(iconsClass)
	}
	c.labelW = labelW
	c.hintW = hintW
	c.measure()
	s.doc.Body().Append(el)
	s.containers = append(s.containers, c)
	return c, nil
}

func fitLabel(label string, max int) string {
	label = strings.TrimSpace(label)
	if max <= 0 || runewidth.StringWidth(label) <= max {
		return label
	}
	return truncate.StringWithTail(label, uint(max), ellipsis)
}

// Visible returns the containers currently shown, bottom-most first.
func (s *Surface) Visible() []*Container {
	var out []*Container
	for _, c := range s.containers {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}

// ContainerFor returns the container whose element is el.
func (s *Surface) ContainerFor(el *dom.Element) (*Container, bool) {
	for _, c := range s.containers {
		if c.el == el {
			return c, true
		}
	}
	return nil, false
}

func (s *Surface) forget(c *Container) {
	for i, cur := range s.containers {
		if cur == c {
			s.containers = append(s.containers[:i], s.containers[i+1:]...)
			return
		}
	}
}

// Overlay draws every visible container over base, a newline-separated
// rendered screen. Lines are cut with ANSI-aware width handling so styled
// base content left and right of a menu survives.
func (s *Surface) Overlay(base string) string {
	visible := s.Visible()
	if len(visible) == 0 {
		return base
	}
	lines := strings.Split(base, "\n")
	for _, c := range visible {
		b := c.el.Bounds()
		for len(lines) < b.Y+b.H {
			lines = append(lines, "")
		}
		for i, boxLine := range strings.Split(c.Render(), "\n") {
			row := b.Y + i
			if row < 0 {
				continue
			}
			lines[row] = splice(lines[row], boxLine, b.X, b.W)
		}
	}
	return strings.Join(lines, "\n")
}

func splice(line, insert string, x, w int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ""
	if ansi.StringWidth(line) > x+w {
		right = ansi.TruncateLeft(line, x+w, "")
	}
	return left + insert + right
}
