package ui

import (
	"strings"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/logging"
	"github.com/atomicstack/minimenu/internal/logging/events"
	"github.com/atomicstack/minimenu/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	open := m.activeContainer()
	events.UI.Key(keyMsg.String(), open != nil)
	if open != nil {
		return m.handleMenuKey(keyMsg, open)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.setFocus(m.focus - 1)
	case key.Matches(keyMsg, m.keys.Down):
		m.setFocus(m.focus + 1)
	case key.Matches(keyMsg, m.keys.Open):
		m.openFocused()
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg, c *render.Container) tea.Cmd {
	m.syncTypeahead()
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		m.dismiss()
	case key.Matches(msg, m.keys.Up):
		m.moveHighlight(c, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveHighlight(c, 1)
	case key.Matches(msg, m.keys.Select):
		m.selectHighlighted(c)
	case key.Matches(msg, m.keys.Backward):
		if runes := []rune(m.typeahead); len(runes) > 0 {
			m.typeahead = string(runes[:len(runes)-1])
			m.jumpTo(c)
		}
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		text := string(msg.Runes)
		if text == "" {
			text = " "
		}
		m.typeahead += text
		m.jumpTo(c)
	}
	return nil
}

// activeContainer returns the container of the open menu.
func (m *Model) activeContainer() *render.Container {
	active := m.registry.Active()
	if active == nil {
		return nil
	}
	c, ok := active.Container().(*render.Container)
	if !ok {
		return nil
	}
	return c
}

// syncTypeahead drops the type-ahead buffer when a different menu opened
// since the last key press.
func (m *Model) syncTypeahead() {
	id := ""
	if active := m.registry.Active(); active != nil {
		id = active.ID()
	}
	if id != m.typeMenu {
		m.typeMenu = id
		m.typeahead = ""
	}
}

func (m *Model) moveHighlight(c *render.Container, delta int) {
	if c.MoveHighlight(delta) {
		events.UI.Highlight(c.ID(), c.Highlighted())
	}
}

// jumpTo highlights the valid row whose label best matches the type-ahead
// buffer.
func (m *Model) jumpTo(c *render.Container) {
	if idx := bestMatch(c, m.typeahead); idx >= 0 {
		c.SetHighlight(idx)
		events.UI.Highlight(c.ID(), idx)
	}
}

func bestMatch(c *render.Container, query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	nodes := c.Nodes()
	labels := make([]string, 0, len(nodes))
	index := make([]int, 0, len(nodes))
	lower := strings.ToLower(query)
	for i, n := range nodes {
		if n.Invalid() {
			continue
		}
		label := n.Item().Label
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
		labels = append(labels, label)
		index = append(index, i)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return index[best.OriginalIndex]
}

// selectHighlighted clicks the highlighted row, so keyboard selection goes
// through the same item binding as the mouse.
func (m *Model) selectHighlighted(c *render.Container) {
	n, ok := c.HighlightedNode()
	if !ok {
		return
	}
	el := n.Element()
	b := el.Bounds()
	m.dispatch(dom.NewPointerEvent(dom.EventClick, el, b.X, b.Y, dom.ButtonPrimary))
}

// openFocused raises a contextmenu event on the focused row as if it had been
// right-clicked at its first cell.
func (m *Model) openFocused() {
	row := m.focusedRow()
	if row == nil || !row.el.Visible() {
		return
	}
	b := row.el.Bounds()
	m.dispatch(dom.NewPointerEvent(dom.EventContextMenu, row.el, b.X+1, b.Y+1, dom.ButtonSecondary))
}

func (m *Model) dismiss() {
	if m.registry.Active() == nil {
		return
	}
	if err := m.registry.Dismiss(&dom.Event{Name: dom.EventKeyDown, Target: m.doc.Body()}); err != nil {
		m.reportError(err)
	}
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || mouse.Action != tea.MouseActionPress {
		return nil
	}
	var (
		name   string
		button dom.Button
	)
	switch mouse.Button {
	case tea.MouseButtonLeft:
		name, button = dom.EventClick, dom.ButtonPrimary
	case tea.MouseButtonRight:
		name, button = dom.EventContextMenu, dom.ButtonSecondary
	default:
		return nil
	}
	target := m.doc.ElementAt(mouse.X, mouse.Y)
	if target == nil {
		target = m.doc.Body()
	}
	events.UI.Pointer(name, describe(target), mouse.X, mouse.Y)
	wasOpen := m.registry.Active() != nil
	m.dispatch(dom.NewPointerEvent(name, target, mouse.X, mouse.Y, button))
	if !wasOpen || name == dom.EventContextMenu {
		m.focusElement(target)
	}
	return nil
}

func (m *Model) handleBlurMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.BlurMsg); !ok {
		return nil
	}
	m.dispatch(&dom.Event{Name: dom.EventBlur, Target: m.doc.Body()})
	return nil
}

// dispatch delivers ev and surfaces handler errors in the status line.
func (m *Model) dispatch(ev *dom.Event) {
	if err := m.doc.Dispatch(ev); err != nil {
		m.reportError(err)
	}
}

func (m *Model) reportError(err error) {
	logging.Error(err)
	events.Action.Error(err)
	m.setError(err)
}
