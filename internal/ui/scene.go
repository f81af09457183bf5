package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/logging/events"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/atomicstack/minimenu/internal/ui/command"
)

const (
	panelKind    = "panel"
	rowKind      = "row"
	rowClass     = "row"
	focusedClass = "focused"
	headerRows   = 1
	panelTitle   = 1
)

// scene is the element tree built from a menu file: one panel element per
// [[panel]] holding one row element per [[panel.row]], plus the menus bound
// inside them.
type scene struct {
	file   config.MenuFile
	panels []*panelView
	rows   []*rowView
	menus  []*menu.Menu
	tokens *dom.Binding
}

type panelView struct {
	cfg config.Panel
	el  *dom.Element
}

type rowView struct {
	cfg   config.Row
	el    *dom.Element
	panel *panelView
}

func buildScene(m *Model, mf config.MenuFile) (*scene, error) {
	sc := &scene{file: mf}
	body := m.doc.Body()
	byID := make(map[string]*panelView, len(mf.Panels))
	for _, p := range mf.Panels {
		pv := &panelView{cfg: p, el: m.doc.NewElement(panelKind, p.ID)}
		body.Append(pv.el)
		sc.panels = append(sc.panels, pv)
		byID[p.ID] = pv
		for _, r := range p.Rows {
			el := m.doc.NewElement(rowKind, r.ID)
			el.AddClass(rowClass)
			el.AddClass(r.Tags...)
			pv.el.Append(el)
			sc.rows = append(sc.rows, &rowView{cfg: r, el: el, panel: pv})
		}
	}
	for i, def := range mf.Menus {
		ctx := body
		if def.Panel != "" {
			pv, ok := byID[def.Panel]
			if !ok {
				sc.teardown(m)
				return nil, fmt.Errorf("menu %d: unknown panel %q", i, def.Panel)
			}
			ctx = pv.el
		}
		mn, err := m.registry.Create(ctx, def.Selector, def.Trigger, menuConfig(def))
		if err != nil {
			sc.teardown(m)
			return nil, fmt.Errorf("menu %d: %w", i, err)
		}
		sc.menus = append(sc.menus, mn)
	}
	tokens, err := tokenEvents(mf)
	if err != nil {
		sc.teardown(m)
		return nil, err
	}
	if tokens != "" {
		b, err := m.doc.On(body, tokens, "", m.handleToken)
		if err != nil {
			sc.teardown(m)
			return nil, fmt.Errorf("token listener: %w", err)
		}
		sc.tokens = b
	}
	return sc, nil
}

// menuConfig converts a menu definition. Items with a requirement get an open
// hook that disables them when the target row lacks the required tag.
func menuConfig(def config.Menu) menu.Config {
	items := make([]menu.Item, len(def.Items))
	var gated []config.MenuItem
	for i, it := range def.Items {
		items[i] = menu.Item{Label: it.Label, Token: it.Token, Icon: it.Icon, Hint: it.Hint}
		if it.Requires != "" && it.Token != "" {
			gated = append(gated, it)
		}
	}
	cfg := menu.Config{Items: items}
	if len(gated) > 0 {
		cfg.OnOpen = requireTags(gated)
	}
	return cfg
}

func requireTags(gated []config.MenuItem) menu.Hook {
	return func(hc menu.HookContext) error {
		for _, it := range gated {
			if hc.Target != nil && hc.Target.HasClass(it.Requires) {
				continue
			}
			reason := it.Reason
			if reason == "" {
				reason = "requires " + it.Requires
			}
			if _, err := hc.Menu.Invalidate(it.Token, reason); err != nil {
				return err
			}
		}
		return nil
	}
}

// tokenEvents lists the distinct item tokens the body listens for. A token
// that is also a standard event name would fire on every pointer press.
func tokenEvents(mf config.MenuFile) (string, error) {
	seen := make(map[string]bool)
	var tokens []string
	for i, def := range mf.Menus {
		for _, it := range def.Items {
			if dom.Reserved(it.Token) {
				return "", fmt.Errorf("menu %d: %w: token %q is a reserved event name", i, menu.ErrConfiguration, it.Token)
			}
			if it.Token == "" || seen[it.Token] {
				continue
			}
			seen[it.Token] = true
			tokens = append(tokens, it.Token)
		}
	}
	return strings.Join(tokens, " "), nil
}

// teardown unloads every menu and removes the panels from the document.
func (sc *scene) teardown(m *Model) {
	for _, mn := range sc.menus {
		if err := mn.Unload(); err != nil {
			m.setError(err)
		}
	}
	sc.menus = nil
	if sc.tokens != nil {
		m.doc.Off(sc.tokens)
		sc.tokens = nil
	}
	for _, pv := range sc.panels {
		pv.el.Remove()
	}
	sc.panels = nil
	sc.rows = nil
}

// layout splits the width between panels and positions every row.
func (m *Model) layout() {
	m.doc.Resize(m.width, m.height)
	if m.scene == nil || len(m.scene.panels) == 0 {
		return
	}
	n := len(m.scene.panels)
	colW := m.width / n
	panelH := m.height - headerRows - m.bottomRows()
	if panelH < 1 {
		panelH = 1
	}
	for i, pv := range m.scene.panels {
		x := i * colW
		w := colW
		if i == n-1 {
			w = m.width - x
		}
		pv.el.SetBounds(dom.Rect{X: x, Y: headerRows, W: w, H: panelH})
		for j, child := range pv.el.Children() {
			y := headerRows + panelTitle + j
			if y >= headerRows+panelH {
				child.Hide()
				continue
			}
			child.Show()
			child.SetBounds(dom.Rect{X: x, Y: y, W: w - 1, H: 1})
		}
	}
}

func (m *Model) bottomRows() int {
	rows := 1
	if m.showFooter {
		rows++
	}
	return rows
}

func (m *Model) focusedRow() *rowView {
	if m.scene == nil || m.focus < 0 || m.focus >= len(m.scene.rows) {
		return nil
	}
	return m.scene.rows[m.focus]
}

func (m *Model) setFocus(index int) {
	if m.scene == nil || len(m.scene.rows) == 0 {
		m.focus = -1
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(m.scene.rows) {
		index = len(m.scene.rows) - 1
	}
	if cur := m.focusedRow(); cur != nil {
		cur.el.RemoveClass(focusedClass)
	}
	m.focus = index
	m.scene.rows[index].el.AddClass(focusedClass)
}

func (m *Model) focusElement(el *dom.Element) {
	if m.scene == nil {
		return
	}
	for i, rv := range m.scene.rows {
		if rv.el.Contains(el) {
			m.setFocus(i)
			return
		}
	}
}

// handleToken receives token events raised on rows after a selection and
// queues the configured action.
func (m *Model) handleToken(ev *dom.Event) error {
	token, target := ev.Name, ev.Target.ID()
	events.Action.Raised(token, target)
	m.setError(nil)
	action, ok := m.scene.file.Action(token)
	if !ok {
		m.setInfo(fmt.Sprintf("%s → %s", token, describe(ev.Target)))
		return nil
	}
	m.setInfo(fmt.Sprintf("%s → %s (running)", token, describe(ev.Target)))
	cmd := m.bus.Execute(m.ctx, command.Request{Token: token, Target: target, Command: action.Command})
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	return nil
}

func describe(el *dom.Element) string {
	if id := el.ID(); id != "" {
		return id
	}
	return el.Kind()
}
