package ui

import (
	"github.com/atomicstack/minimenu/internal/dom"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// processCmd runs cmd synchronously, feeding its message back into the model.
// Batches are expanded in order; quit messages stop processing.
func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
		return
	}
	mdl, next := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(next)
}

// Press sends a key by its name ("enter", "esc", "up") or as typed runes.
func (h *Harness) Press(name string) {
	h.Send(keyMsg(name))
}

// RightClick presses the secondary button at (x, y).
func (h *Harness) RightClick(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
}

// Click presses the primary button at (x, y).
func (h *Harness) Click(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// RightClickElement right-clicks the first cell of the element with id.
func (h *Harness) RightClickElement(id string) bool {
	el, ok := h.model.doc.ElementByID(id)
	if !ok {
		return false
	}
	b := el.Bounds()
	h.RightClick(b.X+1, b.Y)
	return true
}

// ClickNode clicks the first row of the open menu carrying token.
func (h *Harness) ClickNode(token string) bool {
	el, ok := h.nodeElement(token)
	if !ok {
		return false
	}
	b := el.Bounds()
	h.Click(b.X+1, b.Y)
	return true
}

func (h *Harness) nodeElement(token string) (*dom.Element, bool) {
	active := h.model.registry.Active()
	if active == nil {
		return nil, false
	}
	nodes, err := active.Query(token)
	if err != nil || len(nodes) == 0 {
		return nil, false
	}
	return nodes[0].Element(), true
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}
