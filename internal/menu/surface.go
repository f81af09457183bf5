package menu

import "github.com/atomicstack/minimenu/internal/dom"

// Surface is the rendering layer consumed by the registry. Build realises a
// container holding one node per item, attached to the document in a hidden
// state.
type Surface interface {
	Build(id string, items []Item) (Container, error)
}

// Container is the graphical element of one menu. The core only shows,
// hides, positions and removes it.
type Container interface {
	Element() *dom.Element
	Nodes() []Node
	// NodeFor resolves the node owning el (el or one of its ancestors).
	NodeFor(el *dom.Element) (Node, bool)
	// Show positions the container near (x, y) and makes it visible.
	Show(x, y int)
	Hide()
	Visible() bool
	// Remove detaches the container from the document.
	Remove()
}

// Node is one realised item.
type Node interface {
	Element() *dom.Element
	Item() Item
	Token() string
	Invalid() bool
	Message() string
	MarkInvalid(message string)
	ClearInvalid()
}
