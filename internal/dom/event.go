package dom

// Button identifies the pointer button carried by a pointer event.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Standard event names produced by the terminal front end.
const (
	EventClick       = "click"
	EventContextMenu = "contextmenu"
	EventBlur        = "blur"
	EventKeyDown     = "keydown"
)

// Reserved reports whether name is one of the standard event names above.
func Reserved(name string) bool {
	switch name {
	case EventClick, EventContextMenu, EventBlur, EventKeyDown:
		return true
	}
	return false
}

// Event is dispatched through the document. Target is the element the event
// originated on; CurrentTarget is the element whose binding is running (for
// delegated bindings, the matched descendant).
type Event struct {
	Name          string
	Target        *Element
	CurrentTarget *Element
	X, Y          int
	Button        Button

	stopped   bool
	prevented bool
}

// NewPointerEvent builds a pointer event at the given cell.
func NewPointerEvent(name string, target *Element, x, y int, button Button) *Event {
	return &Event{Name: name, Target: target, X: x, Y: y, Button: button}
}

// StopPropagation prevents the event from reaching ancestors of the element
// whose bindings are currently running, and window listeners.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (e *Event) IsPropagationStopped() bool {
	return e.stopped
}

// PreventDefault marks the event's default action as suppressed.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// IsDefaultPrevented reports whether PreventDefault was called.
func (e *Event) IsDefaultPrevented() bool {
	return e.prevented
}
