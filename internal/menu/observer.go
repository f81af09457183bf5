package menu

// CloseReason records why a menu left the open state.
type CloseReason string

const (
	// ReasonDismiss is a pointer press elsewhere, focus loss or Esc.
	ReasonDismiss CloseReason = "dismiss"
	// ReasonSelect is a valid item selection.
	ReasonSelect CloseReason = "select"
	// ReasonSwitch is another menu (or the same one) being opened.
	ReasonSwitch CloseReason = "switch"
)

// Observer receives registry transitions, e.g. for metrics.
type Observer interface {
	MenuCreated(id string)
	MenuOpened(id string)
	MenuClosed(id string, reason CloseReason)
	ItemSelected(id, token string)
	MenuUnloaded(id string)
}

type nopObserver struct{}

func (nopObserver) MenuCreated(string)             {}
func (nopObserver) MenuOpened(string)              {}
func (nopObserver) MenuClosed(string, CloseReason) {}
func (nopObserver) ItemSelected(string, string)    {}
func (nopObserver) MenuUnloaded(string)            {}
