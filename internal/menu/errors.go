package menu

import "errors"

// IDPrefix starts every menu id. Container elements carry the menu id, so
// no other element id may use it.
const IDPrefix = "mm-anchor-"

var (
	// ErrConfiguration reports malformed construction input.
	ErrConfiguration = errors.New("menu: invalid configuration")
	// ErrInvalidHook reports a hook assignment that cannot be invoked.
	ErrInvalidHook = errors.New("menu: invalid hook")
	// ErrDisposed reports an operation on a menu that has been unloaded.
	ErrDisposed = errors.New("menu: menu has been unloaded")
)
