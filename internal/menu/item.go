package menu

import (
	"fmt"
	"strings"
	"unicode"
)

// Item describes one selectable row of a menu.
type Item struct {
	// Label is the display text. It must not be blank.
	Label string
	// Token names the item's action. It tags the realised node for Query and
	// is raised as a custom event on the menu target when the item is chosen.
	Token string
	// Icon and Hint are presentation details owned by the rendering layer.
	Icon string
	Hint string
}

// Validate checks the item carries a renderable label and a well-formed token.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Label) == "" {
		return fmt.Errorf("%w: item label must not be blank", ErrConfiguration)
	}
	if strings.IndexFunc(i.Token, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: item token %q contains whitespace", ErrConfiguration, i.Token)
	}
	return nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: menu requires at least one item", ErrConfiguration)
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
