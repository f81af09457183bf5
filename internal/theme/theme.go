package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	MenuBorder   *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	InvalidItem  *lipgloss.Style
	ItemIcon     *lipgloss.Style
	ItemHint     *lipgloss.Style
	PanelBorder  *lipgloss.Style
	PanelTitle   *lipgloss.Style
	Row          *lipgloss.Style
	FocusedRow   *lipgloss.Style
	RowTag       *lipgloss.Style
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Info         *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = Styles{
	MenuBorder: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	InvalidItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Background(lipgloss.Color("236")).Strikethrough(true),
	),
	ItemIcon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236")),
	),
	ItemHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236")).Italic(true),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Row: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FocusedRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	RowTag: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Plain returns a style set without colours or borders, used by tests that
// compare rendered text.
func Plain() *Styles {
	plain := lipgloss.NewStyle()
	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	return &Styles{
		MenuBorder:   &border,
		Item:         ptr(plain),
		SelectedItem: ptr(plain),
		InvalidItem:  ptr(plain),
		ItemIcon:     ptr(plain),
		ItemHint:     ptr(plain),
		PanelBorder:  ptr(plain),
		PanelTitle:   ptr(plain),
		Row:          ptr(plain),
		FocusedRow:   ptr(plain),
		RowTag:       ptr(plain),
		Header:       ptr(plain),
		Footer:       ptr(plain),
		Info:         ptr(plain),
		Error:        ptr(plain),
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
