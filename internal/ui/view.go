package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	appTitle       = "minimenu"
	focusIndicator = "›"
	ellipsis       = "…"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View implements tea.Model. Panels are drawn first and the open menu, if
// any, is laid over them.
func (m *Model) View() string {
	lines := []string{renderLine(m.headerLine(), m.width)}
	lines = append(lines, strings.Split(m.viewPanels(), "\n")...)
	for _, line := range m.bottomLines() {
		lines = append(lines, renderLine(line, m.width))
	}
	return m.surface.Overlay(strings.Join(lines, "\n"))
}

func (m *Model) headerLine() styledLine {
	var text string
	if active := m.registry.Active(); active != nil {
		text = fmt.Sprintf("%s · %s on %s", appTitle, active.ID(), describe(active.Target()))
	} else {
		text = fmt.Sprintf("%s · %d menus", appTitle, m.registry.Len())
	}
	return styledLine{text: text, style: m.styles.Header}
}

func (m *Model) bottomLines() []styledLine {
	status := styledLine{}
	if m.errMsg != "" {
		status = styledLine{text: "Error: " + m.errMsg, style: m.styles.Error}
	} else if info := m.currentInfo(); info != "" {
		status = styledLine{text: info, style: m.styles.Info}
	}
	lines := []styledLine{status}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.keys.footerHelp(m.registry.Active() != nil), style: m.styles.Footer})
	}
	return lines
}

// viewPanels renders the panel columns side by side, each exactly as wide as
// its element and as tall as the panel area.
func (m *Model) viewPanels() string {
	height := m.height - headerRows - m.bottomRows()
	if height < 1 {
		height = 1
	}
	if m.scene == nil || len(m.scene.panels) == 0 {
		empty := make([]string, height)
		empty[0] = renderLine(styledLine{text: "(no panels)", style: m.styles.Info}, m.width)
		for i := 1; i < height; i++ {
			empty[i] = strings.Repeat(" ", m.width)
		}
		return strings.Join(empty, "\n")
	}
	columns := make([]string, 0, len(m.scene.panels))
	for _, pv := range m.scene.panels {
		columns = append(columns, m.viewPanel(pv, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) viewPanel(pv *panelView, height int) string {
	width := pv.el.Bounds().W
	title := pv.cfg.Title
	if title == "" {
		title = pv.cfg.ID
	}
	lines := make([]string, 0, height)
	lines = append(lines, renderLine(styledLine{text: " " + title, style: m.styles.PanelTitle}, width))
	focused := m.focusedRow()
	for _, rv := range m.scene.rows {
		if rv.panel != pv || len(lines) >= height {
			continue
		}
		lines = append(lines, m.viewRow(rv, rv == focused, width))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewRow(rv *rowView, focused bool, width int) string {
	indicator := " "
	style := m.styles.Row
	if focused {
		indicator = focusIndicator
		style = m.styles.FocusedRow
	}
	label := indicator + " " + rv.cfg.Label
	tags := ""
	if len(rv.cfg.Tags) > 0 {
		tags = " " + strings.Join(rv.cfg.Tags, ",") + " "
	}
	labelW := width - 1
	if tags != "" && lipgloss.Width(label)+lipgloss.Width(tags) <= labelW {
		labelW -= lipgloss.Width(tags)
	} else {
		tags = ""
	}
	out := renderLine(styledLine{text: label, style: style}, labelW)
	if tags != "" {
		out += m.styles.RowTag.Render(tags)
	}
	return out + " "
}

// renderLine fits text into width cells, truncating with an ellipsis or
// padding with spaces, and applies the line style.
func renderLine(line styledLine, width int) string {
	text := fitWidth(line.text, width)
	if line.style != nil {
		return line.style.Render(text)
	}
	return text
}

func fitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(text); w > width {
		text = truncate.StringWithTail(text, uint(width), ellipsis)
	}
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return text
}
