package ui

import (
	"fmt"

	"github.com/atomicstack/minimenu/internal/logging/events"
	"github.com/atomicstack/minimenu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.ResultMsg)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.reportError(fmt.Errorf("%s %s: %w", result.Token, result.Target, result.Err))
		return nil
	}
	m.setError(nil)
	info := fmt.Sprintf("%s → %s done", result.Token, result.Target)
	if m.verbose && result.Output != "" {
		info = fmt.Sprintf("%s: %s", info, firstLine(result.Output))
	}
	m.setInfo(info)
	events.Action.Success(info)
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
