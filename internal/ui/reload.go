package ui

import (
	"fmt"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/logging/events"
	"github.com/atomicstack/minimenu/internal/watch"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForWatchEvent(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return watchDoneMsg{}
		}
		return watchEventMsg{event: evt}
	}
}

type watchEventMsg struct {
	event watch.Event
}

type watchDoneMsg struct{}

func (m *Model) handleWatchEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(watchEventMsg)
	if !ok {
		return nil
	}
	if err := eventMsg.event.Err; err != nil {
		m.reportError(fmt.Errorf("reload %s: %w", eventMsg.event.Path, err))
	} else {
		m.Reload(eventMsg.event.File)
	}
	if m.watcher != nil {
		return waitForWatchEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleWatchDoneMsg(msg tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// Reload unloads every menu and rebuilds the scene from mf. When the new file
// cannot be realised the previous file is restored.
func (m *Model) Reload(mf config.MenuFile) {
	previous := config.MenuFile{}
	focusID := ""
	if m.scene != nil {
		previous = m.scene.file
		if row := m.focusedRow(); row != nil {
			focusID = row.el.ID()
		}
		m.scene.teardown(m)
		m.scene = nil
	}
	sc, err := buildScene(m, mf)
	if err != nil {
		m.reportError(fmt.Errorf("reload: %w", err))
		sc, err = buildScene(m, previous)
		if err != nil {
			m.reportError(fmt.Errorf("restore: %w", err))
			sc = &scene{}
		}
	} else {
		m.setError(nil)
		m.setInfo(fmt.Sprintf("reloaded %d menus", len(sc.menus)))
	}
	m.scene = sc
	m.layout()
	m.setFocus(m.rowIndex(focusID))
	events.UI.Reload(len(sc.menus))
}

func (m *Model) rowIndex(id string) int {
	if id == "" || m.scene == nil {
		return 0
	}
	for i, rv := range m.scene.rows {
		if rv.el.ID() == id {
			return i
		}
	}
	return 0
}
