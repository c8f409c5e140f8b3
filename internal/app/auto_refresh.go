package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	log "github.com/rit-tui/rit/internal/log"
	"github.com/rit-tui/rit/internal/session"
)

func (m *Model) startGitWatcher() tea.Cmd {
	if m.watcher == nil || !m.config.AutoRefresh {
		return nil
	}
	if !m.watcher.Started() {
		started, err := m.watcher.Start()
		if err != nil {
			log.Printf("auto refresh disabled: %v", err)
			return nil
		}
		if !started {
			return nil
		}
	}
	return m.waitForGitWatchEvent()
}

func (m *Model) stopGitWatcher() {
	if m.watcher == nil || !m.watcher.Started() {
		return
	}
	m.watcher.Stop()
}

func (m *Model) waitForGitWatchEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.NextEvent()
	if events == nil {
		return nil
	}
	done := m.watcher.Done()
	return func() tea.Msg {
		select {
		case _, ok := <-events:
			if !ok {
				return nil
			}
			return gitDirChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// handleGitDirChanged refreshes the list unless the user is composing or
// answering a prompt, then waits for the next event.
func (m *Model) handleGitDirChanged() (tea.Model, tea.Cmd) {
	if m.watcher == nil {
		return m, nil
	}
	m.watcher.ResetWaiting()
	if m.quitting {
		return m, nil
	}
	if m.canAutoRefresh() && m.watcher.ShouldRefresh(time.Now()) {
		log.Println("git dir changed, refreshing")
		m.machine.Sync()
	}
	return m, m.waitForGitWatchEvent()
}

func (m *Model) canAutoRefresh() bool {
	return m.machine.Mode() == session.ModeBrowse &&
		m.machine.PendingDiscard() == "" &&
		!m.screens.IsActive()
}
