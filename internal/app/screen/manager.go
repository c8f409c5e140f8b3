package screen

import tea "github.com/charmbracelet/bubbletea"

// Manager holds the overlay currently shown, if any.
type Manager struct {
	current Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Set shows s, replacing any open overlay. A nil s closes it.
func (m *Manager) Set(s Screen) {
	m.current = s
}

// Current returns the active screen, or nil.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether an overlay is shown.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Update forwards msg to the current screen and closes it when the screen
// asks to be dismissed.
func (m *Manager) Update(msg tea.KeyMsg) tea.Cmd {
	if m.current == nil {
		return nil
	}
	next, cmd := m.current.Update(msg)
	m.current = next
	return cmd
}

// Close dismisses the current screen.
func (m *Manager) Close() {
	m.current = nil
}
