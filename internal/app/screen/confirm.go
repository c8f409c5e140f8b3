package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rit-tui/rit/internal/theme"
)

const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyQ        = "q"
	keyCtrlC    = "ctrl+c"
)

// Button indexes of a ConfirmScreen.
const (
	ButtonConfirm = iota
	ButtonCancel
)

// ConfirmScreen asks a yes/no question before a destructive action.
type ConfirmScreen struct {
	Title          string
	Message        string
	ConfirmLabel   string
	CancelLabel    string
	SelectedButton int
	Thm            *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirm screen with Cancel focused, so a stray
// enter never confirms.
func NewConfirmScreen(title, message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Title:          title,
		Message:        message,
		ConfirmLabel:   "[y] Yes",
		CancelLabel:    "[n] No",
		SelectedButton: ButtonCancel,
		Thm:            thm,
	}
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

// Update processes keyboard events for the dialog.
// Returns nil when the dialog is answered.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, "right", "l", keyShiftTab, "left", "h":
		s.SelectedButton = 1 - s.SelectedButton
	case "y", "Y":
		return nil, s.confirm()
	case "n", "N", keyEsc, keyQ, keyCtrlC:
		return nil, s.cancel()
	case keyEnter:
		if s.SelectedButton == ButtonConfirm {
			return nil, s.confirm()
		}
		return nil, s.cancel()
	}
	return s, nil
}

func (s *ConfirmScreen) confirm() tea.Cmd {
	if s.OnConfirm == nil {
		return nil
	}
	return s.OnConfirm()
}

func (s *ConfirmScreen) cancel() tea.Cmd {
	if s.OnCancel == nil {
		return nil
	}
	return s.OnCancel()
}

// View renders the dialog box with the focused button highlighted.
func (s *ConfirmScreen) View() string {
	width := 56

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.ErrorFg).
		Padding(1, 2).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Center).
		Foreground(s.Thm.ErrorFg).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Center).
		Foreground(s.Thm.TextFg)

	button := lipgloss.NewStyle().
		Width((width - 6) / 2).
		Align(lipgloss.Center)
	focusedConfirm := button.Foreground(s.Thm.AccentFg).Background(s.Thm.ErrorFg).Bold(true)
	focusedCancel := button.Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
	unfocused := button.Foreground(s.Thm.MutedFg).Background(s.Thm.SelectedBg)

	confirmButton := unfocused.Render(s.ConfirmLabel)
	cancelButton := focusedCancel.Render(s.CancelLabel)
	if s.SelectedButton == ButtonConfirm {
		confirmButton = focusedConfirm.Render(s.ConfirmLabel)
		cancelButton = unfocused.Render(s.CancelLabel)
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s",
		titleStyle.Render(s.Title),
		messageStyle.Render(s.Message),
		confirmButton,
		cancelButton,
	)
	return boxStyle.Render(content)
}
