package screen

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rit-tui/rit/internal/theme"
)

const (
	minEditorWidth  = 20
	minEditorHeight = 3
)

// MessageEditor is the multiline commit message editor. Submit and cancel
// keys never reach it; it only edits text.
type MessageEditor struct {
	Input textarea.Model
}

// NewMessageEditor returns a focused, empty editor styled with thm.
func NewMessageEditor(width, height int, thm *theme.Theme) *MessageEditor {
	ta := textarea.New()
	ta.Placeholder = "Commit message"
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	focused, _ := textarea.DefaultStyles()
	focused.Base = lipgloss.NewStyle().Padding(0, 1)
	focused.Text = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true)
	focused.CursorLine = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.EndOfBuffer = lipgloss.NewStyle().Foreground(thm.MutedFg)
	ta.FocusedStyle = focused
	ta.BlurredStyle = focused
	ta.Focus()

	e := &MessageEditor{Input: ta}
	e.SetSize(width, height)
	return e
}

// SetSize resizes the text area, keeping it usable on tiny terminals.
func (e *MessageEditor) SetSize(width, height int) {
	e.Input.SetWidth(max(width, minEditorWidth))
	e.Input.SetHeight(max(height, minEditorHeight))
}

// Update applies a key to the text.
func (e *MessageEditor) Update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	e.Input, cmd = e.Input.Update(msg)
	return cmd
}

// Value returns the message text.
func (e *MessageEditor) Value() string {
	return e.Input.Value()
}

// View renders the text area.
func (e *MessageEditor) View() string {
	return e.Input.View()
}
