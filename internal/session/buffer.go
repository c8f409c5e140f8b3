package session

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Buffer is the text editing state of a commit message being composed.
type Buffer interface {
	Update(msg tea.KeyMsg) tea.Cmd
	Value() string
	View() string
}

// textBuffer is a minimal single cursor editor used when no widget is
// supplied.
type textBuffer struct {
	text   []rune
	cursor int
}

// NewTextBuffer returns an empty plain text buffer.
func NewTextBuffer() Buffer {
	return &textBuffer{}
}

func (b *textBuffer) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes:
		b.insert(msg.Runes...)
	case tea.KeySpace:
		b.insert(' ')
	case tea.KeyEnter:
		b.insert('\n')
	case tea.KeyTab:
		b.insert('\t')
	case tea.KeyBackspace:
		if b.cursor > 0 {
			b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
			b.cursor--
		}
	case tea.KeyDelete:
		if b.cursor < len(b.text) {
			b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
		}
	case tea.KeyLeft:
		if b.cursor > 0 {
			b.cursor--
		}
	case tea.KeyRight:
		if b.cursor < len(b.text) {
			b.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		b.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		b.cursor = len(b.text)
	}
	return nil
}

func (b *textBuffer) insert(r ...rune) {
	tail := append([]rune{}, b.text[b.cursor:]...)
	b.text = append(append(b.text[:b.cursor], r...), tail...)
	b.cursor += len(r)
}

func (b *textBuffer) Value() string {
	return string(b.text)
}

func (b *textBuffer) View() string {
	return string(b.text[:b.cursor]) + "█" + string(b.text[b.cursor:])
}
