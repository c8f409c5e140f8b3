package session

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestTextBufferEditing(t *testing.T) {
	b := NewTextBuffer()
	b.Update(keyRunes("helo"))
	b.Update(tea.KeyMsg{Type: tea.KeyLeft})
	b.Update(keyRunes("l"))
	assert.Equal(t, "hello", b.Value())

	b.Update(tea.KeyMsg{Type: tea.KeyEnd})
	b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	b.Update(keyRunes("wörld"))
	b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "hello wörld\n", b.Value())

	b.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	b.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "hello wörl", b.Value())

	b.Update(tea.KeyMsg{Type: tea.KeyHome})
	b.Update(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "ello wörl", b.Value())
	assert.Equal(t, "█ello wörl", b.View())
}

func TestTextBufferBoundaries(t *testing.T) {
	b := NewTextBuffer()
	b.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	b.Update(tea.KeyMsg{Type: tea.KeyDelete})
	b.Update(tea.KeyMsg{Type: tea.KeyLeft})
	b.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Empty(t, b.Value())
	assert.Equal(t, "█", b.View())

	b.Update(keyRunes("ab"))
	b.Update(tea.KeyMsg{Type: tea.KeyRight})
	b.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	b.Update(keyRunes("x"))
	assert.Equal(t, "xab", b.Value())
	b.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, "xab█", b.View())
}
