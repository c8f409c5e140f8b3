package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rit-tui/rit/internal/theme"
)

// HelpSection is a titled group of key bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpScreen lists every key binding in a scrollable box.
type HelpScreen struct {
	Viewport viewport.Model
	Width    int
	Height   int
	Sections []HelpSection
	Thm      *theme.Theme
}

// NewHelpScreen builds the help overlay sized to the terminal.
func NewHelpScreen(sections []HelpSection, maxWidth, maxHeight int, thm *theme.Theme) *HelpScreen {
	s := &HelpScreen{
		Viewport: viewport.New(0, 0),
		Sections: sections,
		Thm:      thm,
	}
	s.SetSize(maxWidth, maxHeight)
	s.Viewport.SetContent(s.renderContent())
	return s
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update scrolls the help text or closes the screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEsc, keyQ, "?", keyCtrlC:
		return nil, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	case "ctrl+d":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	}
	return s, nil
}

// SetSize updates the box dimensions on terminal resize.
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	s.Width = 60
	s.Height = 20
	if maxWidth > 0 {
		s.Width = clampInt(maxWidth-4, 30, 70)
	}
	if maxHeight > 0 {
		s.Height = clampInt(maxHeight-4, 8, 30)
	}
	// borders, title and footer
	s.Viewport.Width = s.Width - 4
	s.Viewport.Height = max(s.Height-4, 3)
}

func (s *HelpScreen) renderContent() string {
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.Added).Bold(true).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(s.Thm.TextFg)

	var lines []string
	for i, section := range s.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, titleStyle.Render(section.Title))
		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			lines = append(lines, "  "+keyStyle.Render(h.Key)+descStyle.Render(h.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the bindings inside the viewport.
func (s *HelpScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.Border).
		Width(s.Width-2).
		Padding(0, 1).
		Render("Keys")

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width-2).
		Padding(0, 1).
		Render("j/k scroll • esc close")

	body := lipgloss.NewStyle().Padding(0, 1).Render(s.Viewport.View())

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, footer))
}

func clampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
