package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rit-tui/rit/internal/session"
)

const maxErrorLines = 3

// View renders the session for the Bubble Tea program.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.machine.Snapshot()
	if snap.Fatal != "" {
		return m.renderFatal(snap)
	}

	header := m.renderHeader(snap)
	footer := m.renderFooter(snap)
	errLine := m.renderError(snap)

	bodyHeight := m.height - 2 // header and footer
	if errLine != "" {
		bodyHeight -= lipgloss.Height(errLine)
	}
	bodyHeight = max(bodyHeight, 1)

	var body string
	if snap.Mode == session.ModeComposeCommit {
		body = m.renderCompose(snap, bodyHeight)
	} else {
		body = m.renderList(snap, bodyHeight)
	}
	body = padToHeight(truncateToHeight(body, bodyHeight), bodyHeight)

	sections := []string{header, body}
	if errLine != "" {
		sections = append(sections, errLine)
	}
	sections = append(sections, footer)
	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.screens.IsActive() {
		return m.overlayPopup(baseView, m.screens.Current().View(), 3)
	}
	return baseView
}

// overlayPopup overlays a popup on top of the base view, preserving
// the portions of the base that fall outside the popup bounds.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	baseWidth := m.width
	popupWidth := lipgloss.Width(popupLines[0])
	leftPad := max((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")
		baseLines[row] = leftPart + line + rightPart
	}

	return strings.Join(baseLines, "\n")
}

// truncateToHeight ensures output doesn't exceed maxLines.
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}

// truncateToHeightFromEnd keeps the last maxLines lines; git puts the
// actual error last.
func truncateToHeightFromEnd(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}

func padToHeight(s string, lines int) string {
	if n := lipgloss.Height(s); n < lines {
		s += strings.Repeat("\n", lines-n)
	}
	return s
}
