package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"

	"github.com/rit-tui/rit/internal/models"
	"github.com/rit-tui/rit/internal/session"
)

func (m *Model) renderHeader(snap session.Snapshot) string {
	badge := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1).
		Render("rit")

	var branch string
	if snap.Detached {
		branch = lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Bold(true).Render("detached HEAD")
	} else {
		name := snap.Branch
		if m.config.ShowIcons {
			name = iconWithSpace(iconBranch) + name
		}
		branch = lipgloss.NewStyle().Foreground(m.theme.TextFg).Bold(true).Render(name)
	}

	muted := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	counts := []string{
		lipgloss.NewStyle().Foreground(m.theme.Staged).Render(fmt.Sprintf("%d staged", snap.Staged)),
		lipgloss.NewStyle().Foreground(m.theme.Modified).Render(fmt.Sprintf("%d modified", snap.Dirty)),
		lipgloss.NewStyle().Foreground(m.theme.Untracked).Render(fmt.Sprintf("%d untracked", snap.Untracked)),
	}

	line := badge + " " + branch + "  " + strings.Join(counts, muted.Render(" · "))
	return ansi.Truncate(line, m.width, "…")
}

func (m *Model) renderList(snap session.Snapshot, height int) string {
	if len(snap.Records) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Italic(true).
			Padding(1, 2).
			Render("Nothing to commit, working tree clean")
	}

	m.offset = scrollOffset(m.offset, snap.Cursor, height, len(snap.Records))
	end := min(m.offset+height, len(snap.Records))

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRecord(snap.Records[i], i == snap.Cursor))
	}
	return strings.Join(lines, "\n")
}

// scrollOffset returns the first visible row so that cursor stays in view,
// moving the window as little as possible.
func scrollOffset(offset, cursor, rows, total int) int {
	if rows <= 0 || cursor < 0 {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+rows {
		offset = cursor - rows + 1
	}
	offset = min(offset, max(total-rows, 0))
	return max(offset, 0)
}

func (m *Model) renderRecord(r models.ChangeRecord, selected bool) string {
	pointer := "  "
	if selected {
		pointer = lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("▌ ")
	}

	marker := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("[ ]")
	if models.IsStaged(r) {
		marker = lipgloss.NewStyle().Foreground(m.theme.Staged).Bold(true).Render("[x]")
	}

	xy := lipgloss.NewStyle().Foreground(m.theme.StatusColor(r.Index.Kind)).Render(r.Index.String()) +
		lipgloss.NewStyle().Foreground(m.theme.StatusColor(r.Worktree.Kind)).Render(r.Worktree.String())

	icon := ""
	if m.config.ShowIcons {
		icon = iconWithSpace(fileIcon(r.Path))
	}

	prefix := pointer + marker + " " + xy + " " + icon
	avail := max(m.width-lipgloss.Width(prefix), 1)

	pathStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	if selected {
		pathStyle = pathStyle.Background(m.theme.SelectedBg).Bold(true)
	}
	return prefix + pathStyle.Render(ansi.Truncate(r.Path, avail, "…"))
}

func (m *Model) renderCompose(snap session.Snapshot, height int) string {
	title := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("Commit message")
	files := "file"
	if snap.Staged != 1 {
		files = "files"
	}
	summary := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(fmt.Sprintf("  %d staged %s", snap.Staged, files))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Width(max(m.width-2, 1)).
		Height(max(height-3, 1)).
		Render(snap.Buffer)

	return title + summary + "\n" + box
}

func (m *Model) renderError(snap session.Snapshot) string {
	if snap.LastError == "" {
		return ""
	}
	width := max(m.width-2, 10)
	text := truncateToHeightFromEnd(wrap.String("✗ "+snap.LastError, width), maxErrorLines)
	return lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Render(text)
}

func (m *Model) renderFooter(snap session.Snapshot) string {
	return m.help.ShortHelpView(m.machine.Keys().ForMode(snap.Mode))
}

func (m *Model) renderFatal(snap session.Snapshot) string {
	width := min(max(m.width-4, 20), 72)

	title := lipgloss.NewStyle().Foreground(m.theme.ErrorFg).Bold(true).Render("rit cannot start")
	body := lipgloss.NewStyle().Foreground(m.theme.TextFg).Render(wrap.String(snap.Fatal, width-4))
	hint := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("Press q to quit")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.ErrorFg).
		Padding(1, 2).
		Width(width).
		Render(title + "\n\n" + body + "\n\n" + hint)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
