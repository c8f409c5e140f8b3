// Package theme provides colour palettes for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rit-tui/rit/internal/models"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text on Accent
	SelectedBg lipgloss.Color
	Border     lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	ErrorFg    lipgloss.Color

	// Status glyph colours
	Modified  lipgloss.Color
	Added     lipgloss.Color
	Deleted   lipgloss.Color
	Renamed   lipgloss.Color
	Untracked lipgloss.Color
	Unmerged  lipgloss.Color
	Staged    lipgloss.Color // the [x] marker
}

// Theme names.
const (
	DraculaName      = "dracula"
	DraculaLightName = "dracula-light"
	NordName         = "nord"
	GruvboxDarkName  = "gruvbox-dark"
	GruvboxLightName = "gruvbox-light"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#BD93F9"),
		AccentFg:   lipgloss.Color("#282A36"),
		SelectedBg: lipgloss.Color("#44475A"),
		Border:     lipgloss.Color("#6272A4"),
		MutedFg:    lipgloss.Color("#6272A4"),
		TextFg:     lipgloss.Color("#F8F8F2"),
		ErrorFg:    lipgloss.Color("#FF5555"),
		Modified:   lipgloss.Color("#FFB86C"),
		Added:      lipgloss.Color("#50FA7B"),
		Deleted:    lipgloss.Color("#FF5555"),
		Renamed:    lipgloss.Color("#8BE9FD"),
		Untracked:  lipgloss.Color("#6272A4"),
		Unmerged:   lipgloss.Color("#FF79C6"),
		Staged:     lipgloss.Color("#50FA7B"),
	}
}

// DraculaLight returns the Dracula theme adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#7C3AED"),
		AccentFg:   lipgloss.Color("#FFFFFF"),
		SelectedBg: lipgloss.Color("#F3E8FF"),
		Border:     lipgloss.Color("#D0D7DE"),
		MutedFg:    lipgloss.Color("#6E7781"),
		TextFg:     lipgloss.Color("#24292F"),
		ErrorFg:    lipgloss.Color("#DC2626"),
		Modified:   lipgloss.Color("#D97706"),
		Added:      lipgloss.Color("#059669"),
		Deleted:    lipgloss.Color("#DC2626"),
		Renamed:    lipgloss.Color("#0891B2"),
		Untracked:  lipgloss.Color("#6E7781"),
		Unmerged:   lipgloss.Color("#DB2777"),
		Staged:     lipgloss.Color("#059669"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"),
		SelectedBg: lipgloss.Color("#3B4252"),
		Border:     lipgloss.Color("#4C566A"),
		MutedFg:    lipgloss.Color("#81A1C1"),
		TextFg:     lipgloss.Color("#E5E9F0"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		Modified:   lipgloss.Color("#EBCB8B"),
		Added:      lipgloss.Color("#A3BE8C"),
		Deleted:    lipgloss.Color("#BF616A"),
		Renamed:    lipgloss.Color("#88C0D0"),
		Untracked:  lipgloss.Color("#81A1C1"),
		Unmerged:   lipgloss.Color("#B48EAD"),
		Staged:     lipgloss.Color("#A3BE8C"),
	}
}

// GruvboxDark returns the Gruvbox dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#FABD2F"),
		AccentFg:   lipgloss.Color("#282828"),
		SelectedBg: lipgloss.Color("#3C3836"),
		Border:     lipgloss.Color("#504945"),
		MutedFg:    lipgloss.Color("#928374"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		Modified:   lipgloss.Color("#FE8019"),
		Added:      lipgloss.Color("#B8BB26"),
		Deleted:    lipgloss.Color("#FB4934"),
		Renamed:    lipgloss.Color("#83A598"),
		Untracked:  lipgloss.Color("#928374"),
		Unmerged:   lipgloss.Color("#D3869B"),
		Staged:     lipgloss.Color("#B8BB26"),
	}
}

// GruvboxLight returns the Gruvbox light theme.
func GruvboxLight() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("#D79921"),
		AccentFg:   lipgloss.Color("#FBF1C7"),
		SelectedBg: lipgloss.Color("#E0CFA9"),
		Border:     lipgloss.Color("#D5C4A1"),
		MutedFg:    lipgloss.Color("#7C6F64"),
		TextFg:     lipgloss.Color("#3C3836"),
		ErrorFg:    lipgloss.Color("#9D0006"),
		Modified:   lipgloss.Color("#AF3A03"),
		Added:      lipgloss.Color("#79740E"),
		Deleted:    lipgloss.Color("#9D0006"),
		Renamed:    lipgloss.Color("#427B58"),
		Untracked:  lipgloss.Color("#7C6F64"),
		Unmerged:   lipgloss.Color("#B16286"),
		Staged:     lipgloss.Color("#79740E"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	case GruvboxLightName:
		return GruvboxLight()
	default:
		return Dracula()
	}
}

// IsLight returns true if the theme is a light theme.
func IsLight(name string) bool {
	switch name {
	case DraculaLightName, GruvboxLightName:
		return true
	default:
		return false
	}
}

// DefaultDark returns the default dark theme name.
func DefaultDark() string {
	return DraculaName
}

// DefaultLight returns the default light theme name.
func DefaultLight() string {
	return DraculaLightName
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
		GruvboxLightName,
	}
}

// StatusColor returns the colour used for a status glyph.
func (t *Theme) StatusColor(kind models.StatusKind) lipgloss.Color {
	switch kind {
	case models.Modified:
		return t.Modified
	case models.Added, models.Copied:
		return t.Added
	case models.Deleted:
		return t.Deleted
	case models.Renamed:
		return t.Renamed
	case models.Untracked:
		return t.Untracked
	case models.Unmerged:
		return t.Unmerged
	default:
		return t.MutedFg
	}
}
