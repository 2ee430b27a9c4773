package ui

import "charm.land/lipgloss/v2"

// Color palette matching tig's scheme: ANSI colors so the panes blend
// into whatever terminal theme the user runs git in.
var (
	styleDefault  = lipgloss.NewStyle()
	styleNormal   = lipgloss.NewStyle()
	styleAuthor   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan
	styleCommit   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	styleDate     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	styleRefs     = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // magenta
	styleDelete   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
	styleMetadata = lipgloss.NewStyle().Foreground(lipgloss.Color("4")) // blue
)

// Border styles: focus bolds and colors the border (and title), never
// the pane content.
var (
	BorderStyle        = lipgloss.NewStyle()
	BorderFocusedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// StatusBarStyle renders the bottom help/status line in reverse video.
var StatusBarStyle = lipgloss.NewStyle().Reverse(true)

// styleFor resolves a display color to its lipgloss style. This is the
// only place the Color enum meets terminal attributes.
func styleFor(c Color) lipgloss.Style {
	switch c {
	case ColorAuthor:
		return styleAuthor
	case ColorCommit:
		return styleCommit
	case ColorDate:
		return styleDate
	case ColorRefs:
		return styleRefs
	case ColorDelete:
		return styleDelete
	case ColorMetadata:
		return styleMetadata
	case ColorNormal:
		return styleNormal
	default:
		return styleDefault
	}
}

// RoleColor maps a chat role to its display color: user stays default,
// assistant matches the author accent, system matches dates.
func RoleColor(role string) Color {
	switch role {
	case "assistant":
		return ColorAuthor
	case "system":
		return ColorDate
	default:
		return ColorDefault
	}
}
