package tui

import "github.com/charmbracelet/lipgloss"

// palette is the set of colors one theme renders with.
type palette struct {
	accent lipgloss.Color
	text   lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
}

var (
	darkPalette = palette{
		accent: lipgloss.Color("205"),
		text:   lipgloss.Color("252"),
		muted:  lipgloss.Color("240"),
		border: lipgloss.Color("62"),
	}
	lightPalette = palette{
		accent: lipgloss.Color("162"),
		text:   lipgloss.Color("235"),
		muted:  lipgloss.Color("245"),
		border: lipgloss.Color("99"),
	}

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

type styles struct {
	title     lipgloss.Style
	companion lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	overlay   lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		title: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		companion: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Width(40).
			Align(lipgloss.Center),
		text:  lipgloss.NewStyle().Foreground(p.text),
		muted: lipgloss.NewStyle().Foreground(p.muted),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}
