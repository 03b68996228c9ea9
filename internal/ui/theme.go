package ui

import (
	"github.com/charmbracelet/lipgloss"

	"gtodo/internal/tasklist"
)

type palette struct {
	fg, muted, accent, done, bg, warn lipgloss.Color
}

var palettes = map[tasklist.Theme]palette{
	tasklist.ThemeLight: {
		fg:     lipgloss.Color("#1f2328"),
		muted:  lipgloss.Color("#6e7781"),
		accent: lipgloss.Color("#0969da"),
		done:   lipgloss.Color("#8c959f"),
		bg:     lipgloss.Color("#ffffff"),
		warn:   lipgloss.Color("#cf222e"),
	},
	tasklist.ThemeDark: {
		fg:     lipgloss.Color("#e6edf3"),
		muted:  lipgloss.Color("#8b949e"),
		accent: lipgloss.Color("#58a6ff"),
		done:   lipgloss.Color("#6e7681"),
		bg:     lipgloss.Color("#0d1117"),
		warn:   lipgloss.Color("#ff7b72"),
	},
}

// styles is the rendered look of one theme.
type styles struct {
	app       lipgloss.Style
	title     lipgloss.Style
	item      lipgloss.Style
	done      lipgloss.Style
	cursor    lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	muted     lipgloss.Style
	notice    lipgloss.Style
}

func newStyles(t tasklist.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[tasklist.ThemeLight]
	}
	base := lipgloss.NewStyle().Foreground(p.fg)
	return styles{
		app:       lipgloss.NewStyle().Background(p.bg).Foreground(p.fg).Padding(1, 2),
		title:     base.Bold(true).Foreground(p.accent),
		item:      base,
		done:      base.Foreground(p.done).Strikethrough(true),
		cursor:    base.Foreground(p.accent).Bold(true),
		tab:       base.Foreground(p.muted).Padding(0, 1),
		activeTab: base.Foreground(p.accent).Bold(true).Underline(true).Padding(0, 1),
		muted:     base.Foreground(p.muted),
		notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.warn).
			Foreground(p.warn).
			Padding(0, 2),
	}
}
