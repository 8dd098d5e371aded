package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm and focused, reads well on dark terminals
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#FAFAF9") // Warm White
	TextDim   = lipgloss.Color("#A1A1AA") // Zinc
	BgDark    = lipgloss.Color("#18181B") // Near Black
	BgCard    = lipgloss.Color("#27272A") // Dark Zinc
	Border    = lipgloss.Color("#3F3F46") // Zinc Border
	Locked    = lipgloss.Color("#71717A") // Muted Zinc
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	LockedItem = lipgloss.NewStyle().
			Foreground(Locked).
			Italic(true)
)

// Conversation
var (
	UserTurn = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	CoachTurn = lipgloss.NewStyle().
			Foreground(Text)

	SourceLine = lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true)

	PlusBadge = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 1)
)
