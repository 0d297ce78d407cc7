package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/rarity"
)

// Color palette, dark arcade with a warm accent
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#FACC15") // Yellow
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Rarity colors
var (
	Common    = lipgloss.Color("#CBD5E1")
	Rare      = lipgloss.Color("#38BDF8")
	Epic      = lipgloss.Color("#A855F7")
	Legendary = lipgloss.Color("#F59E0B")
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

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Banner = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Warning).
		Bold(true).
		Padding(0, 1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// RarityColor returns the frame color for a rarity tier.
func RarityColor(t rarity.Tier) color.Color {
	switch t {
	case rarity.Rare:
		return Rare
	case rarity.Epic:
		return Epic
	case rarity.Legendary:
		return Legendary
	default:
		return Common
	}
}

// MomentumColor returns the color for a momentum state.
func MomentumColor(s momentum.State) color.Color {
	switch {
	case s.Min >= 76:
		return Accent
	case s.Min >= 51:
		return Error
	case s.Min >= 26:
		return Warning
	default:
		return Rare
	}
}
