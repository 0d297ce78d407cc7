package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/rarity"
	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double-border frame, centered in the given
// dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// BattleCard frames a card body with its rarity color. Legendary cards get a
// thick border.
func BattleCard(content string, tier rarity.Tier, cw int) string {
	border := lipgloss.RoundedBorder()
	if tier == rarity.Legendary {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(theme.RarityColor(tier)).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// TierBadge renders "<icon> <Name>" in the tier color.
func TierBadge(tier rarity.Tier) string {
	return lipgloss.NewStyle().
		Foreground(theme.RarityColor(tier)).
		Bold(true).
		Render(tier.Icon() + " " + tier.DisplayName())
}
