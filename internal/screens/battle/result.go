package battle

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// renderResult renders the battle summary.
func (s *BattleScreen) renderResult(width int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Battle complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Cards: %d        Correct: %d        Accuracy: %.0f%%        XP: +%d",
		sum.Answered, sum.Correct, sum.Accuracy*100, sum.TotalXP)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n")

	b.WriteString(center.Foreground(theme.MomentumColor(sum.StateEnd)).
		Render(fmt.Sprintf("Momentum: %s %s (%d) → %s %s (%d)",
			sum.StateStart.Icon, sum.StateStart.Name, sum.MomentumStart,
			sum.StateEnd.Icon, sum.StateEnd.Name, sum.MomentumEnd)))
	b.WriteString("\n")

	if sum.LeveledUp() {
		b.WriteString(center.Foreground(theme.Legendary).Bold(true).
			Render(fmt.Sprintf("Level up! %d → %d", sum.LevelBefore, sum.LevelAfter)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Rarity")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, tr := range sum.Tiers {
		line := fmt.Sprintf("  %s %-10s  %d/%d correct   +%d XP",
			tr.Tier.Icon(), tr.Tier.DisplayName(), tr.Correct, tr.Seen, tr.XP)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.RarityColor(tr.Tier)).Render(line)))
		b.WriteString("\n")
	}

	if sum.Skipped > 0 {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("%d malformed card(s) were skipped", sum.Skipped)))
		b.WriteString("\n")
	}

	return b.String()
}
