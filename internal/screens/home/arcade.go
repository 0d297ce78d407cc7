package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/ui/components"
	"github.com/abhisek/flashwiz/internal/ui/theme"
)

const arcadeTitleFull = ` ___ _         _             _
| __| |__ _ __| |_ __ __ _(_)___
| _|| / _' (_-< ' \\ V  V / |_ /
|_| |_\__,_/__/_||_\_/\_/|_/__|`

const arcadeTitleCompact = "F · L · A · S · H · W · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Legendary).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders level, XP and momentum in a bordered box.
func renderStatsBar(p progress.Progress, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.Legendary).Bold(true)
	streakStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Rare).Bold(true)

	state := momentum.StateFor(p.MomentumScore)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			levelStyle.Render(fmt.Sprintf("Lv%d", p.Level)),
			streakStyle.Render(fmt.Sprintf("★%d", p.CurrentStreak)),
			accStyle.Render(fmt.Sprintf("%.0f%%", p.RollingAccuracy)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render(fmt.Sprintf("LEVEL %d", p.Level)),
			streakStyle.Render(fmt.Sprintf("★ %d DAY STREAK", p.CurrentStreak)),
			accStyle.Render(fmt.Sprintf("%.0f%% ACCURACY", p.RollingAccuracy)),
		)
	}

	inner := cw - 6
	into := p.XPIntoLevel()
	xpBar := components.NewProgressBar("XP", float64(into)/progress.XPPerLevel, inner)
	xpBar.Suffix = fmt.Sprintf("%d/%d", into, progress.XPPerLevel)
	xpBar.Fill = theme.Legendary

	body := line + "\n" + xpBar.View() + "\n" +
		components.MomentumBar(p.MomentumScore, state.Icon, theme.MomentumColor(state), inner)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(body)
}

// renderDeckMenu renders the deck picker inside a card.
func renderDeckMenu(menu components.Menu, cw int, empty bool) string {
	body := menu.View()
	if empty {
		body = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("No decks yet. Create one with `flashwiz deck create`.") + "\n\n" + body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(body)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
