package battle

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/ui/components"
	"github.com/abhisek/flashwiz/internal/ui/layout"
	"github.com/abhisek/flashwiz/internal/ui/theme"
)

func (s *BattleScreen) View(width, height int) string {
	var b strings.Builder

	if banner := layout.RenderBanner(s.session.Notice, width); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Error: " + s.errMsg))
		b.WriteString("\n")
	}

	if s.summary != nil {
		b.WriteString(s.renderResult(width))
		return b.String()
	}

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderCard(width))
	b.WriteString("\n\n")

	if s.result != nil {
		b.WriteString(s.renderFeedback(width))
	} else {
		b.WriteString(s.renderAnswerArea(width))
	}

	return b.String()
}

// renderInfoLine renders the card counter, score and momentum.
func (s *BattleScreen) renderInfoLine(width int) string {
	p := s.session.Progress()
	state := momentum.StateFor(p.MomentumScore)

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Card %d/%d", s.session.Index()+1, len(s.session.Queue())))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d  %s +%d XP  ",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.CorrectCount(),
			lipgloss.NewStyle().Foreground(theme.Legendary).Render("◆"),
			s.session.TotalXP(),
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	bar := components.MomentumBar(p.MomentumScore, state.Icon, theme.MomentumColor(state), min(width-4, 60))
	return line + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
}

// renderCard renders the rarity-framed card with its stats and prompt.
func (s *BattleScreen) renderCard(width int) string {
	inst := s.current
	cw := components.ContentWidth(width)

	kind := "Card"
	if inst.IsConcept {
		kind = "Concept"
	}
	stats := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("ATK %d   DEF %d   %s · %s", inst.Atk, inst.Def, kind, inst.Type.DisplayName()))

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw - 8).
		Align(lipgloss.Center).
		Render(inst.Prompt)

	body := components.TierBadge(inst.Tier) + "\n" + stats + "\n\n" + prompt
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, components.BattleCard(body, inst.Tier, cw))
}

// renderAnswerArea renders the options or the text input.
func (s *BattleScreen) renderAnswerArea(width int) string {
	if s.current.Type == challenge.TypeMCQ {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()) + "\n" +
			lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(s.choice.Options)))
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
}

// renderFeedback renders the verdict, XP and momentum change after an answer.
func (s *BattleScreen) renderFeedback(width int) string {
	res := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	if s.current.Type == challenge.TypeMCQ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString("\n")
	}

	if res.Correct {
		b.WriteString(center.Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("Hit! +%d XP", res.XPEarned)))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Missed"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).
			Render("Correct answer: " + s.current.PrimaryAnswer()))
	}
	b.WriteString("\n")

	before := momentum.StateFor(res.MomentumBefore)
	after := momentum.StateFor(res.MomentumAfter)
	b.WriteString(center.Foreground(theme.MomentumColor(after)).
		Render(fmt.Sprintf("Momentum %s %d → %s %d", before.Icon, res.MomentumBefore, after.Icon, res.MomentumAfter)))
	b.WriteString("\n")

	if res.LevelUp {
		b.WriteString(center.Foreground(theme.Legendary).Bold(true).
			Render(fmt.Sprintf("LEVEL UP! You reached level %d", res.Progress.Level)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to continue..."))
	return b.String()
}
