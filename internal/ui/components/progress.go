package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a 0..1 fraction.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
	Fill    color.Color
}

// NewProgressBar creates a new progress bar filled with the theme color.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
		Fill:    theme.Secondary,
	}
}

// MomentumBar renders momentum on a 0-100 scale with its state icon.
func MomentumBar(score int, icon string, fill color.Color, width int) string {
	bar := NewProgressBar("Momentum", float64(score)/100, width)
	bar.Suffix = fmt.Sprintf("%s %d", icon, score)
	bar.Fill = fill
	return bar.View()
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().
		Background(fill).
		Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.
		Render(strings.Repeat(" ", empty))

	if suffix != "" {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(suffix)
	}

	return result
}
