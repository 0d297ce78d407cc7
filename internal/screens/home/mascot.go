package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// MascotVariant selects which wizard art to display.
type MascotVariant int

const (
	MascotSleepy  MascotVariant = iota // Cold
	MascotIdle                         // Warming
	MascotCasting                      // Hot
	MascotBlazing                      // On Fire
)

const mascotSleepy = `   /\
  /__\
 ( -.-) z
 /|  |\
  d  b`

const mascotIdle = `   /\
  /__\
 ( o.o)
 /|  |\
  d  b`

const mascotCasting = `   /\   *
  /__\ /
 ( ^.^)/
 /|  |
  d  b`

const mascotBlazing = `   /\  ⚡
  /**\ /
 ( >.<)/
 /|##|
  d  b`

// MascotFor picks the variant matching a momentum score.
func MascotFor(score int) MascotVariant {
	switch momentum.StateFor(score).Name {
	case "On Fire":
		return MascotBlazing
	case "Hot":
		return MascotCasting
	case "Warming":
		return MascotIdle
	default:
		return MascotSleepy
	}
}

// RenderMascot returns the styled wizard for variant.
func RenderMascot(variant MascotVariant) string {
	switch variant {
	case MascotBlazing:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(mascotBlazing)
	case MascotCasting:
		return lipgloss.NewStyle().Foreground(theme.Warning).Render(mascotCasting)
	case MascotIdle:
		return lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotIdle)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(mascotSleepy)
	}
}
