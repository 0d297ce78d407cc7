package rarity

import "fmt"

// Tier represents the difficulty and reward class of a card instance.
type Tier string

const (
	Common    Tier = "common"
	Rare      Tier = "rare"
	Epic      Tier = "epic"
	Legendary Tier = "legendary"
)

// AllTiers returns all tiers in order from lowest to highest.
func AllTiers() []Tier {
	return []Tier{Common, Rare, Epic, Legendary}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case Common:
		return "Common"
	case Rare:
		return "Rare"
	case Epic:
		return "Epic"
	case Legendary:
		return "Legendary"
	default:
		return string(t)
	}
}

// Icon returns the display icon for the tier.
func (t Tier) Icon() string {
	switch t {
	case Common:
		return "◇"
	case Rare:
		return "◆"
	case Epic:
		return "✦"
	case Legendary:
		return "★"
	default:
		return "·"
	}
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool {
	switch t {
	case Common, Rare, Epic, Legendary:
		return true
	}
	return false
}

// ParseTier converts a stored tier name back into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown rarity tier %q", s)
	}
	return t, nil
}
