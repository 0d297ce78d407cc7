package xp

import (
	"testing"

	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/rarity"
)

func TestCompute_IncorrectIsZero(t *testing.T) {
	for _, tier := range rarity.AllTiers() {
		for m := -10; m <= 110; m += 10 {
			for _, atk := range []int{0, 10, 40, 400} {
				if got := Compute(tier, m, false, atk); got != 0 {
					t.Fatalf("Compute(%s, %d, false, %d) = %d, want 0", tier, m, atk, got)
				}
			}
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		tier     rarity.Tier
		momentum int
		atk      int
		want     int
	}{
		{rarity.Common, 0, 10, 12},
		{rarity.Common, 100, 10, 18},
		{rarity.Rare, 50, 19, 23},
		{rarity.Epic, 50, 28, 38},
		{rarity.Legendary, 100, 40, 72},
		{rarity.Legendary, 150, 40, 72},
	}
	for _, tt := range tests {
		if got := Compute(tt.tier, tt.momentum, true, tt.atk); got != tt.want {
			t.Errorf("Compute(%s, %d, true, %d) = %d, want %d", tt.tier, tt.momentum, tt.atk, got, tt.want)
		}
	}
}

func TestCompute_TierOrdering(t *testing.T) {
	prev := 0
	for _, tier := range rarity.AllTiers() {
		got := Compute(tier, 50, true, 0)
		if got <= prev {
			t.Errorf("%s XP %d not above previous tier %d", tier, got, prev)
		}
		prev = got
	}
}

func TestApplyChallengeBonus(t *testing.T) {
	tests := []struct {
		xp   int
		ct   challenge.Type
		want int
	}{
		{20, challenge.TypeText, 23},
		{20, challenge.TypeMCQ, 20},
		{0, challenge.TypeText, 0},
		{72, challenge.TypeText, 83},
	}
	for _, tt := range tests {
		if got := ApplyChallengeBonus(tt.xp, tt.ct); got != tt.want {
			t.Errorf("ApplyChallengeBonus(%d, %s) = %d, want %d", tt.xp, tt.ct, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct{ xp, want int }{
		{0, 1}, {99, 1}, {100, 2}, {1234, 13},
	}
	for _, tt := range tests {
		if got := Level(tt.xp); got != tt.want {
			t.Errorf("Level(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}
