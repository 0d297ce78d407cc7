package battle

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/rarity"
)

func newTestSelector(seed uint64, cfg Config) *Selector {
	return NewSelector(rarity.NewClassifier(rarity.DefaultThresholds()), cfg, NewRand(seed))
}

func TestGenerate_UniqueCards(t *testing.T) {
	sel := newTestSelector(1, DefaultConfig())
	pool := makeDeck(8)

	queue, skipped, err := sel.Generate(pool, progress.Default(), 5)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, queue, 5)

	seen := make(map[string]bool)
	for _, inst := range queue {
		assert.False(t, seen[inst.CardID], "card %s repeated", inst.CardID)
		seen[inst.CardID] = true
		assert.True(t, strings.HasPrefix(inst.CardID, "c"))
		assert.NotEmpty(t, inst.CorrectAnswers)
		assert.True(t, inst.Tier.Valid())
	}
}

func TestGenerate_ShorterBattleWhenPoolSmall(t *testing.T) {
	sel := newTestSelector(2, DefaultConfig())
	queue, _, err := sel.Generate(makeDeck(3), progress.Default(), 5)
	require.NoError(t, err)
	assert.Len(t, queue, 3)
}

func TestGenerate_DefaultCount(t *testing.T) {
	sel := newTestSelector(3, DefaultConfig())
	for _, count := range []int{0, -4} {
		queue, _, err := sel.Generate(makeDeck(9), progress.Default(), count)
		require.NoError(t, err)
		assert.Len(t, queue, DefaultBattleSize)
	}
}

func TestGenerate_SkipsMalformedAndDuplicates(t *testing.T) {
	pool := []cards.Source{
		cards.Card{ID: "ok1", Front: "Q1", Back: "A1"},
		cards.Card{ID: "blank-front", Front: " ", Back: "A"},
		cards.Concept{ID: "blank-answer", Prompt: "Q", Answer: ""},
		nil,
		cards.Card{ID: "ok1", Front: "Q1 again", Back: "A1"},
		cards.Card{ID: "ok2", Front: "Q2", Back: "A2"},
	}
	sel := newTestSelector(4, DefaultConfig())

	queue, skipped, err := sel.Generate(pool, progress.Default(), 5)
	require.NoError(t, err)
	assert.Len(t, queue, 2)
	assert.Len(t, skipped, 4)
	for _, inst := range queue {
		assert.Contains(t, []string{"ok1", "ok2"}, inst.CardID)
		if inst.CardID == "ok1" {
			assert.Equal(t, "Q1", inst.Prompt, "first occurrence wins")
		}
	}
}

func TestGenerate_EmptyPool(t *testing.T) {
	sel := newTestSelector(5, DefaultConfig())

	_, _, err := sel.Generate(nil, progress.Default(), 5)
	assert.True(t, errors.Is(err, ErrEmptyPool))

	_, skipped, err := sel.Generate([]cards.Source{cards.Card{ID: "x"}}, progress.Default(), 5)
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Len(t, skipped, 1)
}

func TestGenerate_LegendaryAlwaysText(t *testing.T) {
	hard := 1.0
	pool := []cards.Source{cards.Concept{ID: "boss", Prompt: "Explain everything", Answer: "42", Difficulty: &hard}}
	pool = append(pool, makeDeck(6)...)

	cfg := DefaultConfig()
	cfg.MCQRatio = 1
	sel := newTestSelector(6, cfg)

	queue, _, err := sel.Generate(pool, progress.Default(), len(pool))
	require.NoError(t, err)

	found := false
	for _, inst := range queue {
		if inst.CardID != "boss" {
			continue
		}
		found = true
		assert.Equal(t, rarity.Legendary, inst.Tier)
		assert.Equal(t, challenge.TypeText, inst.Type)
		assert.Nil(t, inst.Options)
		assert.True(t, inst.IsConcept)
	}
	assert.True(t, found)
}

func TestGenerate_MCQOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MCQRatio = 1
	sel := newTestSelector(7, cfg)

	queue, _, err := sel.Generate(makeDeck(6), progress.Default(), 6)
	require.NoError(t, err)

	for _, inst := range queue {
		require.Equal(t, challenge.TypeMCQ, inst.Type, "card %s", inst.CardID)
		require.Len(t, inst.Options, MaxDistractors+1)
		assert.Contains(t, inst.Options, inst.PrimaryAnswer())

		uniq := make(map[string]bool)
		for _, o := range inst.Options {
			assert.False(t, uniq[o], "duplicate option %q", o)
			uniq[o] = true
		}
		assert.True(t, challenge.CheckAnswer(inst, inst.PrimaryAnswer()))
	}
}

func TestGenerate_MCQFallsBackWithoutDistractors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MCQRatio = 1
	sel := newTestSelector(8, cfg)

	queue, _, err := sel.Generate(makeDeck(3), progress.Default(), 3)
	require.NoError(t, err)
	for _, inst := range queue {
		assert.Equal(t, challenge.TypeText, inst.Type, "only two distractors exist for %s", inst.CardID)
	}
}

func TestGenerate_NoCollidingDistractors(t *testing.T) {
	pool := []cards.Source{
		cards.Card{ID: "a", Front: "Capital of France", Back: "Paris"},
		cards.Card{ID: "b", Front: "City of Light", Back: "paris"},
		cards.Card{ID: "c", Front: "Capital of Spain", Back: "Madrid"},
		cards.Card{ID: "d", Front: "Capital of Italy", Back: "Rome"},
		cards.Card{ID: "e", Front: "Capital of Germany", Back: "Berlin"},
	}
	cfg := DefaultConfig()
	cfg.MCQRatio = 1
	sel := newTestSelector(9, cfg)

	queue, _, err := sel.Generate(pool, progress.Default(), 5)
	require.NoError(t, err)
	for _, inst := range queue {
		if inst.CardID != "a" && inst.CardID != "b" {
			continue
		}
		for _, o := range inst.Options {
			if o == inst.PrimaryAnswer() {
				continue
			}
			assert.NotEqual(t, "paris", strings.ToLower(o), "distractor collides with the answer")
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	pool := makeDeck(12)
	p := progress.Default()
	p.MomentumScore = 72

	first, _, err := newTestSelector(42, DefaultConfig()).Generate(pool, p, 5)
	require.NoError(t, err)
	second, _, err := newTestSelector(42, DefaultConfig()).Generate(pool, p, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_MomentumRaisesTiers(t *testing.T) {
	pool := makeDeck(10)
	low := progress.Default()
	low.MomentumScore = 0
	high := progress.Default()
	high.MomentumScore = 100

	sum := func(p progress.Progress) float64 {
		q, _, err := newTestSelector(11, DefaultConfig()).Generate(pool, p, 10)
		require.NoError(t, err)
		total := 0.0
		for _, inst := range q {
			total += inst.Score
		}
		return total
	}
	assert.Greater(t, sum(high), sum(low))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, DefaultTuning().Validate())

	bad := DefaultConfig()
	bad.MCQRatio = 1.5
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.BattleSize = 0
	assert.Error(t, bad.Validate())

	tuning := DefaultTuning()
	delete(tuning.XP.TierBase, rarity.Epic)
	assert.Error(t, tuning.Validate())
}
