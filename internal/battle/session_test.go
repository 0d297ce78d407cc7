package battle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/xp"
)

func playAll(t *testing.T, s *Session, answer func(challenge.CardInstance) string) []*AnswerResult {
	t.Helper()
	ctx := context.Background()
	var results []*AnswerResult
	for s.Phase() == PhaseBattle {
		inst, err := s.Current()
		require.NoError(t, err)
		res, err := s.Submit(ctx, answer(inst))
		require.NoError(t, err)
		results = append(results, res)
		require.NoError(t, s.Advance(ctx))
	}
	return results
}

func TestSession_FullBattleAllCorrect(t *testing.T) {
	h := newHarness(makeDeck(5), 1)
	s := h.session
	ctx := context.Background()

	require.NoError(t, s.Start(ctx, "deck"))
	require.Equal(t, PhaseBattle, s.Phase())
	require.Len(t, s.Queue(), 5)

	seen := make(map[string]bool)
	for _, inst := range s.Queue() {
		assert.False(t, seen[inst.CardID])
		seen[inst.CardID] = true
	}

	table := xp.DefaultTable()
	expected := 0
	for s.Phase() == PhaseBattle {
		inst, err := s.Current()
		require.NoError(t, err)
		momentumBefore := s.Progress().MomentumScore
		expected += table.ApplyChallengeBonus(table.Compute(inst.Tier, momentumBefore, true, inst.Atk), inst.Type)

		res, err := s.Submit(ctx, inst.PrimaryAnswer())
		require.NoError(t, err)
		assert.True(t, res.Correct)
		assert.NoError(t, res.PersistErr)
		require.NoError(t, s.Advance(ctx))
	}

	assert.Equal(t, PhaseResult, s.Phase())
	assert.Equal(t, 5, s.CorrectCount())
	assert.Equal(t, expected, s.TotalXP())

	sum := s.Summary()
	assert.Equal(t, expected, sum.TotalXP)
	assert.Equal(t, 5, sum.Correct)
	assert.Equal(t, 5, sum.TotalCards)
	assert.InDelta(t, 1.0, sum.Accuracy, 1e-9)

	saved := h.progress.docs["u1"]
	assert.Equal(t, expected, saved.XP)
	assert.Equal(t, 1, saved.CurrentStreak)
	assert.Len(t, saved.RecentAnswers, 5)
	assert.Len(t, h.sink.writes, 5)
	assert.Len(t, h.events.answers, 5)
	require.Len(t, h.events.battles, 1)
	assert.Equal(t, expected, h.events.battles[0].XPEarned)
}

func TestSession_WrongAnswers(t *testing.T) {
	h := newHarness(makeDeck(4), 2)
	s := h.session
	ctx := context.Background()

	p := h.progress.mustLoad("u1")
	p.CurrentStreak = 6
	p.LastActiveDate = "2025-06-11"
	h.progress.docs["u1"] = p

	require.NoError(t, s.Start(ctx, "deck"))
	results := playAll(t, s, func(challenge.CardInstance) string { return "definitely wrong" })

	require.Len(t, results, 4)
	for _, r := range results {
		assert.False(t, r.Correct)
		assert.Zero(t, r.XPEarned)
	}
	p = s.Progress()
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 3, p.CurrentStreak, "day streak 7 minus four misses")
	assert.InDelta(t, 0.0, p.RollingAccuracy, 1e-9)
	assert.Equal(t, 0, s.Summary().TotalXP)
}

func TestSession_PoolFetchFailure(t *testing.T) {
	h := newHarness(nil, 3)
	h.pool.err = errors.New("network down")

	err := h.session.Start(context.Background(), "deck")
	var pfe *PoolFetchError
	require.True(t, errors.As(err, &pfe))
	assert.Equal(t, "deck", pfe.DeckID)
	assert.Equal(t, PhaseEntry, h.session.Phase())
	assert.Zero(t, h.progress.saves)
}

func TestSession_EmptyPool(t *testing.T) {
	h := newHarness([]cards.Source{cards.Card{ID: "broken"}}, 4)
	err := h.session.Start(context.Background(), "deck")
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Equal(t, PhaseEntry, h.session.Phase())
}

func TestSession_InitialLoadFailure(t *testing.T) {
	h := newHarness(makeDeck(5), 5)
	h.progress.loadErr = errors.New("disk gone")

	err := h.session.Start(context.Background(), "deck")
	var pe *PersistError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, PhaseEntry, h.session.Phase())
}

func TestSession_PersistFailureIsNonFatal(t *testing.T) {
	h := newHarness(makeDeck(5), 6)
	s := h.session
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "deck"))

	h.progress.saveErr = errors.New("quota exceeded")
	h.sink.err = errors.New("quota exceeded")

	inst, err := s.Current()
	require.NoError(t, err)
	res, err := s.Submit(ctx, inst.PrimaryAnswer())
	require.NoError(t, err)
	require.Error(t, res.PersistErr)

	var pe *PersistError
	assert.True(t, errors.As(res.PersistErr, &pe))
	assert.NotEmpty(t, s.Notice)
	assert.Equal(t, res.XPEarned, s.Progress().XP, "in-memory progress is the new baseline")

	require.NoError(t, s.Advance(ctx))
	assert.Equal(t, PhaseBattle, s.Phase())

	h.progress.saveErr = nil
	h.sink.err = nil
	playAll(t, s, func(i challenge.CardInstance) string { return i.PrimaryAnswer() })
	assert.Equal(t, s.Progress().XP, h.progress.docs["u1"].XP, "later saves carry the earlier XP")
}

func TestSession_BattleAgainKeepsUnsavedProgress(t *testing.T) {
	h := newHarness(makeDeck(5), 6)
	s := h.session
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "deck"))

	h.progress.saveErr = errors.New("quota exceeded")
	playAll(t, s, func(i challenge.CardInstance) string { return i.PrimaryAnswer() })
	earned := s.Progress().XP
	require.Positive(t, earned)
	require.Zero(t, h.progress.docs["u1"].XP, "nothing reached the store")

	require.NoError(t, s.BattleAgain(ctx))
	assert.Equal(t, earned, s.Progress().XP, "xp never decreases across battles")
	assert.NotEmpty(t, s.Notice, "save is still failing")

	h.progress.saveErr = nil
	require.NoError(t, s.BattleAgain(ctx))
	assert.Equal(t, earned, s.Progress().XP)
	assert.Empty(t, s.Notice)
	assert.Equal(t, earned, h.progress.docs["u1"].XP, "retried save reached the store")

	p, err := s.LoadProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, earned, p.XP)
}

func TestSession_LoadProgressKeepsUnsavedProgress(t *testing.T) {
	h := newHarness(makeDeck(5), 11)
	s := h.session
	ctx := context.Background()
	require.NoError(t, s.Start(ctx, "deck"))

	h.progress.saveErr = errors.New("disk full")
	inst, err := s.Current()
	require.NoError(t, err)
	_, err = s.Submit(ctx, inst.PrimaryAnswer())
	require.NoError(t, err)
	earned := s.Progress().XP
	require.Positive(t, earned)

	p, err := s.LoadProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, earned, p.XP)
	assert.Equal(t, earned, s.Progress().XP)
}

func TestSession_ConceptsSkipSRSWriteback(t *testing.T) {
	pool := []cards.Source{
		cards.Card{ID: "card", Front: "Card question", Back: "card answer"},
		cards.Concept{ID: "concept", Prompt: "Concept question", Answer: "concept answer"},
	}
	h := newHarness(pool, 7)
	require.NoError(t, h.session.Start(context.Background(), "deck"))
	playAll(t, h.session, func(i challenge.CardInstance) string { return i.PrimaryAnswer() })

	require.Len(t, h.sink.writes, 1)
	u, ok := h.sink.writes["card"]
	require.True(t, ok)
	assert.Equal(t, 1, u.ReviewCount)
	assert.True(t, u.LastReview.Equal(testNow))
}

func TestSession_PhaseGuards(t *testing.T) {
	h := newHarness(makeDeck(5), 8)
	s := h.session
	ctx := context.Background()

	_, err := s.Submit(ctx, "x")
	assert.ErrorIs(t, err, ErrNotInBattle)
	assert.ErrorIs(t, s.Advance(ctx), ErrNotInBattle)
	assert.ErrorIs(t, s.BattleAgain(ctx), ErrNotInBattle)

	require.NoError(t, s.Start(ctx, "deck"))
	assert.ErrorIs(t, s.Advance(ctx), ErrNotAnswered)

	_, err = s.Submit(ctx, "x")
	require.NoError(t, err)
	_, err = s.Submit(ctx, "x")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSession_BattleAgainAndHome(t *testing.T) {
	h := newHarness(makeDeck(8), 9)
	s := h.session
	ctx := context.Background()

	require.NoError(t, s.Start(ctx, "deck"))
	firstID := s.BattleID()
	playAll(t, s, func(i challenge.CardInstance) string { return i.PrimaryAnswer() })
	require.Equal(t, PhaseResult, s.Phase())
	xpAfterFirst := s.Progress().XP

	require.NoError(t, s.BattleAgain(ctx))
	assert.Equal(t, PhaseBattle, s.Phase())
	assert.NotEqual(t, firstID, s.BattleID())
	assert.Zero(t, s.TotalXP())
	assert.Zero(t, s.CorrectCount())
	assert.Zero(t, s.Index())
	assert.Equal(t, 2, h.pool.calls)
	assert.Equal(t, xpAfterFirst, s.Progress().XP, "progress carries across battles")

	s.Home()
	assert.Equal(t, PhaseEntry, s.Phase())
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotInBattle)
}

func TestSession_SameSeedSameQueue(t *testing.T) {
	a := newHarness(makeDeck(10), 77)
	b := newHarness(makeDeck(10), 77)
	ctx := context.Background()

	require.NoError(t, a.session.Start(ctx, "deck"))
	require.NoError(t, b.session.Start(ctx, "deck"))
	assert.Equal(t, a.session.Queue(), b.session.Queue())
}

func TestSession_LevelUp(t *testing.T) {
	h := newHarness(makeDeck(5), 10)
	p := h.progress.mustLoad("u1")
	p.XP = 99
	p.Level = 1
	h.progress.docs["u1"] = p

	s := h.session
	require.NoError(t, s.Start(context.Background(), "deck"))
	inst, err := s.Current()
	require.NoError(t, err)
	res, err := s.Submit(context.Background(), inst.PrimaryAnswer())
	require.NoError(t, err)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 2, res.Progress.Level)

	playAll(t, s, func(i challenge.CardInstance) string { return i.PrimaryAnswer() })
	assert.True(t, s.Summary().LeveledUp())
}
