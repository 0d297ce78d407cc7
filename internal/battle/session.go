package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/rarity"
	"github.com/abhisek/flashwiz/internal/srs"
	"github.com/abhisek/flashwiz/internal/store"
)

// Phase represents the current phase of the battle session.
type Phase int

const (
	PhaseEntry  Phase = iota // Choosing a deck
	PhaseBattle              // Answering cards
	PhaseResult              // Showing the battle summary
)

func (p Phase) String() string {
	switch p {
	case PhaseEntry:
		return "entry"
	case PhaseBattle:
		return "battle"
	case PhaseResult:
		return "result"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// persistNotice is shown to the learner when a save fails.
const persistNotice = "Progress could not be saved. Your battle continues."

// Deps are the collaborators of a Session. Events, Logger, Rand and Now are
// optional.
type Deps struct {
	UserID   string
	Pool     CardPool
	Progress ProgressStore
	SRS      SRSSink
	Events   EventRecorder
	Logger   *zap.Logger
	Rand     Rand
	Now      func() time.Time
}

// AnswerResult describes the outcome of one submitted answer.
type AnswerResult struct {
	Instance       challenge.CardInstance
	Answer         string
	Correct        bool
	XPEarned       int
	MomentumBefore int
	MomentumAfter  int
	LevelUp        bool
	Progress       progress.Progress

	// PersistErr is set when progress or SRS state could not be written.
	// The battle continues regardless.
	PersistErr error
}

// Session drives one learner through deck selection, a battle and its result.
// It owns the authoritative in-memory Progress. A Session is not safe for
// concurrent use.
type Session struct {
	userID    string
	pool      CardPool
	store     ProgressStore
	sink      SRSSink
	events    EventRecorder
	logger    *zap.Logger
	now       func() time.Time
	tuning    Tuning
	selector  *Selector
	scheduler *srs.Scheduler

	phase     Phase
	deckID    string
	battleID  string
	queue     []challenge.CardInstance
	sources   map[string]cards.Source
	skipped   []SkippedSource
	index     int
	answered  bool
	results   []AnswerResult
	totalXP   int
	correct   int
	startedAt time.Time

	progress      progress.Progress
	startProgress progress.Progress
	loaded        bool

	// dirty is set while the in-memory progress is ahead of the store.
	dirty bool

	// Notice is a non-fatal message for the learner, such as a failed save.
	Notice string
}

// NewSession creates a session in the entry phase.
func NewSession(deps Deps, tuning Tuning) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	r := deps.Rand
	if r == nil {
		r = NewTimeRand()
	}
	return &Session{
		userID:    deps.UserID,
		pool:      deps.Pool,
		store:     deps.Progress,
		sink:      deps.SRS,
		events:    deps.Events,
		logger:    logger.With(zap.String("user", deps.UserID)),
		now:       now,
		tuning:    tuning,
		selector:  NewSelector(rarity.NewClassifier(tuning.Rarity), tuning.Battle, r),
		scheduler: srs.NewScheduler(),
		phase:     PhaseEntry,
		progress:  progress.Default(),
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// DeckID returns the deck of the current or last battle.
func (s *Session) DeckID() string { return s.deckID }

// BattleID returns the id of the current or last battle.
func (s *Session) BattleID() string { return s.battleID }

// Progress returns a copy of the in-memory progress.
func (s *Session) Progress() progress.Progress { return s.progress.Clone() }

// Queue returns the card instances of the current battle.
func (s *Session) Queue() []challenge.CardInstance { return s.queue }

// Skipped returns the pool entries dropped while building the queue.
func (s *Session) Skipped() []SkippedSource { return s.skipped }

// Index returns the zero-based position of the current card.
func (s *Session) Index() int { return s.index }

// Answered reports whether the current card has been answered.
func (s *Session) Answered() bool { return s.answered }

// TotalXP returns the XP earned so far in this battle.
func (s *Session) TotalXP() int { return s.totalXP }

// CorrectCount returns the correct answers so far in this battle.
func (s *Session) CorrectCount() int { return s.correct }

// LastResult returns the result of the most recent answer, or nil.
func (s *Session) LastResult() *AnswerResult {
	if len(s.results) == 0 {
		return nil
	}
	r := s.results[len(s.results)-1]
	return &r
}

// LoadProgress fetches the learner's progress without starting a battle.
// While an earlier save is outstanding the in-memory copy is kept and the
// save is retried instead.
func (s *Session) LoadProgress(ctx context.Context) (progress.Progress, error) {
	if s.dirty {
		if err := s.flush(ctx); err != nil {
			s.Notice = persistNotice
		}
		return s.progress.Clone(), nil
	}
	p, err := s.store.LoadProgress(ctx, s.userID)
	if err != nil {
		return progress.Progress{}, err
	}
	s.progress = p.Normalize()
	s.loaded = true
	return s.progress.Clone(), nil
}

// Start fetches the deck's pool, loads progress and builds a new queue. On
// any error the session stays in its current phase.
func (s *Session) Start(ctx context.Context, deckID string) error {
	pool, err := s.pool.ReviewableSources(ctx, deckID)
	if err != nil {
		s.logger.Warn("card pool fetch failed", zap.String("deck", deckID), zap.Error(err))
		return &PoolFetchError{DeckID: deckID, Err: err}
	}

	s.Notice = ""
	if s.dirty {
		if err := s.flush(ctx); err != nil {
			s.Notice = persistNotice
		}
	} else if err := s.reload(ctx); err != nil {
		return err
	}

	queue, skipped, err := s.selector.Generate(pool, s.progress, s.tuning.Battle.BattleSize)
	if len(skipped) > 0 {
		s.logger.Info("skipped malformed cards", zap.String("deck", deckID), zap.Int("count", len(skipped)))
	}
	if err != nil {
		return err
	}

	s.sources = make(map[string]cards.Source, len(pool))
	for _, src := range pool {
		if src != nil {
			if _, ok := s.sources[src.SourceID()]; !ok {
				s.sources[src.SourceID()] = src
			}
		}
	}

	s.deckID = deckID
	s.battleID = uuid.NewString()
	s.queue = queue
	s.skipped = skipped
	s.index = 0
	s.answered = false
	s.results = nil
	s.totalXP = 0
	s.correct = 0
	s.startedAt = s.now()
	s.startProgress = s.progress.Clone()
	s.phase = PhaseBattle

	s.logger.Debug("battle started",
		zap.String("battle", s.battleID),
		zap.String("deck", deckID),
		zap.Int("cards", len(queue)),
	)
	return nil
}

// reload replaces the in-memory progress with the stored document. A failure
// is fatal only before the first successful load.
func (s *Session) reload(ctx context.Context) error {
	p, err := s.store.LoadProgress(ctx, s.userID)
	switch {
	case err == nil:
		s.progress = p.Normalize()
		s.loaded = true
	case s.loaded:
		s.logger.Warn("progress reload failed, keeping in-memory copy", zap.Error(err))
		s.Notice = persistNotice
	default:
		return &PersistError{Op: "load progress", Err: err}
	}
	return nil
}

// flush retries saving progress that an earlier save failed to write.
func (s *Session) flush(ctx context.Context) error {
	if err := s.store.SaveProgress(ctx, s.userID, s.progress); err != nil {
		s.logger.Warn("retrying progress save failed", zap.Error(err))
		return &PersistError{Op: "save progress", Err: err}
	}
	s.dirty = false
	return nil
}

// Current returns the card being played.
func (s *Session) Current() (challenge.CardInstance, error) {
	if s.phase != PhaseBattle || s.index >= len(s.queue) {
		return challenge.CardInstance{}, ErrNotInBattle
	}
	return s.queue[s.index], nil
}

// Submit judges answer for the current card, awards XP, updates momentum and
// streak, then persists. Persistence failures are reported in the result and
// in Notice but never returned as the error.
func (s *Session) Submit(ctx context.Context, answer string) (*AnswerResult, error) {
	inst, err := s.Current()
	if err != nil {
		return nil, err
	}
	if s.answered {
		return nil, ErrAlreadyAnswered
	}

	now := s.now()
	before := s.progress
	correct := challenge.CheckAnswer(inst, answer)

	earned := s.tuning.XP.Compute(inst.Tier, before.MomentumScore, correct, inst.Atk)
	earned = s.tuning.XP.ApplyChallengeBonus(earned, inst.Type)

	next := momentum.Apply(before, correct, now, s.tuning.Momentum).AddXP(earned)
	s.progress = next
	s.answered = true
	s.totalXP += earned
	if correct {
		s.correct++
	}

	res := AnswerResult{
		Instance:       inst,
		Answer:         answer,
		Correct:        correct,
		XPEarned:       earned,
		MomentumBefore: before.MomentumScore,
		MomentumAfter:  next.MomentumScore,
		LevelUp:        next.Level > before.Level,
		Progress:       next.Clone(),
	}

	var persistErrs []error
	if err := s.store.SaveProgress(ctx, s.userID, next); err != nil {
		s.dirty = true
		persistErrs = append(persistErrs, &PersistError{Op: "save progress", Err: err})
	} else {
		s.dirty = false
	}
	if err := s.writeSRS(ctx, inst.CardID, correct, now); err != nil {
		persistErrs = append(persistErrs, err)
	}
	if len(persistErrs) > 0 {
		res.PersistErr = errors.Join(persistErrs...)
		s.Notice = persistNotice
		s.logger.Warn("persist after answer failed",
			zap.String("battle", s.battleID),
			zap.String("card", inst.CardID),
			zap.Error(res.PersistErr),
		)
	}

	s.recordAnswer(ctx, res, now)
	s.results = append(s.results, res)
	return &res, nil
}

// writeSRS schedules the next review for deck cards. Concepts are skipped.
func (s *Session) writeSRS(ctx context.Context, cardID string, correct bool, now time.Time) error {
	src, ok := s.sources[cardID]
	if !ok || !src.HasIndependentSRS() || s.sink == nil {
		return nil
	}

	var cur cards.SRS
	if c, ok := src.(srsCarrier); ok {
		cur = c.CurrentSRS()
	}
	u := s.scheduler.Review(cur, correct, now)
	if err := s.sink.WriteSRS(ctx, cardID, u); err != nil {
		return &PersistError{Op: "write srs", Err: err}
	}

	if card, ok := src.(cards.Card); ok {
		card.SRS = u.Apply(card.SRS)
		s.sources[cardID] = card
	}
	return nil
}

type srsCarrier interface {
	CurrentSRS() cards.SRS
}

// Advance moves to the next card, or to the result phase after the last one.
func (s *Session) Advance(ctx context.Context) error {
	if s.phase != PhaseBattle {
		return ErrNotInBattle
	}
	if !s.answered {
		return ErrNotAnswered
	}

	s.index++
	s.answered = false
	if s.index < len(s.queue) {
		return nil
	}

	s.phase = PhaseResult
	s.recordBattle(ctx)
	return nil
}

// BattleAgain starts a fresh battle from the same deck.
func (s *Session) BattleAgain(ctx context.Context) error {
	if s.deckID == "" {
		return ErrNotInBattle
	}
	return s.Start(ctx, s.deckID)
}

// Home returns to deck selection. Progress already saved is kept.
func (s *Session) Home() {
	s.phase = PhaseEntry
	s.queue = nil
	s.sources = nil
	s.skipped = nil
	s.index = 0
	s.answered = false
	s.Notice = ""
}

// Summary builds the result of the current or last battle.
func (s *Session) Summary() *Summary {
	return buildSummary(s)
}

func (s *Session) recordAnswer(ctx context.Context, res AnswerResult, now time.Time) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswer(ctx, store.AnswerEventData{
		BattleID:       s.battleID,
		UserID:         s.userID,
		DeckID:         s.deckID,
		CardID:         res.Instance.CardID,
		IsConcept:      res.Instance.IsConcept,
		Tier:           string(res.Instance.Tier),
		ChallengeType:  string(res.Instance.Type),
		Correct:        res.Correct,
		XPEarned:       res.XPEarned,
		MomentumBefore: res.MomentumBefore,
		MomentumAfter:  res.MomentumAfter,
		AnsweredAt:     now,
	})
	if err != nil {
		s.logger.Warn("append answer event failed", zap.Error(err))
	}
}

func (s *Session) recordBattle(ctx context.Context) {
	if s.events == nil {
		return
	}
	sum := s.Summary()
	err := s.events.AppendBattle(ctx, store.BattleEventData{
		BattleID:      s.battleID,
		UserID:        s.userID,
		DeckID:        s.deckID,
		Cards:         sum.TotalCards,
		Answered:      sum.Answered,
		Correct:       sum.Correct,
		XPEarned:      sum.TotalXP,
		LevelBefore:   sum.LevelBefore,
		LevelAfter:    sum.LevelAfter,
		MomentumStart: sum.MomentumStart,
		MomentumEnd:   sum.MomentumEnd,
		DurationSecs:  int(sum.Duration.Seconds()),
	})
	if err != nil {
		s.logger.Warn("append battle event failed", zap.Error(err))
	}
}
