package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/srs"
	"github.com/abhisek/flashwiz/internal/store"
)

var testNow = time.Date(2025, time.June, 12, 10, 0, 0, 0, time.UTC)

type fakePool struct {
	decks map[string][]cards.Source
	err   error
	calls int
}

func (f *fakePool) ReviewableSources(_ context.Context, deckID string) ([]cards.Source, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.decks[deckID], nil
}

type fakeProgress struct {
	docs    map[string]progress.Progress
	loadErr error
	saveErr error
	saves   int
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{docs: make(map[string]progress.Progress)}
}

func (f *fakeProgress) LoadProgress(_ context.Context, userID string) (progress.Progress, error) {
	if f.loadErr != nil {
		return progress.Progress{}, f.loadErr
	}
	p, ok := f.docs[userID]
	if !ok {
		p = progress.Default()
		f.docs[userID] = p
	}
	return p.Clone(), nil
}

func (f *fakeProgress) mustLoad(userID string) progress.Progress {
	p, _ := f.LoadProgress(context.Background(), userID)
	return p
}

func (f *fakeProgress) SaveProgress(_ context.Context, userID string, p progress.Progress) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.docs[userID] = p.Clone()
	return nil
}

type fakeSink struct {
	writes map[string]srs.Update
	err    error
}

func newFakeSink() *fakeSink {
	return &fakeSink{writes: make(map[string]srs.Update)}
}

func (f *fakeSink) WriteSRS(_ context.Context, cardID string, u srs.Update) error {
	if f.err != nil {
		return f.err
	}
	f.writes[cardID] = u
	return nil
}

type fakeEvents struct {
	answers []store.AnswerEventData
	battles []store.BattleEventData
}

func (f *fakeEvents) AppendAnswer(_ context.Context, data store.AnswerEventData) error {
	f.answers = append(f.answers, data)
	return nil
}

func (f *fakeEvents) AppendBattle(_ context.Context, data store.BattleEventData) error {
	f.battles = append(f.battles, data)
	return nil
}

// makeDeck returns n well-formed cards with distinct answers.
func makeDeck(n int) []cards.Source {
	out := make([]cards.Source, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, cards.Card{
			ID:    fmt.Sprintf("c%d", i),
			Front: fmt.Sprintf("Question number %d?", i),
			Back:  fmt.Sprintf("Answer %d", i),
		})
	}
	return out
}

type harness struct {
	pool     *fakePool
	progress *fakeProgress
	sink     *fakeSink
	events   *fakeEvents
	session  *Session
}

func newHarness(sources []cards.Source, seed uint64) *harness {
	h := &harness{
		pool:     &fakePool{decks: map[string][]cards.Source{"deck": sources}},
		progress: newFakeProgress(),
		sink:     newFakeSink(),
		events:   &fakeEvents{},
	}
	h.session = NewSession(Deps{
		UserID:   "u1",
		Pool:     h.pool,
		Progress: h.progress,
		SRS:      h.sink,
		Events:   h.events,
		Rand:     NewRand(seed),
		Now:      func() time.Time { return testNow },
	}, DefaultTuning())
	return h
}
