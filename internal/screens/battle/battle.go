package battle

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	wiz "github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/router"
	"github.com/abhisek/flashwiz/internal/screen"
	"github.com/abhisek/flashwiz/internal/ui/components"
	"github.com/abhisek/flashwiz/internal/ui/layout"
)

// BattleScreen drives a started battle through its cards and shows the
// result once the last card is answered. Every session call happens inside
// Update.
type BattleScreen struct {
	session *wiz.Session
	current challenge.CardInstance
	input   components.TextInput
	choice  components.MultiChoice
	result  *wiz.AnswerResult
	summary *wiz.Summary
	errMsg  string
}

var _ screen.Screen = (*BattleScreen)(nil)
var _ screen.KeyHintProvider = (*BattleScreen)(nil)
var _ screen.Leaver = (*BattleScreen)(nil)

// New creates a BattleScreen for a session that has already been started.
func New(session *wiz.Session) *BattleScreen {
	s := &BattleScreen{session: session}
	s.prepare()
	return s
}

func (s *BattleScreen) Init() tea.Cmd {
	if s.summary == nil && s.current.Type == challenge.TypeText {
		return s.input.Init()
	}
	return nil
}

func (s *BattleScreen) Title() string {
	if s.summary != nil {
		return "Battle Result"
	}
	return "Battle"
}

func (s *BattleScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.summary != nil:
		return []layout.KeyHint{
			{Key: "B", Description: "Battle again"},
			{Key: "H", Description: "Home"},
		}
	case s.result != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next card"},
			{Key: "Esc", Description: "Leave battle"},
		}
	case s.current.Type == challenge.TypeMCQ:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Esc", Description: "Leave battle"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave battle"},
		}
	}
}

// Leave abandons the battle when the screen is popped. Answers already given
// stay saved.
func (s *BattleScreen) Leave() {
	s.session.Home()
}

func (s *BattleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.summary == nil && s.result == nil && s.current.Type == challenge.TypeText {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch {
	case s.summary != nil:
		return s.handleResultKey(kmsg)
	case s.result != nil:
		return s.handleFeedbackKey(kmsg)
	default:
		return s.handleAnswerKey(kmsg)
	}
}

func (s *BattleScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.current.Type == challenge.TypeMCQ {
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submit(s.choice.Choice())
		}
		return s, nil
	}

	if msg.String() == "enter" {
		if strings.TrimSpace(s.input.Value()) == "" {
			return s, nil
		}
		return s.submit(s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *BattleScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	res, err := s.session.Submit(context.Background(), answer)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.result = res
	if s.current.Type == challenge.TypeMCQ {
		for _, a := range s.current.CorrectAnswers {
			s.choice.Reveal(a)
			if s.choice.CorrectIndex >= 0 {
				break
			}
		}
	} else {
		s.input.Submit(res.Correct)
	}
	return s, nil
}

func (s *BattleScreen) handleFeedbackKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "space", " ", "n":
	default:
		return s, nil
	}

	if err := s.session.Advance(context.Background()); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.prepare()
	return s, s.Init()
}

func (s *BattleScreen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "b", "B", "enter":
		if err := s.session.BattleAgain(context.Background()); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		next := New(s.session)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "h", "H":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// prepare loads the card to play, or the summary once the battle is over.
func (s *BattleScreen) prepare() {
	s.result = nil
	s.errMsg = ""

	inst, err := s.session.Current()
	if err != nil {
		s.summary = s.session.Summary()
		return
	}

	s.summary = nil
	s.current = inst
	if inst.Type == challenge.TypeMCQ {
		s.choice = components.NewMultiChoice(inst.Options)
	} else {
		s.input = components.NewTextInput("Type your answer...", 200)
	}
}
