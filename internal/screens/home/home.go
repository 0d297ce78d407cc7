package home

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	wiz "github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/router"
	"github.com/abhisek/flashwiz/internal/screen"
	battlescreen "github.com/abhisek/flashwiz/internal/screens/battle"
	"github.com/abhisek/flashwiz/internal/screens/history"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/abhisek/flashwiz/internal/ui/components"
	"github.com/abhisek/flashwiz/internal/ui/layout"
)

// decksLoadedMsg carries the deck list loaded in the background.
type decksLoadedMsg struct {
	Decks []store.DeckInfo
	Err   error
}

// HomeScreen is the deck picker. Choosing a deck starts a battle.
type HomeScreen struct {
	session  *wiz.Session
	deckRepo store.DeckRepo
	events   store.EventRepo
	userID   string

	menu   components.Menu
	decks  []store.DeckInfo
	loaded bool
	errMsg string
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. The learner's progress is loaded up front so
// the header and stats show real values.
func New(session *wiz.Session, deckRepo store.DeckRepo, events store.EventRepo, userID string) *HomeScreen {
	h := &HomeScreen{
		session:  session,
		deckRepo: deckRepo,
		events:   events,
		userID:   userID,
	}
	if _, err := session.LoadProgress(context.Background()); err != nil {
		h.notice = "Couldn't load your progress. Battles can't start until it loads."
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deckRepo
	return func() tea.Msg {
		decks, err := repo.ListDecks(context.Background())
		return decksLoadedMsg{Decks: decks, Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Choose a Deck"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Battle"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.decks = msg.Decks
		h.menu = components.NewMenu(h.menuItems())
		return h, nil
	case tea.KeyMsg:
		h.notice = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)
	p := h.session.Progress()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(MascotFor(p.MomentumScore), cw))
	}
	sections = append(sections, renderStatsBar(p, cw, compact))

	switch {
	case h.errMsg != "":
		sections = append(sections, "Couldn't list decks: "+h.errMsg)
	case !h.loaded:
		sections = append(sections, "Loading decks...")
	default:
		sections = append(sections, renderDeckMenu(h.menu, cw, len(h.decks) == 0))
	}

	if h.notice != "" {
		sections = append(sections, layout.RenderBanner(h.notice, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.decks)+2)
	for _, d := range h.decks {
		deckID := d.ID
		items = append(items, components.MenuItem{
			Label: d.Name,
			Hint:  fmt.Sprintf("%d cards · %d concepts", d.Cards, d.Concepts),
			Action: func() tea.Cmd {
				return h.startBattle(deckID)
			},
		})
	}
	items = append(items,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.events, h.deckRepo, h.userID)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

// startBattle runs inside Update so the session is never touched from a
// command goroutine.
func (h *HomeScreen) startBattle(deckID string) tea.Cmd {
	if err := h.session.Start(context.Background(), deckID); err != nil {
		h.notice = startError(err)
		return nil
	}
	next := battlescreen.New(h.session)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

// startError turns a Start failure into a message for the learner.
func startError(err error) string {
	var poolErr *wiz.PoolFetchError
	var persistErr *wiz.PersistError
	switch {
	case errors.Is(err, wiz.ErrEmptyPool):
		return "This deck has no playable cards yet."
	case errors.As(err, &poolErr):
		return "Couldn't load cards for this deck. Try again."
	case errors.As(err, &persistErr):
		return "Couldn't load your progress. Try again."
	default:
		return err.Error()
	}
}
