package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/router"
	"github.com/abhisek/flashwiz/internal/screen"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/abhisek/flashwiz/internal/ui/layout"
	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// historyLimit is how many recent battles are listed.
const historyLimit = 50

type historyLoadedMsg struct {
	Battles   []store.BattleEvent
	DeckNames map[string]string // deckID → name
	Err       error
}

// HistoryScreen lists past battles, newest first.
type HistoryScreen struct {
	events    store.EventRepo
	decks     store.DeckRepo
	userID    string
	battles   []store.BattleEvent
	deckNames map[string]string
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo, decks store.DeckRepo, userID string) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		decks:    decks,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events, decks, userID := s.events, s.decks, s.userID
	return func() tea.Msg {
		ctx := context.Background()

		battles, err := events.RecentBattles(ctx, userID, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Deleted decks just show their id.
		names := make(map[string]string)
		if infos, err := decks.ListDecks(ctx); err == nil {
			for _, d := range infos {
				names[d.ID] = d.Name
			}
		}

		return historyLoadedMsg{Battles: battles, DeckNames: names}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.battles = msg.Battles
			s.deckNames = msg.DeckNames
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.battles)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.battles) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No battles yet. Pick a deck and fight!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, bt := range s.battles {
		dateStr := bt.Timestamp.Local().Format("Jan 02, 2006 15:04")
		durationStr := fmt.Sprintf("%d:%02d", bt.DurationSecs/60, bt.DurationSecs%60)

		var accuracy float64
		if bt.Answered > 0 {
			accuracy = float64(bt.Correct) / float64(bt.Answered) * 100
		}

		deck := s.deckNames[bt.DeckID]
		if deck == "" {
			deck = bt.DeckID
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-16s %s  %d/%d  %.0f%%  +%d XP",
			prefix, dateStr, truncate(deck, 16), durationStr, bt.Correct, bt.Answered, accuracy, bt.XPEarned)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detailLine(bt))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// detailLine describes level and momentum movement for one battle.
func detailLine(bt store.BattleEvent) string {
	start := momentum.StateFor(bt.MomentumStart)
	end := momentum.StateFor(bt.MomentumEnd)
	level := fmt.Sprintf("Level %d", bt.LevelAfter)
	if bt.LevelAfter > bt.LevelBefore {
		level = fmt.Sprintf("Level %d → %d", bt.LevelBefore, bt.LevelAfter)
	}
	return fmt.Sprintf("    %s   Momentum %s %d → %s %d   %d cards",
		level, start.Icon, bt.MomentumStart, end.Icon, bt.MomentumEnd, bt.Cards)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
