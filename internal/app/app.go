package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/router"
	"github.com/abhisek/flashwiz/internal/screen"
	"github.com/abhisek/flashwiz/internal/screens/home"
	"github.com/abhisek/flashwiz/internal/store"
	"github.com/abhisek/flashwiz/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Session *battle.Session
	Decks   store.DeckRepo
	Events  store.EventRepo
	UserID  string

	// Initial is pushed above the deck picker at startup when set.
	Initial screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *battle.Session
	initial screen.Screen
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen at the bottom of
// the stack.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router:  router.New(home.New(opts.Session, opts.Decks, opts.Events, opts.UserID)),
		session: opts.Session,
		initial: opts.Initial,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.initial == nil {
		return cmd
	}
	next := m.initial
	return tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: next} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStats(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) headerStats() layout.HeaderStats {
	if m.session == nil {
		return layout.HeaderStats{}
	}
	p := m.session.Progress()
	return layout.HeaderStats{
		Level:    p.Level,
		Streak:   p.CurrentStreak,
		Momentum: p.MomentumScore,
		Icon:     momentum.StateFor(p.MomentumScore).Icon,
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
