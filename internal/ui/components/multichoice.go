package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// MultiChoice is a numbered option picker. Options are chosen with their
// number key or with the arrows and Enter.
type MultiChoice struct {
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a picker. The correct option is unknown until Reveal.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.choose(m.Selected)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.choose(n - 1)
		}
	}

	return m, nil
}

func (m *MultiChoice) choose(i int) {
	if i < 0 || i >= len(m.Options) {
		return
	}
	m.Submitted = true
	m.ChosenIndex = i
}

// Choice returns the chosen option text, or "" before submission.
func (m MultiChoice) Choice() string {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal marks the option equal to answer as the correct one.
func (m *MultiChoice) Reveal(answer string) {
	m.CorrectIndex = -1
	for i, opt := range m.Options {
		if opt == answer {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		if m.Submitted {
			switch {
			case i == m.CorrectIndex:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case i == m.ChosenIndex:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}

	return s
}

// IsCorrect returns true if the chosen option was revealed as correct.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex >= 0 && m.ChosenIndex == m.CorrectIndex
}
