package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashwiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for typed answers.
type TextInput struct {
	Model     textinput.Model
	submitted bool
	correct   bool
}

// NewTextInput creates a focused answer input. limit caps the rune count when
// positive.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the input until an answer is submitted.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input with a verdict mark once submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submitted reports whether Submit was called.
func (t TextInput) Submitted() bool {
	return t.submitted
}

// Submit freezes the input and records the verdict.
func (t *TextInput) Submit(correct bool) {
	t.submitted = true
	t.correct = correct
	t.Model.Blur()
}
