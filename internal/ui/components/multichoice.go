package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E"}

// MultiChoice is a multiple-choice answer selector.
type MultiChoice struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector with nothing chosen yet.
func NewMultiChoice(prompt string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update handles navigation and selection. Once submitted the selector
// freezes so the reveal cannot be changed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d", "e":
		idx := int(kmsg.String()[0] - 'a')
		if idx < len(m.Options) {
			m.Selected = idx
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	}

	return m, nil
}

// View renders the options. After submission the correct answer is shown
// green and a wrong pick red.
func (m MultiChoice) View() string {
	s := theme.Body.Bold(true).Render(m.Prompt) + "\n\n"

	for i, opt := range m.Options {
		label := choiceLabels[i%len(choiceLabels)]
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case m.Submitted && i == m.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += theme.Subtitle.Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

// IsCorrect reports whether the submitted choice was right.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
