package practice

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepdeck/internal/leveling"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	width := m.width
	if width <= 0 {
		width = 80
	}

	switch {
	case m.err != nil:
		v.SetContent(theme.Incorrect.Render(
			fmt.Sprintf("\n  Error: %s\n\n  Press any key to exit.", m.err)))
	case m.phase == phaseDone:
		v.SetContent(m.renderSummary(width))
	default:
		v.SetContent(m.renderQuestion(width))
	}
	return v
}

func (m *Model) renderQuestion(width int) string {
	q := m.current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	total := len(m.practice.Questions)
	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Question %d/%d", m.index+1, total),
		Percent: float64(m.index) / float64(total),
		Width:   min(width-4, 60),
	}
	b.WriteString("  " + bar.View() + "\n")
	b.WriteString("  " + theme.Subtitle.Render(
		fmt.Sprintf("%s · %s", q.Topic, q.Subtopic)) + "\n\n")

	if q.Passage != "" {
		passage := lipgloss.NewStyle().
			Width(min(width-8, 72)).
			Foreground(theme.TextDim).
			Render(q.Passage)
		b.WriteString(indent(passage, 2) + "\n\n")
	}

	b.WriteString(indent(m.choice.View(), 2) + "\n")

	if m.phase == phaseFeedback {
		b.WriteString(m.renderFeedback(width))
		return b.String()
	}

	if m.showHint && q.Hint != "" {
		b.WriteString("  " + theme.Hint.Render("Hint: "+q.Hint) + "\n\n")
	}

	footer := "↑↓ select · enter submit · esc quit"
	if !m.placement && q.Hint != "" {
		footer = "↑↓ select · enter submit · h hint · esc quit"
	}
	b.WriteString("  " + theme.Subtitle.Render(footer))
	return b.String()
}

func (m *Model) renderFeedback(width int) string {
	q := m.current()
	var b strings.Builder

	if m.choice.IsCorrect() {
		b.WriteString("  " + theme.Correct.Render("Correct!"))
	} else {
		b.WriteString("  " + theme.Incorrect.Render("Not quite"))
	}

	if m.result != nil && m.result.Outcome != nil {
		out := m.result.Outcome
		if out.XPAwarded > 0 {
			b.WriteString("  " + theme.Body.Render(fmt.Sprintf("+%d XP", out.XPAwarded)))
		}
		if out.StreakBonus > 0 {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(
				fmt.Sprintf("(streak day %d bonus +%d)", out.Streak, out.StreakBonus)))
		}
	}
	b.WriteString("\n\n")

	if !m.placement && q != nil && q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 72)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(indent(exp, 2) + "\n\n")
	}

	b.WriteString("  " + theme.Subtitle.Render("Press any key to continue..."))
	return b.String()
}

func (m *Model) renderSummary(width int) string {
	var b strings.Builder
	total := len(m.practice.Questions)

	b.WriteString("\n  " + theme.Title.Render("Session complete") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		theme.Label.Render("Correct:"),
		theme.Value.Render(fmt.Sprintf("%d / %d", m.correct, total))))

	if m.placement {
		if m.placedLevel > 0 {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				theme.Label.Render("Starting level:"),
				theme.Value.Render(fmt.Sprintf("%d · %s",
					m.placedLevel, leveling.LevelName(m.placedLevel)))))
		}
	} else if m.xpEarned > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			theme.Label.Render("XP earned:"),
			theme.Value.Render(fmt.Sprintf("+%d", m.xpEarned))))
	}

	b.WriteString("\n  " + theme.Subtitle.Render("Press any key to exit."))
	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
