// Package setup is the goal-setting form: exam date and target score,
// stored on the profile.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/ui/components"
	"github.com/abhisek/prepdeck/internal/ui/theme"
)

const dateLayout = "2006-01-02"

// Model is the setup form.
type Model struct {
	profile *store.ProfileRepo

	dateInput  components.TextInput
	scoreInput components.TextInput
	field      int // 0 = date, 1 = score
	done       bool
	saveErr    error

	targetDate string
	goalScore  int
}

type savedMsg struct{ Err error }

// New creates the form, prefilled from the existing profile when set.
func New(profile *store.ProfileRepo, existing *store.Profile) *Model {
	m := &Model{
		profile:    profile,
		dateInput:  components.NewTextInput("YYYY-MM-DD", true, 10),
		scoreInput: components.NewTextInput("e.g. 1400", true, 4),
	}
	if existing != nil {
		if existing.TargetDate != "" {
			m.dateInput.Model.SetValue(existing.TargetDate)
		}
		if existing.GoalScore > 0 {
			m.scoreInput.Model.SetValue(fmt.Sprintf("%d", existing.GoalScore))
		}
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.dateInput.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saveErr = msg.Err
		m.done = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		}
		if m.done {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.field == 0 {
		m.dateInput, cmd = m.dateInput.Update(msg)
	} else {
		m.scoreInput, cmd = m.scoreInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}

	if m.field == 0 {
		date, err := time.Parse(dateLayout, m.dateInput.Value())
		valid := err == nil && date.After(time.Now())
		m.dateInput.Submit(valid)
		if !valid {
			return m, nil
		}
		m.targetDate = m.dateInput.Value()
		m.field = 1
		return m, m.scoreInput.Init()
	}

	score, err := m.scoreInput.NumericValue()
	valid := err == nil && score >= 400 && score <= 1600
	m.scoreInput.Submit(valid)
	if !valid {
		return m, nil
	}
	m.goalScore = score

	targetDate, goalScore := m.targetDate, m.goalScore
	repo := m.profile
	return m, func() tea.Msg {
		err := repo.Update(context.Background(), store.ProfileUpdate{
			TargetDate: &targetDate,
			GoalScore:  &goalScore,
		})
		return savedMsg{Err: err}
	}
}

func (m *Model) View() tea.View {
	v := tea.NewView("")

	var b strings.Builder
	b.WriteString("\n  " + theme.Title.Render("Study goal") + "\n\n")

	if m.done {
		if m.saveErr != nil {
			b.WriteString("  " + theme.Incorrect.Render("Could not save: "+m.saveErr.Error()) + "\n")
		} else {
			b.WriteString(fmt.Sprintf("  %s\n\n  %s %s\n  %s %s\n",
				theme.Correct.Render("Goal saved."),
				theme.Label.Render("Exam date:"), theme.Value.Render(m.targetDate),
				theme.Label.Render("Target score:"), theme.Value.Render(fmt.Sprintf("%d", m.goalScore))))
		}
		b.WriteString("\n  " + theme.Subtitle.Render("Press any key to exit."))
		v.SetContent(b.String())
		return v
	}

	b.WriteString("  " + theme.Label.Render("Exam date") + "\n")
	b.WriteString("  " + m.dateInput.View() + "\n\n")
	if m.field == 1 {
		b.WriteString("  " + theme.Label.Render("Target score (400-1600)") + "\n")
		b.WriteString("  " + m.scoreInput.View() + "\n\n")
	}
	b.WriteString("  " + theme.Subtitle.Render("enter confirm · esc quit"))

	v.SetContent(b.String())
	return v
}
