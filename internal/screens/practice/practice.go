// Package practice is the interactive question screen: it walks through
// a started session one question at a time, revealing the answer and
// the earned progress after each submission.
package practice

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/prepdeck/internal/session"
	"github.com/abhisek/prepdeck/internal/store"
	"github.com/abhisek/prepdeck/internal/ui/components"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseDone
)

// Model runs one practice or placement session.
type Model struct {
	svc       *session.Service
	practice  *session.Practice
	placement bool

	index       int
	choice      components.MultiChoice
	showHint    bool
	phase       phase
	result      *session.Result
	questionAt  time.Time
	correct     int
	xpEarned    int
	placedLevel int
	err         error

	width  int
	height int
}

// New creates a screen over an already started session.
func New(svc *session.Service, p *session.Practice, placement bool) *Model {
	m := &Model{svc: svc, practice: p, placement: placement}
	if len(p.Questions) > 0 {
		m.choice = newChoice(&p.Questions[0])
	} else {
		m.phase = phaseDone
	}
	m.questionAt = time.Now()
	return m
}

func newChoice(q *store.Question) components.MultiChoice {
	return components.NewMultiChoice(q.Content, q.Options, q.CorrectIndex)
}

func (m *Model) current() *store.Question {
	if m.index >= len(m.practice.Questions) {
		return nil
	}
	return &m.practice.Questions[m.index]
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case answerResultMsg:
		return m.handleResult(msg)

	case placementDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err
		}
		m.placedLevel = msg.Level
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseDone:
		return m, tea.Quit

	case phaseFeedback:
		return m.advance()

	case phaseAnswering:
		if key == "esc" {
			return m, tea.Quit
		}
		if key == "h" && !m.placement && m.current() != nil && m.current().Hint != "" {
			m.showHint = !m.showHint
			return m, nil
		}

		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			return m.submit()
		}
		return m, cmd
	}

	return m, nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	q := m.current()
	if q == nil {
		return m, tea.Quit
	}
	selected := m.choice.ChosenIndex
	elapsed := time.Since(m.questionAt)

	if m.choice.IsCorrect() {
		m.correct++
	}
	m.phase = phaseFeedback

	if m.placement {
		// Placement only calibrates; it never touches schedules or XP.
		return m, nil
	}

	question := *q
	svc := m.svc
	return m, func() tea.Msg {
		res, err := svc.Submit(context.Background(), &question, selected, elapsed, time.Now())
		return answerResultMsg{Result: res, Err: err}
	}
}

func (m *Model) handleResult(msg answerResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.result = msg.Result
	if msg.Result.Outcome != nil {
		m.xpEarned += msg.Result.Outcome.XPAwarded
	}
	return m, nil
}

func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	m.result = nil
	m.showHint = false

	if q := m.current(); q != nil {
		m.choice = newChoice(q)
		m.questionAt = time.Now()
		m.phase = phaseAnswering
		return m, nil
	}

	m.phase = phaseDone
	if m.placement {
		svc := m.svc
		correct, total := m.correct, len(m.practice.Questions)
		return m, func() tea.Msg {
			level, err := svc.FinishPlacement(context.Background(), correct, total)
			return placementDoneMsg{Level: level, Err: err}
		}
	}
	return m, nil
}

// Correct returns how many questions were answered correctly.
func (m *Model) Correct() int {
	return m.correct
}
