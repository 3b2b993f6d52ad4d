// Package tui is the terminal front end of the quiz, built on Bubble Tea.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/nav"
	"github.com/pavelanni/quizflow/internal/quiz"
)

// screen is one entry of the navigator stack.
type screen interface {
	view(m Model) string
}

type questionScreen struct {
	flow   *quiz.Flow
	cursor int
}

func (s *questionScreen) view(m Model) string {
	return renderQuestion(m.title, s, m.keys, m.noColor)
}

type summaryScreen struct {
	card      quiz.Scorecard
	attemptID string
	recordErr error
}

func (s *summaryScreen) view(m Model) string {
	return renderSummary(m.title, s, m.keys, m.noColor)
}

// Options configures the terminal model.
type Options struct {
	Title    string
	NoColor  bool
	Recorder quiz.Recorder // nil disables recording
	Now      func() time.Time
}

// attempt tracks the run in progress. Model copies share it.
type attempt struct {
	recorder  quiz.Recorder
	now       func() time.Time
	startedAt time.Time
}

// Model is the Bubble Tea model for one terminal quiz run.
type Model struct {
	title   string
	bank    []model.Question
	nav     *nav.Navigator[screen]
	keys    keyMap
	noColor bool
	attempt *attempt
	err     error
}

// NewModel validates the bank and opens its first question.
func NewModel(bank []model.Question, opts Options) (Model, error) {
	if opts.Title == "" {
		opts.Title = "Quiz"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &attempt{recorder: opts.Recorder, now: opts.Now}
	m := Model{
		title:   opts.Title,
		bank:    bank,
		nav:     newNavigator(a),
		keys:    defaultKeys(),
		noColor: opts.NoColor,
		attempt: a,
	}
	if err := m.start(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func newNavigator(a *attempt) *nav.Navigator[screen] {
	n := nav.New[screen]()
	n.Register(quiz.ScreenQuestion, func(params any) (screen, error) {
		s, ok := params.(model.Session)
		if !ok {
			return nil, fmt.Errorf("unexpected params %T", params)
		}
		return &questionScreen{flow: quiz.NewFlow(s)}, nil
	})
	n.Register(quiz.ScreenSummary, func(params any) (screen, error) {
		s, ok := params.(model.Session)
		if !ok {
			return nil, fmt.Errorf("unexpected params %T", params)
		}
		return a.summary(s), nil
	})
	return n
}

func (m Model) start() error {
	session, err := quiz.NewSession(m.bank)
	if err != nil {
		return err
	}
	m.attempt.startedAt = m.attempt.now()
	_, err = m.nav.Navigate(quiz.ScreenQuestion, session)
	return err
}

// summary scores the finished list and records it when a recorder is set.
func (a *attempt) summary(s model.Session) *summaryScreen {
	card := quiz.Score(s.Questions)
	sc := &summaryScreen{card: card}
	if a.recorder == nil {
		return sc
	}
	rec := quiz.NewAttempt(card, model.SourceTerminal, a.startedAt, a.now())
	id, err := a.recorder.RecordAttempt(rec)
	if err != nil {
		slog.Error("failed to record attempt", "error", err)
		sc.recordErr = err
		return sc
	}
	sc.attemptID = id
	return sc
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses for the screen on top of the stack.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return m, tea.Quit
	}

	entry, ok := m.nav.Current()
	if !ok {
		return m, tea.Quit
	}
	switch s := entry.View.(type) {
	case *questionScreen:
		return m.updateQuestion(s, keyMsg)
	case *summaryScreen:
		if key.Matches(keyMsg, m.keys.Again) {
			if err := m.start(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) updateQuestion(s *questionScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(s.flow.Question().Choices)
	switch {
	case key.Matches(msg, m.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if s.cursor < n-1 {
			s.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		s.flow.Select(s.cursor)
	case key.Matches(msg, m.keys.Pick):
		i := int(msg.Runes[0] - '1')
		if i < n {
			s.cursor = i
			s.flow.Select(i)
		}
	case key.Matches(msg, m.keys.Next):
		if t, ok := s.flow.Advance(); ok {
			return m.follow(t)
		}
	case key.Matches(msg, m.keys.Prev):
		if t, ok := s.flow.Retreat(); ok {
			return m.follow(t)
		}
	}
	return m, nil
}

func (m Model) follow(t quiz.Transition) (tea.Model, tea.Cmd) {
	if _, err := m.nav.Navigate(t.Screen, t.Session); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

// View renders the screen on top of the stack.
func (m Model) View() string {
	if m.err != nil {
		return stylize("Error: "+m.err.Error(), m.noColor, colorError) + "\n"
	}
	entry, ok := m.nav.Current()
	if !ok {
		return ""
	}
	return entry.View.view(m)
}

// Err is the navigation error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Scorecard returns the result once the summary is on screen.
func (m Model) Scorecard() (quiz.Scorecard, bool) {
	entry, ok := m.nav.Current()
	if !ok {
		return quiz.Scorecard{}, false
	}
	s, ok := entry.View.(*summaryScreen)
	if !ok {
		return quiz.Scorecard{}, false
	}
	return s.card, true
}
