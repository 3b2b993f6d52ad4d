package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
)

type fakeRecorder struct {
	attempts []model.Attempt
	err      error
}

func (r *fakeRecorder) RecordAttempt(a model.Attempt) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.attempts = append(r.attempts, a)
	return "attempt-1", nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func newTestModel(t *testing.T, rec quiz.Recorder) Model {
	t.Helper()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m, err := NewModel(quiz.DefaultBank(), Options{
		Title:    "Test Quiz",
		NoColor:  true,
		Recorder: rec,
		Now:      func() time.Time { return clock },
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewModelRejectsBadBank(t *testing.T) {
	if _, err := NewModel(nil, Options{}); !errors.Is(err, quiz.ErrEmptyQuiz) {
		t.Errorf("expected ErrEmptyQuiz, got %v", err)
	}
}

func TestQuestionView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"Test Quiz", "Question 1 of 3", "What is the capital of France?", "( ) 3. Paris"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "next") {
		t.Errorf("next should not be offered without a selection:\n%s", view)
	}
}

func TestNextNeedsSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, keyEnter)
	if !strings.Contains(m.View(), "Question 1 of 3") {
		t.Fatalf("advanced without a selection:\n%s", m.View())
	}
	m = press(t, m, keyDown, keySpace)
	if !strings.Contains(m.View(), "(x) 2. Madrid") {
		t.Fatalf("cursor selection not shown:\n%s", m.View())
	}
	m = press(t, m, keyEnter)
	if !strings.Contains(m.View(), "Question 2 of 3") {
		t.Fatalf("expected question 2:\n%s", m.View())
	}
}

func TestMultipleAnswerToggle(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("3"), keyEnter, runes("2"), runes("3"), runes("1"), runes("1"))
	view := m.View()
	for _, want := range []string{"Select all that apply.", "[ ] 1. Carrot", "[x] 2. Apple", "[x] 3. Banana"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPreviousDropsSelection(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("3"), keyEnter, runes("2"), keyLeft)
	view := m.View()
	if !strings.Contains(view, "Question 1 of 3") {
		t.Fatalf("expected question 1:\n%s", view)
	}
	if strings.Contains(view, "(x)") {
		t.Errorf("previous answer should not be preselected:\n%s", view)
	}

	// Previous on the first question does nothing.
	m = press(t, m, keyLeft)
	if !strings.Contains(m.View(), "Question 1 of 3") {
		t.Errorf("expected to stay on question 1:\n%s", m.View())
	}
}

func TestFullRunRecordsAttempt(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, rec)
	m = press(t, m,
		runes("3"), keyEnter,
		runes("2"), runes("3"), keyEnter,
		runes("2"), keyEnter,
	)

	card, ok := m.Scorecard()
	if !ok {
		t.Fatalf("expected summary screen:\n%s", m.View())
	}
	if card.Score != 2 || card.Total != 3 {
		t.Errorf("expected 2/3, got %d/%d", card.Score, card.Total)
	}
	view := m.View()
	for _, want := range []string{"You got 2 out of 3 correct!", "✗ False (your answer)", "✓ True"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary missing %q:\n%s", want, view)
		}
	}

	if len(rec.attempts) != 1 {
		t.Fatalf("expected 1 recorded attempt, got %d", len(rec.attempts))
	}
	a := rec.attempts[0]
	if a.Source != model.SourceTerminal || a.Score != 2 || len(a.Answers) != 3 {
		t.Errorf("unexpected attempt %+v", a)
	}
}

func TestRecordFailureStillShowsScore(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel(t, rec)
	m = press(t, m, runes("1"), keyEnter, runes("1"), keyEnter, runes("1"), keyEnter)
	view := m.View()
	if !strings.Contains(view, "You got 1 out of 3 correct!") {
		t.Errorf("expected score:\n%s", view)
	}
	if !strings.Contains(view, "Result not saved: disk full") {
		t.Errorf("expected save error:\n%s", view)
	}
}

func TestTryAgain(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, runes("1"), keyEnter, runes("1"), keyEnter, runes("1"), keyEnter, runes("r"))
	if !strings.Contains(m.View(), "Question 1 of 3") {
		t.Errorf("expected a fresh run:\n%s", m.View())
	}
	if _, ok := m.Scorecard(); ok {
		t.Error("summary should no longer be on screen")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
