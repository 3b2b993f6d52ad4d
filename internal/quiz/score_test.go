package quiz

import (
	"errors"
	"strings"
	"testing"

	"github.com/pavelanni/quizflow/internal/model"
)

func TestJudgeSingle(t *testing.T) {
	q := model.Question{
		Type:    model.TypeSingleChoice,
		Choices: []string{"a", "b", "c"},
		Correct: model.Single(2),
	}
	tests := []struct {
		name     string
		selected model.Answer
		want     bool
	}{
		{"match", model.Single(2), true},
		{"mismatch", model.Single(1), false},
		{"unset", model.Answer{}, false},
		{"set-shaped", model.Multiple(2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q.Selected = tt.selected
			if got := Judge(q); got != tt.want {
				t.Errorf("Judge(selected=%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestJudgeMultiple(t *testing.T) {
	q := model.Question{
		Type:    model.TypeMultipleAnswer,
		Choices: []string{"a", "b", "c", "d"},
		Correct: model.Multiple(1, 2),
	}
	tests := []struct {
		name     string
		selected model.Answer
		want     bool
	}{
		{"same order", model.Multiple(1, 2), true},
		{"reversed", model.Multiple(2, 1), true},
		{"subset", model.Multiple(1), false},
		{"superset", model.Multiple(1, 2, 3), false},
		{"same size, different", model.Multiple(1, 3), false},
		{"scalar", model.Single(1), false},
		{"unset", model.Answer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q.Selected = tt.selected
			if got := Judge(q); got != tt.want {
				t.Errorf("Judge(selected=%v) = %v, want %v", tt.selected, got, tt.want)
			}
		})
	}
}

func TestClassifyChoices(t *testing.T) {
	q := model.Question{
		Type:     model.TypeMultipleAnswer,
		Choices:  []string{"Carrot", "Apple", "Banana", "Cucumber"},
		Correct:  model.Multiple(1, 2),
		Selected: model.Multiple(0, 1),
	}
	want := []ChoiceMark{
		{Label: "Carrot", IsSelected: true, IsWrongSelected: true},
		{Label: "Apple", IsCorrect: true, IsSelected: true},
		{Label: "Banana", IsCorrect: true},
		{Label: "Cucumber"},
	}
	got := ClassifyChoices(q)
	if len(got) != len(want) {
		t.Fatalf("expected %d marks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("choice %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScoreCountsCorrect(t *testing.T) {
	qs := DefaultBank()
	qs[0].Selected = model.Single(2)
	qs[1].Selected = model.Multiple(2, 1)
	qs[2].Selected = model.Single(1)

	card := Score(qs)
	if card.Score != 2 || card.Total != 3 {
		t.Fatalf("expected 2/3, got %d/%d", card.Score, card.Total)
	}
	wantCorrect := []bool{true, true, false}
	for i, v := range card.Verdicts {
		if v.Correct != wantCorrect[i] {
			t.Errorf("question %d: correct = %v, want %v", i, v.Correct, wantCorrect[i])
		}
	}
}

func TestScoreEmpty(t *testing.T) {
	card := Score(nil)
	if card.Score != 0 || card.Total != 0 || len(card.Verdicts) != 0 {
		t.Errorf("expected empty scorecard, got %+v", card)
	}
}

func TestCheckComplete(t *testing.T) {
	bank := DefaultBank()
	bank[0].Selected = model.Single(2)
	bank[2].Selected = model.Single(0)

	err := CheckComplete(bank)
	if !errors.Is(err, ErrUnanswered) {
		t.Fatalf("expected ErrUnanswered, got %v", err)
	}
	if !strings.Contains(err.Error(), "question 2") {
		t.Errorf("error should name question 2: %v", err)
	}
	if Complete(bank) {
		t.Error("Complete should be false")
	}

	bank[1].Selected = model.Multiple(1)
	if err := CheckComplete(bank); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
