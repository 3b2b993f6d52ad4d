package quiz

import (
	"errors"
	"testing"

	"github.com/pavelanni/quizflow/internal/model"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		q       model.Question
		wantErr bool
	}{
		{"single ok", model.Question{Type: model.TypeSingleChoice, Choices: []string{"a", "b"}, Correct: model.Single(1)}, false},
		{"multiple ok", model.Question{Type: model.TypeMultipleAnswer, Choices: []string{"a", "b"}, Correct: model.Multiple(0, 1)}, false},
		{"true-false ok", model.Question{Type: model.TypeTrueFalse, Choices: []string{"T", "F"}, Correct: model.Single(0)}, false},
		{"unknown type", model.Question{Type: "essay", Choices: []string{"a"}, Correct: model.Single(0)}, true},
		{"no choices", model.Question{Type: model.TypeSingleChoice, Correct: model.Single(0)}, true},
		{"true-false with three", model.Question{Type: model.TypeTrueFalse, Choices: []string{"T", "F", "?"}, Correct: model.Single(0)}, true},
		{"single with set", model.Question{Type: model.TypeSingleChoice, Choices: []string{"a", "b"}, Correct: model.Multiple(0)}, true},
		{"multiple with scalar", model.Question{Type: model.TypeMultipleAnswer, Choices: []string{"a", "b"}, Correct: model.Single(0)}, true},
		{"multiple empty", model.Question{Type: model.TypeMultipleAnswer, Choices: []string{"a", "b"}, Correct: model.Multiple()}, true},
		{"correct unset", model.Question{Type: model.TypeSingleChoice, Choices: []string{"a"}}, true},
		{"correct out of range", model.Question{Type: model.TypeSingleChoice, Choices: []string{"a", "b"}, Correct: model.Single(2)}, true},
		{"correct negative", model.Question{Type: model.TypeMultipleAnswer, Choices: []string{"a", "b"}, Correct: model.Multiple(-1, 0)}, true},
		{"selected wrong shape", model.Question{Type: model.TypeSingleChoice, Choices: []string{"a", "b"}, Correct: model.Single(0), Selected: model.Multiple(0)}, true},
		{"selected out of range", model.Question{Type: model.TypeMultipleAnswer, Choices: []string{"a", "b"}, Correct: model.Multiple(0), Selected: model.Multiple(5)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateQuestion() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedQuestion) {
				t.Errorf("expected ErrMalformedQuestion, got %v", err)
			}
		})
	}
}

func TestDefaultBankIsValid(t *testing.T) {
	if err := Validate(DefaultBank()); err != nil {
		t.Fatalf("default bank: %v", err)
	}
}

func TestNewSession(t *testing.T) {
	bank := DefaultBank()
	bank[0].Selected = model.Single(1)

	s, err := NewSession(bank)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.CurrentIndex != 0 {
		t.Errorf("expected index 0, got %d", s.CurrentIndex)
	}
	for i, q := range s.Questions {
		if q.Selected.IsSet() {
			t.Errorf("question %d: expected cleared selection, got %v", i, q.Selected)
		}
	}
	if !bank[0].Selected.IsSet() {
		t.Error("NewSession modified its input")
	}

	s.Questions[0].Choices[0] = "changed"
	if bank[0].Choices[0] == "changed" {
		t.Error("session shares choices with input")
	}
}

func TestNewSessionFailsFast(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrEmptyQuiz) {
		t.Errorf("expected ErrEmptyQuiz, got %v", err)
	}

	bank := DefaultBank()
	bank[1].Correct = model.Single(1)
	_, err := NewSession(bank)
	if !errors.Is(err, ErrMalformedQuestion) {
		t.Fatalf("expected ErrMalformedQuestion, got %v", err)
	}
}
