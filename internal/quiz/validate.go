// Package quiz holds the question flow state machine and the scoring engine.
package quiz

import (
	"errors"
	"fmt"

	"github.com/pavelanni/quizflow/internal/model"
)

// ErrMalformedQuestion marks a question whose data breaks the model invariants.
var ErrMalformedQuestion = errors.New("malformed question")

// ErrEmptyQuiz is returned when a session is built from no questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// ErrUnanswered is returned when scoring questions that lack a selected answer.
var ErrUnanswered = errors.New("question has no selected answer")

// Validate checks every question and reports the first problem found.
func Validate(questions []model.Question) error {
	for i, q := range questions {
		if err := ValidateQuestion(q); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateQuestion checks one question's type, choices, correct answer and
// (when present) selected answer.
func ValidateQuestion(q model.Question) error {
	switch q.Type {
	case model.TypeSingleChoice, model.TypeMultipleAnswer:
		if len(q.Choices) == 0 {
			return fmt.Errorf("%w: no choices", ErrMalformedQuestion)
		}
	case model.TypeTrueFalse:
		if len(q.Choices) != 2 {
			return fmt.Errorf("%w: true-false needs 2 choices, has %d", ErrMalformedQuestion, len(q.Choices))
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformedQuestion, q.Type)
	}

	want := q.Type.AnswerKind()
	if q.Correct.Kind() != want {
		return fmt.Errorf("%w: %s question needs a %s correct answer, got %s",
			ErrMalformedQuestion, q.Type, want, q.Correct.Kind())
	}
	if q.Correct.Empty() {
		return fmt.Errorf("%w: empty correct answer", ErrMalformedQuestion)
	}
	if err := checkRange(q.Correct, len(q.Choices)); err != nil {
		return fmt.Errorf("%w: correct answer: %v", ErrMalformedQuestion, err)
	}

	if q.Selected.IsSet() {
		if q.Selected.Kind() != want {
			return fmt.Errorf("%w: %s question cannot hold a %s selected answer",
				ErrMalformedQuestion, q.Type, q.Selected.Kind())
		}
		if err := checkRange(q.Selected, len(q.Choices)); err != nil {
			return fmt.Errorf("%w: selected answer: %v", ErrMalformedQuestion, err)
		}
	}
	return nil
}

func checkRange(a model.Answer, n int) error {
	for _, i := range a.Indexes() {
		if i < 0 || i >= n {
			return fmt.Errorf("index %d out of range [0,%d)", i, n)
		}
	}
	return nil
}

// NewSession validates the questions and returns a session positioned on the
// first one, with every selected answer cleared. The input is not modified.
func NewSession(questions []model.Question) (model.Session, error) {
	if len(questions) == 0 {
		return model.Session{}, ErrEmptyQuiz
	}
	if err := Validate(questions); err != nil {
		return model.Session{}, err
	}
	qs := make([]model.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
		qs[i].Selected = model.Answer{}
	}
	return model.Session{Questions: qs, CurrentIndex: 0}, nil
}
