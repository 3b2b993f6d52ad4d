package quiz

import (
	"fmt"

	"github.com/pavelanni/quizflow/internal/model"
)

// ChoiceMark classifies one choice for the results display.
type ChoiceMark struct {
	Label           string `json:"label"`
	IsCorrect       bool   `json:"is_correct"`
	IsSelected      bool   `json:"is_selected"`
	IsWrongSelected bool   `json:"is_wrong_selected"`
}

// Verdict is the judgement for one question.
type Verdict struct {
	Question model.Question `json:"question"`
	Correct  bool           `json:"correct"`
	Choices  []ChoiceMark   `json:"choices"`
}

// Scorecard is the outcome of a finished quiz.
type Scorecard struct {
	Verdicts []Verdict `json:"verdicts"`
	Score    int       `json:"score"`
	Total    int       `json:"total"`
}

// Judge reports whether the selected answer matches the correct one.
// Single answers compare by index; multiple answers compare as sets.
// An unset selection is never correct.
func Judge(q model.Question) bool {
	correct, selected := q.Correct, q.Selected
	switch correct.Kind() {
	case model.AnswerSingle:
		want, _ := correct.Index()
		got, ok := selected.Index()
		return ok && got == want
	case model.AnswerMultiple:
		if selected.Kind() != model.AnswerMultiple || selected.Len() != correct.Len() {
			return false
		}
		for _, i := range correct.Indexes() {
			if !selected.Contains(i) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ClassifyChoices marks every choice of q as correct, selected, or both.
func ClassifyChoices(q model.Question) []ChoiceMark {
	marks := make([]ChoiceMark, len(q.Choices))
	for i, label := range q.Choices {
		isCorrect := q.Correct.Contains(i)
		isSelected := q.Selected.Contains(i)
		marks[i] = ChoiceMark{
			Label:           label,
			IsCorrect:       isCorrect,
			IsSelected:      isSelected,
			IsWrongSelected: isSelected && !isCorrect,
		}
	}
	return marks
}

// Score judges every question. It reads nothing but its argument.
func Score(questions []model.Question) Scorecard {
	card := Scorecard{
		Verdicts: make([]Verdict, len(questions)),
		Total:    len(questions),
	}
	for i, q := range questions {
		ok := Judge(q)
		if ok {
			card.Score++
		}
		card.Verdicts[i] = Verdict{
			Question: q,
			Correct:  ok,
			Choices:  ClassifyChoices(q),
		}
	}
	return card
}

// Complete reports whether every question has a selected answer.
func Complete(questions []model.Question) bool {
	return CheckComplete(questions) == nil
}

// CheckComplete names the first question without a selected answer.
func CheckComplete(questions []model.Question) error {
	for i, q := range questions {
		if !q.Selected.IsSet() {
			return fmt.Errorf("question %d: %w", i+1, ErrUnanswered)
		}
	}
	return nil
}
