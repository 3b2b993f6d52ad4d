package quiz

import (
	"time"

	"github.com/pavelanni/quizflow/internal/model"
)

// NewAttempt turns a scorecard into a record ready to store.
func NewAttempt(card Scorecard, source model.AttemptSource, startedAt, finishedAt time.Time) model.Attempt {
	a := model.Attempt{
		Source:     source,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Score:      card.Score,
		Total:      card.Total,
		Answers:    make([]model.AttemptAnswer, len(card.Verdicts)),
	}
	for i, v := range card.Verdicts {
		q := v.Question
		a.Answers[i] = model.AttemptAnswer{
			Position:  i,
			Prompt:    q.Prompt,
			Type:      q.Type,
			Choices:   append([]string(nil), q.Choices...),
			Correct:   q.Correct,
			Selected:  q.Selected,
			IsCorrect: v.Correct,
		}
	}
	return a
}

// Recorder stores finished attempts.
type Recorder interface {
	RecordAttempt(a model.Attempt) (string, error)
}
