package quiz

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/pavelanni/quizflow/internal/model"
)

// DefaultBank returns the built-in question list. Each call returns a fresh copy.
func DefaultBank() []model.Question {
	return []model.Question{
		{
			Prompt:  "What is the capital of France?",
			Type:    model.TypeSingleChoice,
			Choices: []string{"Berlin", "Madrid", "Paris", "Rome"},
			Correct: model.Single(2),
		},
		{
			Prompt:  "Which of these are fruits?",
			Type:    model.TypeMultipleAnswer,
			Choices: []string{"Carrot", "Apple", "Banana", "Cucumber"},
			Correct: model.Multiple(1, 2),
		},
		{
			Prompt:  "Is 5 greater than 3?",
			Type:    model.TypeTrueFalse,
			Choices: []string{"True", "False"},
			Correct: model.Single(0),
		},
	}
}

// Fingerprint is a stable hash of the bank's questions and correct answers.
func Fingerprint(bank []model.Question) (string, error) {
	clean := make([]model.Question, len(bank))
	for i, q := range bank {
		clean[i] = q.Clone()
		clean[i].Selected = model.Answer{}
	}
	data, err := json.Marshal(clean)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
