package store

import (
	"fmt"

	"github.com/pavelanni/quizflow/internal/model"
)

// ExportAttempts returns every attempt with its answers, oldest first.
func (s *Store) ExportAttempts() ([]model.Attempt, error) {
	list, err := s.ListAttempts()
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	results := make([]model.Attempt, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		full, err := s.GetAttempt(list[i].ID)
		if err != nil {
			return nil, fmt.Errorf("get attempt %s: %w", list[i].ID, err)
		}
		if full == nil {
			continue
		}
		results = append(results, *full)
	}
	return results, nil
}
