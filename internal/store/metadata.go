package store

import (
	"database/sql"
	"strconv"

	"github.com/pavelanni/quizflow/internal/model"
)

// SetMetadata upserts a key-value pair in the quiz_metadata table.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO quiz_metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		key, value, value,
	)
	return err
}

// GetMetadata returns the value for a metadata key.
// Returns empty string and nil error if the key is missing.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM quiz_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetQuizInfo stores all QuizInfo fields as metadata rows.
func (s *Store) SetQuizInfo(info model.QuizInfo) error {
	pairs := []struct{ k, v string }{
		{"title", info.Title},
		{"num_questions", strconv.Itoa(info.NumQuestions)},
		{"bank_hash", info.BankHash},
	}
	for _, p := range pairs {
		if err := s.SetMetadata(p.k, p.v); err != nil {
			return err
		}
	}
	return nil
}

// GetQuizInfo reads all QuizInfo fields from metadata. Missing keys leave
// their fields zero.
func (s *Store) GetQuizInfo() (model.QuizInfo, error) {
	var info model.QuizInfo
	var err error

	if info.Title, err = s.GetMetadata("title"); err != nil {
		return info, err
	}
	if info.BankHash, err = s.GetMetadata("bank_hash"); err != nil {
		return info, err
	}
	nq, err := s.GetMetadata("num_questions")
	if err != nil {
		return info, err
	}
	if nq != "" {
		info.NumQuestions, err = strconv.Atoi(nq)
		if err != nil {
			return info, err
		}
	}
	return info, nil
}
