package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavelanni/quizflow/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attempt_answers (
		attempt_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		prompt TEXT NOT NULL,
		type TEXT NOT NULL,
		choices TEXT NOT NULL,
		correct TEXT NOT NULL,
		selected TEXT NOT NULL,
		is_correct BOOLEAN NOT NULL,
		PRIMARY KEY (attempt_id, position),
		FOREIGN KEY (attempt_id) REFERENCES attempts(id)
	);

	CREATE TABLE IF NOT EXISTS quiz_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordAttempt stores a finished attempt with all its answers and returns its ID.
// A new ID is generated when a.ID is empty.
func (s *Store) RecordAttempt(a model.Attempt) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.FinishedAt.IsZero() {
		a.FinishedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO attempts (id, source, started_at, finished_at, score, total) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Source, a.StartedAt, a.FinishedAt, a.Score, a.Total,
	)
	if err != nil {
		return "", err
	}

	for _, ans := range a.Answers {
		choices, err := json.Marshal(ans.Choices)
		if err != nil {
			return "", fmt.Errorf("encode choices: %w", err)
		}
		correct, err := json.Marshal(ans.Correct)
		if err != nil {
			return "", fmt.Errorf("encode correct answer: %w", err)
		}
		selected, err := json.Marshal(ans.Selected)
		if err != nil {
			return "", fmt.Errorf("encode selected answer: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO attempt_answers (attempt_id, position, prompt, type, choices, correct, selected, is_correct)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, ans.Position, ans.Prompt, ans.Type, string(choices), string(correct), string(selected), ans.IsCorrect,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("recorded attempt", "id", a.ID, "source", a.Source, "score", a.Score, "total", a.Total)
	return a.ID, nil
}

// GetAttempt returns an attempt with its answers, or nil if not found.
func (s *Store) GetAttempt(id string) (*model.Attempt, error) {
	var a model.Attempt
	err := s.db.QueryRow(
		`SELECT id, source, started_at, finished_at, score, total FROM attempts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Source, &a.StartedAt, &a.FinishedAt, &a.Score, &a.Total)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Answers, err = s.getAnswers(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) getAnswers(attemptID string) ([]model.AttemptAnswer, error) {
	rows, err := s.db.Query(
		`SELECT position, prompt, type, choices, correct, selected, is_correct
		 FROM attempt_answers WHERE attempt_id = ? ORDER BY position`, attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var answers []model.AttemptAnswer
	for rows.Next() {
		var (
			ans                        model.AttemptAnswer
			qType                      string
			choices, correct, selected string
		)
		if err := rows.Scan(&ans.Position, &ans.Prompt, &qType, &choices, &correct, &selected, &ans.IsCorrect); err != nil {
			return nil, err
		}
		if ans.Type, err = model.ParseQuestionType(qType); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(choices), &ans.Choices); err != nil {
			return nil, fmt.Errorf("decode choices: %w", err)
		}
		if err := json.Unmarshal([]byte(correct), &ans.Correct); err != nil {
			return nil, fmt.Errorf("decode correct answer: %w", err)
		}
		if err := json.Unmarshal([]byte(selected), &ans.Selected); err != nil {
			return nil, fmt.Errorf("decode selected answer: %w", err)
		}
		answers = append(answers, ans)
	}
	return answers, rows.Err()
}

// ListAttempts returns all attempts, newest first, without their answers.
func (s *Store) ListAttempts() ([]model.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT id, source, started_at, finished_at, score, total FROM attempts ORDER BY finished_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var attempts []model.Attempt
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.Source, &a.StartedAt, &a.FinishedAt, &a.Score, &a.Total); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// AttemptCount returns the number of recorded attempts.
func (s *Store) AttemptCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM attempts`).Scan(&count)
	return count, err
}
