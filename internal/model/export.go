package model

import "time"

// QuizExport is the top-level structure written by `quizflow export`.
type QuizExport struct {
	Title        string    `json:"title" yaml:"title"`
	ExportedAt   time.Time `json:"exported_at" yaml:"exported_at"`
	NumQuestions int       `json:"num_questions" yaml:"num_questions"`
	Attempts     []Attempt `json:"attempts" yaml:"attempts"`
}

// QuizInfo describes the question bank the stored attempts were taken on.
type QuizInfo struct {
	Title        string
	NumQuestions int
	BankHash     string // sha256 of the bank's JSON form
}
