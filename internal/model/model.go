package model

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// QuestionType says how a question is answered.
type QuestionType string

const (
	// TypeSingleChoice has exactly one correct and one selectable choice.
	TypeSingleChoice QuestionType = "single-choice"
	// TypeMultipleAnswer has a set of correct choices and accepts a set.
	TypeMultipleAnswer QuestionType = "multiple-answer"
	// TypeTrueFalse is a single-choice question with two choices.
	TypeTrueFalse QuestionType = "true-false"
)

// ParseQuestionType maps a type name to a QuestionType.
// "multiple-choice" is accepted as another name for single-choice.
func ParseQuestionType(s string) (QuestionType, error) {
	switch s {
	case string(TypeSingleChoice), "multiple-choice":
		return TypeSingleChoice, nil
	case string(TypeMultipleAnswer):
		return TypeMultipleAnswer, nil
	case string(TypeTrueFalse):
		return TypeTrueFalse, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// IsMultiple reports whether the type takes a set of choices.
func (t QuestionType) IsMultiple() bool { return t == TypeMultipleAnswer }

// AnswerKind is the answer shape the type expects.
func (t QuestionType) AnswerKind() AnswerKind {
	if t.IsMultiple() {
		return AnswerMultiple
	}
	return AnswerSingle
}

// UnmarshalJSON goes through ParseQuestionType so aliases are normalized.
func (t *QuestionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	qt, err := ParseQuestionType(s)
	if err != nil {
		return err
	}
	*t = qt
	return nil
}

// UnmarshalYAML goes through ParseQuestionType like UnmarshalJSON.
func (t *QuestionType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	qt, err := ParseQuestionType(s)
	if err != nil {
		return err
	}
	*t = qt
	return nil
}

// Question is one quiz question plus the answer given to it, if any.
type Question struct {
	Prompt   string       `json:"prompt" yaml:"prompt"`
	Type     QuestionType `json:"type" yaml:"type"`
	Choices  []string     `json:"choices" yaml:"choices"`
	Correct  Answer       `json:"correct" yaml:"correct"`
	Selected Answer       `json:"selected_answer" yaml:"selected_answer"`
}

// Clone returns a copy that shares nothing mutable with q.
func (q Question) Clone() Question {
	c := q
	c.Choices = append([]string(nil), q.Choices...)
	return c
}

// Session is the question list plus the position on screen. It is passed
// between screens by value; every step produces a new one.
type Session struct {
	Questions    []Question `json:"questions"`
	CurrentIndex int        `json:"current_index"`
}

// Current returns the question on screen.
func (s Session) Current() Question {
	return s.Questions[s.CurrentIndex]
}

// IsLast reports whether the current question is the final one.
func (s Session) IsLast() bool {
	return s.CurrentIndex == len(s.Questions)-1
}

// AttemptSource records which front end produced an attempt.
type AttemptSource string

const (
	SourceWeb      AttemptSource = "web"
	SourceTerminal AttemptSource = "terminal"
)

// Attempt is a finished, scored run through the quiz.
type Attempt struct {
	ID         string          `json:"id" yaml:"id"`
	Source     AttemptSource   `json:"source" yaml:"source"`
	StartedAt  time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time       `json:"finished_at" yaml:"finished_at"`
	Score      int             `json:"score" yaml:"score"`
	Total      int             `json:"total" yaml:"total"`
	Answers    []AttemptAnswer `json:"answers" yaml:"answers"`
}

// AttemptAnswer is one judged question inside an attempt.
type AttemptAnswer struct {
	Position  int          `json:"position" yaml:"position"`
	Prompt    string       `json:"prompt" yaml:"prompt"`
	Type      QuestionType `json:"type" yaml:"type"`
	Choices   []string     `json:"choices" yaml:"choices"`
	Correct   Answer       `json:"correct" yaml:"correct"`
	Selected  Answer       `json:"selected" yaml:"selected"`
	IsCorrect bool         `json:"is_correct" yaml:"is_correct"`
}

// QuizConfig holds runtime parameters set via CLI flags.
type QuizConfig struct {
	Title       string
	BasePath    string        // URL prefix for sub-path deployments (e.g. "/quiz")
	StateSecret []byte        // HMAC key for state tokens
	StateTTL    time.Duration // lifetime of a state token
	AdminHash   []byte        // bcrypt hash guarding results pages; nil disables them
	CORSOrigins []string
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}
