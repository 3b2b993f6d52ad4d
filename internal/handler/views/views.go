// Package views renders the HTML pages. The markup lives in the .templ
// files; run `templ generate` from the module root after editing them.
package views

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
)

// ChoiceView is one button of the choice selector.
type ChoiceView struct {
	Label    string
	Selected bool
}

// QuestionView is the data for one question screen.
type QuestionView struct {
	Title      string
	Index      int // zero-based
	Total      int
	Prompt     string
	Multiple   bool
	Choices    []ChoiceView
	Token      string
	CanAdvance bool
	CanRetreat bool
	IsLast     bool
}

// href prefixes an application path with the request's base path.
func href(ctx context.Context, path string) templ.SafeURL {
	return templ.URL(model.BasePathFromContext(ctx) + path)
}

func questionCount(n int) string {
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func nextLabel(last bool) string {
	if last {
		return "Finish"
	}
	return "Next"
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// answerMarks classifies the choices of a stored answer the same way the
// summary screen does.
func answerMarks(ans model.AttemptAnswer) []quiz.ChoiceMark {
	q := model.Question{Choices: ans.Choices, Correct: ans.Correct, Selected: ans.Selected}
	return quiz.ClassifyChoices(q)
}
