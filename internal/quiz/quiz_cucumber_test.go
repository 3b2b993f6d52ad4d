//go:build cucumber

package quiz

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/pavelanni/quizflow/internal/model"
)

// TestQuizScenarios runs the quiz flow feature scenarios.
func TestQuizScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-flow",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("..", "..", "features", "quiz.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz flow scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the built-in quiz$`, state.givenBuiltInQuiz)
	ctx.Step(`^I select choice (\d+)$`, state.whenSelect)
	ctx.Step(`^I press next$`, state.whenNext)
	ctx.Step(`^I press previous$`, state.whenPrevious)
	ctx.Step(`^I am on question (\d+)$`, state.thenOnQuestion)
	ctx.Step(`^next is (enabled|disabled)$`, state.thenNextIs)
	ctx.Step(`^nothing is selected$`, state.thenNothingSelected)
	ctx.Step(`^question (\d+) has recorded answer "([^"]*)"$`, state.thenRecordedAnswer)
	ctx.Step(`^question (\d+) has no recorded answer$`, state.thenNoRecordedAnswer)
	ctx.Step(`^I see the summary$`, state.thenSummary)
	ctx.Step(`^the score is (\d+) out of (\d+)$`, state.thenScore)
	ctx.Step(`^choice "([^"]*)" of question (\d+) is marked (correct and selected|wrongly selected|correct)$`, state.thenMarked)
	ctx.Step(`^a multiple-answer question with correct answer "([^"]*)"$`, state.givenMultipleAnswer)
	ctx.Step(`^it is answered with "([^"]*)"$`, state.whenAnswered)
	ctx.Step(`^it is judged (correct|incorrect)$`, state.thenJudged)
}

type quizScenarioState struct {
	flow     *Flow
	summary  *model.Session
	question model.Question
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	s.flow = nil
	s.summary = nil
	s.question = model.Question{}
}

func (s *quizScenarioState) givenBuiltInQuiz() error {
	session, err := NewSession(DefaultBank())
	if err != nil {
		return err
	}
	s.flow = NewFlow(session)
	return nil
}

func (s *quizScenarioState) onQuestion() error {
	if s.summary != nil {
		return fmt.Errorf("on the summary screen")
	}
	if s.flow == nil {
		return fmt.Errorf("no quiz started")
	}
	return nil
}

func (s *quizScenarioState) whenSelect(choice int) error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	s.flow.Select(choice)
	return nil
}

func (s *quizScenarioState) follow(t Transition) {
	if t.Screen == ScreenSummary {
		session := t.Session
		s.summary = &session
		return
	}
	s.flow = NewFlow(t.Session)
}

func (s *quizScenarioState) whenNext() error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	if t, ok := s.flow.Advance(); ok {
		s.follow(t)
	}
	return nil
}

func (s *quizScenarioState) whenPrevious() error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	if t, ok := s.flow.Retreat(); ok {
		s.follow(t)
	}
	return nil
}

func (s *quizScenarioState) thenOnQuestion(n int) error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	if got := s.flow.Index() + 1; got != n {
		return fmt.Errorf("on question %d, want %d", got, n)
	}
	return nil
}

func (s *quizScenarioState) thenNextIs(want string) error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	if got := s.flow.CanAdvance(); got != (want == "enabled") {
		return fmt.Errorf("CanAdvance = %v, want %s", got, want)
	}
	return nil
}

func (s *quizScenarioState) thenNothingSelected() error {
	if err := s.onQuestion(); err != nil {
		return err
	}
	if sel := s.flow.Selection(); sel.IsSet() {
		return fmt.Errorf("selection is %v", sel)
	}
	return nil
}

func (s *quizScenarioState) recorded(n int) (model.Answer, error) {
	if err := s.onQuestion(); err != nil {
		return model.Answer{}, err
	}
	questions := s.flow.Session().Questions
	if n < 1 || n > len(questions) {
		return model.Answer{}, fmt.Errorf("no question %d", n)
	}
	return questions[n-1].Selected, nil
}

func (s *quizScenarioState) thenRecordedAnswer(n int, want string) error {
	got, err := s.recorded(n)
	if err != nil {
		return err
	}
	if got.String() != want {
		return fmt.Errorf("question %d recorded %v, want %s", n, got, want)
	}
	return nil
}

func (s *quizScenarioState) thenNoRecordedAnswer(n int) error {
	got, err := s.recorded(n)
	if err != nil {
		return err
	}
	if got.IsSet() {
		return fmt.Errorf("question %d recorded %v", n, got)
	}
	return nil
}

func (s *quizScenarioState) thenSummary() error {
	if s.summary == nil {
		return fmt.Errorf("not on the summary screen")
	}
	if !Complete(s.summary.Questions) {
		return fmt.Errorf("summary reached with unanswered questions")
	}
	return nil
}

func (s *quizScenarioState) thenScore(score, total int) error {
	if s.summary == nil {
		return fmt.Errorf("not on the summary screen")
	}
	card := Score(s.summary.Questions)
	if card.Score != score || card.Total != total {
		return fmt.Errorf("score %d out of %d, want %d out of %d", card.Score, card.Total, score, total)
	}
	return nil
}

func (s *quizScenarioState) thenMarked(label string, n int, mark string) error {
	if s.summary == nil {
		return fmt.Errorf("not on the summary screen")
	}
	card := Score(s.summary.Questions)
	if n < 1 || n > len(card.Verdicts) {
		return fmt.Errorf("no question %d", n)
	}
	for _, m := range card.Verdicts[n-1].Choices {
		if m.Label != label {
			continue
		}
		var ok bool
		switch mark {
		case "correct and selected":
			ok = m.IsCorrect && m.IsSelected
		case "wrongly selected":
			ok = m.IsWrongSelected && !m.IsCorrect
		case "correct":
			ok = m.IsCorrect && !m.IsSelected
		}
		if !ok {
			return fmt.Errorf("choice %q marked %+v, want %s", label, m, mark)
		}
		return nil
	}
	return fmt.Errorf("question %d has no choice %q", n, label)
}

func parseIndexes(list string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(list, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

func (s *quizScenarioState) givenMultipleAnswer(correct string) error {
	idx, err := parseIndexes(correct)
	if err != nil {
		return err
	}
	s.question = model.Question{
		Prompt:  "Pick",
		Type:    model.TypeMultipleAnswer,
		Choices: []string{"a", "b", "c", "d"},
		Correct: model.Multiple(idx...),
	}
	return ValidateQuestion(s.question)
}

func (s *quizScenarioState) whenAnswered(selected string) error {
	idx, err := parseIndexes(selected)
	if err != nil {
		return err
	}
	s.question.Selected = model.Multiple(idx...)
	return nil
}

func (s *quizScenarioState) thenJudged(verdict string) error {
	if got := Judge(s.question); got != (verdict == "correct") {
		return fmt.Errorf("Judge = %v, want %s", got, verdict)
	}
	return nil
}
