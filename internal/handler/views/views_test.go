package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func assertHas(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestQuestionPageEscapes(t *testing.T) {
	html := renderString(t, context.Background(), QuestionPage(QuestionView{
		Title:   `Quiz "one"`,
		Index:   0,
		Total:   2,
		Prompt:  "Is <b>bold</b> & brave?",
		Choices: []ChoiceView{{Label: "<script>x</script>"}, {Label: "no", Selected: true}},
		Token:   "a.b.c",
	}))

	assertHas(t, html,
		"<title>Quiz &#34;one&#34;</title>",
		"Is &lt;b&gt;bold&lt;/b&gt; &amp; brave?",
		"&lt;script&gt;x&lt;/script&gt;",
		`name="state" value="a.b.c"`,
		`class="choice selected"`,
		`aria-pressed="true"`,
		" disabled>Next</button>",
		"<span></span>",
	)
	if strings.Contains(html, "<b>bold") || strings.Contains(html, "<script>") {
		t.Errorf("user text rendered unescaped:\n%s", html)
	}
}

func TestQuestionPageControls(t *testing.T) {
	html := renderString(t, context.Background(), QuestionPage(QuestionView{
		Title:      "Quiz",
		Index:      1,
		Total:      2,
		Prompt:     "Pick",
		Multiple:   true,
		Choices:    []ChoiceView{{Label: "a"}},
		CanAdvance: true,
		CanRetreat: true,
		IsLast:     true,
	}))

	assertHas(t, html,
		"Question 2 of 2",
		"Select all that apply.",
		`formaction="/quiz/prev">Previous</button>`,
		`value="1">Finish</button>`,
	)
	if strings.Contains(html, " disabled") {
		t.Errorf("next should be enabled:\n%s", html)
	}
}

func TestBasePathLinks(t *testing.T) {
	ctx := model.ContextWithBasePath(context.Background(), "/quiz-app")

	html := renderString(t, ctx, IndexPage("Quiz", 1))
	assertHas(t, html, "1 question.", `action="/quiz-app/quiz/start"`)

	html = renderString(t, ctx, QuestionPage(QuestionView{Title: "Quiz", Total: 1, Choices: []ChoiceView{{Label: "a"}}}))
	assertHas(t, html,
		`action="/quiz-app/quiz/next"`,
		`formaction="/quiz-app/quiz/select"`,
	)

	html = renderString(t, ctx, ErrorPage("Quiz", "gone"))
	assertHas(t, html, `<a href="/quiz-app/">Start over</a>`)
}

func TestSummaryPageMarks(t *testing.T) {
	bank := quiz.DefaultBank()
	bank[0].Selected = model.Single(2)
	bank[1].Selected = model.Multiple(1, 2)
	bank[2].Selected = model.Single(1)

	html := renderString(t, context.Background(), SummaryPage("Quiz", quiz.Score(bank)))
	assertHas(t, html,
		"You got 2 out of 3 correct!",
		`class="mark correct selected">Paris`,
		`class="mark selected incorrect">False`,
		`class="mark correct">True`,
		`class="mark">Berlin`,
	)
}

func TestResultsPages(t *testing.T) {
	html := renderString(t, context.Background(), ResultsListPage("Quiz", nil))
	assertHas(t, html, "Quiz: results", "No attempts recorded yet.")

	a := model.Attempt{
		ID:         "a1",
		Source:     model.SourceTerminal,
		FinishedAt: time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC),
		Score:      1,
		Total:      1,
		Answers: []model.AttemptAnswer{{
			Prompt:   "Capital?",
			Choices:  []string{"Rome", "Paris"},
			Correct:  model.Single(1),
			Selected: model.Single(1),
		}},
	}
	html = renderString(t, context.Background(), ResultsListPage("Quiz", []model.Attempt{a}))
	assertHas(t, html,
		`<a href="/results/a1">2026-05-01 12:30</a>`,
		"<td>terminal</td>",
		"<td>1 / 1</td>",
	)

	html = renderString(t, context.Background(), ResultPage("Quiz", a))
	assertHas(t, html,
		"terminal, 2026-05-01 12:30",
		"1 out of 1 correct",
		`class="mark correct selected">Paris`,
		`class="mark">Rome`,
	)
}
