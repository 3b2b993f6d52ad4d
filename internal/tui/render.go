package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/pavelanni/quizflow/internal/quiz"
)

var (
	colorTitle   = lipgloss.Color("33")
	colorHint    = lipgloss.Color("242")
	colorCursor  = lipgloss.Color("212")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorError   = lipgloss.Color("196")
)

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

func renderQuestion(title string, s *questionScreen, keys keyMap, noColor bool) string {
	f := s.flow
	q := f.Question()
	total := len(f.Session().Questions)

	var b strings.Builder
	b.WriteString(stylize(title, noColor, colorTitle) + "\n")
	b.WriteString(stylize(fmt.Sprintf("Question %d of %d", f.Index()+1, total), noColor, colorHint) + "\n\n")
	b.WriteString(bold(q.Prompt, noColor) + "\n")
	if q.Type.IsMultiple() {
		b.WriteString(stylize("Select all that apply.", noColor, colorHint) + "\n")
	}
	b.WriteString("\n")

	sel := f.Selection()
	for i, label := range q.Choices {
		cursor := "  "
		if i == s.cursor {
			cursor = stylize("> ", noColor, colorCursor)
		}
		box := "( )"
		if q.Type.IsMultiple() {
			box = "[ ]"
		}
		if sel.Contains(i) {
			box = box[:1] + "x" + box[2:]
		}
		b.WriteString(fmt.Sprintf("%s%s %d. %s\n", cursor, box, i+1, label))
	}
	b.WriteString("\n")

	bindings := []key.Binding{keys.Up, keys.Down, keys.Select}
	if f.CanRetreat() {
		bindings = append(bindings, keys.Prev)
	}
	if f.CanAdvance() {
		next := keys.Next
		if f.Session().IsLast() {
			next.SetHelp(next.Help().Key, "finish")
		}
		bindings = append(bindings, next)
	}
	bindings = append(bindings, keys.Quit)
	b.WriteString(stylize(helpLine(bindings...), noColor, colorHint) + "\n")
	return b.String()
}

func renderSummary(title string, s *summaryScreen, keys keyMap, noColor bool) string {
	var b strings.Builder
	b.WriteString(stylize(title, noColor, colorTitle) + "\n\n")
	b.WriteString(bold(fmt.Sprintf("You got %d out of %d correct!", s.card.Score, s.card.Total), noColor) + "\n\n")

	for _, v := range s.card.Verdicts {
		b.WriteString(bold(v.Question.Prompt, noColor) + "\n")
		for _, m := range v.Choices {
			b.WriteString("  " + renderMark(m, noColor) + "\n")
		}
		b.WriteString("\n")
	}

	if s.recordErr != nil {
		b.WriteString(stylize("Result not saved: "+s.recordErr.Error(), noColor, colorError) + "\n")
	} else if s.attemptID != "" {
		b.WriteString(stylize("Saved as "+s.attemptID, noColor, colorHint) + "\n")
	}
	b.WriteString(stylize(helpLine(keys.Again, keys.Quit), noColor, colorHint) + "\n")
	return b.String()
}

func renderMark(m quiz.ChoiceMark, noColor bool) string {
	switch {
	case m.IsCorrect && m.IsSelected:
		return stylize("✓ "+m.Label+" (your answer)", noColor, colorCorrect)
	case m.IsCorrect:
		return stylize("✓ "+m.Label, noColor, colorCorrect)
	case m.IsWrongSelected:
		return stylize("✗ "+m.Label+" (your answer)", noColor, colorWrong)
	default:
		return "  " + m.Label
	}
}
