package quiz

import "github.com/pavelanni/quizflow/internal/model"

// Screen names registered with the navigator.
const (
	ScreenQuestion = "question"
	ScreenSummary  = "summary"
)

// Transition is where the flow goes next and the snapshot it carries.
// For ScreenSummary, Session.CurrentIndex is the last question.
type Transition struct {
	Screen  string
	Session model.Session
}

// Flow is the state of the question screen: the snapshot it was entered
// with and the choices picked so far for the current question.
// Flow never modifies the snapshot it holds.
type Flow struct {
	session   model.Session
	selection model.Answer
}

// NewFlow enters the question screen for s.CurrentIndex with empty selection.
// Any answer already recorded for that question is not loaded into the
// selection.
func NewFlow(s model.Session) *Flow {
	return &Flow{session: s}
}

// ResumeFlow enters the question screen with a selection carried over from
// a previous render of the same screen. Indexes outside the current
// question's choices are dropped.
func ResumeFlow(s model.Session, selected []int) *Flow {
	f := NewFlow(s)
	for _, i := range selected {
		if !f.selection.Contains(i) {
			f.Select(i)
		}
	}
	return f
}

// Session returns the snapshot the screen was entered with.
func (f *Flow) Session() model.Session { return f.session }

// Question returns the question on screen.
func (f *Flow) Question() model.Question { return f.session.Current() }

// Index is the position of the question on screen.
func (f *Flow) Index() int { return f.session.CurrentIndex }

// Selection returns the in-flight selection. It is unset until something is picked.
func (f *Flow) Selection() model.Answer { return f.selection }

// Select handles a tap on choice i. Single-choice questions overwrite the
// selection; multiple-answer questions toggle i in the set. Taps outside
// the choice list are ignored.
func (f *Flow) Select(i int) {
	q := f.Question()
	if i < 0 || i >= len(q.Choices) {
		return
	}
	if q.Type.IsMultiple() {
		f.selection = f.selection.Toggle(i)
		return
	}
	f.selection = model.Single(i)
}

// CanAdvance reports whether Next/Finish is enabled.
func (f *Flow) CanAdvance() bool {
	return !f.selection.Empty()
}

// CanRetreat reports whether Previous is available.
func (f *Flow) CanRetreat() bool {
	return f.session.CurrentIndex > 0
}

// Advance records the selection on the current question in a copy of the
// list and moves to the next question, or to the summary after the last.
// ok is false, and nothing changes, when there is no selection.
func (f *Flow) Advance() (t Transition, ok bool) {
	if !f.CanAdvance() {
		return Transition{}, false
	}
	idx := f.session.CurrentIndex
	updated := make([]model.Question, len(f.session.Questions))
	copy(updated, f.session.Questions)
	updated[idx] = updated[idx].Clone()
	updated[idx].Selected = f.selection

	if idx < len(updated)-1 {
		return Transition{
			Screen:  ScreenQuestion,
			Session: model.Session{Questions: updated, CurrentIndex: idx + 1},
		}, true
	}
	return Transition{
		Screen:  ScreenSummary,
		Session: model.Session{Questions: updated, CurrentIndex: idx},
	}, true
}

// Retreat moves back one question with the list this screen was entered
// with. The in-flight selection is dropped and the previous question opens
// with an empty selector, even if an answer is recorded for it.
// ok is false on the first question.
func (f *Flow) Retreat() (t Transition, ok bool) {
	if !f.CanRetreat() {
		return Transition{}, false
	}
	return Transition{
		Screen: ScreenQuestion,
		Session: model.Session{
			Questions:    f.session.Questions,
			CurrentIndex: f.session.CurrentIndex - 1,
		},
	}, true
}
