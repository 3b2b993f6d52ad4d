package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/pavelanni/quizflow/internal/handler/views"
	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/nav"
	"github.com/pavelanni/quizflow/internal/quiz"
	"github.com/pavelanni/quizflow/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	bank   []model.Question
	config model.QuizConfig
}

// New creates a new Handler. The bank is validated up front.
func New(s *store.Store, bank []model.Question, cfg model.QuizConfig) (*Handler, error) {
	if _, err := quiz.NewSession(bank); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	if len(cfg.StateSecret) == 0 {
		return nil, errors.New("state secret is required")
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = 2 * time.Hour
	}
	if cfg.Title == "" {
		cfg.Title = "Quiz"
	}
	return &Handler{store: s, bank: bank, config: cfg}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Post("/quiz/start", h.handleStart)
	r.Post("/quiz/select", h.handleSelect)
	r.Post("/quiz/next", h.handleNext)
	r.Post("/quiz/prev", h.handlePrev)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.config.CORSOrigins,
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		api.Post("/score", h.handleAPIScore)
	})

	if len(h.config.AdminHash) == 0 {
		slog.Warn("no admin password configured, results pages disabled")
		return
	}
	r.Group(func(admin chi.Router) {
		admin.Use(h.requireAdmin)
		admin.Get("/results", h.handleResultsList)
		admin.Get("/results/{attemptID}", h.handleResult)
	})
}

// BasePathMiddleware stores the configured base path in the request context.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

type questionParams struct {
	State quizState
}

type summaryParams struct {
	AttemptID string
	Session   model.Session
	StartedAt time.Time
}

// navigator returns a fresh screen stack for one request. The question and
// summary screens are entered only through it.
func (h *Handler) navigator() *nav.Navigator[templ.Component] {
	n := nav.New[templ.Component]()
	n.Register(quiz.ScreenQuestion, func(params any) (templ.Component, error) {
		p, ok := params.(questionParams)
		if !ok {
			return nil, fmt.Errorf("unexpected params %T", params)
		}
		return h.questionScreen(p.State)
	})
	n.Register(quiz.ScreenSummary, func(params any) (templ.Component, error) {
		p, ok := params.(summaryParams)
		if !ok {
			return nil, fmt.Errorf("unexpected params %T", params)
		}
		return h.summaryScreen(p), nil
	})
	return n
}

func (h *Handler) questionScreen(st quizState) (templ.Component, error) {
	flow := quiz.ResumeFlow(st.Session, st.Selection)
	st.Selection = flow.Selection().Indexes()
	token, err := h.encodeState(st)
	if err != nil {
		return nil, err
	}

	q := flow.Question()
	choices := make([]views.ChoiceView, len(q.Choices))
	for i, label := range q.Choices {
		choices[i] = views.ChoiceView{Label: label, Selected: flow.Selection().Contains(i)}
	}
	return views.QuestionPage(views.QuestionView{
		Title:      h.config.Title,
		Index:      flow.Index(),
		Total:      len(st.Session.Questions),
		Prompt:     q.Prompt,
		Multiple:   q.Type.IsMultiple(),
		Choices:    choices,
		Token:      token,
		CanAdvance: flow.CanAdvance(),
		CanRetreat: flow.CanRetreat(),
		IsLast:     st.Session.IsLast(),
	}), nil
}

// summaryScreen scores the finished list and records the attempt once per
// attempt ID. A failed write is logged; the score is still shown.
func (h *Handler) summaryScreen(p summaryParams) templ.Component {
	card := quiz.Score(p.Session.Questions)

	existing, err := h.store.GetAttempt(p.AttemptID)
	switch {
	case err != nil:
		slog.Error("failed to look up attempt", "id", p.AttemptID, "error", err)
	case existing != nil:
		slog.Debug("attempt already recorded", "id", p.AttemptID)
	default:
		a := quiz.NewAttempt(card, model.SourceWeb, p.StartedAt, time.Now())
		a.ID = p.AttemptID
		if _, err := h.store.RecordAttempt(a); err != nil {
			slog.Error("failed to record attempt", "id", p.AttemptID, "error", err)
		}
	}
	return views.SummaryPage(h.config.Title, card)
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, screen string, params any) {
	c, err := h.navigator().Navigate(screen, params)
	if err != nil {
		slog.Error("navigation failed", "screen", screen, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, c)
}

// follow enters the screen a flow transition points at.
func (h *Handler) follow(w http.ResponseWriter, r *http.Request, st quizState, t quiz.Transition) {
	if t.Screen == quiz.ScreenSummary {
		h.navigate(w, r, t.Screen, summaryParams{
			AttemptID: st.AttemptID,
			Session:   t.Session,
			StartedAt: st.StartedAt,
		})
		return
	}
	h.navigate(w, r, t.Screen, questionParams{State: quizState{
		AttemptID: st.AttemptID,
		Session:   t.Session,
		StartedAt: st.StartedAt,
	}})
}

// loadState decodes the posted token, writing a 400 page when it is unusable.
func (h *Handler) loadState(w http.ResponseWriter, r *http.Request) (quizState, bool) {
	st, err := h.decodeState(r.FormValue("state"))
	if err != nil {
		slog.Warn("rejected quiz state", "error", err)
		h.render(w, r, http.StatusBadRequest, views.ErrorPage(h.config.Title, "This quiz page has expired or is invalid."))
		return quizState{}, false
	}
	return st, true
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.IndexPage(h.config.Title, len(h.bank)))
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	session, err := quiz.NewSession(h.bank)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	st := quizState{
		AttemptID: uuid.NewString(),
		Session:   session,
		StartedAt: time.Now(),
	}
	slog.Debug("quiz started", "attempt_id", st.AttemptID)
	h.navigate(w, r, quiz.ScreenQuestion, questionParams{State: st})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	choice, err := strconv.Atoi(r.FormValue("choice"))
	if err != nil {
		http.Error(w, "invalid choice", http.StatusBadRequest)
		return
	}
	flow := quiz.ResumeFlow(st.Session, st.Selection)
	flow.Select(choice)
	st.Selection = flow.Selection().Indexes()
	h.navigate(w, r, quiz.ScreenQuestion, questionParams{State: st})
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	t, ok := quiz.ResumeFlow(st.Session, st.Selection).Advance()
	if !ok {
		// Next is disabled without a selection; show the same screen again.
		h.navigate(w, r, quiz.ScreenQuestion, questionParams{State: st})
		return
	}
	h.follow(w, r, st, t)
}

func (h *Handler) handlePrev(w http.ResponseWriter, r *http.Request) {
	st, ok := h.loadState(w, r)
	if !ok {
		return
	}
	t, ok := quiz.ResumeFlow(st.Session, st.Selection).Retreat()
	if !ok {
		h.navigate(w, r, quiz.ScreenQuestion, questionParams{State: st})
		return
	}
	h.follow(w, r, st, t)
}

func (h *Handler) handleResultsList(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.store.ListAttempts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, views.ResultsListPage(h.config.Title, attempts))
}

func (h *Handler) handleResult(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAttempt(chi.URLParam(r, "attemptID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if a == nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, views.ResultPage(h.config.Title, *a))
}
