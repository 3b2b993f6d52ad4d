package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
)

var errBadState = errors.New("invalid quiz state")

// quizState is everything a question screen needs, carried in a signed
// token inside the page form. The bank itself stays on the server; only
// the recorded answers travel.
type quizState struct {
	AttemptID string
	Session   model.Session
	Selection []int
	StartedAt time.Time
}

type stateClaims struct {
	Answers   []model.Answer `json:"answers"`
	Index     int            `json:"index"`
	Selection []int          `json:"selection,omitempty"`
	StartedAt int64          `json:"started_at"`
	jwt.RegisteredClaims
}

// encodeState signs st into a compact token.
func (h *Handler) encodeState(st quizState) (string, error) {
	answers := make([]model.Answer, len(st.Session.Questions))
	for i, q := range st.Session.Questions {
		answers[i] = q.Selected
	}
	now := time.Now()
	claims := stateClaims{
		Answers:   answers,
		Index:     st.Session.CurrentIndex,
		Selection: st.Selection,
		StartedAt: st.StartedAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        st.AttemptID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.config.StateTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.config.StateSecret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return token, nil
}

// decodeState verifies a token and rebuilds the session against the bank.
func (h *Handler) decodeState(token string) (quizState, error) {
	if token == "" {
		return quizState{}, fmt.Errorf("%w: missing token", errBadState)
	}
	var claims stateClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return h.config.StateSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return quizState{}, fmt.Errorf("%w: %v", errBadState, err)
	}

	if len(claims.Answers) != len(h.bank) {
		return quizState{}, fmt.Errorf("%w: %d answers for %d questions", errBadState, len(claims.Answers), len(h.bank))
	}
	if claims.Index < 0 || claims.Index >= len(h.bank) {
		return quizState{}, fmt.Errorf("%w: index %d out of range", errBadState, claims.Index)
	}

	questions := make([]model.Question, len(h.bank))
	for i, q := range h.bank {
		questions[i] = q.Clone()
		questions[i].Selected = claims.Answers[i]
	}
	if err := quiz.Validate(questions); err != nil {
		return quizState{}, fmt.Errorf("%w: %v", errBadState, err)
	}

	return quizState{
		AttemptID: claims.ID,
		Session:   model.Session{Questions: questions, CurrentIndex: claims.Index},
		Selection: claims.Selection,
		StartedAt: time.Unix(claims.StartedAt, 0),
	}, nil
}
