package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
)

const maxScoreRequestBytes = 1 << 20

// handleAPIScore scores a posted list of answered questions.
func (h *Handler) handleAPIScore(w http.ResponseWriter, r *http.Request) {
	var questions []model.Question
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScoreRequestBytes))
	if err := dec.Decode(&questions); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(questions) == 0 {
		writeJSONError(w, http.StatusBadRequest, quiz.ErrEmptyQuiz.Error())
		return
	}
	if err := quiz.Validate(questions); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := quiz.CheckComplete(questions); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	card := quiz.Score(questions)
	slog.Debug("scored via API", "score", card.Score, "total", card.Total)
	writeJSON(w, http.StatusOK, card)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
