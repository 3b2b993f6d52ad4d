package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const adminUsername = "admin"

// requireAdmin is middleware that checks HTTP basic credentials against the
// configured admin password hash.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			h.challenge(w)
			return
		}
		if username != adminUsername {
			slog.Warn("admin login rejected", "username", username)
			h.challenge(w)
			return
		}
		if err := bcrypt.CompareHashAndPassword(h.config.AdminHash, []byte(password)); err != nil {
			slog.Warn("admin login rejected", "username", username)
			h.challenge(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="quizflow results", charset="UTF-8"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// HashAdminPassword hashes a plain password for QuizConfig.AdminHash.
// An empty password yields a nil hash, which disables the results pages.
func HashAdminPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, nil
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
