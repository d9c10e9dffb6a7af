// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/examtrainer/backend/internal/auth"
	"github.com/examtrainer/backend/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	banks    *store.BankRegistry
	progress *store.ProgressRegistry
	sessions *store.SessionStore
	secrets  *auth.Validator
	limiter  *auth.LoginLimiter
	logger   *slog.Logger

	defaultExam string
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(
	banks *store.BankRegistry,
	progress *store.ProgressRegistry,
	sessions *store.SessionStore,
	secrets *auth.Validator,
	limiter *auth.LoginLimiter,
	defaultExam string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		banks:       banks,
		progress:    progress,
		sessions:    sessions,
		secrets:     secrets,
		limiter:     limiter,
		defaultExam: defaultExam,
		logger:      logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

type validator interface {
	Validate() error
}

// decodeAndValidate decodes the request body and runs its Validate method.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// bank returns the question store for the session's current exam.
func (h *Handler) bank(sess *store.Session) (*store.QuestionStore, error) {
	return h.banks.Bank(h.currentExam(sess))
}

// currentExam returns the session's exam, falling back to the default.
func (h *Handler) currentExam(sess *store.Session) string {
	if sess.CurrentExam != "" {
		return sess.CurrentExam
	}
	return h.defaultExam
}
