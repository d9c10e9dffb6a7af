package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/examtrainer/backend/internal/store"
)

// sessionCookie is the name of the login session cookie.
const sessionCookie = "trainer_session"

type contextKey int

const sessionContextKey contextKey = iota

// Logging logs one line per request with method, path, status and duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"source", clientIP(r),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// CORS allows cross-origin requests with credentials, reflecting the
// request origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth gates a handler behind a valid login session. The secret is
// re-validated on every request, so revoking a secret (removing it from the
// registry or deleting its folder) locks active sessions out immediately.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := h.sessionFromRequest(r)
		if sess == nil || !h.secrets.IsValid(sess.Secret) {
			respondJSON(w, http.StatusUnauthorized, map[string]any{
				"error":         "authentication required",
				"authenticated": false,
			})
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next(w, r.WithContext(ctx))
	}
}

// sessionFromRequest resolves the session cookie, returning nil when there
// is no live session.
func (h *Handler) sessionFromRequest(r *http.Request) *store.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	sess, err := h.sessions.Get(cookie.Value)
	if err != nil {
		return nil
	}
	return sess
}

// session returns the session stashed by requireAuth.
func session(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*store.Session)
	return sess
}

// clientIP extracts the source address used for login rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
