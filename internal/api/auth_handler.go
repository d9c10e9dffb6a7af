package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ── Request / Response types ────────────────────────────────────────────────

type LoginRequest struct {
	Secret string `json:"secret"`
}

type AuthResponse struct {
	Success       bool   `json:"success,omitempty"`
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
	HasSession    bool `json:"has_session"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// login authenticates by access secret.
// @Summary      Log in
// @Description  Authenticate with an access secret. After 5 failed attempts the source address is locked out for 15 minutes.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Access secret"
// @Success      200   {object}  AuthResponse
// @Failure      400   {object}  AuthResponse
// @Failure      401   {object}  AuthResponse
// @Failure      429   {object}  AuthResponse  "locked out, retry later"
// @Router       /api/auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	source := clientIP(r)

	if blocked, retryAfter := h.limiter.Check(source); blocked {
		minutes := int(retryAfter.Minutes()) + 1
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
		respondJSON(w, http.StatusTooManyRequests, AuthResponse{
			Authenticated: false,
			Error:         fmt.Sprintf("too many attempts, try again in %d min", minutes),
		})
		return
	}

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	secret := strings.TrimSpace(req.Secret)
	if secret == "" {
		respondJSON(w, http.StatusBadRequest, AuthResponse{
			Authenticated: false,
			Error:         "secret is required",
		})
		return
	}

	if !h.secrets.IsValid(secret) {
		if tripped := h.limiter.Fail(source); tripped {
			h.logger.Warn("source locked out after repeated login failures", "source", source)
		}
		// Malformed, unregistered and folder-less secrets all get the same
		// answer so nothing leaks about which one it was.
		respondJSON(w, http.StatusUnauthorized, AuthResponse{
			Authenticated: false,
			Error:         "invalid secret",
		})
		return
	}

	h.limiter.Reset(source)

	sess, err := h.sessions.Create(uuid.NewString(), secret, "")
	if err != nil {
		h.logger.Error("creating session failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, AuthResponse{
		Success:       true,
		Authenticated: true,
		Message:       "login successful",
	})
}

// logout ends the current session.
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  AuthResponse
// @Router       /api/auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			h.logger.Error("deleting session failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respondJSON(w, http.StatusOK, AuthResponse{
		Success:       true,
		Authenticated: false,
		Message:       "logged out",
	})
}

// authStatus reports whether the caller has a live, still-valid session.
// @Summary      Auth status
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  AuthStatusResponse
// @Router       /api/auth/status [get]
func (h *Handler) authStatus(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(r)
	authenticated := sess != nil && h.secrets.IsValid(sess.Secret)

	respondJSON(w, http.StatusOK, AuthStatusResponse{
		Authenticated: authenticated,
		HasSession:    sess != nil,
	})
}
