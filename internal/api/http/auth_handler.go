package http

import (
	"net/http"
	"strings"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Auth.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.startSession(w, r, res, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := creds.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Auth.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.startSession(w, r, res, http.StatusOK)
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := creds.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.Auth.AdminLogin(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !res.User.IsAdmin() {
		respondError(w, r, http.StatusForbidden, "forbidden", "this account does not have admin access")
		return
	}
	h.startSession(w, r, res, http.StatusOK)
}

// startSession stores the backend token in the session cookie and returns the
// auth result. The token is also returned for non-browser clients.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, res *domain.AuthResult, status int) {
	if strings.TrimSpace(res.Token) == "" {
		respondError(w, r, http.StatusBadGateway, "backend_error", "the booking service did not return a session")
		return
	}
	s, err := h.Sessions.Inspect(res.Token)
	if err != nil {
		logger.WarnContext(r.Context(), "Backend issued an unusable token", "error", err)
		h.writeError(w, r, err)
		return
	}
	h.Sessions.Set(w, s)
	respondJSON(w, status, res)
}

// logout ends the portal session even when the backend call fails
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), bearer(r)); err != nil {
		logger.WarnContext(r.Context(), "Backend logout failed", "error", err)
	}
	h.Sessions.Clear(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if err := domain.ValidateEmail(email); err != nil {
		h.writeError(w, r, err)
		return
	}

	// The reply does not reveal whether the address has an account
	err := h.Auth.ForgotPassword(r.Context(), email)
	if err != nil && backend.StatusCode(err) != http.StatusNotFound {
		h.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "If an account exists for that email, a reset link is on its way.",
	})
}
