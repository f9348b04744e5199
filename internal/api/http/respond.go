package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/contact"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
	"helicharter-portal/internal/payment"
	"helicharter-portal/internal/session"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
	Logout    bool   `json:"logout,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: logger.RequestID(r.Context()),
	})
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ValidationError{Msg: "request body is required"}
		}
		return domain.ValidationError{Msg: "request body is not valid JSON", Err: err}
	}
	return nil
}

// writeError maps an error from any layer onto a response. An unauthorized error
// also clears the session cookie so the browser is logged out.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr     *backend.APIError
		paymentErr *payment.ServerError
	)

	switch {
	case errors.Is(err, backend.ErrUnauthorized),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrMalformed):
		h.Sessions.Clear(w)
		msg := err.Error()
		if !errors.Is(err, session.ErrNoSession) {
			msg = backend.ErrUnauthorized.Error()
		}
		respondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:     msg,
			Code:      "unauthorized",
			RequestID: logger.RequestID(r.Context()),
			Logout:    true,
		})
	case domain.IsValidation(err):
		respondError(w, r, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsConflict(err):
		respondError(w, r, http.StatusConflict, "conflict", err.Error())
	case domain.IsNotFound(err):
		respondError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, payment.ErrTimeout):
		respondError(w, r, http.StatusGatewayTimeout, "payment_timeout", err.Error())
	case errors.Is(err, payment.ErrNetwork), errors.Is(err, backend.ErrNetwork):
		respondError(w, r, http.StatusBadGateway, "backend_unreachable", err.Error())
	case errors.As(err, &paymentErr):
		respondError(w, r, passthroughStatus(paymentErr.StatusCode), "payment_failed", paymentErr.Message)
	case errors.As(err, &apiErr):
		respondError(w, r, passthroughStatus(apiErr.StatusCode), "backend_error", apiErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, "timeout", "the booking service took too long to respond")
	case errors.Is(err, context.Canceled):
		// client went away; nobody is reading
	case errors.Is(err, contact.ErrUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "path", r.URL.Path, "error", err)
		respondError(w, r, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// passthroughStatus keeps backend 4xx codes and reports backend 5xx as a bad gateway
func passthroughStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}
