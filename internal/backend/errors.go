package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized means the bearer token was missing, expired or rejected
	ErrUnauthorized = errors.New("session expired, please log in again")
	// ErrNetwork means the backend could not be reached at all
	ErrNetwork = errors.New("unable to reach the booking service")
)

// APIError is any non-2xx backend response. Anonymous marks a call made
// without a bearer token (login, signup), where a 401 means bad credentials
// rather than an expired session.
type APIError struct {
	StatusCode int
	Message    string
	Anonymous  bool
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses to calls
// that carried a session token
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized && !e.Anonymous {
		return ErrUnauthorized
	}
	return nil
}

// ServerSide reports a 5xx response
func (e *APIError) ServerSide() bool {
	return e.StatusCode >= 500
}

func defaultMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}

// parseAPIError extracts the backend's message from an error body
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: defaultMessage(status)}

	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Detail  string          `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
			apiErr.Message = text
		}
		return apiErr
	}

	switch {
	case payload.Message != "":
		apiErr.Message = payload.Message
	case len(payload.Error) > 0:
		var s string
		if json.Unmarshal(payload.Error, &s) == nil && s != "" {
			apiErr.Message = s
		} else {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(payload.Error, &nested) == nil && nested.Message != "" {
				apiErr.Message = nested.Message
			}
		}
	case payload.Detail != "":
		apiErr.Message = payload.Detail
	}
	return apiErr
}

// StatusCode returns the HTTP status of an APIError anywhere in err's chain, or 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
