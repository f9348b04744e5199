package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

const (
	serviceName           = "booking-backend"
	maxBodyBytes          = 4 << 20
	defaultRequestTimeout = 30 * time.Second
)

// Client is a typed wrapper around the booking backend's REST API.
// It holds no session state: every call takes the caller's bearer token.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a client for baseURL. requestTimeout bounds calls whose
// context carries no deadline of its own; callers with a deadline (the payment
// submitter) are bounded by it alone, so httpClient should not set Timeout.
func NewClient(baseURL string, httpClient *http.Client, requestTimeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		timeout: requestTimeout,
	}
}

// BaseURL returns the backend root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, op, token, method, path string, body, out any, envelopeKeys ...string) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger.ExternalServiceCall(ctx, serviceName, op, "method", method, "path", path)
	err := c.send(ctx, token, method, path, body, out, envelopeKeys)
	logger.ExternalServiceResult(ctx, serviceName, op, err)
	return err
}

func (c *Client) send(ctx context.Context, token, method, path string, body, out any, envelopeKeys []string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := logger.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, context.DeadlineExceeded)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, raw)
		apiErr.Anonymous = token == ""
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeEnvelope(raw, out, envelopeKeys); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeEnvelope accepts either the bare payload or the payload wrapped under
// one of keys or "data".
func decodeEnvelope(raw []byte, out any, keys []string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			for _, key := range append(keys, "data") {
				inner, ok := fields[key]
				if !ok || bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
					continue
				}
				if trimmedInner := bytes.TrimSpace(inner); len(trimmedInner) > 0 && (trimmedInner[0] == '{' || trimmedInner[0] == '[') {
					return json.Unmarshal(trimmedInner, out)
				}
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

func bookingPath(id domain.ID, suffix string) (string, error) {
	if !id.Valid() {
		return "", domain.ValidationError{Field: "booking_id", Msg: "booking id is invalid"}
	}
	return "/bookings/" + url.PathEscape(id.String()) + suffix, nil
}
