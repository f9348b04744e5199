package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

var (
	// ErrTimeout means every attempt ran out of time waiting for the backend
	ErrTimeout = errors.New("payment request timed out, please check your phone and try again")
	// ErrNetwork means the backend could not be reached
	ErrNetwork = errors.New("could not reach the payment service, please check your connection")
)

// ServerError is a payment failure the backend explained
type ServerError struct {
	StatusCode int
	Message    string
	Attempts   int
	Err        error
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() error { return e.Err }

// API is the slice of the backend client the submitter needs
type API interface {
	InitiatePayment(ctx context.Context, token string, req domain.PaymentRequest) (*domain.PaymentReceipt, error)
	InitiateNegotiatedPayment(ctx context.Context, token string, req domain.PaymentRequest) (*domain.PaymentReceipt, error)
}

type Config struct {
	Timeout     time.Duration // per attempt
	MaxRetries  int           // attempts after the first
	BackoffBase time.Duration // delay before retry n is BackoffBase * 2^(n-1)
}

func DefaultConfig() Config {
	return Config{
		Timeout:     60 * time.Second,
		MaxRetries:  2,
		BackoffBase: time.Second,
	}
}

// Submitter initiates phone payments
type Submitter struct {
	api   API
	cfg   Config
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSubmitter(api API, cfg Config) *Submitter {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = def.BackoffBase
	}
	return &Submitter{api: api, cfg: cfg, sleep: sleepContext}
}

// SubmitDirect sends one payment prompt for the original quote. It is not retried.
func (s *Submitter) SubmitDirect(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error) {
	req, err := newRequest(bookingID, phone)
	if err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	receipt, err := s.api.InitiatePayment(attemptCtx, token, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		_, terminal := classify(err, 1)
		return nil, terminal
	}
	receipt.Attempts = 1
	return receipt, nil
}

// SubmitNegotiated sends a payment prompt for the admin-accepted amount.
// Server errors and per-attempt timeouts are retried with exponential backoff;
// client errors and connectivity failures are returned at once.
func (s *Submitter) SubmitNegotiated(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error) {
	req, err := newRequest(bookingID, phone)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
		receipt, err := s.api.InitiateNegotiatedPayment(attemptCtx, token, req)
		cancel()

		if err == nil {
			receipt.Attempts = attempt
			logger.InfoContext(ctx, "Negotiated payment initiated", "booking_id", bookingID, "attempts", attempt)
			return receipt, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		retryable, terminal := classify(err, attempt)
		if !retryable || attempt > s.cfg.MaxRetries {
			logger.WarnContext(ctx, "Negotiated payment failed", "booking_id", bookingID, "attempts", attempt, "error", err)
			return nil, terminal
		}

		delay := s.cfg.BackoffBase << (attempt - 1)
		logger.WarnContext(ctx, "Retrying negotiated payment", "booking_id", bookingID, "attempt", attempt, "delay", delay, "error", err)
		if err := s.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func newRequest(bookingID domain.ID, phone string) (domain.PaymentRequest, error) {
	if !bookingID.Valid() {
		return domain.PaymentRequest{}, domain.ValidationError{Field: "booking_id", Msg: "booking id is invalid"}
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return domain.PaymentRequest{}, err
	}
	return domain.PaymentRequest{BookingID: bookingID, PhoneNumber: normalized}, nil
}

// classify decides whether err is worth another attempt and what to report if not
func classify(err error, attempt int) (retryable bool, terminal error) {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return true, fmt.Errorf("%w (after %d attempts)", ErrTimeout, attempt)
	case errors.Is(err, backend.ErrNetwork):
		return false, fmt.Errorf("%w: %v", ErrNetwork, err)
	case errors.As(err, &apiErr):
		return apiErr.ServerSide(), &ServerError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			Attempts:   attempt,
			Err:        apiErr,
		}
	}
	return false, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
