package poller

import (
	"context"
	"errors"
	"time"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

var (
	ErrPaymentFailed  = errors.New("payment failed or was cancelled")
	ErrPaymentTimeout = errors.New("payment confirmation timed out, check your bookings later")
)

type State string

const (
	StatePolling   State = "polling"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// StatusAPI is the slice of the backend client the payment poller needs
type StatusAPI interface {
	GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error)
	GetBookingStatus(ctx context.Context, token string, id domain.ID) (*domain.StatusSnapshot, error)
}

type Config struct {
	Interval      time.Duration
	MaxAttempts   int
	RedirectDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:      5 * time.Second,
		MaxAttempts:   24,
		RedirectDelay: 2 * time.Second,
	}
}

// Tick reports one poll attempt
type Tick struct {
	Attempt       int                  `json:"attempt"`
	MaxAttempts   int                  `json:"max_attempts"`
	State         State                `json:"state"`
	Status        domain.BookingStatus `json:"status,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
	Error         string               `json:"error,omitempty"`
}

// Outcome is where a poll ended up
type Outcome struct {
	State         State                `json:"state"`
	Attempts      int                  `json:"attempts"`
	Status        domain.BookingStatus `json:"status,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
	Booking       *domain.Booking      `json:"booking,omitempty"`
}

// PaymentPoller watches a booking after a payment prompt until it settles
type PaymentPoller struct {
	api StatusAPI
	cfg Config
}

func NewPaymentPoller(api StatusAPI, cfg Config) *PaymentPoller {
	def := DefaultConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = def.RedirectDelay
	}
	return &PaymentPoller{api: api, cfg: cfg}
}

func (p *PaymentPoller) Config() Config { return p.cfg }

// Poll checks the booking once per interval, for at most MaxAttempts checks.
// It returns as soon as the payment is settled either way. A failed outcome
// comes with ErrPaymentFailed, an exhausted budget with ErrPaymentTimeout.
// onTick may be nil.
func (p *PaymentPoller) Poll(ctx context.Context, token string, bookingID domain.ID, onTick func(Tick)) (*Outcome, error) {
	if !bookingID.Valid() {
		return nil, domain.ValidationError{Field: "booking_id", Msg: "booking id is invalid"}
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	outcome := &Outcome{State: StatePolling}
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		booking, status, paymentStatus, err := p.check(ctx, token, bookingID)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, backend.ErrUnauthorized) {
			return nil, err
		}

		outcome.Attempts = attempt
		outcome.Status = status
		outcome.PaymentStatus = paymentStatus
		if booking != nil {
			outcome.Booking = booking
		}
		outcome.State = evaluate(status, paymentStatus)

		if onTick != nil {
			tick := Tick{
				Attempt:       attempt,
				MaxAttempts:   p.cfg.MaxAttempts,
				State:         outcome.State,
				Status:        status,
				PaymentStatus: paymentStatus,
			}
			if err != nil {
				tick.Error = err.Error()
			}
			onTick(tick)
		}

		switch outcome.State {
		case StateSucceeded:
			logger.InfoContext(ctx, "Payment confirmed", "booking_id", bookingID, "attempts", attempt)
			return outcome, nil
		case StateFailed:
			logger.InfoContext(ctx, "Payment failed", "booking_id", bookingID, "status", status, "payment_status", paymentStatus)
			return outcome, ErrPaymentFailed
		}
	}

	outcome.State = StateTimedOut
	logger.InfoContext(ctx, "Payment poll timed out", "booking_id", bookingID, "attempts", outcome.Attempts)
	return outcome, ErrPaymentTimeout
}

// check reads the booking detail and falls back to the status endpoint when the
// detail is unavailable or still undecided.
func (p *PaymentPoller) check(ctx context.Context, token string, id domain.ID) (*domain.Booking, domain.BookingStatus, domain.PaymentStatus, error) {
	var (
		status        domain.BookingStatus
		paymentStatus domain.PaymentStatus
	)

	booking, detailErr := p.api.GetBooking(ctx, token, id)
	if detailErr == nil {
		status = booking.Status
		paymentStatus = booking.PaymentStatus
		if evaluate(status, paymentStatus) != StatePolling {
			return booking, status, paymentStatus, nil
		}
	} else {
		booking = nil
		logger.DebugContext(ctx, "Booking detail poll failed, using status endpoint", "booking_id", id, "error", detailErr)
	}

	snap, statusErr := p.api.GetBookingStatus(ctx, token, id)
	if statusErr != nil {
		if detailErr != nil {
			return nil, status, paymentStatus, statusErr
		}
		return booking, status, paymentStatus, nil
	}
	if snap.Status != "" {
		status = snap.Status
	}
	if snap.PaymentStatus != "" {
		paymentStatus = snap.PaymentStatus
	}
	return booking, status, paymentStatus, nil
}

func evaluate(status domain.BookingStatus, paymentStatus domain.PaymentStatus) State {
	switch {
	case status == domain.BookingStatusCancelled:
		return StateFailed
	case status == domain.BookingStatusPaid || status == domain.BookingStatusConfirmed || status == domain.BookingStatusCompleted:
		return StateSucceeded
	case paymentStatus == domain.PaymentStatusPaid:
		return StateSucceeded
	case paymentStatus == domain.PaymentStatusFailed:
		return StateFailed
	}
	return StatePolling
}
