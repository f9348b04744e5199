package contact

import (
	"context"
	"errors"

	"helicharter-portal/internal/logger"
)

// ErrUnavailable is returned when an enquiry could not be delivered
var ErrUnavailable = errors.New("enquiries cannot be sent right now, please call us instead")

type Service struct {
	sender Sender
	inbox  string
}

func NewService(sender Sender, inbox string) *Service {
	if sender == nil {
		sender = LogSender{}
	}
	return &Service{sender: sender, inbox: inbox}
}

// Submit validates an enquiry and forwards it to the operator inbox
func (s *Service) Submit(ctx context.Context, e Enquiry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	err := s.sender.Send(ctx, Email{
		To:      s.inbox,
		ToName:  "Bookings",
		ReplyTo: e.Email,
		Subject: e.subject(),
		Text:    e.body(),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to deliver contact enquiry", "error", err)
		return ErrUnavailable
	}
	return nil
}
