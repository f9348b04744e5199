package contact

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"helicharter-portal/internal/logger"
)

// Email is one outgoing message to the operator inbox
type Email struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, e Email) error
}

type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(ctx context.Context, e Email) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, e.Subject, mail.NewEmail(e.ToName, e.To), e.Text, "")
	if e.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", e.ReplyTo))
	}

	logger.ExternalServiceCall(ctx, "sendgrid", "Send", "to", e.To)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult(ctx, "sendgrid", "Send", err)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogSender writes enquiries to the log; used when no SendGrid key is configured
type LogSender struct{}

func (LogSender) Send(ctx context.Context, e Email) error {
	logger.InfoContext(ctx, "Contact enquiry (email disabled)", "subject", e.Subject, "reply_to", e.ReplyTo)
	return nil
}
