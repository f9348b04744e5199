package contact

import (
	"context"
	"errors"
	"strings"
	"testing"

	"helicharter-portal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, e Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivers to the inbox with reply-to", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", ctx, mock.MatchedBy(func(e Email) bool {
			return e.To == "bookings@example.com" &&
				e.ReplyTo == "jane@example.com" &&
				e.Subject == "Charter enquiry: Maasai Mara Transfer" &&
				strings.Contains(e.Text, "Phone: 0712 345678") &&
				strings.HasSuffix(e.Text, "Four of us in June.\n")
		})).Return(nil)

		err := NewService(sender, "bookings@example.com").Submit(ctx, Enquiry{
			Name:    " Jane ",
			Email:   "Jane@Example.com",
			Phone:   "0712 345678",
			Tour:    "Maasai Mara Transfer",
			Message: "Four of us in June.",
		})
		assert.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("Validation happens before sending", func(t *testing.T) {
		sender := new(MockSender)
		svc := NewService(sender, "bookings@example.com")

		cases := []Enquiry{
			{Email: "a@b.co", Message: "hi"},
			{Name: "A", Email: "not-an-email", Message: "hi"},
			{Name: "A", Email: "a@b.co", Message: "   "},
			{Name: "A", Email: "a@b.co", Message: strings.Repeat("x", maxMessageLength+1)},
		}
		for _, e := range cases {
			assert.True(t, domain.IsValidation(svc.Submit(ctx, e)))
		}
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Delivery failure", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", ctx, mock.Anything).Return(errors.New("sendgrid error: status 401"))

		err := NewService(sender, "bookings@example.com").Submit(ctx, Enquiry{Name: "A", Email: "a@b.co", Message: "hi"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Subject without tour", func(t *testing.T) {
		e := Enquiry{Name: "Sam"}
		assert.Equal(t, "Charter enquiry from Sam", e.subject())
	})
}
