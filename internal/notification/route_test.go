package notification

import (
	"testing"

	"helicharter-portal/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name string
		data map[string]string
		want string
	}{
		{"client chat", map[string]string{"type": "chat_message", "booking_id": "12"}, "/chat/12"},
		{"admin chat", map[string]string{"type": "chat_message", "booking_id": "12", "recipient_role": "admin"}, "/admin/chat/12"},
		{"camel case booking id", map[string]string{"type": "chat_message", "bookingId": "12"}, "/chat/12"},
		{"negotiation request", map[string]string{"type": "negotiation_request", "booking_id": "12"}, "/admin/negotiations?booking=12"},
		{"negotiation request without booking", map[string]string{"type": "negotiation_request"}, "/admin/negotiations"},
		{"negotiation update", map[string]string{"type": "negotiation_update", "booking_id": "12"}, "/dashboard/bookings/12"},
		{"chat without booking", map[string]string{"type": "chat_message"}, "/dashboard"},
		{"unknown type", map[string]string{"type": "promo", "booking_id": "12"}, "/dashboard"},
		{"no data", nil, "/dashboard"},
		{"id is escaped", map[string]string{"type": "negotiation_update", "booking_id": "a/b"}, "/dashboard/bookings/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.data))
		})
	}
}

func TestTarget(t *testing.T) {
	var p domain.PushPayload
	p.Data = map[string]string{"type": "negotiation_update", "booking_id": "9"}

	target := Target(p)
	assert.Equal(t, "Negotiation update", target.Title)
	assert.Equal(t, "/dashboard/bookings/9", target.URL)
	assert.Equal(t, "negotiation_update:9", target.Tag)

	p.Notification.Title = "Offer accepted"
	assert.Equal(t, "Offer accepted", Target(p).Title)
}

func TestTarget_CamelCaseBookingID(t *testing.T) {
	var p domain.PushPayload
	p.Data = map[string]string{"type": "chat_message", "bookingId": " 12 "}

	target := Target(p)
	assert.Equal(t, "/chat/12", target.URL)
	assert.Equal(t, "chat_message:12", target.Tag)
}
