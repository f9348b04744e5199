package domain

import (
	"strings"
	"time"
)

type ChatMessage struct {
	ID         ID         `json:"id"`
	BookingID  ID         `json:"booking_id"`
	SenderID   ID         `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	SenderRole Role       `json:"sender_role"`
	Message    string     `json:"message"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	IsRead     bool       `json:"is_read"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

const maxChatMessageLength = 2000

func (r *SendMessageRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return ValidationError{Field: "message", Msg: "message is required"}
	}
	if len(r.Message) > maxChatMessageLength {
		return ValidationError{Field: "message", Msg: "message is too long"}
	}
	return nil
}

// UnreadCount is the admin dashboard's unread total, optionally split per booking
type UnreadCount struct {
	Total     int        `json:"count"`
	ByBooking map[ID]int `json:"by_booking,omitempty"`
}
