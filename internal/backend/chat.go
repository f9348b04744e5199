package backend

import (
	"context"
	"net/http"
	"net/url"

	"helicharter-portal/internal/domain"
)

func chatPath(id domain.ID, suffix string) (string, error) {
	if !id.Valid() {
		return "", domain.ValidationError{Field: "booking_id", Msg: "booking id is invalid"}
	}
	return "/chat/" + url.PathEscape(id.String()) + suffix, nil
}

func (c *Client) ListMessages(ctx context.Context, token string, bookingID domain.ID) ([]domain.ChatMessage, error) {
	path, err := chatPath(bookingID, "/messages")
	if err != nil {
		return nil, err
	}
	msgs := []domain.ChatMessage{}
	if err := c.do(ctx, "ListMessages", token, http.MethodGet, path, nil, &msgs, "messages"); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) SendMessage(ctx context.Context, token string, bookingID domain.ID, req domain.SendMessageRequest) (*domain.ChatMessage, error) {
	path, err := chatPath(bookingID, "/messages")
	if err != nil {
		return nil, err
	}
	var msg domain.ChatMessage
	if err := c.do(ctx, "SendMessage", token, http.MethodPost, path, req, &msg, "message"); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) MarkMessagesRead(ctx context.Context, token string, bookingID domain.ID) error {
	path, err := chatPath(bookingID, "/read")
	if err != nil {
		return err
	}
	return c.do(ctx, "MarkMessagesRead", token, http.MethodPut, path, nil, nil)
}

func (c *Client) UnreadCount(ctx context.Context, token string) (*domain.UnreadCount, error) {
	var count domain.UnreadCount
	if err := c.do(ctx, "UnreadCount", token, http.MethodGet, "/chat/unread-count", nil, &count); err != nil {
		return nil, err
	}
	return &count, nil
}
