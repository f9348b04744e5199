package poller

import (
	"context"
	"errors"
	"time"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
)

// Every runs fn now and then once per interval until ctx ends or fn returns an error
func Every(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

// FeedAPI is the slice of the backend client the chat and unread feeds need
type FeedAPI interface {
	ListMessages(ctx context.Context, token string, bookingID domain.ID) ([]domain.ChatMessage, error)
	UnreadCount(ctx context.Context, token string) (*domain.UnreadCount, error)
}

// ChatFeed emits the booking's full message list every interval. A failed
// refresh is skipped; an expired session or an emit error ends the feed.
func ChatFeed(ctx context.Context, api FeedAPI, token string, bookingID domain.ID, interval time.Duration, emit func([]domain.ChatMessage) error) error {
	return Every(ctx, interval, func(ctx context.Context) error {
		msgs, err := api.ListMessages(ctx, token, bookingID)
		if err != nil {
			return skipTransient(ctx, "chat", err)
		}
		return emit(msgs)
	})
}

// UnreadFeed emits the admin's unread message count every interval
func UnreadFeed(ctx context.Context, api FeedAPI, token string, interval time.Duration, emit func(*domain.UnreadCount) error) error {
	return Every(ctx, interval, func(ctx context.Context) error {
		count, err := api.UnreadCount(ctx, token)
		if err != nil {
			return skipTransient(ctx, "unread", err)
		}
		return emit(count)
	})
}

func skipTransient(ctx context.Context, feed string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, backend.ErrUnauthorized) {
		return err
	}
	logger.WarnContext(ctx, "Feed refresh failed", "feed", feed, "error", err)
	return nil
}
