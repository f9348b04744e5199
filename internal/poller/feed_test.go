package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFeedAPI struct {
	mock.Mock
}

func (m *MockFeedAPI) ListMessages(ctx context.Context, token string, bookingID domain.ID) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, token, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockFeedAPI) UnreadCount(ctx context.Context, token string) (*domain.UnreadCount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnreadCount), args.Error(1)
}

func TestEvery_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int32

	err := Every(ctx, time.Millisecond, func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 3 {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestEvery_StopsOnError(t *testing.T) {
	stop := errors.New("socket closed")
	err := Every(context.Background(), time.Hour, func(ctx context.Context) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestChatFeed(t *testing.T) {
	t.Run("Transient failures are skipped", func(t *testing.T) {
		api := new(MockFeedAPI)
		api.On("ListMessages", mock.Anything, "tok", domain.ID("3")).Return(nil, errors.New("502")).Once()
		api.On("ListMessages", mock.Anything, "tok", domain.ID("3")).
			Return([]domain.ChatMessage{{ID: "1", Message: "hello"}}, nil)

		done := errors.New("done")
		var got []domain.ChatMessage
		err := ChatFeed(context.Background(), api, "tok", "3", time.Millisecond, func(msgs []domain.ChatMessage) error {
			got = msgs
			return done
		})

		assert.ErrorIs(t, err, done)
		assert.Len(t, got, 1)
		api.AssertNumberOfCalls(t, "ListMessages", 2)
	})

	t.Run("Expired session ends the feed", func(t *testing.T) {
		api := new(MockFeedAPI)
		api.On("ListMessages", mock.Anything, "tok", domain.ID("3")).
			Return(nil, &backend.APIError{StatusCode: 401, Message: "expired"})

		err := ChatFeed(context.Background(), api, "tok", "3", time.Millisecond, func([]domain.ChatMessage) error {
			t.Fatal("emit should not be called")
			return nil
		})
		assert.ErrorIs(t, err, backend.ErrUnauthorized)
	})
}

func TestUnreadFeed(t *testing.T) {
	api := new(MockFeedAPI)
	api.On("UnreadCount", mock.Anything, "admin-tok").Return(&domain.UnreadCount{Total: 4}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var counts []int
	err := UnreadFeed(ctx, api, "admin-tok", time.Millisecond, func(c *domain.UnreadCount) error {
		counts = append(counts, c.Total)
		if len(counts) == 2 {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{4, 4}, counts)
}
