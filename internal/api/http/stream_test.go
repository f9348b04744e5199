package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/poller"
)

func dial(t *testing.T, srv *httptest.Server, path, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+path, header)
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev map[string]any
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestPaymentStream_SuccessRedirectsOnce(t *testing.T) {
	f := newFixture(t)
	tok := clientToken(t)
	f.poller.On("Config").Return(poller.Config{RedirectDelay: 10 * time.Millisecond})
	f.poller.On("Poll", mock.Anything, tok, domain.ID("5"), mock.Anything).
		Run(func(args mock.Arguments) {
			onTick := args.Get(3).(func(poller.Tick))
			onTick(poller.Tick{Attempt: 1, MaxAttempts: 24, State: poller.StatePolling})
			onTick(poller.Tick{Attempt: 2, MaxAttempts: 24, State: poller.StateSucceeded, Status: domain.BookingStatusPaid})
		}).
		Return(&poller.Outcome{State: poller.StateSucceeded, Attempts: 2, Status: domain.BookingStatusPaid}, nil)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	conn, _, err := dial(t, srv, "/ws/bookings/5/payment", tok)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "tick", readEvent(t, conn)["type"])
	assert.Equal(t, "tick", readEvent(t, conn)["type"])

	outcome := readEvent(t, conn)
	assert.Equal(t, "outcome", outcome["type"])
	assert.Equal(t, "succeeded", outcome["data"].(map[string]any)["state"])

	redirect := readEvent(t, conn)
	assert.Equal(t, "redirect", redirect["type"])
	assert.Equal(t, "/dashboard/bookings/5", redirect["data"].(map[string]any)["url"])

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestPaymentStream_FailureClosesWithoutRedirect(t *testing.T) {
	f := newFixture(t)
	tok := clientToken(t)
	f.poller.On("Poll", mock.Anything, tok, domain.ID("5"), mock.Anything).
		Return(&poller.Outcome{State: poller.StateFailed, Attempts: 1, Status: domain.BookingStatusCancelled}, poller.ErrPaymentFailed)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	conn, _, err := dial(t, srv, "/ws/bookings/5/payment", tok)
	require.NoError(t, err)
	defer conn.Close()

	outcome := readEvent(t, conn)
	assert.Equal(t, "outcome", outcome["type"])
	assert.Equal(t, poller.ErrPaymentFailed.Error(), outcome["data"].(map[string]any)["message"])

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	f.poller.AssertNotCalled(t, "Config")
}

func TestPaymentStream_RequiresSession(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	_, resp, err := dial(t, srv, "/ws/bookings/5/payment", "")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChatStream_UnauthorizedEndsFeed(t *testing.T) {
	f := newFixture(t, func(d *Deps) { d.ChatInterval = 10 * time.Millisecond })
	tok := clientToken(t)
	f.chat.On("ListMessages", mock.Anything, tok, domain.ID("9")).
		Return([]domain.ChatMessage{{ID: "1", BookingID: "9", Message: "Hello"}}, nil).Once()
	f.chat.On("ListMessages", mock.Anything, tok, domain.ID("9")).
		Return(nil, &backend.APIError{StatusCode: 401, Message: "expired"})

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	conn, _, err := dial(t, srv, "/ws/bookings/9/chat", tok)
	require.NoError(t, err)
	defer conn.Close()

	first := readEvent(t, conn)
	assert.Equal(t, "messages", first["type"])
	assert.Len(t, first["data"], 1)

	ended := readEvent(t, conn)
	assert.Equal(t, "error", ended["type"])
	assert.Equal(t, true, ended["logout"])

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}
