package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"helicharter-portal/internal/backend"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/logger"
	"helicharter-portal/internal/poller"
)

const writeWait = 10 * time.Second

// StreamEvent is one websocket frame sent to the browser
type StreamEvent struct {
	Type   string `json:"type"` // tick, outcome, redirect, messages, unread, error
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
	Logout bool   `json:"logout,omitempty"`
}

// stream serialises writes to one websocket connection
type stream struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *stream) send(ev StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(ev)
}

func (s *stream) close(code int, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// fail reports a feed-ending error and closes the socket
func (s *stream) fail(ctx context.Context, err error) {
	ev := StreamEvent{Type: "error", Error: "live updates stopped"}
	code := websocket.CloseInternalServerErr
	if errors.Is(err, backend.ErrUnauthorized) {
		ev.Error = backend.ErrUnauthorized.Error()
		ev.Logout = true
		code = websocket.ClosePolicyViolation
	} else {
		logger.WarnContext(ctx, "Live feed ended", "error", err)
	}
	_ = s.send(ev)
	s.close(code, ev.Error)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.AllowedOrigins) == 0 || slices.Contains(h.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(h.AllowedOrigins, origin)
}

// openStream upgrades the request. The returned context ends when the browser
// closes the socket, which is how a view's teardown stops its poll.
func (h *Handler) openStream(w http.ResponseWriter, r *http.Request) (*stream, context.Context, context.CancelFunc, bool) {
	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WarnContext(r.Context(), "WebSocket upgrade failed", "error", err)
		return nil, nil, nil, false
	}
	// The server's read timeout must not end a long-lived socket
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	return &stream{conn: conn}, ctx, cancel, true
}

// paymentStream pushes every poll tick, the final outcome and, after a paid
// outcome, a single redirect event.
func (h *Handler) paymentStream(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tok := bearer(r)

	st, ctx, cancel, ok := h.openStream(w, r)
	if !ok {
		return
	}
	defer cancel()
	defer st.conn.Close()

	outcome, err := h.Poller.Poll(ctx, tok, id, func(t poller.Tick) {
		_ = st.send(StreamEvent{Type: "tick", Data: t})
	})
	if outcome == nil {
		if ctx.Err() == nil {
			st.fail(ctx, err)
		}
		return
	}
	if err := st.send(StreamEvent{Type: "outcome", Data: PaymentResult{Outcome: outcome, Message: outcomeMessage(err)}}); err != nil {
		return
	}
	if outcome.State != poller.StateSucceeded {
		st.close(websocket.CloseNormalClosure, string(outcome.State))
		return
	}

	done := make(chan struct{})
	redirect := poller.NewRedirector(h.Poller.Config().RedirectDelay)
	redirect.Schedule(ctx, func() {
		defer close(done)
		_ = st.send(StreamEvent{Type: "redirect", Data: map[string]string{"url": redirectURL(id)}})
	})
	select {
	case <-done:
		st.close(websocket.CloseNormalClosure, string(outcome.State))
	case <-ctx.Done():
	}
}

func redirectURL(id domain.ID) string {
	return "/dashboard/bookings/" + url.PathEscape(id.String())
}

func (h *Handler) chatStream(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	tok := bearer(r)

	st, ctx, cancel, ok := h.openStream(w, r)
	if !ok {
		return
	}
	defer cancel()
	defer st.conn.Close()

	err = poller.ChatFeed(ctx, h.Chat, tok, id, h.ChatInterval, func(msgs []domain.ChatMessage) error {
		return st.send(StreamEvent{Type: "messages", Data: msgs})
	})
	if err != nil && ctx.Err() == nil {
		st.fail(ctx, err)
	}
}

func (h *Handler) unreadStream(w http.ResponseWriter, r *http.Request) {
	tok := bearer(r)

	st, ctx, cancel, ok := h.openStream(w, r)
	if !ok {
		return
	}
	defer cancel()
	defer st.conn.Close()

	err := poller.UnreadFeed(ctx, h.Chat, tok, h.UnreadInterval, func(c *domain.UnreadCount) error {
		return st.send(StreamEvent{Type: "unread", Data: c})
	})
	if err != nil && ctx.Err() == nil {
		st.fail(ctx, err)
	}
}
