package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"helicharter-portal/internal/contact"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/poller"
	"helicharter-portal/internal/session"
)

type AuthAPI interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	AdminLogin(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
}

type BookingAPI interface {
	CreateBooking(ctx context.Context, token string, req domain.CreateBookingRequest) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, token string, id domain.ID, req domain.UpdateBookingRequest) (*domain.Booking, error)
	ListBookings(ctx context.Context, token string) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context, token string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error)
	GetBookingStatus(ctx context.Context, token string, id domain.ID) (*domain.StatusSnapshot, error)
	RequestNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationRequest) (*domain.Booking, error)
	RespondNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationResponse) (*domain.Booking, error)
	NegotiationHistory(ctx context.Context, token string, id domain.ID) ([]domain.Negotiation, error)
}

type ChatAPI interface {
	ListMessages(ctx context.Context, token string, bookingID domain.ID) ([]domain.ChatMessage, error)
	SendMessage(ctx context.Context, token string, bookingID domain.ID, req domain.SendMessageRequest) (*domain.ChatMessage, error)
	MarkMessagesRead(ctx context.Context, token string, bookingID domain.ID) error
	UnreadCount(ctx context.Context, token string) (*domain.UnreadCount, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]domain.HelicopterListing, error)
	Add(ctx context.Context, token string, req domain.AddHelicopterRequest) (*domain.HelicopterListing, error)
	Delete(ctx context.Context, token string, id domain.ID) error
}

type PaymentSubmitter interface {
	SubmitDirect(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error)
	SubmitNegotiated(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error)
}

type PaymentPoller interface {
	Poll(ctx context.Context, token string, bookingID domain.ID, onTick func(poller.Tick)) (*poller.Outcome, error)
	Config() poller.Config
}

type PushRegistrar interface {
	Register(ctx context.Context, token, fcmToken string, role domain.Role) error
}

type ContactService interface {
	Submit(ctx context.Context, e contact.Enquiry) error
}

// Deps are the services behind the HTTP API
type Deps struct {
	Auth     AuthAPI
	Bookings BookingAPI
	Chat     ChatAPI
	Catalog  CatalogService
	Payments PaymentSubmitter
	Poller   PaymentPoller
	Push     PushRegistrar
	Contact  ContactService
	Sessions *session.Manager
	Limiter  *RateLimiter

	ChatInterval   time.Duration
	UnreadInterval time.Duration
	AllowedOrigins []string
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	if deps.Limiter == nil {
		deps.Limiter = NewRateLimiter(10, 3)
	}
	if deps.ChatInterval == 0 {
		deps.ChatInterval = 10 * time.Second
	}
	if deps.UnreadInterval == 0 {
		deps.UnreadInterval = 30 * time.Second
	}
	return &Handler{Deps: deps}
}

// Routes registers every API route on a new router. Route names are the keys of
// config.RouteSecurityConfig.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.authorize)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.HandleFunc("/health", h.health).Methods(http.MethodGet).Name("health")

	api := r.PathPrefix("/api").Subrouter()
	limit := h.Limiter.Limit

	// Auth
	api.HandleFunc("/auth/signup", limit(h.signup)).Methods(http.MethodPost).Name("auth.signup")
	api.HandleFunc("/auth/login", limit(h.login)).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/admin/login", limit(h.adminLogin)).Methods(http.MethodPost).Name("auth.admin_login")
	api.HandleFunc("/auth/forgot-password", limit(h.forgotPassword)).Methods(http.MethodPost).Name("auth.forgot_password")
	api.HandleFunc("/auth/logout", h.logout).Methods(http.MethodPost).Name("auth.logout")

	// Bookings
	api.HandleFunc("/bookings", h.listBookings).Methods(http.MethodGet).Name("bookings.list")
	api.HandleFunc("/bookings", h.createBooking).Methods(http.MethodPost).Name("bookings.create")
	api.HandleFunc("/bookings/{id}", h.getBooking).Methods(http.MethodGet).Name("bookings.get")
	api.HandleFunc("/bookings/{id}", h.updateBooking).Methods(http.MethodPatch).Name("bookings.update")
	api.HandleFunc("/bookings/{id}/status", h.bookingStatus).Methods(http.MethodGet).Name("bookings.status")
	api.HandleFunc("/admin/bookings", h.listAllBookings).Methods(http.MethodGet).Name("admin.bookings")

	// Negotiation
	api.HandleFunc("/bookings/{id}/negotiation", h.requestNegotiation).Methods(http.MethodPost).Name("negotiation.request")
	api.HandleFunc("/bookings/{id}/negotiation/respond", h.respondNegotiation).Methods(http.MethodPost).Name("negotiation.respond")
	api.HandleFunc("/bookings/{id}/negotiations", h.negotiationHistory).Methods(http.MethodGet).Name("negotiation.history")

	// Payments
	api.HandleFunc("/bookings/{id}/payment", h.payDirect).Methods(http.MethodPost).Name("payment.direct")
	api.HandleFunc("/bookings/{id}/payment/negotiated", h.payNegotiated).Methods(http.MethodPost).Name("payment.negotiated")
	api.HandleFunc("/bookings/{id}/payment/wait", h.waitForPayment).Methods(http.MethodGet).Name("payment.wait")

	// Chat
	api.HandleFunc("/bookings/{id}/messages", h.listMessages).Methods(http.MethodGet).Name("chat.list")
	api.HandleFunc("/bookings/{id}/messages", h.sendMessage).Methods(http.MethodPost).Name("chat.send")
	api.HandleFunc("/bookings/{id}/messages/read", h.markRead).Methods(http.MethodPost).Name("chat.mark_read")
	api.HandleFunc("/messages/unread-count", h.unreadCount).Methods(http.MethodGet).Name("chat.unread_count")

	// Catalog
	api.HandleFunc("/helicopters", h.listHelicopters).Methods(http.MethodGet).Name("helicopters.list")
	api.HandleFunc("/admin/helicopters", h.addHelicopter).Methods(http.MethodPost).Name("admin.helicopters.add")
	api.HandleFunc("/admin/helicopters/{id}", h.deleteHelicopter).Methods(http.MethodDelete).Name("admin.helicopters.delete")

	// Notifications and contact
	api.HandleFunc("/notifications/token", h.registerPushToken).Methods(http.MethodPost).Name("notifications.token")
	api.HandleFunc("/notifications/route", h.routeNotification).Methods(http.MethodPost).Name("notifications.route")
	api.HandleFunc("/contact", limit(h.submitContact)).Methods(http.MethodPost).Name("contact.submit")

	// Live feeds
	r.HandleFunc("/ws/bookings/{id}/payment", h.paymentStream).Methods(http.MethodGet).Name("ws.payment")
	r.HandleFunc("/ws/bookings/{id}/chat", h.chatStream).Methods(http.MethodGet).Name("ws.chat")
	r.HandleFunc("/ws/admin/unread", h.unreadStream).Methods(http.MethodGet).Name("ws.unread")

	return r
}

// NewRouter builds the full handler chain: request id, access log, security
// headers, CORS, then the routes.
func NewRouter(deps Deps) http.Handler {
	h := NewHandler(deps)
	return requestID(accessLog(h.Limiter.clientIP, securityHeaders(corsHandler(deps.AllowedOrigins, h.Routes()))))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID reads and checks the {id} route variable
func pathID(r *http.Request) (domain.ID, error) {
	id := domain.ID(mux.Vars(r)["id"])
	if !id.Valid() {
		return "", domain.ValidationError{Field: "id", Msg: "id is invalid"}
	}
	return id, nil
}

// bearer returns the token of the authorized session
func bearer(r *http.Request) string {
	if s := sessionFrom(r.Context()); s != nil {
		return s.Token
	}
	return ""
}
