package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"helicharter-portal/internal/contact"
	"helicharter-portal/internal/domain"
	"helicharter-portal/internal/poller"
)

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuth) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuth) AdminLogin(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuth) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuth) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) CreateBooking(ctx context.Context, token string, req domain.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) UpdateBooking(ctx context.Context, token string, id domain.ID, req domain.UpdateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) ListBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookings) ListAllBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookings) GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) GetBookingStatus(ctx context.Context, token string, id domain.ID) (*domain.StatusSnapshot, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusSnapshot), args.Error(1)
}

func (m *MockBookings) RequestNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationRequest) (*domain.Booking, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) RespondNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationResponse) (*domain.Booking, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookings) NegotiationHistory(ctx context.Context, token string, id domain.ID) ([]domain.Negotiation, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Negotiation), args.Error(1)
}

type MockChat struct {
	mock.Mock
}

func (m *MockChat) ListMessages(ctx context.Context, token string, bookingID domain.ID) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, token, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockChat) SendMessage(ctx context.Context, token string, bookingID domain.ID, req domain.SendMessageRequest) (*domain.ChatMessage, error) {
	args := m.Called(ctx, token, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

func (m *MockChat) MarkMessagesRead(ctx context.Context, token string, bookingID domain.ID) error {
	args := m.Called(ctx, token, bookingID)
	return args.Error(0)
}

func (m *MockChat) UnreadCount(ctx context.Context, token string) (*domain.UnreadCount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnreadCount), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) List(ctx context.Context) ([]domain.HelicopterListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HelicopterListing), args.Error(1)
}

func (m *MockCatalog) Add(ctx context.Context, token string, req domain.AddHelicopterRequest) (*domain.HelicopterListing, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelicopterListing), args.Error(1)
}

func (m *MockCatalog) Delete(ctx context.Context, token string, id domain.ID) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) SubmitDirect(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, token, bookingID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

func (m *MockPayments) SubmitNegotiated(ctx context.Context, token string, bookingID domain.ID, phone string) (*domain.PaymentReceipt, error) {
	args := m.Called(ctx, token, bookingID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentReceipt), args.Error(1)
}

type MockPoller struct {
	mock.Mock
}

func (m *MockPoller) Poll(ctx context.Context, token string, bookingID domain.ID, onTick func(poller.Tick)) (*poller.Outcome, error) {
	args := m.Called(ctx, token, bookingID, onTick)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*poller.Outcome), args.Error(1)
}

func (m *MockPoller) Config() poller.Config {
	args := m.Called()
	return args.Get(0).(poller.Config)
}

type MockPush struct {
	mock.Mock
}

func (m *MockPush) Register(ctx context.Context, token, fcmToken string, role domain.Role) error {
	args := m.Called(ctx, token, fcmToken, role)
	return args.Error(0)
}

type MockContact struct {
	mock.Mock
}

func (m *MockContact) Submit(ctx context.Context, e contact.Enquiry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
