package backend

import (
	"context"
	"net/http"

	"helicharter-portal/internal/domain"
)

func (c *Client) CreateBooking(ctx context.Context, token string, req domain.CreateBookingRequest) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.do(ctx, "CreateBooking", token, http.MethodPost, "/bookings", req, &b, "booking"); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBooking requests a transition or field change. The backend decides whether it is allowed.
func (c *Client) UpdateBooking(ctx context.Context, token string, id domain.ID, req domain.UpdateBookingRequest) (*domain.Booking, error) {
	path, err := bookingPath(id, "")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := c.do(ctx, "UpdateBooking", token, http.MethodPut, path, req, &b, "booking"); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings returns the signed-in user's bookings
func (c *Client) ListBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	if err := c.do(ctx, "ListBookings", token, http.MethodGet, "/bookings", nil, &bookings, "bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListAllBookings returns every booking; admin tokens only
func (c *Client) ListAllBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	bookings := []domain.Booking{}
	if err := c.do(ctx, "ListAllBookings", token, http.MethodGet, "/admin/bookings", nil, &bookings, "bookings"); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, token string, id domain.ID) (*domain.Booking, error) {
	path, err := bookingPath(id, "")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := c.do(ctx, "GetBooking", token, http.MethodGet, path, nil, &b, "booking"); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBookingStatus reads the lightweight status endpoint used as the poll fallback
func (c *Client) GetBookingStatus(ctx context.Context, token string, id domain.ID) (*domain.StatusSnapshot, error) {
	path, err := bookingPath(id, "/status")
	if err != nil {
		return nil, err
	}
	var s domain.StatusSnapshot
	if err := c.do(ctx, "GetBookingStatus", token, http.MethodGet, path, nil, &s); err != nil {
		return nil, err
	}
	if s.BookingID == "" {
		s.BookingID = id
	}
	return &s, nil
}
