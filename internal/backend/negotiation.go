package backend

import (
	"context"
	"net/http"

	"helicharter-portal/internal/domain"
)

func (c *Client) RequestNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationRequest) (*domain.Booking, error) {
	path, err := bookingPath(id, "/negotiate")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := c.do(ctx, "RequestNegotiation", token, http.MethodPost, path, req, &b, "booking"); err != nil {
		return nil, err
	}
	return &b, nil
}

// RespondNegotiation records the admin's accept (with final amount) or reject
func (c *Client) RespondNegotiation(ctx context.Context, token string, id domain.ID, req domain.NegotiationResponse) (*domain.Booking, error) {
	path, err := bookingPath(id, "/negotiation/respond")
	if err != nil {
		return nil, err
	}
	var b domain.Booking
	if err := c.do(ctx, "RespondNegotiation", token, http.MethodPost, path, req, &b, "booking"); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) NegotiationHistory(ctx context.Context, token string, id domain.ID) ([]domain.Negotiation, error) {
	path, err := bookingPath(id, "/negotiations")
	if err != nil {
		return nil, err
	}
	history := []domain.Negotiation{}
	if err := c.do(ctx, "NegotiationHistory", token, http.MethodGet, path, nil, &history, "negotiations", "history"); err != nil {
		return nil, err
	}
	return history, nil
}
