package backend

import (
	"context"
	"net/http"

	"helicharter-portal/internal/domain"
)

// InitiatePayment sends a phone payment prompt for the booking's original amount
func (c *Client) InitiatePayment(ctx context.Context, token string, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
	var r domain.PaymentReceipt
	if err := c.do(ctx, "InitiatePayment", token, http.MethodPost, "/payments/mpesa", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// InitiateNegotiatedPayment sends a prompt for the admin-accepted final amount.
// One attempt only; callers own the retry policy.
func (c *Client) InitiateNegotiatedPayment(ctx context.Context, token string, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
	var r domain.PaymentReceipt
	if err := c.do(ctx, "InitiateNegotiatedPayment", token, http.MethodPost, "/payments/mpesa/negotiated", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
