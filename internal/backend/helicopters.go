package backend

import (
	"context"
	"net/http"
	"net/url"

	"helicharter-portal/internal/domain"
)

func (c *Client) ListHelicopters(ctx context.Context) ([]domain.Helicopter, error) {
	helis := []domain.Helicopter{}
	if err := c.do(ctx, "ListHelicopters", "", http.MethodGet, "/helicopters", nil, &helis, "helicopters"); err != nil {
		return nil, err
	}
	return helis, nil
}

func (c *Client) AddHelicopter(ctx context.Context, token string, req domain.AddHelicopterRequest) (*domain.Helicopter, error) {
	var h domain.Helicopter
	if err := c.do(ctx, "AddHelicopter", token, http.MethodPost, "/helicopters", req, &h, "helicopter"); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) DeleteHelicopter(ctx context.Context, token string, id domain.ID) error {
	if !id.Valid() {
		return domain.ValidationError{Field: "helicopter_id", Msg: "helicopter id is invalid"}
	}
	return c.do(ctx, "DeleteHelicopter", token, http.MethodDelete, "/helicopters/"+url.PathEscape(id.String()), nil, nil)
}

// RegisterFCMToken stores the browser's push token against the signed-in user
func (c *Client) RegisterFCMToken(ctx context.Context, token, fcmToken string) error {
	body := domain.FCMTokenRequest{Token: fcmToken}
	return c.do(ctx, "RegisterFCMToken", token, http.MethodPost, "/users/fcm-token", body, nil)
}
