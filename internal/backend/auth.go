package backend

import (
	"context"
	"net/http"

	"helicharter-portal/internal/domain"
)

func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.do(ctx, "Signup", "", http.MethodPost, "/auth/signup", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.do(ctx, "Login", "", http.MethodPost, "/auth/login", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AdminLogin(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.do(ctx, "AdminLogin", "", http.MethodPost, "/auth/admin/login", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "Logout", token, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "ForgotPassword", "", http.MethodPost, "/auth/forgot-password", body, nil)
}
