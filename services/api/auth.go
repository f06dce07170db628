package api

import (
	"context"
	"net/http"

	"servicehub/models"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.Do(ctx, "", http.MethodPost, "/auth/register", req, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var res models.LoginResponse
	if err := c.Do(ctx, "", http.MethodPost, "/auth/login", req, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", &APIError{Status: http.StatusBadGateway, Message: FallbackMessage}
	}
	return res.Token, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, token, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
