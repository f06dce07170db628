package api

import (
	"context"
	"net/http"
	"net/url"

	"servicehub/models"
)

func (c *Client) ListProviders(ctx context.Context, token string) ([]models.Provider, error) {
	var providers []models.Provider
	err := c.Get(ctx, token, "/users/providers", &providers)
	return providers, err
}

// ListAvailableProviders returns providers free at scheduledAt.
func (c *Client) ListAvailableProviders(ctx context.Context, token, scheduledAt string) ([]models.Provider, error) {
	var providers []models.Provider
	path := "/users/providers/availability?scheduledAt=" + url.QueryEscape(scheduledAt)
	err := c.Get(ctx, token, path, &providers)
	return providers, err
}

// SetUserStatus suspends (active=false) or re-activates a user.
func (c *Client) SetUserStatus(ctx context.Context, token, userID string, active bool) error {
	path := "/users/" + url.PathEscape(userID) + "/status"
	return c.Do(ctx, token, http.MethodPatch, path, models.ProviderStatusUpdate{Active: active}, nil)
}

// ResetPassword forces the user to choose a new password on next login.
func (c *Client) ResetPassword(ctx context.Context, token, userID string) error {
	return c.Do(ctx, token, http.MethodPost, "/users/"+url.PathEscape(userID)+"/reset-password", nil, nil)
}
