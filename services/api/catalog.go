package api

import (
	"context"
	"net/http"
	"net/url"

	"servicehub/models"
)

// ListServices returns the catalogue as customers see it.
func (c *Client) ListServices(ctx context.Context, token string) ([]models.Service, error) {
	var services []models.Service
	err := c.Get(ctx, token, "/services", &services)
	return services, err
}

// ListPublicServices returns the catalogue without authentication; used by
// provider signup to pick offered skills.
func (c *Client) ListPublicServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := c.Get(ctx, "", "/services/public", &services)
	return services, err
}

// ListAdminServices returns the catalogue with admin-only fields.
func (c *Client) ListAdminServices(ctx context.Context, token string) ([]models.Service, error) {
	var services []models.Service
	err := c.Get(ctx, token, "/services/admin", &services)
	return services, err
}

func (c *Client) CreateService(ctx context.Context, token string, in models.ServiceInput) (*models.Service, error) {
	var svc models.Service
	if err := c.Do(ctx, token, http.MethodPost, "/services", in, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *Client) UpdateService(ctx context.Context, token, id string, in models.ServiceInput) (*models.Service, error) {
	var svc models.Service
	if err := c.Do(ctx, token, http.MethodPatch, "/services/"+url.PathEscape(id), in, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (c *Client) DeleteService(ctx context.Context, token, id string) error {
	return c.Do(ctx, token, http.MethodDelete, "/services/"+url.PathEscape(id), nil, nil)
}
