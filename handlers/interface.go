package handlers

import (
	"context"

	"servicehub/models"
)

// CatalogAPI is the part of the marketplace API that manages services.
type CatalogAPI interface {
	ListServices(ctx context.Context, token string) ([]models.Service, error)
	ListPublicServices(ctx context.Context) ([]models.Service, error)
	ListAdminServices(ctx context.Context, token string) ([]models.Service, error)
	CreateService(ctx context.Context, token string, in models.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, token, id string, in models.ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, token, id string) error
}

// UserAPI is the part of the marketplace API that manages provider accounts.
type UserAPI interface {
	ListProviders(ctx context.Context, token string) ([]models.Provider, error)
	ListAvailableProviders(ctx context.Context, token, scheduledAt string) ([]models.Provider, error)
	SetUserStatus(ctx context.Context, token, userID string, active bool) error
	ResetPassword(ctx context.Context, token, userID string) error
}
