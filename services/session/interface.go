package session

import (
	"context"
	"time"

	"servicehub/models"
)

// Store persists session records keyed by session id.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// AuthAPI is the slice of the remote API the manager needs.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
}
