package ports

import (
	"context"
	"time"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// SessionStore maps opaque tokens to authenticated user ids. Get returns
// (nil, nil) for a missing or expired session; absence of identity is a
// normal outcome that the caller must handle, not an error.
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (*domain.Session, error)
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
