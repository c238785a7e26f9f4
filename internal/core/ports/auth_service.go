package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// LoginResult carries everything the login endpoint returns: the session for
// the cookie, the sanitized user, and the user's company (nil for
// super_admin).
type LoginResult struct {
	Session *domain.Session
	User    *domain.User
	Company *domain.Company
}

// AuthService implements cookie-session authentication plus the separate
// JWT issuance path used by the mobile app.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	// MobileLogin verifies credentials and returns a signed bearer token
	// instead of creating a session.
	MobileLogin(ctx context.Context, email, password string) (string, *domain.User, error)
}
