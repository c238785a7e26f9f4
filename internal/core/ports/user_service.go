package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies when creating a user.
// CompanyID is ignored for non-super-admin actors: their own tenant is used.
type CreateUserInput struct {
	Email     string
	Username  string
	Password  string
	Role      string
	CompanyID int64
}

// UpdateUserInput carries a partial profile/status update. Nil fields are
// left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
	Active   *bool
}

// UserService exposes tenant-scoped user management. Every operation takes
// the authenticated actor and enforces the tenant-isolation comparison on
// the target entity, not just on client-supplied parameters.
type UserService interface {
	Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.User, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	// ListAll lists users across all tenants; super_admin only.
	ListAll(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id int64, input UpdateUserInput) (*domain.User, error)
	// Delete removes a user. Deleting a super_admin account is always
	// rejected with domain.ErrSuperAdminProtected.
	Delete(ctx context.Context, actor *domain.User, id int64) error
}
