package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// CreateCompanyInput carries the fields for tenant provisioning.
type CreateCompanyInput struct {
	Name       string
	Plan       string
	UsageLimit int
}

// UpdateCompanyInput carries a partial company update. Nil fields are left
// untouched; Plan and UsageLimit changes are super-admin only.
type UpdateCompanyInput struct {
	Name       *string
	Plan       *string
	UsageLimit *int
}

// CompanyService exposes tenant management. Get and Update re-check the
// actor's tenant against the target id; Create, Delete, List and
// ToggleStatus back the super-admin console.
type CompanyService interface {
	Create(ctx context.Context, actor *domain.User, input CreateCompanyInput) (*domain.Company, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Company, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Company, error)
	Update(ctx context.Context, actor *domain.User, id int64, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	// ToggleStatus atomically flips the tenant's active flag and returns
	// the resulting value.
	ToggleStatus(ctx context.Context, actor *domain.User, id int64) (bool, error)
}
