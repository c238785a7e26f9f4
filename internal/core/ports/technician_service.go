package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// CreateTechnicianInput carries the fields for a new technician profile.
// CompanyID is honoured only for super_admin actors; everyone else gets the
// tenant derived from their own account.
type CreateTechnicianInput struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
	UserID    int64
	CompanyID int64
}

// UpdateTechnicianInput carries a partial technician update.
type UpdateTechnicianInput struct {
	Name      *string
	Email     *string
	Phone     *string
	Specialty *string
}

// TechnicianService exposes tenant-scoped technician management.
type TechnicianService interface {
	Create(ctx context.Context, actor *domain.User, input CreateTechnicianInput) (*domain.Technician, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Technician, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Technician, error)
	Update(ctx context.Context, actor *domain.User, id int64, input UpdateTechnicianInput) (*domain.Technician, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}
