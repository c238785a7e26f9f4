package ports

import (
	"context"
	"time"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// UserRepository defines persistence for user identities. Create assigns the
// numeric id and fails with domain.ErrUserExists when the email or username
// is already taken.
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListUsers returns users scoped to companyID; companyID 0 lists all
	// tenants and is reserved for the super-admin console.
	ListUsers(ctx context.Context, companyID int64) ([]*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// CompanyRepository defines persistence for tenants.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, c *domain.Company) (*domain.Company, error)
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]*domain.Company, error)
	UpdateCompany(ctx context.Context, c *domain.Company) error
	DeleteCompany(ctx context.Context, id int64) error
	// ToggleCompanyStatus atomically flips IsActive and returns the new
	// value. Concurrent toggles must each observe a consistent boolean.
	ToggleCompanyStatus(ctx context.Context, id int64) (bool, error)
}

// TechnicianRepository defines persistence for technician profiles.
type TechnicianRepository interface {
	CreateTechnician(ctx context.Context, t *domain.Technician) (*domain.Technician, error)
	GetTechnician(ctx context.Context, id int64) (*domain.Technician, error)
	GetTechnicianByUser(ctx context.Context, userID int64) (*domain.Technician, error)
	ListTechnicians(ctx context.Context, companyID int64) ([]*domain.Technician, error)
	UpdateTechnician(ctx context.Context, t *domain.Technician) error
	DeleteTechnician(ctx context.Context, id int64) error
}

// CheckInFilter carries list parameters; CompanyID is always set by the
// service layer from the authenticated actor, never from client input.
type CheckInFilter struct {
	CompanyID    int64
	TechnicianID int64 // optional
	Limit        int
}

// CheckInRepository defines persistence for job check-ins. CreateCheckIn is
// an admission-checked insert: when usageLimit > 0 and the company already
// has usageLimit check-ins this calendar month, it fails with
// domain.ErrUsageLimitReached without inserting. The count and the insert
// happen under one store-level critical section.
type CheckInRepository interface {
	CreateCheckIn(ctx context.Context, ci *domain.CheckIn, usageLimit int) (*domain.CheckIn, error)
	GetCheckIn(ctx context.Context, id int64) (*domain.CheckIn, error)
	FindCheckInBySyncKey(ctx context.Context, companyID int64, syncKey string) (*domain.CheckIn, error)
	ListCheckIns(ctx context.Context, filter CheckInFilter) ([]*domain.CheckIn, error)
	CountCheckInsSince(ctx context.Context, companyID int64, since time.Time) (int, error)
}

// ReviewRepository defines persistence for review requests and their
// follow-up schedule.
type ReviewRepository interface {
	CreateReviewRequest(ctx context.Context, r *domain.ReviewRequest) (*domain.ReviewRequest, error)
	GetReviewRequest(ctx context.Context, id int64) (*domain.ReviewRequest, error)
	ListReviewRequests(ctx context.Context, companyID int64) ([]*domain.ReviewRequest, error)
	UpdateReviewRequest(ctx context.Context, r *domain.ReviewRequest) error
	// ListDueFollowUps returns requests whose NextFollowUpAt is at or before
	// now, oldest first, capped at limit.
	ListDueFollowUps(ctx context.Context, now time.Time, limit int) ([]*domain.ReviewRequest, error)
}

// BlogPostRepository defines persistence for generated content.
type BlogPostRepository interface {
	CreateBlogPost(ctx context.Context, p *domain.BlogPost) (*domain.BlogPost, error)
	GetBlogPost(ctx context.Context, id int64) (*domain.BlogPost, error)
	ListBlogPosts(ctx context.Context, companyID int64) ([]*domain.BlogPost, error)
	UpdateBlogPost(ctx context.Context, p *domain.BlogPost) error
}

// Directory is the single source of truth for all tenant-scoped entities.
// Routers never touch entity storage except through this interface.
type Directory interface {
	UserRepository
	CompanyRepository
	TechnicianRepository
	CheckInRepository
	ReviewRepository
	BlogPostRepository
}
