package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// UserService implements tenant-scoped user management.
type UserService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, companies ports.CompanyRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, companies: companies, log: log}
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if input.Email == "" || input.Username == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	// Only the super-admin console can mint another super_admin.
	if input.Role == domain.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}

	// The tenant is derived from the actor; client-supplied company ids are
	// honoured only for super_admin.
	companyID := actor.CompanyID
	if actor.IsSuperAdmin() {
		companyID = input.CompanyID
	}
	if input.Role != domain.RoleSuperAdmin {
		if companyID == 0 {
			return nil, domain.ErrCompanyRequired
		}
		if _, err := s.companies.GetCompany(ctx, companyID); err != nil {
			return nil, err
		}
	} else {
		companyID = 0
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
		CompanyID:    companyID,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("role", created.Role).
		Int64("company_id", created.CompanyID).
		Int64("actor_id", actor.ID).
		Msg("user created")

	return created, nil
}

// Get re-derives the target's tenant and compares it to the actor's own, so
// a forged id in the URL never crosses the tenant boundary.
func (s *UserService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != user.ID && !actor.CanAccessCompany(user.CompanyID) {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if actor.IsSuperAdmin() {
		return s.users.ListUsers(ctx, 0)
	}
	return s.users.ListUsers(ctx, actor.CompanyID)
}

func (s *UserService) ListAll(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.ListUsers(ctx, 0)
}

func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if input.Active != nil {
		// Only admins flip the active gate; a user cannot lock out peers.
		if !actor.IsCompanyAdmin() {
			return nil, domain.ErrForbidden
		}
		user.Active = *input.Active
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if user.IsSuperAdmin() {
		s.log.Warn().
			Int64("actor_id", actor.ID).
			Int64("target_id", id).
			Msg("refused deletion of super admin account")
		return domain.ErrSuperAdminProtected
	}
	return s.users.DeleteUser(ctx, id)
}
