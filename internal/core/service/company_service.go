package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// CompanyService implements tenant management for both the company-facing
// routes and the super-admin console.
type CompanyService struct {
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, log: log}
}

func (s *CompanyService) Create(ctx context.Context, actor *domain.User, input ports.CreateCompanyInput) (*domain.Company, error) {
	if !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	plan := input.Plan
	if plan == "" {
		plan = domain.PlanStarter
	}
	if !domain.ValidPlan(plan) {
		return nil, domain.ErrInvalidPlan
	}

	company := &domain.Company{
		Name:       input.Name,
		Plan:       plan,
		UsageLimit: input.UsageLimit,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	created, err := s.companies.CreateCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("company_id", created.ID).Str("plan", created.Plan).Msg("company created")
	return created, nil
}

// Get enforces the tenant comparison on the entity itself: a non-super-admin
// actor asking for another tenant's company is denied regardless of how the
// id was supplied.
func (s *CompanyService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Company, error) {
	if !actor.CanAccessCompany(id) {
		s.log.Warn().
			Int64("actor_id", actor.ID).
			Str("role", actor.Role).
			Int64("target_company_id", id).
			Msg("cross-tenant company access denied")
		return nil, domain.ErrForbidden
	}
	return s.companies.GetCompany(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, actor *domain.User) ([]*domain.Company, error) {
	if !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.companies.ListCompanies(ctx)
}

func (s *CompanyService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	// Plan and usage limits are billing-adjacent: super-admin only.
	if input.Plan != nil || input.UsageLimit != nil {
		if !actor.IsSuperAdmin() {
			return nil, domain.ErrForbidden
		}
		if input.Plan != nil {
			if !domain.ValidPlan(*input.Plan) {
				return nil, domain.ErrInvalidPlan
			}
			company.Plan = *input.Plan
		}
		if input.UsageLimit != nil {
			company.UsageLimit = *input.UsageLimit
		}
	}

	if err := s.companies.UpdateCompany(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !actor.IsSuperAdmin() {
		return domain.ErrForbidden
	}
	return s.companies.DeleteCompany(ctx, id)
}

func (s *CompanyService) ToggleStatus(ctx context.Context, actor *domain.User, id int64) (bool, error) {
	if !actor.IsSuperAdmin() {
		return false, domain.ErrForbidden
	}
	active, err := s.companies.ToggleCompanyStatus(ctx, id)
	if err != nil {
		return false, err
	}
	s.log.Info().
		Int64("company_id", id).
		Bool("is_active", active).
		Int64("actor_id", actor.ID).
		Msg("company status toggled")
	return active, nil
}
