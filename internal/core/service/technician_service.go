package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// TechnicianService implements tenant-scoped technician profile management.
type TechnicianService struct {
	technicians ports.TechnicianRepository
	users       ports.UserRepository
	companies   ports.CompanyRepository
	log         zerolog.Logger
}

func NewTechnicianService(technicians ports.TechnicianRepository, users ports.UserRepository, companies ports.CompanyRepository, log zerolog.Logger) *TechnicianService {
	return &TechnicianService{technicians: technicians, users: users, companies: companies, log: log}
}

func (s *TechnicianService) Create(ctx context.Context, actor *domain.User, input ports.CreateTechnicianInput) (*domain.Technician, error) {
	// Every technician belongs to exactly one company. The tenant is
	// derived from the actor; a client-supplied company id is honoured
	// only for super_admin and must name an existing company.
	companyID := actor.CompanyID
	if actor.IsSuperAdmin() {
		companyID = input.CompanyID
	}
	if companyID == 0 {
		return nil, domain.ErrCompanyRequired
	}
	if _, err := s.companies.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	// A linked login account must belong to the same tenant.
	if input.UserID != 0 {
		linked, err := s.users.GetUser(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if linked.CompanyID != companyID {
			return nil, domain.ErrUserNotFound
		}
	}

	tech := &domain.Technician{
		CompanyID: companyID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Specialty: input.Specialty,
		UserID:    input.UserID,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.technicians.CreateTechnician(ctx, tech)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("technician_id", created.ID).
		Int64("company_id", created.CompanyID).
		Msg("technician created")
	return created, nil
}

// Get re-derives the technician's tenant from the stored record before
// comparing; the route-level gate alone is not sufficient for by-id access.
func (s *TechnicianService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Technician, error) {
	tech, err := s.technicians.GetTechnician(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(tech.CompanyID) {
		return nil, domain.ErrTechnicianNotFound
	}
	return tech, nil
}

func (s *TechnicianService) List(ctx context.Context, actor *domain.User) ([]*domain.Technician, error) {
	if actor.IsSuperAdmin() {
		return s.technicians.ListTechnicians(ctx, 0)
	}
	return s.technicians.ListTechnicians(ctx, actor.CompanyID)
}

func (s *TechnicianService) Update(ctx context.Context, actor *domain.User, id int64, input ports.UpdateTechnicianInput) (*domain.Technician, error) {
	tech, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tech.Name = *input.Name
	}
	if input.Email != nil {
		tech.Email = *input.Email
	}
	if input.Phone != nil {
		tech.Phone = *input.Phone
	}
	if input.Specialty != nil {
		tech.Specialty = *input.Specialty
	}

	if err := s.technicians.UpdateTechnician(ctx, tech); err != nil {
		return nil, err
	}
	return tech, nil
}

func (s *TechnicianService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.technicians.DeleteTechnician(ctx, id)
}
