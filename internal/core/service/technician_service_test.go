package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
	"github.com/rbtech24/rankitpro/internal/infrastructure/memstore"
)

func TestTechnicianService_Create_LinkedUserMustShareTenant(t *testing.T) {
	store := memstore.New()
	svc := NewTechnicianService(store, store, store, zerolog.Nop())

	company := seedCompany(t, store, "Acme Plumbing", true)
	rival := seedCompany(t, store, "Rival Roofing", true)
	admin := seedUser(t, store, &domain.User{
		Email: "admin@acme.com", Username: "acmeadmin",
		Role: domain.RoleCompanyAdmin, CompanyID: company.ID, Active: true,
	}, "s3cret99")
	outsider := seedUser(t, store, &domain.User{
		Email: "tech@rival.com", Username: "rivaltech",
		Role: domain.RoleTechnician, CompanyID: rival.ID, Active: true,
	}, "s3cret99")

	_, err := svc.Create(context.Background(), admin, ports.CreateTechnicianInput{
		Name: "Sam", Email: "tech@rival.com", UserID: outsider.ID,
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for cross-tenant link, got %v", err)
	}
}

func TestTechnicianService_Create_AlwaysHasTenant(t *testing.T) {
	store := memstore.New()
	svc := NewTechnicianService(store, store, store, zerolog.Nop())

	company := seedCompany(t, store, "Acme Plumbing", true)
	super := seedUser(t, store, &domain.User{
		Email: "root@rankitpro.com", Username: "root",
		Role: domain.RoleSuperAdmin, Active: true,
	}, "s3cret99")

	// Without a target company there is no tenant to attach the profile to.
	_, err := svc.Create(context.Background(), super, ports.CreateTechnicianInput{
		Name: "Orphan", Email: "orphan@acme.com",
	})
	if !errors.Is(err, domain.ErrCompanyRequired) {
		t.Fatalf("expected ErrCompanyRequired, got %v", err)
	}

	// A nonexistent target company is rejected too.
	_, err = svc.Create(context.Background(), super, ports.CreateTechnicianInput{
		Name: "Ghost", Email: "ghost@acme.com", CompanyID: 9999,
	})
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}

	// Naming a real company places the profile in that tenant.
	tech, err := svc.Create(context.Background(), super, ports.CreateTechnicianInput{
		Name: "Sam", Email: "sam@acme.com", CompanyID: company.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tech.CompanyID != company.ID {
		t.Fatalf("technician CompanyID = %d, want %d", tech.CompanyID, company.ID)
	}
}

func TestTechnicianService_Create_CompanyAdminIgnoresClientCompanyID(t *testing.T) {
	store := memstore.New()
	svc := NewTechnicianService(store, store, store, zerolog.Nop())

	company := seedCompany(t, store, "Acme Plumbing", true)
	rival := seedCompany(t, store, "Rival Roofing", true)
	admin := seedUser(t, store, &domain.User{
		Email: "admin@acme.com", Username: "acmeadmin",
		Role: domain.RoleCompanyAdmin, CompanyID: company.ID, Active: true,
	}, "s3cret99")

	tech, err := svc.Create(context.Background(), admin, ports.CreateTechnicianInput{
		Name: "Sam", Email: "sam@acme.com", CompanyID: rival.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tech.CompanyID != company.ID {
		t.Fatalf("technician planted in company %d, want actor's %d", tech.CompanyID, company.ID)
	}
}

func TestTechnicianService_Get_CrossTenantLooksLikeMissing(t *testing.T) {
	store := memstore.New()
	svc := NewTechnicianService(store, store, store, zerolog.Nop())

	company := seedCompany(t, store, "Acme Plumbing", true)
	rival := seedCompany(t, store, "Rival Roofing", true)
	admin := seedUser(t, store, &domain.User{
		Email: "admin@acme.com", Username: "acmeadmin",
		Role: domain.RoleCompanyAdmin, CompanyID: company.ID, Active: true,
	}, "s3cret99")

	foreign, err := store.CreateTechnician(context.Background(), &domain.Technician{
		CompanyID: rival.ID, Name: "Sam",
	})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	if _, err := svc.Get(context.Background(), admin, foreign.ID); !errors.Is(err, domain.ErrTechnicianNotFound) {
		t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
	}
}
