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

type checkInFixture struct {
	svc     *CheckInService
	store   *memstore.Store
	company *domain.Company
	admin   *domain.User
	tech    *domain.Technician
	techAcc *domain.User
}

func newCheckInFixture(t *testing.T, usageLimit int) *checkInFixture {
	t.Helper()
	store := memstore.New()
	svc := NewCheckInService(store, store, store, store, memstore.NewSyncDeduper(), zerolog.Nop())

	company, err := store.CreateCompany(context.Background(), &domain.Company{
		Name: "Acme Plumbing", Plan: domain.PlanStarter, UsageLimit: usageLimit, IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}

	admin := seedUser(t, store, &domain.User{
		Email: "admin@acme.com", Username: "acmeadmin",
		Role: domain.RoleCompanyAdmin, CompanyID: company.ID, Active: true,
	}, "s3cret99")
	techAcc := seedUser(t, store, &domain.User{
		Email: "tech@acme.com", Username: "acmetech",
		Role: domain.RoleTechnician, CompanyID: company.ID, Active: true,
	}, "s3cret99")

	tech, err := store.CreateTechnician(context.Background(), &domain.Technician{
		CompanyID: company.ID, Name: "Pat", Email: "tech@acme.com", UserID: techAcc.ID,
	})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	return &checkInFixture{svc: svc, store: store, company: company, admin: admin, tech: tech, techAcc: techAcc}
}

func TestCheckInService_Create_TechnicianUsesOwnProfile(t *testing.T) {
	f := newCheckInFixture(t, 0)

	created, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{
		JobType: "Drain Cleaning",
		Address: "12 Main St",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.TechnicianID != f.tech.ID {
		t.Fatalf("expected technician %d, got %d", f.tech.ID, created.TechnicianID)
	}
	if created.CompanyID != f.company.ID {
		t.Fatalf("expected company %d, got %d", f.company.ID, created.CompanyID)
	}
}

func TestCheckInService_Create_AdminCannotUseForeignTechnician(t *testing.T) {
	f := newCheckInFixture(t, 0)
	rival := seedCompany(t, f.store, "Rival Roofing", true)
	foreign, err := f.store.CreateTechnician(context.Background(), &domain.Technician{
		CompanyID: rival.ID, Name: "Sam", Email: "sam@rival.com",
	})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	_, err = f.svc.Create(context.Background(), f.admin, ports.CreateCheckInInput{
		TechnicianID: foreign.ID,
		JobType:      "Roof Repair",
	})
	if !errors.Is(err, domain.ErrTechnicianNotFound) {
		t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
	}
}

func TestCheckInService_Create_UsageLimitEnforced(t *testing.T) {
	f := newCheckInFixture(t, 2)

	for i := 0; i < 2; i++ {
		if _, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{JobType: "Job"}); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}
	_, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{JobType: "Job"})
	if !errors.Is(err, domain.ErrUsageLimitReached) {
		t.Fatalf("expected ErrUsageLimitReached, got %v", err)
	}
}

func TestCheckInService_Create_InactiveCompanyRejected(t *testing.T) {
	f := newCheckInFixture(t, 0)
	f.company.IsActive = false
	if err := f.store.UpdateCompany(context.Background(), f.company); err != nil {
		t.Fatalf("update company: %v", err)
	}

	_, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{JobType: "Job"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCheckInService_Create_BlogDraftGenerated(t *testing.T) {
	f := newCheckInFixture(t, 0)

	created, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{
		JobType:        "Water Heater Install",
		Address:        "12 Main St",
		Notes:          "Replaced the old 40-gallon unit.",
		CreateBlogPost: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	posts, err := f.store.ListBlogPosts(context.Background(), f.company.ID)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(posts))
	}
	if posts[0].CheckInID != created.ID || posts[0].Status != domain.BlogStatusDraft {
		t.Fatalf("unexpected draft: %+v", posts[0])
	}
}

func TestCheckInService_Get_CrossTenantLooksLikeMissing(t *testing.T) {
	f := newCheckInFixture(t, 0)
	created, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{JobType: "Job"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rival := seedCompany(t, f.store, "Rival Roofing", true)
	stranger := &domain.User{ID: 99, Role: domain.RoleCompanyAdmin, CompanyID: rival.ID, Active: true}

	if _, err := f.svc.Get(context.Background(), stranger, created.ID); !errors.Is(err, domain.ErrCheckInNotFound) {
		t.Fatalf("expected ErrCheckInNotFound, got %v", err)
	}
}

func TestCheckInService_List_TechnicianSeesOwnOnly(t *testing.T) {
	f := newCheckInFixture(t, 0)

	other, err := f.store.CreateTechnician(context.Background(), &domain.Technician{
		CompanyID: f.company.ID, Name: "Lee", Email: "lee@acme.com",
	})
	if err != nil {
		t.Fatalf("seed technician: %v", err)
	}

	if _, err := f.svc.Create(context.Background(), f.techAcc, ports.CreateCheckInInput{JobType: "Mine"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), f.admin, ports.CreateCheckInInput{TechnicianID: other.ID, JobType: "Theirs"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	visits, err := f.svc.List(context.Background(), f.techAcc, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visits) != 1 || visits[0].TechnicianID != f.tech.ID {
		t.Fatalf("technician should only see own visits, got %+v", visits)
	}
}

func TestCheckInService_Sync_DeduplicatesByKey(t *testing.T) {
	f := newCheckInFixture(t, 0)
	items := []ports.CreateCheckInInput{
		{JobType: "Job A", SyncKey: "device1-0001"},
		{JobType: "Job B", SyncKey: "device1-0002"},
	}

	first, err := f.svc.Sync(context.Background(), f.techAcc, items)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	for _, r := range first {
		if r.Duplicate || r.Error != "" || r.CheckInID == 0 {
			t.Fatalf("unexpected first-pass result: %+v", r)
		}
	}

	// Replaying the same batch must create nothing new.
	second, err := f.svc.Sync(context.Background(), f.techAcc, items)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	for i, r := range second {
		if !r.Duplicate {
			t.Fatalf("item %d not marked duplicate: %+v", i, r)
		}
		if r.CheckInID != first[i].CheckInID {
			t.Fatalf("duplicate should reference original id %d, got %d", first[i].CheckInID, r.CheckInID)
		}
	}

	visits, err := f.store.ListCheckIns(context.Background(), ports.CheckInFilter{CompanyID: f.company.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 check-ins after replay, got %d", len(visits))
	}
}

func TestCheckInService_Sync_BadItemDoesNotFailBatch(t *testing.T) {
	f := newCheckInFixture(t, 0)
	items := []ports.CreateCheckInInput{
		{JobType: "Job A", SyncKey: ""},
		{JobType: "Job B", SyncKey: "device1-0003"},
	}

	results, err := f.svc.Sync(context.Background(), f.techAcc, items)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if results[0].Error == "" {
		t.Fatalf("missing sync key should error per-item")
	}
	if results[1].Error != "" || results[1].CheckInID == 0 {
		t.Fatalf("valid item should still land: %+v", results[1])
	}
}
