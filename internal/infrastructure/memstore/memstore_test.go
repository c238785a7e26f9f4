package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// Compile-time interface checks.
var (
	_ ports.Directory    = (*Store)(nil)
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.RateLimiter  = (*FixedWindowLimiter)(nil)
	_ ports.SyncDeduper  = (*SyncDeduper)(nil)
)

func TestStore_CreateUser_DuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, &domain.User{Email: "a@b.com", Username: "one"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := s.CreateUser(ctx, &domain.User{Email: "A@B.COM", Username: "two"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("case-insensitive duplicate email not rejected: %v", err)
	}
	if _, err := s.CreateUser(ctx, &domain.User{Email: "c@d.com", Username: "one"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username not rejected: %v", err)
	}
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &domain.User{Email: "a@b.com", Username: "one", Role: domain.RoleTechnician})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, _ := s.GetUser(ctx, created.ID)
	got.Role = domain.RoleSuperAdmin // mutate the copy

	again, _ := s.GetUser(ctx, created.ID)
	if again.Role != domain.RoleTechnician {
		t.Fatalf("store leaked a mutable reference")
	}
}

func TestStore_ToggleCompanyStatus_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, err := s.CreateCompany(ctx, &domain.Company{Name: "Acme", Plan: domain.PlanPro, IsActive: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const toggles = 100
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ToggleCompanyStatus(ctx, c.ID); err != nil {
				t.Errorf("toggle failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// An even number of flips lands back on the starting value.
	got, _ := s.GetCompany(ctx, c.ID)
	if !got.IsActive {
		t.Fatalf("after %d toggles expected active=true", toggles)
	}
}

func TestStore_CreateCheckIn_UsageLimitUnderContention(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, err := s.CreateCompany(ctx, &domain.Company{Name: "Acme", Plan: domain.PlanStarter, UsageLimit: 10, IsActive: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	const attempts = 50
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateCheckIn(ctx, &domain.CheckIn{CompanyID: c.ID, JobType: "Job"}, 10)
			if err != nil && !errors.Is(err, domain.ErrUsageLimitReached) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	count, err := s.CountCheckInsSince(ctx, c.ID, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 10 {
		t.Fatalf("admission must stop exactly at the cap: got %d", count)
	}
}

func TestStore_ListDueFollowUps(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	due, _ := s.CreateReviewRequest(ctx, &domain.ReviewRequest{CompanyID: 1, Status: domain.ReviewStatusSent, NextFollowUpAt: now.Add(-time.Minute)})
	_, _ = s.CreateReviewRequest(ctx, &domain.ReviewRequest{CompanyID: 1, Status: domain.ReviewStatusSent, NextFollowUpAt: now.Add(time.Hour)})
	_, _ = s.CreateReviewRequest(ctx, &domain.ReviewRequest{CompanyID: 1, Status: domain.ReviewStatusResponded})

	got, err := s.ListDueFollowUps(ctx, now, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != due.ID {
		t.Fatalf("expected only the overdue request, got %+v", got)
	}
}

func TestSessionStore_ExpiryIsAMiss(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, 7, -time.Minute) // already expired
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.Get(ctx, sess.Token)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expired session must read as absent")
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	sess, err := s.Create(ctx, 7, time.Hour)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	got, err := s.Get(ctx, sess.Token)
	if err != nil || got == nil || got.UserID != 7 {
		t.Fatalf("get returned %+v, %v", got, err)
	}

	if err := s.Delete(ctx, sess.Token); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got, _ := s.Get(ctx, sess.Token); got != nil {
		t.Fatalf("deleted session must read as absent")
	}
}

func TestFixedWindowLimiter(t *testing.T) {
	l := NewFixedWindowLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("request %d should pass: ok=%v err=%v", i, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Fatalf("fourth request in the window must be limited")
	}
	// Other keys have their own window.
	if ok, _ := l.Allow(ctx, "10.0.0.2"); !ok {
		t.Fatalf("separate key must not be limited")
	}
}

func TestFixedWindowLimiter_PruneKeepsCurrentWindows(t *testing.T) {
	l := NewFixedWindowLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		l.Allow(ctx, "10.0.0.1")
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Fatalf("exhausted key must be limited")
	}

	// Grow the map past the prune threshold within the same window. The
	// prune must not reset live counts.
	for i := 0; i < 5000; i++ {
		l.Allow(ctx, fmt.Sprintf("10.1.%d.%d", i/256, i%256))
	}
	if ok, _ := l.Allow(ctx, "10.0.0.1"); ok {
		t.Fatalf("exhausted key re-admitted after prune")
	}
}

func TestSyncDeduper(t *testing.T) {
	d := NewSyncDeduper()
	ctx := context.Background()

	dup, _ := d.IsDuplicate(ctx, 1, "key-1")
	if dup {
		t.Fatalf("fresh key reported duplicate")
	}
	if err := d.Mark(ctx, 1, "key-1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if dup, _ = d.IsDuplicate(ctx, 1, "key-1"); !dup {
		t.Fatalf("marked key not reported duplicate")
	}
	// Same key under another tenant is independent.
	if dup, _ = d.IsDuplicate(ctx, 2, "key-1"); dup {
		t.Fatalf("dedup keys must be tenant-scoped")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := Seed(ctx, s, DefaultSeed()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := Seed(ctx, s, DefaultSeed()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	users, _ := s.ListUsers(ctx, 0)
	if len(users) != len(DefaultSeed()) {
		t.Fatalf("expected %d users, got %d", len(DefaultSeed()), len(users))
	}
	companies, _ := s.ListCompanies(ctx)
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
	techs, _ := s.ListTechnicians(ctx, companies[0].ID)
	if len(techs) != 1 {
		t.Fatalf("expected 1 technician profile, got %d", len(techs))
	}
}
