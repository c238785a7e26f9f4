package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/infrastructure/memstore"
)

type countingPublisher struct {
	calls int
	err   error
}

func (p *countingPublisher) Publish(_ context.Context, _ *domain.BlogPost) (int64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return 555, nil
}

func newBlogFixture(t *testing.T) (*BlogService, *memstore.Store, *countingPublisher, *domain.User, *domain.BlogPost) {
	t.Helper()
	store := memstore.New()
	publisher := &countingPublisher{}
	svc := NewBlogService(store, publisher, zerolog.Nop())

	company := seedCompany(t, store, "Acme Plumbing", true)
	admin := seedUser(t, store, &domain.User{
		Email: "admin@acme.com", Username: "acmeadmin",
		Role: domain.RoleCompanyAdmin, CompanyID: company.ID, Active: true,
	}, "s3cret99")
	post, err := store.CreateBlogPost(context.Background(), &domain.BlogPost{
		CompanyID: company.ID, Title: "Drain Cleaning in 12 Main St",
		Content: "Our technician Pat completed a drain cleaning job.",
		Status:  domain.BlogStatusDraft,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return svc, store, publisher, admin, post
}

func TestBlogService_Publish(t *testing.T) {
	svc, store, publisher, admin, post := newBlogFixture(t)

	published, err := svc.Publish(context.Background(), admin, post.ID)
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.Status != domain.BlogStatusPublished || published.WordPressPostID != 555 {
		t.Fatalf("unexpected state: %+v", published)
	}
	if published.PublishedAt.IsZero() {
		t.Fatalf("published timestamp not set")
	}

	stored, _ := store.GetBlogPost(context.Background(), post.ID)
	if stored.Status != domain.BlogStatusPublished {
		t.Fatalf("publish not persisted")
	}
	if publisher.calls != 1 {
		t.Fatalf("expected 1 remote call, got %d", publisher.calls)
	}
}

func TestBlogService_Publish_Idempotent(t *testing.T) {
	svc, _, publisher, admin, post := newBlogFixture(t)

	if _, err := svc.Publish(context.Background(), admin, post.ID); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if _, err := svc.Publish(context.Background(), admin, post.ID); err != nil {
		t.Fatalf("second publish failed: %v", err)
	}
	if publisher.calls != 1 {
		t.Fatalf("already-published post must not hit the remote again: %d calls", publisher.calls)
	}
}

func TestBlogService_Publish_RemoteFailureKeepsDraft(t *testing.T) {
	svc, store, publisher, admin, post := newBlogFixture(t)
	publisher.err = errors.New("remote down")

	if _, err := svc.Publish(context.Background(), admin, post.ID); err == nil {
		t.Fatalf("expected publish error")
	}
	stored, _ := store.GetBlogPost(context.Background(), post.ID)
	if stored.Status != domain.BlogStatusDraft {
		t.Fatalf("failed publish must leave the draft untouched: %s", stored.Status)
	}
}

func TestBlogService_Get_CrossTenantLooksLikeMissing(t *testing.T) {
	svc, store, _, _, post := newBlogFixture(t)
	rival := seedCompany(t, store, "Rival Roofing", true)
	stranger := &domain.User{ID: 99, Role: domain.RoleCompanyAdmin, CompanyID: rival.ID, Active: true}

	if _, err := svc.Get(context.Background(), stranger, post.ID); !errors.Is(err, domain.ErrBlogPostNotFound) {
		t.Fatalf("expected ErrBlogPostNotFound, got %v", err)
	}
}
