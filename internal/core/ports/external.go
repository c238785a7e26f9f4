package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// Notifier delivers review solicitations. Actual email/SMS delivery is an
// external collaborator; the production wiring may be a logging stub.
type Notifier interface {
	SendReviewRequest(ctx context.Context, req *domain.ReviewRequest, followUp bool) error
}

// BlogPublisher pushes a post to the remote CMS and returns the remote
// post id.
type BlogPublisher interface {
	Publish(ctx context.Context, post *domain.BlogPost) (int64, error)
}

// SyncDeduper provides idempotency checks for the mobile offline-sync path.
type SyncDeduper interface {
	IsDuplicate(ctx context.Context, companyID int64, syncKey string) (bool, error)
	Mark(ctx context.Context, companyID int64, syncKey string) error
}

// RateLimiter is the blunt fixed-window admission check fronting the API.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
