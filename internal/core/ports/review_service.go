package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// CreateReviewRequestInput carries a new review solicitation tied to a
// completed check-in.
type CreateReviewRequestInput struct {
	CheckInID    int64
	CustomerName string
	Email        string
	Phone        string
	Method       string
}

// ReviewService exposes review-request creation and the follow-up pipeline.
// Process handles one scheduled send and is invoked by the dispatcher
// workers, never by handlers directly.
type ReviewService interface {
	Create(ctx context.Context, actor *domain.User, input CreateReviewRequestInput) (*domain.ReviewRequest, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.ReviewRequest, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.ReviewRequest, error)
	// MarkResponded stops the follow-up schedule for a request once the
	// customer has left a review.
	MarkResponded(ctx context.Context, actor *domain.User, id int64) (*domain.ReviewRequest, error)
	Process(ctx context.Context, job ReviewJob) error
	// CollectDue returns jobs whose follow-up time has passed, for the
	// scanning ticker to enqueue.
	CollectDue(ctx context.Context, limit int) ([]ReviewJob, error)
}

// ReviewJob is the unit of work handed to the follow-up dispatcher.
type ReviewJob struct {
	RequestID int64
	FollowUp  bool
}
