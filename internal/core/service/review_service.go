package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// ReviewService implements review-request creation and the follow-up
// pipeline. Creation only persists the request and its first schedule; all
// sends run through Process on the dispatcher workers.
type ReviewService struct {
	reviews  ports.ReviewRepository
	checkIns ports.CheckInRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	checkIns ports.CheckInRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, checkIns: checkIns, notifier: notifier, log: log}
}

func (s *ReviewService) Create(ctx context.Context, actor *domain.User, input ports.CreateReviewRequestInput) (*domain.ReviewRequest, error) {
	if input.Method != domain.ReviewMethodEmail && input.Method != domain.ReviewMethodSMS {
		input.Method = domain.ReviewMethodEmail
	}

	// The request inherits its tenant from the check-in, which must itself
	// be reachable by the actor.
	checkIn, err := s.checkIns.GetCheckIn(ctx, input.CheckInID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(checkIn.CompanyID) {
		return nil, domain.ErrCheckInNotFound
	}

	now := time.Now().UTC()
	req := &domain.ReviewRequest{
		CompanyID:      checkIn.CompanyID,
		CheckInID:      checkIn.ID,
		TechnicianID:   checkIn.TechnicianID,
		CustomerName:   input.CustomerName,
		Email:          input.Email,
		Phone:          input.Phone,
		Method:         input.Method,
		Status:         domain.ReviewStatusPending,
		NextFollowUpAt: now, // initial send is due immediately
		CreatedAt:      now,
	}

	created, err := s.reviews.CreateReviewRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("review_request_id", created.ID).
		Int64("company_id", created.CompanyID).
		Str("method", created.Method).
		Msg("review request created")
	return created, nil
}

func (s *ReviewService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.ReviewRequest, error) {
	req, err := s.reviews.GetReviewRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(req.CompanyID) {
		return nil, domain.ErrReviewNotFound
	}
	return req, nil
}

func (s *ReviewService) List(ctx context.Context, actor *domain.User) ([]*domain.ReviewRequest, error) {
	if actor.IsSuperAdmin() {
		return s.reviews.ListReviewRequests(ctx, 0)
	}
	return s.reviews.ListReviewRequests(ctx, actor.CompanyID)
}

func (s *ReviewService) MarkResponded(ctx context.Context, actor *domain.User, id int64) (*domain.ReviewRequest, error) {
	req, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	req.Status = domain.ReviewStatusResponded
	req.NextFollowUpAt = time.Time{}
	if err := s.reviews.UpdateReviewRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Process performs one scheduled send and advances the follow-up schedule.
// Invoked only by dispatcher workers.
func (s *ReviewService) Process(ctx context.Context, job ports.ReviewJob) error {
	req, err := s.reviews.GetReviewRequest(ctx, job.RequestID)
	if err != nil {
		return fmt.Errorf("process review job: %w", err)
	}

	// The customer may have responded between scheduling and processing.
	if req.Status == domain.ReviewStatusResponded || req.Status == domain.ReviewStatusExhausted {
		return nil
	}

	if err := s.notifier.SendReviewRequest(ctx, req, job.FollowUp); err != nil {
		return fmt.Errorf("process review job: send: %w", err)
	}

	now := time.Now().UTC()
	req.SentAt = now
	req.Status = domain.ReviewStatusSent
	if job.FollowUp {
		req.FollowUpCount++
	}

	if next, ok := req.NextFollowUpDue(now); ok {
		req.NextFollowUpAt = next
	} else {
		req.NextFollowUpAt = time.Time{}
		req.Status = domain.ReviewStatusExhausted
	}

	if err := s.reviews.UpdateReviewRequest(ctx, req); err != nil {
		return fmt.Errorf("process review job: update: %w", err)
	}

	s.log.Info().
		Int64("review_request_id", req.ID).
		Bool("follow_up", job.FollowUp).
		Int("follow_up_count", req.FollowUpCount).
		Msg("review request sent")
	return nil
}

// CollectDue claims requests whose schedule has elapsed. Claiming clears
// NextFollowUpAt before the job is enqueued so a request is never picked up
// by two scan cycles.
func (s *ReviewService) CollectDue(ctx context.Context, limit int) ([]ports.ReviewJob, error) {
	due, err := s.reviews.ListDueFollowUps(ctx, time.Now().UTC(), limit)
	if err != nil {
		return nil, err
	}

	jobs := make([]ports.ReviewJob, 0, len(due))
	for _, req := range due {
		job := ports.ReviewJob{RequestID: req.ID, FollowUp: req.Status == domain.ReviewStatusSent}
		claimed := *req
		claimed.NextFollowUpAt = time.Time{}
		if err := s.reviews.UpdateReviewRequest(ctx, &claimed); err != nil {
			s.log.Warn().Err(err).Int64("review_request_id", req.ID).Msg("failed to claim due follow-up")
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
