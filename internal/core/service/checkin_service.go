package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

const defaultListLimit = 50

// CheckInService implements check-in submission, listing, and the mobile
// offline-sync batch path. Blog drafts are generated here because the visit
// data is the content source.
type CheckInService struct {
	checkIns    ports.CheckInRepository
	technicians ports.TechnicianRepository
	companies   ports.CompanyRepository
	blogPosts   ports.BlogPostRepository
	dedup       ports.SyncDeduper
	log         zerolog.Logger
}

func NewCheckInService(
	checkIns ports.CheckInRepository,
	technicians ports.TechnicianRepository,
	companies ports.CompanyRepository,
	blogPosts ports.BlogPostRepository,
	dedup ports.SyncDeduper,
	log zerolog.Logger,
) *CheckInService {
	return &CheckInService{
		checkIns:    checkIns,
		technicians: technicians,
		companies:   companies,
		blogPosts:   blogPosts,
		dedup:       dedup,
		log:         log,
	}
}

func (s *CheckInService) Create(ctx context.Context, actor *domain.User, input ports.CreateCheckInInput) (*domain.CheckIn, error) {
	if actor.CompanyID == 0 {
		return nil, domain.ErrCompanyRequired
	}
	company, err := s.companies.GetCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, domain.ErrForbidden
	}

	tech, err := s.resolveTechnician(ctx, actor, input.TechnicianID)
	if err != nil {
		return nil, err
	}

	checkIn := &domain.CheckIn{
		CompanyID:     company.ID,
		TechnicianID:  tech.ID,
		JobType:       input.JobType,
		Notes:         input.Notes,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Address:       input.Address,
		Photos:        input.Photos,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		SyncKey:       input.SyncKey,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.checkIns.CreateCheckIn(ctx, checkIn, company.UsageLimit)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("check_in_id", created.ID).
		Int64("company_id", created.CompanyID).
		Int64("technician_id", created.TechnicianID).
		Str("job_type", created.JobType).
		Msg("check-in created")

	// Draft generation is best effort: a failed draft never fails the visit.
	if input.CreateBlogPost {
		if _, err := s.generateBlogPost(ctx, created, tech); err != nil {
			s.log.Warn().Err(err).Int64("check_in_id", created.ID).Msg("failed to generate blog draft")
		}
	}

	return created, nil
}

// resolveTechnician maps the actor to the technician profile the check-in is
// recorded against. Technician-role actors always use their own linked
// profile; admins name one explicitly, subject to the tenant comparison.
func (s *CheckInService) resolveTechnician(ctx context.Context, actor *domain.User, technicianID int64) (*domain.Technician, error) {
	if actor.Role == domain.RoleTechnician {
		return s.technicians.GetTechnicianByUser(ctx, actor.ID)
	}
	if technicianID == 0 {
		return nil, domain.ErrTechnicianNotFound
	}
	tech, err := s.technicians.GetTechnician(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(tech.CompanyID) {
		return nil, domain.ErrTechnicianNotFound
	}
	return tech, nil
}

func (s *CheckInService) generateBlogPost(ctx context.Context, ci *domain.CheckIn, tech *domain.Technician) (*domain.BlogPost, error) {
	title := fmt.Sprintf("%s in %s", ci.JobType, ci.Address)
	if ci.Address == "" {
		title = ci.JobType
	}
	content := fmt.Sprintf("Our technician %s completed a %s job", tech.Name, ci.JobType)
	if ci.Address != "" {
		content += " at " + ci.Address
	}
	content += "."
	if ci.Notes != "" {
		content += "\n\n" + ci.Notes
	}

	post := &domain.BlogPost{
		CompanyID: ci.CompanyID,
		CheckInID: ci.ID,
		Title:     title,
		Content:   content,
		Status:    domain.BlogStatusDraft,
		CreatedAt: time.Now().UTC(),
	}
	return s.blogPosts.CreateBlogPost(ctx, post)
}

// Get re-derives the check-in's tenant from the stored record and compares;
// the id may have come from path, query, or body.
func (s *CheckInService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.CheckIn, error) {
	checkIn, err := s.checkIns.GetCheckIn(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(checkIn.CompanyID) {
		return nil, domain.ErrCheckInNotFound
	}
	return checkIn, nil
}

func (s *CheckInService) List(ctx context.Context, actor *domain.User, technicianID int64, limit int) ([]*domain.CheckIn, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	filter := ports.CheckInFilter{CompanyID: actor.CompanyID, TechnicianID: technicianID, Limit: limit}

	// Technicians only see their own visits regardless of the filter.
	if actor.Role == domain.RoleTechnician {
		tech, err := s.technicians.GetTechnicianByUser(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		filter.TechnicianID = tech.ID
	}
	if actor.IsSuperAdmin() {
		filter.CompanyID = 0
	}

	return s.checkIns.ListCheckIns(ctx, filter)
}

// Sync replays a batch of offline check-ins. Each item is independently
// deduplicated by its client-generated sync key; one bad item never fails
// the batch.
func (s *CheckInService) Sync(ctx context.Context, actor *domain.User, items []ports.CreateCheckInInput) ([]ports.SyncItemResult, error) {
	if actor.CompanyID == 0 {
		return nil, domain.ErrCompanyRequired
	}

	results := make([]ports.SyncItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, s.syncOne(ctx, actor, item))
	}
	return results, nil
}

func (s *CheckInService) syncOne(ctx context.Context, actor *domain.User, item ports.CreateCheckInInput) ports.SyncItemResult {
	res := ports.SyncItemResult{SyncKey: item.SyncKey}
	if item.SyncKey == "" {
		res.Error = "missing sync_key"
		return res
	}

	dup, err := s.dedup.IsDuplicate(ctx, actor.CompanyID, item.SyncKey)
	if err != nil {
		s.log.Warn().Err(err).Str("sync_key", item.SyncKey).Msg("sync dedup check failed, falling back to store lookup")
	}
	if !dup {
		// The dedup window may have expired; the store is authoritative.
		if existing, err := s.checkIns.FindCheckInBySyncKey(ctx, actor.CompanyID, item.SyncKey); err == nil && existing != nil {
			dup = true
		}
	}
	if dup {
		res.Duplicate = true
		if existing, err := s.checkIns.FindCheckInBySyncKey(ctx, actor.CompanyID, item.SyncKey); err == nil && existing != nil {
			res.CheckInID = existing.ID
		}
		return res
	}

	created, err := s.Create(ctx, actor, item)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.CheckInID = created.ID

	if err := s.dedup.Mark(ctx, actor.CompanyID, item.SyncKey); err != nil {
		s.log.Warn().Err(err).Str("sync_key", item.SyncKey).Msg("failed to mark sync key")
	}
	return res
}
