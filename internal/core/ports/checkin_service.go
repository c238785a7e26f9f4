package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// CreateCheckInInput carries a submitted job visit. TechnicianID may be 0
// for technician-role actors, in which case their own linked profile is
// used. CreateBlogPost asks the service to generate a draft post from the
// visit data.
type CreateCheckInInput struct {
	TechnicianID   int64
	JobType        string
	Notes          string
	CustomerName   string
	CustomerEmail  string
	Address        string
	Photos         []string
	Latitude       float64
	Longitude      float64
	SyncKey        string
	CreateBlogPost bool
}

// SyncItemResult reports the outcome for one item of a mobile sync batch.
type SyncItemResult struct {
	SyncKey   string `json:"sync_key"`
	CheckInID int64  `json:"check_in_id,omitempty"`
	Duplicate bool   `json:"duplicate"`
	Error     string `json:"error,omitempty"`
}

// CheckInService exposes tenant-scoped check-in submission and the mobile
// offline-sync batch path.
type CheckInService interface {
	Create(ctx context.Context, actor *domain.User, input CreateCheckInInput) (*domain.CheckIn, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.CheckIn, error)
	List(ctx context.Context, actor *domain.User, technicianID int64, limit int) ([]*domain.CheckIn, error)
	// Sync replays a batch of offline check-ins. Items are deduplicated by
	// SyncKey; a replayed item reports Duplicate=true with the original id.
	Sync(ctx context.Context, actor *domain.User, items []CreateCheckInInput) ([]SyncItemResult, error)
}
