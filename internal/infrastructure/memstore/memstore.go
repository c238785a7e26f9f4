// Package memstore provides the in-process implementation of the Directory:
// id-indexed tables behind a single mutex. Compound invariants
// (unique-email-then-insert, usage admission, status toggle) hold because
// every operation runs inside one critical section; this is the injectable
// replacement for storage that cannot give that guarantee.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// Store implements ports.Directory.
type Store struct {
	mu sync.Mutex

	users       map[int64]*domain.User
	companies   map[int64]*domain.Company
	technicians map[int64]*domain.Technician
	checkIns    map[int64]*domain.CheckIn
	reviews     map[int64]*domain.ReviewRequest
	blogPosts   map[int64]*domain.BlogPost

	seq map[string]int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:       make(map[int64]*domain.User),
		companies:   make(map[int64]*domain.Company),
		technicians: make(map[int64]*domain.Technician),
		checkIns:    make(map[int64]*domain.CheckIn),
		reviews:     make(map[int64]*domain.ReviewRequest),
		blogPosts:   make(map[int64]*domain.BlogPost),
		seq:         make(map[string]int64),
	}
}

func (s *Store) nextID(entity string) int64 {
	s.seq[entity]++
	return s.seq[entity]
}

// ── Users ─────────────────────────────────────────────────────────────────────

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}

	c := cloneUser(u)
	c.ID = s.nextID("users")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.users[c.ID] = c
	return cloneUser(c), nil
}

func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context, companyID int64) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		if companyID == 0 || u.CompanyID == companyID {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// ── Companies ─────────────────────────────────────────────────────────────────

func cloneCompany(c *domain.Company) *domain.Company {
	cp := *c
	return &cp
}

func (s *Store) CreateCompany(_ context.Context, c *domain.Company) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.companies {
		if strings.EqualFold(existing.Name, c.Name) {
			return nil, domain.ErrCompanyExists
		}
	}

	cp := cloneCompany(c)
	cp.ID = s.nextID("companies")
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.companies[cp.ID] = cp
	return cloneCompany(cp), nil
}

func (s *Store) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return cloneCompany(c), nil
}

func (s *Store) ListCompanies(_ context.Context) ([]*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, cloneCompany(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateCompany(_ context.Context, c *domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[c.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	s.companies[c.ID] = cloneCompany(c)
	return nil
}

func (s *Store) DeleteCompany(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(s.companies, id)
	return nil
}

// ToggleCompanyStatus flips IsActive in one critical section, so concurrent
// toggles always land on one of the two requested values.
func (s *Store) ToggleCompanyStatus(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.companies[id]
	if !ok {
		return false, domain.ErrCompanyNotFound
	}
	c.IsActive = !c.IsActive
	return c.IsActive, nil
}

// ── Technicians ───────────────────────────────────────────────────────────────

func cloneTechnician(t *domain.Technician) *domain.Technician {
	c := *t
	return &c
}

func (s *Store) CreateTechnician(_ context.Context, t *domain.Technician) (*domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneTechnician(t)
	c.ID = s.nextID("technicians")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.technicians[c.ID] = c
	return cloneTechnician(c), nil
}

func (s *Store) GetTechnician(_ context.Context, id int64) (*domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.technicians[id]
	if !ok {
		return nil, domain.ErrTechnicianNotFound
	}
	return cloneTechnician(t), nil
}

func (s *Store) GetTechnicianByUser(_ context.Context, userID int64) (*domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.technicians {
		if t.UserID == userID {
			return cloneTechnician(t), nil
		}
	}
	return nil, domain.ErrTechnicianNotFound
}

func (s *Store) ListTechnicians(_ context.Context, companyID int64) ([]*domain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Technician, 0, len(s.technicians))
	for _, t := range s.technicians {
		if companyID == 0 || t.CompanyID == companyID {
			out = append(out, cloneTechnician(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateTechnician(_ context.Context, t *domain.Technician) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.technicians[t.ID]; !ok {
		return domain.ErrTechnicianNotFound
	}
	s.technicians[t.ID] = cloneTechnician(t)
	return nil
}

func (s *Store) DeleteTechnician(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.technicians[id]; !ok {
		return domain.ErrTechnicianNotFound
	}
	delete(s.technicians, id)
	return nil
}

// ── Check-ins ─────────────────────────────────────────────────────────────────

func cloneCheckIn(ci *domain.CheckIn) *domain.CheckIn {
	c := *ci
	if ci.Photos != nil {
		c.Photos = append([]string(nil), ci.Photos...)
	}
	return &c
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CreateCheckIn admits the insert against the monthly cap and performs it
// under the same lock, closing the count-then-insert window.
func (s *Store) CreateCheckIn(_ context.Context, ci *domain.CheckIn, usageLimit int) (*domain.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if usageLimit > 0 {
		since := startOfMonth(time.Now().UTC())
		count := 0
		for _, existing := range s.checkIns {
			if existing.CompanyID == ci.CompanyID && !existing.CreatedAt.Before(since) {
				count++
			}
		}
		if count >= usageLimit {
			return nil, domain.ErrUsageLimitReached
		}
	}

	c := cloneCheckIn(ci)
	c.ID = s.nextID("check_ins")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.checkIns[c.ID] = c
	return cloneCheckIn(c), nil
}

func (s *Store) GetCheckIn(_ context.Context, id int64) (*domain.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ci, ok := s.checkIns[id]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	return cloneCheckIn(ci), nil
}

func (s *Store) FindCheckInBySyncKey(_ context.Context, companyID int64, syncKey string) (*domain.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ci := range s.checkIns {
		if ci.CompanyID == companyID && ci.SyncKey == syncKey {
			return cloneCheckIn(ci), nil
		}
	}
	return nil, domain.ErrCheckInNotFound
}

func (s *Store) ListCheckIns(_ context.Context, filter ports.CheckInFilter) ([]*domain.CheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.CheckIn, 0)
	for _, ci := range s.checkIns {
		if filter.CompanyID != 0 && ci.CompanyID != filter.CompanyID {
			continue
		}
		if filter.TechnicianID != 0 && ci.TechnicianID != filter.TechnicianID {
			continue
		}
		out = append(out, cloneCheckIn(ci))
	}
	// Newest first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *Store) CountCheckInsSince(_ context.Context, companyID int64, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, ci := range s.checkIns {
		if ci.CompanyID == companyID && !ci.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ── Review requests ───────────────────────────────────────────────────────────

func cloneReview(r *domain.ReviewRequest) *domain.ReviewRequest {
	c := *r
	return &c
}

func (s *Store) CreateReviewRequest(_ context.Context, r *domain.ReviewRequest) (*domain.ReviewRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneReview(r)
	c.ID = s.nextID("review_requests")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.reviews[c.ID] = c
	return cloneReview(c), nil
}

func (s *Store) GetReviewRequest(_ context.Context, id int64) (*domain.ReviewRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return cloneReview(r), nil
}

func (s *Store) ListReviewRequests(_ context.Context, companyID int64) ([]*domain.ReviewRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ReviewRequest, 0)
	for _, r := range s.reviews {
		if companyID == 0 || r.CompanyID == companyID {
			out = append(out, cloneReview(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateReviewRequest(_ context.Context, r *domain.ReviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[r.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	s.reviews[r.ID] = cloneReview(r)
	return nil
}

func (s *Store) ListDueFollowUps(_ context.Context, now time.Time, limit int) ([]*domain.ReviewRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ReviewRequest, 0)
	for _, r := range s.reviews {
		if !r.NextFollowUpAt.IsZero() && !r.NextFollowUpAt.After(now) {
			out = append(out, cloneReview(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextFollowUpAt.Before(out[j].NextFollowUpAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── Blog posts ────────────────────────────────────────────────────────────────

func cloneBlogPost(p *domain.BlogPost) *domain.BlogPost {
	c := *p
	return &c
}

func (s *Store) CreateBlogPost(_ context.Context, p *domain.BlogPost) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := cloneBlogPost(p)
	c.ID = s.nextID("blog_posts")
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.blogPosts[c.ID] = c
	return cloneBlogPost(c), nil
}

func (s *Store) GetBlogPost(_ context.Context, id int64) (*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.blogPosts[id]
	if !ok {
		return nil, domain.ErrBlogPostNotFound
	}
	return cloneBlogPost(p), nil
}

func (s *Store) ListBlogPosts(_ context.Context, companyID int64) ([]*domain.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.BlogPost, 0)
	for _, p := range s.blogPosts {
		if companyID == 0 || p.CompanyID == companyID {
			out = append(out, cloneBlogPost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateBlogPost(_ context.Context, p *domain.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogPosts[p.ID]; !ok {
		return domain.ErrBlogPostNotFound
	}
	s.blogPosts[p.ID] = cloneBlogPost(p)
	return nil
}
