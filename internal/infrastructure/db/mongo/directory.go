package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Directory bundles the per-collection repositories into one value that
// satisfies ports.Directory.
type Directory struct {
	*UserRepository
	*CompanyRepository
	*TechnicianRepository
	*CheckInRepository
	*ReviewRepository
	*BlogPostRepository
}

func NewDirectory(db *mongo.Database) *Directory {
	return &Directory{
		UserRepository:       NewUserRepository(db),
		CompanyRepository:    NewCompanyRepository(db),
		TechnicianRepository: NewTechnicianRepository(db),
		CheckInRepository:    NewCheckInRepository(db),
		ReviewRepository:     NewReviewRepository(db),
		BlogPostRepository:   NewBlogPostRepository(db),
	}
}

// EnsureIndexes creates indexes across every collection. Called once at
// startup.
func (d *Directory) EnsureIndexes(ctx context.Context) error {
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{
		d.UserRepository,
		d.CompanyRepository,
		d.TechnicianRepository,
		d.CheckInRepository,
		d.ReviewRepository,
		d.BlogPostRepository,
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
