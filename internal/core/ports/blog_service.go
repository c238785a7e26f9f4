package ports

import (
	"context"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// BlogService exposes tenant-scoped content listing and WordPress
// syndication.
type BlogService interface {
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.BlogPost, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.BlogPost, error)
	// Publish pushes the post to the company's WordPress site and marks it
	// published with the remote post id.
	Publish(ctx context.Context, actor *domain.User, id int64) (*domain.BlogPost, error)
}
