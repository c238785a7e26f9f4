package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// BlogService implements tenant-scoped content listing and WordPress
// syndication.
type BlogService struct {
	blogPosts ports.BlogPostRepository
	publisher ports.BlogPublisher
	log       zerolog.Logger
}

func NewBlogService(blogPosts ports.BlogPostRepository, publisher ports.BlogPublisher, log zerolog.Logger) *BlogService {
	return &BlogService{blogPosts: blogPosts, publisher: publisher, log: log}
}

func (s *BlogService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.BlogPost, error) {
	post, err := s.blogPosts.GetBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessCompany(post.CompanyID) {
		return nil, domain.ErrBlogPostNotFound
	}
	return post, nil
}

func (s *BlogService) List(ctx context.Context, actor *domain.User) ([]*domain.BlogPost, error) {
	if actor.IsSuperAdmin() {
		return s.blogPosts.ListBlogPosts(ctx, 0)
	}
	return s.blogPosts.ListBlogPosts(ctx, actor.CompanyID)
}

// Publish is idempotent: an already-published post returns as-is without a
// second remote call.
func (s *BlogService) Publish(ctx context.Context, actor *domain.User, id int64) (*domain.BlogPost, error) {
	post, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if post.Status == domain.BlogStatusPublished {
		return post, nil
	}

	remoteID, err := s.publisher.Publish(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("publish blog post %d: %w", post.ID, err)
	}

	post.Status = domain.BlogStatusPublished
	post.WordPressPostID = remoteID
	post.PublishedAt = time.Now().UTC()
	if err := s.blogPosts.UpdateBlogPost(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("blog_post_id", post.ID).
		Int64("wordpress_post_id", remoteID).
		Int64("company_id", post.CompanyID).
		Msg("blog post published")
	return post, nil
}
