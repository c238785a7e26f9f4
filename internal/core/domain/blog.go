package domain

import "time"

// BlogPost lifecycle states.
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// BlogPost is content generated from a check-in and optionally syndicated to
// the company's WordPress site. WordPressPostID is the remote post id after a
// successful publish, 0 before.
type BlogPost struct {
	ID              int64     `json:"id" bson:"id"`
	CompanyID       int64     `json:"company_id" bson:"company_id"`
	CheckInID       int64     `json:"check_in_id" bson:"check_in_id"`
	Title           string    `json:"title" bson:"title"`
	Content         string    `json:"content" bson:"content"`
	Status          string    `json:"status" bson:"status"`
	WordPressPostID int64     `json:"wordpress_post_id,omitempty" bson:"wordpress_post_id,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	PublishedAt     time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
}
