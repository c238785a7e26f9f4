// Package wordpress syndicates generated blog posts to a tenant WordPress
// site over the REST API, authenticating with an application password.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Config carries the WordPress REST endpoint and credentials.
type Config struct {
	BaseURL     string // e.g. https://example.com
	Username    string
	AppPassword string
	Timeout     time.Duration
}

// Client implements ports.BlogPublisher against /wp-json/wp/v2/posts.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.AppPassword,
		http:     &http.Client{Timeout: timeout},
	}
}

// Disabled is the publisher wired when no WordPress site is configured.
// Posts still flip to published locally, with no remote id.
type Disabled struct{}

func (Disabled) Publish(context.Context, *domain.BlogPost) (int64, error) {
	return 0, nil
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

type createPostResponse struct {
	ID int64 `json:"id"`
}

// Publish creates the post on the remote site and returns the remote post id.
func (c *Client) Publish(ctx context.Context, post *domain.BlogPost) (int64, error) {
	payload, err := json.Marshal(createPostRequest{
		Title:   post.Title,
		Content: post.Content,
		Status:  "publish",
	})
	if err != nil {
		return 0, fmt.Errorf("wordpress encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/wp-json/wp/v2/posts", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("wordpress request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("wordpress publish: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("wordpress publish: status %d: %s", resp.StatusCode, body)
	}

	var created createPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("wordpress decode: %w", err)
	}
	return created.ID, nil
}
