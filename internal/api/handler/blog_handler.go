package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// BlogHandler serves generated content and WordPress syndication behind the
// company_admin gate.
type BlogHandler struct {
	blog ports.BlogService
}

func NewBlogHandler(blog ports.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

func blogPostID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid blog post id")
	}
	return id, nil
}

// @Summary      List blog posts
// @Tags         blog
// @Produce      json
// @Success      200  {array}  domain.BlogPost
// @Router       /api/blog-posts [get]
func (h *BlogHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	posts, err := h.blog.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// @Summary      Get a blog post
// @Tags         blog
// @Produce      json
// @Param        id  path  int  true  "Blog post id"
// @Success      200  {object}  domain.BlogPost
// @Failure      404  {object}  map[string]string
// @Router       /api/blog-posts/{id} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := blogPostID(c)
	if err != nil {
		return err
	}
	post, err := h.blog.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Publish syndicates the post to the company's WordPress site.
//
// @Summary      Publish a blog post
// @Tags         blog
// @Produce      json
// @Param        id  path  int  true  "Blog post id"
// @Success      200  {object}  domain.BlogPost
// @Failure      404  {object}  map[string]string
// @Router       /api/blog-posts/{id}/publish [post]
func (h *BlogHandler) Publish(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := blogPostID(c)
	if err != nil {
		return err
	}
	post, err := h.blog.Publish(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	metrics.BlogPostsPublishedTotal.Inc()
	return c.JSON(http.StatusOK, post)
}
