package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// ReviewHandler serves review-request management behind the company_admin
// gate.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type createReviewRequest struct {
	CheckInID    int64  `json:"check_in_id"   validate:"required,min=1"`
	CustomerName string `json:"customer_name" validate:"required,min=1"`
	Email        string `json:"email"         validate:"omitempty,email"`
	Phone        string `json:"phone"         validate:"omitempty,min=7"`
	Method       string `json:"method"        validate:"omitempty,oneof=email sms"`
}

func reviewID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid review request id")
	}
	return id, nil
}

// @Summary      Create a review request
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      createReviewRequest  true  "Review solicitation"
// @Success      201   {object}  domain.ReviewRequest
// @Failure      404   {object}  map[string]string
// @Router       /api/review-requests [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := h.reviews.Create(c.Request().Context(), user, ports.CreateReviewRequestInput{
		CheckInID:    req.CheckInID,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Method:       req.Method,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// @Summary      List review requests
// @Tags         reviews
// @Produce      json
// @Success      200  {array}  domain.ReviewRequest
// @Router       /api/review-requests [get]
func (h *ReviewHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	reviews, err := h.reviews.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// @Summary      Get a review request
// @Tags         reviews
// @Produce      json
// @Param        id  path  int  true  "Review request id"
// @Success      200  {object}  domain.ReviewRequest
// @Failure      404  {object}  map[string]string
// @Router       /api/review-requests/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := reviewID(c)
	if err != nil {
		return err
	}
	req, err := h.reviews.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// MarkResponded stops the follow-up schedule once the customer has reviewed.
//
// @Summary      Mark a review request responded
// @Tags         reviews
// @Produce      json
// @Param        id  path  int  true  "Review request id"
// @Success      200  {object}  domain.ReviewRequest
// @Router       /api/review-requests/{id}/responded [post]
func (h *ReviewHandler) MarkResponded(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := reviewID(c)
	if err != nil {
		return err
	}
	req, err := h.reviews.MarkResponded(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}
