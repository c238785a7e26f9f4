package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// CheckInHandler serves web check-in submission and listing. Any
// authenticated company member may submit; listing is tenant-scoped by the
// service.
type CheckInHandler struct {
	checkIns ports.CheckInService
}

func NewCheckInHandler(checkIns ports.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkIns: checkIns}
}

type createCheckInRequest struct {
	TechnicianID   int64    `json:"technician_id"   validate:"omitempty,min=1"`
	JobType        string   `json:"job_type"        validate:"required,min=1"`
	Notes          string   `json:"notes"`
	CustomerName   string   `json:"customer_name"`
	CustomerEmail  string   `json:"customer_email"  validate:"omitempty,email"`
	Address        string   `json:"address"`
	Photos         []string `json:"photos"          validate:"omitempty,dive,url"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	CreateBlogPost bool     `json:"create_blog_post"`
}

func (r *createCheckInRequest) toInput() ports.CreateCheckInInput {
	return ports.CreateCheckInInput{
		TechnicianID:   r.TechnicianID,
		JobType:        r.JobType,
		Notes:          r.Notes,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		Address:        r.Address,
		Photos:         r.Photos,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		CreateBlogPost: r.CreateBlogPost,
	}
}

// @Summary      Submit a check-in
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Param        body  body      createCheckInRequest  true  "Job visit details"
// @Success      201   {object}  domain.CheckIn
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/check-ins [post]
func (h *CheckInHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createCheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	checkIn, err := h.checkIns.Create(c.Request().Context(), user, req.toInput())
	if err != nil {
		return err
	}
	metrics.CheckInsCreatedTotal.WithLabelValues("web").Inc()
	return c.JSON(http.StatusCreated, checkIn)
}

// @Summary      List check-ins
// @Tags         check-ins
// @Produce      json
// @Param        technician_id  query  int  false  "Filter by technician"
// @Param        limit          query  int  false  "Page size"
// @Success      200  {array}  domain.CheckIn
// @Router       /api/check-ins [get]
func (h *CheckInHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	technicianID, _ := strconv.ParseInt(c.QueryParam("technician_id"), 10, 64)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	checkIns, err := h.checkIns.List(c.Request().Context(), user, technicianID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkIns)
}

// @Summary      Get a check-in
// @Tags         check-ins
// @Produce      json
// @Param        id  path  int  true  "Check-in id"
// @Success      200  {object}  domain.CheckIn
// @Failure      404  {object}  map[string]string
// @Router       /api/check-ins/{id} [get]
func (h *CheckInHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid check-in id")
	}

	checkIn, err := h.checkIns.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkIn)
}
