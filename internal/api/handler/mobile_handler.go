package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// MobileHandler serves the mobile app's bearer-token surface: JWT issuance
// and the offline check-in sync batch endpoint.
type MobileHandler struct {
	authService ports.AuthService
	checkIns    ports.CheckInService
}

func NewMobileHandler(authService ports.AuthService, checkIns ports.CheckInService) *MobileHandler {
	return &MobileHandler{authService: authService, checkIns: checkIns}
}

type mobileLoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type syncItemRequest struct {
	SyncKey       string   `json:"sync_key"       validate:"required,min=8"`
	TechnicianID  int64    `json:"technician_id"  validate:"omitempty,min=1"`
	JobType       string   `json:"job_type"       validate:"required,min=1"`
	Notes         string   `json:"notes"`
	CustomerName  string   `json:"customer_name"`
	CustomerEmail string   `json:"customer_email" validate:"omitempty,email"`
	Address       string   `json:"address"`
	Photos        []string `json:"photos"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}

type syncRequest struct {
	CheckIns []syncItemRequest `json:"check_ins" validate:"required,min=1,max=100,dive"`
}

type syncResponse struct {
	Results []ports.SyncItemResult `json:"results"`
}

// Login issues a bearer token for the mobile app. Sessions are not created
// on this path.
//
// @Summary      Mobile login
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  mobileLoginResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/mobile/auth/login [post]
func (h *MobileHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.MobileLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, mobileLoginResponse{Token: token, User: user})
}

// Sync replays a batch of offline check-ins. The response reports each item
// individually; duplicates are not errors.
//
// @Summary      Sync offline check-ins
// @Tags         mobile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      syncRequest  true  "Offline check-in batch"
// @Success      200   {object}  syncResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/mobile/check-ins/sync [post]
func (h *MobileHandler) Sync(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]ports.CreateCheckInInput, 0, len(req.CheckIns))
	for _, item := range req.CheckIns {
		items = append(items, ports.CreateCheckInInput{
			SyncKey:       item.SyncKey,
			TechnicianID:  item.TechnicianID,
			JobType:       item.JobType,
			Notes:         item.Notes,
			CustomerName:  item.CustomerName,
			CustomerEmail: item.CustomerEmail,
			Address:       item.Address,
			Photos:        item.Photos,
			Latitude:      item.Latitude,
			Longitude:     item.Longitude,
		})
	}

	results, err := h.checkIns.Sync(c.Request().Context(), user, items)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Error == "" && !r.Duplicate {
			metrics.CheckInsCreatedTotal.WithLabelValues("mobile_sync").Inc()
		}
	}
	return c.JSON(http.StatusOK, syncResponse{Results: results})
}
