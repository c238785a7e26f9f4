package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// TechnicianHandler serves tenant-scoped technician profiles. Reads are open
// to any company member; writes sit behind the company_admin gate.
type TechnicianHandler struct {
	technicians ports.TechnicianService
}

func NewTechnicianHandler(technicians ports.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians}
}

type createTechnicianRequest struct {
	Name      string `json:"name"      validate:"required,min=1"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"omitempty,min=7"`
	Specialty string `json:"specialty"`
	UserID    int64  `json:"user_id"    validate:"omitempty,min=1"`
	CompanyID int64  `json:"company_id" validate:"omitempty,min=1"`
}

type updateTechnicianRequest struct {
	Name      *string `json:"name"      validate:"omitempty,min=1"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Phone     *string `json:"phone"     validate:"omitempty,min=7"`
	Specialty *string `json:"specialty"`
}

func technicianID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid technician id")
	}
	return id, nil
}

// @Summary      Create a technician
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Param        body  body      createTechnicianRequest  true  "Technician details"
// @Success      201   {object}  domain.Technician
// @Router       /api/technicians [post]
func (h *TechnicianHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tech, err := h.technicians.Create(c.Request().Context(), user, ports.CreateTechnicianInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tech)
}

// @Summary      List technicians
// @Tags         technicians
// @Produce      json
// @Success      200  {array}  domain.Technician
// @Router       /api/technicians [get]
func (h *TechnicianHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	techs, err := h.technicians.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, techs)
}

// @Summary      Get a technician
// @Tags         technicians
// @Produce      json
// @Param        id  path  int  true  "Technician id"
// @Success      200  {object}  domain.Technician
// @Failure      404  {object}  map[string]string
// @Router       /api/technicians/{id} [get]
func (h *TechnicianHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := technicianID(c)
	if err != nil {
		return err
	}
	tech, err := h.technicians.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tech)
}

// @Summary      Update a technician
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Technician id"
// @Param        body  body      updateTechnicianRequest  true  "Fields to update"
// @Success      200   {object}  domain.Technician
// @Router       /api/technicians/{id} [put]
func (h *TechnicianHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := technicianID(c)
	if err != nil {
		return err
	}

	var req updateTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tech, err := h.technicians.Update(c.Request().Context(), user, id, ports.UpdateTechnicianInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tech)
}

// @Summary      Delete a technician
// @Tags         technicians
// @Param        id  path  int  true  "Technician id"
// @Success      204
// @Router       /api/technicians/{id} [delete]
func (h *TechnicianHandler) Delete(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := technicianID(c)
	if err != nil {
		return err
	}
	if err := h.technicians.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
