package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// CompanyHandler serves the company-facing tenant routes. The tenant gate
// runs before these handlers; the service re-checks the entity anyway.
type CompanyHandler struct {
	companies ports.CompanyService
}

func NewCompanyHandler(companies ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type updateCompanyRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

func companyID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	return id, nil
}

// Get returns the actor's own company (or any company for super_admin).
//
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id  path      int  true  "Company id"
// @Success      200  {object}  domain.Company
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := companyID(c)
	if err != nil {
		return err
	}

	company, err := h.companies.Get(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// Update lets a company admin rename their own tenant.
//
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Company id"
// @Param        body  body      updateCompanyRequest  true  "Fields to update"
// @Success      200   {object}  domain.Company
// @Failure      403   {object}  map[string]string
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := companyID(c)
	if err != nil {
		return err
	}

	var req updateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.companies.Update(c.Request().Context(), user, id, ports.UpdateCompanyInput{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}
