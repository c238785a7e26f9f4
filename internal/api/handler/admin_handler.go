package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// AdminHandler serves the super-admin console. Every route is behind the
// super_admin gate.
type AdminHandler struct {
	companies ports.CompanyService
	users     ports.UserService
}

func NewAdminHandler(companies ports.CompanyService, users ports.UserService) *AdminHandler {
	return &AdminHandler{companies: companies, users: users}
}

type createCompanyRequest struct {
	Name       string `json:"name"        validate:"required,min=1"`
	Plan       string `json:"plan"        validate:"omitempty,oneof=starter pro agency"`
	UsageLimit int    `json:"usage_limit" validate:"omitempty,min=0"`
}

type adminUpdateCompanyRequest struct {
	Name       *string `json:"name"        validate:"omitempty,min=1"`
	Plan       *string `json:"plan"        validate:"omitempty,oneof=starter pro agency"`
	UsageLimit *int    `json:"usage_limit" validate:"omitempty,min=0"`
}

type companyStatusResponse struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

// ListCompanies returns every tenant.
//
// @Summary      List all companies
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Company
// @Router       /api/admin/companies [get]
func (h *AdminHandler) ListCompanies(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	companies, err := h.companies.List(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// CreateCompany provisions a new tenant.
//
// @Summary      Create a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createCompanyRequest  true  "Company details"
// @Success      201   {object}  domain.Company
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/companies [post]
func (h *AdminHandler) CreateCompany(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.companies.Create(c.Request().Context(), user, ports.CreateCompanyInput{
		Name:       req.Name,
		Plan:       req.Plan,
		UsageLimit: req.UsageLimit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, company)
}

// GetCompany returns any tenant by id.
//
// @Summary      Get a company
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Company id"
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/companies/{id} [get]
func (h *AdminHandler) GetCompany(c echo.Context) error {
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

// UpdateCompany changes a tenant's name, plan, or usage limit.
//
// @Summary      Update a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "Company id"
// @Param        body  body      adminUpdateCompanyRequest  true  "Fields to update"
// @Success      200   {object}  domain.Company
// @Router       /api/admin/companies/{id} [put]
func (h *AdminHandler) UpdateCompany(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := companyID(c)
	if err != nil {
		return err
	}

	var req adminUpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	company, err := h.companies.Update(c.Request().Context(), user, id, ports.UpdateCompanyInput{
		Name:       req.Name,
		Plan:       req.Plan,
		UsageLimit: req.UsageLimit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a tenant.
//
// @Summary      Delete a company
// @Tags         admin
// @Param        id  path  int  true  "Company id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/companies/{id} [delete]
func (h *AdminHandler) DeleteCompany(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := companyID(c)
	if err != nil {
		return err
	}
	if err := h.companies.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleCompanyStatus atomically flips a tenant's active flag.
//
// @Summary      Toggle company status
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Company id"
// @Success      200  {object}  companyStatusResponse
// @Router       /api/admin/companies/{id}/status [post]
func (h *AdminHandler) ToggleCompanyStatus(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	id, err := companyID(c)
	if err != nil {
		return err
	}
	active, err := h.companies.ToggleStatus(c.Request().Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyStatusResponse{ID: id, IsActive: active})
}

// ListUsers returns users across all tenants.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListAll(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
