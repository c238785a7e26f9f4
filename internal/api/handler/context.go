package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/api/middleware"
	"github.com/rbtech24/rankitpro/internal/core/domain"
)

// actor extracts the authorized user attached by the gates and fast-fails
// before any service call. A missing actor means the route was registered
// without its gate; fail closed, never default to allow.
func actor(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(middleware.ActorKey).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return u, nil
}
