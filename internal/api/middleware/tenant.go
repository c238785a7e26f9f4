package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// RequireCompanyAccess is the tenant-scoping gate for routes that carry the
// target company id as a path parameter. super_admin bypasses scoping; every
// other role must match its own company exactly. Routes that address
// entities by their own ids re-derive the tenant inside the service layer
// instead; a client-supplied company value is never the last word.
func RequireCompanyAccess(sessions ports.SessionStore, users ports.UserRepository, log zerolog.Logger, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, reason, err := resolveActor(c, sessions, users)
			if err != nil {
				auditAuthFailure(c, log, reason)
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			target, err := strconv.ParseInt(c.Param(param), 10, 64)
			if err != nil || target <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
			}

			if !actor.CanAccessCompany(target) {
				auditDenial(c, log, "tenant", actor)
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
