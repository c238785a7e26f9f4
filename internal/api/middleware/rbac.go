package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// auditDenial records a security-relevant authorization denial: valid
// session, insufficient capability. Distinct event class from ordinary
// request logging.
func auditDenial(c echo.Context, log zerolog.Logger, gate string, actor *domain.User) {
	metrics.AccessDeniedTotal.WithLabelValues(gate).Inc()
	log.Warn().
		Str("event", "access_denied").
		Str("gate", gate).
		Int64("actor_id", actor.ID).
		Str("role", actor.Role).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("ip", c.RealIP()).
		Msg("authorization denied")
}

// requireRole builds a gate that re-validates the session and passes only
// when allowed(actor) holds. 401 and 403 stay distinguishable: failing to
// prove identity is never reported as a role problem.
func requireRole(sessions ports.SessionStore, users ports.UserRepository, log zerolog.Logger, gate string, allowed func(*domain.User) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, reason, err := resolveActor(c, sessions, users)
			if err != nil {
				auditAuthFailure(c, log, reason)
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if !allowed(actor) {
				auditDenial(c, log, gate, actor)
				return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
			}
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// RequireSuperAdmin passes only the global role.
func RequireSuperAdmin(sessions ports.SessionStore, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return requireRole(sessions, users, log, "super_admin", (*domain.User).IsSuperAdmin)
}

// RequireCompanyAdmin passes company_admin and, as a superset capability,
// super_admin.
func RequireCompanyAdmin(sessions ports.SessionStore, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return requireRole(sessions, users, log, "company_admin", (*domain.User).IsCompanyAdmin)
}
