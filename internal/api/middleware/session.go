package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/api/metrics"
	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// SessionCookieName is the opaque session token cookie.
const SessionCookieName = "rip_session"

// ActorKey is the echo context key under which the resolved, authorized user
// is attached by the gates.
const ActorKey = "actor"

// resolveActor performs session resolution and user lookup. Every gate calls
// it independently rather than trusting an upstream attachment, so gates stay
// safe under reordering or standalone composition. The returned error is
// always a 401-class domain error; ambiguity denies.
func resolveActor(c echo.Context, sessions ports.SessionStore, users ports.UserRepository) (*domain.User, string, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, "no_session", domain.ErrUnauthenticated
	}

	sess, err := sessions.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return nil, "session_lookup_failed", domain.ErrUnauthenticated
	}
	if sess == nil {
		// Missing and expired sessions are indistinguishable here; both are
		// a normal no-identity outcome.
		return nil, "invalid_session", domain.ErrUnauthenticated
	}

	user, err := users.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return nil, "user_not_found", domain.ErrUnauthenticated
	}
	if !user.Active {
		return nil, "account_disabled", domain.ErrAccountDisabled
	}

	return user, "", nil
}

// auditAuthFailure emits the structured audit entry required on every
// authentication failure path: method, path, source IP, and which cookies
// were present, never cookie values or password material.
func auditAuthFailure(c echo.Context, log zerolog.Logger, reason string) {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()

	names := make([]string, 0, len(c.Cookies()))
	for _, ck := range c.Cookies() {
		names = append(names, ck.Name)
	}
	log.Warn().
		Str("event", "auth_failure").
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("ip", c.RealIP()).
		Strs("cookies_present", names).
		Msg("request rejected")
}

// RequireAuth is the base gate every protected route passes through first.
// On success the resolved user is attached to the context for handlers.
func RequireAuth(sessions ports.SessionStore, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, reason, err := resolveActor(c, sessions, users)
			if err != nil {
				auditAuthFailure(c, log, reason)
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
