package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

func gateFixture(t *testing.T, role string) (*stubSessions, *stubUsers, string) {
	t.Helper()
	sessions := newStubSessions()
	sess, _ := sessions.Create(context.Background(), 1, time.Hour)
	users := newStubUsers(&domain.User{ID: 1, Role: role, CompanyID: 5, Active: true})
	return sessions, users, sess.Token
}

func TestRequireSuperAdmin_Allows(t *testing.T) {
	sessions, users, token := gateFixture(t, domain.RoleSuperAdmin)
	mw := RequireSuperAdmin(sessions, users, zerolog.Nop())

	_, called, err := invoke(t, mw, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireSuperAdmin_ForbidsCompanyAdmin(t *testing.T) {
	sessions, users, token := gateFixture(t, domain.RoleCompanyAdmin)
	mw := RequireSuperAdmin(sessions, users, zerolog.Nop())

	_, called, err := invoke(t, mw, token)
	if called {
		t.Fatalf("company admin must not pass the super admin gate")
	}
	if code := statusOf(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireSuperAdmin_UnauthenticatedIs401(t *testing.T) {
	sessions, users, _ := gateFixture(t, domain.RoleSuperAdmin)
	mw := RequireSuperAdmin(sessions, users, zerolog.Nop())

	// No cookie at all: identity failure, not a role failure.
	_, _, err := invoke(t, mw, "")
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestRequireCompanyAdmin_AllowsSuperAdmin(t *testing.T) {
	sessions, users, token := gateFixture(t, domain.RoleSuperAdmin)
	mw := RequireCompanyAdmin(sessions, users, zerolog.Nop())

	_, called, err := invoke(t, mw, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("super admin must pass the company admin gate")
	}
}

func TestRequireCompanyAdmin_ForbidsTechnician(t *testing.T) {
	sessions, users, token := gateFixture(t, domain.RoleTechnician)
	mw := RequireCompanyAdmin(sessions, users, zerolog.Nop())

	_, called, err := invoke(t, mw, token)
	if called {
		t.Fatalf("technician must not pass the company admin gate")
	}
	if code := statusOf(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}
