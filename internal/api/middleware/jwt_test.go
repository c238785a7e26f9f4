package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invokeMobile(t *testing.T, authHeader string) (*domain.User, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor *domain.User
	called := false
	err := MobileAuth(testSecret)(func(c echo.Context) error {
		called = true
		actor, _ = c.Get(ActorKey).(*domain.User)
		return c.NoContent(http.StatusOK)
	})(c)
	return actor, called, err
}

func TestMobileAuth_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id":    float64(9),
		"company_id": float64(3),
		"role":       domain.RoleTechnician,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	actor, called, err := invokeMobile(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if actor == nil || actor.ID != 9 || actor.CompanyID != 3 || actor.Role != domain.RoleTechnician {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestMobileAuth_MissingHeader(t *testing.T) {
	_, called, err := invokeMobile(t, "")
	if called {
		t.Fatalf("next handler should not run")
	}
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestMobileAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": float64(9),
		"role":    domain.RoleTechnician,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, called, err := invokeMobile(t, "Bearer "+token)
	if called {
		t.Fatalf("forged token must be rejected")
	}
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestMobileAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": float64(9),
		"role":    domain.RoleTechnician,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})

	_, called, err := invokeMobile(t, "Bearer "+token)
	if called {
		t.Fatalf("expired token must be rejected")
	}
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestMobileAuth_MissingIdentityClaims(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, called, err := invokeMobile(t, "Bearer "+token)
	if called {
		t.Fatalf("token without identity claims must be rejected")
	}
	if code := statusOf(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
