package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rbtech24/rankitpro/internal/api/middleware"
	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

type stubAuthService struct {
	result    *ports.LoginResult
	err       error
	loggedOut []string
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (*ports.LoginResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

func (s *stubAuthService) MobileLogin(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return "signed-token", s.result.User, nil
}

func newEchoForTest() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_SetsCookieAndOmitsPasswordHash(t *testing.T) {
	e := newEchoForTest()
	svc := &stubAuthService{result: &ports.LoginResult{
		Session: &domain.Session{Token: "tok-123", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)},
		User: &domain.User{
			ID: 7, Email: "admin@acme.com", Username: "acmeadmin",
			PasswordHash: "$2a$10$secret", Role: domain.RoleCompanyAdmin, CompanyID: 1, Active: true,
		},
		Company: &domain.Company{ID: 1, Name: "Acme", Plan: domain.PlanPro, IsActive: true},
	}}
	h := NewAuthHandler(svc, SessionCookie{})

	body := `{"email":"admin@acme.com","password":"s3cret99"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sessionCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			sessionCookie = ck
		}
	}
	if sessionCookie == nil {
		t.Fatalf("session cookie not set")
	}
	if sessionCookie.Value != "tok-123" || !sessionCookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", sessionCookie)
	}

	// Credential material never crosses the wire.
	if strings.Contains(rec.Body.String(), "secret") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaked credential material: %s", rec.Body.String())
	}

	var resp struct {
		User    *domain.User    `json:"user"`
		Company *domain.Company `json:"company"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.ID != 7 || resp.Company == nil || resp.Company.ID != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_CookieFlagsFollowEnvironment(t *testing.T) {
	result := &ports.LoginResult{
		Session: &domain.Session{Token: "tok-456", UserID: 7, ExpiresAt: time.Now().Add(time.Hour)},
		User:    &domain.User{ID: 7, Email: "admin@acme.com", Role: domain.RoleCompanyAdmin, CompanyID: 1, Active: true},
	}

	tests := []struct {
		name         string
		cookie       SessionCookie
		wantSecure   bool
		wantSameSite http.SameSite
	}{
		{"production", SessionCookie{Secure: true, SameSite: http.SameSiteStrictMode}, true, http.SameSiteStrictMode},
		{"development", SessionCookie{Secure: false, SameSite: http.SameSiteLaxMode}, false, http.SameSiteLaxMode},
		{"unset defaults strict", SessionCookie{}, false, http.SameSiteStrictMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEchoForTest()
			h := NewAuthHandler(&stubAuthService{result: result}, tt.cookie)

			body := `{"email":"admin@acme.com","password":"s3cret99"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Login(e.NewContext(req, rec)); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			var sessionCookie *http.Cookie
			for _, ck := range rec.Result().Cookies() {
				if ck.Name == middleware.SessionCookieName {
					sessionCookie = ck
				}
			}
			if sessionCookie == nil {
				t.Fatalf("session cookie not set")
			}
			if sessionCookie.Secure != tt.wantSecure {
				t.Fatalf("Secure = %v, want %v", sessionCookie.Secure, tt.wantSecure)
			}
			if sessionCookie.SameSite != tt.wantSameSite {
				t.Fatalf("SameSite = %v, want %v", sessionCookie.SameSite, tt.wantSameSite)
			}
		})
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newEchoForTest()
	h := NewAuthHandler(&stubAuthService{err: domain.ErrInvalidCredentials}, SessionCookie{})

	body := `{"email":"admin@acme.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEchoForTest()
	h := NewAuthHandler(&stubAuthService{}, SessionCookie{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	e := newEchoForTest()
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, SessionCookie{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "tok-123" {
		t.Fatalf("session not destroyed: %v", svc.loggedOut)
	}

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			cleared = ck
		}
	}
	if cleared == nil || cleared.Value != "" || cleared.Expires.After(time.Now()) {
		t.Fatalf("cookie not cleared: %+v", cleared)
	}
}

func TestAuthHandler_Logout_WithoutSessionIsNoop(t *testing.T) {
	e := newEchoForTest()
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, SessionCookie{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout without session should succeed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 0 {
		t.Fatalf("nothing to destroy without a cookie")
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEchoForTest()
	h := NewAuthHandler(&stubAuthService{}, SessionCookie{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ActorKey, &domain.User{ID: 7, Email: "admin@acme.com", Role: domain.RoleCompanyAdmin, Active: true})

	if err := h.Me(c); err != nil {
		t.Fatalf("me failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"admin@acme.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_WithoutActor(t *testing.T) {
	e := newEchoForTest()
	h := NewAuthHandler(&stubAuthService{}, SessionCookie{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()

	err := h.Me(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
