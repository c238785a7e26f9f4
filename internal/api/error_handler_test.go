package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rbtech24/rankitpro/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainTaxonomy(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrAccountDisabled, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSuperAdminProtected, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrCompanyNotFound, http.StatusNotFound},
		{domain.ErrCheckInNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrCompanyExists, http.StatusConflict},
		{domain.ErrCompanyRequired, http.StatusBadRequest},
		{domain.ErrInvalidPlan, http.StatusBadRequest},
		{domain.ErrUsageLimitReached, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		rec := handleError(t, tt.err)
		if rec.Code != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"message"`) {
			t.Fatalf("%v: missing error envelope: %s", tt.err, rec.Body.String())
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	rec := handleError(t, fmt.Errorf("lookup user 7: %w", domain.ErrUserNotFound))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel lost its status: %d", rec.Code)
	}
}

func TestErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusTeapot, "short and stout"))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec := handleError(t, errors.New("pq: connection refused on 10.0.3.7"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.3.7") {
		t.Fatalf("internal details leaked: %s", rec.Body.String())
	}
}
