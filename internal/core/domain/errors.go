package domain

import "errors"

// Authentication failures (HTTP 401). Absence of a valid session is a normal
// outcome, not an exception; gates translate it into ErrUnauthenticated.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization failures (HTTP 403). Distinguished from authentication so
// the client can tell "who are you" from "you may not".
var (
	ErrForbidden           = errors.New("access forbidden")
	ErrSuperAdminProtected = errors.New("super admin accounts cannot be deleted")
)

// Not-found sentinels (HTTP 404).
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrCheckInNotFound    = errors.New("check-in not found")
	ErrReviewNotFound     = errors.New("review request not found")
	ErrBlogPostNotFound   = errors.New("blog post not found")
)

// Conflict / admission failures.
var (
	ErrUserExists        = errors.New("user already exists")
	ErrCompanyExists     = errors.New("company already exists")
	ErrCompanyRequired   = errors.New("a company is required for this role")
	ErrInvalidPlan       = errors.New("unknown subscription plan")
	ErrUsageLimitReached = errors.New("monthly check-in limit reached")
)
