package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rbtech24/rankitpro/internal/api/handler"
	"github.com/rbtech24/rankitpro/internal/api/middleware"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// Dependencies carries everything the router wires together. Mongo and
// Redis are only used by the readiness probe and may be nil when the
// in-memory store backs the deployment.
type Dependencies struct {
	Sessions ports.SessionStore
	Users    ports.UserRepository
	Limiter  ports.RateLimiter

	AuthService       ports.AuthService
	UserService       ports.UserService
	CompanyService    ports.CompanyService
	TechnicianService ports.TechnicianService
	CheckInService    ports.CheckInService
	ReviewService     ports.ReviewService
	BlogService       ports.BlogService

	JWTSecret string
	Cookie    handler.SessionCookie

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every protected route passes its gates in order: authentication first,
// then the role or tenant gate, then the handler.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rankitpro"))

	// --- Gates ---
	requireAuth := middleware.RequireAuth(deps.Sessions, deps.Users, deps.Log)
	requireCompanyAdmin := middleware.RequireCompanyAdmin(deps.Sessions, deps.Users, deps.Log)
	requireSuperAdmin := middleware.RequireSuperAdmin(deps.Sessions, deps.Users, deps.Log)
	requireCompanyAccess := middleware.RequireCompanyAccess(deps.Sessions, deps.Users, deps.Log, "id")
	mobileAuth := middleware.MobileAuth(deps.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Cookie)
	companyHandler := handler.NewCompanyHandler(deps.CompanyService)
	adminHandler := handler.NewAdminHandler(deps.CompanyService, deps.UserService)
	userHandler := handler.NewUserHandler(deps.UserService)
	technicianHandler := handler.NewTechnicianHandler(deps.TechnicianService)
	checkInHandler := handler.NewCheckInHandler(deps.CheckInService)
	reviewHandler := handler.NewReviewHandler(deps.ReviewService)
	blogHandler := handler.NewBlogHandler(deps.BlogService)
	mobileHandler := handler.NewMobileHandler(deps.AuthService, deps.CheckInService)

	// --- API routes (rate limited as a block) ---
	apiGroup := e.Group("/api", middleware.RateLimit(deps.Limiter, deps.Log))

	// Auth
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/auth/logout", authHandler.Logout)
	apiGroup.GET("/auth/me", authHandler.Me, requireAuth)

	// Companies (tenant gate on the path parameter)
	apiGroup.GET("/companies/:id", companyHandler.Get, requireCompanyAccess)
	apiGroup.PUT("/companies/:id", companyHandler.Update, requireCompanyAdmin, requireCompanyAccess)

	// Users (company admin only)
	apiGroup.GET("/users", userHandler.List, requireCompanyAdmin)
	apiGroup.POST("/users", userHandler.Create, requireCompanyAdmin)
	apiGroup.GET("/users/:id", userHandler.Get, requireCompanyAdmin)
	apiGroup.PATCH("/users/:id", userHandler.Update, requireCompanyAdmin)
	apiGroup.DELETE("/users/:id", userHandler.Delete, requireCompanyAdmin)

	// Technicians (reads for all company members, writes for admins)
	apiGroup.GET("/technicians", technicianHandler.List, requireAuth)
	apiGroup.GET("/technicians/:id", technicianHandler.Get, requireAuth)
	apiGroup.POST("/technicians", technicianHandler.Create, requireCompanyAdmin)
	apiGroup.PUT("/technicians/:id", technicianHandler.Update, requireCompanyAdmin)
	apiGroup.DELETE("/technicians/:id", technicianHandler.Delete, requireCompanyAdmin)

	// Check-ins (any authenticated company member)
	apiGroup.GET("/check-ins", checkInHandler.List, requireAuth)
	apiGroup.POST("/check-ins", checkInHandler.Create, requireAuth)
	apiGroup.GET("/check-ins/:id", checkInHandler.Get, requireAuth)

	// Blog posts
	apiGroup.GET("/blog-posts", blogHandler.List, requireAuth)
	apiGroup.GET("/blog-posts/:id", blogHandler.Get, requireAuth)
	apiGroup.POST("/blog-posts/:id/publish", blogHandler.Publish, requireCompanyAdmin)

	// Review requests
	apiGroup.GET("/review-requests", reviewHandler.List, requireAuth)
	apiGroup.GET("/review-requests/:id", reviewHandler.Get, requireAuth)
	apiGroup.POST("/review-requests", reviewHandler.Create, requireCompanyAdmin)
	apiGroup.POST("/review-requests/:id/responded", reviewHandler.MarkResponded, requireCompanyAdmin)

	// Super-admin console
	adminGroup := apiGroup.Group("/admin", requireSuperAdmin)
	adminGroup.GET("/companies", adminHandler.ListCompanies)
	adminGroup.POST("/companies", adminHandler.CreateCompany)
	adminGroup.GET("/companies/:id", adminHandler.GetCompany)
	adminGroup.PUT("/companies/:id", adminHandler.UpdateCompany)
	adminGroup.DELETE("/companies/:id", adminHandler.DeleteCompany)
	adminGroup.POST("/companies/:id/status", adminHandler.ToggleCompanyStatus)
	adminGroup.GET("/users", adminHandler.ListUsers)

	// Mobile surface (bearer tokens, not cookies)
	apiGroup.POST("/mobile/auth/login", mobileHandler.Login)
	apiGroup.POST("/mobile/check-ins/sync", mobileHandler.Sync, mobileAuth)

	// --- Infra routes (no auth, no rate limit) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
