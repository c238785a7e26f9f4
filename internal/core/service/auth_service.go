package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// AuthService implements cookie-session login/logout plus JWT issuance for
// the mobile app.
type AuthService struct {
	users      ports.UserRepository
	companies  ports.CompanyRepository
	sessions   ports.SessionStore
	jwtSecret  string
	sessionTTL time.Duration
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	companies ports.CompanyRepository,
	sessions ports.SessionStore,
	jwtSecret string,
	sessionTTL, tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 2 * time.Hour
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		companies:  companies,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

// verify resolves the account for a credential pair. Unknown emails and bad
// passwords are indistinguishable to the caller; disabled accounts are
// reported as such so the denial can be audited.
func (s *AuthService) verify(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		s.log.Warn().Int64("user_id", user.ID).Msg("login attempt on disabled account")
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	var company *domain.Company
	if user.CompanyID != 0 {
		company, err = s.companies.GetCompany(ctx, user.CompanyID)
		if err != nil && !errors.Is(err, domain.ErrCompanyNotFound) {
			return nil, err
		}
	}

	s.log.Info().
		Int64("user_id", user.ID).
		Str("role", user.Role).
		Int64("company_id", user.CompanyID).
		Msg("login succeeded")

	return &ports.LoginResult{Session: sess, User: user, Company: company}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) MobileLogin(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.verify(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       user.Role,
		"company_id": user.CompanyID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
