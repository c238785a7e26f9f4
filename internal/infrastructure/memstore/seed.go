package memstore

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rbtech24/rankitpro/internal/core/domain"
	"github.com/rbtech24/rankitpro/internal/core/ports"
)

// SeedAccount describes one bootstrap login.
type SeedAccount struct {
	Email    string
	Username string
	Password string
	Role     string
	Company  string // created on first use; empty for platform accounts
	Plan     string
}

// DefaultSeed is the development fixture set: one platform operator and one
// active tenant with a company admin and a technician login.
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{Email: "superadmin@rankitpro.com", Username: "superadmin", Password: "admin123", Role: domain.RoleSuperAdmin},
		{Email: "admin@testcompany.com", Username: "testadmin", Password: "company123", Role: domain.RoleCompanyAdmin, Company: "Test Company", Plan: domain.PlanPro},
		{Email: "tech@testcompany.com", Username: "testtech", Password: "tech1234", Role: domain.RoleTechnician, Company: "Test Company", Plan: domain.PlanPro},
	}
}

// Seed loads accounts into the directory, creating companies as named. It is
// idempotent with respect to existing emails.
func Seed(ctx context.Context, dir ports.Directory, accounts []SeedAccount) error {
	companies := make(map[string]int64)

	for _, acc := range accounts {
		if _, err := dir.GetUserByEmail(ctx, acc.Email); err == nil {
			continue
		}

		var companyID int64
		if acc.Company != "" {
			id, ok := companies[acc.Company]
			if !ok {
				created, err := dir.CreateCompany(ctx, &domain.Company{
					Name:     acc.Company,
					Plan:     acc.Plan,
					IsActive: true,
				})
				if err != nil {
					return fmt.Errorf("seed company %q: %w", acc.Company, err)
				}
				id = created.ID
				companies[acc.Company] = id
			}
			companyID = id
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", acc.Email, err)
		}

		user, err := dir.CreateUser(ctx, &domain.User{
			Email:        acc.Email,
			Username:     acc.Username,
			PasswordHash: string(hash),
			Role:         acc.Role,
			CompanyID:    companyID,
			Active:       true,
		})
		if err != nil {
			return fmt.Errorf("seed user %q: %w", acc.Email, err)
		}

		if acc.Role == domain.RoleTechnician {
			if _, err := dir.CreateTechnician(ctx, &domain.Technician{
				CompanyID: companyID,
				Name:      acc.Username,
				Email:     acc.Email,
				UserID:    user.ID,
			}); err != nil {
				return fmt.Errorf("seed technician %q: %w", acc.Email, err)
			}
		}
	}
	return nil
}
