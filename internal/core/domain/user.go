package domain

import "time"

const (
	RoleSuperAdmin   = "super_admin"
	RoleCompanyAdmin = "company_admin"
	RoleTechnician   = "technician"
	RoleSalesStaff   = "sales_staff"
)

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleTechnician, RoleSalesStaff:
		return true
	}
	return false
}

// User models an authenticated actor. PasswordHash is never serialized; the
// json tag is the single enforcement point for the "password never leaks"
// contract at the process boundary.
type User struct {
	ID           int64     `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CompanyID    int64     `json:"company_id,omitempty" bson:"company_id,omitempty"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// IsSuperAdmin reports whether the user holds the global role.
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// IsCompanyAdmin reports whether the user can administer a company.
// super_admin is a superset capability and passes every company_admin gate.
func (u *User) IsCompanyAdmin() bool {
	return u.Role == RoleCompanyAdmin || u.Role == RoleSuperAdmin
}

// CanAccessCompany is the tenant-isolation check: super_admin bypasses all
// scoping, every other role only reaches its own company.
func (u *User) CanAccessCompany(companyID int64) bool {
	if u.IsSuperAdmin() {
		return true
	}
	return u.CompanyID != 0 && u.CompanyID == companyID
}
