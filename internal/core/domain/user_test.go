package domain

import "testing"

func TestCanAccessCompany(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		company int64
		want    bool
	}{
		{"super admin reaches any tenant", User{Role: RoleSuperAdmin}, 42, true},
		{"admin reaches own company", User{Role: RoleCompanyAdmin, CompanyID: 5}, 5, true},
		{"admin blocked cross-tenant", User{Role: RoleCompanyAdmin, CompanyID: 5}, 6, false},
		{"technician reaches own company", User{Role: RoleTechnician, CompanyID: 5}, 5, true},
		{"no company matches nothing", User{Role: RoleCompanyAdmin, CompanyID: 0}, 5, false},
		{"no company does not match zero either", User{Role: RoleTechnician, CompanyID: 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanAccessCompany(tt.company); got != tt.want {
				t.Fatalf("CanAccessCompany(%d) = %v, want %v", tt.company, got, tt.want)
			}
		})
	}
}

func TestIsCompanyAdmin(t *testing.T) {
	if !(&User{Role: RoleSuperAdmin}).IsCompanyAdmin() {
		t.Fatalf("super admin holds the company admin capability")
	}
	if !(&User{Role: RoleCompanyAdmin}).IsCompanyAdmin() {
		t.Fatalf("company admin holds the company admin capability")
	}
	if (&User{Role: RoleTechnician}).IsCompanyAdmin() {
		t.Fatalf("technician must not hold the company admin capability")
	}
	if (&User{Role: RoleSalesStaff}).IsCompanyAdmin() {
		t.Fatalf("sales staff must not hold the company admin capability")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleSuperAdmin, RoleCompanyAdmin, RoleTechnician, RoleSalesStaff} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if ValidRole("admin") || ValidRole("") {
		t.Fatalf("unknown roles must be rejected")
	}
}
