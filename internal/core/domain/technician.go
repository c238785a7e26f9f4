package domain

import "time"

// Technician is a per-company worker profile. It is distinct from a User:
// UserID links the profile to a login account and is 0 when the technician
// has no credentials of their own.
type Technician struct {
	ID        int64     `json:"id" bson:"id"`
	CompanyID int64     `json:"company_id" bson:"company_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty" bson:"specialty,omitempty"`
	UserID    int64     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
